// Package minigame 实现场景内嵌的四种小游戏状态机
//
// 四种变体互相独立，各自持有进度并判定胜利条件。所有变体共享同一个约定：
// 完成只被检测一次，OnComplete 只回调一次，完成后的交互一律返回 Ignored。
package minigame

// Outcome 一次交互的结果
type Outcome int

const (
	// Ignored 交互被忽略（已完成、被锁定、目标无效）
	Ignored Outcome = iota
	// Correct 正确的一步
	Correct
	// Wrong 预期内的失败（配错、顺序错、未命中）
	Wrong
	// Completed 这一步使游戏完成
	Completed
)

// String 返回结果名称
func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "Ignored"
	case Correct:
		return "Correct"
	case Wrong:
		return "Wrong"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// completion 一次性完成守卫
type completion struct {
	done       bool
	OnComplete func()
}

// IsComplete 游戏是否已完成
func (c *completion) IsComplete() bool {
	return c.done
}

// start 没有任何目标时立即完成
func (c *completion) start(empty bool) Outcome {
	if empty && c.complete() {
		return Completed
	}
	return Ignored
}

// complete 第一次调用时标记完成并回调，返回是否为第一次
func (c *completion) complete() bool {
	if c.done {
		return false
	}
	c.done = true
	if c.OnComplete != nil {
		c.OnComplete()
	}
	return true
}
