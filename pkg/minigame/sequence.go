package minigame

// Sequence 按顺序输入目标序列
// 任何错误输入都把进度归零，不保留部分进度
type Sequence struct {
	completion

	target   []string
	progress int
}

// NewSequence 创建顺序游戏
func NewSequence(target []string) *Sequence {
	return &Sequence{target: append([]string(nil), target...)}
}

// Start 设置 OnComplete 之后调用；目标序列为空时立即完成
func (s *Sequence) Start() Outcome {
	return s.start(len(s.target) == 0)
}

// Press 输入一个标记
func (s *Sequence) Press(token string) Outcome {
	if s.done || len(s.target) == 0 {
		return Ignored
	}
	if token != s.target[s.progress] {
		s.progress = 0
		return Wrong
	}
	s.progress++
	if s.progress == len(s.target) {
		s.complete()
		return Completed
	}
	return Correct
}

// Progress 当前进度
func (s *Sequence) Progress() int {
	return s.progress
}

// Target 目标序列
func (s *Sequence) Target() []string {
	return s.target
}
