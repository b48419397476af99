package minigame

import (
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/timer"
	"github.com/decker502/solarstory/pkg/utils"
)

// ThreatField 威胁所在的演员集合（actors.Registry 满足该接口）
type ThreatField interface {
	Remove(id ecs.EntityID) bool
	Within(anchor utils.Vec3, radius float64) []ecs.EntityID
}

// ClickToClear 点击清除
//
// 威胁可以逐个点击清除，也可以用范围效果（护盾）一次清除锚点半径内的
// 全部威胁；范围效果使用后进入固定时长的冷却。全部清除即完成。
type ClickToClear struct {
	completion

	field   ThreatField
	threats map[ecs.EntityID]bool
	total   int
	cleared int

	scheduler *timer.Scheduler
	cooldown  float64
	ready     bool

	// OnShieldReady 冷却结束时回调
	OnShieldReady func()
}

// NewClickToClear 创建点击清除游戏
func NewClickToClear(field ThreatField, threats []ecs.EntityID, scheduler *timer.Scheduler, cooldown float64) *ClickToClear {
	g := &ClickToClear{
		field:     field,
		threats:   make(map[ecs.EntityID]bool, len(threats)),
		scheduler: scheduler,
		cooldown:  cooldown,
		ready:     true,
	}
	for _, id := range threats {
		g.threats[id] = true
	}
	g.total = len(g.threats)
	return g
}

// Start 设置 OnComplete 之后调用；没有威胁时立即完成
func (g *ClickToClear) Start() Outcome {
	return g.start(g.total == 0)
}

// Hit 处理一次命中；ok 为 false 表示没有命中任何对象
func (g *ClickToClear) Hit(id ecs.EntityID, ok bool) Outcome {
	if g.done || !ok || !g.threats[id] {
		return Ignored
	}
	g.clear(id)
	return g.progress()
}

// AreaEffect 清除 anchor 半径 radius 内的所有威胁，返回清除数量
// 冷却期间是空操作
func (g *ClickToClear) AreaEffect(anchor utils.Vec3, radius float64) (int, Outcome) {
	if g.done || !g.ready {
		return 0, Ignored
	}

	n := 0
	for _, id := range g.field.Within(anchor, radius) {
		if g.threats[id] {
			g.clear(id)
			n++
		}
	}

	g.ready = false
	if g.scheduler == nil {
		g.ready = true
	} else {
		g.scheduler.After(g.cooldown, func() {
			g.ready = true
			if g.OnShieldReady != nil && !g.done {
				g.OnShieldReady()
			}
		})
	}

	if n == 0 {
		return 0, Wrong
	}
	return n, g.progress()
}

func (g *ClickToClear) clear(id ecs.EntityID) {
	delete(g.threats, id)
	g.field.Remove(id)
	g.cleared++
}

func (g *ClickToClear) progress() Outcome {
	if g.cleared == g.total {
		g.complete()
		return Completed
	}
	return Correct
}

// ShieldReady 范围效果是否可用
func (g *ClickToClear) ShieldReady() bool {
	return g.ready && !g.done
}

// IsThreat 是否为尚未清除的威胁
func (g *ClickToClear) IsThreat(id ecs.EntityID) bool {
	return g.threats[id]
}

// Cleared 已清除数量
func (g *ClickToClear) Cleared() int {
	return g.cleared
}

// Total 威胁总数
func (g *ClickToClear) Total() int {
	return g.total
}
