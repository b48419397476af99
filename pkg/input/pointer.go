package input

import "github.com/decker502/solarstory/pkg/utils"

// PointerTarget 接收鼠标事件的一方（game.Orchestrator 满足该接口）
type PointerTarget interface {
	HandlePointerDown(p utils.Vec2)
	HandlePointerMove(p utils.Vec2)
	HandlePointerUp()
	HandleClick(p utils.Vec2)
}

// Pointer 把后端的按下 / 移动 / 抬起翻译成场景事件
//
// 顺序与浏览器一致：down → move* → up → click。被界面控件吃掉的
// 按下（Capture）直到抬起都不会转发给场景。
type Pointer struct {
	target   PointerTarget
	down     bool
	captured bool
}

// NewPointer 创建指针路由
func NewPointer(target PointerTarget) *Pointer {
	return &Pointer{target: target}
}

// Press 按下并转发给场景
func (p *Pointer) Press(pos utils.Vec2) {
	p.down, p.captured = true, false
	p.target.HandlePointerDown(pos)
}

// Capture 按下被界面消费
func (p *Pointer) Capture() {
	p.down, p.captured = true, true
}

// Move 移动（无论是否按下都转发，被界面消费时除外）
func (p *Pointer) Move(pos utils.Vec2) {
	if p.captured {
		return
	}
	p.target.HandlePointerMove(pos)
}

// Release 抬起，未被消费时补发一次点击
func (p *Pointer) Release(pos utils.Vec2) {
	if !p.down {
		return
	}
	wasCaptured := p.captured
	p.down, p.captured = false, false
	if wasCaptured {
		return
	}
	p.target.HandlePointerUp()
	p.target.HandleClick(pos)
}

// Down 是否处于按下状态
func (p *Pointer) Down() bool {
	return p.down
}
