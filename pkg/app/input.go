package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/utils"
)

// overlay 先于场景处理点击的界面层
type overlay interface {
	Click(x, y float64) bool
}

// pointerInput 每帧轮询鼠标与触摸，转换为归一化坐标后交给编排器
//
// 先检查触摸（移动设备），再检查鼠标。按下先交给界面，
// 未被消费才转发给场景；只跟踪第一个触点。
type pointerInput struct {
	ui            overlay
	orchestrator  *game.Orchestrator
	mouse         *input.Pointer
	width, height float64

	lastX, lastY int

	touchID       ebiten.TouchID
	touching      bool
	touchCaptured bool
	touchX        int
	touchY        int
}

func newPointerInput(ui overlay, orchestrator *game.Orchestrator, width, height int) *pointerInput {
	return &pointerInput{
		ui:           ui,
		orchestrator: orchestrator,
		mouse:        input.NewPointer(orchestrator),
		width:        float64(width),
		height:       float64(height),
		touchID:      -1,
	}
}

func (p *pointerInput) normalize(x, y int) utils.Vec2 {
	return input.Normalize(float64(x), float64(y), p.width, p.height)
}

func (p *pointerInput) update() {
	if p.updateTouch() {
		return
	}
	p.updateMouse()
}

// updateTouch 处理触摸，本帧有触摸活动时返回 true
func (p *pointerInput) updateTouch() bool {
	if !p.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return false
		}
		p.touchID = ids[0]
		p.touching = true
		p.touchX, p.touchY = ebiten.TouchPosition(p.touchID)
		p.touchCaptured = p.ui.Click(float64(p.touchX), float64(p.touchY))
		if !p.touchCaptured {
			p.orchestrator.HandleTouchStart(p.normalize(p.touchX, p.touchY))
		}
		return true
	}

	if inpututil.IsTouchJustReleased(p.touchID) {
		p.touching = false
		if !p.touchCaptured {
			// 抬起时使用最后一次触摸位置
			pos := p.normalize(p.touchX, p.touchY)
			p.orchestrator.HandleTouchEnd()
			p.orchestrator.HandleClick(pos)
		}
		p.touchID = -1
		return true
	}

	x, y := ebiten.TouchPosition(p.touchID)
	if (x != p.touchX || y != p.touchY) && !p.touchCaptured {
		p.orchestrator.HandleTouchMove(p.normalize(x, y))
	}
	p.touchX, p.touchY = x, y
	return true
}

func (p *pointerInput) updateMouse() {
	x, y := ebiten.CursorPosition()
	pos := p.normalize(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if p.ui.Click(float64(x), float64(y)) {
			p.mouse.Capture()
		} else {
			p.mouse.Press(pos)
		}
	} else if x != p.lastX || y != p.lastY {
		p.mouse.Move(pos)
	}
	p.lastX, p.lastY = x, y

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.mouse.Release(pos)
	}
}
