// Package term 是基于 tcell 的终端后端
//
// 与桌面端共用 scenegraph：对象按透视相机投影到字符格上，
// 旁白和游戏界面画成文本行。鼠标点击按字符格路由，空格 / 回车推进旁白，
// 数字键点按控件。
package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/scenegraph"
	"github.com/decker502/solarstory/pkg/utils"
)

// Terminal 终端后端：场景图 + 界面 + 事件循环
type Terminal struct {
	screen  tcell.Screen
	Graph   *scenegraph.SceneGraph
	UI      *UI
	pointer *input.Pointer
}

// Open 创建并初始化真实终端
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	return screen, nil
}

// Aspect 终端的显示宽高比（字符格高约为宽的两倍）
func Aspect(screen tcell.Screen) float64 {
	w, h := screen.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / float64(h*2)
}

// New 在已初始化的屏幕上创建终端后端
func New(screen tcell.Screen, camera input.Camera) *Terminal {
	w, h := screen.Size()
	return &Terminal{
		screen:  screen,
		Graph:   scenegraph.NewSceneGraph(camera),
		UI:      NewUI(w, h),
		pointer: input.NewPointer(nopTarget{}),
	}
}

// nopTarget Attach 之前的鼠标事件只交给界面
type nopTarget struct{}

func (nopTarget) HandlePointerDown(utils.Vec2) {}
func (nopTarget) HandlePointerMove(utils.Vec2) {}
func (nopTarget) HandlePointerUp()             {}
func (nopTarget) HandleClick(utils.Vec2)       {}

// Attach 设置接收鼠标事件的一方（通常是 game.Orchestrator）
func (t *Terminal) Attach(target input.PointerTarget) {
	t.pointer = input.NewPointer(target)
}

// Run 事件循环：按 tickRate 调用 step 并重绘，直到 Esc / Ctrl-C 或 ctx 取消
func (t *Terminal) Run(ctx context.Context, tickRate int, step func(dt float64)) error {
	if tickRate <= 0 {
		return fmt.Errorf("invalid tick rate %d", tickRate)
	}

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(t.screen, eventChan, done)

	dt := 1 / float64(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				log.Printf("[Term] quit requested")
				return nil
			}
		case <-ticker.C:
			t.Tick(dt, step)
		}
	}
}

// pollEvents 把终端事件转发到 events，done 关闭或屏幕结束后退出
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Tick 推进一帧并重绘
func (t *Terminal) Tick(dt float64, step func(dt float64)) {
	if step != nil {
		step(dt)
	}
	t.UI.Update(dt)
	draw(t.screen, t.Graph, t.UI)
}

// Close 恢复终端
func (t *Terminal) Close() {
	t.screen.Fini()
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			t.UI.Key('\r')
		case tcell.KeyRune:
			t.UI.Key(ev.Rune())
		}
	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.UI.Resize(w, h)
		t.screen.Sync()
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.handleMouse(x, y, ev.Buttons()&tcell.Button1 != 0)
	}
	return true
}

// handleMouse 按下时先交给界面，没被消费再转发给场景
func (t *Terminal) handleMouse(x, y int, pressed bool) {
	p := t.normalize(x, y)
	switch {
	case pressed && !t.pointer.Down():
		if t.UI.Click(x, y) {
			t.pointer.Capture()
		} else {
			t.pointer.Press(p)
		}
	case !pressed && t.pointer.Down():
		t.pointer.Release(p)
	default:
		t.pointer.Move(p)
	}
}

// normalize 字符格中心转换为归一化指针坐标
func (t *Terminal) normalize(x, y int) utils.Vec2 {
	w, h := t.screen.Size()
	return input.Normalize(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h))
}
