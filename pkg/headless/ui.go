package headless

import (
	"fmt"

	"github.com/decker502/solarstory/pkg/game"
)

// UI 记录型 UI
type UI struct {
	Narration  string
	Narrations []string
	onAdvance  func()
	// Cued 当前旁白已朗读完毕
	Cued       bool
	Title      string
	Dialogue   string
	Game       *game.GameUI
	Progress   float64
	Scene      int
	Total      int
	Celebrated int
	Calls      []string
}

// NewUI 创建记录型 UI
func NewUI() *UI {
	return &UI{}
}

func (u *UI) ShowNarration(text string, onAdvance func()) {
	u.Narration, u.onAdvance, u.Cued = text, onAdvance, false
	u.Narrations = append(u.Narrations, text)
	u.record("narration %q", text)
}

func (u *UI) HideNarration() {
	u.Narration, u.onAdvance, u.Cued = "", nil, false
	u.record("hide narration")
}

func (u *UI) CueNext() {
	if u.onAdvance == nil {
		return
	}
	u.Cued = true
	u.record("cue next")
}

func (u *UI) ShowSceneTitle(text string) {
	u.Title = text
	u.record("title %q", text)
}

func (u *UI) HideSceneTitle() {
	u.Title = ""
}

func (u *UI) ShowDialogue(speaker, text string) {
	u.Dialogue = speaker + ": " + text
	u.record("dialogue %q", u.Dialogue)
}

func (u *UI) HideDialogue() {
	u.Dialogue = ""
}

func (u *UI) ShowGameUI(ui game.GameUI) {
	copied := ui
	copied.Controls = append([]game.Control(nil), ui.Controls...)
	u.Game = &copied
}

func (u *UI) HideGameUI() {
	u.Game = nil
}

func (u *UI) UpdateProgress(percent float64) {
	u.Progress = percent
}

func (u *UI) UpdateSceneIndicator(current, total int) {
	u.Scene, u.Total = current, total
	u.record("scene %d/%d", current, total)
}

func (u *UI) Celebrate() {
	u.Celebrated++
}

// Advance 模拟点击"下一步"；没有打开的旁白时返回 false
func (u *UI) Advance() bool {
	fn := u.onAdvance
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Press 模拟点击游戏界面控件；控件不存在、隐藏或禁用时返回 false
func (u *UI) Press(id string) bool {
	if u.Game == nil || u.Game.OnControl == nil {
		return false
	}
	for _, c := range u.Game.Controls {
		if c.ID == id && c.State != game.ControlHidden && c.State != game.ControlDisabled {
			u.Game.OnControl(id)
			return true
		}
	}
	return false
}

// Control 返回当前游戏界面中的控件
func (u *UI) Control(id string) (game.Control, bool) {
	if u.Game == nil {
		return game.Control{}, false
	}
	for _, c := range u.Game.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return game.Control{}, false
}

// NarrationOpen 当前是否有等待推进的旁白
func (u *UI) NarrationOpen() bool {
	return u.onAdvance != nil
}

func (u *UI) record(format string, args ...interface{}) {
	u.Calls = append(u.Calls, fmt.Sprintf(format, args...))
}
