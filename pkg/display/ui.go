package display

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/solarstory/pkg/game"
)

// confetti 庆祝彩带的一片
type confetti struct {
	x, y   float64
	vx, vy float64
	color  int
	life   float64
}

const (
	confettiCount   = 120
	confettiLife    = 3.0
	confettiGravity = 300.0

	cueBounce = 6.0
	cuePeriod = 0.5
)

// UI 实现 game.UI，保存界面状态；绘制见 draw.go
type UI struct {
	width, height float64

	narration string
	onAdvance func()
	// cued 朗读完毕，"下一步"按钮开始跳动
	cued     bool
	cueClock float64
	title     string
	speaker   string
	dialogue  string
	game      *game.GameUI
	buttons   []button
	progress  float64
	scene     int
	total     int

	confetti []confetti
	random   *rand.Rand
}

// NewUI 创建界面，width/height 为逻辑屏幕尺寸
func NewUI(width, height int) *UI {
	return &UI{
		width:  float64(width),
		height: float64(height),
		random: rand.New(rand.NewSource(7)),
	}
}

func (u *UI) ShowNarration(text string, onAdvance func()) {
	u.narration, u.onAdvance = text, onAdvance
	u.cued, u.cueClock = false, 0
}

func (u *UI) HideNarration() {
	u.narration, u.onAdvance = "", nil
	u.cued, u.cueClock = false, 0
}

func (u *UI) CueNext() {
	u.cued = u.onAdvance != nil
}

// nextBounce "下一步"按钮的跳动偏移（像素，向上为负）
func (u *UI) nextBounce() float64 {
	if !u.cued {
		return 0
	}
	return -cueBounce * math.Abs(math.Sin(u.cueClock*math.Pi/cuePeriod))
}

func (u *UI) ShowSceneTitle(text string) {
	u.title = text
}

func (u *UI) HideSceneTitle() {
	u.title = ""
}

func (u *UI) ShowDialogue(speaker, text string) {
	u.speaker, u.dialogue = speaker, text
}

func (u *UI) HideDialogue() {
	u.speaker, u.dialogue = "", ""
}

// ShowGameUI 替换当前游戏界面并重新布局
func (u *UI) ShowGameUI(ui game.GameUI) {
	copied := ui
	copied.Controls = append([]game.Control(nil), ui.Controls...)
	u.game = &copied
	u.buttons = layoutControls(copied.Controls, u.width, panelTop)
}

func (u *UI) HideGameUI() {
	u.game = nil
	u.buttons = nil
}

func (u *UI) UpdateProgress(percent float64) {
	u.progress = percent
}

func (u *UI) UpdateSceneIndicator(current, total int) {
	u.scene, u.total = current, total
}

// Celebrate 从屏幕顶部撒下彩带
func (u *UI) Celebrate() {
	for i := 0; i < confettiCount; i++ {
		u.confetti = append(u.confetti, confetti{
			x:     u.random.Float64() * u.width,
			y:     -u.random.Float64() * 100,
			vx:    (u.random.Float64() - 0.5) * 200,
			vy:    u.random.Float64() * 100,
			color: i % len(confettiColors),
			life:  confettiLife,
		})
	}
	log.Printf("[UI] celebrate")
}

// Update 推进彩带与按钮动画
func (u *UI) Update(dt float64) {
	if u.cued {
		u.cueClock += dt
	}
	kept := u.confetti[:0]
	for _, c := range u.confetti {
		c.life -= dt
		if c.life <= 0 || c.y > u.height {
			continue
		}
		c.vy += confettiGravity * dt
		c.x += c.vx * dt
		c.y += c.vy * dt
		kept = append(kept, c)
	}
	u.confetti = kept
}

// Click 处理屏幕像素坐标上的点击；被界面消费时返回 true
// 旁白打开时只响应旁白框
func (u *UI) Click(x, y float64) bool {
	if u.onAdvance != nil {
		if nextButton(u.width, u.height).contains(x, y) {
			fn := u.onAdvance
			fn()
			return true
		}
		return narrationBox(u.width, u.height).contains(x, y)
	}

	if u.game == nil || u.game.OnControl == nil {
		return false
	}
	for _, b := range u.buttons {
		if !b.bounds.contains(x, y) {
			continue
		}
		if b.clickable() {
			u.game.OnControl(b.control.ID)
		}
		return true
	}
	return false
}

// Advance 键盘推进旁白（空格 / 回车）
func (u *UI) Advance() bool {
	if u.onAdvance == nil {
		return false
	}
	fn := u.onAdvance
	fn()
	return true
}
