package term

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/decker502/solarstory/pkg/game"
)

const (
	narrationRows = 5
	gameTop       = 5
	nextLabel     = "[ Next > ]"
	confettiCount = 40
	confettiLife  = 3.0
	cueBlink      = 0.5
)

type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// cellButton 布局后的控件（单行）
type cellButton struct {
	control game.Control
	bounds  cellRect
	// key 键盘快捷键（'1'..'9'），0 表示没有
	key rune
}

func (b cellButton) clickable() bool {
	return b.control.State != game.ControlHidden && b.control.State != game.ControlDisabled
}

type confetti struct {
	x, y  float64
	vy    float64
	color int
	life  float64
}

// UI 终端界面状态，实现 game.UI
type UI struct {
	width, height int

	narration string
	onAdvance func()
	// cued 朗读完毕，"下一步"闪烁
	cued     bool
	cueClock float64
	title     string
	speaker   string
	dialogue  string
	game      *game.GameUI
	buttons   []cellButton
	progress  float64
	scene     int
	total     int

	confetti []confetti
	random   *rand.Rand
}

// NewUI 创建终端界面，尺寸以字符格为单位
func NewUI(width, height int) *UI {
	return &UI{width: width, height: height, random: rand.New(rand.NewSource(7))}
}

// Resize 终端尺寸变化
func (u *UI) Resize(width, height int) {
	u.width, u.height = width, height
	u.relayout()
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

// nextHighlighted 闪烁中"下一步"当前是否高亮
func (u *UI) nextHighlighted() bool {
	return u.cued && math.Mod(u.cueClock, 2*cueBlink) < cueBlink
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

func (u *UI) ShowGameUI(ui game.GameUI) {
	copied := ui
	copied.Controls = append([]game.Control(nil), ui.Controls...)
	u.game = &copied
	u.relayout()
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

// Celebrate 在屏幕上方撒下彩屑
func (u *UI) Celebrate() {
	for i := 0; i < confettiCount; i++ {
		u.confetti = append(u.confetti, confetti{
			x:     u.random.Float64() * float64(u.width),
			y:     -u.random.Float64() * 4,
			vy:    4 + u.random.Float64()*6,
			color: i,
			life:  confettiLife,
		})
	}
}

// Update 推进彩屑
func (u *UI) Update(dt float64) {
	if u.cued {
		u.cueClock += dt
	}
	kept := u.confetti[:0]
	for _, c := range u.confetti {
		c.y += c.vy * dt
		c.life -= dt
		if c.life > 0 && int(c.y) < u.height {
			kept = append(kept, c)
		}
	}
	u.confetti = kept
}

// narrationBox 底部旁白框（含边框）
func (u *UI) narrationBox() cellRect {
	return cellRect{x: 0, y: u.height - narrationRows, w: u.width, h: narrationRows}
}

// nextButton 旁白框右下角的按钮
func (u *UI) nextButton() cellRect {
	box := u.narrationBox()
	n := utf8.RuneCountInString(nextLabel)
	return cellRect{x: box.x + box.w - n - 2, y: box.y + box.h - 2, w: n, h: 1}
}

// controlsTop 控件第一行所在行
func (u *UI) controlsTop() int {
	top := gameTop
	if u.game != nil {
		if u.game.Title != "" {
			top++
		}
		if u.game.Prompt != "" {
			top++
		}
	}
	return top + 1
}

// relayout 按 Row 分行排列控件，每行居中；隐藏的控件保留位置
func (u *UI) relayout() {
	u.buttons = nil
	if u.game == nil {
		return
	}
	rows := make(map[int][]game.Control)
	var order []int
	for _, c := range u.game.Controls {
		if _, ok := rows[c.Row]; !ok {
			order = append(order, c.Row)
		}
		rows[c.Row] = append(rows[c.Row], c)
	}
	sort.Ints(order)

	y := u.controlsTop()
	key := '1'
	for _, row := range order {
		cs := rows[row]
		total := 0
		for i, c := range cs {
			total += utf8.RuneCountInString(buttonLabel(c))
			if i > 0 {
				total++
			}
		}
		x := (u.width - total) / 2
		if x < 0 {
			x = 0
		}
		for _, c := range cs {
			n := utf8.RuneCountInString(buttonLabel(c))
			b := cellButton{control: c, bounds: cellRect{x: x, y: y, w: n, h: 1}}
			if key <= '9' {
				b.key = key
				key++
			}
			u.buttons = append(u.buttons, b)
			x += n + 1
		}
		y += 2
	}
}

// buttonLabel 控件的显示文本，选中的控件加星号
func buttonLabel(c game.Control) string {
	label := c.Label
	if label == "" {
		label = c.ID
	}
	switch c.State {
	case game.ControlSelected:
		return "[*" + label + "*]"
	case game.ControlDone:
		return "[+" + label + "+]"
	default:
		return "[ " + label + " ]"
	}
}

// Click 处理字符格坐标上的点击，返回 true 表示被界面消费
// 旁白打开时只响应旁白框：按钮推进，框内其他位置被吞掉，框外交给场景
func (u *UI) Click(x, y int) bool {
	if u.onAdvance != nil {
		if u.nextButton().contains(x, y) {
			u.Advance()
			return true
		}
		return u.narrationBox().contains(x, y)
	}
	for _, b := range u.buttons {
		if !b.bounds.contains(x, y) {
			continue
		}
		u.press(b)
		return true
	}
	return false
}

// Key 处理快捷键：空格 / 回车推进旁白，数字键点按对应控件（旁白打开时无效）
func (u *UI) Key(r rune) bool {
	if r == ' ' || r == '\r' || r == '\n' {
		return u.Advance()
	}
	if u.onAdvance != nil {
		return false
	}
	for _, b := range u.buttons {
		if b.key != 0 && b.key == r {
			u.press(b)
			return true
		}
	}
	return false
}

func (u *UI) press(b cellButton) {
	if !b.clickable() || u.game == nil || u.game.OnControl == nil {
		return
	}
	u.game.OnControl(b.control.ID)
}

// Advance 推进旁白，没有旁白时返回 false
func (u *UI) Advance() bool {
	if u.onAdvance == nil {
		return false
	}
	fn := u.onAdvance
	fn()
	return true
}

// wrap 按单词折行
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, field := range strings.Fields(para) {
			word := []rune(field)
			for len(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, string(word[:width]))
				word = word[width:]
			}
			switch {
			case len(word) == 0:
			case line == "":
				line = string(word)
			case utf8.RuneCountInString(line)+1+len(word) <= width:
				line += " " + string(word)
			default:
				lines = append(lines, line)
				line = string(word)
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
