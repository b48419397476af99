package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/scenegraph"
	"github.com/decker502/solarstory/pkg/utils"
)

// glyph 道具在终端中的字符与颜色
type glyph struct {
	r     rune
	color tcell.Color
	// ring 只画轮廓（护盾、辐射波）
	ring bool
}

var glyphs = map[game.Prop]glyph{
	game.PropSun:       {'O', tcell.ColorYellow, false},
	game.PropPlanet:    {'o', tcell.ColorOrange, false},
	game.PropSparky:    {'*', tcell.ColorWhite, false},
	game.PropSpark:     {'+', tcell.ColorGold, false},
	game.PropTrail:     {'.', tcell.ColorSilver, false},
	game.PropRock:      {'#', tcell.ColorGray, false},
	game.PropTractor:   {'T', tcell.ColorGreen, false},
	game.PropSatellite: {'S', tcell.ColorSilver, false},
	game.PropPowerPole: {'|', tcell.ColorSaddleBrown, false},
	game.PropEarth:     {'@', tcell.ColorDodgerBlue, false},
	game.PropPlane:     {'>', tcell.ColorWhite, false},
	game.PropChild:     {'i', tcell.ColorPink, false},
	game.PropAurora:    {'~', tcell.ColorLime, false},
	game.PropStation:   {'H', tcell.ColorLightSteelBlue, false},
	game.PropAstronaut: {'A', tcell.ColorWhite, false},
	game.PropWave:      {'(', tcell.ColorRed, true},
	game.PropShield:    {'o', tcell.ColorAqua, true},
	game.PropHouse:     {'^', tcell.ColorTan, false},
}

var confettiColors = []tcell.Color{
	tcell.ColorRed, tcell.ColorYellow, tcell.ColorLime, tcell.ColorAqua, tcell.ColorFuchsia,
}

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleDone   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePicked = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// draw 绘制一帧
func draw(screen tcell.Screen, graph *scenegraph.SceneGraph, ui *UI) {
	screen.Clear()
	w, h := screen.Size()
	drawScene(screen, graph, w, h)
	drawUI(screen, ui, w, h)
	screen.Show()
}

func drawScene(screen tcell.Screen, graph *scenegraph.SceneGraph, w, h int) {
	fw, fh := float64(w), float64(h)
	for _, s := range graph.Sprites() {
		switch s.Prop {
		case game.PropStarfield:
			offset := scenegraph.StarOffset(s.Rotation)
			for _, star := range graph.Stars {
				x := star.X + offset
				if x > 1 {
					x -= 2
				} else if x < -1 {
					x += 2
				}
				px, py := input.ToPixels(utils.Vec2{X: x, Y: star.Y}, fw, fh)
				put(screen, int(px), int(py), '.', styleDim)
			}
			continue
		case game.PropGround:
			_, py := input.ToPixels(s.Center, fw, fh)
			for y := int(py); y < h; y++ {
				for x := 0; x < w; x++ {
					put(screen, x, y, '_', tcell.StyleDefault.Foreground(tcell.ColorDarkGreen))
				}
			}
			continue
		}

		g, ok := glyphs[s.Prop]
		if !ok {
			g = glyph{'?', tcell.ColorWhite, false}
		}
		style := tcell.StyleDefault.Foreground(g.color)
		if s.Opacity < 0.35 {
			style = style.Dim(true)
		}
		px, py := input.ToPixels(s.Center, fw, fh)
		// 字符格高约为宽的两倍
		ry := s.Radius * fh / 2
		rx := ry * 2
		if ry < 0.75 {
			put(screen, int(px), int(py), g.r, style)
			continue
		}
		for y := int(math.Floor(py - ry)); y <= int(math.Ceil(py+ry)); y++ {
			for x := int(math.Floor(px - rx)); x <= int(math.Ceil(px+rx)); x++ {
				dx := (float64(x) + 0.5 - px) / rx
				dy := (float64(y) + 0.5 - py) / ry
				d := dx*dx + dy*dy
				if d > 1 || (g.ring && d < 0.6) {
					continue
				}
				put(screen, x, y, g.r, style)
			}
		}
	}
}

func drawUI(screen tcell.Screen, ui *UI, w, h int) {
	if ui.total > 0 {
		putString(screen, 1, 0, fmt.Sprintf("Scene %d / %d", ui.scene, ui.total), styleText)
	}
	barW := 20
	filled := int(math.Round(ui.progress / 100 * float64(barW)))
	if filled > barW {
		filled = barW
	}
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat("-", barW-filled) + "]"
	putString(screen, w-len(bar)-1, 0, bar, styleDim)

	if ui.title != "" {
		putCentered(screen, w, 2, ui.title, styleTitle)
	}
	if ui.dialogue != "" {
		putCentered(screen, w, 3, ui.speaker+": "+ui.dialogue, styleText)
	}

	if g := ui.game; g != nil {
		y := gameTop
		if g.Title != "" {
			putCentered(screen, w, y, g.Title, styleTitle)
			y++
		}
		if g.Prompt != "" {
			putCentered(screen, w, y, g.Prompt, styleDim)
		}
		last := y
		for _, b := range ui.buttons {
			last = b.bounds.y
			if b.control.State == game.ControlHidden {
				continue
			}
			style := styleButton
			switch b.control.State {
			case game.ControlSelected:
				style = stylePicked
			case game.ControlDone:
				style = styleDone
			case game.ControlDisabled:
				style = styleDim
			}
			putString(screen, b.bounds.x, b.bounds.y, buttonLabel(b.control), style)
		}
		if g.Status != "" {
			putCentered(screen, w, last+2, g.Status, styleText)
		}
		for i, line := range wrap(g.Detail, w-4) {
			putCentered(screen, w, last+3+i, line, styleDim)
		}
	}

	if ui.narration != "" {
		box := ui.narrationBox()
		putString(screen, box.x, box.y, strings.Repeat("-", box.w), styleDim)
		lines := wrap(ui.narration, box.w-4)
		for i, line := range lines {
			if i >= box.h-2 {
				break
			}
			putString(screen, box.x+2, box.y+1+i, line, styleText)
		}
		next := ui.nextButton()
		style := styleButton
		if ui.nextHighlighted() {
			style = stylePicked
		}
		putString(screen, next.x, next.y, nextLabel, style)
	}

	for _, c := range ui.confetti {
		put(screen, int(c.x), int(c.y), '*', tcell.StyleDefault.Foreground(confettiColors[c.color%len(confettiColors)]))
	}
}

// put 越界的格子直接忽略
func put(screen tcell.Screen, x, y int, r rune, style tcell.Style) {
	w, h := screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	screen.SetContent(x, y, r, nil, style)
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		put(screen, x, y, r, style)
		x++
	}
}

func putCentered(screen tcell.Screen, w, y int, s string, style tcell.Style) {
	n := len([]rune(s))
	x := (w - n) / 2
	if x < 0 {
		x = 0
	}
	putString(screen, x, y, s, style)
}
