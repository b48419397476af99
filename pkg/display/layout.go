package display

import (
	"sort"
	"strings"

	"github.com/decker502/solarstory/pkg/game"
)

const (
	buttonHeight = 44.0
	buttonGap    = 10.0
	maxButtonW   = 220.0
	panelTop     = 110.0
)

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// button 布局后的控件
type button struct {
	control game.Control
	bounds  rect
}

// clickable 控件是否接受点击
func (b button) clickable() bool {
	return b.control.State != game.ControlHidden && b.control.State != game.ControlDisabled
}

// narrationBox 屏幕底部的旁白框
func narrationBox(w, h float64) rect {
	return rect{x: w * 0.1, y: h - 170, w: w * 0.8, h: 140}
}

// nextButton 旁白框右下角的"下一步"按钮
func nextButton(w, h float64) rect {
	box := narrationBox(w, h)
	return rect{x: box.x + box.w - 130, y: box.y + box.h - 50, w: 110, h: 36}
}

// layoutControls 按 Row 分行、行内等宽居中排列控件
// 隐藏的控件保留位置，布局不会因为配对进度而跳动
func layoutControls(controls []game.Control, w float64, top float64) []button {
	rows := make(map[int][]game.Control)
	var order []int
	for _, c := range controls {
		if _, ok := rows[c.Row]; !ok {
			order = append(order, c.Row)
		}
		rows[c.Row] = append(rows[c.Row], c)
	}
	sort.Ints(order)

	var buttons []button
	y := top
	usable := w * 0.8
	for _, row := range order {
		cs := rows[row]
		n := float64(len(cs))
		bw := (usable - buttonGap*(n-1)) / n
		if bw > maxButtonW {
			bw = maxButtonW
		}
		total := bw*n + buttonGap*(n-1)
		x := (w - total) / 2
		for _, c := range cs {
			buttons = append(buttons, button{control: c, bounds: rect{x: x, y: y, w: bw, h: buttonHeight}})
			x += bw + buttonGap
		}
		y += buttonHeight + buttonGap
	}
	return buttons
}

// wrap 按宽度折行，measure 返回一行文本的像素宽度
func wrap(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
