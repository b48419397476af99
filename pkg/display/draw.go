package display

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/scenegraph"
)

// Display 桌面端的可视与界面后端
type Display struct {
	Graph *scenegraph.SceneGraph
	UI    *UI

	faces  *Faces
	width  int
	height int
}

// New 创建桌面后端；width/height 为逻辑屏幕尺寸
func New(width, height int, camera input.Camera) (*Display, error) {
	faces, err := LoadFaces()
	if err != nil {
		return nil, err
	}
	return &Display{
		Graph:  scenegraph.NewSceneGraph(camera),
		UI:     NewUI(width, height),
		faces:  faces,
		width:  width,
		height: height,
	}, nil
}

// Update 每个 tick 调用
func (d *Display) Update(dt float64) {
	d.UI.Update(dt)
}

// Draw 绘制场景图与界面
func (d *Display) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	d.drawScene(screen)
	d.drawUI(screen)
}

func (d *Display) drawScene(screen *ebiten.Image) {
	w, h := float64(d.width), float64(d.height)
	sprites := d.Graph.Sprites()

	// 星空总在最底层
	for _, s := range sprites {
		if s.Prop != game.PropStarfield {
			continue
		}
		offset := scenegraph.StarOffset(s.Rotation)
		for i, star := range d.Graph.Stars {
			x := math.Mod(star.X+1+offset, 2) - 1
			px, py := (x+1)/2*w, (1-star.Y)/2*h
			size := float32(1 + i%3)
			vector.DrawFilledRect(screen, float32(px), float32(py), size, size, fade(textColor, s.Opacity*0.8), false)
		}
	}

	for _, s := range sprites {
		px, py := input.ToPixels(s.Center, w, h)
		r := s.Radius * h / 2
		switch s.Prop {
		case game.PropStarfield:
			continue
		case game.PropGround:
			vector.DrawFilledRect(screen, 0, float32(py), float32(w), float32(h-py), propColor(s.Prop, s.Opacity), false)
			continue
		case game.PropPowerPole:
			vector.DrawFilledRect(screen, float32(px-r*0.15), float32(py-r*2), float32(r*0.3), float32(r*3), propColor(s.Prop, s.Opacity), false)
			continue
		case game.PropSun:
			// 日冕
			vector.DrawFilledCircle(screen, float32(px), float32(py), float32(r*1.3), propColor(s.Prop, s.Opacity*0.3), true)
		case game.PropShield, game.PropWave:
			vector.StrokeCircle(screen, float32(px), float32(py), float32(r), 4, propColor(s.Prop, s.Opacity), true)
			continue
		}
		vector.DrawFilledCircle(screen, float32(px), float32(py), float32(r), propColor(s.Prop, s.Opacity), true)

		if s.Prop == game.PropSun || s.Prop == game.PropSparky {
			// 自转标记
			a := s.Rotation.Y
			vector.StrokeLine(screen, float32(px), float32(py),
				float32(px+math.Cos(a)*r), float32(py+math.Sin(a)*r), 2, fade(textColor, s.Opacity*0.6), true)
		}
	}
}

func (d *Display) drawUI(screen *ebiten.Image) {
	u := d.UI
	w, h := float64(d.width), float64(d.height)

	// 进度条与场景指示
	vector.DrawFilledRect(screen, 0, 0, float32(w), 6, panelColor, false)
	vector.DrawFilledRect(screen, 0, 0, float32(w*u.progress/100), 6, accentColor, false)
	if u.total > 0 {
		d.drawText(screen, fmt.Sprintf("Scene %d / %d", u.scene, u.total), d.faces.Small, w-20, 16, text.AlignEnd, textColor)
	}

	if u.title != "" {
		d.drawText(screen, u.title, d.faces.Title, w/2, 40, text.AlignCenter, accentColor)
	}

	if u.dialogue != "" {
		box := rect{x: w - 420, y: 60, w: 380, h: 80}
		d.drawPanel(screen, box)
		d.drawWrapped(screen, u.speaker+": "+u.dialogue, d.faces.Body, box.x+12, box.y+12, box.w-24)
	}

	if u.game != nil {
		d.drawText(screen, u.game.Title, d.faces.Title, w/2, 60, text.AlignCenter, textColor)
		d.drawText(screen, u.game.Prompt, d.faces.Small, w/2, 95, text.AlignCenter, textColor)
		bottom := panelTop
		for _, b := range u.buttons {
			bottom = math.Max(bottom, b.bounds.y+b.bounds.h)
			if b.control.State == game.ControlHidden {
				continue
			}
			r := b.bounds
			vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), controlColor(b.control.State), false)
			vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, textColor, false)
			d.drawText(screen, b.control.Label, d.faces.Small, r.x+r.w/2, r.y+r.h/2-8, text.AlignCenter, textColor)
		}
		if u.game.Status != "" {
			d.drawText(screen, u.game.Status, d.faces.Body, w/2, bottom+16, text.AlignCenter, accentColor)
		}
		if u.game.Detail != "" {
			box := rect{x: w * 0.2, y: bottom + 50, w: w * 0.6, h: 120}
			d.drawPanel(screen, box)
			d.drawWrapped(screen, u.game.Detail, d.faces.Body, box.x+12, box.y+12, box.w-24)
		}
	}

	if u.onAdvance != nil {
		box := narrationBox(w, h)
		d.drawPanel(screen, box)
		d.drawWrapped(screen, u.narration, d.faces.Body, box.x+16, box.y+16, box.w-170)
		next := nextButton(w, h)
		next.y += u.nextBounce()
		fill := idleColor
		if u.cued {
			fill = accentColor
		}
		vector.DrawFilledRect(screen, float32(next.x), float32(next.y), float32(next.w), float32(next.h), fill, false)
		d.drawText(screen, "Next >", d.faces.Small, next.x+next.w/2, next.y+10, text.AlignCenter, textColor)
	}

	for _, c := range u.confetti {
		vector.DrawFilledRect(screen, float32(c.x), float32(c.y), 8, 12, fade(confettiColors[c.color], math.Min(1, c.life)), false)
	}
}

func (d *Display) drawPanel(screen *ebiten.Image, r rect) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), panelColor, false)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, accentColor, false)
}

func (d *Display) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, face, op)
}

func (d *Display) drawWrapped(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, width float64) {
	lineHeight := face.Size * 1.4
	measure := func(line string) float64 {
		w, _ := text.Measure(line, face, lineHeight)
		return w
	}
	for i, line := range wrap(s, width, measure) {
		d.drawText(screen, line, face, x, y+float64(i)*lineHeight, text.AlignStart, textColor)
	}
}
