package display

import (
	"image/color"

	"github.com/decker502/solarstory/pkg/game"
)

var (
	backgroundColor = color.RGBA{8, 10, 32, 255}
	panelColor      = color.RGBA{0, 0, 0, 170}
	textColor       = color.RGBA{255, 255, 255, 255}
	accentColor     = color.RGBA{255, 204, 0, 255}
	doneColor       = color.RGBA{76, 175, 80, 255}
	selectedColor   = color.RGBA{255, 152, 0, 255}
	idleColor       = color.RGBA{63, 81, 181, 255}
	disabledColor   = color.RGBA{90, 90, 90, 255}
)

var confettiColors = []color.RGBA{
	{255, 107, 107, 255},
	{78, 205, 196, 255},
	{255, 230, 109, 255},
	{149, 225, 211, 255},
	{243, 129, 129, 255},
}

// propColors 每种道具的基础颜色
var propColors = map[game.Prop]color.RGBA{
	game.PropSun:       {255, 170, 0, 255},
	game.PropPlanet:    {205, 92, 92, 255},
	game.PropSparky:    {255, 221, 68, 255},
	game.PropSpark:     {255, 136, 0, 255},
	game.PropTrail:     {255, 170, 0, 255},
	game.PropRock:      {139, 119, 101, 255},
	game.PropTractor:   {46, 125, 50, 255},
	game.PropSatellite: {192, 192, 192, 255},
	game.PropPowerPole: {121, 85, 72, 255},
	game.PropEarth:     {33, 150, 243, 255},
	game.PropPlane:     {236, 239, 241, 255},
	game.PropChild:     {255, 183, 77, 255},
	game.PropAurora:    {0, 255, 136, 255},
	game.PropStation:   {176, 190, 197, 255},
	game.PropAstronaut: {255, 255, 255, 255},
	game.PropWave:      {255, 68, 68, 255},
	game.PropShield:    {0, 170, 255, 255},
	game.PropHouse:     {215, 204, 200, 255},
	game.PropGround:    {51, 105, 30, 255},
}

// propColor 道具颜色乘以透明度（预乘 alpha）
func propColor(p game.Prop, opacity float64) color.RGBA {
	c, ok := propColors[p]
	if !ok {
		c = color.RGBA{200, 200, 200, 255}
	}
	return fade(c, opacity)
}

func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

// controlColor 按钮底色
func controlColor(state game.ControlState) color.RGBA {
	switch state {
	case game.ControlSelected:
		return selectedColor
	case game.ControlDone:
		return doneColor
	case game.ControlDisabled:
		return disabledColor
	default:
		return idleColor
	}
}
