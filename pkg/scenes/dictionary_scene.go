package scenes

import (
	"math"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

const continueControl = "continue"

// DictionaryScene 场景5：太空天气词典
// 点击名词显示并朗读释义，"继续"按钮完成场景
type DictionaryScene struct {
	Base

	sunny   game.Handle
	sparky  game.Handle
	bounce  float64
	current string
	viewed  map[string]bool
}

// NewDictionaryScene 创建场景5
func NewDictionaryScene(deps Deps, director game.Director) *DictionaryScene {
	return &DictionaryScene{Base: newBase(deps, 4, director), viewed: make(map[string]bool)}
}

func (s *DictionaryScene) Init() {
	s.addProp(game.PropStarfield, utils.Vec3{})
	s.sunny = s.addProp(game.PropSun, utils.V3(-4, 1, 0))
	s.sparky = s.addProp(game.PropSparky, utils.V3(4, 1, 0))

	s.begin(s.timings.IntroDelay, func() {
		s.enterPhase(PhaseFreeInteraction)
		s.refresh()
	})
}

func (s *DictionaryScene) refresh() {
	ui := game.GameUI{
		Title:  s.text.Line("title"),
		Prompt: s.text.Line("prompt"),
	}
	for i, it := range s.text.Items {
		c := game.Control{ID: it.ID, Label: it.Label, Row: i}
		if it.ID == s.current {
			c.State = game.ControlSelected
		}
		ui.Controls = append(ui.Controls, c)
	}
	ui.Controls = append(ui.Controls, game.Control{ID: continueControl, Label: s.text.Line("continue"), Row: len(s.text.Items)})

	if it, ok := s.item(s.current); ok {
		ui.Status = it.Label
		ui.Detail = it.Text
	}
	s.showGame(ui, s.onControl)
}

func (s *DictionaryScene) onControl(id string) {
	if !s.interactionEnabled {
		return
	}
	if id == continueControl {
		s.sound(game.SoundSuccess)
		s.finish()
		return
	}

	it, ok := s.item(id)
	if !ok {
		return
	}
	s.sound(game.SoundClick)
	s.current = id
	s.viewed[id] = true
	s.refresh()
	if s.Audio != nil {
		s.Audio.StopSpeaking()
		s.Audio.Speak(it.Text, nil)
	}
}

// Viewed 已查看过的名词数量
func (s *DictionaryScene) Viewed() int {
	return len(s.viewed)
}

func (s *DictionaryScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.bounce += dt * 2
	s.placeProp(s.sunny, utils.V3(-4, 1+math.Sin(s.bounce)*0.3, 0), utils.V3(0, s.bounce*0.25, 0), 1)
	sparkle := s.bounce * 1.5
	s.placeProp(s.sparky, utils.V3(4, 1+math.Cos(sparkle)*0.3, 0), utils.Vec3{}, utils.Pulse(sparkle*2, 0.2))
}
