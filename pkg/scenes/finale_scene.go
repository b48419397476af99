package scenes

import (
	"fmt"
	"math"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/minigame"
	"github.com/decker502/solarstory/pkg/utils"
)

const restartControl = "restart"

// FinaleScene 场景8：大家的一天
// 逐项恢复四个系统，庆祝后显示最终信息，"重新开始"回到场景1
type FinaleScene struct {
	Base

	sparky    game.Handle
	t         float64
	checklist *minigame.Matching
	final     bool
}

// NewFinaleScene 创建场景8
func NewFinaleScene(deps Deps, director game.Director) *FinaleScene {
	return &FinaleScene{Base: newBase(deps, 7, director)}
}

func (s *FinaleScene) Init() {
	s.addProp(game.PropGround, utils.V3(0, -3, 0))
	s.addProp(game.PropTractor, utils.V3(-5, -2, 0))
	for i := 0; i < 4; i++ {
		s.addProp(game.PropPowerPole, utils.V3(float64(i)*2-1, -1.5, -2))
	}
	s.addProp(game.PropHouse, utils.V3(6, -1.5, -2))
	s.addProp(game.PropSun, utils.V3(-6, 4, -5))
	s.sparky = s.addProp(game.PropSparky, utils.V3(-3, 3, -2))
	s.addProp(game.PropEarth, utils.V3(5, 4, -6))
	for i := 0; i < 5; i++ {
		s.addProp(game.PropChild, utils.V3(float64(i-2), -2.5, 2))
	}

	s.begin(s.timings.IntroDelay, s.startChecklist)
}

func (s *FinaleScene) startChecklist() {
	s.enterPhase(PhaseMiniGame)
	s.checklist = minigame.NewMatching(s.itemIDs())
	s.miniGame = s.checklist
	s.checklist.OnComplete = func() {
		s.after(s.timings.BridgeDelay, s.celebrate)
	}
	s.refresh()
	s.checklist.Start()
}

// Checklist 系统恢复清单
func (s *FinaleScene) Checklist() *minigame.Matching {
	return s.checklist
}

func (s *FinaleScene) refresh() {
	ui := game.GameUI{
		Title:  s.text.Line("title"),
		Prompt: s.text.Line("prompt"),
		Status: fmt.Sprintf(s.text.Line("counter"), s.checklist.Matched(), len(s.checklist.Keys())),
	}
	for i, it := range s.text.Items {
		c := game.Control{ID: it.ID, Label: it.Label, Row: i}
		if s.checklist.IsMatched(it.ID) {
			c.Label, c.State = "✓ "+it.Text, game.ControlDone
		}
		ui.Controls = append(ui.Controls, c)
	}
	s.showGame(ui, s.onControl)
}

func (s *FinaleScene) onControl(id string) {
	if !s.interactionEnabled {
		return
	}
	switch s.checklist.Mark(id) {
	case minigame.Correct, minigame.Completed:
		s.sound(game.SoundSuccess)
		s.refresh()
	}
}

// celebrate 全部恢复：音效、彩带、两条结束旁白，然后显示最终信息
func (s *FinaleScene) celebrate() {
	s.UI.HideGameUI()
	s.sound(game.SoundBeep)
	s.UI.Celebrate()
	s.complete(s.text.Outro, s.showFinal)
}

// showFinal 最终信息与"重新开始"按钮
func (s *FinaleScene) showFinal() {
	s.final = true
	s.showGame(game.GameUI{
		Title:    s.text.Line("finalTitle"),
		Prompt:   s.text.Line("finalPrompt"),
		Detail:   s.text.Line("finalDetail"),
		Controls: []game.Control{{ID: restartControl, Label: s.text.Line("restart")}},
	}, func(id string) {
		if id != restartControl {
			return
		}
		s.sound(game.SoundClick)
		s.director.Restart()
	})
}

// ShowingFinal 是否正在显示最终信息
func (s *FinaleScene) ShowingFinal() bool {
	return s.final
}

func (s *FinaleScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.t += dt
	s.placeProp(s.sparky, utils.V3(-3, 3+math.Sin(s.t*2)*0.2, -2), utils.V3(0, s.t, 0), 1)
}
