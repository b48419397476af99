package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/minigame"
	"github.com/decker502/solarstory/pkg/utils"
)

const (
	cablePrefix  = "cable:"
	socketPrefix = "socket:"
)

// CableScene 场景3：帮助农民和工程师
// 两条旁白后进入线缆配对：先点线缆，再点同色插座
type CableScene struct {
	Base

	satellite game.Handle
	wobble    float64
	matching  *minigame.Matching
}

// NewCableScene 创建场景3
func NewCableScene(deps Deps, director game.Director) *CableScene {
	return &CableScene{Base: newBase(deps, 2, director)}
}

func (s *CableScene) Init() {
	s.addProp(game.PropGround, utils.V3(0, -3, 0))
	s.addProp(game.PropTractor, utils.V3(-3, -2, 0))
	s.satellite = s.addProp(game.PropSatellite, utils.V3(3, 3, -2))
	for i := 0; i < 3; i++ {
		s.addProp(game.PropPowerPole, utils.V3(float64(i)*2, -1.5, -1))
	}

	s.begin(s.timings.IntroDelay, s.startGame)
}

func (s *CableScene) startGame() {
	s.enterPhase(PhaseMiniGame)
	s.matching = minigame.NewMatching(s.itemIDs())
	s.miniGame = s.matching
	s.matching.OnComplete = func() {
		s.after(s.timings.CompleteDelay, func() {
			s.sound(game.SoundBeep)
			s.finish()
		})
	}
	s.refresh()
	s.matching.Start()
}

// Matching 线缆配对状态
func (s *CableScene) Matching() *minigame.Matching {
	return s.matching
}

// refresh 按配对状态重建游戏界面
func (s *CableScene) refresh() {
	ui := game.GameUI{
		Title:  s.text.Line("title"),
		Prompt: s.text.Line("prompt"),
	}
	for _, it := range s.text.Items {
		cable := game.Control{ID: cablePrefix + it.ID, Label: fmt.Sprintf(s.text.Line("cable"), it.Label), Row: 0}
		socket := game.Control{ID: socketPrefix + it.ID, Label: fmt.Sprintf(s.text.Line("socket"), it.Label), Row: 1}
		switch {
		case s.matching.IsMatched(it.ID):
			cable.State = game.ControlHidden
			socket.State = game.ControlDone
		case s.matching.Selected() == it.ID:
			cable.State = game.ControlSelected
		}
		ui.Controls = append(ui.Controls, cable, socket)
	}
	s.showGame(ui, s.onControl)
}

func (s *CableScene) onControl(id string) {
	if !s.interactionEnabled {
		return
	}
	switch {
	case strings.HasPrefix(id, cablePrefix):
		if s.matching.Select(strings.TrimPrefix(id, cablePrefix)) == minigame.Correct {
			s.sound(game.SoundClick)
		}
	case strings.HasPrefix(id, socketPrefix):
		switch s.matching.Connect("", strings.TrimPrefix(id, socketPrefix)) {
		case minigame.Correct, minigame.Completed:
			s.sound(game.SoundSuccess)
		case minigame.Wrong:
			s.sound(game.SoundFailure)
		}
	}
	if s.phase == PhaseMiniGame {
		s.refresh()
	}
}

func (s *CableScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.wobble += dt * 2
	s.placeProp(s.satellite, utils.V3(3, 3, -2), utils.V3(0, 0, 0.1*math.Sin(s.wobble)), 1)
}
