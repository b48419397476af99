package scenes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/minigame"
	"github.com/decker502/solarstory/pkg/utils"
)

const (
	cardPrefix  = "card:"
	cardsPerRow = 4
)

var (
	memoryProps         = []game.Prop{game.PropEarth, game.PropSun, game.PropSparky}
	memoryPropPositions = []utils.Vec3{utils.V3(0, -2, -3), utils.V3(-6, 3, -5), utils.V3(5, 2, -2)}
)

// MemoryScene 场景6：记忆挑战
type MemoryScene struct {
	Base

	glow    []game.Handle
	pulse   float64
	memory  *minigame.MemoryPairs
	symbols map[string]string
}

// NewMemoryScene 创建场景6
func NewMemoryScene(deps Deps, director game.Director) *MemoryScene {
	return &MemoryScene{Base: newBase(deps, 5, director)}
}

func (s *MemoryScene) Init() {
	s.addProp(game.PropStarfield, utils.Vec3{})
	for i, prop := range memoryProps {
		s.glow = append(s.glow, s.addProp(prop, memoryPropPositions[i]))
	}

	s.begin(s.timings.IntroDelay, s.startGame)
}

func (s *MemoryScene) startGame() {
	s.enterPhase(PhaseMiniGame)

	s.symbols = make(map[string]string, len(s.text.Items))
	for _, it := range s.text.Items {
		s.symbols[it.ID] = it.Label
	}

	s.memory = minigame.NewMemoryPairs(s.itemIDs(), s.Random.Shuffle, s.timers, s.timings.MemoryResolveDelay)
	s.miniGame = s.memory
	s.memory.OnResolve = func(first, second int, matched bool) {
		if matched {
			s.sound(game.SoundSuccess)
		} else {
			s.sound(game.SoundFailure)
		}
		s.refresh()
	}
	s.memory.OnComplete = func() {
		s.after(s.timings.CompleteDelay, func() {
			s.sound(game.SoundSuccess)
			s.UI.Celebrate()
			s.finish()
		})
	}
	s.refresh()
	s.memory.Start()
}

// Memory 翻牌状态
func (s *MemoryScene) Memory() *minigame.MemoryPairs {
	return s.memory
}

func (s *MemoryScene) refresh() {
	if s.phase != PhaseMiniGame {
		return
	}
	ui := game.GameUI{
		Title:  s.text.Line("title"),
		Prompt: s.text.Line("prompt"),
		Status: fmt.Sprintf(s.text.Line("counter"), s.memory.Matched(), s.memory.TotalPairs()),
	}
	for _, card := range s.memory.Cards() {
		c := game.Control{ID: cardPrefix + strconv.Itoa(card.ID), Label: s.text.Line("hidden"), Row: card.ID / cardsPerRow}
		switch {
		case s.memory.IsMatched(card.ID):
			c.Label, c.State = s.symbols[card.Symbol], game.ControlDone
		case s.memory.IsFlipped(card.ID):
			c.Label, c.State = s.symbols[card.Symbol], game.ControlSelected
		}
		ui.Controls = append(ui.Controls, c)
	}
	s.showGame(ui, s.onControl)
}

func (s *MemoryScene) onControl(id string) {
	if !s.interactionEnabled || !strings.HasPrefix(id, cardPrefix) {
		return
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, cardPrefix))
	if err != nil {
		return
	}
	if s.memory.Flip(n) == minigame.Correct {
		s.sound(game.SoundClick)
		s.refresh()
	}
}

func (s *MemoryScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.pulse += dt
	scale := 1 + math.Sin(s.pulse*2)*0.05
	for i, h := range s.glow {
		s.placeProp(h, memoryPropPositions[i], utils.V3(0, s.pulse*0.2, 0), scale)
	}
}
