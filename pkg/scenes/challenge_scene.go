package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/entities"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/minigame"
	"github.com/decker502/solarstory/pkg/utils"
)

// WaveCount 辐射波数量
const WaveCount = 8

const shieldControl = "shield"

// AstronautHome 宇航员的漂浮中心
var AstronautHome = utils.V3(2, 0, 0)

// challengeStage 场景7内部的两段小游戏
type challengeStage int

const (
	stageIntro challengeStage = iota
	stageWaves
	stageBridge
	stageRadio
)

// ChallengeScene 场景7：太空挑战
// 第一段点击清除辐射波（或使用护盾），第二段按顺序调好无线电
type ChallengeScene struct {
	Base

	stage     challengeStage
	astronaut game.Handle
	station   game.Handle
	astroPos  utils.Vec3
	floatT    float64

	clear    *minigame.ClickToClear
	radio    *minigame.Sequence
	feedback string
}

// NewChallengeScene 创建场景7
func NewChallengeScene(deps Deps, director game.Director) *ChallengeScene {
	s := &ChallengeScene{Base: newBase(deps, 6, director), astroPos: AstronautHome}
	// 清除辐射波之后经过渡旁白进入无线电小游戏
	s.allowBridge = true
	return s
}

func (s *ChallengeScene) Init() {
	s.addProp(game.PropStarfield, utils.Vec3{})
	s.station = s.addProp(game.PropStation, utils.V3(-3, 1, -3))
	s.astronaut = s.addProp(game.PropAstronaut, s.astroPos)

	s.begin(s.timings.IntroDelay, s.startWaves)
}

// startWaves 生成辐射波并开始点击清除
func (s *ChallengeScene) startWaves() {
	s.enterPhase(PhaseMiniGame)
	s.stage = stageWaves

	threats := make([]ecs.EntityID, 0, WaveCount)
	for i := 0; i < WaveCount; i++ {
		at := utils.V3(s.Random.Float64()*8-4, s.Random.Float64()*6-3, 0)
		if id, ok := s.spawn(entities.NewWave(s.Builder, s.Random, at)); ok {
			threats = append(threats, id)
		}
	}

	s.clear = minigame.NewClickToClear(s.actors, threats, s.timers, s.timings.ShieldCooldown)
	s.miniGame = s.clear
	s.clear.OnShieldReady = s.refreshWaves
	s.clear.OnComplete = func() {
		s.after(s.timings.BridgeDelay, s.bridge)
	}
	s.refreshWaves()
	// 一个辐射波都没生成时直接进入下一阶段
	s.clear.Start()
}

func (s *ChallengeScene) refreshWaves() {
	if s.stage != stageWaves {
		return
	}
	shield := game.Control{ID: shieldControl, Label: s.text.Line("shield")}
	if !s.clear.ShieldReady() {
		shield.State = game.ControlDisabled
	}
	s.showGame(game.GameUI{
		Title:    s.text.Line("title"),
		Prompt:   s.text.Line("prompt"),
		Status:   fmt.Sprintf(s.text.Line("counter"), s.clear.Total()-s.clear.Cleared()),
		Controls: []game.Control{shield},
	}, s.onWaveControl)
}

func (s *ChallengeScene) onWaveControl(id string) {
	if !s.interactionEnabled || s.stage != stageWaves || id != shieldControl {
		return
	}
	_, outcome := s.clear.AreaEffect(s.astroPos, s.timings.ShieldRadius)
	if outcome == minigame.Ignored {
		return
	}
	s.sound(game.SoundWhoosh)
	s.spawn(entities.NewShield(s.Builder, s.astroPos, s.timings.ShieldCooldown))
	s.refreshWaves()
}

// HandleClick 点击辐射波将其清除
func (s *ChallengeScene) HandleClick(p utils.Vec2) {
	if !s.interactionEnabled || s.stage != stageWaves {
		return
	}
	h, ok := s.pick(p, s.actors.Handles(s.actors.Threats())...)
	var id ecs.EntityID
	if ok {
		id, ok = s.actors.Lookup(h)
	}
	switch s.clear.Hit(id, ok) {
	case minigame.Correct, minigame.Completed:
		s.sound(game.SoundSuccess)
		s.refreshWaves()
	}
}

// bridge 旁白过渡到无线电小游戏
func (s *ChallengeScene) bridge() {
	s.stage = stageBridge
	s.UI.HideGameUI()
	s.enterPhase(PhaseNarration)
	s.say(s.text.Line("bridge"), s.startRadio)
}

func (s *ChallengeScene) startRadio() {
	s.enterPhase(PhaseMiniGame)
	s.stage = stageRadio
	s.radio = minigame.NewSequence(s.itemIDs())
	s.miniGame = s.radio
	s.radio.OnComplete = func() {
		s.after(s.timings.BridgeDelay, func() { s.finish() })
	}
	s.refreshRadio()
	s.radio.Start()
}

func (s *ChallengeScene) refreshRadio() {
	ui := game.GameUI{
		Title:  s.text.Line("radioTitle"),
		Prompt: s.text.Line("radioPrompt"),
		Detail: s.feedback,
	}
	for _, it := range s.text.Items {
		ui.Controls = append(ui.Controls, game.Control{ID: it.ID, Label: it.Label})
	}
	s.showGame(ui, s.onRadioControl)
}

func (s *ChallengeScene) onRadioControl(id string) {
	if !s.interactionEnabled || s.stage != stageRadio {
		return
	}
	switch s.radio.Press(id) {
	case minigame.Correct, minigame.Completed:
		s.sound(game.SoundSuccess)
		s.feedback = fmt.Sprintf(s.text.Line("correct"), strings.ToUpper(id))
	case minigame.Wrong:
		s.sound(game.SoundFailure)
		s.feedback = s.text.Line("wrong")
	default:
		return
	}
	s.refreshRadio()
}

// WavesCleared 已清除的辐射波数量
func (s *ChallengeScene) WavesCleared() int {
	if s.clear == nil {
		return 0
	}
	return s.clear.Cleared()
}

// RadioProgress 无线电序列进度
func (s *ChallengeScene) RadioProgress() int {
	if s.radio == nil {
		return 0
	}
	return s.radio.Progress()
}

// AstronautPosition 宇航员当前位置
func (s *ChallengeScene) AstronautPosition() utils.Vec3 {
	return s.astroPos
}

func (s *ChallengeScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.floatT += dt
	s.astroPos = AstronautHome.Add(utils.V3(0, math.Sin(s.floatT)*0.3, 0))
	s.placeProp(s.astronaut, s.astroPos, utils.V3(0, 0, math.Sin(s.floatT*0.5)*0.1), 1)
	s.placeProp(s.station, utils.V3(-3, 1, -3), utils.V3(0, s.floatT*0.1, 0), 1)
}
