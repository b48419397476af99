package scenes

import (
	"math"

	"github.com/decker502/solarstory/pkg/entities"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// paintStep 指针移动超过该距离（归一化坐标）才生成新的极光粒子
const paintStep = 0.1

const finishControl = "finish"

// AuroraScene 场景4：飞行员与极光
// 在天空中拖动指针绘制极光；一段时间没有绘制时自动出现提示极光
type AuroraScene struct {
	Base

	plane    game.Handle
	drift    float64
	drawing  bool
	lastDraw utils.Vec2
	painted  int
	hinted   bool
}

// NewAuroraScene 创建场景4
func NewAuroraScene(deps Deps, director game.Director) *AuroraScene {
	return &AuroraScene{Base: newBase(deps, 3, director)}
}

func (s *AuroraScene) Init() {
	s.addProp(game.PropStarfield, utils.Vec3{})
	s.addProp(game.PropEarth, utils.V3(0, -8, -5))
	s.plane = s.addProp(game.PropPlane, utils.V3(-3, 2, 0))
	for i := 0; i < 3; i++ {
		s.addProp(game.PropChild, utils.V3(float64(i-1), -3, 2))
	}

	s.begin(s.timings.IntroDelay, s.startPainting)
}

func (s *AuroraScene) startPainting() {
	s.enterPhase(PhaseFreeInteraction)
	s.showGame(game.GameUI{
		Title:    s.text.Line("title"),
		Prompt:   s.text.Line("prompt"),
		Controls: []game.Control{{ID: finishControl, Label: s.text.Line("finish")}},
	}, func(id string) {
		if id == finishControl && s.interactionEnabled {
			s.drawing = false
			s.sound(game.SoundSuccess)
			s.finish()
		}
	})

	s.after(s.timings.HintDelay, func() {
		if s.painted == 0 {
			s.hint()
		}
	})
}

// hint 在天空上方依次生成一串提示极光
func (s *AuroraScene) hint() {
	s.hinted = true
	for i := 0; i < s.timings.HintParticles; i++ {
		s.after(float64(i)*s.timings.HintInterval, func() {
			at := utils.V3(s.Random.Float64()*10-5, s.Random.Float64()*3+2, 0)
			s.spawn(entities.NewAurora(s.Builder, s.Random, at))
		})
	}
}

// Hinted 是否已显示过提示极光
func (s *AuroraScene) Hinted() bool {
	return s.hinted
}

// Painted 玩家绘制的极光粒子数量
func (s *AuroraScene) Painted() int {
	return s.painted
}

func (s *AuroraScene) HandlePointerDown(p utils.Vec2) {
	if !s.interactionEnabled {
		return
	}
	s.drawing = true
	s.lastDraw = p
	s.paint(p)
}

func (s *AuroraScene) HandlePointerMove(p utils.Vec2) {
	if !s.interactionEnabled || !s.drawing {
		return
	}
	if p.Distance(s.lastDraw) > paintStep {
		s.paint(p)
		s.lastDraw = p
	}
}

func (s *AuroraScene) HandlePointerUp() {
	if !s.interactionEnabled {
		return
	}
	s.drawing = false
}

// paint 在指针对应的 z=0 平面位置生成一颗极光粒子
func (s *AuroraScene) paint(p utils.Vec2) {
	at, ok := s.resolver.PlanePoint(p, 0, utils.Rect{})
	if !ok {
		return
	}
	if _, ok := s.spawn(entities.NewAurora(s.Builder, s.Random, at)); ok {
		s.painted++
	}
}

func (s *AuroraScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}
	s.drift += dt
	s.placeProp(s.plane, utils.V3(-3, 2+math.Sin(s.drift)*0.3, 0), utils.V3(0, 0, 0.1), 1)
}
