package scenes

import (
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/entities"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// SparkyEscapeDistance Sparky 离开原点超过该距离时场景完成
const SparkyEscapeDistance = 20

const sparkBurst = 10

// SunScene 场景1：认识太阳 Sunny
// 旁白结束后点击太阳发射 Sparky；Sparky 飞出足够远即完成
type SunScene struct {
	Base

	sun      game.Handle
	stars    game.Handle
	sunSpin  float64
	sparky   ecs.EntityID
	launched bool
}

// NewSunScene 创建场景1
func NewSunScene(deps Deps, director game.Director) *SunScene {
	return &SunScene{Base: newBase(deps, 0, director)}
}

// Init 布置道具并直接开始问候旁白（没有开场延迟）
func (s *SunScene) Init() {
	s.stars = s.addProp(game.PropStarfield, utils.Vec3{})
	s.sun = s.addProp(game.PropSun, utils.Vec3{})
	s.addProp(game.PropPlanet, utils.V3(-8, 2, -5))
	s.addProp(game.PropPlanet, utils.V3(8, -2, -5))
	s.addProp(game.PropPlanet, utils.V3(-6, -3, -8))

	s.begin(0, func() {
		s.enterPhase(PhaseFreeInteraction)
	})
}

// HandleClick 点击太阳发射 Sparky
func (s *SunScene) HandleClick(p utils.Vec2) {
	if !s.interactionEnabled {
		return
	}
	if _, ok := s.pick(p, s.sun); !ok {
		return
	}
	s.launch()
}

// launch 发射新的 Sparky（替换上一个）并喷出火花
func (s *SunScene) launch() {
	if s.launched {
		s.actors.Remove(s.sparky)
	}
	id, ok := s.spawn(entities.NewSparky(s.Builder, s.Random))
	if !ok {
		return
	}
	s.sparky, s.launched = id, true
	s.sound(game.SoundWhoosh)

	for _, spec := range entities.NewSparks(s.Builder, s.Random, entities.SparkyLaunchPosition, sparkBurst) {
		s.spawn(spec)
	}
}

// Launched 是否已发射过 Sparky
func (s *SunScene) Launched() bool {
	return s.launched
}

// Update 太阳自转、星空缓慢旋转，检测 Sparky 是否飞远
func (s *SunScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}

	s.sunSpin += dt * 0.5
	s.placeProp(s.sun, utils.Vec3{}, utils.V3(0, s.sunSpin, 0), 1)
	s.placeProp(s.stars, utils.Vec3{}, utils.V3(0, s.sunSpin*0.1, 0), 1)

	if !s.launched || s.phase != PhaseFreeInteraction {
		return
	}
	if pos, ok := s.actors.Position(s.sparky); ok && pos.Length() > SparkyEscapeDistance {
		s.finish()
	}
}
