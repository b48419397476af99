package scenes

import (
	"github.com/decker502/solarstory/pkg/entities"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// DragBounds Sparky 可被拖动的范围
var DragBounds = utils.Rect{MinX: -9, MinY: -4, MaxX: 9, MaxY: 4}

const (
	rockCount      = 5
	rockBumpRadius = 1.0
	driftSpeed     = 0.5
	trailChance    = 0.1
)

// rock 场景2中缓慢自转的道具（岩石与行星）
type rock struct {
	handle game.Handle
	pos    utils.Vec3
	spin   utils.Vec3
	rot    utils.Vec3
}

// JourneyScene 场景2：Sparky 穿越太空
// 拖动 Sparky 躲避岩石，行星按时间说话，10 秒后结束
type JourneyScene struct {
	Base

	sparky    game.Handle
	sparkyPos utils.Vec3
	sparkyRot float64
	planets   []rock
	rocks     []rock
	dragging  bool
	bumps     int
	dialogues int
}

// NewJourneyScene 创建场景2
func NewJourneyScene(deps Deps, director game.Director) *JourneyScene {
	return &JourneyScene{Base: newBase(deps, 1, director)}
}

func (s *JourneyScene) Init() {
	s.addProp(game.PropStarfield, utils.Vec3{})

	s.sparkyPos = utils.V3(-8, 0, 0)
	s.sparky = s.addProp(game.PropSparky, s.sparkyPos)

	for _, pos := range []utils.Vec3{utils.V3(-3, 2, -2), utils.V3(3, -2, -2), utils.V3(8, 0, -2)} {
		s.planets = append(s.planets, rock{handle: s.addProp(game.PropPlanet, pos), pos: pos})
	}

	for i := 0; i < rockCount; i++ {
		r := rock{
			pos:  s.randomRockPosition(),
			spin: utils.V3(s.Random.Float64()-0.5, s.Random.Float64()-0.5, s.Random.Float64()-0.5),
		}
		r.handle = s.addProp(game.PropRock, r.pos)
		s.rocks = append(s.rocks, r)
	}

	s.begin(s.timings.IntroDelay, s.startJourney)
}

func (s *JourneyScene) randomRockPosition() utils.Vec3 {
	return utils.V3(s.Random.Float64()*10-5, s.Random.Float64()*6-3, -1)
}

// startJourney 开启拖动，安排行星对话和结束旁白
func (s *JourneyScene) startJourney() {
	s.enterPhase(PhaseFreeInteraction)

	for i, d := range s.text.Dialogues {
		if i >= len(s.timings.DialogueDelays) {
			break
		}
		dialogue := d
		s.after(s.timings.DialogueDelays[i], func() {
			s.dialogues++
			shown := s.dialogues
			s.UI.ShowDialogue(dialogue.Speaker, dialogue.Text)
			if s.Audio != nil {
				s.Audio.Speak(dialogue.Text, nil)
			}
			s.after(s.timings.DialogueDuration, func() {
				// 后一条对话已经替换了这一条
				if shown == s.dialogues {
					s.UI.HideDialogue()
				}
			})
		})
	}

	s.after(s.timings.ClosingDelay, func() {
		s.dragging = false
		s.finish()
	})
}

// HandlePointerDown 按住 Sparky 开始拖动
func (s *JourneyScene) HandlePointerDown(p utils.Vec2) {
	if !s.interactionEnabled {
		return
	}
	if _, ok := s.pick(p, s.sparky); ok {
		s.dragging = true
		s.sound(game.SoundClick)
	}
}

// HandlePointerMove 拖动时把 Sparky 移到指针在 z=0 平面上的投影
func (s *JourneyScene) HandlePointerMove(p utils.Vec2) {
	if !s.interactionEnabled || !s.dragging {
		return
	}
	point, ok := s.resolver.PlanePoint(p, 0, DragBounds)
	if !ok {
		return
	}
	s.sparkyPos.X, s.sparkyPos.Y = point.X, point.Y
	s.placeProp(s.sparky, s.sparkyPos, utils.V3(0, s.sparkyRot, 0), 1)
	s.checkCollisions()
}

// HandlePointerUp 结束拖动
// 离开 FreeInteraction 时拖动已经结束（见 startJourney）
func (s *JourneyScene) HandlePointerUp() {
	if !s.interactionEnabled {
		return
	}
	s.dragging = false
}

// checkCollisions 撞到岩石时发出失败音效并把岩石挪走
func (s *JourneyScene) checkCollisions() {
	for i := range s.rocks {
		r := &s.rocks[i]
		if s.sparkyPos.Distance(r.pos) >= rockBumpRadius {
			continue
		}
		s.sound(game.SoundFailure)
		s.bumps++
		r.pos.X = s.Random.Float64()*10 - 5
		r.pos.Y = s.Random.Float64()*6 - 3
		s.placeProp(r.handle, r.pos, r.rot, 1)
	}
}

// SparkyPosition Sparky 当前位置
func (s *JourneyScene) SparkyPosition() utils.Vec3 {
	return s.sparkyPos
}

// Dragging 是否正在拖动
func (s *JourneyScene) Dragging() bool {
	return s.dragging
}

// Bumps 撞击岩石的次数
func (s *JourneyScene) Bumps() int {
	return s.bumps
}

func (s *JourneyScene) Update(dt float64) {
	s.Base.Update(dt)
	if !s.alive {
		return
	}

	s.sparkyRot += dt * 2
	if !s.dragging {
		s.sparkyPos.X = utils.Clamp(s.sparkyPos.X+dt*driftSpeed, DragBounds.MinX, DragBounds.MaxX)
	}
	s.placeProp(s.sparky, s.sparkyPos, utils.V3(0, s.sparkyRot, 0), 1)

	if s.Random.Float64() < trailChance {
		s.spawn(entities.NewTrail(s.Builder, s.sparkyPos))
	}

	for i := range s.rocks {
		r := &s.rocks[i]
		r.rot = r.rot.Add(r.spin.Scale(dt))
		s.placeProp(r.handle, r.pos, r.rot, 1)
	}
	for i := range s.planets {
		p := &s.planets[i]
		p.rot.Y += dt * 0.5
		s.placeProp(p.handle, p.pos, p.rot, 1)
	}
}
