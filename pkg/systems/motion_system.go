package systems

import (
	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
)

// MotionSystem 积分速度与自转，并处理边界反弹
type MotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(em *ecs.EntityManager) *MotionSystem {
	return &MotionSystem{entityManager: em}
}

// Update 对所有拥有位置+速度的实体执行 Pos += Vel * dt
func (s *MotionSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](s.entityManager) {
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		if !ok {
			continue
		}

		pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))

		// 越界反弹：越界的轴速度取反，位置不做修正
		if bounce, ok := ecs.GetComponent[*components.BounceComponent](s.entityManager, id); ok {
			b := bounce.Bounds
			if pos.Pos.X < b.MinX || pos.Pos.X > b.MaxX {
				vel.Vel.X = -vel.Vel.X
			}
			if pos.Pos.Y < b.MinY || pos.Pos.Y > b.MaxY {
				vel.Vel.Y = -vel.Vel.Y
			}
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.SpinComponent](s.entityManager) {
		spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id)
		if !ok {
			continue
		}
		spin.Rotation = spin.Rotation.Add(spin.Rate.Scale(dt))
	}
}
