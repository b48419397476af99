package systems

import (
	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
)

// LifetimeSystem 管理实体的剩余生命
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 衰减所有拥有 LifeComponent 的实体
// 剩余生命 <= 0 的实体被标记删除，由调用方在同一帧内压缩并释放资源
func (s *LifetimeSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifeComponent](s.entityManager) {
		life, ok := ecs.GetComponent[*components.LifeComponent](s.entityManager, id)
		if !ok || life.Immortal {
			continue
		}

		life.Life -= dt * life.DecayRate

		if life.Life <= 0 {
			s.entityManager.DestroyEntity(id)
		}
	}
}
