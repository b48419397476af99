package systems

import (
	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// TransformSyncSystem 把实体的位置、自转、缩放、透明度写回 Visual 协作者
// 核心不持有场景图，只发出变换命令
type TransformSyncSystem struct {
	entityManager *ecs.EntityManager
	visual        game.Visual
}

// NewTransformSyncSystem 创建变换同步系统
func NewTransformSyncSystem(em *ecs.EntityManager, visual game.Visual) *TransformSyncSystem {
	return &TransformSyncSystem{entityManager: em, visual: visual}
}

// Update 同步所有未被标记删除的可视实体
func (s *TransformSyncSystem) Update() {
	if s.visual == nil {
		return
	}
	for _, id := range ecs.GetEntitiesWith2[*components.VisualComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarked(id) {
			continue
		}
		visual, _ := ecs.GetComponent[*components.VisualComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if visual == nil || pos == nil || visual.Handle == game.NoHandle {
			continue
		}

		var rotation utils.Vec3
		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
			rotation = spin.Rotation
		}
		s.visual.SetTransform(visual.Handle, pos.Pos, rotation, visual.Scale)
		s.visual.SetOpacity(visual.Handle, visual.Opacity)
	}
}
