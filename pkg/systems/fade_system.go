package systems

import (
	"math"

	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/utils"
)

// FadeSystem 根据剩余生命计算透明度与缩放，并叠加发光脉冲
//
// 透明度/缩放是剩余生命的确定性函数；脉冲只依赖自身相位，与生命无关。
type FadeSystem struct {
	entityManager *ecs.EntityManager
}

// NewFadeSystem 创建淡出系统
func NewFadeSystem(em *ecs.EntityManager) *FadeSystem {
	return &FadeSystem{entityManager: em}
}

// Update 更新所有可视实体的派生显示属性
func (s *FadeSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.VisualComponent](s.entityManager) {
		visual, ok := ecs.GetComponent[*components.VisualComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if life, ok := ecs.GetComponent[*components.LifeComponent](s.entityManager, id); ok {
			visual.Opacity, visual.Scale = Fade(visual.Fade, life.Life, life.MaxLife, visual.BaseOpacity, visual.BaseScale)
		} else {
			visual.Opacity, visual.Scale = visual.BaseOpacity, visual.BaseScale
		}

		if pulse, ok := ecs.GetComponent[*components.PulseComponent](s.entityManager, id); ok {
			pulse.Phase += dt * pulse.Rate
			visual.Scale *= utils.Pulse(pulse.Phase, pulse.Amplitude)
		}
	}
}

// Fade 计算给定曲线下的透明度与缩放
// life 为剩余生命，maxLife 为初始生命
func Fade(curve components.FadeCurve, life, maxLife, baseOpacity, baseScale float64) (opacity, scale float64) {
	if life < 0 {
		life = 0
	}
	switch curve {
	case components.FadeLinear:
		return utils.EaseLinear(life / nonZero(maxLife)), baseScale
	case components.FadeTrail:
		// 透明度上限 0.6，缩放随剩余生命缩小
		t := utils.EaseLinear(life / nonZero(maxLife))
		return t * 0.6, baseScale * t
	case components.FadeAurora:
		// 透明度 min(0.6, life*0.2)；越老越大
		age := math.Max(0, maxLife-life)
		return math.Min(0.6, life*0.2), baseScale * (1 + age*0.2)
	default:
		return baseOpacity, baseScale
	}
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
