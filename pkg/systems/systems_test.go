package systems

import (
	"math"
	"testing"

	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/utils"
)

func TestLifetimeDecayUsesRate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	life := &components.LifeComponent{Life: 3, MaxLife: 3, DecayRate: 0.3}
	ecs.AddComponent(em, id, life)

	system.Update(1.0)

	if math.Abs(life.Life-2.7) > 1e-9 {
		t.Errorf("Expected Life=2.7, got %f", life.Life)
	}
	if em.IsMarked(id) {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifeComponent{Life: 1, MaxLife: 1, DecayRate: 1})

	system.Update(1.0)

	if !em.IsMarked(id) {
		t.Fatal("Entity with life <= 0 should be marked")
	}
	removed := em.RemoveMarkedEntities()
	if len(removed) != 1 || removed[0] != id {
		t.Errorf("Expired entity should be removed, got %v", removed)
	}
}

func TestLifetimeImmortalNeverDecays(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	life := &components.LifeComponent{Life: 1, MaxLife: 1, DecayRate: 1, Immortal: true}
	ecs.AddComponent(em, id, life)

	for i := 0; i < 100; i++ {
		system.Update(1.0)
	}
	if life.Life != 1 || em.IsMarked(id) {
		t.Error("Immortal entity should keep its life")
	}
}

func TestMotionIntegratesVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewMotionSystem(em)

	id := em.CreateEntity()
	pos := &components.PositionComponent{Pos: utils.V3(0, 0, 0)}
	ecs.AddComponent(em, id, pos)
	ecs.AddComponent(em, id, &components.VelocityComponent{Vel: utils.V3(2, -1, 0.5)})

	system.Update(0.5)

	if pos.Pos != utils.V3(1, -0.5, 0.25) {
		t.Errorf("Pos = %+v, want (1,-0.5,0.25)", pos.Pos)
	}
}

func TestMotionBounceReversesVelocity(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewMotionSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{Pos: utils.V3(9.9, 0, 0)})
	vel := &components.VelocityComponent{Vel: utils.V3(1, 0.5, 0)}
	ecs.AddComponent(em, id, vel)
	ecs.AddComponent(em, id, &components.BounceComponent{Bounds: utils.Rect{MinX: -10, MinY: -8, MaxX: 10, MaxY: 8}})

	system.Update(0.5)

	if vel.Vel.X != -1 {
		t.Errorf("X velocity should be reversed after leaving bounds, got %+v", vel.Vel)
	}
	if vel.Vel.Y != 0.5 {
		t.Errorf("Y velocity should be unchanged inside bounds, got %+v", vel.Vel)
	}
}

func TestFadeCurves(t *testing.T) {
	tests := []struct {
		name        string
		curve       components.FadeCurve
		life, max   float64
		wantOpacity float64
		wantScale   float64
	}{
		{"线性-满", components.FadeLinear, 1, 1, 1, 1},
		{"线性-一半", components.FadeLinear, 0.5, 1, 0.5, 1},
		{"尾迹-一半", components.FadeTrail, 0.5, 1, 0.3, 0.5},
		{"极光-新生", components.FadeAurora, 3, 3, 0.6, 1},
		{"极光-老化", components.FadeAurora, 1, 3, 0.2, 1.4},
		{"固定", components.FadeNone, 0.1, 1, 0.8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opacity, scale := Fade(tt.curve, tt.life, tt.max, 0.8, map[bool]float64{true: 2, false: 1}[tt.curve == components.FadeNone])
			if math.Abs(opacity-tt.wantOpacity) > 1e-9 {
				t.Errorf("opacity = %v, want %v", opacity, tt.wantOpacity)
			}
			if math.Abs(scale-tt.wantScale) > 1e-9 {
				t.Errorf("scale = %v, want %v", scale, tt.wantScale)
			}
		})
	}
}

func TestFadeSystemPulseIndependentOfLife(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewFadeSystem(em)

	id := em.CreateEntity()
	visual := &components.VisualComponent{Fade: components.FadeNone, BaseOpacity: 0.5, BaseScale: 1}
	ecs.AddComponent(em, id, visual)
	ecs.AddComponent(em, id, &components.PulseComponent{Phase: 0, Rate: math.Pi / 2, Amplitude: 0.2})

	system.Update(1.0)

	if math.Abs(visual.Scale-1.2) > 1e-9 {
		t.Errorf("Scale = %v, want 1.2 at phase π/2", visual.Scale)
	}
	if visual.Opacity != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", visual.Opacity)
	}
}
