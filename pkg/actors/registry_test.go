package actors

import (
	"math"
	"testing"

	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/headless"
	"github.com/decker502/solarstory/pkg/utils"
)

func spark(v *headless.Visual, pos utils.Vec3) Spec {
	return Spec{
		Position: pos,
		Velocity: utils.V3(1, 0, 0),
		Life:     1,
		Fade:     components.FadeLinear,
		Build:    func() game.Handle { return v.Build(game.PropSpark) },
	}
}

// TestExpiredActorReleasedExactlyOnce 生命耗尽的演员在同一帧被移除，句柄只释放一次
func TestExpiredActorReleasedExactlyOnce(t *testing.T) {
	v := headless.NewVisual()
	r := NewRegistry(v)

	id, ok := r.Spawn(spark(v, utils.V3(0, 0, 0)))
	if !ok {
		t.Fatal("Spawn failed")
	}
	h := r.Handle(id)
	if !v.Objects[h].Added {
		t.Fatal("Spawned actor should be added to the scene graph")
	}

	// 60 帧 * 1/60 = 1 秒 >= 初始生命
	for i := 0; i < 60; i++ {
		r.Tick(1.0 / 60.0)
	}
	r.Tick(1.0 / 60.0)
	r.Tick(1.0 / 60.0)

	if r.Has(id) {
		t.Error("Actor should be absent after its life elapsed")
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
	obj := v.Objects[h]
	if obj.Disposed != 1 || obj.Removed != 1 {
		t.Errorf("Handle released %d/%d times, want exactly once", obj.Removed, obj.Disposed)
	}
}

func TestTickIntegratesMotionAndFade(t *testing.T) {
	v := headless.NewVisual()
	r := NewRegistry(v)

	id, _ := r.Spawn(Spec{
		Position:  utils.V3(0, 0, 0),
		Velocity:  utils.V3(2, 0, 0),
		Life:      3,
		DecayRate: 0.3,
		Fade:      components.FadeAurora,
		Build:     func() game.Handle { return v.Build(game.PropAurora) },
	})

	r.Tick(0.5)

	pos, _ := r.Position(id)
	if math.Abs(pos.X-1) > 1e-9 {
		t.Errorf("Position.X = %v, want 1", pos.X)
	}
	obj := v.Objects[r.Handle(id)]
	if obj.Position != pos {
		t.Errorf("Visual position %+v should be synced to %+v", obj.Position, pos)
	}
	// life = 3 - 0.15 = 2.85, opacity = min(0.6, 0.57)
	if math.Abs(obj.Opacity-0.57) > 1e-9 {
		t.Errorf("Opacity = %v, want 0.57", obj.Opacity)
	}
}

func TestSpawnRejectsNonFinite(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		name string
		spec Spec
	}{
		{"NaN位置", Spec{Position: utils.V3(math.NaN(), 0, 0), Life: 1}},
		{"Inf速度", Spec{Velocity: utils.V3(0, math.Inf(1), 0), Life: 1}},
		{"Inf生命", Spec{Life: math.Inf(1)}},
		{"非正生命", Spec{Life: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := r.Spawn(tt.spec); ok {
				t.Error("Spawn should reject the contract violation")
			}
		})
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0", r.Count())
	}
}

func TestImmortalActorSurvivesUntilRemoved(t *testing.T) {
	v := headless.NewVisual()
	r := NewRegistry(v)

	id, ok := r.Spawn(Spec{Immortal: true, Build: func() game.Handle { return v.Build(game.PropWave) }})
	if !ok {
		t.Fatal("Immortal spawn with zero life should be accepted")
	}
	for i := 0; i < 600; i++ {
		r.Tick(1.0 / 60.0)
	}
	if !r.Has(id) {
		t.Fatal("Immortal actor should survive ticks")
	}

	h := r.Handle(id)
	if !r.Remove(id) {
		t.Error("Remove should report success")
	}
	if r.Remove(id) {
		t.Error("Second Remove should be a no-op")
	}
	if v.Objects[h].Disposed != 1 {
		t.Errorf("Disposed = %d, want 1", v.Objects[h].Disposed)
	}
}

func TestWithin(t *testing.T) {
	r := NewRegistry(nil)

	near, _ := r.Spawn(Spec{Position: utils.V3(1, 1, 0), Immortal: true})
	edge, _ := r.Spawn(Spec{Position: utils.V3(3, 0, 0), Immortal: true})
	far, _ := r.Spawn(Spec{Position: utils.V3(3.01, 0, 0), Immortal: true})

	got := r.Within(utils.V3(0, 0, 0), 3)
	if len(got) != 2 || got[0] != near || got[1] != edge {
		t.Errorf("Within = %v, want [%d %d] (not %d)", got, near, edge, far)
	}
}

func TestDisposeAllIdempotent(t *testing.T) {
	v := headless.NewVisual()
	r := NewRegistry(v)

	for i := 0; i < 5; i++ {
		r.Spawn(spark(v, utils.V3(float64(i), 0, 0)))
	}
	r.DisposeAll()
	r.DisposeAll()

	if r.Count() != 0 {
		t.Errorf("Count = %d after DisposeAll", r.Count())
	}
	for h, obj := range v.Objects {
		if obj.Disposed != 1 {
			t.Errorf("Handle %d disposed %d times, want 1", h, obj.Disposed)
		}
	}
	if _, ok := r.Spawn(spark(v, utils.V3(0, 0, 0))); ok {
		t.Error("Spawn after DisposeAll should be rejected")
	}
}

func TestLookupAndThreats(t *testing.T) {
	v := headless.NewVisual()
	r := NewRegistry(v)

	wave, _ := r.Spawn(Spec{Immortal: true, Threat: true, Build: func() game.Handle { return v.Build(game.PropWave) }})
	r.Spawn(spark(v, utils.V3(0, 0, 0)))

	threats := r.Threats()
	if len(threats) != 1 || threats[0] != wave {
		t.Errorf("Threats = %v, want [%d]", threats, wave)
	}
	if id, ok := r.Lookup(r.Handle(wave)); !ok || id != wave {
		t.Errorf("Lookup = (%d, %v), want %d", id, ok, wave)
	}
	if _, ok := r.Lookup(game.NoHandle); ok {
		t.Error("Lookup(NoHandle) should fail")
	}
}
