package scenegraph

import (
	"testing"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/utils"
)

func TestSceneGraphLifecycle(t *testing.T) {
	g := NewSceneGraph(input.DefaultCamera(16.0 / 9.0))

	far := g.Build(game.PropPlanet)
	near := g.Build(game.PropSun)
	hidden := g.Build(game.PropRock)
	g.AddObject(far)
	g.AddObject(near)
	g.SetTransform(far, utils.V3(0, 0, -5), utils.Vec3{}, 1)

	sprites := g.Sprites()
	if len(sprites) != 2 {
		t.Fatalf("Only added objects should be drawn, got %d", len(sprites))
	}
	if sprites[0].Handle != far {
		t.Error("Far objects should be drawn first")
	}

	ray := g.Camera().Ray(utils.Vec2{})
	if h, ok := g.HitTest(ray, []game.Handle{far, near, hidden}); !ok || h != near {
		t.Errorf("HitTest = %d,%v, want nearest %d", h, ok, near)
	}

	g.RemoveObject(near)
	g.DisposeObject(near)
	g.DisposeObject(hidden)
	if g.Live() != 1 {
		t.Errorf("Live = %d, want 1", g.Live())
	}
	if _, ok := g.HitTest(ray, []game.Handle{near}); ok {
		t.Error("Disposed object should not be hit")
	}
}

func TestSetOpacityClampsAndHides(t *testing.T) {
	g := NewSceneGraph(input.DefaultCamera(1))
	h := g.Build(game.PropSpark)
	g.AddObject(h)

	g.SetOpacity(h, 3)
	if s := g.Sprites(); len(s) != 1 || s[0].Opacity != 1 {
		t.Fatalf("Opacity should clamp to 1, got %+v", s)
	}
	g.SetOpacity(h, -1)
	if len(g.Sprites()) != 0 {
		t.Error("Transparent objects should not be drawn")
	}
}
