// Package headless 提供无渲染的协作者实现
//
// 所有实现都只记录调用，供测试和 cmd/verify_story 的脚本化通关使用。
// 命中测试使用 input.SphereHitTester，半径取 Prop.Radius，和桌面后端一致。
package headless

import (
	"fmt"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/utils"
)

// Object 一个可视对象的记录
type Object struct {
	Prop     game.Prop
	Position utils.Vec3
	Rotation utils.Vec3
	Scale    float64
	Opacity  float64
	Added    bool
	Removed  int
	Disposed int
}

// Visual 记录型 Visual + Builder
type Visual struct {
	next    game.Handle
	Objects map[game.Handle]*Object
	Calls   []string

	hits *input.SphereHitTester
}

// NewVisual 创建记录型 Visual
func NewVisual() *Visual {
	return &Visual{
		Objects: make(map[game.Handle]*Object),
		hits:    input.NewSphereHitTester(),
	}
}

// Build 创建一个尚未加入场景图的对象
func (v *Visual) Build(prop game.Prop) game.Handle {
	v.next++
	h := v.next
	v.Objects[h] = &Object{Prop: prop, Scale: 1, Opacity: 1}
	v.record("build %s #%d", prop, h)
	return h
}

func (v *Visual) AddObject(h game.Handle) {
	if obj, ok := v.Objects[h]; ok {
		obj.Added = true
		v.hits.Set(h, obj.Position, obj.Prop.Radius()*obj.Scale)
	}
	v.record("add #%d", h)
}

func (v *Visual) RemoveObject(h game.Handle) {
	if obj, ok := v.Objects[h]; ok {
		obj.Added = false
		obj.Removed++
	}
	v.hits.Remove(h)
	v.record("remove #%d", h)
}

func (v *Visual) SetTransform(h game.Handle, position, rotation utils.Vec3, scale float64) {
	obj, ok := v.Objects[h]
	if !ok {
		return
	}
	obj.Position, obj.Rotation, obj.Scale = position, rotation, scale
	if obj.Added {
		v.hits.Set(h, position, obj.Prop.Radius()*scale)
	}
}

func (v *Visual) SetOpacity(h game.Handle, value float64) {
	if obj, ok := v.Objects[h]; ok {
		obj.Opacity = value
	}
}

func (v *Visual) DisposeObject(h game.Handle) {
	if obj, ok := v.Objects[h]; ok {
		obj.Disposed++
	}
	v.hits.Remove(h)
	v.record("dispose #%d", h)
}

func (v *Visual) HitTest(ray utils.Ray, candidates []game.Handle) (game.Handle, bool) {
	return v.hits.HitTest(ray, candidates)
}

// Live 已加入场景图且未释放的对象数量
func (v *Visual) Live() int {
	n := 0
	for _, obj := range v.Objects {
		if obj.Added && obj.Disposed == 0 {
			n++
		}
	}
	return n
}

// Find 返回第一个指定种类、仍在场景图中的对象
func (v *Visual) Find(prop game.Prop) (game.Handle, *Object) {
	best := game.NoHandle
	for h, obj := range v.Objects {
		if obj.Prop == prop && obj.Added && (best == game.NoHandle || h < best) {
			best = h
		}
	}
	if best == game.NoHandle {
		return game.NoHandle, nil
	}
	return best, v.Objects[best]
}

func (v *Visual) record(format string, args ...interface{}) {
	v.Calls = append(v.Calls, fmt.Sprintf(format, args...))
}
