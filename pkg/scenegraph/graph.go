// Package scenegraph 是桌面端与终端后端共用的场景图
//
// 场景图不做真正的三维渲染：每个对象按透视相机投影成屏幕上的圆，
// 半径取 Prop.Radius，后端按 Sprites 的顺序从远到近绘制。
package scenegraph

import (
	"math"
	"math/rand"
	"sort"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/input"
	"github.com/decker502/solarstory/pkg/utils"
)

type object struct {
	prop     game.Prop
	position utils.Vec3
	rotation utils.Vec3
	scale    float64
	opacity  float64
	added    bool
}

// Sprite 一个投影后的可绘制对象
// Center 为归一化屏幕坐标，Radius 为占屏幕高度一半的比例
type Sprite struct {
	Handle   game.Handle
	Prop     game.Prop
	Center   utils.Vec2
	Radius   float64
	Depth    float64
	Rotation utils.Vec3
	Opacity  float64
}

// SceneGraph 实现 game.Builder 与 game.Visual
type SceneGraph struct {
	camera  input.Camera
	next    game.Handle
	objects map[game.Handle]*object
	hits    *input.SphereHitTester

	// Stars 星空道具使用的固定星点（归一化坐标）
	Stars []utils.Vec2
}

// NewSceneGraph 创建场景图
func NewSceneGraph(camera input.Camera) *SceneGraph {
	r := rand.New(rand.NewSource(42))
	stars := make([]utils.Vec2, 160)
	for i := range stars {
		stars[i] = utils.Vec2{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1}
	}
	return &SceneGraph{
		camera:  camera,
		objects: make(map[game.Handle]*object),
		hits:    input.NewSphereHitTester(),
		Stars:   stars,
	}
}

// Camera 投影使用的相机
func (g *SceneGraph) Camera() input.Camera {
	return g.camera
}

// Build 实现 game.Builder
func (g *SceneGraph) Build(prop game.Prop) game.Handle {
	g.next++
	g.objects[g.next] = &object{prop: prop, scale: 1, opacity: 1}
	return g.next
}

func (g *SceneGraph) AddObject(h game.Handle) {
	obj, ok := g.objects[h]
	if !ok {
		return
	}
	obj.added = true
	g.hits.Set(h, obj.position, obj.prop.Radius()*obj.scale)
}

func (g *SceneGraph) RemoveObject(h game.Handle) {
	if obj, ok := g.objects[h]; ok {
		obj.added = false
	}
	g.hits.Remove(h)
}

func (g *SceneGraph) SetTransform(h game.Handle, position, rotation utils.Vec3, scale float64) {
	obj, ok := g.objects[h]
	if !ok {
		return
	}
	obj.position, obj.rotation, obj.scale = position, rotation, scale
	if obj.added {
		g.hits.Set(h, position, obj.prop.Radius()*scale)
	}
}

func (g *SceneGraph) SetOpacity(h game.Handle, value float64) {
	if obj, ok := g.objects[h]; ok {
		obj.opacity = utils.Clamp(value, 0, 1)
	}
}

// DisposeObject 释放对象，之后句柄失效
func (g *SceneGraph) DisposeObject(h game.Handle) {
	delete(g.objects, h)
	g.hits.Remove(h)
}

func (g *SceneGraph) HitTest(ray utils.Ray, candidates []game.Handle) (game.Handle, bool) {
	return g.hits.HitTest(ray, candidates)
}

// Live 未释放的对象数量
func (g *SceneGraph) Live() int {
	return len(g.objects)
}

// Sprites 返回所有在场景图中、位于相机前方的对象，从远到近排序
func (g *SceneGraph) Sprites() []Sprite {
	list := make([]Sprite, 0, len(g.objects))
	for h, obj := range g.objects {
		if !obj.added || obj.opacity <= 0 {
			continue
		}
		center, ok := g.camera.Project(obj.position)
		if !ok {
			continue
		}
		list = append(list, Sprite{
			Handle:   h,
			Prop:     obj.prop,
			Center:   center,
			Radius:   g.camera.ProjectedRadius(obj.position, obj.prop.Radius()*obj.scale),
			Depth:    g.camera.Position.Z - obj.position.Z,
			Rotation: obj.rotation,
			Opacity:  obj.opacity,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Depth != list[j].Depth {
			return list[i].Depth > list[j].Depth
		}
		return list[i].Handle < list[j].Handle
	})
	return list
}

// StarOffset 星空随道具自转缓慢平移的距离（归一化坐标，[0, 2)）
func StarOffset(rotation utils.Vec3) float64 {
	return math.Mod(rotation.Y*0.2, 2)
}
