package input

import (
	"math"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// HitTester 射线命中测试（Visual 协作者实现）
type HitTester interface {
	HitTest(ray utils.Ray, candidates []game.Handle) (game.Handle, bool)
}

// Resolver 与场景无关的输入解析器
// 每次指针移动都可以直接调用，不做缓冲
type Resolver struct {
	Camera Camera
	Tester HitTester
}

// NewResolver 创建输入解析器
func NewResolver(camera Camera, tester HitTester) *Resolver {
	return &Resolver{Camera: camera, Tester: tester}
}

// Pick 返回指针下最近的交互对象
func (r *Resolver) Pick(p utils.Vec2, candidates []game.Handle) (game.Handle, bool) {
	if r == nil || r.Tester == nil || len(candidates) == 0 {
		return game.NoHandle, false
	}
	return r.Tester.HitTest(r.Camera.Ray(p), candidates)
}

// PlanePoint 把指针投影到 z=depth 平面，clamp 非零时限制在矩形内
func (r *Resolver) PlanePoint(p utils.Vec2, depth float64, clamp utils.Rect) (utils.Vec3, bool) {
	if r == nil {
		return utils.Vec3{}, false
	}
	ray := r.Camera.Ray(p)
	if math.Abs(ray.Direction.Z) < 1e-9 {
		return utils.Vec3{}, false
	}
	t := (depth - ray.Origin.Z) / ray.Direction.Z
	if t < 0 {
		return utils.Vec3{}, false
	}
	point := ray.At(t)
	point.Z = depth
	if !clamp.IsZero() {
		point = clamp.ClampPoint(point)
	}
	return point, true
}
