package input

import (
	"math"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

type sphere struct {
	center utils.Vec3
	radius float64
}

// SphereHitTester 以包围球近似可视对象的命中测试
// 最近交点优先；距离相同时顺序未定义
type SphereHitTester struct {
	spheres map[game.Handle]sphere
}

// NewSphereHitTester 创建包围球命中测试器
func NewSphereHitTester() *SphereHitTester {
	return &SphereHitTester{spheres: make(map[game.Handle]sphere)}
}

// Set 设置（或更新）对象的包围球
func (s *SphereHitTester) Set(h game.Handle, center utils.Vec3, radius float64) {
	s.spheres[h] = sphere{center: center, radius: radius}
}

// Remove 移除对象的包围球
func (s *SphereHitTester) Remove(h game.Handle) {
	delete(s.spheres, h)
}

// Len 已登记的包围球数量
func (s *SphereHitTester) Len() int {
	return len(s.spheres)
}

// HitTest 返回与射线相交的最近候选对象
func (s *SphereHitTester) HitTest(ray utils.Ray, candidates []game.Handle) (game.Handle, bool) {
	best := game.NoHandle
	bestT := math.Inf(1)
	for _, h := range candidates {
		sp, ok := s.spheres[h]
		if !ok {
			continue
		}
		t, hit := intersect(ray, sp)
		if hit && t < bestT {
			best, bestT = h, t
		}
	}
	return best, best != game.NoHandle
}

// intersect 射线与球求交，返回最近的非负参数 t
func intersect(ray utils.Ray, sp sphere) (float64, bool) {
	dir := ray.Direction.Normalize()
	oc := ray.Origin.Sub(sp.center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - sp.radius*sp.radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
