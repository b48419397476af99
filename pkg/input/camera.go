// Package input 把归一化的指针坐标解析为命中对象或世界坐标
//
// 指针坐标约定：x、y ∈ [-1, 1]，原点在屏幕中心，y 轴向上。
// 世界坐标：透视相机位于 +Z，朝 -Z 方向观察。
package input

import (
	"math"

	"github.com/decker502/solarstory/pkg/utils"
)

// Camera 透视相机
type Camera struct {
	Position utils.Vec3
	// FOV 垂直视场角（度）
	FOV float64
	// Aspect 宽高比
	Aspect float64
}

// DefaultCamera 默认相机：位于 (0,0,10)，75° 视场
func DefaultCamera(aspect float64) Camera {
	return Camera{Position: utils.V3(0, 0, 10), FOV: 75, Aspect: aspect}
}

func (c Camera) tanHalf() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

func (c Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// Ray 把归一化指针坐标反投影为世界空间射线
func (c Camera) Ray(p utils.Vec2) utils.Ray {
	th := c.tanHalf()
	dir := utils.V3(p.X*th*c.aspect(), p.Y*th, -1).Normalize()
	return utils.Ray{Origin: c.Position, Direction: dir}
}

// Project 把世界坐标投影为归一化屏幕坐标
// 位于相机后方的点返回 false
func (c Camera) Project(world utils.Vec3) (utils.Vec2, bool) {
	rel := world.Sub(c.Position)
	if rel.Z >= 0 {
		return utils.Vec2{}, false
	}
	depth := -rel.Z
	th := c.tanHalf()
	return utils.Vec2{
		X: rel.X / depth / (th * c.aspect()),
		Y: rel.Y / depth / th,
	}, true
}

// ProjectedRadius 世界空间半径在屏幕上的归一化高度（用于后端绘制尺寸）
func (c Camera) ProjectedRadius(world utils.Vec3, radius float64) float64 {
	depth := c.Position.Z - world.Z
	if depth <= 0 {
		return 0
	}
	return radius / depth / c.tanHalf()
}

// Normalize 把像素坐标转换为归一化指针坐标
func Normalize(x, y, width, height float64) utils.Vec2 {
	if width <= 0 || height <= 0 {
		return utils.Vec2{}
	}
	return utils.Vec2{
		X: x/width*2 - 1,
		Y: -(y/height*2 - 1),
	}
}

// ToPixels 是 Normalize 的逆变换
func ToPixels(p utils.Vec2, width, height float64) (float64, float64) {
	return (p.X + 1) / 2 * width, (1 - p.Y) / 2 * height
}
