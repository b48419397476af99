// Package utils 提供故事核心使用的基础数学工具
//
// vector.go 定义世界坐标使用的三维向量、指针使用的二维归一化坐标，
// 以及用于拖拽限制的矩形区域。
//
// # 坐标系统概述
//
//   - **世界坐标**：右手坐标系，X 向右，Y 向上，Z 指向观察者
//   - **归一化指针坐标**：x, y ∈ [-1, 1]，原点在画面中心，Y 向上
//   - **屏幕坐标**：由各后端（ebiten / 终端）自行换算，核心不关心
package utils

import "math"

// Vec3 世界坐标中的三维向量
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造 Vec3 的简写
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 返回 v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 返回 v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 返回 v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance 两点距离
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize 返回单位向量；零向量原样返回
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsFinite 所有分量都不是 NaN / Inf
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Vec2 归一化指针坐标
type Vec2 struct {
	X, Y float64
}

// Distance 两个指针位置的距离
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rect 轴对齐矩形（世界坐标 XY 平面）
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains 点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ClampPoint 把 XY 分量限制在矩形内，Z 保持不变
func (r Rect) ClampPoint(p Vec3) Vec3 {
	return Vec3{
		X: Clamp(p.X, r.MinX, r.MaxX),
		Y: Clamp(p.Y, r.MinY, r.MaxY),
		Z: p.Z,
	}
}

// IsZero 未设置的矩形
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite 检查浮点数既不是 NaN 也不是无穷大
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Ray 射线：起点 + 单位方向
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
