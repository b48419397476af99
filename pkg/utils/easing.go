package utils

import "math"

// Easing Functions (缓动函数)
//
// 粒子的透明度 / 缩放是剩余生命的确定性函数，这里提供所需的曲线。
// 所有函数接受进度值 t ∈ [0, 1]，返回 [0, 1] 内的值（Pulse 除外）。

// EaseLinear 线性缓动
func EaseLinear(t float64) float64 {
	return Clamp(t, 0, 1)
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t
}

// Pulse 正弦脉冲，返回 1 + amplitude*sin(phase)
// 用于"发光"类粒子，与剩余生命无关
func Pulse(phase, amplitude float64) float64 {
	return 1 + math.Sin(phase)*amplitude
}
