package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数（含越界输入）
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"负数被截断", -0.5, 0.0},
		{"大于1被截断", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseQuad 测试二次方缓入/缓出
func TestEaseQuad(t *testing.T) {
	if got := EaseOutQuad(0.5); math.Abs(got-0.75) > 0.001 {
		t.Errorf("EaseOutQuad(0.5) = %v, 期望 0.75", got)
	}
	if got := EaseInQuad(0.5); math.Abs(got-0.25) > 0.001 {
		t.Errorf("EaseInQuad(0.5) = %v, 期望 0.25", got)
	}
}

// TestPulse 测试正弦脉冲范围
func TestPulse(t *testing.T) {
	if got := Pulse(0, 0.2); got != 1 {
		t.Errorf("Pulse(0) = %v, 期望 1", got)
	}
	if got := Pulse(math.Pi/2, 0.2); math.Abs(got-1.2) > 0.001 {
		t.Errorf("Pulse(π/2) = %v, 期望 1.2", got)
	}
}
