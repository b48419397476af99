package components

import "github.com/decker502/solarstory/pkg/game"

// FadeCurve 透明度/缩放随剩余生命变化的曲线
type FadeCurve int

const (
	// FadeNone 不随生命变化（透明度与缩放固定）
	FadeNone FadeCurve = iota
	// FadeLinear 透明度与剩余生命线性相关（火花）
	FadeLinear
	// FadeTrail 透明度 = life*0.6，缩放随生命缩小（尾迹）
	FadeTrail
	// FadeAurora 透明度 = min(0.6, life*0.2)，缩放随年龄变大（极光）
	FadeAurora
)

// String 返回 FadeCurve 的字符串表示
func (c FadeCurve) String() string {
	switch c {
	case FadeNone:
		return "None"
	case FadeLinear:
		return "Linear"
	case FadeTrail:
		return "Trail"
	case FadeAurora:
		return "Aurora"
	default:
		return "Unknown"
	}
}

// VisualComponent 实体对应的可视对象及其派生的显示属性
//
// Opacity / Scale 由 FadeSystem 计算，TransformSyncSystem 写回 Visual 协作者。
type VisualComponent struct {
	Handle      game.Handle
	Fade        FadeCurve
	BaseOpacity float64 // FadeNone 时使用
	BaseScale   float64

	Opacity float64
	Scale   float64
}

// PulseComponent "发光"粒子的正弦脉冲
// 缩放额外乘以 1 + Amplitude*sin(Phase)，Phase 每秒增加 Rate，与剩余生命无关
type PulseComponent struct {
	Phase     float64
	Rate      float64
	Amplitude float64
}

// ThreatComponent 标记"点击清除"小游戏中的威胁实体（辐射波）
type ThreatComponent struct{}
