// Package entities 提供场景演员的生成参数工厂
//
// 工厂只组装 actors.Spec（初始位置、速度、生命、淡出曲线、可视工厂），
// 真正的实体创建由 actors.Registry.Spawn 完成。速度单位为 世界单位/秒。
package entities

import (
	"math"

	"github.com/decker502/solarstory/pkg/actors"
	"github.com/decker502/solarstory/pkg/components"
	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/utils"
)

// Random 随机数来源，*rand.Rand 满足该接口，测试中可以注入固定序列
type Random interface {
	Float64() float64
}

// WaveBounds 辐射波的反弹范围
var WaveBounds = utils.Rect{MinX: -10, MinY: -8, MaxX: 10, MaxY: 8}

// SparkyLaunchPosition Sparky 从太阳表面出发的位置
var SparkyLaunchPosition = utils.V3(0, 0, 2)

func build(b game.Builder, prop game.Prop) func() game.Handle {
	if b == nil {
		return nil
	}
	return func() game.Handle { return b.Build(prop) }
}

// jitter 返回 [-scale/2, scale/2) 的随机偏移
func jitter(r Random, scale float64) float64 {
	return (r.Float64() - 0.5) * scale
}

// NewSparky 创建从太阳发射的 Sparky
// 主要沿 +Z 方向飞向相机，X/Y 带少量随机偏移；不会自行消亡
func NewSparky(b game.Builder, r Random) actors.Spec {
	return actors.Spec{
		Position: SparkyLaunchPosition,
		Velocity: utils.V3(jitter(r, 12), jitter(r, 12), 18),
		Spin:     utils.V3(2, 2, 0),
		Immortal: true,
		Fade:     components.FadeNone,
		Build:    build(b, game.PropSparky),
	}
}

// NewSparks 创建一簇火花粒子（生命 1 秒，线性淡出）
func NewSparks(b game.Builder, r Random, at utils.Vec3, count int) []actors.Spec {
	specs := make([]actors.Spec, 0, count)
	for i := 0; i < count; i++ {
		specs = append(specs, actors.Spec{
			Position: at,
			Velocity: utils.V3(jitter(r, 6), jitter(r, 6), jitter(r, 6)),
			Life:     1,
			Fade:     components.FadeLinear,
			Build:    build(b, game.PropSpark),
		})
	}
	return specs
}

// NewTrail 创建 Sparky 身后的尾迹粒子（静止，透明度与尺寸随生命缩小）
func NewTrail(b game.Builder, at utils.Vec3) actors.Spec {
	return actors.Spec{
		Position: at,
		Life:     1,
		Fade:     components.FadeTrail,
		Build:    build(b, game.PropTrail),
	}
}

// NewAurora 创建一颗极光粒子
// 生命 3，每秒衰减 0.3，缓慢上升并左右飘动
func NewAurora(b game.Builder, r Random, at utils.Vec3) actors.Spec {
	return actors.Spec{
		Position:  at,
		Velocity:  utils.V3(jitter(r, 1.2), r.Float64()*3, 0),
		Life:      3,
		DecayRate: 0.3,
		Fade:      components.FadeAurora,
		Build:     build(b, game.PropAurora),
	}
}

// NewWave 创建一道辐射波（点击清除小游戏中的威胁）
// 在 WaveBounds 内反弹，按 3 rad/s 脉冲，只能被点击或护盾清除
func NewWave(b game.Builder, r Random, at utils.Vec3) actors.Spec {
	return actors.Spec{
		Position:       at,
		Velocity:       utils.V3(jitter(r, 1.2), jitter(r, 1.2), 0),
		Immortal:       true,
		Fade:           components.FadeNone,
		Opacity:        0.6,
		PulseRate:      3,
		PulseAmplitude: 0.2,
		PulsePhase:     r.Float64() * 2 * math.Pi,
		Bounds:         WaveBounds,
		Threat:         true,
		Build:          build(b, game.PropWave),
	}
}

// NewShield 创建宇航员周围的护盾（存在 duration 秒）
func NewShield(b game.Builder, at utils.Vec3, duration float64) actors.Spec {
	return actors.Spec{
		Position: at,
		Spin:     utils.V3(0, 1, 0),
		Life:     duration,
		Fade:     components.FadeNone,
		Opacity:  0.3,
		Build:    build(b, game.PropShield),
	}
}
