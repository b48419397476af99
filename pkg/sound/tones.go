// Package sound 实现 Audio 协作者：合成提示音、播放以及按时长模拟的朗读
//
// 所有提示音都由振荡器实时合成，不依赖音频文件。合成基于 beep 的
// Streamer 组合；桌面后端把合成结果渲染成 PCM 交给 ebiten/audio，
// 终端后端直接把 Streamer 送入 beep/speaker。
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/decker502/solarstory/pkg/game"
)

// SampleRate 合成采样率
const SampleRate = beep.SampleRate(48000)

// tone 一段正弦音：频率在 duration 内从 from 指数滑到 to，
// 音量从 gain 指数衰减到 0.01
type tone struct {
	from, to float64
	gain     float64
	duration time.Duration
}

// Tones 每种音效的音调序列（按顺序首尾相接）
var Tones = map[game.SoundID][]tone{
	// 失败音：低沉下滑
	game.SoundFailure: {{from: 200, to: 100, gain: 0.3, duration: 100 * time.Millisecond}},
	// 成功音：C5 E5 G5 三连音
	game.SoundSuccess: {
		{from: 523, to: 523, gain: 0.3, duration: 100 * time.Millisecond},
		{from: 659, to: 659, gain: 0.3, duration: 100 * time.Millisecond},
		{from: 784, to: 784, gain: 0.3, duration: 100 * time.Millisecond},
	},
	game.SoundBeep:   {{from: 440, to: 440, gain: 0.2, duration: 100 * time.Millisecond}},
	game.SoundClick:  {{from: 800, to: 800, gain: 0.1, duration: 50 * time.Millisecond}},
	game.SoundWhoosh: {{from: 1000, to: 200, gain: 0.2, duration: 300 * time.Millisecond}},
}

// sweep 指数扫频的正弦振荡器
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	position int
	total    int
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, t)

		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay 指数衰减包络
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.total)
		if t > 1 {
			t = 1
		}
		vol := math.Pow(0.01, t)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume 线性音量转换成 effects.Volume（以 2 为底）
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Duration 音效总时长
func Duration(id game.SoundID) time.Duration {
	var d time.Duration
	for _, t := range Tones[id] {
		d += t.duration
	}
	return d
}

// Streamer 合成一个音效；未知音效返回 nil
// 成功音的三个音共享同一条衰减包络
func Streamer(id game.SoundID, rate beep.SampleRate) beep.Streamer {
	tones, ok := Tones[id]
	if !ok || len(tones) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newSweep(t.from, t.to, t.duration, rate))
	}
	shaped := &decay{streamer: beep.Seq(parts...), total: rate.N(Duration(id))}
	return newVolume(beep.Take(rate.N(Duration(id)), shaped), tones[0].gain)
}

// Render 把音效渲染为 16 位小端立体声 PCM（ebiten/audio 的格式）
func Render(id game.SoundID, rate beep.SampleRate) []byte {
	s := Streamer(id, rate)
	if s == nil {
		return nil
	}
	var pcm []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				x := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				pcm = append(pcm, byte(x), byte(x>>8))
			}
		}
		if !ok {
			break
		}
	}
	return pcm
}
