package sound

import (
	"log"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/solarstory/pkg/game"
)

// EbitenSink 通过 ebiten/audio 播放预先渲染的音效
// 每种音效缓存一个 Player，重复播放时回到开头
type EbitenSink struct {
	context *audio.Context
	players map[game.SoundID]*audio.Player
	volume  float64
}

// NewEbitenSink 渲染全部音效；context 为 nil 时使用 SampleRate 新建
// 同一进程只能存在一个 audio.Context
func NewEbitenSink(context *audio.Context) *EbitenSink {
	if context == nil {
		context = audio.NewContext(int(SampleRate))
	}
	s := &EbitenSink{
		context: context,
		players: make(map[game.SoundID]*audio.Player),
		volume:  1,
	}
	rate := SampleRate
	if context.SampleRate() != int(SampleRate) {
		rate = beep.SampleRate(context.SampleRate())
	}
	for id := range Tones {
		pcm := Render(id, rate)
		s.players[id] = s.context.NewPlayerFromBytes(pcm)
	}
	log.Printf("[Sound] ebiten sink ready (%d sounds @ %dHz)", len(s.players), context.SampleRate())
	return s
}

// SetVolume 设置音效音量 (0.0 ~ 1.0)
func (s *EbitenSink) SetVolume(volume float64) {
	s.volume = volume
	for _, p := range s.players {
		p.SetVolume(volume)
	}
}

// Play 实现 Sink
func (s *EbitenSink) Play(id game.SoundID) {
	player, ok := s.players[id]
	if !ok {
		return
	}
	player.SetVolume(s.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[Sound] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
}
