package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/solarstory/pkg/game"
)

// SpeakerSink 通过 beep/speaker 实时播放（终端后端使用）
type SpeakerSink struct {
	mixer *beep.Mixer
}

// NewSpeakerSink 初始化扬声器，缓冲 100ms
func NewSpeakerSink() (*SpeakerSink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play 实现 Sink
func (s *SpeakerSink) Play(id game.SoundID) {
	st := Streamer(id, SampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close 停止所有声音
func (s *SpeakerSink) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
