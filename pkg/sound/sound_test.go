package sound

import (
	"math"
	"testing"

	"github.com/decker502/solarstory/pkg/game"
)

func TestRenderLengthAndGain(t *testing.T) {
	tests := []struct {
		id   game.SoundID
		gain float64
	}{
		{game.SoundFailure, 0.3},
		{game.SoundSuccess, 0.3},
		{game.SoundBeep, 0.2},
		{game.SoundClick, 0.1},
		{game.SoundWhoosh, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			pcm := Render(tt.id, SampleRate)
			frames := len(pcm) / 4
			want := SampleRate.N(Duration(tt.id))
			if frames > want || frames < want-4 {
				t.Errorf("frames = %d, want ~%d", frames, want)
			}

			peak := 0.0
			for i := 0; i+1 < len(pcm); i += 2 {
				v := float64(int16(uint16(pcm[i])|uint16(pcm[i+1])<<8)) / math.MaxInt16
				peak = math.Max(peak, math.Abs(v))
			}
			if peak > tt.gain+1e-3 {
				t.Errorf("peak = %.3f, want <= %.2f", peak, tt.gain)
			}
			if peak < tt.gain*0.5 {
				t.Errorf("peak = %.3f, sound too quiet", peak)
			}
		})
	}
}

func TestUnknownSound(t *testing.T) {
	if Streamer(game.SoundID(99), SampleRate) != nil {
		t.Error("Unknown sound should yield nil streamer")
	}
	if Render(game.SoundID(99), SampleRate) != nil {
		t.Error("Unknown sound should render nothing")
	}
}

func TestVoiceCallsOnEndAfterDuration(t *testing.T) {
	v := NewVoice(2.5)
	ended := 0
	v.Speak("one two three four five", func() { ended++ })

	if got := v.SpeechDuration("one two three four five"); got != 2 {
		t.Fatalf("SpeechDuration = %v, want 2", got)
	}
	for i := 0; i < 119; i++ {
		v.Update(1.0 / 60)
	}
	if ended != 0 || v.Speaking() == "" {
		t.Fatal("Speech should still be running before 2s")
	}
	v.Update(1.0 / 60)
	v.Update(1.0 / 60)
	if ended != 1 || v.Speaking() != "" {
		t.Errorf("onEnd called %d times, speaking=%q", ended, v.Speaking())
	}
}

func TestVoiceStopAndReplace(t *testing.T) {
	v := NewVoice(0)
	first, second := 0, 0

	v.Speak("hello there", func() { first++ })
	v.StopSpeaking()
	v.Update(5)
	if first != 0 {
		t.Error("Stopped speech should not call onEnd")
	}

	v.Speak("a", func() { first++ })
	v.Speak("b", func() { second++ })
	v.Update(5)
	if first != 0 || second != 1 {
		t.Errorf("Replaced speech: first=%d second=%d, want 0/1", first, second)
	}
}

type recordingSink struct {
	played []game.SoundID
}

func (s *recordingSink) Play(id game.SoundID) { s.played = append(s.played, id) }

func TestPlayerRoutesSoundsAndMute(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, nil)

	p.PlaySound(game.SoundClick)
	p.PlaySound(game.SoundID(42))
	p.SetMuted(true)
	p.PlaySound(game.SoundBeep)

	if len(sink.played) != 1 || sink.played[0] != game.SoundClick {
		t.Errorf("played = %v, want [click]", sink.played)
	}

	silent := NewPlayer(nil, nil)
	silent.PlaySound(game.SoundClick)

	done := false
	p.Speak("x", func() { done = true })
	p.Update(minSpeech)
	if !done {
		t.Error("Speech should end after the minimum duration")
	}
}
