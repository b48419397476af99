package sound

import (
	"log"

	"github.com/decker502/solarstory/pkg/game"
)

// Sink 音效输出
type Sink interface {
	Play(id game.SoundID)
}

// Player game.Audio 的实现：音效交给 Sink，朗读交给 Voice
type Player struct {
	sink  Sink
	voice *Voice
	muted bool
}

// NewPlayer 创建播放器；sink 为 nil 时静音
func NewPlayer(sink Sink, voice *Voice) *Player {
	if voice == nil {
		voice = NewVoice(DefaultWordsPerSecond)
	}
	return &Player{sink: sink, voice: voice}
}

// SetMuted 静音开关（朗读计时不受影响）
func (p *Player) SetMuted(muted bool) {
	p.muted = muted
}

// Muted 是否静音
func (p *Player) Muted() bool {
	return p.muted
}

// PlaySound 播放音效
func (p *Player) PlaySound(id game.SoundID) {
	if p.muted || p.sink == nil {
		return
	}
	if _, ok := Tones[id]; !ok {
		log.Printf("[Sound] unknown sound %d", id)
		return
	}
	p.sink.Play(id)
}

// Speak 朗读文本
func (p *Player) Speak(text string, onEnd func()) {
	p.voice.Speak(text, onEnd)
}

// StopSpeaking 打断朗读
func (p *Player) StopSpeaking() {
	p.voice.StopSpeaking()
}

// Voice 朗读器
func (p *Player) Voice() *Voice {
	return p.voice
}

// Update 每帧调用，推进朗读
func (p *Player) Update(dt float64) {
	p.voice.Update(dt)
}
