package headless

import "github.com/decker502/solarstory/pkg/game"

// Audio 记录型音频；Speak 不会自动结束，测试用 FinishSpeech 模拟
type Audio struct {
	Sounds  []game.SoundID
	Spoken  []string
	Stopped int

	onEnd func()
}

// NewAudio 创建记录型音频
func NewAudio() *Audio {
	return &Audio{}
}

func (a *Audio) PlaySound(id game.SoundID) {
	a.Sounds = append(a.Sounds, id)
}

func (a *Audio) Speak(text string, onEnd func()) {
	a.Spoken = append(a.Spoken, text)
	a.onEnd = onEnd
}

func (a *Audio) StopSpeaking() {
	a.Stopped++
	a.onEnd = nil
}

// FinishSpeech 结束当前朗读并调用 onEnd
func (a *Audio) FinishSpeech() {
	fn := a.onEnd
	a.onEnd = nil
	if fn != nil {
		fn()
	}
}

// Count 某个音效播放的次数
func (a *Audio) Count(id game.SoundID) int {
	n := 0
	for _, s := range a.Sounds {
		if s == id {
			n++
		}
	}
	return n
}
