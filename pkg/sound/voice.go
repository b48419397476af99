package sound

import (
	"log"
	"strings"

	"github.com/decker502/solarstory/pkg/timer"
)

// DefaultWordsPerSecond 默认朗读语速
const DefaultWordsPerSecond = 2.5

// minSpeech 最短朗读时长（秒）
const minSpeech = 0.5

// Voice 按字数估算时长的朗读
//
// 没有语音合成时，Speak 只记录正在朗读的文本，并在估算时长后回调 onEnd。
// 时长由宿主的固定步长驱动，与旁白自动推进使用同一种时钟。
type Voice struct {
	wordsPerSecond float64
	scheduler      *timer.Scheduler

	speaking string
	pending  timer.ID
}

// NewVoice 创建朗读器，wordsPerSecond <= 0 时使用默认语速
func NewVoice(wordsPerSecond float64) *Voice {
	if wordsPerSecond <= 0 {
		wordsPerSecond = DefaultWordsPerSecond
	}
	return &Voice{wordsPerSecond: wordsPerSecond, scheduler: timer.NewScheduler()}
}

// SpeechDuration 朗读 text 需要的时长（秒）
func (v *Voice) SpeechDuration(text string) float64 {
	d := float64(len(strings.Fields(text))) / v.wordsPerSecond
	if d < minSpeech {
		return minSpeech
	}
	return d
}

// Speak 开始朗读；正在进行的朗读被打断且不回调
func (v *Voice) Speak(text string, onEnd func()) {
	v.StopSpeaking()
	v.speaking = text
	log.Printf("[Sound] speak %.1fs: %q", v.SpeechDuration(text), text)
	v.pending = v.scheduler.After(v.SpeechDuration(text), func() {
		v.pending = 0
		v.speaking = ""
		if onEnd != nil {
			onEnd()
		}
	})
}

// StopSpeaking 打断朗读
func (v *Voice) StopSpeaking() {
	if v.pending != 0 {
		v.scheduler.Cancel(v.pending)
		v.pending = 0
	}
	v.speaking = ""
}

// Speaking 正在朗读的文本，空表示静默
func (v *Voice) Speaking() string {
	return v.speaking
}

// Update 推进朗读时钟
func (v *Voice) Update(dt float64) {
	v.scheduler.Update(dt)
}
