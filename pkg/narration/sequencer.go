// Package narration 按顺序播放旁白
//
// Sequencer 用显式的索引代替嵌套回调：同一时刻最多一条旁白处于打开状态，
// 只有收到推进信号（点击或定时器）才显示下一条；最后一条被推进后
// 完成回调恰好执行一次，随后 Sequencer 进入静默状态。
package narration

import (
	"log"

	"github.com/decker502/solarstory/pkg/game"
	"github.com/decker502/solarstory/pkg/timer"
)

// Beat 一条旁白
type Beat struct {
	Text string
	// Auto > 0 时在 Auto 秒后自动推进（玩家仍可提前点击）
	Auto float64
}

// Beats 创建一组需要手动推进的旁白
func Beats(texts ...string) []Beat {
	beats := make([]Beat, 0, len(texts))
	for _, t := range texts {
		beats = append(beats, Beat{Text: t})
	}
	return beats
}

// Sequencer 旁白序列器，可被同一场景重复使用
type Sequencer struct {
	ui        game.UI
	audio     game.Audio
	scheduler *timer.Scheduler

	beats  []Beat
	index  int
	open   bool
	onDone func()
	auto   timer.ID
	// generation 每次 Play / Cancel 递增，使旧的推进回调失效
	generation int
}

// NewSequencer 创建旁白序列器；audio 与 scheduler 可以为 nil
func NewSequencer(ui game.UI, audio game.Audio, scheduler *timer.Scheduler) *Sequencer {
	return &Sequencer{ui: ui, audio: audio, scheduler: scheduler}
}

// Play 从第 0 条开始播放；正在播放的序列被取消且不触发其完成回调
// 空序列立即完成
func (s *Sequencer) Play(beats []Beat, onDone func()) {
	if s.open {
		s.Cancel()
	}
	s.generation++
	s.beats = beats
	s.index = 0
	s.onDone = onDone

	if len(beats) == 0 {
		s.finish()
		return
	}
	s.show()
}

// Advance 推进当前旁白；静默状态下是空操作
func (s *Sequencer) Advance() {
	if !s.open {
		return
	}
	s.advanceFrom(s.generation, s.index)
}

// Cancel 中止播放：隐藏旁白、停止朗读、取消自动推进，不触发完成回调
func (s *Sequencer) Cancel() {
	if s.open {
		s.close()
	}
	s.generation++
	s.onDone = nil
	s.beats = nil
}

// Active 是否有旁白正在等待推进
func (s *Sequencer) Active() bool {
	return s.open
}

// Index 当前打开的旁白索引
func (s *Sequencer) Index() int {
	return s.index
}

func (s *Sequencer) show() {
	beat := s.beats[s.index]
	gen, idx := s.generation, s.index
	advance := func() { s.advanceFrom(gen, idx) }
	// 玩家点击"下一步"有点击音效，定时推进没有
	clicked := func() {
		if s.isCurrent(gen, idx) && s.audio != nil {
			s.audio.PlaySound(game.SoundClick)
		}
		advance()
	}

	s.open = true
	s.ui.ShowNarration(beat.Text, clicked)
	if s.audio != nil {
		s.audio.Speak(beat.Text, func() {
			if s.isCurrent(gen, idx) {
				s.ui.CueNext()
			}
		})
	}
	if beat.Auto > 0 && s.scheduler != nil {
		s.auto = s.scheduler.After(beat.Auto, advance)
	}
}

// isCurrent 信号是否属于当前打开的旁白
func (s *Sequencer) isCurrent(gen, idx int) bool {
	return s.open && gen == s.generation && idx == s.index
}

// advanceFrom 只接受与当前打开的旁白匹配的推进信号
func (s *Sequencer) advanceFrom(gen, idx int) {
	if !s.isCurrent(gen, idx) {
		return
	}
	s.close()

	s.index++
	if s.index < len(s.beats) {
		s.show()
		return
	}
	s.finish()
}

func (s *Sequencer) close() {
	s.open = false
	if s.auto != 0 && s.scheduler != nil {
		s.scheduler.Cancel(s.auto)
	}
	s.auto = 0
	s.ui.HideNarration()
	if s.audio != nil {
		s.audio.StopSpeaking()
	}
}

func (s *Sequencer) finish() {
	done := s.onDone
	s.onDone = nil
	s.beats = nil
	if done == nil {
		log.Printf("[Narration] sequence finished without callback")
		return
	}
	done()
}
