// Package timer 提供由帧驱动的可取消定时回调
//
// Scheduler 不启动 goroutine：时间只在 Update(dt) 时前进，回调在
// Update 内同步执行。这让所有延迟（旁白自动推进、翻牌判定、护盾冷却）
// 与帧数严格对应，并且可以在场景清理时一次性取消。
package timer

import "sort"

// ID 定时器标识，0 无效
type ID uint64

type entry struct {
	id        ID
	due       float64
	fn        func()
	cancelled bool
}

// Scheduler 定时回调调度器
type Scheduler struct {
	now     float64
	nextID  ID
	pending []*entry
	// firing 本次 Update 中已到期、尚未执行的定时器
	firing []*entry
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Now 调度器内部时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行 fn；delay <= 0 时在下一次 Update 执行
func (s *Scheduler) After(delay float64, fn func()) ID {
	if fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	id := s.nextID
	s.nextID++
	s.pending = append(s.pending, &entry{id: id, due: s.now + delay, fn: fn})
	return id
}

// Cancel 取消一个尚未执行的定时器；已执行或不存在时返回 false
func (s *Scheduler) Cancel(id ID) bool {
	for i, e := range s.pending {
		if e.id == id {
			e.cancelled = true
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	for _, e := range s.firing {
		if e.id == id && !e.cancelled {
			e.cancelled = true
			return true
		}
	}
	return false
}

// CancelAll 取消全部定时器，包括本次 Update 中尚未执行的
func (s *Scheduler) CancelAll() {
	for _, e := range s.pending {
		e.cancelled = true
	}
	for _, e := range s.firing {
		e.cancelled = true
	}
	s.pending = nil
}

// Pending 待执行的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Update 推进时钟并执行所有到期的回调
// 到期回调按 (到期时间, 创建顺序) 执行；回调中新建的定时器
// 即使已经到期也只会在下一次 Update 执行
func (s *Scheduler) Update(dt float64) {
	s.now += dt

	var due []*entry
	kept := make([]*entry, 0, len(s.pending))
	for _, e := range s.pending {
		// 容差吸收 dt 累加的浮点误差
		if e.due <= s.now+1e-9 {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.pending = kept
	if len(due) == 0 {
		return
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	s.firing = due
	for _, e := range due {
		if e.cancelled {
			continue
		}
		e.cancelled = true
		e.fn()
	}
	s.firing = nil
}
