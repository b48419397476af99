package minigame

import (
	"log"

	"github.com/decker502/solarstory/pkg/timer"
)

// Card 一张记忆卡
type Card struct {
	ID     int
	Symbol string
}

// MemoryPairs 翻牌配对
//
// 每个符号恰好出现两次。翻开第二张牌后加锁，经过固定的真实时间延迟
// （调度器计时，与帧率无关）再比较两张牌：同符号则配对，否则翻回。
// 无论结果如何都会解锁。
type MemoryPairs struct {
	completion

	cards   []Card
	flipped []int
	matched map[string]bool
	locked  bool

	scheduler *timer.Scheduler
	delay     float64
	pending   timer.ID

	// OnResolve 每次比较后回调（first、second 为卡片 ID）
	OnResolve func(first, second int, matched bool)
}

// NewMemoryPairs 创建翻牌游戏
// shuffle 与 rand.Shuffle 签名一致，nil 表示不洗牌；
// scheduler 为 nil 时立即比较（仅用于工具）
func NewMemoryPairs(symbols []string, shuffle func(n int, swap func(i, j int)), scheduler *timer.Scheduler, delay float64) *MemoryPairs {
	seen := make(map[string]bool, len(symbols))
	var cards []Card
	for _, sym := range symbols {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		cards = append(cards, Card{Symbol: sym}, Card{Symbol: sym})
	}
	if shuffle != nil {
		shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	}
	for i := range cards {
		cards[i].ID = i
	}

	return &MemoryPairs{
		cards:     cards,
		matched:   make(map[string]bool),
		scheduler: scheduler,
		delay:     delay,
	}
}

// Start 设置 OnComplete 之后调用；没有卡片时立即完成
func (m *MemoryPairs) Start() Outcome {
	return m.start(len(m.cards) == 0)
}

// Flip 翻开一张牌
// 锁定中、已翻开、已配对或 ID 无效时忽略
func (m *MemoryPairs) Flip(id int) Outcome {
	if m.done || m.locked || id < 0 || id >= len(m.cards) {
		return Ignored
	}
	if m.IsFlipped(id) || m.matched[m.cards[id].Symbol] {
		return Ignored
	}

	m.flipped = append(m.flipped, id)
	if len(m.flipped) < 2 {
		return Correct
	}

	m.locked = true
	if m.scheduler == nil {
		return m.resolve()
	}
	m.pending = m.scheduler.After(m.delay, func() {
		m.pending = 0
		m.resolve()
	})
	return Correct
}

func (m *MemoryPairs) resolve() Outcome {
	if len(m.flipped) != 2 {
		log.Printf("[MemoryPairs] resolve with %d flipped cards", len(m.flipped))
		m.flipped, m.locked = nil, false
		return Ignored
	}
	first, second := m.flipped[0], m.flipped[1]
	same := first != second && m.cards[first].Symbol == m.cards[second].Symbol
	if same {
		m.matched[m.cards[first].Symbol] = true
	}
	m.flipped = nil
	m.locked = false

	if m.OnResolve != nil {
		m.OnResolve(first, second, same)
	}
	if !same {
		return Wrong
	}
	if len(m.matched) == m.TotalPairs() {
		m.complete()
		return Completed
	}
	return Correct
}

// Cancel 取消尚未执行的比较
func (m *MemoryPairs) Cancel() {
	if m.pending != 0 && m.scheduler != nil {
		m.scheduler.Cancel(m.pending)
	}
	m.pending = 0
}

// Cards 发出的牌（按位置）
func (m *MemoryPairs) Cards() []Card {
	return m.cards
}

// IsFlipped 卡片是否处于翻开待比较状态
func (m *MemoryPairs) IsFlipped(id int) bool {
	for _, f := range m.flipped {
		if f == id {
			return true
		}
	}
	return false
}

// IsMatched 卡片是否已配对
func (m *MemoryPairs) IsMatched(id int) bool {
	if id < 0 || id >= len(m.cards) {
		return false
	}
	return m.matched[m.cards[id].Symbol]
}

// Locked 是否正在等待比较
func (m *MemoryPairs) Locked() bool {
	return m.locked
}

// Matched 已配对的符号数
func (m *MemoryPairs) Matched() int {
	return len(m.matched)
}

// TotalPairs 符号对总数
func (m *MemoryPairs) TotalPairs() int {
	return len(m.cards) / 2
}
