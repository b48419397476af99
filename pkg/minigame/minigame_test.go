package minigame

import (
	"math/rand"
	"testing"

	"github.com/decker502/solarstory/pkg/actors"
	"github.com/decker502/solarstory/pkg/ecs"
	"github.com/decker502/solarstory/pkg/timer"
	"github.com/decker502/solarstory/pkg/utils"
)

func TestMatchingAnyOrderCompletesOnce(t *testing.T) {
	orders := [][]string{
		{"red", "blue", "green", "yellow"},
		{"yellow", "green", "blue", "red"},
		{"blue", "yellow", "red", "green"},
	}

	for _, order := range orders {
		m := NewMatching([]string{"red", "blue", "green", "yellow"})
		completions := 0
		m.OnComplete = func() { completions++ }

		var last Outcome
		for _, key := range order {
			if got := m.Select(key); got != Correct {
				t.Fatalf("Select(%s) = %v, want Correct", key, got)
			}
			last = m.Connect("", key)
		}
		if last != Completed || !m.IsComplete() {
			t.Errorf("order %v: last outcome %v, want Completed", order, last)
		}

		// 完成后重复正确配对是空操作
		if got := m.Connect("red", "red"); got != Ignored {
			t.Errorf("Connect after completion = %v, want Ignored", got)
		}
		if completions != 1 || m.Matched() != 4 {
			t.Errorf("completions=%d matched=%d, want 1 and 4", completions, m.Matched())
		}
	}
}

func TestMatchingWrongLeavesStateUnchanged(t *testing.T) {
	m := NewMatching([]string{"red", "blue"})

	m.Select("red")
	if got := m.Connect("", "blue"); got != Wrong {
		t.Errorf("Connect(red, blue) = %v, want Wrong", got)
	}
	if m.Matched() != 0 || m.Remaining() != 2 {
		t.Error("Wrong attempt should not change progress")
	}
	if m.Selected() != "" {
		t.Error("Wrong attempt clears the selection")
	}

	// 错误次数不限
	for i := 0; i < 10; i++ {
		m.Connect("red", "blue")
	}
	if got := m.Connect("red", "red"); got != Correct {
		t.Errorf("Connect(red, red) = %v, want Correct", got)
	}
	// 已用掉的源不能再次使用
	if got := m.Select("red"); got != Ignored {
		t.Errorf("Select used source = %v, want Ignored", got)
	}
}

func TestMatchingConnectWithoutSelection(t *testing.T) {
	m := NewMatching([]string{"red"})
	if got := m.Connect("", "red"); got != Ignored {
		t.Errorf("Connect without selection = %v, want Ignored", got)
	}
}

func TestMatchingMarkChecklist(t *testing.T) {
	m := NewMatching([]string{"tractor", "power"})
	if got := m.Mark("tractor"); got != Correct {
		t.Errorf("Mark = %v", got)
	}
	if got := m.Mark("tractor"); got != Ignored {
		t.Errorf("Mark twice = %v, want Ignored", got)
	}
	if got := m.Mark("power"); got != Completed {
		t.Errorf("Mark last = %v, want Completed", got)
	}
}

// TestSequenceResetOnMistake 目标 [A,B,C]，输入 [A,B,X,A,B,C]
func TestSequenceResetOnMistake(t *testing.T) {
	s := NewSequence([]string{"A", "B", "C"})
	completions := 0
	s.OnComplete = func() { completions++ }

	tests := []struct {
		token    string
		want     Outcome
		progress int
	}{
		{"A", Correct, 1},
		{"B", Correct, 2},
		{"X", Wrong, 0},
		{"A", Correct, 1},
		{"B", Correct, 2},
		{"C", Completed, 3},
		{"A", Ignored, 3},
	}

	for i, tt := range tests {
		if got := s.Press(tt.token); got != tt.want {
			t.Errorf("step %d Press(%s) = %v, want %v", i, tt.token, got, tt.want)
		}
		if s.Progress() != tt.progress {
			t.Errorf("step %d progress = %d, want %d", i, s.Progress(), tt.progress)
		}
	}
	if completions != 1 {
		t.Errorf("completions = %d, want 1", completions)
	}
}

func TestSequenceMistakeAtStartStaysZero(t *testing.T) {
	s := NewSequence([]string{"red", "blue"})
	s.Press("red")
	s.Press("red")
	if s.Progress() != 0 {
		t.Errorf("progress = %d, want 0", s.Progress())
	}
}

func newMemory(t *testing.T, delay float64) (*MemoryPairs, *timer.Scheduler) {
	t.Helper()
	sched := timer.NewScheduler()
	r := rand.New(rand.NewSource(42))
	symbols := []string{"🌈", "⭐", "💫", "✨", "🌟", "💥"}
	return NewMemoryPairs(symbols, r.Shuffle, sched, delay), sched
}

func TestMemoryPairsDealsEachSymbolTwice(t *testing.T) {
	m, _ := newMemory(t, 0.8)

	counts := map[string]int{}
	for i, c := range m.Cards() {
		if c.ID != i {
			t.Errorf("Card %d has ID %d", i, c.ID)
		}
		counts[c.Symbol]++
	}
	if len(m.Cards()) != 12 || m.TotalPairs() != 6 {
		t.Fatalf("cards=%d pairs=%d, want 12 and 6", len(m.Cards()), m.TotalPairs())
	}
	for sym, n := range counts {
		if n != 2 {
			t.Errorf("symbol %s appears %d times", sym, n)
		}
	}
}

func TestMemoryPairsFlipAllPairsCompletes(t *testing.T) {
	m, sched := newMemory(t, 0.8)
	completions := 0
	m.OnComplete = func() { completions++ }

	bySymbol := map[string][]int{}
	for _, c := range m.Cards() {
		bySymbol[c.Symbol] = append(bySymbol[c.Symbol], c.ID)
	}

	for _, ids := range bySymbol {
		m.Flip(ids[0])
		m.Flip(ids[1])
		if !m.Locked() {
			t.Fatal("Second flip should lock the board")
		}
		// 锁定期间的翻牌被忽略
		for _, c := range m.Cards() {
			if got := m.Flip(c.ID); got != Ignored {
				t.Fatalf("Flip while locked = %v, want Ignored", got)
			}
		}
		for i := 0; i < 48; i++ {
			sched.Update(1.0 / 60.0)
		}
		if m.Locked() {
			t.Fatal("Board should unlock after the resolve delay")
		}
	}

	if m.Matched() != m.TotalPairs() {
		t.Errorf("matched = %d, want %d", m.Matched(), m.TotalPairs())
	}
	if !m.IsComplete() || completions != 1 {
		t.Errorf("complete=%v completions=%d", m.IsComplete(), completions)
	}
}

func TestMemoryPairsSameCardTwiceNeverMatches(t *testing.T) {
	m, sched := newMemory(t, 0.8)

	if got := m.Flip(3); got != Correct {
		t.Fatalf("first Flip = %v", got)
	}
	if got := m.Flip(3); got != Ignored {
		t.Errorf("Flip same card = %v, want Ignored", got)
	}
	if m.Locked() {
		t.Error("Flipping the same card twice must not lock the board")
	}
	sched.Update(5)
	if m.Matched() != 0 {
		t.Error("Same card must never be matched with itself")
	}
}

func TestMemoryPairsMismatchFlipsBack(t *testing.T) {
	m, sched := newMemory(t, 0.8)

	var first, second = -1, -1
	for _, c := range m.Cards() {
		if first < 0 {
			first = c.ID
		} else if c.Symbol != m.Cards()[first].Symbol {
			second = c.ID
			break
		}
	}

	resolved := false
	m.OnResolve = func(a, b int, matched bool) {
		resolved = true
		if matched || a != first || b != second {
			t.Errorf("OnResolve(%d, %d, %v)", a, b, matched)
		}
	}

	m.Flip(first)
	m.Flip(second)
	sched.Update(0.5)
	if resolved {
		t.Fatal("Pair resolved before the delay elapsed")
	}
	sched.Update(0.3)
	if !resolved {
		t.Fatal("Pair should resolve after 0.8s")
	}
	if m.IsFlipped(first) || m.IsFlipped(second) {
		t.Error("Mismatched cards should flip back")
	}
	if got := m.Flip(first); got != Correct {
		t.Errorf("Card should be flippable again, got %v", got)
	}
}

func TestMemoryPairsCancelStopsResolve(t *testing.T) {
	m, sched := newMemory(t, 0.8)
	m.Flip(0)
	m.Flip(1)
	m.Cancel()
	sched.Update(1)
	if !m.Locked() {
		t.Error("Cancelled resolve should leave the board untouched")
	}
}

func spawnThreats(r *actors.Registry, positions ...utils.Vec3) []ecs.EntityID {
	var ids []ecs.EntityID
	for _, p := range positions {
		id, _ := r.Spawn(actors.Spec{Position: p, Immortal: true, Threat: true})
		ids = append(ids, id)
	}
	return ids
}

func TestClickToClearAreaEffectRadiusAndCooldown(t *testing.T) {
	r := actors.NewRegistry(nil)
	sched := timer.NewScheduler()
	ids := spawnThreats(r,
		utils.V3(0, 1, 0),  // 距离 1
		utils.V3(3, 0, 0),  // 距离 3（边界上）
		utils.V3(0, -5, 0), // 距离 5
		utils.V3(8, 8, 0),  // 远
	)
	g := NewClickToClear(r, ids, sched, 2)

	n, got := g.AreaEffect(utils.V3(0, 0, 0), 3)
	if n != 2 || got != Correct {
		t.Fatalf("AreaEffect = (%d, %v), want (2, Correct)", n, got)
	}
	if r.Has(ids[0]) || r.Has(ids[1]) {
		t.Error("Threats within radius should be removed")
	}
	if !r.Has(ids[2]) || !r.Has(ids[3]) {
		t.Error("Threats outside radius should be untouched")
	}

	// 冷却期间是空操作
	if n, got := g.AreaEffect(utils.V3(0, -5, 0), 3); n != 0 || got != Ignored {
		t.Errorf("AreaEffect during cooldown = (%d, %v), want (0, Ignored)", n, got)
	}
	if g.ShieldReady() {
		t.Error("Shield should be cooling down")
	}

	sched.Update(2)
	if !g.ShieldReady() {
		t.Fatal("Shield should be ready after the cooldown")
	}
	if n, _ := g.AreaEffect(utils.V3(0, -5, 0), 3); n != 1 {
		t.Errorf("AreaEffect after cooldown cleared %d, want 1", n)
	}
	if g.Cleared() != 3 {
		t.Errorf("Cleared = %d, want 3", g.Cleared())
	}
}

func TestClickToClearHitsComplete(t *testing.T) {
	r := actors.NewRegistry(nil)
	ids := spawnThreats(r, utils.V3(1, 0, 0), utils.V3(2, 0, 0))
	g := NewClickToClear(r, ids, timer.NewScheduler(), 2)
	completions := 0
	g.OnComplete = func() { completions++ }

	if got := g.Hit(0, false); got != Ignored {
		t.Errorf("Miss = %v, want Ignored", got)
	}
	if got := g.Hit(ids[0], true); got != Correct {
		t.Errorf("Hit = %v, want Correct", got)
	}
	if got := g.Hit(ids[0], true); got != Ignored {
		t.Errorf("Hit cleared threat = %v, want Ignored", got)
	}
	if got := g.Hit(ids[1], true); got != Completed {
		t.Errorf("Last hit = %v, want Completed", got)
	}
	if completions != 1 || r.Count() != 0 {
		t.Errorf("completions=%d remaining=%d", completions, r.Count())
	}
	if _, got := g.AreaEffect(utils.V3(0, 0, 0), 10); got != Ignored {
		t.Error("AreaEffect after completion should be ignored")
	}
}

func TestMatchingDuplicateKeysCountOnce(t *testing.T) {
	m := NewMatching([]string{"red", "red", "blue"})
	if len(m.Keys()) != 2 || m.Remaining() != 2 {
		t.Fatalf("Keys=%v Remaining=%d, want 2 unique keys", m.Keys(), m.Remaining())
	}

	m.Select("red")
	if got := m.Connect("", "red"); got != Correct {
		t.Errorf("Connect(red) = %v, want Correct", got)
	}
	m.Select("blue")
	if got := m.Connect("", "blue"); got != Completed || !m.IsComplete() {
		t.Errorf("Connect(blue) = %v, want Completed", got)
	}
}

// starter 四种小游戏共有的启动接口
type starter interface {
	Start() Outcome
	IsComplete() bool
}

// TestStartCompletesEmptyGames 没有目标的游戏在 Start 时立即完成，且只完成一次
func TestStartCompletesEmptyGames(t *testing.T) {
	matching := NewMatching(nil)
	memory := NewMemoryPairs(nil, nil, timer.NewScheduler(), 0.8)
	sequence := NewSequence(nil)
	clearing := NewClickToClear(actors.NewRegistry(nil), nil, timer.NewScheduler(), 2)

	tests := []struct {
		name       string
		game       starter
		onComplete *func()
	}{
		{"Matching", matching, &matching.OnComplete},
		{"MemoryPairs", memory, &memory.OnComplete},
		{"Sequence", sequence, &sequence.OnComplete},
		{"ClickToClear", clearing, &clearing.OnComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completions := 0
			*tt.onComplete = func() { completions++ }

			if got := tt.game.Start(); got != Completed || !tt.game.IsComplete() {
				t.Errorf("Start() = %v, want Completed", got)
			}
			if got := tt.game.Start(); got != Ignored {
				t.Errorf("Second Start() = %v, want Ignored", got)
			}
			if completions != 1 {
				t.Errorf("completions = %d, want 1", completions)
			}
		})
	}
}

func TestStartWithTargetsDoesNotComplete(t *testing.T) {
	r := actors.NewRegistry(nil)
	games := map[string]starter{
		"Matching":     NewMatching([]string{"red"}),
		"MemoryPairs":  NewMemoryPairs([]string{"star"}, nil, timer.NewScheduler(), 0.8),
		"Sequence":     NewSequence([]string{"red"}),
		"ClickToClear": NewClickToClear(r, spawnThreats(r, utils.V3(1, 0, 0)), timer.NewScheduler(), 2),
	}
	for name, g := range games {
		if got := g.Start(); got != Ignored || g.IsComplete() {
			t.Errorf("%s: Start() = %v, want Ignored", name, got)
		}
	}
}
