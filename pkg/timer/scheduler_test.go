package timer

import "testing"

func TestAfterFiresOnceWhenDue(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.After(0.5, func() { count++ })

	s.Update(0.25)
	if count != 0 {
		t.Fatal("Timer fired early")
	}
	s.Update(0.25)
	if count != 1 {
		t.Fatalf("Expected timer to fire once at 0.5s, got %d", count)
	}
	s.Update(1)
	if count != 1 {
		t.Errorf("Timer fired again, count=%d", count)
	}
}

func TestFixedStepAccumulation(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(0.8, func() { fired = true })

	// 48 帧 * 1/60 = 0.8 秒
	for i := 0; i < 47; i++ {
		s.Update(1.0 / 60.0)
	}
	if fired {
		t.Fatal("Timer fired before 48 ticks")
	}
	s.Update(1.0 / 60.0)
	if !fired {
		t.Error("Timer should fire on the 48th tick")
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(1, func() { fired = true })

	if !s.Cancel(id) {
		t.Error("Cancel should succeed for a pending timer")
	}
	if s.Cancel(id) {
		t.Error("Second Cancel should fail")
	}
	s.Update(2)
	if fired {
		t.Error("Cancelled timer fired")
	}
}

func TestCancelAllInsideCallback(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.After(1, func() {
		order = append(order, 1)
		s.CancelAll()
	})
	s.After(1, func() { order = append(order, 2) })
	s.After(5, func() { order = append(order, 3) })

	s.Update(10)

	if len(order) != 1 || order[0] != 1 {
		t.Errorf("order = %v, want [1]", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestOrderByDueThenCreation(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(2, func() { order = append(order, "late") })
	s.After(1, func() { order = append(order, "a") })
	s.After(1, func() { order = append(order, "b") })

	s.Update(3)

	want := []string{"a", "b", "late"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTimerScheduledInCallbackRunsNextUpdate(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.After(0, func() {
		s.After(0, func() { count++ })
	})

	s.Update(0.016)
	if count != 0 {
		t.Fatal("Nested timer should not run in the same Update")
	}
	s.Update(0.016)
	if count != 1 {
		t.Errorf("Nested timer count = %d, want 1", count)
	}
}
