package session

import "testing"

func TestCountdown_TicksAndExpiresOnce(t *testing.T) {
	c := NewCountdown()
	var ticks []int
	expired := 0
	c.Start(3, func(r int) { ticks = append(ticks, r) }, func() { expired++ })
	gen := c.Generation()

	if !c.Advance(gen) || !c.Advance(gen) {
		t.Fatal("expected countdown to keep running")
	}
	if c.Advance(gen) {
		t.Error("countdown should stop at zero")
	}
	c.Advance(gen)

	if len(ticks) != 3 || ticks[2] != 0 {
		t.Errorf("ticks = %v", ticks)
	}
	if expired != 1 {
		t.Errorf("expired %d times, want 1", expired)
	}
	if c.Running() {
		t.Error("expected stopped countdown")
	}
}

func TestCountdown_CancelIgnoresPendingTicks(t *testing.T) {
	c := NewCountdown()
	expired := false
	c.Start(1, nil, func() { expired = true })
	gen := c.Generation()

	c.Cancel()
	if c.Advance(gen) {
		t.Error("stale tick should not advance")
	}
	if expired {
		t.Error("cancelled countdown must not expire")
	}
	if c.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", c.Remaining())
	}
}

func TestCountdown_RestartInvalidatesOldTicks(t *testing.T) {
	c := NewCountdown()
	c.Start(10, nil, nil)
	old := c.Generation()
	c.Start(5, nil, nil)

	if c.Advance(old) {
		t.Error("tick from replaced countdown should be ignored")
	}
	if c.Remaining() != 5 {
		t.Errorf("Remaining = %d, want 5", c.Remaining())
	}
	if !c.Advance(c.Generation()) || c.Remaining() != 4 {
		t.Errorf("Remaining = %d, want 4", c.Remaining())
	}
}

func TestCountdown_ZeroDoesNotRun(t *testing.T) {
	c := NewCountdown()
	fired := false
	c.Start(0, nil, func() { fired = true })
	if c.Running() || c.Advance(c.Generation()) || fired {
		t.Error("zero-length countdown should be inert")
	}
}
