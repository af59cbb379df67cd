package clock

import "testing"

func TestTickAdvances(t *testing.T) {
	c := New(DefaultCeiling)
	for want := 1; want <= 5; want++ {
		if got := c.Tick(); got != want {
			t.Fatalf("expected frame %d, got %d", want, got)
		}
	}
	if c.State() != Running {
		t.Errorf("expected running, got %s", c.State())
	}
}

func TestWrap(t *testing.T) {
	const ceiling = 10
	c := New(ceiling)

	for n := 0; n < ceiling; n++ {
		if f := c.Tick(); f > ceiling {
			t.Fatalf("frame %d exceeded ceiling", f)
		}
	}
	if c.Frame() != ceiling {
		t.Fatalf("expected frame %d after %d ticks, got %d", ceiling, ceiling, c.Frame())
	}
	if c.State() != WrapPending {
		t.Errorf("expected wrap-pending, got %s", c.State())
	}

	if f := c.Tick(); f != 0 {
		t.Errorf("expected wrap to 0, got %d", f)
	}
	if c.State() != Running {
		t.Errorf("expected running after wrap, got %s", c.State())
	}
	if f := c.Tick(); f != 1 {
		t.Errorf("expected 1 after wrap, got %d", f)
	}
}

func TestDefaultCeilingNeverExceeded(t *testing.T) {
	c := New(DefaultCeiling)
	for n := 0; n < 2*DefaultCeiling+5; n++ {
		if f := c.Tick(); f > DefaultCeiling || f < 0 {
			t.Fatalf("tick %d: frame %d out of range", n, f)
		}
	}
}

func TestReset(t *testing.T) {
	c := New(3)
	c.Tick()
	c.Tick()
	c.Reset()
	if c.Frame() != 0 {
		t.Errorf("expected 0 after reset, got %d", c.Frame())
	}
}

func TestNewPanicsOnBadCeiling(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero ceiling")
		}
	}()
	New(0)
}
