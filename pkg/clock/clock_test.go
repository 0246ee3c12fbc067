package clock

import (
	"testing"
	"time"
)

func TestManualAdvanceFiresInOrder(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var got []string
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })

	c.Advance(15 * time.Millisecond)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("after 15ms got %v, want [a]", got)
	}
	c.Advance(5 * time.Millisecond)
	if len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("after 20ms got %v, want [a b c]", got)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestManualStop(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("Stop() on pending timer returned false")
	}
	if tm.Stop() {
		t.Error("second Stop() returned true")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualRearmDuringAdvance(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	var at []time.Duration
	start := c.Now()
	var tick func()
	tick = func() {
		at = append(at, c.Now().Sub(start))
		c.AfterFunc(10*time.Millisecond, tick)
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(35 * time.Millisecond)
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("ticks = %v, want %v", at, want)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("tick %d at %v, want %v", i, at[i], want[i])
		}
	}
	if got := c.Now().Sub(start); got != 35*time.Millisecond {
		t.Errorf("Now() = +%v, want +35ms", got)
	}
}
