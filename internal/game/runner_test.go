package game

import (
	"sync"
	"testing"
	"time"

	"github.com/birzha/game-engine/internal/rng"
)

func TestRunner_TicksAndNotifies(t *testing.T) {
	g := New(rng.New(42))

	var mu sync.Mutex
	var days []int
	r := NewRunner(g, func(report DayReport) {
		mu.Lock()
		days = append(days, report.Day)
		mu.Unlock()
	}, nil)

	r.Start(5 * time.Millisecond)
	defer r.Stop()

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(days)
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("only %d ticks before the deadline", n)
		case <-time.After(time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for i, d := range days[:3] {
		if d != i+1 {
			t.Errorf("tick %d reported day %d, want %d", i, d, i+1)
		}
	}
}

func TestRunner_StopIsIdempotent(t *testing.T) {
	g := New(rng.New(42))
	r := NewRunner(g, nil, nil)

	r.Stop() // not running yet

	r.Start(time.Millisecond)
	if running, interval := r.Running(); !running || interval != time.Millisecond {
		t.Errorf("Running() = %v, %v", running, interval)
	}

	r.Stop()
	if running, _ := r.Running(); running {
		t.Error("runner still reports running after Stop")
	}
	r.Stop()
}

func TestRunner_RestartReplacesCadence(t *testing.T) {
	g := New(rng.New(42))
	r := NewRunner(g, nil, nil)
	defer r.Stop()

	r.Start(time.Millisecond)
	r.Start(10 * time.Millisecond)

	if _, interval := r.Running(); interval != 10*time.Millisecond {
		t.Errorf("interval = %v, want the replacement cadence", interval)
	}
}
