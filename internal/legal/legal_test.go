package legal

import (
	"testing"

	"github.com/birzha/game-engine/internal/market"
	"github.com/birzha/game-engine/internal/trader"
)

// script is a deterministic rng.Source fed from a fixed sequence.
type script struct {
	vals []float64
	i    int
}

func (s *script) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNoteRumor_RaisesLevel(t *testing.T) {
	s := New()
	s.NoteRumor(0.7)
	if got := s.InvestigationLevel(); got != 5.6 {
		t.Errorf("level = %v, want 5.6", got)
	}
}

func TestNoteRumor_ClampsAtHundred(t *testing.T) {
	s := New()
	for i := 0; i < 20; i++ {
		s.NoteRumor(1)
	}
	if got := s.InvestigationLevel(); got != 100 {
		t.Errorf("level = %v, want clamp at 100", got)
	}
}

func TestInvestigate_FraudBranch(t *testing.T) {
	s := New()
	tr := trader.New() // reputation 50
	for i := 0; i < 10; i++ {
		s.NoteRumor(1) // level 80
	}

	// risk = 0.8 * (10/60) * 0.15 = 0.02
	// draws: fraud 0.01 (hit), jail chance 0.1 (hit), jail days 0.5 → 4,
	// reputation cut 0.5 → 15.
	src := &script{vals: []float64{0.01, 0.1, 0.5, 0.5}}
	msg := s.Investigate(tr, src)

	if msg != PenaltyMessage {
		t.Fatalf("message = %q, want penalty", msg)
	}
	if s.Strikes() != 1 {
		t.Errorf("strikes = %d, want 1", s.Strikes())
	}
	if tr.JailTime() != 4 {
		t.Errorf("jailTime = %d, want 4", tr.JailTime())
	}
	if tr.Reputation() != 35 {
		t.Errorf("reputation = %v, want 35", tr.Reputation())
	}
	if got := s.InvestigationLevel(); got != 60 {
		t.Errorf("level = %v, want 60 after the 20-point relief", got)
	}
}

func TestInvestigate_FraudWithoutJail(t *testing.T) {
	s := New()
	tr := trader.New()
	for i := 0; i < 10; i++ {
		s.NoteRumor(1)
	}

	// jail chance draw 0.9 misses the 40%: sanctions without jail.
	src := &script{vals: []float64{0.01, 0.9, 0.0}}
	msg := s.Investigate(tr, src)

	if msg != PenaltyMessage {
		t.Fatalf("message = %q, want penalty", msg)
	}
	if tr.JailTime() != 0 {
		t.Errorf("jailTime = %d, want 0", tr.JailTime())
	}
	if tr.Reputation() != 40 { // cut by 10
		t.Errorf("reputation = %v, want 40", tr.Reputation())
	}
}

func TestInvestigate_NaturalDecay(t *testing.T) {
	s := New()
	tr := trader.New()
	s.NoteRumor(1) // level 8

	src := &script{vals: []float64{0.99}}
	if msg := s.Investigate(tr, src); msg != "" {
		t.Fatalf("expected no penalty, got %q", msg)
	}
	if got := s.InvestigationLevel(); got != 6 {
		t.Errorf("level = %v, want 6", got)
	}
	if s.Strikes() != 0 || tr.Reputation() != 50 {
		t.Error("clean investigation must not sanction the trader")
	}
	// Decay never goes below zero.
	for i := 0; i < 10; i++ {
		s.Investigate(tr, src)
	}
	if got := s.InvestigationLevel(); got != 0 {
		t.Errorf("level = %v, want floor 0", got)
	}
}

func TestInvestigate_ZeroLevelZeroRisk(t *testing.T) {
	s := New()
	tr := trader.New()

	// Even the most unlucky draw cannot trigger fraud at level 0.
	src := &script{vals: []float64{0.0, 0.0, 0.0, 0.0}}
	if msg := s.Investigate(tr, src); msg != "" {
		t.Fatalf("expected no penalty at level 0, got %q", msg)
	}
	if src.i != 1 {
		t.Errorf("expected a single draw, got %d", src.i)
	}
}

func TestInvestigate_HighReputationImmunity(t *testing.T) {
	s := New()
	tr := trader.New()
	m := market.New()
	// Push reputation above the safe zone with repeated trades.
	for i := 0; i < 75; i++ {
		if _, _, err := tr.Buy("KSE50", 1, m); err != nil {
			t.Fatalf("buy %d failed: %v", i, err)
		}
		if _, _, err := tr.Sell("KSE50", 1, m); err != nil {
			t.Fatalf("sell %d failed: %v", i, err)
		}
	}
	if tr.Reputation() <= 60 {
		t.Fatalf("setup: reputation = %v, want > 60", tr.Reputation())
	}

	for i := 0; i < 13; i++ {
		s.NoteRumor(1) // level pinned at 100
	}
	src := &script{vals: []float64{0.0}}
	if msg := s.Investigate(tr, src); msg != "" {
		t.Fatalf("expected immunity above the safe zone, got %q", msg)
	}
	if s.Strikes() != 0 {
		t.Error("no strike expected")
	}
}
