package rumors

import (
	"math"
	"testing"
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

var symbols = []string{"KSE50", "UKRBANK", "AGROUA", "ENERGO"}

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestGenerate_ClampsCredibility(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.0}}

	r := s.Generate("Player", "big rally ahead", 1.5, "", src)
	if r.Credibility != 1 {
		t.Errorf("credibility = %v, want clamp to 1", r.Credibility)
	}
	r = s.Generate("Player", "big rally ahead", -0.2, "", src)
	if r.Credibility != 0 {
		t.Errorf("credibility = %v, want clamp to 0", r.Credibility)
	}
}

func TestGenerate_DurationRange(t *testing.T) {
	tests := []struct {
		draw float64
		want int
	}{
		{0.0, 1},
		{0.5, 2},
		{0.99, 3},
	}
	for _, tt := range tests {
		s := New()
		src := &script{vals: []float64{tt.draw}}
		r := s.Generate("Player", "content", 0.5, "", src)
		if r.Duration != tt.want {
			t.Errorf("duration for draw %v = %d, want %d", tt.draw, r.Duration, tt.want)
		}
	}
}

func TestProcess_TargetedBullish(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.9}} // duration 3
	s.Generate("Player", "Record profits expected", 0.8, "AGROUA", src)

	impacts := s.Process(symbols)
	approx(t, impacts["AGROUA"], 0.01*0.8, "AGROUA impact")
	approx(t, impacts["KSE50"], 0, "KSE50 impact")
}

func TestProcess_TargetedBearish(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.9}}
	s.Generate("Player", "Shares will FALL sharply", 0.5, "ENERGO", src)

	impacts := s.Process(symbols)
	approx(t, impacts["ENERGO"], -0.01*0.5, "ENERGO impact")
}

func TestProcess_MarketWideUndamped(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.9}}
	s.Generate("Player", "everything is falling apart", 1, "", src)

	impacts := s.Process(symbols)
	for _, sym := range symbols {
		approx(t, impacts[sym], -0.006, sym+" impact")
	}
}

func TestProcess_DropsDiscredited(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.9}}
	s.Generate("Player", "barely believable", 0.05, "", src)

	impacts := s.Process(symbols)
	approx(t, impacts["KSE50"], 0, "impact from discredited rumor")
	if len(s.Active()) != 0 {
		t.Error("rumor at the credibility floor must be dropped")
	}
}

func TestProcess_DecayAndRemoval(t *testing.T) {
	s := New()
	src := &script{vals: []float64{0.0}} // duration 1
	s.Generate("Player", "growth ahead", 0.6, "", src)

	// Tick 1: duration 1 → 0, survives and contributes.
	impacts := s.Process(symbols)
	approx(t, impacts["KSE50"], 0.006*0.6, "first-tick impact")
	active := s.Active()
	if len(active) != 1 || active[0].Duration != 0 {
		t.Fatalf("expected one active rumor at duration 0, got %+v", active)
	}

	// Tick 2: duration below 0, dropped for good.
	impacts = s.Process(symbols)
	approx(t, impacts["KSE50"], 0, "second-tick impact")
	if len(s.Active()) != 0 {
		t.Error("expired rumor must be removed")
	}
}

func TestPolarity(t *testing.T) {
	tests := []struct {
		content string
		want    float64
	}{
		{"Shares will fall", -1},
		{"FALLING knife", -1},
		{"Strong buy signal", 1},
		{"Dividends raised", 1},
	}
	for _, tt := range tests {
		if got := polarity(tt.content); got != tt.want {
			t.Errorf("polarity(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
