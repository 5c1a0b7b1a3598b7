// Package rumors generates and decays the player- and system-submitted
// rumors that bias prices. Rumor sentiment is classified by a deliberately
// naive substring check kept behind a single function so it can be swapped
// without touching the decay or aggregation logic.
package rumors

import (
	"strings"

	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
)

const (
	// minCredibility is the survival floor; rumors at or below it are
	// dropped during processing.
	minCredibility = 0.05

	targetedWeight = 0.01

	// marketWideWeight applies to every symbol for untargeted rumors.
	// Undamped relative to events: rumors are intentionally the cheaper
	// way to move the whole market.
	marketWideWeight = 0.006

	maxExtraDuration = 3
)

// negativeStem drives the polarity check. A single morphological stem with
// no negation handling; an intentional simplification, not a bug.
const negativeStem = "fall"

// System owns the active rumors for one session.
type System struct {
	active []model.Rumor
}

// New returns an empty rumor system.
func New() *System {
	return &System{}
}

// Active returns a copy of the currently active rumors.
func (s *System) Active() []model.Rumor {
	out := make([]model.Rumor, len(s.active))
	copy(out, s.active)
	return out
}

// Generate creates a rumor with credibility clamped to [0,1] and a random
// duration of 1 to 3 days, adds it to the active set and returns it.
func (s *System) Generate(source, content string, credibility float64, target string, src rng.Source) model.Rumor {
	r := model.Rumor{
		Source:      source,
		Content:     content,
		Credibility: model.Clamp(credibility, 0, 1),
		Duration:    1 + rng.IntBelow(src, maxExtraDuration),
		Target:      target,
	}
	s.active = append(s.active, r)
	return r
}

// Process decays every rumor by one day, drops the expired or discredited
// ones, and returns the signed fractional impact per symbol. Sentiment
// polarity decides the sign; credibility scales the magnitude.
func (s *System) Process(symbols []string) map[string]float64 {
	impacts := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		impacts[sym] = 0
	}

	survivors := s.active[:0]
	for _, r := range s.active {
		r.Duration--
		if r.Duration >= 0 && r.Credibility > minCredibility {
			survivors = append(survivors, r)
		}
	}
	s.active = survivors

	for _, r := range s.active {
		sign := polarity(r.Content)
		if r.Target != "" {
			impacts[r.Target] += sign * targetedWeight * r.Credibility
			continue
		}
		for _, sym := range symbols {
			impacts[sym] += sign * marketWideWeight * r.Credibility
		}
	}
	return impacts
}

// polarity classifies rumor sentiment: -1 bearish, +1 bullish. Bearish
// when the lowercased content contains the negative stem, bullish
// otherwise.
func polarity(content string) float64 {
	if strings.Contains(strings.ToLower(content), negativeStem) {
		return -1
	}
	return 1
}
