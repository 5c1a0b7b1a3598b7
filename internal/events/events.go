// Package events generates and decays the randomized macro events that bias
// prices. Events carry a signed daily impact weighted by credibility;
// untargeted events hit every symbol at a dampened 0.6 factor.
package events

import (
	"fmt"

	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
)

const (
	generateChance = 0.35
	targetedChance = 0.4
	minImpact      = 0.003
	impactSpan     = 0.027
	maxDuration    = 5

	// marketWideDamping scales untargeted impacts, which land on every
	// symbol at once.
	marketWideDamping = 0.6
)

// System owns the active macro events for one session.
type System struct {
	active []model.Event
}

// New returns an empty event system.
func New() *System {
	return &System{}
}

// Active returns a copy of the currently active events.
func (s *System) Active() []model.Event {
	out := make([]model.Event, len(s.active))
	copy(out, s.active)
	return out
}

// Generate rolls for a new macro event. Most days (65%) produce nothing.
// Otherwise the event's category, sign, magnitude, duration, credibility
// and optional target are drawn uniformly, the event joins the active set,
// and it is returned for logging.
func (s *System) Generate(symbols []string, src rng.Source) *model.Event {
	if src.Float64() > generateChance {
		return nil
	}

	typ := model.EventTypes[rng.IntBelow(src, len(model.EventTypes))]
	sign := 1.0
	if src.Float64() < 0.5 {
		sign = -1.0
	}
	impact := sign * (minImpact + src.Float64()*impactSpan)
	duration := 1 + rng.IntBelow(src, maxDuration)
	credibility := 0.5 + src.Float64()*0.5

	var target, description string
	if src.Float64() < targetedChance {
		target = symbols[rng.IntBelow(src, len(symbols))]
		description = fmt.Sprintf("%s event hits %s", typ, target)
	} else {
		description = fmt.Sprintf("%s event moves the whole market", typ)
	}

	ev := model.Event{
		Type:        typ,
		Description: description,
		Impact:      impact,
		Duration:    duration,
		Credibility: credibility,
		Target:      target,
	}
	s.active = append(s.active, ev)
	return &ev
}

// ApplyEffects decays every active event by one day, drops the expired
// ones, and returns the summed fractional impact per symbol. The decay
// runs every tick, so an event generated earlier in the same tick is
// decayed immediately too.
func (s *System) ApplyEffects(symbols []string) map[string]float64 {
	impacts := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		impacts[sym] = 0
	}

	survivors := s.active[:0]
	for _, ev := range s.active {
		ev.Duration--
		if ev.Duration >= 0 {
			survivors = append(survivors, ev)
		}
	}
	s.active = survivors

	for _, ev := range s.active {
		if ev.Target != "" {
			impacts[ev.Target] += ev.Impact * ev.Credibility
			continue
		}
		for _, sym := range symbols {
			impacts[sym] += ev.Impact * ev.Credibility * marketWideDamping
		}
	}
	return impacts
}
