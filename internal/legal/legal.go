// Package legal tracks the investigation pressure created by player rumors
// and periodically penalizes the trader. The state is continuous (a 0..100
// investigation level plus a strike counter) but the daily check branches:
// either a fraud finding with sanctions, or a slow natural decay.
package legal

import (
	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
	"github.com/birzha/game-engine/internal/trader"
)

const (
	rumorPressure = 8    // investigation points per unit of credibility
	fraudScale    = 0.15 // caps the daily fraud probability
	jailChance    = 0.4
	levelDrop     = 20 // relief after a concluded investigation
	naturalDecay  = 2  // daily decay when nothing is found

	// reputationSafeZone: above this reputation the fraud risk is zero.
	reputationSafeZone = 60
)

// PenaltyMessage is the log entry issued when an investigation concludes
// with sanctions.
const PenaltyMessage = "Investigation concluded: sanctions applied, reputation reduced."

// System is the per-session legal state. It persists across ticks.
type System struct {
	investigationLevel float64 // 0..100
	strikes            int
}

// New returns a legal system with no open investigations.
func New() *System {
	return &System{}
}

// InvestigationLevel reports the current 0..100 pressure level.
func (s *System) InvestigationLevel() float64 {
	return s.investigationLevel
}

// Strikes reports how many fraud findings have been recorded.
func (s *System) Strikes() int {
	return s.strikes
}

// NoteRumor raises the investigation level in proportion to the credibility
// of a player-submitted rumor.
func (s *System) NoteRumor(credibility float64) {
	s.investigationLevel = model.Clamp(s.investigationLevel+credibility*rumorPressure, 0, 100)
}

// Investigate runs the daily fraud check against the trader. The risk grows
// with investigation pressure and shrinks with reputation; above the safe
// zone it is zero. On a fraud finding the trader is sanctioned (strike,
// possible jail of 2..6 days, reputation cut of 10..19) and the returned
// message is non-empty. Otherwise the level decays and "" is returned.
func (s *System) Investigate(t *trader.Trader, src rng.Source) string {
	safeGap := reputationSafeZone - t.Reputation()
	if safeGap < 0 {
		safeGap = 0
	}
	risk := (s.investigationLevel / 100) * (safeGap / reputationSafeZone) * fraudScale

	if src.Float64() < risk {
		s.strikes++
		if src.Float64() < jailChance {
			t.Jail(2 + rng.IntBelow(src, 5))
		}
		t.PenalizeReputation(float64(10 + rng.IntBelow(src, 10)))
		s.investigationLevel = model.Clamp(s.investigationLevel-levelDrop, 0, 100)
		return PenaltyMessage
	}

	s.investigationLevel = model.Clamp(s.investigationLevel-naturalDecay, 0, 100)
	return ""
}
