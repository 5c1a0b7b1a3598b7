// Package investors manages the external backers attracted by a reputable
// trader. Attraction is probabilistic and gated on reputation; investor
// trust then tracks the day-over-day change of the trader's net worth, not
// its absolute level.
package investors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/market"
	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
	"github.com/birzha/game-engine/internal/trader"
)

const (
	minReputation  = 65
	attractChance  = 0.25
	maxTrustShift  = 3
	trustDeltaUnit = 2000 // net-worth delta per point of trust shift
)

// Manager owns the investor roster for one session. Investors are created
// on a probabilistic trigger and never removed; only their trust moves.
type Manager struct {
	investors []model.Investor
	lastTotal *decimal.Decimal
}

// New returns a manager with no investors.
func New() *Manager {
	return &Manager{}
}

// Investors returns a copy of the roster.
func (m *Manager) Investors() []model.Investor {
	out := make([]model.Investor, len(m.investors))
	copy(out, m.investors)
	return out
}

// Attract rolls for a new investor. Only traders with reputation above 65
// are eligible, and even then only a quarter of days produce one. The new
// investor's capital is credited to the trader immediately.
func (m *Manager) Attract(t *trader.Trader, src rng.Source) *model.Investor {
	if t.Reputation() <= minReputation || src.Float64() >= attractChance {
		return nil
	}

	inv := model.Investor{
		Name:          fmt.Sprintf("Investor #%d", len(m.investors)+1),
		Investment:    decimal.NewFromInt(int64(2000 + rng.IntBelow(src, 6000))),
		TrustLevel:    float64(60 + rng.IntBelow(src, 30)),
		RiskTolerance: float64(30 + rng.IntBelow(src, 60)),
	}
	m.investors = append(m.investors, inv)
	t.AddCapital(inv.Investment)
	return &inv
}

// CalculateReturns computes the day-over-day net-worth delta and shifts
// every investor's trust by up to 3 points in the delta's direction. The
// first call only records the baseline and reports a zero delta.
func (m *Manager) CalculateReturns(t *trader.Trader, mk *market.Market) decimal.Decimal {
	total := t.Capital().Add(t.PortfolioValue(mk))
	if m.lastTotal == nil {
		m.lastTotal = &total
		return decimal.Zero
	}

	delta := total.Sub(*m.lastTotal)
	m.lastTotal = &total

	if delta.IsZero() {
		return delta
	}

	deltaF, _ := delta.Float64()
	shift := deltaF / trustDeltaUnit
	if shift > maxTrustShift {
		shift = maxTrustShift
	} else if shift < -maxTrustShift {
		shift = -maxTrustShift
	}
	for i := range m.investors {
		m.investors[i].TrustLevel = model.Clamp(m.investors[i].TrustLevel+shift, 0, 100)
	}
	return delta
}
