// Package market holds the tradable instruments and their price history,
// and applies the daily price-formation step: independent per-instrument
// noise plus the shared event/rumor shocks on top of a small constant drift.
package market

import (
	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
)

const (
	// DailyDrift is the constant upward bias applied to every instrument.
	DailyDrift = 0.0005

	// HistoryCap bounds each instrument's price history; the oldest points
	// are evicted first.
	HistoryCap = 365
)

var one = decimal.NewFromInt(1)

// Market owns the instrument set and per-symbol history. Instruments are
// created at construction and updated in declaration order every day.
type Market struct {
	instruments []model.Instrument
	history     map[string][]model.PricePoint
}

// New seeds the default instrument set and a day-0 history point for each.
func New() *Market {
	seed := []model.Instrument{
		newInstrument("KSE50", 100, 2.2),
		newInstrument("UKRBANK", 95, 1.8),
		newInstrument("AGROUA", 90, 2.5),
		newInstrument("ENERGO", 88, 2.0),
	}
	m := &Market{
		instruments: seed,
		history:     make(map[string][]model.PricePoint, len(seed)),
	}
	for _, in := range seed {
		m.history[in.Symbol] = []model.PricePoint{{Day: 0, Price: in.BasePrice}}
	}
	return m
}

func newInstrument(symbol string, basePrice int64, volatility float64) model.Instrument {
	base := decimal.NewFromInt(basePrice)
	return model.Instrument{
		Symbol:       symbol,
		BasePrice:    base,
		Volatility:   volatility,
		CurrentPrice: base,
	}
}

// CurrentPrice returns the instrument's current price, or 0 for an unknown
// symbol (defensive default, not an error).
func (m *Market) CurrentPrice(symbol string) decimal.Decimal {
	for _, in := range m.instruments {
		if in.Symbol == symbol {
			return in.CurrentPrice
		}
	}
	return decimal.Zero
}

// Symbols returns the instrument symbols in declaration order.
func (m *Market) Symbols() []string {
	out := make([]string, len(m.instruments))
	for i, in := range m.instruments {
		out[i] = in.Symbol
	}
	return out
}

// Instruments returns a copy of the instrument set.
func (m *Market) Instruments() []model.Instrument {
	out := make([]model.Instrument, len(m.instruments))
	copy(out, m.instruments)
	return out
}

// History returns a copy of the symbol's price history, oldest first.
func (m *Market) History(symbol string) []model.PricePoint {
	pts := m.history[symbol]
	out := make([]model.PricePoint, len(pts))
	copy(out, pts)
	return out
}

// UpdatePrices advances every instrument one day, in declaration order.
// The daily change is drift + normal shock scaled by volatility + the
// summed event and rumor impacts for the symbol. The resulting price is
// rounded to 2 decimals and floored at 1, then appended to history with
// FIFO trimming. Mutation is irreversible; there is no rollback.
func (m *Market) UpdatePrices(day int, eventImpacts, rumorImpacts map[string]float64, src rng.Source) {
	for i := range m.instruments {
		in := &m.instruments[i]

		shock := rng.Normal(src) * in.Volatility / 100
		change := DailyDrift + shock + eventImpacts[in.Symbol] + rumorImpacts[in.Symbol]

		next := in.CurrentPrice.Mul(decimal.NewFromFloat(1 + change)).Round(2)
		if next.LessThan(one) {
			next = one
		}
		in.CurrentPrice = next

		pts := append(m.history[in.Symbol], model.PricePoint{Day: day, Price: next})
		if len(pts) > HistoryCap {
			pts = pts[len(pts)-HistoryCap:]
		}
		m.history[in.Symbol] = pts
	}
}
