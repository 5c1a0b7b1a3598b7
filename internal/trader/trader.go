// Package trader holds the player's transactional state: capital,
// portfolio, reputation and jail status. Buy and sell enforce solvency,
// holdings and jail gating, and every capital mutation is rounded to two
// decimal places immediately to keep money arithmetic drift-free.
package trader

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/market"
	"github.com/birzha/game-engine/internal/model"
)

var (
	// ErrTradingBlocked is returned while the trader is jailed.
	ErrTradingBlocked = errors.New("trader: trading is blocked while jailed")

	// ErrInvalidQuantity is returned for non-positive trade amounts.
	ErrInvalidQuantity = errors.New("trader: quantity must be positive")

	// ErrInsufficientFunds is returned when a buy costs more than the
	// available capital.
	ErrInsufficientFunds = errors.New("trader: insufficient funds")

	// ErrInsufficientHoldings is returned when a sell exceeds the held
	// quantity.
	ErrInsufficientHoldings = errors.New("trader: insufficient holdings")
)

var (
	startingCapital = decimal.NewFromInt(10000)
	onePlusFee      = decimal.RequireFromString("1.001")
	oneMinusFee     = decimal.RequireFromString("0.999")
)

const buyReputationGain = 0.2

// Trader is the per-session player state. One per game session.
type Trader struct {
	capital    decimal.Decimal
	portfolio  map[string]int64
	reputation float64 // 0..100
	riskLevel  float64 // present as state, unused by core logic
	jailTime   int     // days remaining; trading blocked while > 0
}

// New returns a trader with the starting capital and neutral reputation.
func New() *Trader {
	return &Trader{
		capital:    startingCapital,
		portfolio:  make(map[string]int64),
		reputation: 50,
		riskLevel:  50,
	}
}

// Capital reports the available cash.
func (t *Trader) Capital() decimal.Decimal { return t.capital }

// Reputation reports the 0..100 reputation score.
func (t *Trader) Reputation() float64 { return t.reputation }

// RiskLevel reports the advisory risk appetite.
func (t *Trader) RiskLevel() float64 { return t.riskLevel }

// JailTime reports the remaining jail days.
func (t *Trader) JailTime() int { return t.jailTime }

// Portfolio returns a copy of the held quantities. Symbols with zero
// quantity are never present.
func (t *Trader) Portfolio() map[string]int64 {
	out := make(map[string]int64, len(t.portfolio))
	for sym, qty := range t.portfolio {
		out[sym] = qty
	}
	return out
}

// Buy purchases quantity units at the current market price plus a 0.1%
// fee. Fails without mutating state if the trader is jailed, the quantity
// is non-positive, or the cost exceeds capital. A successful buy nudges
// reputation up by 0.2.
func (t *Trader) Buy(symbol string, quantity int64, m *market.Market) (price, cost decimal.Decimal, err error) {
	if t.jailTime > 0 {
		return decimal.Zero, decimal.Zero, ErrTradingBlocked
	}
	if quantity <= 0 {
		return decimal.Zero, decimal.Zero, ErrInvalidQuantity
	}

	price = m.CurrentPrice(symbol)
	cost = price.Mul(decimal.NewFromInt(quantity)).Mul(onePlusFee)
	if cost.GreaterThan(t.capital) {
		return decimal.Zero, decimal.Zero, ErrInsufficientFunds
	}

	t.capital = t.capital.Sub(cost).Round(2)
	t.portfolio[symbol] += quantity
	t.reputation = model.Clamp(t.reputation+buyReputationGain, 0, 100)
	return price, cost, nil
}

// Sell disposes quantity units at the current market price minus a 0.1%
// fee. Fails without mutating state if the trader is jailed, the quantity
// is non-positive, or the holding is too small. A holding reduced to zero
// is removed from the portfolio entirely.
func (t *Trader) Sell(symbol string, quantity int64, m *market.Market) (price, proceeds decimal.Decimal, err error) {
	if t.jailTime > 0 {
		return decimal.Zero, decimal.Zero, ErrTradingBlocked
	}
	if quantity <= 0 {
		return decimal.Zero, decimal.Zero, ErrInvalidQuantity
	}
	if t.portfolio[symbol] < quantity {
		return decimal.Zero, decimal.Zero, ErrInsufficientHoldings
	}

	price = m.CurrentPrice(symbol)
	proceeds = price.Mul(decimal.NewFromInt(quantity)).Mul(oneMinusFee)
	t.capital = t.capital.Add(proceeds).Round(2)

	left := t.portfolio[symbol] - quantity
	if left <= 0 {
		delete(t.portfolio, symbol)
	} else {
		t.portfolio[symbol] = left
	}
	return price, proceeds, nil
}

// PortfolioValue marks all holdings to the current market prices, rounded
// to two decimals. Unknown symbols price as zero.
func (t *Trader) PortfolioValue(m *market.Market) decimal.Decimal {
	sum := decimal.Zero
	for sym, qty := range t.portfolio {
		sum = sum.Add(m.CurrentPrice(sym).Mul(decimal.NewFromInt(qty)))
	}
	return sum.Round(2)
}

// AddCapital credits an external cash injection.
func (t *Trader) AddCapital(amount decimal.Decimal) {
	t.capital = t.capital.Add(amount).Round(2)
}

// Jail blocks trading for the given number of days.
func (t *Trader) Jail(days int) {
	t.jailTime = days
}

// ServeJailDay counts one jail day off, if any remain.
func (t *Trader) ServeJailDay() {
	if t.jailTime > 0 {
		t.jailTime--
	}
}

// PenalizeReputation cuts reputation by the given amount, floored at 0.
func (t *Trader) PenalizeReputation(amount float64) {
	t.reputation = model.Clamp(t.reputation-amount, 0, 100)
}
