// Package game wires one instance of every simulation subsystem into a
// session and advances it one day at a time in a fixed order. All entry
// points are serialized behind one mutex, so a day tick can never interleave
// with a trade or a rumor submission from another caller.
package game

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/events"
	"github.com/birzha/game-engine/internal/investors"
	"github.com/birzha/game-engine/internal/legal"
	"github.com/birzha/game-engine/internal/market"
	"github.com/birzha/game-engine/internal/model"
	"github.com/birzha/game-engine/internal/rng"
	"github.com/birzha/game-engine/internal/rumors"
	"github.com/birzha/game-engine/internal/trader"
)

// logCap bounds the in-session log; the oldest entries are trimmed.
const logCap = 250

// playerSource labels rumors submitted by the player, as opposed to
// system-generated ones.
const playerSource = "Player"

// Snapshot is a read-only copy of the session state handed to callers.
// The engine's internal containers are never exposed.
type Snapshot struct {
	Day                int                `json:"day"`
	Instruments        []model.Instrument `json:"instruments"`
	Capital            decimal.Decimal    `json:"capital"`
	Portfolio          map[string]int64   `json:"portfolio"`
	PortfolioValue     decimal.Decimal    `json:"portfolio_value"`
	NetWorth           decimal.Decimal    `json:"net_worth"`
	Reputation         float64            `json:"reputation"`
	JailTime           int                `json:"jail_time"`
	InvestigationLevel float64            `json:"investigation_level"`
	Strikes            int                `json:"strikes"`
	Investors          []model.Investor   `json:"investors"`
	Log                []string           `json:"log"`
}

// DayReport summarizes what one tick did, for logging, metrics and
// broadcasting. Snapshot is the state after the tick.
type DayReport struct {
	Day         int
	Event       *model.Event
	Delta       decimal.Decimal
	NewInvestor *model.Investor
	Penalized   bool
	Snapshot    Snapshot
}

// Game owns one full simulation session.
type Game struct {
	mu sync.Mutex

	day       int
	market    *market.Market
	events    *events.System
	rumors    *rumors.System
	legal     *legal.System
	trader    *trader.Trader
	investors *investors.Manager
	src       rng.Source
	log       []string
}

// New constructs a fresh session on the given random source.
func New(src rng.Source) *Game {
	g := &Game{
		day:       1,
		market:    market.New(),
		events:    events.New(),
		rumors:    rumors.New(),
		legal:     legal.New(),
		trader:    trader.New(),
		investors: investors.New(),
		src:       src,
	}
	g.prependLog("Simulation started")
	return g
}

// NextDay advances the session one simulated day. The order is fixed:
// event generation, event decay/effects, rumor decay/effects, price update,
// investor returns, investor attraction, legal investigation, jail
// countdown, day advance. Must not be invoked reentrantly; the mutex
// enforces that.
func (g *Game) NextDay() DayReport {
	g.mu.Lock()
	defer g.mu.Unlock()

	symbols := g.market.Symbols()
	report := DayReport{Day: g.day}

	if ev := g.events.Generate(symbols, g.src); ev != nil {
		report.Event = ev
		g.prependLog(fmt.Sprintf("Event: %s (%.1f%% x %dd)", ev.Description, ev.Impact*100, ev.Duration))
	}

	eventImpacts := g.events.ApplyEffects(symbols)
	rumorImpacts := g.rumors.Process(symbols)

	g.market.UpdatePrices(g.day, eventImpacts, rumorImpacts, g.src)

	delta := g.investors.CalculateReturns(g.trader, g.market)
	report.Delta = delta
	if !delta.IsZero() {
		sign := ""
		if delta.IsPositive() {
			sign = "+"
		}
		g.prependLog(fmt.Sprintf("Net worth change: %s%s₴", sign, delta.StringFixed(0)))
	}

	if inv := g.investors.Attract(g.trader, g.src); inv != nil {
		report.NewInvestor = inv
		g.prependLog(fmt.Sprintf("New investor: %s (+%s₴)", inv.Name, inv.Investment.StringFixed(0)))
	}

	if msg := g.legal.Investigate(g.trader, g.src); msg != "" {
		report.Penalized = true
		g.prependLog(msg)
	}

	g.trader.ServeJailDay()
	g.day++

	report.Snapshot = g.snapshotLocked()
	return report
}

// CreateRumor registers a player rumor: it joins the rumor system, raises
// the legal investigation level, and lands in the log.
func (g *Game) CreateRumor(content string, credibility float64, target string) model.Rumor {
	g.mu.Lock()
	defer g.mu.Unlock()

	r := g.rumors.Generate(playerSource, content, credibility, target, g.src)
	g.legal.NoteRumor(credibility)

	msg := "Rumor: " + content
	if target != "" {
		msg += " targeting " + target
	}
	g.prependLog(msg)
	return r
}

// Buy executes a player purchase at the current market price.
func (g *Game) Buy(symbol string, quantity int64) (price, cost decimal.Decimal, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.trader.Buy(symbol, quantity, g.market)
}

// Sell executes a player sale at the current market price.
func (g *Game) Sell(symbol string, quantity int64) (price, proceeds decimal.Decimal, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.trader.Sell(symbol, quantity, g.market)
}

// Snapshot returns a read-only copy of the current session state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// History returns a copy of one instrument's price history.
func (g *Game) History(symbol string) []model.PricePoint {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.market.History(symbol)
}

// ActiveEvents returns a copy of the active macro events.
func (g *Game) ActiveEvents() []model.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.events.Active()
}

// ActiveRumors returns a copy of the active rumors.
func (g *Game) ActiveRumors() []model.Rumor {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rumors.Active()
}

func (g *Game) snapshotLocked() Snapshot {
	portfolioValue := g.trader.PortfolioValue(g.market)
	logCopy := make([]string, len(g.log))
	copy(logCopy, g.log)

	return Snapshot{
		Day:                g.day,
		Instruments:        g.market.Instruments(),
		Capital:            g.trader.Capital(),
		Portfolio:          g.trader.Portfolio(),
		PortfolioValue:     portfolioValue,
		NetWorth:           g.trader.Capital().Add(portfolioValue),
		Reputation:         g.trader.Reputation(),
		JailTime:           g.trader.JailTime(),
		InvestigationLevel: g.legal.InvestigationLevel(),
		Strikes:            g.legal.Strikes(),
		Investors:          g.investors.Investors(),
		Log:                logCopy,
	}
}

// prependLog inserts a most-recent-first entry, trimming the tail at the
// cap.
func (g *Game) prependLog(msg string) {
	g.log = append([]string{msg}, g.log...)
	if len(g.log) > logCap {
		g.log = g.log[:logCap]
	}
}
