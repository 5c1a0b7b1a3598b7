// Package model defines the core domain types shared across the simulation
// engine. All monetary values and prices use shopspring/decimal, never
// float64 for money. Dimensionless weights (credibility, reputation, trust)
// stay float64.
package model

import (
	"github.com/shopspring/decimal"
)

// Instrument is a tradable synthetic security. CurrentPrice is mutated once
// per simulated day by the market and never drops below 1.
type Instrument struct {
	Symbol       string          `json:"symbol"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Volatility   float64         `json:"volatility"` // percent daily std dev
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// PricePoint is one entry of an instrument's append-only price history.
type PricePoint struct {
	Day   int             `json:"day"`
	Price decimal.Decimal `json:"price"`
}

// EventType categorizes macro events.
type EventType string

const (
	EventEconomic      EventType = "economic"
	EventPolitical     EventType = "political"
	EventTechnological EventType = "technological"
	EventSector        EventType = "sector"
)

// EventTypes lists all categories in draw order.
var EventTypes = []EventType{
	EventEconomic,
	EventPolitical,
	EventTechnological,
	EventSector,
}

// Event is a randomly generated macro shock. Impact is a signed daily
// fraction; Duration counts remaining days and is decremented every tick
// until the event is dropped. An empty Target means market-wide.
type Event struct {
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Impact      float64   `json:"impact"`
	Duration    int       `json:"duration"`
	Credibility float64   `json:"credibility"` // 0.5..1 at creation
	Target      string    `json:"target,omitempty"`
}

// Rumor is a short-lived narrative biasing prices. Credibility is clamped
// to [0,1] at creation; an empty Target means market-wide.
type Rumor struct {
	Source      string  `json:"source"`
	Content     string  `json:"content"`
	Credibility float64 `json:"credibility"`
	Duration    int     `json:"duration"`
	Target      string  `json:"target,omitempty"`
}

// Investor is an external backer attracted by reputation. Only TrustLevel
// is mutated after creation; investors are never removed.
type Investor struct {
	Name          string          `json:"name"`
	Investment    decimal.Decimal `json:"investment"`
	TrustLevel    float64         `json:"trust_level"`    // 0..100
	RiskTolerance float64         `json:"risk_tolerance"` // 0..100, advisory
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
