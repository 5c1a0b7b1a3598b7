// Package api exposes the simulation engine over HTTP: session lifecycle,
// day advancement (manual and auto), trading, rumor creation, and the
// stateless rumor-submission boundary. The presentation layer only ever
// sees snapshots and issues commands through these entry points.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/config"
	"github.com/birzha/game-engine/internal/game"
	"github.com/birzha/game-engine/internal/metrics"
	"github.com/birzha/game-engine/internal/session"
	"github.com/birzha/game-engine/internal/trader"
)

// cadences lists the selectable auto-advance intervals.
var cadences = map[int]time.Duration{
	250: 250 * time.Millisecond,
	500: 500 * time.Millisecond,
	900: 900 * time.Millisecond,
}

// Service handles all HTTP traffic for the engine. It owns the session
// registry and the WebSocket hub.
type Service struct {
	cfg      config.Config
	logger   *slog.Logger
	Hub      *WSHub
	Registry *session.Registry
}

// NewService wires the hub and registry together. Auto-advanced ticks flow
// through onTick into metrics and the hub; manual advances go through the
// same path in the handler.
func NewService(cfg config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		cfg:    cfg,
		logger: logger,
		Hub:    NewWSHub(),
	}
	s.Registry = session.NewRegistry(s.onTick)
	return s
}

// Routes mounts every endpoint on the router.
func (s *Service) Routes(r chi.Router) {
	// Stateless rumor-submission boundary.
	r.Post("/api/rumors", s.HandleCreateRumor)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ws", s.Hub.HandleWS)

		r.Post("/sessions", s.CreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/history/{symbol}", s.GetHistory)
			r.Post("/advance", s.Advance)
			r.Post("/auto", s.SetAuto)
			r.Post("/buy", s.Buy)
			r.Post("/sell", s.Sell)
			r.Post("/rumors", s.CreateEngineRumor)
		})
	})
}

// onTick records metrics and broadcasts each auto-advanced day.
func (s *Service) onTick(sessionID string, report game.DayReport) {
	recordDay(report)
	s.Hub.BroadcastDay(sessionID, report)
}

func recordDay(report game.DayReport) {
	metrics.DaysSimulated.Inc()
	if report.Event != nil {
		metrics.EventsGenerated.WithLabelValues(string(report.Event.Type)).Inc()
	}
	if report.NewInvestor != nil {
		metrics.InvestorsAttracted.Inc()
	}
	if report.Penalized {
		metrics.Penalties.Inc()
	}
}

// --- Session lifecycle ---

// CreateSessionRequest optionally pins the session's random seed.
type CreateSessionRequest struct {
	Seed int64 `json:"seed"`
}

// SessionResponse pairs a session ID with its current snapshot.
type SessionResponse struct {
	SessionID string        `json:"session_id"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// CreateSession handles POST /api/v1/sessions.
func (s *Service) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess := s.Registry.Create(seed)
	metrics.ActiveSessions.Inc()
	s.logger.Info("session created", "id", sess.ID)

	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: sess.ID,
		Snapshot:  sess.Game.Snapshot(),
	})
}

// GetSession handles GET /api/v1/sessions/{sessionID}.
func (s *Service) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID,
		Snapshot:  sess.Game.Snapshot(),
	})
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}.
func (s *Service) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.Registry.Delete(id); err != nil {
		writeError(w, "session not found", http.StatusNotFound)
		return
	}
	metrics.ActiveSessions.Dec()
	s.logger.Info("session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /api/v1/sessions/{sessionID}/history/{symbol}.
func (s *Service) GetHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	symbol := chi.URLParam(r, "symbol")
	writeJSON(w, http.StatusOK, sess.Game.History(symbol))
}

// --- Day advancement ---

// Advance handles POST /api/v1/sessions/{sessionID}/advance: one manual
// tick.
func (s *Service) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	report := sess.Game.NextDay()
	s.onTick(sess.ID, report)

	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID,
		Snapshot:  report.Snapshot,
	})
}

// AutoRequest selects the auto-advance cadence. CadenceMS must be one of
// 250, 500 or 900 when enabling.
type AutoRequest struct {
	Enabled   bool `json:"enabled"`
	CadenceMS int  `json:"cadence_ms"`
}

// SetAuto handles POST /api/v1/sessions/{sessionID}/auto. Enabling with a
// new cadence replaces the old one without leaving a stray pending tick.
func (s *Service) SetAuto(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req AutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !req.Enabled {
		sess.Runner.Stop()
		writeJSON(w, http.StatusOK, map[string]bool{"running": false})
		return
	}

	interval, known := cadences[req.CadenceMS]
	if !known {
		writeError(w, "cadence_ms must be one of 250, 500, 900", http.StatusBadRequest)
		return
	}
	sess.Runner.Start(interval)
	writeJSON(w, http.StatusOK, map[string]any{"running": true, "cadence_ms": req.CadenceMS})
}

// --- Trading ---

// TradeRequest is the JSON body for buy and sell.
type TradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

// TradeResponse reports an executed trade.
type TradeResponse struct {
	Symbol    string           `json:"symbol"`
	Quantity  int64            `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	Proceeds  *decimal.Decimal `json:"proceeds,omitempty"`
	Capital   decimal.Decimal  `json:"capital"`
	Portfolio map[string]int64 `json:"portfolio"`
}

// Buy handles POST /api/v1/sessions/{sessionID}/buy.
func (s *Service) Buy(w http.ResponseWriter, r *http.Request) {
	s.trade(w, r, "buy")
}

// Sell handles POST /api/v1/sessions/{sessionID}/sell.
func (s *Service) Sell(w http.ResponseWriter, r *http.Request) {
	s.trade(w, r, "sell")
}

func (s *Service) trade(w http.ResponseWriter, r *http.Request, side string) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var price, amount decimal.Decimal
	var err error
	if side == "buy" {
		price, amount, err = sess.Game.Buy(req.Symbol, req.Quantity)
	} else {
		price, amount, err = sess.Game.Sell(req.Symbol, req.Quantity)
	}
	if err != nil {
		writeTradeError(w, err)
		return
	}

	metrics.TradesTotal.WithLabelValues(side).Inc()
	s.logger.Info("trade executed",
		"session", sess.ID,
		"side", side,
		"symbol", req.Symbol,
		"quantity", req.Quantity,
		"price", price.String(),
		"amount", amount.String(),
	)

	snap := sess.Game.Snapshot()
	resp := TradeResponse{
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Price:     price,
		Capital:   snap.Capital,
		Portfolio: snap.Portfolio,
	}
	if side == "buy" {
		resp.Cost = &amount
	} else {
		resp.Proceeds = &amount
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeTradeError maps engine errors onto HTTP statuses. Every engine
// failure is caller-correctable; nothing is retried here.
func writeTradeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trader.ErrInvalidQuantity):
		metrics.TradeRejections.WithLabelValues("invalid_quantity").Inc()
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, trader.ErrInsufficientFunds):
		metrics.TradeRejections.WithLabelValues("insufficient_funds").Inc()
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, trader.ErrInsufficientHoldings):
		metrics.TradeRejections.WithLabelValues("insufficient_holdings").Inc()
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, trader.ErrTradingBlocked):
		metrics.TradeRejections.WithLabelValues("trading_blocked").Inc()
		writeError(w, err.Error(), http.StatusLocked)
	default:
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

// --- Engine rumor creation ---

// EngineRumorRequest is the JSON body for the in-session rumor entry
// point. The client feeds it the server-adjusted values returned by
// POST /api/rumors.
type EngineRumorRequest struct {
	Content     string  `json:"content"`
	Credibility float64 `json:"credibility"`
	Target      string  `json:"target"`
}

// CreateEngineRumor handles POST /api/v1/sessions/{sessionID}/rumors.
func (s *Service) CreateEngineRumor(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req EngineRumorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len([]rune(req.Content)) < 3 {
		writeError(w, "content must be at least 3 characters", http.StatusBadRequest)
		return
	}

	rumor := sess.Game.CreateRumor(req.Content, req.Credibility, req.Target)
	metrics.RumorsCreated.Inc()
	s.logger.Info("rumor created",
		"session", sess.ID,
		"credibility", rumor.Credibility,
		"target", rumor.Target,
	)

	writeJSON(w, http.StatusOK, rumor)
}

// --- Helpers ---

func (s *Service) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.Registry.Get(id)
	if err != nil {
		writeError(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
