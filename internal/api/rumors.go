package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birzha/game-engine/internal/metrics"
)

// sensitiveTerms is the denylist of substrings (matched case-insensitively)
// that mark a rumor submission for attention. Matching flags the response;
// it never rejects it.
var sensitiveTerms = []string{"insid", "manipulat", "fraud", "scam", "launder"}

// flaggedNote is the advisory attached to flagged submissions.
const flaggedNote = "May contain sensitive information — stay within the law."

var (
	penaltyWeight = decimal.RequireFromString("0.15")
	hundred       = decimal.NewFromInt(100)
	decOne        = decimal.NewFromInt(1)
)

// CreateRumorRequest is the JSON body for POST /api/rumors.
type CreateRumorRequest struct {
	Content     string   `json:"content"`
	Credibility *float64 `json:"credibility"`
	Target      *string  `json:"target"`
}

// CreateRumorResponse is the adjusted submission handed back to the client,
// which then feeds it into the engine's rumor-creation entry point.
type CreateRumorResponse struct {
	ID          string          `json:"id"`
	Content     string          `json:"content"`
	Credibility decimal.Decimal `json:"credibility"`
	Target      *string         `json:"target"`
	Flagged     bool            `json:"flagged"`
	Notes       string          `json:"notes,omitempty"`
}

// HandleCreateRumor implements the rumor submission boundary. It validates
// the payload, discounts the credibility of very short content, and flags
// denylisted terms. It is stateless: no session is touched.
func (s *Service) HandleCreateRumor(w http.ResponseWriter, r *http.Request) {
	var req CreateRumorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	fieldErrors := make(map[string][]string)
	contentLen := len([]rune(req.Content))
	if contentLen < 3 {
		fieldErrors["content"] = append(fieldErrors["content"], "must be at least 3 characters")
	}
	if contentLen > 200 {
		fieldErrors["content"] = append(fieldErrors["content"], "must be at most 200 characters")
	}
	if req.Credibility == nil {
		fieldErrors["credibility"] = append(fieldErrors["credibility"], "is required")
	} else if *req.Credibility < 0 || *req.Credibility > 1 {
		fieldErrors["credibility"] = append(fieldErrors["credibility"], "must be between 0 and 1")
	}
	if req.Target != nil {
		targetLen := len([]rune(*req.Target))
		if targetLen < 1 || targetLen > 20 {
			fieldErrors["target"] = append(fieldErrors["target"], "must be between 1 and 20 characters")
		}
	}
	if len(fieldErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"field_errors": fieldErrors},
		})
		return
	}

	content := strings.TrimSpace(req.Content)
	lower := strings.ToLower(content)
	flagged := false
	for _, term := range sensitiveTerms {
		if strings.Contains(lower, term) {
			flagged = true
			break
		}
	}

	// Very short rumors are discounted: penalty = max(0, 1-len/100) * 0.15,
	// subtracted from the submitted credibility and clamped to [0,1].
	adjusted := adjustCredibility(*req.Credibility, len([]rune(content)))

	resp := CreateRumorResponse{
		ID:          rumorID(),
		Content:     content,
		Credibility: adjusted,
		Target:      req.Target,
		Flagged:     flagged,
	}
	if flagged {
		resp.Notes = flaggedNote
		metrics.RumorsFlagged.Inc()
	}

	s.logger.Info("rumor submission adjusted",
		"id", resp.ID,
		"credibility", adjusted.String(),
		"flagged", flagged,
	)

	writeJSON(w, http.StatusOK, resp)
}

// adjustCredibility applies the short-content penalty in decimal so the
// result is exact.
func adjustCredibility(credibility float64, contentLen int) decimal.Decimal {
	penalty := decOne.Sub(decimal.NewFromInt(int64(contentLen)).Div(hundred)).Mul(penaltyWeight)
	if penalty.IsNegative() {
		penalty = decimal.Zero
	}
	adjusted := decimal.NewFromFloat(credibility).Sub(penalty)
	if adjusted.IsNegative() {
		return decimal.Zero
	}
	if adjusted.GreaterThan(decOne) {
		return decOne
	}
	return adjusted
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// rumorID builds a time+random composite identifier.
func rumorID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
