package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/gamehall/internal/repos/balances"
	"github.com/fastprodman/gamehall/internal/repos/games"
	"github.com/fastprodman/gamehall/internal/repos/ledger"
	"github.com/fastprodman/gamehall/internal/repos/profit"
	"github.com/fastprodman/gamehall/internal/repos/users"
	profitsvc "github.com/fastprodman/gamehall/internal/services/profit"
	"github.com/fastprodman/gamehall/internal/services/settlement"
	"github.com/fastprodman/gamehall/internal/services/wager"
	"github.com/fastprodman/gamehall/internal/sessions"
)

// HandlerProvider exposes the HTTP handlers over the wager and settlement
// services.
type HandlerProvider struct {
	wager     *wager.Service
	settle    *settlement.Service
	users     users.Users
	profits   profit.Profits
	refresher *profitsvc.Refresher
}

func NewHandler(w *wager.Service, s *settlement.Service, u users.Users,
	p profit.Profits, r *profitsvc.Refresher,
) *HandlerProvider {
	return &HandlerProvider{wager: w, settle: s, users: u, profits: p, refresher: r}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation
// 400, not-found 404, conflict 409, everything else a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wager.ErrInvalidBet),
		errors.Is(err, wager.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, games.ErrGameNotFound),
		errors.Is(err, balances.ErrAccountNotFound),
		errors.Is(err, balances.ErrBalanceNotFound),
		errors.Is(err, sessions.ErrNoSession):
		writeError(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, sessions.ErrSessionActive),
		errors.Is(err, wager.ErrInvalidSessionState),
		errors.Is(err, balances.ErrInsufficientFunds),
		errors.Is(err, games.ErrGameClosed):
		writeError(w, http.StatusConflict, rootMessage(err))
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// rootMessage trims the wrap chain down to the last segment, enough context
// for the caller to correct state without leaking internals.
func rootMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 && idx+2 < len(msg) {
		// keep at most the final two segments for conflict context
		if prev := strings.LastIndex(msg[:idx], ": "); prev >= 0 {
			return msg[prev+2:]
		}
	}

	return msg
}

// parseUserIDFromPath reads `{userId}` from chi routes.
func parseUserIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

// parseAmountCents converts a decimal string with up to 2 fractional digits
// into minor units.
func parseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}
	if s[0] == '+' {
		s = s[1:]
	}
	if s == "" || s[0] == '-' {
		return 0, fmt.Errorf("amount must be positive")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}

	intPart := parts[0]
	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) > 2 {
			return 0, fmt.Errorf("amount supports up to 2 decimals")
		}
		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}

	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount integer")
	}
	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount fractional")
	}
	if ip > (math.MaxInt64-fp)/100 {
		return 0, fmt.Errorf("amount out of range")
	}

	total := ip*100 + fp
	if total <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}

	return total, nil
}

// formatCents renders minor units as a signed 2-decimal string. Negative
// values show up on the admin profit report when payouts run ahead of stakes.
func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// decodeBody decodes a JSON request body with a 1MB cap and unknown fields
// rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// --- Balance / ledger handlers ---

// GetBalanceHandler handles GET /user/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	bal, err := h.settle.GetBalance(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":       userID,
		"available":    formatCents(bal.Available),
		"withdrawable": formatCents(bal.Withdrawable),
		"currency":     bal.Currency,
	})
}

// HistoryHandler handles GET /user/{userId}/history?limit=
func (h *HandlerProvider) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 200 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	entries, err := h.settle.History(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	type entryView struct {
		ID          string `json:"id"`
		GameID      uint64 `json:"gameId"`
		Type        string `json:"type"`
		Direction   string `json:"direction"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
		CreatedAt   string `json:"createdAt"`
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{
			ID:          e.ID.String(),
			GameID:      e.GameID,
			Type:        string(e.Type),
			Direction:   string(e.Direction),
			Amount:      formatCents(e.Amount),
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"userId": userID, "entries": views})
}

type transferRequest struct {
	Kind        string `json:"kind"`
	Direction   string `json:"direction"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	ApprovedBy  string `json:"approvedBy"`
}

// TransferHandler handles POST /user/{userId}/transfer
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req transferRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := parseTxKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	direction, err := parseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmountCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = "system"
	}

	// Notifications go to the user's registered address.
	recipient := ""
	if u, uerr := h.users.GetByID(r.Context(), userID); uerr == nil {
		recipient = u.Email
	}

	bt, err := h.settle.ProcessTransfer(r.Context(), settlement.Transfer{
		UserID:      userID,
		Kind:        kind,
		Direction:   direction,
		Amount:      amount,
		Description: req.Description,
		ApprovedBy:  approvedBy,
		Recipient:   recipient,
	})
	if err != nil && bt == nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if bt.Status == ledger.StatusFailed {
		// The failed entry is persisted as the audit trail.
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]any{
		"transactionId": bt.ID.String(),
		"status":        string(bt.Status),
		"amount":        formatCents(bt.Amount),
	})
}

func parseTxKind(s string) (ledger.TxKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return ledger.KindDeposit, nil
	case "withdrawal":
		return ledger.KindWithdrawal, nil
	case "payment":
		return ledger.KindPayment, nil
	case "refund":
		return ledger.KindRefund, nil
	case "adjustment":
		return ledger.KindAdjustment, nil
	case "transfer":
		return ledger.KindTransfer, nil
	default:
		return "", fmt.Errorf("invalid kind")
	}
}

func parseDirection(s string) (ledger.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit":
		return ledger.DirCredit, nil
	case "debit":
		return ledger.DirDebit, nil
	default:
		return "", fmt.Errorf("invalid direction")
	}
}

// --- Admin handlers ---

// ProfitHandler handles GET /admin/profit
func (h *HandlerProvider) ProfitHandler(w http.ResponseWriter, r *http.Request) {
	agg, err := h.profits.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalDeposits":            formatCents(agg.TotalDeposits),
		"totalWithdrawals":         formatCents(agg.TotalWithdrawals),
		"totalWithdrawableBalance": formatCents(agg.TotalWithdrawableBalance),
		"totalProfit":              formatCents(agg.TotalProfit),
		"expectingProfit":          formatCents(agg.ExpectingProfit),
		"refreshedAt":              agg.RefreshedAt,
	})
}

// RefreshProfitHandler handles POST /admin/profit/refresh
func (h *HandlerProvider) RefreshProfitHandler(w http.ResponseWriter, r *http.Request) {
	err := h.refresher.Refresh(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
