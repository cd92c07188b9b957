package api

import (
	"net/http"
)

type betRequest struct {
	BetAmount string `json:"betAmount"`
}

// parseBet reads the opening-action body and returns (userID, betCents).
func (h *HandlerProvider) parseBet(w http.ResponseWriter, r *http.Request) (uint64, int64, bool) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return 0, 0, false
	}

	var req betRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	bet, err := parseAmountCents(req.BetAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}

	return userID, bet, true
}

// --- Blackjack ---

func (h *HandlerProvider) BlackjackDealHandler(w http.ResponseWriter, r *http.Request) {
	userID, bet, ok := h.parseBet(w, r)
	if !ok {
		return
	}

	view, err := h.wager.BlackjackDeal(r.Context(), userID, bet)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *HandlerProvider) BlackjackHitHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	view, err := h.wager.BlackjackHit(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *HandlerProvider) BlackjackStandHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	view, err := h.wager.BlackjackStand(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// --- Poker ---

func (h *HandlerProvider) PokerDealHandler(w http.ResponseWriter, r *http.Request) {
	userID, bet, ok := h.parseBet(w, r)
	if !ok {
		return
	}

	view, err := h.wager.PokerDeal(r.Context(), userID, bet)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type pokerDrawRequest struct {
	HoldIndices []int `json:"holdIndices"`
}

func (h *HandlerProvider) PokerDrawHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req pokerDrawRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.wager.PokerDraw(r.Context(), userID, req.HoldIndices)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// --- Dice ---

type diceRequest struct {
	BetAmount string `json:"betAmount"`
	BetType   string `json:"betType"`
	NumDice   int    `json:"numDice"`
}

func (h *HandlerProvider) DiceRollHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req diceRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet, err := parseAmountCents(req.BetAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.wager.DiceRoll(r.Context(), userID, bet, req.BetType, req.NumDice)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// --- Slot ---

func (h *HandlerProvider) SlotSpinHandler(w http.ResponseWriter, r *http.Request) {
	userID, bet, ok := h.parseBet(w, r)
	if !ok {
		return
	}

	view, err := h.wager.SlotSpin(r.Context(), userID, bet)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// --- Apple (level climb) ---

func (h *HandlerProvider) AppleStartHandler(w http.ResponseWriter, r *http.Request) {
	userID, bet, ok := h.parseBet(w, r)
	if !ok {
		return
	}

	view, err := h.wager.AppleStart(r.Context(), userID, bet)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

type applePickRequest struct {
	Level      int `json:"level"`
	AppleIndex int `json:"appleIndex"`
}

func (h *HandlerProvider) ApplePickHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req applePickRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.wager.ApplePick(r.Context(), userID, req.Level, req.AppleIndex)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *HandlerProvider) AppleCashoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	view, err := h.wager.AppleCashout(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
