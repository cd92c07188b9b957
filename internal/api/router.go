package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers all API endpoints on a chi router.
func NewRouter(h *HandlerProvider) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Get("/history", h.HistoryHandler)
		r.Post("/transfer", h.TransferHandler)

		r.Route("/games", func(r chi.Router) {
			r.Post("/blackjack/deal", h.BlackjackDealHandler)
			r.Post("/blackjack/hit", h.BlackjackHitHandler)
			r.Post("/blackjack/stand", h.BlackjackStandHandler)

			r.Post("/poker/deal", h.PokerDealHandler)
			r.Post("/poker/draw", h.PokerDrawHandler)

			r.Post("/dice/roll", h.DiceRollHandler)
			r.Post("/slot/spin", h.SlotSpinHandler)

			r.Post("/apple/start", h.AppleStartHandler)
			r.Post("/apple/pick", h.ApplePickHandler)
			r.Post("/apple/cashout", h.AppleCashoutHandler)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/profit", h.ProfitHandler)
		r.Post("/profit/refresh", h.RefreshProfitHandler)
	})

	return r
}
