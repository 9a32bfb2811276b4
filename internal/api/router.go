// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("GET /sessions/{sessionID}/current", h.getCurrentItem)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/advance", h.advanceSession)

	// Learners & reporting
	mux.HandleFunc("GET /learners", h.listLearners)
	mux.HandleFunc("PUT /learners/{learnerID}/new-words", h.replaceNewWords)
	mux.HandleFunc("GET /report", h.progressReport)

	// Word bank
	mux.HandleFunc("GET /bank", h.getBank)
	mux.HandleFunc("PUT /bank/overrides/{wordID}", h.setCategoryOverride)
}
