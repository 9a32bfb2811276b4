package api

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/vocadrill/backend/internal/service"
)

type LearnerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LearnerReportResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	WrongCount int    `json:"wrong_count"`
	SeenToday  int    `json:"seen_today"`
	Attempted  int    `json:"attempted"`
	Correct    int    `json:"correct"`
	Accuracy   int    `json:"accuracy_pct"`
}

type ReportResponse struct {
	GeneratedAt time.Time               `json:"generated_at"`
	BankSize    int                     `json:"bank_size"`
	WindowDays  int                     `json:"window_days"`
	Learners    []LearnerReportResponse `json:"learners"`
}

type BankResponse struct {
	ValidItems     int      `json:"valid_items"`
	DroppedRecords int      `json:"dropped_records"`
	Categories     []string `json:"categories"`
}

type ReplaceNewWordsRequest struct {
	WordIDs []string `json:"word_ids"`
}

type SetOverrideRequest struct {
	Category string `json:"category"`
}

// GET /learners
func (h *Handler) listLearners(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, lo.Map(h.sessions.Learners(), func(l service.Learner, _ int) LearnerResponse {
		return LearnerResponse{ID: l.ID, Name: l.Name}
	}))
}

// GET /report
func (h *Handler) progressReport(w http.ResponseWriter, r *http.Request) {
	rep := h.sessions.ProgressReport()

	respondJSON(w, http.StatusOK, ReportResponse{
		GeneratedAt: rep.GeneratedAt,
		BankSize:    rep.BankSize,
		WindowDays:  rep.WindowDays,
		Learners: lo.Map(rep.Learners, func(l service.LearnerReport, _ int) LearnerReportResponse {
			return LearnerReportResponse{
				ID:         l.LearnerID,
				Name:       l.Name,
				WrongCount: l.WrongCount,
				SeenToday:  l.SeenToday,
				Attempted:  l.Attempted,
				Correct:    l.Correct,
				Accuracy:   l.Accuracy,
			}
		}),
	})
}

// GET /bank
func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	valid, dropped, cats := h.sessions.Bank()
	respondJSON(w, http.StatusOK, BankResponse{
		ValidItems:     valid,
		DroppedRecords: dropped,
		Categories:     cats,
	})
}

// PUT /learners/{learnerID}/new-words
func (h *Handler) replaceNewWords(w http.ResponseWriter, r *http.Request) {
	var req ReplaceNewWordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.sessions.ReplaceNewWords(r.PathValue("learnerID"), req.WordIDs); err != nil {
		h.logger.Error("failed to replace new words", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /bank/overrides/{wordID}
func (h *Handler) setCategoryOverride(w http.ResponseWriter, r *http.Request) {
	var req SetOverrideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.sessions.SetCategoryOverride(r.PathValue("wordID"), req.Category); err != nil {
		h.logger.Error("failed to set category override", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
