package api

import (
	"net/http"

	"github.com/vocadrill/backend/internal/domain/drill"
	"github.com/vocadrill/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	LearnerID  string `json:"learner_id"`
	Scope      string `json:"scope"`
	Category   string `json:"category,omitempty"`
	Count      int    `json:"count"`
	AvoidDays  int    `json:"avoid_days"`
	AnswerMode string `json:"answer_mode"`
}

type StartSessionResponse struct {
	ID          string `json:"id"`
	LearnerID   string `json:"learner_id"`
	QueueLength int    `json:"queue_length"`
	Empty       bool   `json:"empty"`
	EmptyReason string `json:"empty_reason,omitempty"`
}

type ItemResponse struct {
	ID       string   `json:"id"`
	Native   string   `json:"native"`
	ImageRef string   `json:"image_ref,omitempty"`
	Choices  []string `json:"choices,omitempty"`
	Position int      `json:"position"`
	Total    int      `json:"total"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type SubmitAnswerResponse struct {
	Correct   bool   `json:"correct"`
	Advance   string `json:"advance"`
	Attempted int    `json:"attempted"`
	CorrectN  int    `json:"correct_count"`
	Wrong     int    `json:"wrong_count"`
}

type AdvanceResponse struct {
	HasNext bool          `json:"has_next"`
	Next    *ItemResponse `json:"next,omitempty"`
}

type SessionStatusResponse struct {
	LearnerID string `json:"learner_id"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
	Empty     bool   `json:"empty"`
	Attempted int    `json:"attempted"`
	Correct   int    `json:"correct"`
	Wrong     int    `json:"wrong"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.sessions.Start(drill.SessionConfig{
		LearnerID:      req.LearnerID,
		Scope:          drill.Scope(req.Scope),
		Category:       req.Category,
		RequestedCount: req.Count,
		AvoidDays:      req.AvoidDays,
		AnswerMode:     drill.AnswerMode(req.AnswerMode),
	})
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, StartSessionResponse{
		ID:          res.SessionID,
		LearnerID:   res.LearnerID,
		QueueLength: res.QueueLength,
		Empty:       res.Empty,
		EmptyReason: res.EmptyReason,
	})
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Status(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SessionStatusResponse{
		LearnerID: st.LearnerID,
		Position:  st.Position,
		Total:     st.Total,
		Done:      st.Done,
		Empty:     st.Empty,
		Attempted: st.Summary.Attempted,
		Correct:   st.Summary.Correct,
		Wrong:     st.Summary.Wrong,
	})
}

// GET /sessions/{sessionID}/current
func (h *Handler) getCurrentItem(w http.ResponseWriter, r *http.Request) {
	view, ok, err := h.sessions.Current(r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	if !ok {
		http.Error(w, "session has no current item", http.StatusConflict)
		return
	}

	respondJSON(w, http.StatusOK, itemResponse(view))
}

// POST /sessions/{sessionID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.sessions.Submit(r.PathValue("sessionID"), req.Answer)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		Correct:   res.Correct,
		Advance:   string(res.Advance),
		Attempted: res.Summary.Attempted,
		CorrectN:  res.Summary.Correct,
		Wrong:     res.Summary.Wrong,
	})
}

// POST /sessions/{sessionID}/advance
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	hasNext, err := h.sessions.Advance(sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	resp := AdvanceResponse{HasNext: hasNext}
	if hasNext {
		view, ok, err := h.sessions.Current(sessionID)
		if h.handleServiceError(w, err) {
			return
		}
		if ok {
			item := itemResponse(view)
			resp.Next = &item
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// itemResponse hides the foreign text: the answer never travels to the
// shell with the question.
func itemResponse(view service.ItemView) ItemResponse {
	return ItemResponse{
		ID:       view.Item.ID,
		Native:   view.Item.Native,
		ImageRef: view.Item.ImageRef,
		Choices:  view.Choices,
		Position: view.Position,
		Total:    view.Total,
	}
}
