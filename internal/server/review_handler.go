// Package server provides the HTTP handlers for the review scheduler API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/linguapix/reviewd/internal/review"
)

const (
	defaultDueLimit = 20
	maxDueLimit     = 100
)

// SchedulerService is the scheduler surface the handlers depend on.
type SchedulerService interface {
	Enroll(ctx context.Context, learnerID, itemID int64, level int) (*review.ReviewRecord, error)
	GetDue(ctx context.Context, learnerID int64, limit int) ([]review.ReviewRecord, error)
	SubmitOutcome(ctx context.Context, learnerID, itemID int64, isCorrect bool) (*review.ReviewRecord, error)
	GetProgress(ctx context.Context, learnerID int64) (review.Progress, error)
}

// ReviewHandler serves the review scheduler operations over JSON.
type ReviewHandler struct {
	scheduler SchedulerService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(scheduler SchedulerService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		scheduler: scheduler,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Routes registers all handler routes on a new mux.
func (h *ReviewHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("POST /v1/learners/{learner_id}/items/{item_id}/enrollment", h.Enroll)
	mux.HandleFunc("GET /v1/learners/{learner_id}/reviews", h.GetDue)
	mux.HandleFunc("POST /v1/learners/{learner_id}/items/{item_id}/outcomes", h.SubmitOutcome)
	mux.HandleFunc("GET /v1/learners/{learner_id}/progress", h.GetProgress)
	return mux
}

// Health reports service liveness.
func (h *ReviewHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "reviewd"})
}

type enrollRequest struct {
	Level int `json:"level" validate:"gte=0"`
}

// Enroll creates a review record for the pair, or returns the existing
// one unchanged.
func (h *ReviewHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	learnerID, itemID, ok := h.pairFromPath(w, r)
	if !ok {
		return
	}

	// The body is optional; an absent body enrolls at level 0.
	var req enrollRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	record, err := h.scheduler.Enroll(r.Context(), learnerID, itemID, req.Level)
	if err != nil {
		h.writeSchedulerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetDue returns the learner's due records, most overdue first.
func (h *ReviewHandler) GetDue(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := h.learnerFromPath(w, r)
	if !ok {
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("limit must be an integer: %q", raw))
			return
		}
		limit = parsed
	}
	if limit < 1 || limit > maxDueLimit {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("limit must be between 1 and %d, got %d", maxDueLimit, limit))
		return
	}

	records, err := h.scheduler.GetDue(r.Context(), learnerID, limit)
	if err != nil {
		h.writeSchedulerError(w, r, err)
		return
	}
	if records == nil {
		records = []review.ReviewRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

type outcomeRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// SubmitOutcome records a review outcome and returns the updated record.
func (h *ReviewHandler) SubmitOutcome(w http.ResponseWriter, r *http.Request) {
	learnerID, itemID, ok := h.pairFromPath(w, r)
	if !ok {
		return
	}

	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	record, err := h.scheduler.SubmitOutcome(r.Context(), learnerID, itemID, *req.IsCorrect)
	if err != nil {
		h.writeSchedulerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetProgress returns the learner's aggregate progress counters.
func (h *ReviewHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := h.learnerFromPath(w, r)
	if !ok {
		return
	}

	progress, err := h.scheduler.GetProgress(r.Context(), learnerID)
	if err != nil {
		h.writeSchedulerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *ReviewHandler) learnerFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	learnerID, err := strconv.ParseInt(r.PathValue("learner_id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("learner_id must be an integer"))
		return 0, false
	}
	return learnerID, true
}

func (h *ReviewHandler) pairFromPath(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	learnerID, ok := h.learnerFromPath(w, r)
	if !ok {
		return 0, 0, false
	}
	itemID, err := strconv.ParseInt(r.PathValue("item_id"), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("item_id must be an integer"))
		return 0, 0, false
	}
	return learnerID, itemID, true
}

func (h *ReviewHandler) writeSchedulerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, review.ErrInvalidArgument) {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	h.writeError(w, r, http.StatusInternalServerError, err)
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		// Do not leak store internals to the caller.
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
