package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
	"github.com/ninja-hatori-dev/mood-harmony/internal/core/services"
	"github.com/ninja-hatori-dev/mood-harmony/internal/worker"
)

// recommendRequest defines what the client sends us. Hour is a pointer so
// a missing key is distinguishable from a legitimate hour of 0.
type recommendRequest struct {
	Mood   string `json:"mood"`
	Hour   *int   `json:"hour"`
	UserID string `json:"user_id"`
}

// storageFailureResponse is returned when persistence fails after the
// recommendation was computed. The result is included so the expensive
// work is not lost to the caller.
type storageFailureResponse struct {
	Error          string                      `json:"error"`
	Recommendation domain.RecommendationResult `json:"recommendation"`
}

// Recommend handles POST /api/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Mood == "" || req.Hour == nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Mood, hour, and user_id are required")
		return
	}

	if _, err := h.repo.UserByID(r.Context(), req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error occurred")
		return
	}

	result, err := h.svc.Recommend(r.Context(), domain.RecommendationRequest{
		Mood: req.Mood,
		Hour: *req.Hour,
	})
	if err != nil {
		var parseErr *services.ParseError
		switch {
		case errors.Is(err, services.ErrEmptyMood):
			writeError(w, http.StatusBadRequest, "Mood, hour, and user_id are required")
		case errors.As(err, &parseErr):
			log.Printf("WARN rest: unparseable model response: %v raw=%q", parseErr.Cause, parseErr.RawText)
			writeErrorDetails(w, http.StatusBadGateway, "Model response did not match the expected shape", parseErr.Cause.Error())
		case errors.Is(err, ports.ErrModelUnavailable):
			writeErrorDetails(w, http.StatusBadGateway, "Recommendation model is unavailable", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	record := domain.NewMoodRecord(req.UserID, req.Mood, result)
	if err := h.repo.SaveMoodRecord(r.Context(), record); err != nil {
		// The expensive work is already done; hand the result back even
		// though it was not saved.
		log.Printf("WARN rest: failed to save mood record for user %s: %v", req.UserID, err)
		writeJSON(w, http.StatusInternalServerError, storageFailureResponse{
			Error:          "Database error occurred",
			Recommendation: result,
		})
		return
	}

	if h.pool != nil {
		for _, s := range record.Songs {
			if s.PreviewURL != "" {
				h.pool.Submit(worker.Job{SongID: s.ID, PreviewURL: s.PreviewURL})
			}
		}
	}

	writeJSON(w, http.StatusOK, result)
}
