package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/api/models"
	"github.com/weathernow/weathernow/internal/api/response"
	"github.com/weathernow/weathernow/internal/status"
)

// StatusHandler serves the /api/status check log.
type StatusHandler struct {
	service *status.Service
	logger  zerolog.Logger
}

// NewStatusHandler creates a StatusHandler. A nil service means no database
// is configured and every request answers 503.
func NewStatusHandler(service *status.Service, logger zerolog.Logger) *StatusHandler {
	return &StatusHandler{service: service, logger: logger}
}

// CreateCheck handles POST /api/status.
func (h *StatusHandler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}

	var input status.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	check, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, status.ErrInvalidClientName) || errors.Is(err, status.ErrClientNameTooLong) {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "client_name", Message: err.Error(), Code: "INVALID"},
			})
			return
		}
		h.logger.Error().Err(err).Msg("failed to store status check")
		response.InternalError(w, r, "Failed to store status check")
		return
	}

	response.Created(w, r, check)
}

// ListChecks handles GET /api/status.
func (h *StatusHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	if !h.available(w, r) {
		return
	}

	checks, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list status checks")
		response.InternalError(w, r, "Failed to list status checks")
		return
	}

	response.JSON(w, r, http.StatusOK, checks)
}

func (h *StatusHandler) available(w http.ResponseWriter, r *http.Request) bool {
	if h.service == nil {
		response.ServiceUnavailable(w, r, "Database connection not available")
		return false
	}
	return true
}
