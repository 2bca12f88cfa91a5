package handler

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/api/middleware"
	"github.com/weathernow/weathernow/internal/api/response"
	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/dashboard/view"
)

// DashboardHandler serves the server-rendered dashboard page.
type DashboardHandler struct {
	fetcher  dashboard.Fetcher
	renderer *view.Renderer
	logger   zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(fetcher dashboard.Fetcher, renderer *view.Renderer, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{fetcher: fetcher, renderer: renderer, logger: logger}
}

// Page handles GET /. With ?city= it runs one submission and renders the
// branch it settles in. Page loads share no state.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	orchestrator := dashboard.NewOrchestrator(dashboard.OrchestratorConfig{
		Fetcher: h.fetcher,
		Logger:  h.logger,
	})
	orchestrator.Submit(r.Context(), r.URL.Query().Get("city"))

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, orchestrator.State()); err != nil {
		h.logger.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("failed to render dashboard")
		response.InternalError(w, r, "Failed to render dashboard")
		return
	}

	response.HTML(w, r, http.StatusOK, &buf)
}
