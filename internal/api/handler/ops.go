package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/weathernow/weathernow/internal/api/models"
	"github.com/weathernow/weathernow/internal/api/response"
	"github.com/weathernow/weathernow/internal/provider/resilience"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	db        Pinger
}

// NewOpsHandler creates a new OpsHandler. registry and db may be nil.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, db Pinger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready. Not ready when the configured
// database cannot be reached.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status. Overall status is the worst of
// the subsystems and upstream providers.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{h.databaseStatus(r.Context())},
		Providers:  []models.ProviderStatus{},
	}

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			status.Providers = append(status.Providers, providerStatus(ph))
		}
	}

	for _, s := range status.Subsystems {
		status.Status = worst(status.Status, s.Status)
	}
	for _, p := range status.Providers {
		status.Status = worst(status.Status, p.Status)
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) databaseStatus(ctx context.Context) models.SubsystemStatus {
	s := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
	if h.db == nil {
		detail := "disabled"
		s.Detail = &detail
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		detail := err.Error()
		s.Status = models.HealthStatusFail
		s.Detail = &detail
	}
	return s
}

func providerStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:     ph.Name,
		Status:       models.HealthStatusOK,
		CircuitState: ph.CircuitState.String(),
	}

	switch {
	case ph.IsUnhealthy():
		ps.Status = models.HealthStatusFail
	case ph.IsDegraded():
		ps.Status = models.HealthStatusDegraded
	}

	if ph.LastSuccessAt != nil {
		ts := models.Timestamp(*ph.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if ph.LastFailureAt != nil {
		ts := models.Timestamp(*ph.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	if ph.LastError != "" {
		msg := ph.LastError
		ps.Message = &msg
	}
	return ps
}

var severity = map[models.HealthStatus]int{
	models.HealthStatusOK:       0,
	models.HealthStatusDegraded: 1,
	models.HealthStatusFail:     2,
}

func worst(a, b models.HealthStatus) models.HealthStatus {
	if severity[b] > severity[a] {
		return b
	}
	return a
}
