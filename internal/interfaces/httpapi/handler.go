package httpapi

import (
	"net/http"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
	"github.com/atsilverman/fpl-research/internal/usecase"
)

// Handler serves the operational status surface.
type Handler struct {
	monitor        *usecase.MonitorService
	logger         *logging.Logger
	serviceName    string
	serviceVersion string
	startedAt      time.Time
}

func NewHandler(monitor *usecase.MonitorService, logger *logging.Logger, serviceName, serviceVersion string) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		monitor:        monitor,
		logger:         logger,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		startedAt:      time.Now(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Service       string             `json:"service"`
	Version       string             `json:"version"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	HasSnapshot   bool               `json:"has_snapshot"`
	Snapshot      *snapshot.Snapshot `json:"snapshot,omitempty"`
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, ok, err := h.monitor.LastSnapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "status snapshot load failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	resp := statusResponse{
		Service:       h.serviceName,
		Version:       h.serviceVersion,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		HasSnapshot:   ok,
	}
	if ok {
		resp.Snapshot = &snap
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}
