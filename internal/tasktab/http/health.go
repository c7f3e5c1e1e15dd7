package http

import (
	"net/http"
	"time"

	"github.com/tasktab/tasktab/internal/tasktab/store"
	"github.com/tasktab/tasktab/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

type HealthHandler struct {
	Store     store.Store
	Version   string
	StartTime time.Time
}

// HandleLivez reports process liveness only.
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// HandleReadyz reports readiness, which requires a reachable database.
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.Version,
		Uptime:  time.Since(h.StartTime).Truncate(time.Second).String(),
	})
}
