package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// ReadinessTimeout bounds each dependency ping of the readiness check
const ReadinessTimeout = 2 * time.Second

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// ReadinessCheck pings one dependency the service cannot serve without
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HandleHealthz answers as long as the process serves HTTP
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz pings every dependency and answers 503 naming the ones that failed
// @Summary Readiness check
// @Description Pings postgres and, when configured, redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: StatusOK, Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
			err := c.Ping(ctx)
			cancel()

			if err != nil {
				logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "dependency", c.Name, "error", err)
				resp.Status = StatusUnavailable
				resp.Message = c.Name + " unreachable"
				resp.Checks[c.Name] = StatusUnavailable
				continue
			}
			resp.Checks[c.Name] = StatusOK
		}

		status := http.StatusOK
		if resp.Status != StatusOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
