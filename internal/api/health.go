package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hackgods/healthcare-plus/internal/session"
)

// HealthHandler reports liveness and the state of the optional backends.
// A nil pool or client means the backend is not configured and is skipped.
// A nil manager reports no active sessions.
type HealthHandler struct {
	pgPool   *pgxpool.Pool
	redis    *redis.Client
	sessions *session.Manager
	env      string
	version  string
}

func NewHealthHandler(pgPool *pgxpool.Pool, rdb *redis.Client, sessions *session.Manager, env, version string) *HealthHandler {
	return &HealthHandler{
		pgPool:   pgPool,
		redis:    rdb,
		sessions: sessions,
		env:      env,
		version:  version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version,omitempty"`
	Env            string            `json:"env,omitempty"`
	ActiveSessions int               `json:"active_sessions"`
	Dependencies   map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness is "error" with Postgres down and "degraded" with only Redis down.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	status := "ok"

	if h.pgPool == nil {
		deps["postgres"] = "disabled"
	} else {
		pgCtx, pgCancel := context.WithTimeout(ctx, time.Second)
		err := h.pgPool.Ping(pgCtx)
		pgCancel()
		if err != nil {
			deps["postgres"] = "down"
			status = "error"
		} else {
			deps["postgres"] = "ok"
		}
	}

	if h.redis == nil {
		deps["redis"] = "disabled"
	} else {
		redisCtx, redisCancel := context.WithTimeout(ctx, time.Second)
		err := h.redis.Ping(redisCtx).Err()
		redisCancel()
		if err != nil {
			deps["redis"] = "down"
			if status == "ok" {
				status = "degraded"
			}
		} else {
			deps["redis"] = "ok"
		}
	}

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}
	if h.sessions != nil {
		resp.ActiveSessions = h.sessions.Len()
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
