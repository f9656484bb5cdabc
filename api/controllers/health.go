package controllers

import (
	"net/http"

	"github.com/partsdesk/partsdesk-backend/api/responses"
	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores. The offline submission queue
// probes this endpoint to decide when to flush.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsDesk-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["db"] = "down"
				healthy = false
				logg.Error(r.Context(), "db ping failed", err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				logg.Error(r.Context(), "redis ping failed", err)
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, checks)
	}
}
