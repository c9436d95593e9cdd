// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package middlewares

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Pinger is satisfied by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckMiddleware provides the GET /healthcheck endpoint. It answers
// 503 when db does not respond to a ping.
func HealthCheckMiddleware(db Pinger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/healthcheck" || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			status, body := http.StatusOK, "ok"
			if db != nil {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				if err := db.Ping(ctx); err != nil {
					log.WithError(err).Warn("Health check: database unavailable")
					status, body = http.StatusServiceUnavailable, "database unavailable"
				}
			}
			w.WriteHeader(status)
			if _, err := w.Write([]byte(body)); err != nil {
				log.Error("Error replying health check")
			}
		})
	}
}
