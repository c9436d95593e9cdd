// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/dre1080/recovr"
	"github.com/go-chi/chi/v5"
	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/runtime/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sapcc/go-bits/logg"
	"golang.org/x/sync/errgroup"

	"github.com/sapcc/jobly/internal/auth"
	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/controller"
	"github.com/sapcc/jobly/internal/db"
	"github.com/sapcc/jobly/internal/middlewares"
)

var jsonProducer = runtime.ProducerFunc(func(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(data)
})

type binder[P any] interface {
	*P
	BindRequest(r *http.Request) error
}

// serve binds the request parameters and writes the handler's response.
func serve[P any, B binder[P]](handler func(P) middleware.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params P
		if err := B(&params).BindRequest(r); err != nil {
			controller.NewErrorResponse(r, err).WriteResponse(w, jsonProducer)
			return
		}
		handler(params).WriteResponse(w, jsonProducer)
	}
}

// NewRouter wires the company routes. jwt is nil when authentication is
// disabled.
func NewRouter(c *controller.Controller, pool middlewares.Pinger, jwt *auth.JWT) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares.RequestLogger)
	if jwt != nil {
		r.Use(jwt.AuthenticateJWT)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		oaerrors.ServeError(w, r, oaerrors.NotFound("path %s was not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		oaerrors.ServeError(w, r, oaerrors.New(http.StatusMethodNotAllowed,
			"method %s is not allowed for %s", r.Method, r.URL.Path))
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		c.GetVersionHandler(r).WriteResponse(w, jsonProducer)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", serve(c.GetCompaniesHandler))
		r.With(auth.EnsureAdmin).Post("/", serve(c.PostCompanyHandler))

		r.Route("/{handle}", func(r chi.Router) {
			r.Get("/", serve(c.GetCompanyHandler))
			r.With(auth.EnsureAdmin).Patch("/", serve(c.PatchCompanyHandler))
			r.With(auth.EnsureAdmin).Delete("/", serve(c.DeleteCompanyHandler))
		})
	})

	return setupGlobalMiddleware(setupMiddlewares(r), pool)
}

func setupMiddlewares(handler http.Handler) http.Handler {
	if !config.Global.ApiSettings.DisableCors {
		handler = cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"HEAD", "GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Content-Type", "User-Agent", "Authorization"},
		}).Handler(handler)
	}

	if rl := config.Global.ApiSettings.RateLimit; rl > .0 {
		lmt := tollbooth.NewLimiter(rl, nil)
		lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
		lmt.SetMessageContentType("application/json")
		lmt.SetMessage(`{"code":429,"message":"rate limit exceeded"}`)
		handler = tollbooth.LimitHandler(lmt, handler)
	}

	return handler
}

func setupGlobalMiddleware(handler http.Handler, pool middlewares.Pinger) http.Handler {
	handler = middlewares.HealthCheckMiddleware(pool)(handler)
	return recovr.New()(handler)
}

// Run serves the API, and the metrics endpoint if enabled, until ctx is done.
func Run(ctx context.Context) error {
	pool, err := db.Connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	var jwt *auth.JWT
	if config.Global.ApiSettings.AuthStrategy == "jwt" {
		if jwt, err = auth.InitializeJWT(); err != nil {
			return err
		}
	}

	servers := []*http.Server{{
		Addr:              config.Global.ApiSettings.Listen,
		Handler:           NewRouter(controller.NewController(pool), pool, jwt),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if config.Global.Default.Prometheus {
		controller.InitializePrometheus()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		servers = append(servers, &http.Server{
			Addr:              config.Global.Default.PrometheusListen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logg.Info("Serving on http://%s", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		logg.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
