// Package server is the HTTP relay in front of the spreadsheet: thin JSON
// endpoints over the sheet access port plus a public location-reporting
// endpoint. It holds no state of its own.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/foige/moxalise-api/internal/app"
	"github.com/foige/moxalise-api/internal/sheets"
)

type Server struct {
	settings app.Settings
	port     sheets.Port
	router   *chi.Mux
}

func New(settings app.Settings, port sheets.Port) *Server {
	s := &Server{settings: settings, port: port}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(countRequests)
	r.Use(middleware.Recoverer)

	if len(s.settings.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.settings.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/spreadsheet", func(r chi.Router) {
		r.Get("/sheets", s.handleSheetNames)
		r.Get("/data", s.handleGetData)
		r.Post("/update", s.handleUpdate)
		r.Post("/append", s.handleAppend)
		r.Delete("/clear", s.handleClear)
	})

	r.Route("/api/location", func(r chi.Router) {
		r.Post("/", s.handleStoreLocation)
	})

	return r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the relay until ctx is cancelled, then drains with a
// short grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.settings.ListenAddr).Msg("Relay server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down relay server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
