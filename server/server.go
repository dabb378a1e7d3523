// Package server exposes the simulator over HTTP: a JSON simulate
// endpoint, a CSV export, and visitor statistics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/dripsim/drip"
	"github.com/dripsim/drip/visit"
	"github.com/dripsim/drip/yahoo"
)

// Options configures a Server.
type Options struct {
	Port     int
	Log      zerolog.Logger
	Visits   visit.Store
	Provider drip.MarketDataProvider
	CacheTTL time.Duration
	DevMode  bool
}

// Server is the HTTP front of the simulator.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	visits   visit.Store
	provider drip.MarketDataProvider
	cron     *cron.Cron
	cacheTTL time.Duration
}

// New creates a new HTTP server.
func New(opts Options) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      opts.Log.With().Str("component", "server").Logger(),
		visits:   opts.Visits,
		provider: opts.Provider,
		cron:     cron.New(),
		cacheTTL: opts.CacheTTL,
	}

	s.setupMiddleware(opts.DevMode)
	s.setupRoutes()
	s.setupJobs()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/simulate.csv", s.handleExportCSV)
		r.Get("/stats", s.handleStats)
	})
}

// setupJobs registers the hourly cache sweep; expired market-data
// responses are never read again, the job just reclaims disk.
func (s *Server) setupJobs() {
	s.cron.AddFunc("@hourly", func() {
		if err := yahoo.PruneCache(s.cacheTTL); err != nil {
			s.log.Error().Err(err).Msg("cache prune failed")
		}
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Start starts the HTTP server and its background jobs.
func (s *Server) Start() error {
	s.cron.Start()
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	<-s.cron.Stop().Done()
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler { return s.router }
