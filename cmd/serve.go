package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/dripsim/drip/server"
	"github.com/dripsim/drip/visit"
	"github.com/dripsim/drip/yahoo"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the simulation HTTP server" }
func (*serveCmd) Usage() string {
	return `dripsim serve [-port <port>]

  Runs the HTTP API: POST /api/simulate, GET /api/simulate.csv and
  GET /api/stats. Configuration is read from the environment (PORT,
  DATABASE_PATH, CACHE_TTL_MINUTES, LOG_LEVEL, DEV_MODE), with a .env
  file honored when present. The -port flag overrides PORT.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Port to listen on (overrides the PORT environment variable)")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := server.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.port != 0 {
		cfg.Port = c.port
	}

	log := server.NewLogger(cfg.LogLevel, cfg.DevMode)

	visits, err := visit.Open(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("opening visit store")
		return subcommands.ExitFailure
	}
	defer visits.Close()

	srv := server.New(server.Options{
		Port:     cfg.Port,
		Log:      log,
		Visits:   visits,
		Provider: yahoo.NewWith(yahoo.DefaultBaseURL, cfg.CacheTTL),
		CacheTTL: cfg.CacheTTL,
		DevMode:  cfg.DevMode,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() { errs <- srv.Start() }()

	select {
	case err := <-errs:
		log.Error().Err(err).Msg("server stopped")
		return subcommands.ExitFailure
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
