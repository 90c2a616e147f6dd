package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/helixml/docnav"
	"github.com/helixml/docnav/infrastructure/api"
	apimiddleware "github.com/helixml/docnav/infrastructure/api/middleware"
	"github.com/helixml/docnav/infrastructure/metrics"
	"github.com/helixml/docnav/internal/config"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 30 * time.Second

func serveCmd(g *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. --env-file, or .env.local and .env in the current directory
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: ~/.docnav)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/docnav.db)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)

  SITE_DIR                     Per-version site files (default: built-in sites)
  DOCS_DIR                     Markdown documentation root
  HTML_DIR                     Built HTML site, used instead of DOCS_DIR

  CHECK_*                      Link checking
    CONCURRENCY                Versions checked in parallel (default: 4)
    CONTENT                    Check links inside page content (default: false)
    EXTERNAL                   Probe external links over HTTP (default: false)
    EXTERNAL_TIMEOUT           Probe timeout in seconds (default: 10)
    EXTERNAL_CONCURRENCY       Probes in parallel (default: 8)
    INTERVAL_SECONDS           Scheduled check interval, 0 disables (default: 0)

  RATE_LIMIT_REQUESTS          Check runs per client and window, 0 disables (default: 30)
  RATE_LIMIT_WINDOW_SECONDS    Rate limit window (default: 60)
  CORS_ORIGINS                 Comma-separated list of allowed origins
  HISTORY_KEEP                 Check reports retained (default: 200)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), applyServeOverrides(cfg, host, port))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, cfg config.AppConfig) error {
	s, err := open(cfg, docnav.WithMetrics(metrics.New()))
	if err != nil {
		return err
	}
	defer s.close()

	s.logStart(ctx, "starting docnav")

	apiServer := api.NewAPIServer(s.client)
	router := apiServer.Router()

	// Custom middleware must be added before MountRoutes.
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(s.logger))

	apiServer.MountRoutes()

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"docnav","version":"%s","api":"/api/v1"}`, version)
	})

	server := api.NewServer(cfg.Addr(), s.logger)
	server.Router().Mount("/", router)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.client.Schedule.Start(sigCtx)
	defer s.client.Schedule.Stop()

	done := make(chan error, 1)
	go func() {
		<-sigCtx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Start(); err != nil {
		stop()
		<-done
		return fmt.Errorf("server error: %w", err)
	}
	if err := <-done; err != nil {
		s.logger.Error("shutdown error", slog.Any("error", err))
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
