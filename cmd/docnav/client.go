package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/docnav"
	"github.com/helixml/docnav/internal/config"
	"github.com/helixml/docnav/internal/log"
)

// session is an open client and the logger it writes to.
type session struct {
	client *docnav.Client
	logger *slog.Logger
	cfg    config.AppConfig
}

// open builds a client from the loaded configuration.
func open(cfg config.AppConfig, extra ...docnav.Option) (*session, error) {
	logger := log.NewLogger(cfg).Slog()

	opts := append([]docnav.Option{
		docnav.WithAppConfig(cfg),
		docnav.WithLogger(logger),
	}, extra...)

	client, err := docnav.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create docnav client: %w", err)
	}
	return &session{client: client, logger: logger, cfg: cfg}, nil
}

// openFromFlags loads configuration and opens a client.
func openFromFlags(g *globalFlags, extra ...docnav.Option) (*session, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	return open(cfg, extra...)
}

func (s *session) close() {
	if err := s.client.Close(); err != nil {
		s.logger.Error("failed to close docnav client", slog.Any("error", err))
	}
}

// logStart logs the effective configuration.
func (s *session) logStart(ctx context.Context, msg string) {
	attrs := append([]slog.Attr{slog.String("version", version)}, s.cfg.LogAttrs()...)
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
