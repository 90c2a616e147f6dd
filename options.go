package docnav

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/helixml/docnav/application/service"
	"github.com/helixml/docnav/infrastructure/metrics"
	"github.com/helixml/docnav/internal/config"
)

// clientConfig holds configuration for Client construction.
// Defaults come from internal/config.
type clientConfig struct {
	app     config.AppConfig
	logger  *slog.Logger
	prober  service.Prober
	metrics *metrics.Collector
}

func newClientConfig() *clientConfig {
	return &clientConfig{app: config.NewAppConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithAppConfig replaces the whole configuration, e.g. one loaded from the
// environment. Options after it still apply.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) { c.app = cfg }
}

// WithDataDir sets the directory holding the default SQLite database.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithDataDir(dir)) }
}

// WithSQLite stores check history in the SQLite database at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		c.app = c.app.Apply(config.WithDBURL("sqlite:///" + abs))
	}
}

// WithInMemory keeps check history in memory only.
func WithInMemory() Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithDBURL("sqlite:///:memory:")) }
}

// WithPostgres stores check history in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithDBURL(dsn)) }
}

// WithSiteDir reads site configuration files from dir instead of the
// built-in versions.
func WithSiteDir(dir string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithSiteDir(dir)) }
}

// WithDocsDir reads the page catalog from a markdown docs tree.
func WithDocsDir(dir string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithDocsDir(dir)) }
}

// WithHTMLDir reads the page catalog from a built HTML site.
func WithHTMLDir(dir string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithHTMLDir(dir)) }
}

// WithCheckConfig sets check concurrency and which link kinds are checked.
func WithCheckConfig(cc config.CheckConfig) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithCheckConfig(cc)) }
}

// WithWatchDebounce sets how long changes must be quiet before a re-check.
func WithWatchDebounce(d time.Duration) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithWatchConfig(c.app.Watch().WithDebounce(d)))
	}
}

// WithHistoryKeep sets how many reports are kept.
func WithHistoryKeep(n int) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithHistoryKeep(n)) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithProber replaces the HTTP prober used for external links.
func WithProber(p service.Prober) Option {
	return func(c *clientConfig) { c.prober = p }
}

// WithMetrics records every check in the given collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *clientConfig) { c.metrics = m }
}

// WithRateLimit allows requests check runs per window and client over the
// HTTP API. Zero requests disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithRateLimitConfig(c.app.RateLimit().WithRequests(requests).WithWindow(window)))
	}
}

// WithCORSOrigins allows browser requests to the HTTP API from origins.
func WithCORSOrigins(origins ...string) Option {
	return func(c *clientConfig) { c.app = c.app.Apply(config.WithCORSOrigins(origins)) }
}
