// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 8080
	DefaultLogLevel            = "INFO"
	DefaultDBFile              = "docnav.db"
	DefaultCheckConcurrency    = 4
	DefaultExternalConcurrency = 8
	DefaultExternalTimeout     = 10 * time.Second
	DefaultWatchDebounce       = 500 * time.Millisecond
	DefaultRateLimitRequests   = 30
	DefaultRateLimitWindow     = time.Minute
	DefaultHistoryKeep         = 200
	DefaultHistoryLimit        = 20
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// CheckConfig configures link checking.
type CheckConfig struct {
	concurrency         int
	external            bool
	content             bool
	externalTimeout     time.Duration
	externalConcurrency int
	interval            time.Duration
}

// NewCheckConfig creates a new CheckConfig with defaults.
func NewCheckConfig() CheckConfig {
	return CheckConfig{
		concurrency:         DefaultCheckConcurrency,
		externalTimeout:     DefaultExternalTimeout,
		externalConcurrency: DefaultExternalConcurrency,
	}
}

// Concurrency returns how many versions are checked in parallel.
func (c CheckConfig) Concurrency() int { return c.concurrency }

// External returns whether external links are probed over HTTP.
func (c CheckConfig) External() bool { return c.external }

// Content returns whether links inside page content are checked.
func (c CheckConfig) Content() bool { return c.content }

// ExternalTimeout returns the per-request timeout for external probes.
func (c CheckConfig) ExternalTimeout() time.Duration { return c.externalTimeout }

// ExternalConcurrency returns how many external probes run in parallel.
func (c CheckConfig) ExternalConcurrency() int { return c.externalConcurrency }

// Interval returns how often the server re-checks on its own. Zero disables
// scheduled checks.
func (c CheckConfig) Interval() time.Duration { return c.interval }

// WithInterval returns a new config with the specified schedule. Zero or
// less disables scheduled checks.
func (c CheckConfig) WithInterval(d time.Duration) CheckConfig {
	c.interval = max(d, 0)
	return c
}

// WithConcurrency returns a new config with the specified version parallelism.
func (c CheckConfig) WithConcurrency(n int) CheckConfig {
	if n > 0 {
		c.concurrency = n
	}
	return c
}

// WithExternal returns a new config with external probing toggled.
func (c CheckConfig) WithExternal(enabled bool) CheckConfig {
	c.external = enabled
	return c
}

// WithContent returns a new config with content link checking toggled.
func (c CheckConfig) WithContent(enabled bool) CheckConfig {
	c.content = enabled
	return c
}

// WithExternalTimeout returns a new config with the specified probe timeout.
func (c CheckConfig) WithExternalTimeout(d time.Duration) CheckConfig {
	if d > 0 {
		c.externalTimeout = d
	}
	return c
}

// WithExternalConcurrency returns a new config with the specified probe parallelism.
func (c CheckConfig) WithExternalConcurrency(n int) CheckConfig {
	if n > 0 {
		c.externalConcurrency = n
	}
	return c
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	debounce time.Duration
}

// NewWatchConfig creates a new WatchConfig with defaults.
func NewWatchConfig() WatchConfig {
	return WatchConfig{debounce: DefaultWatchDebounce}
}

// Debounce returns how long the watcher waits for changes to settle.
func (w WatchConfig) Debounce() time.Duration { return w.debounce }

// WithDebounce returns a new config with the specified debounce.
func (w WatchConfig) WithDebounce(d time.Duration) WatchConfig {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// RateLimitConfig configures per-client rate limiting of check requests.
type RateLimitConfig struct {
	requests int
	window   time.Duration
}

// NewRateLimitConfig creates a new RateLimitConfig with defaults.
func NewRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		requests: DefaultRateLimitRequests,
		window:   DefaultRateLimitWindow,
	}
}

// Requests returns the number of requests allowed per window.
func (r RateLimitConfig) Requests() int { return r.requests }

// Window returns the rate limit window.
func (r RateLimitConfig) Window() time.Duration { return r.window }

// Enabled returns whether rate limiting applies.
func (r RateLimitConfig) Enabled() bool { return r.requests > 0 && r.window > 0 }

// WithRequests returns a new config allowing n requests per window. Zero disables limiting.
func (r RateLimitConfig) WithRequests(n int) RateLimitConfig {
	if n >= 0 {
		r.requests = n
	}
	return r
}

// WithWindow returns a new config with the specified window.
func (r RateLimitConfig) WithWindow(d time.Duration) RateLimitConfig {
	if d > 0 {
		r.window = d
	}
	return r
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host        string
	port        int
	dataDir     string
	dbURL       string
	logLevel    string
	logFormat   LogFormat
	siteDir     string
	docsDir     string
	htmlDir     string
	check       CheckConfig
	watch       WatchConfig
	rateLimit   RateLimitConfig
	corsOrigins []string
	historyKeep int
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docnav"
	}
	return filepath.Join(home, ".docnav")
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:        DefaultHost,
		port:        DefaultPort,
		dataDir:     dataDir,
		dbURL:       "sqlite:///" + filepath.Join(dataDir, DefaultDBFile),
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		check:       NewCheckConfig(),
		watch:       NewWatchConfig(),
		rateLimit:   NewRateLimitConfig(),
		corsOrigins: []string{},
		historyKeep: DefaultHistoryKeep,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SiteDir returns the directory of per-version site configuration files.
// Empty means the built-in chess-library configuration is used.
func (c AppConfig) SiteDir() string { return c.siteDir }

// DocsDir returns the markdown documentation root.
func (c AppConfig) DocsDir() string { return c.docsDir }

// HTMLDir returns the built site output directory.
func (c AppConfig) HTMLDir() string { return c.htmlDir }

// Check returns the link checking config.
func (c AppConfig) Check() CheckConfig { return c.check }

// Watch returns the watcher config.
func (c AppConfig) Watch() WatchConfig { return c.watch }

// RateLimit returns the rate limiting config.
func (c AppConfig) RateLimit() RateLimitConfig { return c.rateLimit }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// HistoryKeep returns how many check reports are retained.
func (c AppConfig) HistoryKeep() int { return c.historyKeep }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Update default DB URL when data dir changes
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDBFile) {
			c.dbURL = "sqlite:///" + filepath.Join(dir, DefaultDBFile)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSiteDir sets the site configuration directory.
func WithSiteDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.siteDir = dir }
}

// WithDocsDir sets the markdown documentation root.
func WithDocsDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.docsDir = dir }
}

// WithHTMLDir sets the built site directory.
func WithHTMLDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.htmlDir = dir }
}

// WithCheckConfig sets the link checking config.
func WithCheckConfig(cc CheckConfig) AppConfigOption {
	return func(c *AppConfig) { c.check = cc }
}

// WithWatchConfig sets the watcher config.
func WithWatchConfig(w WatchConfig) AppConfigOption {
	return func(c *AppConfig) { c.watch = w }
}

// WithRateLimitConfig sets the rate limiting config.
func WithRateLimitConfig(r RateLimitConfig) AppConfigOption {
	return func(c *AppConfig) { c.rateLimit = r }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithHistoryKeep sets how many check reports are retained.
func WithHistoryKeep(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.historyKeep = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("site_dir", orDefault(c.siteDir, "(built-in)")),
		slog.String("docs_dir", orDefault(c.docsDir, "(not configured)")),
		slog.String("html_dir", orDefault(c.htmlDir, "(not configured)")),
		slog.Int("check_concurrency", c.check.Concurrency()),
		slog.Bool("check_external", c.check.External()),
		slog.Bool("check_content", c.check.Content()),
		slog.Duration("check_interval", c.check.Interval()),
		slog.Int("cors_origins", len(c.corsOrigins)),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ParseList parses a comma-separated list, dropping empty items.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
