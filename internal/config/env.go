package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., CHECK_CONCURRENCY).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.docnav
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/docnav.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SiteDir holds one configuration file per documentation version.
	// Env: SITE_DIR
	SiteDir string `envconfig:"SITE_DIR"`

	// DocsDir is the markdown documentation root.
	// Env: DOCS_DIR
	DocsDir string `envconfig:"DOCS_DIR"`

	// HTMLDir is the built site output, checked instead of DocsDir when set.
	// Env: HTML_DIR
	HTMLDir string `envconfig:"HTML_DIR"`

	// Check configures link checking.
	Check CheckEnv `envconfig:"CHECK"`

	// Watch configures the file watcher.
	Watch WatchEnv `envconfig:"WATCH"`

	// RateLimit configures API rate limiting.
	RateLimit RateLimitEnv `envconfig:"RATE_LIMIT"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// HistoryKeep is how many check reports are retained.
	// Env: HISTORY_KEEP (default: 200)
	HistoryKeep int `envconfig:"HISTORY_KEEP" default:"200"`
}

// CheckEnv holds environment configuration for link checking.
type CheckEnv struct {
	// Concurrency is how many versions are checked in parallel.
	// Env: CHECK_CONCURRENCY (default: 4)
	Concurrency int `envconfig:"CONCURRENCY" default:"4"`

	// External enables HTTP probing of external links.
	// Env: CHECK_EXTERNAL (default: false)
	External bool `envconfig:"EXTERNAL" default:"false"`

	// Content enables checking links inside page content.
	// Env: CHECK_CONTENT (default: false)
	Content bool `envconfig:"CONTENT" default:"false"`

	// ExternalTimeout is the probe timeout in seconds.
	// Env: CHECK_EXTERNAL_TIMEOUT (default: 10)
	ExternalTimeout float64 `envconfig:"EXTERNAL_TIMEOUT" default:"10"`

	// ExternalConcurrency is how many probes run in parallel.
	// Env: CHECK_EXTERNAL_CONCURRENCY (default: 8)
	ExternalConcurrency int `envconfig:"EXTERNAL_CONCURRENCY" default:"8"`

	// IntervalSeconds schedules server-side re-checks. 0 disables.
	// Env: CHECK_INTERVAL_SECONDS (default: 0)
	IntervalSeconds float64 `envconfig:"INTERVAL_SECONDS" default:"0"`
}

// WatchEnv holds environment configuration for the watcher.
type WatchEnv struct {
	// DebounceMS is the settle time in milliseconds.
	// Env: WATCH_DEBOUNCE_MS (default: 500)
	DebounceMS int `envconfig:"DEBOUNCE_MS" default:"500"`
}

// RateLimitEnv holds environment configuration for rate limiting.
type RateLimitEnv struct {
	// Requests is the number of check requests allowed per window. 0 disables.
	// Env: RATE_LIMIT_REQUESTS (default: 30)
	Requests int `envconfig:"REQUESTS" default:"30"`

	// WindowSeconds is the window length in seconds.
	// Env: RATE_LIMIT_WINDOW_SECONDS (default: 60)
	WindowSeconds float64 `envconfig:"WINDOW_SECONDS" default:"60"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "DOCNAV" would require DOCNAV_DOCS_DIR instead of DOCS_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.SiteDir != "" {
		cfg = applyOption(cfg, WithSiteDir(e.SiteDir))
	}
	if e.DocsDir != "" {
		cfg = applyOption(cfg, WithDocsDir(e.DocsDir))
	}
	if e.HTMLDir != "" {
		cfg = applyOption(cfg, WithHTMLDir(e.HTMLDir))
	}

	cfg = applyOption(cfg, WithCheckConfig(e.Check.ToCheckConfig()))
	cfg = applyOption(cfg, WithWatchConfig(e.Watch.ToWatchConfig()))
	cfg = applyOption(cfg, WithRateLimitConfig(e.RateLimit.ToRateLimitConfig()))

	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}
	if e.HistoryKeep > 0 {
		cfg = applyOption(cfg, WithHistoryKeep(e.HistoryKeep))
	}

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToCheckConfig converts CheckEnv to CheckConfig.
func (c CheckEnv) ToCheckConfig() CheckConfig {
	return NewCheckConfig().
		WithConcurrency(c.Concurrency).
		WithExternal(c.External).
		WithContent(c.Content).
		WithExternalTimeout(seconds(c.ExternalTimeout)).
		WithExternalConcurrency(c.ExternalConcurrency).
		WithInterval(seconds(c.IntervalSeconds))
}

// ToWatchConfig converts WatchEnv to WatchConfig.
func (w WatchEnv) ToWatchConfig() WatchConfig {
	return NewWatchConfig().WithDebounce(time.Duration(w.DebounceMS) * time.Millisecond)
}

// ToRateLimitConfig converts RateLimitEnv to RateLimitConfig.
func (r RateLimitEnv) ToRateLimitConfig() RateLimitConfig {
	return NewRateLimitConfig().
		WithRequests(r.Requests).
		WithWindow(seconds(r.WindowSeconds))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
