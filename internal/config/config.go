// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the catalog source, search tuning, rate
// limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tbourn/go-taxcode-search/internal/search"
	"github.com/tbourn/go-taxcode-search/internal/sysutil"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "taxcode-search")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// CatalogConfig locates the catalog document and selects where it is served from.
type CatalogConfig struct {
	Path  string // CATALOG_PATH, JSON correlation document
	Store string // CATALOG_STORE: sqlite|memory
}

// SearchConfig tunes the search engine and request validation.
type SearchConfig struct {
	MinSearchLength int     // MIN_SEARCH_LENGTH, characters
	FuzzyThreshold  float64 // FUZZY_THRESHOLD in [0..100]
	MaxAutocomplete int     // MAX_AUTOCOMPLETE suggestions
	MaxQueryRunes   int     // MAX_QUERY_RUNES, 0 disables the cap
	HighlightColor  string  // HIGHLIGHT_COLOR, CSS color for <mark>
}

// EngineOptions converts the settings into search engine options.
func (s SearchConfig) EngineOptions() []search.Option {
	return []search.Option{
		search.WithMinSearchLength(s.MinSearchLength),
		search.WithFuzzyThreshold(s.FuzzyThreshold),
		search.WithMaxSuggestions(s.MaxAutocomplete),
	}
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // trace|debug|info|warn|error|fatal|panic|off
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath  string // SQLite path
	Catalog CatalogConfig
	Search  SearchConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath: getenv("DB_PATH", "taxsearch.db"),
		Catalog: CatalogConfig{
			Path:  getenv("CATALOG_PATH", "data/catalog.json"),
			Store: strings.ToLower(getenv("CATALOG_STORE", "sqlite")),
		},
		Search: SearchConfig{
			MinSearchLength: getint("MIN_SEARCH_LENGTH", 2),
			FuzzyThreshold:  getfloat("FUZZY_THRESHOLD", 65),
			MaxAutocomplete: getint("MAX_AUTOCOMPLETE", 8),
			MaxQueryRunes:   getint("MAX_QUERY_RUNES", 200),
			HighlightColor:  getenv("HIGHLIGHT_COLOR", search.DefaultHighlightColor),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "taxcode-search"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
}

// validate reports every invalid setting at once.
func (c Config) validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	_, levelOK := sysutil.ParseLevel(c.LogLevel)
	check(levelOK, "LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, off")
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")
	check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")

	switch c.Catalog.Store {
	case "sqlite", "memory":
	default:
		check(false, "CATALOG_STORE must be one of: sqlite, memory")
	}
	check(c.Catalog.Store != "memory" || strings.TrimSpace(c.Catalog.Path) != "",
		"CATALOG_PATH must not be empty with CATALOG_STORE=memory")

	check(c.Search.MinSearchLength >= 1, "MIN_SEARCH_LENGTH must be >= 1")
	check(c.Search.FuzzyThreshold >= 0 && c.Search.FuzzyThreshold <= 100, "FUZZY_THRESHOLD must be between 0 and 100")
	check(c.Search.MaxAutocomplete >= 1, "MAX_AUTOCOMPLETE must be >= 1")
	check(c.Search.MaxQueryRunes >= 0, "MAX_QUERY_RUNES must be >= 0")
	check(search.SafeColor(c.Search.HighlightColor) == strings.TrimSpace(c.Search.HighlightColor),
		"HIGHLIGHT_COLOR must be a hex (#rrggbb) or named color")

	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")

	return errors.Join(errs...)
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch {
		case sysutil.IsTruthy(v):
			return true
		case sysutil.IsFalsy(v):
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
