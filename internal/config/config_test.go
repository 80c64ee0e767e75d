package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-taxcode-search/internal/search"
)

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// App
	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("CATALOG_PATH", "anexo.json")
	t.Setenv("CATALOG_STORE", "MEMORY")
	t.Setenv("MIN_SEARCH_LENGTH", "3")
	t.Setenv("FUZZY_THRESHOLD", "70")
	t.Setenv("MAX_AUTOCOMPLETE", "12")
	t.Setenv("MAX_QUERY_RUNES", "0")
	t.Setenv("HIGHLIGHT_COLOR", "#FF0000")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	// App
	if cfg.DBPath != "db.sqlite" || cfg.Catalog != (CatalogConfig{Path: "anexo.json", Store: "memory"}) {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}
	wantSearch := SearchConfig{MinSearchLength: 3, FuzzyThreshold: 70, MaxAutocomplete: 12, MaxQueryRunes: 0, HighlightColor: "#FF0000"}
	if cfg.Search != wantSearch {
		t.Fatalf("search fields unexpected: %+v", cfg.Search)
	}

	// Rate limiting (parse fallback to defaults)
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	// Web protection
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"blank port", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"zero timeout", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"header bytes", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"blank db path", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"unknown store", map[string]string{"CATALOG_STORE": "redis"}, "CATALOG_STORE"},
		{"memory without document", map[string]string{"CATALOG_STORE": "memory", "CATALOG_PATH": "   "}, "CATALOG_PATH"},
		{"min search length", map[string]string{"MIN_SEARCH_LENGTH": "0"}, "MIN_SEARCH_LENGTH"},
		{"fuzzy threshold", map[string]string{"FUZZY_THRESHOLD": "101"}, "FUZZY_THRESHOLD"},
		{"autocomplete", map[string]string{"MAX_AUTOCOMPLETE": "0"}, "MAX_AUTOCOMPLETE"},
		{"query runes", map[string]string{"MAX_QUERY_RUNES": "-1"}, "MAX_QUERY_RUNES"},
		{"highlight color", map[string]string{"HIGHLIGHT_COLOR": `red" onclick="x`}, "HIGHLIGHT_COLOR"},
		{"rate rps", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts max age", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("unexpected server defaults: port=%q base=%q", cfg.Port, cfg.APIBasePath)
	}
	want := SearchConfig{MinSearchLength: 2, FuzzyThreshold: 65, MaxAutocomplete: 8, MaxQueryRunes: 200, HighlightColor: "#FFEB3B"}
	if cfg.Search != want {
		t.Fatalf("search defaults unexpected: %+v", cfg.Search)
	}
	if cfg.Catalog.Store != "sqlite" {
		t.Fatalf("expected sqlite store by default, got %q", cfg.Catalog.Store)
	}
}

func TestSearchConfig_EngineOptions(t *testing.T) {
	sc := SearchConfig{MinSearchLength: 4, FuzzyThreshold: 80, MaxAutocomplete: 3}
	e := search.New(sc.EngineOptions()...)
	if e.MinSearchLength() != 4 || e.FuzzyThreshold() != 80 || e.MaxSuggestions() != 3 {
		t.Fatalf("engine not configured from SearchConfig: %d %v %d", e.MinSearchLength(), e.FuzzyThreshold(), e.MaxSuggestions())
	}
}

func TestHelpers_Parsing(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	t.Setenv("X_SET", "val")
	t.Setenv("F_OK", "3.14")
	t.Setenv("F_BAD", "nope")
	t.Setenv("I_OK", "42")
	t.Setenv("I_BAD", "x")
	t.Setenv("D_OK", "150ms")
	t.Setenv("D_BAD", "zzz")

	if getenv("X_EMPTY", "d") != "d" || getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv unexpected")
	}
	if getfloat("F_OK", 0) != 3.14 || getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat unexpected")
	}
	if getint("I_OK", 0) != 42 || getint("I_BAD", 7) != 7 {
		t.Fatalf("getint unexpected")
	}
	if getdur("D_OK", time.Second) != 150*time.Millisecond || getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur unexpected")
	}
}

func TestHelpers_getbool(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{" yes ", false, true},
		{"On", false, true},
		{"0", true, false},
		{"FALSE", true, false},
		{" n ", true, false},
		{"", true, true},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv("TAXSEARCH_FLAG", tc.val)
		if got := getbool("TAXSEARCH_FLAG", tc.def); got != tc.want {
			t.Fatalf("getbool(%q, %v) = %v; want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestHelpers_splitCSV_normalizeBasePath(t *testing.T) {
	if splitCSV("") != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV mismatch: %#v", got)
	}

	paths := map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/", "api/v1/": "/api/v1"}
	for in, want := range paths {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	t.Setenv("RATE_BURST", "0")
	t.Setenv("FUZZY_THRESHOLD", "-5")
	t.Setenv("CATALOG_STORE", "redis")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"RATE_BURST", "FUZZY_THRESHOLD", "CATALOG_STORE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad_LogLevelNames(t *testing.T) {
	for in, want := range map[string]string{"WARNING": "warn", "trace": "trace", "off": "off"} {
		t.Setenv("LOG_LEVEL", in)
		cfg, err := Load()
		if err != nil || cfg.LogLevel != want {
			t.Fatalf("LOG_LEVEL=%s: got %q err=%v", in, cfg.LogLevel, err)
		}
	}
}
