// Package httpapi wires the HTTP transport (Gin) to the catalog service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, redacted logging, panic recovery, compression,
// metrics, rate limiting, CORS, and security headers.
//
// The API is read-only apart from POST /highlight, which is a pure function
// of its body; every catalog read is served from an immutable snapshot and is
// cacheable through weak ETags.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-taxcode-search/internal/config"
	"github.com/tbourn/go-taxcode-search/internal/http/handlers"
	"github.com/tbourn/go-taxcode-search/internal/http/middleware"
)

// maxBodyBytes caps request bodies; only POST /highlight reads one.
const maxBodyBytes = 256 << 10

// probePaths are never rate limited.
var probePaths = []string{"/health", "/metrics"}

// RegisterRoutes attaches all middleware and HTTP endpoints to r and mounts
// the public API under cfg.APIBasePath. db is the catalog store and may be
// nil when the catalog is served from memory.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Catalog version header (read by the access log)
//  4. RedactingLogger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. gzip
//  8. Metrics
//  9. Rate limiter (per client/IP, probes exempt)
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, svc handlers.CatalogService, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.CatalogVersion(svc.Version()))
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	// Search pages repeat long Portuguese descriptions and compress well.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientOrIP()).
		Exempt(probePaths...)
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS)...)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		CacheControl: "no-cache",
		EnablePolicy: true,
		Expose:       []string{"ETag", "X-Catalog-Version"},
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "catalog_version": svc.Version()})
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svc, db)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Search
		api.GET("/search", h.Search)
		api.GET("/autocomplete", h.Autocomplete)
		api.POST("/highlight", h.Highlight)

		// Catalog
		api.GET("/items/:code", h.GetItem)
		api.GET("/groups", h.ListGroups)
		api.GET("/categories", h.ListCategories)
		api.GET("/subcategories", h.ListSubCategories)
		api.GET("/filters", h.FilterOptions)
		api.GET("/filters/counts", h.FacetCounts)
		api.GET("/stats", h.Stats)

		// Classifications
		api.GET("/classifications/:code", h.GetClassification)
		api.GET("/families", h.ListFamilies)
	}
}

// corsMiddleware returns the CORS posture: allow any origin when none is
// configured, otherwise echo allow-listed origins.
func corsMiddleware(cfg config.CORSConfig) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match", "X-Client-ID", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "X-Catalog-Version", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			// ACAO: * even without an Origin header (simple health checks).
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = cfg.AllowedOrigins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader;
// reads beyond the cap fail downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
