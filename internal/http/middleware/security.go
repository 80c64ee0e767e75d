// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware for a JSON API
// behind a reverse proxy: baseline browser protections, opt-in HSTS, a
// configurable Cache-Control directive, and exposure of the correlation and
// validator headers (X-Request-ID, ETag, X-Catalog-Version) to browser
// clients. No CSP is sent since the API never serves HTML; the Swagger UI
// sets its own.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures the headers emitted by SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS bool          // set true only when traffic is HTTPS end-to-end
	HSTSMaxAge time.Duration // defaults to 180 days when <= 0

	// CacheControl, when set, is sent verbatim. "no-store" also sends the
	// legacy Pragma/Expires pair. Catalog reads use "no-cache" so clients
	// revalidate with If-None-Match instead of refetching bodies.
	CacheControl string

	EnablePolicy bool // Permissions-Policy and X-Permitted-Cross-Domain-Policies

	// Expose lists extra response headers readable by browser scripts.
	// X-Request-ID is always exposed when present.
	Expose []string
}

// SecurityHeaders returns a Gin middleware that adds the configured security
// headers to each response. HSTS is only sent on HTTPS requests, detected
// directly or through X-Forwarded-Proto.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.CacheControl != "" {
			h.Set("Cache-Control", opt.CacheControl)
			if opt.CacheControl == "no-store" {
				h.Set("Pragma", "no-cache")
				h.Set("Expires", "0")
			}
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}
		for _, name := range opt.Expose {
			exposeHeader(h, name)
		}

		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers unless the list
// already carries it (header names compare case-insensitively).
func exposeHeader(h http.Header, name string) {
	const hdr = "Access-Control-Expose-Headers"
	cur := h.Get(hdr)
	if cur == "" {
		h.Set(hdr, name)
		return
	}
	for _, v := range strings.Split(cur, ",") {
		if strings.EqualFold(strings.TrimSpace(v), name) {
			return
		}
	}
	h.Set(hdr, cur+", "+name)
}

// isHTTPS reports whether the request used HTTPS directly (r.TLS != nil) or
// via a reverse proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
