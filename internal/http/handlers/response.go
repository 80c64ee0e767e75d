// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities shared by every endpoint: the
// structured error envelope, JSON success writes, and weak-ETag conditional
// responses for catalog reads. The catalog is immutable once loaded, so a
// single version string identifies every read-only representation.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "invalid_mode",
//	  "message": "mode must be one of: contains, exact, fuzzy, pattern"
//	}
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-taxcode-search/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"item not found"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger. Any ETag set earlier is dropped;
// only successful bodies carry one.
func fail(c *gin.Context, status int, code, msg string) {
	c.Writer.Header().Del("ETag")
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// WeakETag builds the validator for a representation of catalog version.
// scope distinguishes endpoints whose bodies differ for the same version.
func WeakETag(scope, version string) string {
	return `W/"` + scope + ":" + version + `"`
}

// notModified sets ETag and reports whether If-None-Match already names it,
// in which case a 304 has been written and the handler must return. Tags
// compare weakly: W/"x" and "x" match.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	inm := c.GetHeader("If-None-Match")
	if inm == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, cand := range strings.Split(inm, ",") {
		cand = strings.TrimSpace(cand)
		if cand == "*" || strings.TrimPrefix(cand, "W/") == want {
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}
