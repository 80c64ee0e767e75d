// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// the search-specific ones tell a client which request parameter to fix.
// Clients are expected to branch on these codes rather than on messages.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"
	ErrCodeUnavailable = "unavailable"

	// Search-specific:
	ErrCodeQueryTooLong     = "query_too_long"
	ErrCodeInvalidMode      = "invalid_mode"
	ErrCodeInvalidSort      = "invalid_sort"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
