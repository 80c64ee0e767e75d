// Package services holds the application layer over the search engine: it
// owns the loaded catalog, validates requests, and composes engine operations
// into the results served over HTTP, the CLI and MCP. This file centralizes
// service-level error values so callers can map them consistently.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrQueryTooLong is returned when a query exceeds the configured rune cap.
	ErrQueryTooLong = errors.New("query too long")

	// ErrInvalidMode is returned for an unknown search mode.
	ErrInvalidMode = errors.New("invalid search mode")

	// ErrInvalidSort is returned for an unknown sort key.
	ErrInvalidSort = errors.New("invalid sort key")

	// ErrItemNotFound indicates that no service item has the requested legal code.
	ErrItemNotFound = errors.New("item not found")

	// ErrNoCatalog is returned by Bootstrap when neither a catalog document
	// nor a stored catalog is available.
	ErrNoCatalog = errors.New("no catalog available")

	// ErrUnknownStore is returned by Bootstrap for an unsupported store kind.
	ErrUnknownStore = errors.New("unknown catalog store")
)
