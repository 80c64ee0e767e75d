// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Page describes one window of a result list.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

// Paginate returns the requested window of items. page < 1 selects the first
// page; pageSize <= 0 selects defSize and is capped at maxSize when maxSize > 0.
// A page past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize, defSize, maxSize int) ([]T, Page) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defSize
	}
	if maxSize > 0 && pageSize > maxSize {
		pageSize = maxSize
	}
	if pageSize <= 0 {
		pageSize = 1
	}

	total := len(items)
	meta := Page{Page: page, PageSize: pageSize, Total: total}
	if total > 0 {
		meta.Pages = (total-1)/pageSize + 1
	}

	// Checked before multiplying so a huge page cannot overflow.
	if page-1 >= meta.Pages {
		return []T{}, meta
	}
	start := (page - 1) * pageSize
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	return items[start:end], meta
}
