package booksearch

import "errors"

// Sentinel errors returned by the client. Use errors.Is() to check.
var (
	// ErrSearchFailed reports a server-side search failure (HTTP 500).
	ErrSearchFailed = errors.New("booksearch: search failed")
	// ErrUnauthorized reports a rejected or missing API key (HTTP 401).
	ErrUnauthorized = errors.New("booksearch: unauthorized")
	// ErrUnavailable reports a failing server health check (HTTP 503).
	ErrUnavailable = errors.New("booksearch: service unavailable")
)
