package domain

import "errors"

var (
	// ErrSearchFailed signals a failed catalog search. The underlying
	// database error is carried in the wrapped message and logged
	// server-side; it is never sent to the caller.
	ErrSearchFailed = errors.New("search failed")
)
