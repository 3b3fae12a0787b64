// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing business or place.
	ErrNotFound = errors.New("not found")
	// ErrNoData marks a data directory with neither a consolidated plaza
	// file nor an index file. There is nothing to display.
	ErrNoData = errors.New("no plaza data")
	// ErrUnavailable marks a live-data source that cannot serve right now
	// (missing API key, upstream failure). Callers fall back to static data.
	ErrUnavailable = errors.New("live data unavailable")
)
