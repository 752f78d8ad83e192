package domain

import "errors"

// Sentinel errors for engine operations
var (
	// ErrNoServer indicates no population was selected for the batch
	ErrNoServer = errors.New("no auction house server selected")

	// ErrFetchFailed indicates the page request returned a non-success status
	ErrFetchFailed = errors.New("auction house request failed")
)
