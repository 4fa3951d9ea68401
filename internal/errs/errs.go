package errs

import "errors"

// Sentinel errors mapped to HTTP status codes in handlers.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrUnknownLanguage  = errors.New("unknown language")
	ErrCompileFailed    = errors.New("compile request failed")
)
