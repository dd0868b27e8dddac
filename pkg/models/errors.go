package models

import "errors"

// ErrSourceUnavailable marks network or file I/O failures in the loader.
// Callers surface it without crashing and keep any previously loaded
// snapshot
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrSchemaMismatch marks a payload or file whose shape does not match the
// fixed schema: missing required column, unknown bucket/category, or counts
// that violate attempts >= makes >= 0
var ErrSchemaMismatch = errors.New("schema mismatch")
