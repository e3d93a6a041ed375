// Package store defines errors shared by the catalog and document stores.
package store

import "errors"

// Sentinel errors returned by both stores. Services translate these into
// user-facing domain errors; the stores themselves stay transport-agnostic.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)
