package ingest

import "errors"

var (
	// ErrVendorRepositoryRequired is returned when a vendor repository is not provided.
	ErrVendorRepositoryRequired = errors.New("vendor repository required")
)
