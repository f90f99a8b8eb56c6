package inventory

import "errors"

var (
	// ErrInvalidInput indicates a malformed weight, count or date supplied by the user.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidBottleSpec indicates a catalog bottle whose full weight does not exceed its tare.
	ErrInvalidBottleSpec = errors.New("invalid bottle spec")

	// ErrEmptySession indicates an attempt to close a session without items or a start time.
	ErrEmptySession = errors.New("empty session")

	// ErrDuplicateCatalogKey indicates the derived catalog key already exists.
	ErrDuplicateCatalogKey = errors.New("duplicate catalog key")

	// ErrStorageCorrupt indicates a persisted slot failed shape validation.
	ErrStorageCorrupt = errors.New("storage corrupt")
)
