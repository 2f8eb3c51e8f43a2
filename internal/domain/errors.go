package domain

import "errors"

var (
	// ErrInvalidConstraint marks a malformed constraint set (inverted
	// ranges, unknown category keys, too many favorites). Reported to the
	// caller as a rejected request, never silently corrected.
	ErrInvalidConstraint = errors.New("invalid constraint")

	// ErrEmptyCatalog means the catalog snapshot is empty or was never
	// loaded. Surfaces as service-unavailable; retry is the caller's
	// responsibility.
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrGameNotFound means a requested favorite id is not in the catalog.
	ErrGameNotFound = errors.New("game not found")

	// ErrComputation marks a non-finite score escaping the scorer. This is
	// a defect under valid inputs; the stddev clamp in the favorite
	// profile exists to prevent it.
	ErrComputation = errors.New("scoring computation error")
)
