package core

import "errors"

// The three failure kinds this package produces itself. Upstream transport
// failures pass through unwrapped in any of these and are a fourth,
// distinguishable kind.
var (
	ErrInvalidRatingKey = errors.New("invalid rating key")
	ErrNotFound         = errors.New("metadata not found")
	ErrUnsupported      = errors.New("operation not supported for this entity type")
)
