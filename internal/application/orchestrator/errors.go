package orchestrator

import "errors"

var (
	// ErrUnknownCollection is returned when an operation references a
	// collection that was never registered.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotConnected is returned when neither backing layer is reachable.
	ErrNotConnected = errors.New("not connected to any backing layer")
	// ErrStoreUnavailable is returned when the fast layer missed and the
	// durable store is unreachable too.
	ErrStoreUnavailable = errors.New("durable store unavailable")
	// ErrSchemaViolation is returned when a write targets an undeclared field
	// or a value whose runtime type disagrees with the declared field type.
	ErrSchemaViolation = errors.New("schema violation")
)
