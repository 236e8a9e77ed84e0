package solver

import "errors"

var (
	// ErrBlueprintIO is returned when a blueprint file cannot be written, or
	// exists but cannot be read or decoded; a missing file is not an error.
	// Callers typically downgrade a load failure to a warning and start from
	// an empty store.
	ErrBlueprintIO = errors.New("solver: blueprint io")

	// ErrInvalidHistory is returned when an observed action history names a
	// transition the state machine does not allow.
	ErrInvalidHistory = errors.New("solver: invalid history")

	// ErrCapacityExceeded is returned when the hub cannot hand out or take
	// back a branch within its retry budget. It indicates a configuration
	// problem (reserve too close to the branch count), not transient load.
	ErrCapacityExceeded = errors.New("solver: dispatcher capacity exceeded")
)
