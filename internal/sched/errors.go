package sched

import "errors"

// Sentinel errors for the admission/creation path. Callers compare with
// errors.Is.
var (
	// ErrInvalidParameters is returned when C<1, D<C, or T<D.
	ErrInvalidParameters = errors.New("edf: invalid task parameters")
	// ErrRegistryFull is returned when the registry is at capacity.
	ErrRegistryFull = errors.New("edf: registry out of capacity")
	// ErrNotSchedulable is returned when admission math rejects the
	// candidate joined with the existing registry.
	ErrNotSchedulable = errors.New("edf: candidate set is not schedulable")
	// ErrUnknownTask is returned by Registry.Remove/Get for a handle not
	// present in the registry.
	ErrUnknownTask = errors.New("edf: unknown task handle")
)
