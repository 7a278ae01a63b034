package core

import "context"

// Strategy is one interchangeable interaction topology. Implementations must
// be safely callable repeatedly on the same instance; state that persists
// between calls (or deliberately does not) is part of each implementation's
// documented lifetime contract.
type Strategy interface {
	// Name returns the architecture identifier this strategy registers under.
	Name() string

	// Execute drives one task through the topology. On unrecoverable internal
	// failure it returns an error and no partial result.
	Execute(ctx context.Context, task Task) (Result, error)
}

// Result is the opaque outcome of one strategy execution. Every topology
// produces its own concrete payload; the uniform accessors let the manager
// derive metadata and summaries without branching on the architecture.
type Result interface {
	// Metadata returns architecture-specific derived figures (stage counts,
	// round counts, event counts and so on).
	Metadata() map[string]any

	// Summary returns a compact description of the payload suitable for
	// export and API responses.
	Summary() map[string]any
}
