// Package core provides the foundational domain types and interfaces used by
// Archon. It defines the core abstractions for:
//
//   - Tasks (caller-supplied work items routed through a topology)
//   - Events (immutable, typed, optionally targeted communication records)
//   - Strategies (interchangeable interaction topologies sharing one contract)
//   - Results (opaque strategy outputs with uniform metadata access)
//   - The error taxonomy shared by every layer
//
// The package intentionally keeps implementation concerns (event dispatch,
// concrete topologies, provider integrations) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
