// Package pipeline implements the sequential topology: roster members
// process the task one after another in a fixed order, each stage receiving
// the accumulated context of every earlier stage. The task itself is never
// mutated; stages enrich a per-run copy.
package pipeline
