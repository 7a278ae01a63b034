// Package reactive implements the event-driven topology: one reactive agent
// per roster member, each holding a fixed role-derived subscription set, all
// sharing one event bus per run. Agents react to delivered events by calling
// the response generator and publish any triggered follow-up events, fanning
// the cascade out through the bus work queue.
//
// Generator failures and schema violations never surface: every agent falls
// back to a deterministic per-role canned reaction so a degraded provider
// only shortens responses, it never fails the run.
package reactive
