// Package bus implements the typed publish/subscribe core of the reactive
// topology: subscriber registration by event type, an ordered append-only
// event history and targeted delivery.
//
// Delivery runs off an explicit FIFO work queue rather than recursing into
// nested publishes, so one reaction cascade cannot starve sibling
// subscribers and termination is structurally guaranteed by the event-count
// and causal-depth guards. The wall-clock settle timeout used by callers is
// a last-resort safety net, never the primary termination mechanism.
package bus
