package core

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventType categorizes the facts agents publish onto the bus. The set is
// closed; reaction rule tables and subscription tables key off these values.
type EventType string

const (
	EventTaskCreated         EventType = "task_created"
	EventAnalysisComplete    EventType = "analysis_complete"
	EventConcernRaised       EventType = "concern_raised"
	EventApprovalNeeded      EventType = "approval_needed"
	EventImplementationReady EventType = "implementation_ready"
	EventTestingRequired     EventType = "testing_required"
	EventReviewRequested     EventType = "review_requested"
)

// SystemSource is the synthetic author of the initial event that seeds a
// reactive run.
const SystemSource = "system"

// Event is the primary unit of communication between reactive agents. After
// publication it should be treated as immutable. It captures:
//   - Correlation (ID, Source)
//   - Classification (Type)
//   - Conversational payload (free-form key/value data)
//   - Delivery scope (Targets; empty means broadcast)
//   - High precision UTC timestamp
//
// Depth tracks the causal distance from the run's initial event and is used
// by the bus to bound cascades.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
	Targets   []string       `json:"targets,omitempty"`
	Depth     int            `json:"depth"`
}

// NewEvent creates an event authored by source with a generated id and UTC
// timestamp. Targets may be omitted for a broadcast.
func NewEvent(eventType EventType, source string, payload map[string]any, targets ...string) Event {
	return Event{
		ID:        NewID(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
		Targets:   targets,
	}
}

// NewID generates a new unique identifier for events and processing records.
func NewID() string { return uuid.NewString() }

// IsBroadcast reports whether the event is addressed to every subscriber of
// its type rather than an explicit recipient set.
func (e Event) IsBroadcast() bool { return len(e.Targets) == 0 }

// DeliverableTo reports whether the event may be handed to the given agent:
// broadcasts reach every subscriber, targeted events only the listed ids.
// An agent never receives its own events regardless of targeting.
func (e Event) DeliverableTo(agentID string) bool {
	if e.Source == agentID {
		return false
	}
	if e.IsBroadcast() {
		return true
	}
	return slices.Contains(e.Targets, agentID)
}
