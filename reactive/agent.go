package reactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/archonhq/archon/bus"
	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

// roleSubscriptions maps a member id to the event types it reacts to. Roster
// members without an entry default to the minimal task_created subscription.
var roleSubscriptions = map[string][]core.EventType{
	"manager":       {core.EventConcernRaised, core.EventApprovalNeeded},
	"product_owner": {core.EventTaskCreated, core.EventReviewRequested},
	"tech_lead":     {core.EventTaskCreated, core.EventConcernRaised, core.EventReviewRequested},
	"qa_engineer":   {core.EventImplementationReady, core.EventTestingRequired},
	"developer_1":   {core.EventImplementationReady, core.EventReviewRequested},
	"developer_2":   {core.EventImplementationReady, core.EventReviewRequested},
}

const (
	reactionMaxTokens   = 800
	reactionTemperature = 0.7
)

// Agent reacts to delivered events on behalf of one roster member. Its
// subscription set is derived once from the role table and is immutable for
// the agent's lifetime.
type Agent struct {
	member        roster.Member
	subscriptions []core.EventType
	developerIDs  []string
	generator     provider.Generator
	logger        logging.Logger
}

// NewAgent constructs the reactive agent for a roster member. developerIDs
// lists the roster's developer members; the tech lead targets them when it
// requests reviews.
func NewAgent(member roster.Member, developerIDs []string, generator provider.Generator, logger logging.Logger) *Agent {
	subs, ok := roleSubscriptions[member.ID]
	if !ok {
		subs = []core.EventType{core.EventTaskCreated}
	}

	return &Agent{
		member:        member,
		subscriptions: subs,
		developerIDs:  developerIDs,
		generator:     generator,
		logger:        logger,
	}
}

// ID returns the roster member id this agent acts for.
func (a *Agent) ID() string { return a.member.ID }

// Subscriptions returns the agent's fixed subscription set.
func (a *Agent) Subscriptions() []core.EventType {
	out := make([]core.EventType, len(a.subscriptions))
	copy(out, a.subscriptions)
	return out
}

// Attach registers the agent's handler on a bus for every subscribed event
// type. The context is bound for the lifetime of the run.
func (a *Agent) Attach(ctx context.Context, b *bus.Bus) {
	for _, eventType := range a.subscriptions {
		b.Subscribe(eventType, a.member.ID, func(e core.Event) {
			a.handleEvent(ctx, b, e)
		})
	}
}

// handleEvent reacts to one delivered event: generate a structured reaction
// (falling back deterministically on any provider failure) and publish the
// triggered follow-up events.
func (a *Agent) handleEvent(ctx context.Context, b *bus.Bus, event core.Event) {
	// The bus already suppresses self-delivery; keep the guard local too so
	// the agent stays correct against any dispatcher.
	if event.Source == a.member.ID {
		return
	}

	reaction := a.react(ctx, event)

	for _, triggered := range a.triggeredEvents(event, reaction) {
		if err := b.Publish(triggered); err != nil {
			a.logger.Debug("triggered event not published", "agent", a.member.ID, "event_type", triggered.Type, "error", err.Error())
		}
	}
}

// react calls the generator and parses its structured output. Failure or a
// schema violation yields the deterministic per-role fallback; this path
// never errors.
func (a *Agent) react(ctx context.Context, event core.Event) Reaction {
	resp, err := a.generator.Generate(ctx, provider.Request{
		Prompt:      a.reactionPrompt(event),
		Role:        a.member.Role,
		MaxTokens:   reactionMaxTokens,
		Temperature: reactionTemperature,
	})
	if err != nil {
		a.logger.Warn("generator failed, using fallback reaction", "agent", a.member.ID, "event_type", event.Type, "error", err.Error())
		return fallbackReaction(a.member.ID, a.member.Role)
	}

	reaction, err := parseReaction(resp.Text)
	if err != nil {
		schemaErr := &core.ProviderError{Provider: a.generator.Name(), Err: err}
		a.logger.Warn("generator output rejected, using fallback reaction", "agent", a.member.ID, "event_type", event.Type, "error", schemaErr.Error())
		return fallbackReaction(a.member.ID, a.member.Role)
	}

	return reaction
}

// reactionPrompt builds the role-specific prompt embedding the event and the
// member's identity.
func (a *Agent) reactionPrompt(event core.Event) string {
	var sb strings.Builder

	sb.WriteString(a.member.PersonalityPrompt)
	sb.WriteString("\n\n**Event Alert:**\n")
	fmt.Fprintf(&sb, "- **Event Type:** %s\n", event.Type)
	fmt.Fprintf(&sb, "- **From:** %s\n", event.Source)
	fmt.Fprintf(&sb, "- **Time:** %s\n", event.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "- **Event Data:** %v\n", event.Payload)
	fmt.Fprintf(&sb, "\n**Your Role:** %s\n", a.member.Role)
	fmt.Fprintf(&sb, "**Your Capabilities:** %s\n", strings.Join(a.member.Capabilities, ", "))
	sb.WriteString(`
**Instructions:**
React to this event from your role's perspective. Consider:
1. Is this event relevant to your responsibilities?
2. What action (if any) should you take?
3. Do you need to alert other team members?
4. Are there any concerns or recommendations?

Respond with a single JSON object:
{
  "relevance": "high|medium|low",
  "response": "Your detailed reaction",
  "action_needed": true,
  "alert_team": ["agent_id"],
  "concerns": ["concern"],
  "recommendations": ["recommendation"]
}
`)

	return sb.String()
}

// triggeredEvents derives follow-up events from the fixed rule table keyed by
// (member id, incoming event type). Independently of the table, any reaction
// carrying concerns raises a concern event targeted at the manager.
func (a *Agent) triggeredEvents(event core.Event, reaction Reaction) []core.Event {
	var triggered []core.Event

	switch {
	case a.member.ID == "tech_lead" && event.Type == core.EventTaskCreated:
		triggered = append(triggered, core.NewEvent(
			core.EventReviewRequested,
			a.member.ID,
			map[string]any{
				"review_type":   "architecture",
				"original_task": event.Payload,
			},
			a.developerIDs...,
		))

	case a.member.ID == "qa_engineer" && event.Type == core.EventImplementationReady:
		triggered = append(triggered, core.NewEvent(
			core.EventTestingRequired,
			a.member.ID,
			map[string]any{
				"testing_scope":          "full regression",
				"implementation_details": event.Payload,
			},
		))
	}

	if len(reaction.Concerns) > 0 {
		triggered = append(triggered, core.NewEvent(
			core.EventConcernRaised,
			a.member.ID,
			map[string]any{
				"concerns": reaction.Concerns,
				"context":  event.Payload,
			},
			"manager",
		))
	}

	return triggered
}
