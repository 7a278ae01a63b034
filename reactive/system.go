package reactive

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/archonhq/archon/bus"
	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

// ArchitectureName is the identifier this strategy registers under.
const ArchitectureName = "reactive"

// Options configures the reactive system.
type Options struct {
	// MaxEvents and MaxDepth configure the per-run bus guards.
	MaxEvents int
	MaxDepth  int

	// SettleWait is an additional wait after the cascade drains. With the
	// queue-based bus quiescence is structural, so this is a safety net for
	// generators that spawn background work; it defaults to zero.
	SettleWait time.Duration

	// Logger receives run diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// System wires one event bus and one reactive agent per roster member
// together and drives tasks through the reactive topology. Each Execute call
// gets a fresh bus, so event history never leaks between unrelated tasks;
// the agents themselves are constructed once and reused.
type System struct {
	agents []*Agent
	opts   Options

	mu          sync.Mutex
	lastHistory []core.Event
}

// NewSystem constructs the reactive topology over a roster.
func NewSystem(team *roster.Roster, generator provider.Generator, optFns ...func(o *Options)) *System {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	var developerIDs []string
	for _, m := range team.Members {
		if strings.HasPrefix(m.ID, "developer") {
			developerIDs = append(developerIDs, m.ID)
		}
	}

	agents := make([]*Agent, 0, team.Size())
	for _, m := range team.Members {
		agents = append(agents, NewAgent(m, developerIDs, generator, opts.Logger))
	}

	return &System{agents: agents, opts: opts}
}

// Name implements core.Strategy.
func (s *System) Name() string { return ArchitectureName }

// Execute implements core.Strategy. It publishes the initial task_created
// event from the synthetic system source and returns the full event history
// once the cascade has drained.
func (s *System) Execute(ctx context.Context, task core.Task) (core.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := bus.New(func(o *bus.Options) {
		o.MaxEvents = s.opts.MaxEvents
		o.MaxDepth = s.opts.MaxDepth
		o.Logger = s.opts.Logger
	})

	for _, agent := range s.agents {
		agent.Attach(ctx, b)
	}

	initial := core.NewEvent(core.EventTaskCreated, core.SystemSource, task.Context())

	s.opts.Logger.Info("starting reactive processing", "task_id", task.ID, "title", task.Title)

	if err := b.Publish(initial); err != nil {
		return nil, &core.TaskProcessingError{Architecture: ArchitectureName, TaskID: task.ID, Err: err}
	}

	if s.opts.SettleWait > 0 {
		select {
		case <-time.After(s.opts.SettleWait):
		case <-ctx.Done():
		}
	}

	history := b.History()

	s.mu.Lock()
	s.lastHistory = history
	s.mu.Unlock()

	return &Outcome{Task: task, Events: history}, nil
}

// SystemState returns a read-only observability projection over the most
// recent run: event counts, the distinct event types present, the active
// agent ids and the last five events.
func (s *System) SystemState() map[string]any {
	s.mu.Lock()
	history := s.lastHistory
	s.mu.Unlock()

	agentIDs := make([]string, len(s.agents))
	for i, a := range s.agents {
		agentIDs[i] = a.ID()
	}

	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	recentViews := make([]map[string]any, len(recent))
	for i, e := range recent {
		recentViews[i] = map[string]any{
			"type":      string(e.Type),
			"source":    e.Source,
			"timestamp": e.Timestamp.Format(time.RFC3339),
		}
	}

	return map[string]any{
		"total_events":  len(history),
		"event_types":   distinctTypes(history),
		"active_agents": agentIDs,
		"recent_events": recentViews,
	}
}

// Outcome is the reactive strategy's result payload: the complete ordered
// event history of one run.
type Outcome struct {
	Task   core.Task    `json:"task"`
	Events []core.Event `json:"events"`
}

// Metadata implements core.Result.
func (o *Outcome) Metadata() map[string]any {
	return map[string]any{
		"total_events": len(o.Events),
		"event_types":  distinctTypes(o.Events),
	}
}

// Summary implements core.Result.
func (o *Outcome) Summary() map[string]any {
	return map[string]any{
		"type":             "reactive_system",
		"events_processed": len(o.Events),
		"event_types":      distinctTypes(o.Events),
	}
}

// distinctTypes returns the distinct event types in first-seen order.
func distinctTypes(events []core.Event) []string {
	seen := make(map[core.EventType]bool, len(events))
	var out []string
	for _, e := range events {
		if !seen[e.Type] {
			seen[e.Type] = true
			out = append(out, string(e.Type))
		}
	}
	return out
}
