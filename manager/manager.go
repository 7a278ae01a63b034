package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/pipeline"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/reactive"
	"github.com/archonhq/archon/roster"
	"github.com/archonhq/archon/roundtable"
)

// ArchitectureHierarchical is declared but has no implementation; selecting
// it succeeds, processing with it fails fast with ErrNotImplemented.
const ArchitectureHierarchical = "hierarchical"

// descriptions lists every declared architecture, implemented or not.
var descriptions = map[string]string{
	pipeline.ArchitectureName:   "Agents process the task one after another in a fixed order, each seeing all earlier analysis.",
	roundtable.ArchitectureName: "All agents discuss the task across fixed rounds and consensus points are extracted.",
	reactive.ArchitectureName:   "Agents react to events on a shared bus; publications cascade until the system quiesces.",
	ArchitectureHierarchical:    "Manager delegates to sub-teams (not implemented).",
}

// ProcessingResult is one completed run: the task, the architecture that
// handled it, the strategy payload and its derived views, and wall-clock
// timing.
type ProcessingResult struct {
	Architecture string         `json:"architecture"`
	Task         core.Task      `json:"task"`
	Payload      core.Result    `json:"payload"`
	Metadata     map[string]any `json:"metadata"`
	Summary      map[string]any `json:"summary"`
	Duration     time.Duration  `json:"duration"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Options configures a Manager.
type Options struct {
	// Logger receives selection and processing diagnostics.
	Logger logging.Logger

	// MaxEvents and MaxDepth are passed through to the reactive topology's
	// bus guards. Zero means the bus defaults.
	MaxEvents int
	MaxDepth  int
}

// Manager owns strategy selection and the processing history. A single mutex
// serializes ProcessTask, so the lazily cached strategy instances and the
// history are never concurrently mutated; concurrent callers simply queue.
type Manager struct {
	team      *roster.Roster
	generator provider.Generator
	opts      Options
	builders  map[string]func() core.Strategy

	mu         sync.Mutex
	current    string
	strategies map[string]core.Strategy
	history    []ProcessingResult
}

// New constructs a Manager with the sequential architecture selected.
func New(team *roster.Roster, generator provider.Generator, optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	m := &Manager{
		team:       team,
		generator:  generator,
		opts:       opts,
		current:    pipeline.ArchitectureName,
		strategies: make(map[string]core.Strategy),
	}

	m.builders = map[string]func() core.Strategy{
		pipeline.ArchitectureName: func() core.Strategy {
			return pipeline.New(m.team, m.generator, func(o *pipeline.Options) { o.Logger = m.opts.Logger })
		},
		roundtable.ArchitectureName: func() core.Strategy {
			return roundtable.New(m.team, m.generator, func(o *roundtable.Options) { o.Logger = m.opts.Logger })
		},
		reactive.ArchitectureName: func() core.Strategy {
			return reactive.NewSystem(m.team, m.generator, func(o *reactive.Options) {
				o.Logger = m.opts.Logger
				o.MaxEvents = m.opts.MaxEvents
				o.MaxDepth = m.opts.MaxDepth
			})
		},
	}

	return m
}

// SetArchitecture switches the active architecture. Unknown names return
// ErrInvalidArchitecture and leave the current selection unchanged.
func (m *Manager) SetArchitecture(name string) error {
	if _, ok := descriptions[name]; !ok {
		return fmt.Errorf("%q: %w", name, core.ErrInvalidArchitecture)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = name
	m.opts.Logger.Info("architecture selected", "architecture", name)
	return nil
}

// CurrentArchitecture returns the active architecture name.
func (m *Manager) CurrentArchitecture() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Architectures returns the declared architecture names with descriptions.
func (m *Manager) Architectures() map[string]string {
	out := make(map[string]string, len(descriptions))
	for name, desc := range descriptions {
		out[name] = desc
	}
	return out
}

// ProcessTask runs the task through the active architecture and records the
// result. Strategy instances are built on first use and reused afterwards,
// which is what lets the round table keep its discussion history. On failure
// nothing is recorded.
func (m *Manager) ProcessTask(ctx context.Context, task core.Task) (*ProcessingResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == ArchitectureHierarchical {
		return nil, fmt.Errorf("%s: %w", ArchitectureHierarchical, core.ErrNotImplemented)
	}

	strategy, ok := m.strategies[m.current]
	if !ok {
		strategy = m.builders[m.current]()
		m.strategies[m.current] = strategy
	}

	start := time.Now()
	payload, err := strategy.Execute(ctx, task)
	elapsed := time.Since(start)

	if err != nil {
		var tpErr *core.TaskProcessingError
		if !errors.As(err, &tpErr) {
			err = &core.TaskProcessingError{Architecture: m.current, TaskID: task.ID, Err: err}
		}
		m.opts.Logger.Error("task processing failed", "architecture", m.current, "task_id", task.ID, "error", err.Error())
		return nil, err
	}

	result := ProcessingResult{
		Architecture: m.current,
		Task:         task,
		Payload:      payload,
		Metadata:     payload.Metadata(),
		Summary:      payload.Summary(),
		Duration:     elapsed,
		Timestamp:    start.UTC(),
	}
	m.history = append(m.history, result)

	m.opts.Logger.Info("task processed", "architecture", m.current, "task_id", task.ID, "duration", elapsed.String())
	return &result, nil
}

// History returns the most recent limit results, oldest first. A limit of
// zero returns everything. The returned slice is a copy.
func (m *Manager) History(limit int) []ProcessingResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.history
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]ProcessingResult, len(records))
	copy(out, records)
	return out
}

// ArchitectureStats aggregates the processing history of one architecture.
type ArchitectureStats struct {
	TasksProcessed  int           `json:"tasks_processed"`
	TotalDuration   time.Duration `json:"total_duration"`
	AverageDuration time.Duration `json:"average_duration"`
}

// ComparePerformance aggregates the history per architecture. With no
// processed tasks it returns ErrNoHistory.
func (m *Manager) ComparePerformance() (map[string]ArchitectureStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return nil, core.ErrNoHistory
	}

	stats := make(map[string]ArchitectureStats)
	for _, r := range m.history {
		s := stats[r.Architecture]
		s.TasksProcessed++
		s.TotalDuration += r.Duration
		stats[r.Architecture] = s
	}
	for name, s := range stats {
		s.AverageDuration = s.TotalDuration / time.Duration(s.TasksProcessed)
		stats[name] = s
	}
	return stats, nil
}
