// Package archon provides a high-level façade over the orchestration manager
// and its pluggable topologies. Most applications interact with this package
// by:
//  1. Creating an Archon via New() (optionally overriding the roster,
//     generator and logger)
//  2. Selecting an architecture (sequential, round_table, reactive)
//  3. Processing tasks and inspecting history, performance and exports
//
// The façade delegates orchestration to manager.Manager while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a real generator backed
// by an LLM provider and a structured logger.
package archon

import (
	"context"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/manager"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

// Options configures the Archon instance.
type Options struct {
	// Team is the agent roster shared by every topology. Defaults to the
	// built-in six-member delivery team.
	Team *roster.Roster

	// Generator produces agent responses. Defaults to the deterministic
	// in-memory mock, which keeps examples and tests provider-free.
	Generator provider.Generator

	// MaxEvents and MaxDepth bound the reactive topology's event cascades.
	// Zero keeps the bus defaults.
	MaxEvents int
	MaxDepth  int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Archon is the high-level façade aggregating the manager and its strategies.
type Archon struct {
	opts    Options
	manager *manager.Manager
}

// New creates a new Archon instance with optional overrides. Any unset
// collaborator is initialized with its in-memory default.
func New(optFns ...func(o *Options)) *Archon {
	opts := Options{
		Team:      roster.DefaultTeam(),
		Generator: provider.NewMock(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	m := manager.New(opts.Team, opts.Generator, func(o *manager.Options) {
		o.Logger = opts.Logger
		o.MaxEvents = opts.MaxEvents
		o.MaxDepth = opts.MaxDepth
	})

	return &Archon{opts: opts, manager: m}
}

// Manager exposes the underlying manager for embedding, e.g. in the HTTP
// server.
func (a *Archon) Manager() *manager.Manager { return a.manager }

// SetArchitecture switches the active orchestration topology.
func (a *Archon) SetArchitecture(name string) error {
	return a.manager.SetArchitecture(name)
}

// CurrentArchitecture returns the active topology name.
func (a *Archon) CurrentArchitecture() string {
	return a.manager.CurrentArchitecture()
}

// Architectures lists the declared topologies with descriptions.
func (a *Archon) Architectures() map[string]string {
	return a.manager.Architectures()
}

// ProcessTask runs one task through the active topology.
func (a *Archon) ProcessTask(ctx context.Context, task core.Task) (*manager.ProcessingResult, error) {
	return a.manager.ProcessTask(ctx, task)
}

// History returns the most recent limit processing results (0 = all).
func (a *Archon) History(limit int) []manager.ProcessingResult {
	return a.manager.History(limit)
}

// ComparePerformance aggregates the processing history per architecture.
func (a *Archon) ComparePerformance() (map[string]manager.ArchitectureStats, error) {
	return a.manager.ComparePerformance()
}

// Export renders a processing result as "json" or "markdown".
func (a *Archon) Export(result *manager.ProcessingResult, format string) (string, error) {
	return a.manager.Export(result, format)
}
