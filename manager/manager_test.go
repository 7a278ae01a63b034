package manager

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

var authTask = core.Task{ID: "T-1001", Title: "Auth", Description: "Implement secure login", Priority: "high"}

func newManager() *Manager {
	return New(roster.DefaultTeam(), provider.NewMock())
}

func TestManager_DefaultsToSequential(t *testing.T) {
	m := newManager()
	assert.Equal(t, "sequential", m.CurrentArchitecture())
}

func TestManager_SetArchitecture(t *testing.T) {
	m := newManager()

	for _, name := range []string{"round_table", "reactive", "hierarchical", "sequential"} {
		require.NoError(t, m.SetArchitecture(name))
		assert.Equal(t, name, m.CurrentArchitecture())
	}
}

func TestManager_SetArchitectureUnknownLeavesSelection(t *testing.T) {
	m := newManager()
	require.NoError(t, m.SetArchitecture("round_table"))

	err := m.SetArchitecture("blockchain")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidArchitecture)
	assert.Contains(t, err.Error(), "blockchain")
	assert.Equal(t, "round_table", m.CurrentArchitecture())
}

func TestManager_ProcessTaskRecordsHistory(t *testing.T) {
	m := newManager()

	result, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)
	assert.Equal(t, "sequential", result.Architecture)
	assert.Equal(t, authTask, result.Task)
	assert.NotNil(t, result.Payload)
	assert.Equal(t, 6, result.Metadata["pipeline_stages"])
	assert.False(t, result.Timestamp.IsZero())

	history := m.History(0)
	require.Len(t, history, 1)
	assert.Equal(t, result.Task.ID, history[0].Task.ID)
}

func TestManager_HierarchicalFailsFast(t *testing.T) {
	m := newManager()
	_, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)

	require.NoError(t, m.SetArchitecture("hierarchical"))
	_, err = m.ProcessTask(context.Background(), authTask)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotImplemented)

	// The failed attempt leaves the history exactly as it was.
	assert.Len(t, m.History(0), 1)
}

func TestManager_StrategyFailureRecordsNothing(t *testing.T) {
	m := newManager()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ProcessTask(ctx, authTask)
	require.Error(t, err)

	var tpErr *core.TaskProcessingError
	require.ErrorAs(t, err, &tpErr)
	assert.Equal(t, "sequential", tpErr.Architecture)
	assert.Empty(t, m.History(0))
}

func TestManager_StrategyInstancesAreCached(t *testing.T) {
	m := newManager()
	require.NoError(t, m.SetArchitecture("round_table"))

	_, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)
	_, err = m.ProcessTask(context.Background(), core.Task{ID: "T-2", Title: "Search"})
	require.NoError(t, err)

	// Switching away and back must reuse the same instance, so the round
	// table still remembers both discussions.
	require.NoError(t, m.SetArchitecture("sequential"))
	require.NoError(t, m.SetArchitecture("round_table"))
	result, err := m.ProcessTask(context.Background(), core.Task{ID: "T-3", Title: "Billing"})
	require.NoError(t, err)
	assert.Equal(t, "round_table", result.Architecture)
	assert.Len(t, m.History(0), 3)
}

func TestManager_HistoryLimit(t *testing.T) {
	m := newManager()
	for _, id := range []string{"T-1", "T-2", "T-3"} {
		_, err := m.ProcessTask(context.Background(), core.Task{ID: id, Title: id})
		require.NoError(t, err)
	}

	recent := m.History(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "T-2", recent[0].Task.ID)
	assert.Equal(t, "T-3", recent[1].Task.ID)

	assert.Len(t, m.History(0), 3)
	assert.Len(t, m.History(10), 3)
}

func TestManager_ComparePerformance(t *testing.T) {
	m := newManager()

	_, err := m.ComparePerformance()
	assert.ErrorIs(t, err, core.ErrNoHistory)

	_, err = m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)
	require.NoError(t, m.SetArchitecture("reactive"))
	_, err = m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)
	_, err = m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)

	stats, err := m.ComparePerformance()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats["sequential"].TasksProcessed)
	assert.Equal(t, 2, stats["reactive"].TasksProcessed)
	assert.Equal(t, stats["reactive"].TotalDuration/2, stats["reactive"].AverageDuration)
}

func TestManager_Architectures(t *testing.T) {
	m := newManager()
	archs := m.Architectures()

	assert.Len(t, archs, 4)
	for _, name := range []string{"sequential", "round_table", "reactive", "hierarchical"} {
		assert.NotEmpty(t, archs[name], "missing description for %s", name)
	}
}

func TestManager_ExportMarkdown(t *testing.T) {
	m := newManager()
	require.NoError(t, m.SetArchitecture("reactive"))

	result, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)

	report, err := m.Export(result, "markdown")
	require.NoError(t, err)
	assert.Contains(t, report, "Auth")
	assert.Contains(t, report, "reactive")
	assert.Contains(t, report, "## Metrics")
	assert.Contains(t, report, "total_events")
}

func TestManager_ExportJSON(t *testing.T) {
	m := newManager()

	result, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)

	out, err := m.Export(result, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"architecture": "sequential"`)
	assert.Contains(t, out, `"title": "Auth"`)
}

func TestManager_ExportUnknownFormat(t *testing.T) {
	m := newManager()
	result, err := m.ProcessTask(context.Background(), authTask)
	require.NoError(t, err)

	_, err = m.Export(result, "xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "xml")
}

func TestManager_ConcurrentProcessTask(t *testing.T) {
	m := newManager()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.ProcessTask(context.Background(), authTask)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, m.History(0), 8)
}
