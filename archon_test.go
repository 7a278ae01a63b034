package archon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

func TestNew_Defaults(t *testing.T) {
	a := New()

	assert.Equal(t, "sequential", a.CurrentArchitecture())
	assert.Len(t, a.Architectures(), 4)
	assert.Empty(t, a.History(0))
}

func TestArchon_EndToEndAcrossTopologies(t *testing.T) {
	a := New(func(o *Options) {
		o.Team = roster.DefaultTeam()
		o.Generator = provider.NewMock()
	})

	task := core.Task{ID: "T-1001", Title: "Auth", Description: "Implement secure login", Priority: "high"}

	for _, name := range []string{"sequential", "round_table", "reactive"} {
		require.NoError(t, a.SetArchitecture(name))
		result, err := a.ProcessTask(context.Background(), task)
		require.NoError(t, err, name)
		assert.Equal(t, name, result.Architecture)
		assert.NotEmpty(t, result.Metadata)
	}

	require.Len(t, a.History(0), 3)

	stats, err := a.ComparePerformance()
	require.NoError(t, err)
	assert.Len(t, stats, 3)

	latest := a.History(1)
	report, err := a.Export(&latest[0], "markdown")
	require.NoError(t, err)
	assert.Contains(t, report, "Auth")
	assert.Contains(t, report, "reactive")
}

func TestArchon_InvalidArchitecture(t *testing.T) {
	a := New()
	assert.ErrorIs(t, a.SetArchitecture("mesh"), core.ErrInvalidArchitecture)
}
