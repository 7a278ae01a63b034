package reactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonhq/archon/bus"
	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

func member(id, role string) roster.Member {
	return roster.Member{ID: id, Role: role, Capabilities: []string{"x"}, PersonalityPrompt: "You are " + role + "."}
}

func TestNewAgent_SubscriptionSets(t *testing.T) {
	tests := []struct {
		id   string
		want []core.EventType
	}{
		{"manager", []core.EventType{core.EventConcernRaised, core.EventApprovalNeeded}},
		{"tech_lead", []core.EventType{core.EventTaskCreated, core.EventConcernRaised, core.EventReviewRequested}},
		{"qa_engineer", []core.EventType{core.EventImplementationReady, core.EventTestingRequired}},
		{"somebody_else", []core.EventType{core.EventTaskCreated}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			a := NewAgent(member(tt.id, "Role"), nil, provider.NewMock(), logging.NoOpLogger{})
			assert.Equal(t, tt.want, a.Subscriptions())
		})
	}
}

func TestAgent_TechLeadTriggersTargetedReview(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()
	gen.AddResponse("Tech Lead", `{"relevance": "high", "response": "On it."}`)

	a := NewAgent(member("tech_lead", "Tech Lead"), []string{"developer_1", "developer_2"}, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventTaskCreated, core.SystemSource, map[string]any{"title": "Auth"})))

	history := b.History()
	require.Len(t, history, 2)
	review := history[1]
	assert.Equal(t, core.EventReviewRequested, review.Type)
	assert.Equal(t, "tech_lead", review.Source)
	assert.ElementsMatch(t, []string{"developer_1", "developer_2"}, review.Targets)
	assert.Equal(t, "architecture", review.Payload["review_type"])
}

func TestAgent_QATriggersBroadcastTesting(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()
	gen.AddResponse("QA Engineer", `{"relevance": "high", "response": "Planning tests."}`)

	a := NewAgent(member("qa_engineer", "QA Engineer"), nil, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventImplementationReady, "developer_2", nil)))

	history := b.History()
	require.Len(t, history, 2)
	assert.Equal(t, core.EventTestingRequired, history[1].Type)
	assert.True(t, history[1].IsBroadcast())
}

func TestAgent_ConcernsAlwaysAlertManager(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()
	gen.AddResponse("Product Owner", `{"relevance": "high", "response": "Reviewing.", "concerns": ["No acceptance criteria"]}`)

	a := NewAgent(member("product_owner", "Product Owner"), nil, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventTaskCreated, core.SystemSource, nil)))

	history := b.History()
	require.Len(t, history, 2)
	concern := history[1]
	assert.Equal(t, core.EventConcernRaised, concern.Type)
	assert.Equal(t, []string{"manager"}, concern.Targets)
	assert.Equal(t, []string{"No acceptance criteria"}, concern.Payload["concerns"])
}

func TestAgent_GeneratorFailureUsesFallback(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()
	gen.Fail(true)

	a := NewAgent(member("tech_lead", "Tech Lead"), []string{"developer_1"}, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventTaskCreated, core.SystemSource, nil)))

	// Fallback still drives the rule table and the fallback concerns still
	// alert the manager.
	history := b.History()
	types := make([]core.EventType, 0, len(history))
	for _, e := range history {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, core.EventReviewRequested)
	assert.Contains(t, types, core.EventConcernRaised)
}

func TestAgent_MalformedOutputUsesFallback(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()
	gen.AddResponse("Tech Lead", "definitely not the agreed schema")

	a := NewAgent(member("tech_lead", "Tech Lead"), []string{"developer_1"}, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventTaskCreated, core.SystemSource, nil)))
	assert.GreaterOrEqual(t, b.Len(), 2)
}

func TestAgent_IgnoresOwnEvents(t *testing.T) {
	b := bus.New()
	gen := provider.NewMock()

	a := NewAgent(member("tech_lead", "Tech Lead"), nil, gen, logging.NoOpLogger{})
	a.Attach(context.Background(), b)

	require.NoError(t, b.Publish(core.NewEvent(core.EventConcernRaised, "tech_lead", nil)))

	assert.Zero(t, gen.Calls())
	assert.Equal(t, 1, b.Len())
}
