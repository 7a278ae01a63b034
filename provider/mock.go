package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/archonhq/archon/core"
)

// Mock is a lightweight in-memory Generator useful for tests & examples.
// Responses can be registered per role; unregistered roles receive a small
// deterministic JSON document that satisfies the reaction schema. Fail()
// switches the mock into failure mode to exercise fallback paths.
type Mock struct {
	mu        sync.Mutex
	responses map[string]string
	calls     int
	failing   bool
}

// NewMock constructs a Mock with no canned responses registered.
func NewMock() *Mock {
	return &Mock{responses: make(map[string]string)}
}

// AddResponse registers a deterministic canned completion for a role label.
func (m *Mock) AddResponse(role, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[role] = response
}

// Fail switches the mock into failure mode; every subsequent Generate call
// returns a *core.ProviderError until Fail(false) is called.
func (m *Mock) Fail(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

// Calls returns the number of Generate invocations so far.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Generator.
func (m *Mock) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, &core.ProviderError{Provider: m.Name(), Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failing {
		return Response{}, &core.ProviderError{Provider: m.Name(), Err: errors.New("mock generator in failure mode")}
	}

	if text, ok := m.responses[req.Role]; ok {
		return Response{Text: text, TokenCount: len(text) / 4}, nil
	}

	text := fmt.Sprintf(`{
  "relevance": "high",
  "response": "Reaction from %s",
  "action_needed": true,
  "alert_team": [],
  "concerns": ["Sample concern from %s"],
  "recommendations": ["Sample recommendation from %s"]
}`, req.Role, req.Role, req.Role)

	return Response{Text: text, TokenCount: len(text) / 4}, nil
}

// Name implements Generator.
func (m *Mock) Name() string { return "mock" }
