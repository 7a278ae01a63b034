package reactive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Reaction is the structured outcome of one agent processing one event. It
// is transient: nothing beyond the events it triggers is retained.
type Reaction struct {
	Relevance       string   `json:"relevance"`
	Response        string   `json:"response"`
	ActionNeeded    bool     `json:"action_needed"`
	AlertTeam       []string `json:"alert_team"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

// parseReaction enforces the strict schema contract at the generator
// boundary: the output must be a single JSON object with a known relevance
// level and a non-empty response. Anything else is a schema violation the
// caller treats like a provider failure.
func parseReaction(text string) (Reaction, error) {
	var r Reaction

	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	if err := dec.Decode(&r); err != nil {
		return Reaction{}, fmt.Errorf("reaction schema violation: %w", err)
	}

	switch strings.ToLower(r.Relevance) {
	case "high", "medium", "low":
	default:
		return Reaction{}, fmt.Errorf("reaction schema violation: unknown relevance %q", r.Relevance)
	}

	if strings.TrimSpace(r.Response) == "" {
		return Reaction{}, fmt.Errorf("reaction schema violation: empty response")
	}

	return r, nil
}

// fallbackReactions holds the deterministic canned reaction per member id
// used whenever the generator fails or violates the schema. This path must
// never raise further.
var fallbackReactions = map[string]Reaction{
	"manager": {
		Relevance:       "high",
		Response:        "Coordinating the team response and tracking this against the timeline.",
		ActionNeeded:    true,
		Concerns:        []string{"Timeline impact of unplanned work"},
		Recommendations: []string{"Schedule a sync to triage the raised items"},
	},
	"product_owner": {
		Relevance:       "high",
		Response:        "Reviewing the task against user acceptance criteria and business value.",
		ActionNeeded:    true,
		Concerns:        []string{"Acceptance criteria may be incomplete"},
		Recommendations: []string{"Refine the user stories before implementation starts"},
	},
	"tech_lead": {
		Relevance:       "high",
		Response:        "Assessing architectural impact and assigning review work to the developers.",
		ActionNeeded:    true,
		Concerns:        []string{"Integration complexity with existing systems"},
		Recommendations: []string{"Produce an architecture sketch before coding"},
	},
	"developer_1": {
		Relevance:       "medium",
		Response:        "Looking at the frontend implications and preparing component estimates.",
		ActionNeeded:    true,
		Concerns:        []string{"Cross-browser behavior of the new flows"},
		Recommendations: []string{"Prototype the critical UI path first"},
	},
	"developer_2": {
		Relevance:       "medium",
		Response:        "Reviewing backend data model and API surface for this change.",
		ActionNeeded:    true,
		Concerns:        []string{"Data validation gaps on new endpoints"},
		Recommendations: []string{"Define the API contract before implementation"},
	},
	"qa_engineer": {
		Relevance:       "high",
		Response:        "Drafting the test strategy and regression scope for this work.",
		ActionNeeded:    true,
		Concerns:        []string{"Regression coverage of adjacent features"},
		Recommendations: []string{"Automate the happy path before release"},
	},
}

// fallbackReaction returns the canned reaction for a member id, or a generic
// minimal reaction for roster members without a dedicated entry.
func fallbackReaction(memberID, role string) Reaction {
	if r, ok := fallbackReactions[memberID]; ok {
		return r
	}
	return Reaction{
		Relevance:    "medium",
		Response:     fmt.Sprintf("Acknowledged from %s perspective.", role),
		ActionNeeded: false,
	}
}
