package roundtable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Contribution is one member's structured statement in one discussion round.
type Contribution struct {
	AgentID          string    `json:"agent_id"`
	Role             string    `json:"role"`
	Round            int       `json:"round"`
	Topic            string    `json:"topic"`
	Timestamp        time.Time `json:"timestamp"`
	Perspective      string    `json:"perspective"`
	KeyPoints        []string  `json:"key_points"`
	Concerns         []string  `json:"concerns"`
	Suggestions      []string  `json:"suggestions"`
	QuestionsForTeam []string  `json:"questions_for_team"`
}

// parseContribution enforces the strict schema contract at the generator
// boundary: a single JSON object with a non-empty perspective and at least
// one key point. Anything else is a schema violation the caller treats like
// a provider failure.
func parseContribution(text string) (Contribution, error) {
	var c Contribution

	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	if err := dec.Decode(&c); err != nil {
		return Contribution{}, fmt.Errorf("contribution schema violation: %w", err)
	}

	if strings.TrimSpace(c.Perspective) == "" {
		return Contribution{}, fmt.Errorf("contribution schema violation: empty perspective")
	}
	if len(c.KeyPoints) == 0 {
		return Contribution{}, fmt.Errorf("contribution schema violation: no key points")
	}

	return c, nil
}

// fallbackContributions holds the deterministic canned contribution per
// member id used whenever the generator fails or violates the schema. This
// path must never raise further.
var fallbackContributions = map[string]Contribution{
	"product_owner": {
		Perspective:      "From the product side the priority is user value and a crisp definition of done.",
		KeyPoints:        []string{"Clarify acceptance criteria", "Validate priority with stakeholders"},
		Concerns:         []string{"Scope creep without firm criteria"},
		Suggestions:      []string{"Write the acceptance criteria before estimating"},
		QuestionsForTeam: []string{"Which user journey does this change first?"},
	},
	"tech_lead": {
		Perspective:      "Technically this needs a design pass before we commit to an approach.",
		KeyPoints:        []string{"Clarify acceptance criteria", "Sketch the architecture early"},
		Concerns:         []string{"Integration risk with existing services"},
		Suggestions:      []string{"Split the work into reviewable increments"},
		QuestionsForTeam: []string{"Are there hard latency requirements?"},
	},
	"developer_1": {
		Perspective:      "The frontend work hinges on a stable API contract and clear UX states.",
		KeyPoints:        []string{"Sketch the architecture early", "Agree the API contract up front"},
		Concerns:         []string{"Unclear loading and error states"},
		Suggestions:      []string{"Prototype the critical UI path first"},
		QuestionsForTeam: []string{"Who owns the design review?"},
	},
	"developer_2": {
		Perspective:      "On the backend the data model and validation rules are the main decisions.",
		KeyPoints:        []string{"Agree the API contract up front", "Plan the schema migration"},
		Concerns:         []string{"Backfill cost for existing data"},
		Suggestions:      []string{"Define the API contract before implementation"},
		QuestionsForTeam: []string{"Is downtime acceptable for the migration?"},
	},
	"qa_engineer": {
		Perspective:      "Testability should be designed in, not bolted on after implementation.",
		KeyPoints:        []string{"Clarify acceptance criteria", "Automate the regression scope"},
		Concerns:         []string{"Regression coverage of adjacent features"},
		Suggestions:      []string{"Automate the happy path before release"},
		QuestionsForTeam: []string{"What is the release acceptance bar?"},
	},
	"manager": {
		Perspective:      "The plan needs owners and a timeline the team actually believes in.",
		KeyPoints:        []string{"Assign owners per work stream", "Clarify acceptance criteria"},
		Concerns:         []string{"Timeline pressure from open questions"},
		Suggestions:      []string{"Track open risks in the project board"},
		QuestionsForTeam: []string{"Can we commit to a milestone date?"},
	},
}

// fallbackContribution returns the canned contribution for a member id, or a
// generic minimal contribution for roster members without a dedicated entry.
func fallbackContribution(memberID, role string) Contribution {
	if c, ok := fallbackContributions[memberID]; ok {
		return c
	}
	return Contribution{
		Perspective: fmt.Sprintf("Contributing from the %s perspective.", role),
		KeyPoints:   []string{"Needs further discussion"},
	}
}
