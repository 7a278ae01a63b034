package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/archonhq/archon/roster"
)

// parseStageResponse enforces the strict schema contract at the generator
// boundary: a single JSON object with a non-empty response field. Anything
// else is a schema violation the caller treats like a provider failure.
func parseStageResponse(text string) (StageResponse, error) {
	var stage StageResponse

	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	if err := dec.Decode(&stage); err != nil {
		return StageResponse{}, fmt.Errorf("stage schema violation: %w", err)
	}

	if strings.TrimSpace(stage.Response) == "" {
		return StageResponse{}, fmt.Errorf("stage schema violation: empty response")
	}

	if stage.EstimatedEffort == "" {
		stage.EstimatedEffort = "TBD"
	}

	return stage, nil
}

// fallbackStages holds the deterministic canned stage response per member id
// used whenever the generator fails or violates the schema. This path must
// never raise further.
var fallbackStages = map[string]StageResponse{
	"product_owner": {
		Response:        "Analyzed the task against business value and user needs. Requirements need grooming before development begins.",
		Concerns:        []string{"Acceptance criteria are not fully specified"},
		Recommendations: []string{"Write explicit acceptance criteria", "Confirm priority with stakeholders"},
		NextSteps:       []string{"Refine the user story"},
		EstimatedEffort: "1 day of refinement",
	},
	"tech_lead": {
		Response:        "Reviewed the technical approach and system impact. An architecture sketch should precede implementation.",
		Concerns:        []string{"Integration complexity with existing services"},
		Recommendations: []string{"Produce a lightweight design document", "Split the work into reviewable increments"},
		NextSteps:       []string{"Draft the architecture sketch"},
		EstimatedEffort: "2-3 days of design",
	},
	"developer_1": {
		Response:        "Assessed the frontend scope. Component structure and state handling are the main implementation areas.",
		Concerns:        []string{"Cross-browser behavior of the new flows"},
		Recommendations: []string{"Prototype the critical UI path first"},
		NextSteps:       []string{"Set up the component skeleton"},
		EstimatedEffort: "3-4 days of implementation",
	},
	"developer_2": {
		Response:        "Assessed the backend scope. Data model changes and API endpoints are the main implementation areas.",
		Concerns:        []string{"Data validation gaps on new endpoints"},
		Recommendations: []string{"Define the API contract before implementation"},
		NextSteps:       []string{"Design the schema migration"},
		EstimatedEffort: "3-4 days of implementation",
	},
	"qa_engineer": {
		Response:        "Planned the verification approach. Both functional coverage and regression scope need test cases.",
		Concerns:        []string{"Regression coverage of adjacent features"},
		Recommendations: []string{"Automate the happy path before release"},
		NextSteps:       []string{"Write the test plan"},
		EstimatedEffort: "2 days of test development",
	},
	"manager": {
		Response:        "Consolidated the team analysis. The plan is feasible with the noted concerns tracked as risks.",
		Concerns:        []string{"Timeline pressure from the raised concerns"},
		Recommendations: []string{"Track the open risks in the project board"},
		NextSteps:       []string{"Schedule the kickoff"},
		EstimatedEffort: "Coordination ongoing",
	},
}

// fallbackStage returns the canned response for a member, or a generic
// minimal response for roster members without a dedicated entry.
func fallbackStage(member roster.Member) StageResponse {
	stage, ok := fallbackStages[member.ID]
	if !ok {
		stage = StageResponse{
			Response:        fmt.Sprintf("Processed the task from the %s perspective.", member.Role),
			EstimatedEffort: "TBD",
		}
	}
	stage.AgentID = member.ID
	stage.Role = member.Role
	stage.Timestamp = time.Now().UTC()
	return stage
}
