package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

// ArchitectureName is the identifier this strategy registers under.
const ArchitectureName = "sequential"

// PipelineOrder is the fixed stage order: requirements first, coordination
// last. Roster members absent from the order are skipped.
var PipelineOrder = []string{
	"product_owner",
	"tech_lead",
	"developer_1",
	"developer_2",
	"qa_engineer",
	"manager",
}

const (
	stageMaxTokens   = 800
	stageTemperature = 0.7
)

// StageResponse is one pipeline stage's structured contribution.
type StageResponse struct {
	AgentID         string    `json:"agent_id"`
	Role            string    `json:"role"`
	Timestamp       time.Time `json:"timestamp"`
	Response        string    `json:"response"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
	NextSteps       []string  `json:"next_steps"`
	EstimatedEffort string    `json:"estimated_effort"`
}

// Pipeline drives tasks through the sequential topology. It is stateless
// between runs; every Execute starts from a fresh context copy.
type Pipeline struct {
	team      *roster.Roster
	generator provider.Generator
	logger    logging.Logger
}

// Options configures the pipeline.
type Options struct {
	Logger logging.Logger
}

// New constructs the sequential pipeline over a roster.
func New(team *roster.Roster, generator provider.Generator, optFns ...func(o *Options)) *Pipeline {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Pipeline{team: team, generator: generator, logger: opts.Logger}
}

// Name implements core.Strategy.
func (p *Pipeline) Name() string { return ArchitectureName }

// Execute implements core.Strategy. Each stage's response is appended to the
// accumulated context under "<agent_id>_response" before the next stage runs.
func (p *Pipeline) Execute(ctx context.Context, task core.Task) (core.Result, error) {
	accumulated := task.Context()
	var stages []StageResponse

	for _, agentID := range PipelineOrder {
		if err := ctx.Err(); err != nil {
			return nil, &core.TaskProcessingError{Architecture: ArchitectureName, TaskID: task.ID, Err: err}
		}

		member := p.team.Member(agentID)
		if member == nil {
			continue
		}

		stage := p.runStage(ctx, *member, task, stages)
		accumulated[agentID+"_response"] = stage.Response
		stages = append(stages, stage)

		p.logger.Info("pipeline stage completed", "agent", agentID, "role", member.Role)
	}

	return &Transcript{Task: task, Stages: stages, Context: accumulated}, nil
}

// runStage obtains one member's structured analysis, substituting the
// deterministic fallback on any generator failure or schema violation.
func (p *Pipeline) runStage(ctx context.Context, member roster.Member, task core.Task, previous []StageResponse) StageResponse {
	resp, err := p.generator.Generate(ctx, provider.Request{
		Prompt:      p.stagePrompt(member, task, previous),
		Role:        member.Role,
		MaxTokens:   stageMaxTokens,
		Temperature: stageTemperature,
	})
	if err == nil {
		if stage, perr := parseStageResponse(resp.Text); perr == nil {
			stage.AgentID = member.ID
			stage.Role = member.Role
			stage.Timestamp = time.Now().UTC()
			return stage
		} else {
			err = &core.ProviderError{Provider: p.generator.Name(), Err: perr}
		}
	}

	p.logger.Warn("stage generator failed, using fallback", "agent", member.ID, "error", err.Error())
	return fallbackStage(member)
}

// stagePrompt builds the contextual prompt embedding the task and the
// analyses of every earlier stage.
func (p *Pipeline) stagePrompt(member roster.Member, task core.Task, previous []StageResponse) string {
	var sb strings.Builder

	sb.WriteString(member.PersonalityPrompt)
	sb.WriteString("\n\n**Task Assignment:**\n")
	fmt.Fprintf(&sb, "- **Story ID:** %s\n", task.ID)
	fmt.Fprintf(&sb, "- **Title:** %s\n", task.Title)
	fmt.Fprintf(&sb, "- **Description:** %s\n", task.Description)
	fmt.Fprintf(&sb, "- **Priority:** %s\n", task.Priority)
	fmt.Fprintf(&sb, "\n**Your Role:** %s\n", member.Role)
	fmt.Fprintf(&sb, "**Your Capabilities:** %s\n", strings.Join(member.Capabilities, ", "))

	if len(previous) > 0 {
		sb.WriteString("\n**Previous Team Analysis:**\n")
		for _, stage := range previous {
			fmt.Fprintf(&sb, "\n**%s:**\n", stage.Role)
			fmt.Fprintf(&sb, "- Response: %s\n", truncate(stage.Response, 200))
			fmt.Fprintf(&sb, "- Key Concerns: %s\n", strings.Join(head(stage.Concerns, 2), ", "))
			fmt.Fprintf(&sb, "- Recommendations: %s\n", strings.Join(head(stage.Recommendations, 2), ", "))
		}
	}

	sb.WriteString(`
**Instructions:**
As an expert in your role, provide a comprehensive analysis specific to this task.

Respond with a single JSON object:
{
  "response": "Your detailed analysis from your role's perspective",
  "concerns": ["specific concern"],
  "recommendations": ["specific actionable recommendation"],
  "next_steps": ["immediate next step"],
  "estimated_effort": "realistic time estimate"
}
`)

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// Transcript is the sequential strategy's result payload: one ordered stage
// response per roster member processed, plus the final accumulated context
// with one "<agent_id>_response" entry per stage.
type Transcript struct {
	Task    core.Task       `json:"task"`
	Stages  []StageResponse `json:"stages"`
	Context map[string]any  `json:"context"`
}

// Metadata implements core.Result.
func (t *Transcript) Metadata() map[string]any {
	return map[string]any{
		"agents_involved": len(t.Stages),
		"pipeline_stages": len(t.Stages),
	}
}

// Summary implements core.Result.
func (t *Transcript) Summary() map[string]any {
	insights := make([]string, 0, 3)
	for _, stage := range head2(t.Stages, 3) {
		insights = append(insights, truncate(stage.Response, 100))
	}
	return map[string]any{
		"type":                "sequential_pipeline",
		"agents_participated": len(t.Stages),
		"key_insights":        insights,
	}
}

func head2(stages []StageResponse, n int) []StageResponse {
	if len(stages) <= n {
		return stages
	}
	return stages[:n]
}
