package roundtable

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/logging"
	"github.com/archonhq/archon/provider"
	"github.com/archonhq/archon/roster"
)

// ArchitectureName is the identifier this strategy registers under.
const ArchitectureName = "round_table"

// RoundTopics is the fixed agenda every discussion walks through, in order.
var RoundTopics = []string{
	"Initial Analysis & Approach",
	"Risk Assessment & Mitigation",
	"Implementation Planning & Timeline",
}

const (
	contributionMaxTokens   = 800
	contributionTemperature = 0.8
)

// Round is one completed agenda item with every member's contribution.
type Round struct {
	Number        int            `json:"number"`
	Topic         string         `json:"topic"`
	Contributions []Contribution `json:"contributions"`
}

// RoundTable drives tasks through the discussion topology. Unlike the other
// strategies it is deliberately stateful: the transcript of every discussion
// is retained across Execute calls until Reset.
type RoundTable struct {
	team      *roster.Roster
	generator provider.Generator
	logger    logging.Logger

	mu      sync.Mutex
	history []Discussion
}

// Options configures the round table.
type Options struct {
	Logger logging.Logger
}

// New constructs the round-table strategy over a roster.
func New(team *roster.Roster, generator provider.Generator, optFns ...func(o *Options)) *RoundTable {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &RoundTable{team: team, generator: generator, logger: opts.Logger}
}

// Name implements core.Strategy.
func (r *RoundTable) Name() string { return ArchitectureName }

// Execute implements core.Strategy. Every roster member contributes to every
// round; later speakers in a round see the contributions made before theirs.
func (r *RoundTable) Execute(ctx context.Context, task core.Task) (core.Result, error) {
	rounds := make([]Round, 0, len(RoundTopics))

	for i, topic := range RoundTopics {
		round := Round{Number: i + 1, Topic: topic}

		for _, m := range r.team.Members {
			if err := ctx.Err(); err != nil {
				return nil, &core.TaskProcessingError{Architecture: ArchitectureName, TaskID: task.ID, Err: err}
			}

			c := r.contribute(ctx, m, task, round)
			c.AgentID = m.ID
			c.Role = m.Role
			c.Round = round.Number
			c.Topic = topic
			c.Timestamp = time.Now().UTC()
			round.Contributions = append(round.Contributions, c)
		}

		r.logger.Info("discussion round completed", "round", round.Number, "topic", topic, "contributions", len(round.Contributions))
		rounds = append(rounds, round)
	}

	discussion := Discussion{Task: task, Rounds: rounds, Consensus: consensusPoints(rounds)}

	r.mu.Lock()
	r.history = append(r.history, discussion)
	r.mu.Unlock()

	return &discussion, nil
}

// contribute obtains one member's structured statement, substituting the
// deterministic fallback on any generator failure or schema violation.
func (r *RoundTable) contribute(ctx context.Context, m roster.Member, task core.Task, round Round) Contribution {
	resp, err := r.generator.Generate(ctx, provider.Request{
		Prompt:      r.contributionPrompt(m, task, round),
		Role:        m.Role,
		MaxTokens:   contributionMaxTokens,
		Temperature: contributionTemperature,
	})
	if err == nil {
		if c, perr := parseContribution(resp.Text); perr == nil {
			return c
		} else {
			err = &core.ProviderError{Provider: r.generator.Name(), Err: perr}
		}
	}

	r.logger.Warn("contribution generator failed, using fallback", "agent", m.ID, "round", round.Number, "error", err.Error())
	return fallbackContribution(m.ID, m.Role)
}

// contributionPrompt builds the discussion prompt: agenda topic, task, and
// the statements already made in the current round.
func (r *RoundTable) contributionPrompt(m roster.Member, task core.Task, round Round) string {
	var sb strings.Builder

	sb.WriteString(m.PersonalityPrompt)
	sb.WriteString("\n\n**Round Table Discussion**\n")
	fmt.Fprintf(&sb, "- **Round %d Topic:** %s\n", round.Number, round.Topic)
	fmt.Fprintf(&sb, "- **Task:** %s\n", task.Title)
	fmt.Fprintf(&sb, "- **Description:** %s\n", task.Description)
	fmt.Fprintf(&sb, "- **Priority:** %s\n", task.Priority)
	fmt.Fprintf(&sb, "\n**Your Role:** %s\n", m.Role)

	if len(round.Contributions) > 0 {
		sb.WriteString("\n**Contributions This Round:**\n")
		for _, c := range round.Contributions {
			fmt.Fprintf(&sb, "\n**%s:** %s\n", c.Role, c.Perspective)
			if len(c.KeyPoints) > 0 {
				fmt.Fprintf(&sb, "- Key Points: %s\n", strings.Join(c.KeyPoints, "; "))
			}
		}
	}

	sb.WriteString(`
**Instructions:**
Contribute to the discussion from your role's perspective. Build on what
others have said, do not repeat them.

Respond with a single JSON object:
{
  "perspective": "Your view on this round's topic",
  "key_points": ["concise discussion point"],
  "concerns": ["specific concern"],
  "suggestions": ["concrete suggestion"],
  "questions_for_team": ["question for the other participants"]
}
`)

	return sb.String()
}

// History returns a copy of every discussion held so far.
func (r *RoundTable) History() []Discussion {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Discussion, len(r.history))
	copy(out, r.history)
	return out
}

// Reset discards the retained discussion history.
func (r *RoundTable) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
}

// consensusPoints extracts the key points voiced, after normalization, by at
// least half of the distinct contributors across all rounds. Points are
// returned in first-voiced order using their original wording.
func consensusPoints(rounds []Round) []string {
	type tally struct {
		original string
		voters   map[string]bool
	}

	contributors := make(map[string]bool)
	order := make([]string, 0)
	counts := make(map[string]*tally)

	for _, round := range rounds {
		for _, c := range round.Contributions {
			contributors[c.AgentID] = true
			for _, point := range c.KeyPoints {
				key := normalizePoint(point)
				if key == "" {
					continue
				}
				t, ok := counts[key]
				if !ok {
					t = &tally{original: strings.TrimSpace(point), voters: make(map[string]bool)}
					counts[key] = t
					order = append(order, key)
				}
				t.voters[c.AgentID] = true
			}
		}
	}

	threshold := (len(contributors) + 1) / 2
	if threshold < 2 {
		threshold = 2
	}

	var consensus []string
	for _, key := range order {
		if len(counts[key].voters) >= threshold {
			consensus = append(consensus, counts[key].original)
		}
	}
	return consensus
}

func normalizePoint(point string) string {
	s := strings.ToLower(strings.TrimSpace(point))
	return strings.Trim(s, ".!?,;: ")
}

// Discussion is the round-table strategy's result payload.
type Discussion struct {
	Task      core.Task `json:"task"`
	Rounds    []Round   `json:"rounds"`
	Consensus []string  `json:"consensus"`
}

// Metadata implements core.Result.
func (d *Discussion) Metadata() map[string]any {
	total := 0
	for _, round := range d.Rounds {
		total += len(round.Contributions)
	}
	return map[string]any{
		"discussion_rounds":   len(d.Rounds),
		"total_contributions": total,
	}
}

// Summary implements core.Result.
func (d *Discussion) Summary() map[string]any {
	return map[string]any{
		"type":             "round_table_discussion",
		"rounds_completed": len(d.Rounds),
		"consensus_points": d.Consensus,
	}
}
