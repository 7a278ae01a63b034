package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archonhq/archon/core"
)

// Member is one agent identity: a stable id, a human role label, capability
// tags and the personality prompt prepended to every generation request.
type Member struct {
	ID                string   `yaml:"id" json:"id"`
	Role              string   `yaml:"role" json:"role"`
	Capabilities      []string `yaml:"capabilities" json:"capabilities"`
	PersonalityPrompt string   `yaml:"personality_prompt" json:"personality_prompt"`
}

// Roster is the ordered, read-only list of team members. Order matters: the
// sequential pipeline and round-table topologies iterate it as given.
type Roster struct {
	Members []Member `yaml:"members" json:"members"`
}

// Load reads a roster from a YAML file. Missing files, malformed documents
// and invalid member sets all surface as *core.ConfigError.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.ConfigError{Path: path, Reason: err.Error()}
	}

	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &core.ConfigError{Path: path, Reason: fmt.Sprintf("parse: %v", err)}
	}

	if err := r.validate(); err != nil {
		return nil, &core.ConfigError{Path: path, Reason: err.Error()}
	}

	return &r, nil
}

func (r *Roster) validate() error {
	if len(r.Members) == 0 {
		return fmt.Errorf("empty roster")
	}

	seen := make(map[string]bool, len(r.Members))
	for i, m := range r.Members {
		if m.ID == "" {
			return fmt.Errorf("member %d has no id", i)
		}
		if m.Role == "" {
			return fmt.Errorf("member %s has no role", m.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate member id %s", m.ID)
		}
		seen[m.ID] = true
	}

	return nil
}

// Member returns the member with the given id, or nil if absent.
func (r *Roster) Member(id string) *Member {
	for i := range r.Members {
		if r.Members[i].ID == id {
			return &r.Members[i]
		}
	}
	return nil
}

// IDs returns the member ids in roster order.
func (r *Roster) IDs() []string {
	ids := make([]string, len(r.Members))
	for i, m := range r.Members {
		ids[i] = m.ID
	}
	return ids
}

// Size returns the number of members.
func (r *Roster) Size() int { return len(r.Members) }
