package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archonhq/archon/core"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeRoster(t, `
members:
  - id: tech_lead
    role: Tech Lead
    capabilities: [architecture]
    personality_prompt: You design systems.
  - id: qa_engineer
    role: QA Engineer
    capabilities: [testing]
    personality_prompt: You test systems.
`)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Size())
	assert.Equal(t, []string{"tech_lead", "qa_engineer"}, r.IDs())
	assert.Equal(t, "QA Engineer", r.Member("qa_engineer").Role)
	assert.Nil(t, r.Member("missing"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	var cfgErr *core.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeRoster(t, "members: [not, a, member, list")

	_, err := Load(path)
	var cfgErr *core.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"empty roster", "members: []", "empty roster"},
		{
			"missing id",
			"members:\n  - role: Tech Lead\n",
			"no id",
		},
		{
			"missing role",
			"members:\n  - id: tech_lead\n",
			"no role",
		},
		{
			"duplicate id",
			"members:\n  - {id: tech_lead, role: Tech Lead}\n  - {id: tech_lead, role: Impostor}\n",
			"duplicate member id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRoster(t, tt.content))
			var cfgErr *core.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestDefaultTeam(t *testing.T) {
	team := DefaultTeam()

	assert.Equal(t, 6, team.Size())
	assert.Equal(t, []string{
		"product_owner", "tech_lead", "developer_1",
		"developer_2", "qa_engineer", "manager",
	}, team.IDs())
	for _, m := range team.Members {
		assert.NotEmpty(t, m.Role)
		assert.NotEmpty(t, m.PersonalityPrompt)
		assert.NotEmpty(t, m.Capabilities)
	}
}
