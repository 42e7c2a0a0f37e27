package team_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := team.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Agents, 5)
	assert.Equal(t, 100, cfg.Team.MaxRounds)
	assert.Equal(t, team.SelectionAuto, cfg.Team.SpeakerSelection)

	writer := cfg.Agents["content_writer"]
	assert.Equal(t, "content_writer", writer.Name)
	assert.Equal(t, team.RoleWriter, writer.Role)
	assert.Equal(t, 0.7, writer.Temperature)
	assert.Equal(t, 2000, writer.MaxTokens)
}

func TestLoadConfig_MissingWriterFilledFromDefaults(t *testing.T) {
	path := writeConfig(t, `
team:
  max_rounds: 20
agents:
  project_manager:
    role: coordinator
    temperature: 0.2
    max_tokens: 900
`)

	cfg, err := team.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	// The absent writer section yields a valid roster via defaults.
	writer, ok := cfg.Agents["content_writer"]
	require.True(t, ok)
	assert.Equal(t, team.RoleWriter, writer.Role)
	assert.Equal(t, 0.7, writer.Temperature)
	assert.Equal(t, 2000, writer.MaxTokens)
	assert.Equal(t, 180, writer.Timeout)

	pm := cfg.Agents["project_manager"]
	assert.Equal(t, 0.2, pm.Temperature)
	assert.Equal(t, 900, pm.MaxTokens)
	assert.Equal(t, 120, pm.Timeout) // zero field filled from defaults

	assert.Equal(t, 20, cfg.Team.MaxRounds)
	assert.NotEmpty(t, cfg.Team.TerminationPhrases)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "agents: [not: a: map")

	_, err := team.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_WRITER_MODEL", "gpt-4-turbo")

	path := writeConfig(t, `
agents:
  content_writer:
    role: writer
    model: ${TEST_WRITER_MODEL}
    temperature: 0.7
    max_tokens: 2000
`)

	cfg, err := team.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4-turbo", cfg.Agents["content_writer"].Model)
}

func TestValidate(t *testing.T) {
	base := func() team.Config { return team.DefaultConfig() }

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := base()
		spec := cfg.Agents["content_writer"]
		spec.Temperature = 1.5
		cfg.Agents["content_writer"] = spec

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("unknown role", func(t *testing.T) {
		cfg := base()
		spec := cfg.Agents["content_writer"]
		spec.Role = "influencer"
		cfg.Agents["content_writer"] = spec

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})

	t.Run("two coordinators", func(t *testing.T) {
		cfg := base()
		spec := cfg.Agents["content_editor"]
		spec.Role = team.RoleCoordinator
		cfg.Agents["content_editor"] = spec

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one coordinator")
	})

	t.Run("zero max_tokens", func(t *testing.T) {
		cfg := base()
		spec := cfg.Agents["seo_specialist"]
		spec.MaxTokens = 0
		cfg.Agents["seo_specialist"] = spec

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_tokens")
	})

	t.Run("bad speaker selection", func(t *testing.T) {
		cfg := base()
		cfg.Team.SpeakerSelection = "loudest"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "speaker_selection")
	})
}

func TestRoster_WorkflowOrder(t *testing.T) {
	cfg := team.DefaultConfig()

	roster := cfg.Roster()
	require.Len(t, roster, 5)

	names := make([]string, len(roster))
	for i, spec := range roster {
		names[i] = spec.Name
	}

	assert.Equal(t, []string{
		"content_writer",
		"content_editor",
		"seo_specialist",
		"brand_strategist",
		"project_manager",
	}, names)
}

func TestCoordinator(t *testing.T) {
	cfg := team.DefaultConfig()

	spec, ok := cfg.Coordinator()
	require.True(t, ok)
	assert.Equal(t, "project_manager", spec.Name)
}
