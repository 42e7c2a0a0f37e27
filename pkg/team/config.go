package team

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Role identifies an agent's function in the content pipeline.
type Role string

const (
	RoleCoordinator   Role = "coordinator"
	RoleWriter        Role = "writer"
	RoleEditor        Role = "editor"
	RoleSEOSpecialist Role = "seo_specialist"
	RoleStrategist    Role = "strategist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCoordinator, RoleWriter, RoleEditor, RoleSEOSpecialist, RoleStrategist:
		return true
	}
	return false
}

// workflowOrder is the position of each role in the collaboration workflow.
// The coordinator reviews last in each cycle.
var workflowOrder = map[Role]int{
	RoleWriter:        0,
	RoleEditor:        1,
	RoleSEOSpecialist: 2,
	RoleStrategist:    3,
	RoleCoordinator:   4,
}

// AgentSpec describes one configured agent. Specs are immutable after load.
type AgentSpec struct {
	Name         string   `yaml:"-"` // Set from the roster map key.
	Role         Role     `yaml:"role"`
	Model        string   `yaml:"model"`       // Empty = use the provider's model.
	Temperature  float64  `yaml:"temperature"` // Sampling temperature, 0.0-1.0.
	MaxTokens    int      `yaml:"max_tokens"`
	Timeout      int      `yaml:"timeout"` // Per-call timeout in seconds.
	Capabilities []string `yaml:"capabilities"`
}

// Settings holds team-level collaboration parameters.
type Settings struct {
	MaxRounds          int      `yaml:"max_rounds"`
	SpeakerSelection   string   `yaml:"speaker_selection"` // "round_robin" or "auto".
	TerminationPhrases []string `yaml:"termination_phrases"`
}

// Config is the agent roster plus team settings, loaded from agents.yaml.
type Config struct {
	Team   Settings             `yaml:"team"`
	Agents map[string]AgentSpec `yaml:"agents"`
}

// SpeakerSelection methods.
const (
	SelectionRoundRobin = "round_robin"
	SelectionAuto       = "auto"
)

// DefaultTerminationPhrases stop the collaboration when any of them appears
// (case-insensitively) in an agent's reply.
var DefaultTerminationPhrases = []string{
	"final content approved",
	"terminate",
	"task completed",
	"content ready for publication",
	"all requirements met",
}

// DefaultConfig returns the documented fallback roster used when agents.yaml
// is missing, and the source of per-agent defaults for partial configs.
func DefaultConfig() Config {
	return Config{
		Team: Settings{
			MaxRounds:          100,
			SpeakerSelection:   SelectionAuto,
			TerminationPhrases: append([]string(nil), DefaultTerminationPhrases...),
		},
		Agents: map[string]AgentSpec{
			"project_manager": {
				Name: "project_manager",
				Role: RoleCoordinator, Temperature: 0.3, MaxTokens: 1000, Timeout: 120,
				Capabilities: []string{"coordination", "quality_control", "final_approval"},
			},
			"content_writer": {
				Name: "content_writer",
				Role: RoleWriter, Temperature: 0.7, MaxTokens: 2000, Timeout: 180,
				Capabilities: []string{"creative_writing", "cultural_adaptation", "mobile_first_copy"},
			},
			"content_editor": {
				Name: "content_editor",
				Role: RoleEditor, Temperature: 0.4, MaxTokens: 1500, Timeout: 150,
				Capabilities: []string{"language_editing", "fact_checking", "compliance_review"},
			},
			"seo_specialist": {
				Name: "seo_specialist",
				Role: RoleSEOSpecialist, Temperature: 0.2, MaxTokens: 800, Timeout: 120,
				Capabilities: []string{"keyword_research", "local_seo", "voice_search"},
			},
			"brand_strategist": {
				Name: "brand_strategist",
				Role: RoleStrategist, Temperature: 0.5, MaxTokens: 1200, Timeout: 150,
				Capabilities: []string{"brand_positioning", "consumer_psychology", "trust_building"},
			},
		},
	}
}

// LoadConfig reads an agents.yaml file and returns a Config.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing. A missing file yields DefaultConfig; a file that exists but
// does not parse is a malformed-configuration error. Agents missing from the
// file, and zero fields on configured agents, are filled from the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("team: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("team: parse config: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills missing agents and zero-valued fields from
// DefaultConfig, and stamps each spec's Name from its roster key.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Team.MaxRounds == 0 {
		c.Team.MaxRounds = def.Team.MaxRounds
	}
	if c.Team.SpeakerSelection == "" {
		c.Team.SpeakerSelection = def.Team.SpeakerSelection
	}
	if len(c.Team.TerminationPhrases) == 0 {
		c.Team.TerminationPhrases = def.Team.TerminationPhrases
	}

	if c.Agents == nil {
		c.Agents = make(map[string]AgentSpec, len(def.Agents))
	}

	for name, d := range def.Agents {
		spec, ok := c.Agents[name]
		if !ok {
			c.Agents[name] = d
			continue
		}

		if spec.Role == "" {
			spec.Role = d.Role
		}
		if spec.Temperature == 0 {
			spec.Temperature = d.Temperature
		}
		if spec.MaxTokens == 0 {
			spec.MaxTokens = d.MaxTokens
		}
		if spec.Timeout == 0 {
			spec.Timeout = d.Timeout
		}
		if len(spec.Capabilities) == 0 {
			spec.Capabilities = d.Capabilities
		}

		c.Agents[name] = spec
	}

	for name, spec := range c.Agents {
		spec.Name = name
		c.Agents[name] = spec
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if len(c.Agents) == 0 {
		return fmt.Errorf("team: config: at least one agent is required")
	}

	if c.Team.MaxRounds <= 0 {
		return fmt.Errorf("team: config: max_rounds must be positive")
	}

	switch c.Team.SpeakerSelection {
	case SelectionRoundRobin, SelectionAuto:
	default:
		return fmt.Errorf("team: config: unknown speaker_selection %q", c.Team.SpeakerSelection)
	}

	coordinators := 0
	for name, spec := range c.Agents {
		if !spec.Role.Valid() {
			return fmt.Errorf("team: config: agent %q: unknown role %q", name, spec.Role)
		}
		if spec.Role == RoleCoordinator {
			coordinators++
		}
		if spec.Temperature < 0 || spec.Temperature > 1 {
			return fmt.Errorf("team: config: agent %q: temperature %.2f out of range [0,1]", name, spec.Temperature)
		}
		if spec.MaxTokens <= 0 {
			return fmt.Errorf("team: config: agent %q: max_tokens must be positive", name)
		}
	}

	if coordinators != 1 {
		return fmt.Errorf("team: config: exactly one coordinator is required, found %d", coordinators)
	}

	return nil
}

// Roster returns the agent specs in deterministic workflow order:
// writer, editor, seo_specialist, strategist, coordinator, with ties
// broken by name.
func (c Config) Roster() []AgentSpec {
	roster := make([]AgentSpec, 0, len(c.Agents))
	for _, spec := range c.Agents {
		roster = append(roster, spec)
	}

	sort.Slice(roster, func(i, j int) bool {
		oi, oj := workflowOrder[roster[i].Role], workflowOrder[roster[j].Role]
		if oi != oj {
			return oi < oj
		}
		return roster[i].Name < roster[j].Name
	})

	return roster
}

// Coordinator returns the coordinator's spec. Validate guarantees there is
// exactly one.
func (c Config) Coordinator() (AgentSpec, bool) {
	for _, spec := range c.Agents {
		if spec.Role == RoleCoordinator {
			return spec, true
		}
	}
	return AgentSpec{}, false
}
