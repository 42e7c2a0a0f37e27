package team

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RegionalConfig holds Indian market settings used to ground every agent's
// instructions and the enhanced brief.
type RegionalConfig struct {
	TargetRegions   []string            `yaml:"target_regions"`
	Languages       Languages           `yaml:"languages"`
	CulturalContext CulturalContext     `yaml:"cultural_context"`
	MarketSegments  map[string][]string `yaml:"market_segments"`
}

// Languages lists the language mix for content production.
type Languages struct {
	Primary   string   `yaml:"primary"`
	Secondary string   `yaml:"secondary"`
	Regional  []string `yaml:"regional"`
}

// CulturalContext carries the cultural hooks content should lean on.
type CulturalContext struct {
	Festivals     []string `yaml:"festivals"`
	BusinessHours string   `yaml:"business_hours"`
	Currency      string   `yaml:"currency"`
	DateFormat    string   `yaml:"date_format"`
}

// DefaultRegional returns the documented pan-India fallback configuration.
func DefaultRegional() RegionalConfig {
	return RegionalConfig{
		TargetRegions: []string{"mumbai", "delhi", "bangalore", "pune", "hyderabad", "chennai"},
		Languages: Languages{
			Primary:   "english",
			Secondary: "hindi",
			Regional:  []string{"tamil", "bengali", "telugu", "marathi"},
		},
		CulturalContext: CulturalContext{
			Festivals:     []string{"diwali", "holi", "eid", "christmas", "dussehra"},
			BusinessHours: "10:00-19:00",
			Currency:      "INR",
			DateFormat:    "DD/MM/YYYY",
		},
		MarketSegments: map[string][]string{
			"metros": {"mumbai", "delhi", "bangalore", "chennai", "kolkata", "hyderabad"},
			"tier2":  {"pune", "ahmedabad", "surat", "jaipur", "lucknow", "kanpur"},
			"tier3":  {"agra", "meerut", "rajkot", "kalyan", "vasai", "aurangabad"},
		},
	}
}

// LoadRegional reads a regional_settings.yaml file. A missing file yields
// DefaultRegional; a file that does not parse is a malformed-configuration
// error. Empty sections are filled from the defaults.
func LoadRegional(path string) (RegionalConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultRegional(), nil
	}
	if err != nil {
		return RegionalConfig{}, fmt.Errorf("team: load regional config: %w", err)
	}

	var rc RegionalConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return RegionalConfig{}, fmt.Errorf("team: parse regional config: %w", err)
	}

	def := DefaultRegional()
	if len(rc.TargetRegions) == 0 {
		rc.TargetRegions = def.TargetRegions
	}
	if rc.Languages.Primary == "" {
		rc.Languages = def.Languages
	}
	if len(rc.CulturalContext.Festivals) == 0 {
		rc.CulturalContext.Festivals = def.CulturalContext.Festivals
	}
	if rc.CulturalContext.Currency == "" {
		rc.CulturalContext.Currency = def.CulturalContext.Currency
	}
	if rc.CulturalContext.BusinessHours == "" {
		rc.CulturalContext.BusinessHours = def.CulturalContext.BusinessHours
	}
	if rc.CulturalContext.DateFormat == "" {
		rc.CulturalContext.DateFormat = def.CulturalContext.DateFormat
	}
	if len(rc.MarketSegments) == 0 {
		rc.MarketSegments = def.MarketSegments
	}

	return rc, nil
}
