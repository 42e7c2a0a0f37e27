package team_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

func TestAnalyzeBrief(t *testing.T) {
	tests := []struct {
		name     string
		brief    string
		industry string
		audience string
	}{
		{
			name:     "tech startup for professionals",
			brief:    "A Bangalore software startup needs content for young professionals building careers in AI",
			industry: "technology",
			audience: "young_professionals",
		},
		{
			name:     "restaurant for families",
			brief:    "Family restaurant in Mumbai serving authentic cuisine, targeting parents with kids",
			industry: "food",
			audience: "families_with_children",
		},
		{
			name:     "education for students",
			brief:    "Online learning platform offering courses to college students",
			industry: "technology", // "platform" matches before "learning"
			audience: "students",
		},
		{
			name:     "no keywords falls back",
			brief:    "Write something nice about our shop in Jaipur",
			industry: "general",
			audience: "middle_class_families",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := team.AnalyzeBrief(tt.brief)
			assert.Equal(t, tt.industry, got.Industry)
			assert.Equal(t, tt.audience, got.Audience)
		})
	}
}

func TestAnalyzeBrief_Deterministic(t *testing.T) {
	brief := "Diwali sale campaign for a retail store targeting families and students"

	first := team.AnalyzeBrief(brief)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, team.AnalyzeBrief(brief))
	}
}
