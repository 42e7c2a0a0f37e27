// Package team assembles the content creation team: it loads the agent
// roster and regional settings, resolves the LLM provider, and exposes a
// facade that turns content briefs into finished campaigns through a
// pluggable orchestrator.
package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
)

// ContentRequest is a caller-facing brief for the team.
type ContentRequest struct {
	Brief          string
	ContentType    string // "blog", "social_media", "email", ... Defaults to "general".
	TargetAudience string // Optional; inferred from the brief when empty.
}

// RunRequest is the fully prepared unit of work handed to the orchestrator.
// The Brief field carries the enhanced brief, not the caller's original text.
type RunRequest struct {
	Brief       string
	ContentType string
	Coordinator string // Agent that delivers the brief and signs off.
	Agents      []AgentSpec
	Settings    Settings
	Regional    RegionalConfig
	Provider    ProviderConfig
}

// Orchestrator drives the multi-agent collaboration and returns the full
// conversation transcript. Implementations must not mutate the request.
type Orchestrator interface {
	Run(ctx context.Context, req *RunRequest) (*chat.Chat, error)
}

// Team is the facade over the configured roster, regional settings, provider,
// and orchestrator.
type Team struct {
	cfg      Config
	regional RegionalConfig
	provider ProviderConfig
	orch     Orchestrator

	// Logger receives structured progress events. Defaults to a no-op logger.
	Logger zerolog.Logger

	// OutputDir is where conversation logs and campaign artifacts are saved.
	// An empty value disables artifact saving.
	OutputDir string
}

// New builds a Team. The config is validated before use; the orchestrator is
// injected so callers can swap the collaboration engine.
func New(cfg Config, regional RegionalConfig, providerCfg ProviderConfig, orch Orchestrator) (*Team, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if orch == nil {
		return nil, fmt.Errorf("team: orchestrator is required")
	}

	return &Team{
		cfg:       cfg,
		regional:  regional,
		provider:  providerCfg,
		orch:      orch,
		Logger:    zerolog.Nop(),
		OutputDir: "output",
	}, nil
}

// Config returns the team's validated configuration.
func (t *Team) Config() Config { return t.cfg }

// Regional returns the team's regional settings.
func (t *Team) Regional() RegionalConfig { return t.regional }

// Provider returns the resolved provider configuration.
func (t *Team) Provider() ProviderConfig { return t.provider }

// CreateContent runs the full pipeline for a brief: analyze, enhance, hand
// to the orchestrator, extract the result, and save artifacts. Orchestrator
// errors are returned unmodified.
func (t *Team) CreateContent(ctx context.Context, req ContentRequest) (*Result, error) {
	if strings.TrimSpace(req.Brief) == "" {
		return nil, fmt.Errorf("team: brief is required")
	}
	if req.ContentType == "" {
		req.ContentType = "general"
	}

	analysis := AnalyzeBrief(req.Brief)
	if req.TargetAudience != "" {
		analysis.Audience = req.TargetAudience
	}

	t.Logger.Info().
		Str("content_type", req.ContentType).
		Str("industry", analysis.Industry).
		Str("audience", analysis.Audience).
		Str("provider", string(t.provider.Kind)).
		Msg("starting content project")

	coordinator, _ := t.cfg.Coordinator()

	run := &RunRequest{
		Brief:       t.enhanceBrief(req, analysis),
		ContentType: req.ContentType,
		Coordinator: coordinator.Name,
		Agents:      t.cfg.Roster(),
		Settings:    t.cfg.Team,
		Regional:    t.regional,
		Provider:    t.provider,
	}

	transcript, err := t.orch.Run(ctx, run)
	if err != nil {
		return nil, err
	}

	result := ExtractResult(transcript, req.ContentType, t.cfg)

	t.Logger.Info().
		Int("messages", result.Stats.TotalMessages).
		Int("rounds", result.Stats.Rounds).
		Int("tokens", result.Stats.TotalTokens).
		Msg("content project finished")

	if t.OutputDir != "" {
		if err := t.saveArtifacts(result, transcript); err != nil {
			t.Logger.Warn().Err(err).Msg("saving artifacts failed")
		}
	}

	return result, nil
}

// CreateSocialMediaCampaign expands the brief into a multi-platform social
// media deliverable list before running the pipeline.
func (t *Team) CreateSocialMediaCampaign(ctx context.Context, campaignBrief string) (*Result, error) {
	return t.CreateContent(ctx, ContentRequest{
		Brief:       socialMediaBrief(campaignBrief),
		ContentType: "social_media_campaign",
	})
}

// CreateBlogArticle runs the pipeline for a long-form article. A zero
// wordCount defaults to 1500 words.
func (t *Team) CreateBlogArticle(ctx context.Context, topic, targetAudience string, wordCount int) (*Result, error) {
	if wordCount <= 0 {
		wordCount = 1500
	}

	return t.CreateContent(ctx, ContentRequest{
		Brief:          blogBrief(topic, targetAudience, wordCount),
		ContentType:    "blog_article",
		TargetAudience: targetAudience,
	})
}

// CreateEmailCampaign runs the pipeline for an email series.
func (t *Team) CreateEmailCampaign(ctx context.Context, objective, audienceSegment string) (*Result, error) {
	return t.CreateContent(ctx, ContentRequest{
		Brief:          emailBrief(objective, audienceSegment),
		ContentType:    "email_campaign",
		TargetAudience: audienceSegment,
	})
}

// AnalyzeCompetitorContent runs the pipeline in analysis mode against a
// competitor description.
func (t *Team) AnalyzeCompetitorContent(ctx context.Context, competitorInfo, analysisFocus string) (*Result, error) {
	return t.CreateContent(ctx, ContentRequest{
		Brief:       competitorBrief(competitorInfo, analysisFocus),
		ContentType: "competitor_analysis",
	})
}
