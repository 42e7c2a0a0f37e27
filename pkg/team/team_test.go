package team_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

// stubOrchestrator records every run request and returns a canned transcript.
type stubOrchestrator struct {
	reqs       []team.RunRequest
	transcript *chat.Chat
	err        error
}

func (s *stubOrchestrator) Run(_ context.Context, req *team.RunRequest) (*chat.Chat, error) {
	s.reqs = append(s.reqs, *req)
	if s.err != nil {
		return nil, s.err
	}
	return s.transcript, nil
}

func sampleTranscript() *chat.Chat {
	draft := "Draft: " + strings.Repeat("upskilling in AI pays off for Indian IT professionals. ", 5)
	revision := "Revised: " + strings.Repeat("upskilling in AI accelerates careers across Indian IT hubs. ", 5)

	return chat.New(
		message.New("project_manager", role.User, "brief goes here"),
		message.New("content_writer", role.Assistant, draft),
		message.New("content_editor", role.Assistant, revision),
		message.New("project_manager", role.Assistant, "Looks good. TERMINATE"),
	)
}

func newTestTeam(t *testing.T, orch team.Orchestrator) *team.Team {
	t.Helper()

	providerCfg := team.ProviderConfig{
		Kind:    team.KindLMStudio,
		BaseURL: "http://127.0.0.1:1234/v1",
		Model:   "llama-2-7b-chat",
	}

	tm, err := team.New(team.DefaultConfig(), team.DefaultRegional(), providerCfg, orch)
	require.NoError(t, err)

	tm.OutputDir = "" // individual tests opt in to artifacts

	return tm
}

func TestNew_RequiresOrchestrator(t *testing.T) {
	_, err := team.New(team.DefaultConfig(), team.DefaultRegional(), team.ProviderConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orchestrator")
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := team.DefaultConfig()
	cfg.Team.MaxRounds = -1

	_, err := team.New(cfg, team.DefaultRegional(), team.ProviderConfig{}, &stubOrchestrator{})
	require.Error(t, err)
}

func TestCreateContent_EmptyBrief(t *testing.T) {
	tm := newTestTeam(t, &stubOrchestrator{transcript: sampleTranscript()})

	_, err := tm.CreateContent(context.Background(), team.ContentRequest{Brief: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brief is required")
}

func TestCreateContent_DeterministicPayload(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	req := team.ContentRequest{
		Brief:       "Diwali campaign for a Bangalore tech startup",
		ContentType: "social_media_campaign",
	}

	_, err := tm.CreateContent(context.Background(), req)
	require.NoError(t, err)
	_, err = tm.CreateContent(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, orch.reqs, 2)
	assert.Equal(t, orch.reqs[0], orch.reqs[1])
}

func TestCreateContent_EnhancedBrief(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	_, err := tm.CreateContent(context.Background(), team.ContentRequest{
		Brief: "Software platform for young professionals in Bangalore",
	})
	require.NoError(t, err)

	require.Len(t, orch.reqs, 1)
	got := orch.reqs[0]

	assert.Equal(t, "general", got.ContentType)
	assert.Equal(t, "project_manager", got.Coordinator)
	assert.Contains(t, got.Brief, "CONTENT CREATION PROJECT - INDIAN MARKET FOCUS")
	assert.Contains(t, got.Brief, "Software platform for young professionals")
	assert.Contains(t, got.Brief, "Industry: technology")
	assert.Contains(t, got.Brief, "Audience Segment: young_professionals")
	assert.Contains(t, got.Brief, "LLM PROVIDER: LMSTUDIO")
	assert.Contains(t, got.Brief, "diwali")

	// The roster rides along in workflow order.
	require.Len(t, got.Agents, 5)
	assert.Equal(t, "content_writer", got.Agents[0].Name)
	assert.Equal(t, "project_manager", got.Agents[4].Name)
}

func TestCreateContent_OrchestratorErrorPassthrough(t *testing.T) {
	sentinel := errors.New("backend unreachable")
	tm := newTestTeam(t, &stubOrchestrator{err: sentinel})

	_, err := tm.CreateContent(context.Background(), team.ContentRequest{Brief: "anything"})
	require.ErrorIs(t, err, sentinel)
}

func TestCreateContent_SavesArtifacts(t *testing.T) {
	tm := newTestTeam(t, &stubOrchestrator{transcript: sampleTranscript()})
	tm.OutputDir = t.TempDir()

	result, err := tm.CreateContent(context.Background(), team.ContentRequest{Brief: "a brief"})
	require.NoError(t, err)
	require.NotNil(t, result)

	for _, pattern := range []string{
		"conversation_log_*.md",
		"final_campaign_*.md",
		"agent_contributions_*.json",
		"project_metadata_*.json",
	} {
		matches, err := filepath.Glob(filepath.Join(tm.OutputDir, pattern))
		require.NoError(t, err)
		assert.Len(t, matches, 1, pattern)
	}

	logs, err := filepath.Glob(filepath.Join(tm.OutputDir, "conversation_log_*.md"))
	require.NoError(t, err)
	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)

	// Writer draft vs editor revision shows up as a diff.
	assert.Contains(t, string(data), "REVISION DIFF")
	assert.Contains(t, string(data), "content_writer")
	assert.Contains(t, string(data), "Initiated by: project_manager")
}

func TestCreateBlogArticle_DefaultWordCount(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	_, err := tm.CreateBlogArticle(context.Background(), "AI upskilling", "young_professionals", 0)
	require.NoError(t, err)

	require.Len(t, orch.reqs, 1)
	assert.Contains(t, orch.reqs[0].Brief, "1500 words")
	assert.Equal(t, "blog_article", orch.reqs[0].ContentType)
}

func TestCreateSocialMediaCampaign(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	_, err := tm.CreateSocialMediaCampaign(context.Background(), "Weekend dining in Bandra")
	require.NoError(t, err)

	require.Len(t, orch.reqs, 1)
	assert.Contains(t, orch.reqs[0].Brief, "SOCIAL MEDIA CAMPAIGN PROJECT")
	assert.Contains(t, orch.reqs[0].Brief, "WhatsApp")
	assert.Equal(t, "social_media_campaign", orch.reqs[0].ContentType)
}

func TestCreateEmailCampaign(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	_, err := tm.CreateEmailCampaign(context.Background(), "Diwali sale", "families_with_children")
	require.NoError(t, err)

	require.Len(t, orch.reqs, 1)
	assert.Contains(t, orch.reqs[0].Brief, "EMAIL MARKETING CAMPAIGN")
	assert.Equal(t, "email_campaign", orch.reqs[0].ContentType)
}

func TestAnalyzeCompetitorContent(t *testing.T) {
	orch := &stubOrchestrator{transcript: sampleTranscript()}
	tm := newTestTeam(t, orch)

	_, err := tm.AnalyzeCompetitorContent(context.Background(), "BigRival Pvt Ltd", "festival campaigns")
	require.NoError(t, err)

	require.Len(t, orch.reqs, 1)
	assert.Contains(t, orch.reqs[0].Brief, "COMPETITOR CONTENT ANALYSIS")
	assert.Equal(t, "competitor_analysis", orch.reqs[0].ContentType)
}

func TestPerformanceReport(t *testing.T) {
	tm := newTestTeam(t, &stubOrchestrator{transcript: sampleTranscript()})
	tm.OutputDir = t.TempDir()

	for i := 0; i < 7; i++ {
		name := filepath.Join(tm.OutputDir, "project_metadata_2026010"+string(rune('0'+i))+"_120000.json")
		content := `{"content_type":"blog_article","stats":{"total_messages":4,"rounds":3,"total_words":100}}`
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}
	// Malformed files are skipped, not fatal.
	require.NoError(t, os.WriteFile(
		filepath.Join(tm.OutputDir, "project_metadata_bad.json"), []byte("{"), 0o644))

	report, err := tm.PerformanceReport()
	require.NoError(t, err)

	assert.Equal(t, 7, report.TotalProjects)
	assert.Equal(t, 28, report.TotalMessages)
	assert.Equal(t, 700, report.TotalWords)
	assert.Len(t, report.Recent, 5)
}
