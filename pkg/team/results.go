package team

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/usage"
)

// ConversationStats summarizes a finished collaboration.
type ConversationStats struct {
	TotalMessages int `json:"total_messages"`
	Rounds        int `json:"rounds"`
	TotalWords    int `json:"total_words"`
	TotalTokens   int `json:"total_tokens"`
}

// Contribution is one agent's share of the conversation.
type Contribution struct {
	Agent    string `json:"agent"`
	Role     Role   `json:"role"`
	Messages int    `json:"messages"`
	Words    int    `json:"words"`
	Tokens   int    `json:"tokens"`
}

// EvolutionEntry is a snapshot of the content as it moved through the team.
type EvolutionEntry struct {
	Step    int    `json:"step"`
	Agent   string `json:"agent"`
	Preview string `json:"preview"`
	Words   int    `json:"words"`
}

// FinalContent is the deliverable extracted from the transcript.
type FinalContent struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
	Words int    `json:"words"`
}

// Result is the outcome of one content project.
type Result struct {
	ContentType   string            `json:"content_type"`
	CreatedAt     time.Time         `json:"created_at"`
	Stats         ConversationStats `json:"stats"`
	Contributions []Contribution    `json:"contributions"`
	Evolution     []EvolutionEntry  `json:"evolution"`
	Final         FinalContent      `json:"final"`
}

// evolutionMinChars filters out short coordination chatter from the content
// evolution trail.
const evolutionMinChars = 100

const previewChars = 100

// ExtractResult distills a transcript into a Result. The final deliverable is
// the longest message produced by a content-producing agent (writer, editor,
// or SEO specialist), found by scanning the conversation backwards; when no
// such agent spoke, the longest message overall is used.
func ExtractResult(transcript *chat.Chat, contentType string, cfg Config) *Result {
	msgs := transcript.Messages()

	result := &Result{
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
		Stats: ConversationStats{
			TotalMessages: len(msgs),
		},
	}
	if len(msgs) > 1 {
		result.Stats.Rounds = len(msgs) - 1
	}

	for _, m := range msgs {
		result.Stats.TotalWords += m.WordCount()
		result.Stats.TotalTokens += messageTokens(m)
	}

	// Roster order keeps the contribution list deterministic.
	for _, spec := range cfg.Roster() {
		agentMsgs := transcript.BySender(spec.Name)
		if len(agentMsgs) == 0 {
			continue
		}

		c := Contribution{Agent: spec.Name, Role: spec.Role, Messages: len(agentMsgs)}
		for _, m := range agentMsgs {
			c.Words += m.WordCount()
			c.Tokens += messageTokens(m)
		}
		result.Contributions = append(result.Contributions, c)
	}

	transcript.Each(func(i int, m message.Message) bool {
		if len(m.Text) < evolutionMinChars || m.Sender == "" {
			return true
		}
		result.Evolution = append(result.Evolution, EvolutionEntry{
			Step:    i,
			Agent:   m.Sender,
			Preview: preview(m.Text),
			Words:   m.WordCount(),
		})
		return true
	})

	result.Final = finalContent(msgs, cfg)

	return result
}

// messageTokens reads the usage metadata a backend attached to its reply.
func messageTokens(m message.Message) int {
	v, ok := m.GetMeta("usage")
	if !ok {
		return 0
	}
	tc, ok := v.(usage.TokenCount)
	if !ok {
		return 0
	}
	return tc.Total()
}

// preview truncates on rune boundaries so multibyte text (rupee signs,
// emoji, Devanagari) survives intact.
func preview(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= previewChars {
		return string(runes)
	}
	return string(runes[:previewChars]) + "..."
}

func contentProducer(r Role) bool {
	switch r {
	case RoleWriter, RoleEditor, RoleSEOSpecialist:
		return true
	}
	return false
}

func finalContent(msgs []message.Message, cfg Config) FinalContent {
	var best message.Message

	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if !contentProducer(cfg.Agents[m.Sender].Role) {
			continue
		}
		if len(m.Text) > len(best.Text) {
			best = m
		}
	}

	if best.Text == "" {
		for _, m := range msgs {
			if len(m.Text) > len(best.Text) {
				best = m
			}
		}
	}

	return FinalContent{
		Agent: best.Sender,
		Text:  best.Text,
		Words: best.WordCount(),
	}
}

const artifactTimestamp = "20060102_150405"

// saveArtifacts writes the conversation log, the final campaign, the agent
// contributions, and the project metadata into OutputDir, all sharing one
// timestamp suffix.
func (t *Team) saveArtifacts(result *Result, transcript *chat.Chat) error {
	if err := os.MkdirAll(t.OutputDir, 0o755); err != nil {
		return fmt.Errorf("team: create output dir: %w", err)
	}

	ts := result.CreatedAt.Format(artifactTimestamp)

	if err := t.writeConversationLog(result, transcript, ts); err != nil {
		return err
	}
	if err := t.writeFinalCampaign(result, ts); err != nil {
		return err
	}
	if err := t.writeJSON(fmt.Sprintf("agent_contributions_%s.json", ts), result.Contributions); err != nil {
		return err
	}
	if err := t.writeJSON(fmt.Sprintf("project_metadata_%s.json", ts), result); err != nil {
		return err
	}

	t.Logger.Info().Str("dir", t.OutputDir).Str("timestamp", ts).Msg("artifacts saved")

	return nil
}

func (t *Team) writeConversationLog(result *Result, transcript *chat.Chat, ts string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conversation Log - %s\n\n", result.ContentType)
	fmt.Fprintf(&b, "Created: %s\n\n", result.CreatedAt.Format(time.RFC3339))

	if brief, ok := transcript.First(); ok {
		fmt.Fprintf(&b, "Initiated by: %s\n\n", brief.Sender)
	}

	for i, m := range transcript.Messages() {
		sender := m.Sender
		if sender == "" {
			sender = m.Role.String()
		}
		fmt.Fprintf(&b, "## [%d] %s\n\n%s\n\n", i, sender, m.Text)
	}

	if diff := revisionDiff(transcript, t.cfg); diff != "" {
		b.WriteString("## REVISION DIFF\n\n")
		b.WriteString("```diff\n")
		b.WriteString(diff)
		b.WriteString("```\n")
	}

	path := filepath.Join(t.OutputDir, fmt.Sprintf("conversation_log_%s.md", ts))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("team: write conversation log: %w", err)
	}
	return nil
}

// revisionDiff shows how the editor changed the writer's draft: a unified
// diff between the first writer message and the first editor message.
func revisionDiff(transcript *chat.Chat, cfg Config) string {
	var draft, revision string

	for _, m := range transcript.Messages() {
		switch cfg.Agents[m.Sender].Role {
		case RoleWriter:
			if draft == "" {
				draft = m.Text
			}
		case RoleEditor:
			if revision == "" {
				revision = m.Text
			}
		}
	}

	if draft == "" || revision == "" {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(draft),
		B:        difflib.SplitLines(revision),
		FromFile: "writer_draft",
		ToFile:   "editor_revision",
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}

func (t *Team) writeFinalCampaign(result *Result, ts string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Final Campaign - %s\n\n", result.ContentType)
	fmt.Fprintf(&b, "Produced by: %s (%d words)\n\n", result.Final.Agent, result.Final.Words)
	b.WriteString("---\n\n")
	b.WriteString(result.Final.Text)
	b.WriteString("\n")

	path := filepath.Join(t.OutputDir, fmt.Sprintf("final_campaign_%s.md", ts))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("team: write final campaign: %w", err)
	}
	return nil
}

func (t *Team) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("team: marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(t.OutputDir, name), data, 0o644); err != nil {
		return fmt.Errorf("team: write %s: %w", name, err)
	}
	return nil
}

// Report aggregates the metadata of past projects found in OutputDir.
type Report struct {
	TotalProjects int      `json:"total_projects"`
	TotalMessages int      `json:"total_messages"`
	TotalWords    int      `json:"total_words"`
	Recent        []Result `json:"recent"`
}

// recentProjects caps how many past projects a report details.
const recentProjects = 5

// PerformanceReport scans OutputDir for saved project metadata and aggregates
// it. Metadata files that fail to parse are skipped.
func (t *Team) PerformanceReport() (*Report, error) {
	pattern := filepath.Join(t.OutputDir, "project_metadata_*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("team: scan output dir: %w", err)
	}

	// Timestamped names sort chronologically.
	sort.Strings(paths)

	report := &Report{}
	var all []Result

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable metadata")
			continue
		}

		var r Result
		if err := json.Unmarshal(data, &r); err != nil {
			t.Logger.Warn().Err(err).Str("path", path).Msg("skipping malformed metadata")
			continue
		}

		report.TotalProjects++
		report.TotalMessages += r.Stats.TotalMessages
		report.TotalWords += r.Stats.TotalWords
		all = append(all, r)
	}

	if len(all) > recentProjects {
		all = all[len(all)-recentProjects:]
	}
	report.Recent = all

	return report, nil
}
