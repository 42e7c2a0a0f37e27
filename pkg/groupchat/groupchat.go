// Package groupchat implements the multi-agent collaboration loop. Agents
// take turns on a shared transcript until a termination phrase appears or the
// round budget runs out.
package groupchat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/agents"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/model"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/provider"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

var _ team.Orchestrator = (*GroupChat)(nil)

// GroupChat runs the team conversation.
type GroupChat struct {
	// Logger receives per-turn progress events. Defaults to a no-op logger.
	Logger zerolog.Logger

	// NewCompleter builds the backend for each agent. Defaults to
	// team.NewCompleter; tests inject scripted completers here.
	NewCompleter func(cfg team.ProviderConfig, m model.Model) (provider.Completer, error)
}

// New creates a GroupChat with defaults.
func New() *GroupChat {
	return &GroupChat{
		Logger:       zerolog.Nop(),
		NewCompleter: team.NewCompleter,
	}
}

// Run executes the collaboration and returns the full transcript. The first
// transcript entry is the enhanced brief, delivered by the coordinator; each
// following entry is one agent's turn.
func (g *GroupChat) Run(ctx context.Context, req *team.RunRequest) (*chat.Chat, error) {
	if len(req.Agents) == 0 {
		return nil, fmt.Errorf("groupchat: no agents configured")
	}

	factory := g.NewCompleter
	if factory == nil {
		factory = team.NewCompleter
	}

	roster := make([]*agents.Agent, 0, len(req.Agents))
	coordinator := req.Coordinator
	if coordinator == "" {
		coordinator = req.Agents[0].Name
	}
	for _, spec := range req.Agents {
		completer, err := factory(req.Provider, model.Model{
			Name:        spec.Model,
			Temperature: spec.Temperature,
			MaxTokens:   spec.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("groupchat: agent %s: %w", spec.Name, err)
		}

		if req.Coordinator == "" && spec.Role == team.RoleCoordinator {
			coordinator = spec.Name
		}
		roster = append(roster, agents.New(spec, req.Regional, completer))
	}

	transcript := chat.New()
	transcript.Append(message.New(coordinator, role.User, req.Brief))

	phrases := lowerAll(req.Settings.TerminationPhrases)

	for round := 0; round < req.Settings.MaxRounds; round++ {
		speaker := g.selectSpeaker(roster, transcript, req.Settings.SpeakerSelection, round)

		reply, err := g.takeTurn(ctx, speaker, transcript)
		if err != nil {
			return nil, err
		}

		transcript.Append(reply)

		evt := g.Logger.Debug().
			Int("round", round).
			Str("agent", speaker.Spec.Name).
			Int("words", reply.WordCount())
		if tracked, ok := speaker.Completer.(provider.UsageReporter); ok {
			evt = evt.Int("agent_tokens", tracked.TokenUsage().Total())
		}
		evt.Msg("turn complete")

		if terminated(reply.Text, phrases) {
			g.Logger.Info().
				Int("rounds", round+1).
				Str("agent", speaker.Spec.Name).
				Msg("collaboration terminated")
			break
		}
	}

	return transcript, nil
}

// takeTurn runs one agent reply under the agent's own timeout.
func (g *GroupChat) takeTurn(ctx context.Context, speaker *agents.Agent, transcript *chat.Chat) (message.Message, error) {
	if speaker.Spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(speaker.Spec.Timeout)*time.Second)
		defer cancel()
	}

	return speaker.Reply(ctx, viewFor(speaker, transcript))
}

// selectSpeaker picks the next agent. Round-robin walks the roster in
// workflow order; auto selection follows mentions in the last message and
// falls back to round-robin when nothing is mentioned.
func (g *GroupChat) selectSpeaker(roster []*agents.Agent, transcript *chat.Chat, method string, round int) *agents.Agent {
	next := roster[round%len(roster)]
	if method != team.SelectionAuto {
		return next
	}

	last, ok := transcript.Last()
	if !ok {
		return next
	}

	lower := strings.ToLower(last.Text)
	for _, a := range roster {
		if a.Spec.Name == last.Sender {
			continue
		}
		if strings.Contains(lower, strings.ToLower(a.Spec.Name)) {
			return a
		}
	}

	return next
}

// viewFor renders the shared transcript from one agent's perspective: the
// agent's system message first, its own turns as assistant messages, and
// everyone else's turns as user messages prefixed with the sender's name.
func viewFor(a *agents.Agent, transcript *chat.Chat) *chat.Chat {
	view := chat.New()
	view.Append(message.New("", role.System, a.SystemMessage))

	for _, m := range transcript.Messages() {
		if m.Sender == a.Spec.Name {
			view.Append(message.New(m.Sender, role.Assistant, m.Text))
			continue
		}
		view.Append(message.New(m.Sender, role.User, fmt.Sprintf("%s: %s", m.Sender, m.Text)))
	}

	return view
}

func lowerAll(phrases []string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = strings.ToLower(p)
	}
	return out
}

func terminated(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
