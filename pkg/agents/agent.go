// Package agents binds roster specs to LLM completers. Each agent carries a
// role-specific system message rendered with the team's regional settings.
package agents

import (
	"context"
	"fmt"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/provider"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/team"
)

// Agent is one member of the content team.
type Agent struct {
	Spec          team.AgentSpec
	SystemMessage string
	Completer     provider.Completer
}

// New creates an Agent from its roster spec. The system message is built once
// from the role prompt and the regional settings.
func New(spec team.AgentSpec, regional team.RegionalConfig, completer provider.Completer) *Agent {
	return &Agent{
		Spec:          spec,
		SystemMessage: systemMessage(spec, regional),
		Completer:     completer,
	}
}

// Reply sends the agent's view of the conversation to its completer and
// returns the reply stamped with the agent's name.
func (a *Agent) Reply(ctx context.Context, view *chat.Chat) (message.Message, error) {
	reply, err := a.Completer.Complete(ctx, view)
	if err != nil {
		return message.Message{}, fmt.Errorf("agent %s: %w", a.Spec.Name, err)
	}

	reply.Sender = a.Spec.Name

	return reply, nil
}
