// Package lmstudio provides a Completer for a local LM Studio server, or any
// other OpenAI-compatible inference endpoint running on the local network.
package lmstudio

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/provider"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/usage"
)

// DefaultBaseURL is the LM Studio server default.
const DefaultBaseURL = "http://127.0.0.1:1234/v1"

// The configured base URL already includes the /v1 prefix.
const completionsPath = "/chat/completions"

var _ provider.Completer = (*Adapter)(nil)

// Adapter implements provider.Completer for OpenAI-compatible local servers.
type Adapter struct {
	provider.Provider
}

// New creates an Adapter for a local inference server. The baseURL is used
// verbatim (e.g. "http://127.0.0.1:1234/v1", no trailing slash); an empty
// apiKey is allowed since local servers usually run without authentication.
func New(baseURL, apiKey, model string, client *http.Client) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = provider.Auth{Key: apiKey}
	a.Name = model
	a.Client = client

	return a
}

// Complete sends a conversation to the local server and returns the reply.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := apiRequest{
		Model:     a.Name,
		MaxTokens: a.MaxTokens,
	}

	if a.Temperature != 0 {
		t := a.Temperature
		req.Temperature = &t
	}

	for _, m := range c.Messages() {
		req.Messages = append(req.Messages, apiMessage{
			Role:    m.Role.String(),
			Content: m.Text,
		})
	}

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("lmstudio: %w", err)
	}

	tc := usage.TokenCount{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	a.Usage.Add(tc)

	if len(resp.Choices) == 0 {
		return message.Message{}, fmt.Errorf("lmstudio: empty choices in response")
	}

	reply := message.New("", role.Assistant, resp.Choices[0].Message.Content)
	reply.SetMeta("usage", tc)

	return reply, nil
}

// --- wire types ---

type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
	Usage   apiUsage    `json:"usage"`
}

type apiChoice struct {
	Message      apiRespMessage `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

type apiRespMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}
