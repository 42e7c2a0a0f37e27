// Package azure provides a Completer for the Azure OpenAI Chat Completions API.
//
// Azure routes requests by deployment name rather than by a model field in
// the request body, and authenticates with an "api-key" header instead of a
// Bearer token.
package azure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/provider"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/usage"
)

// DefaultAPIVersion is used when no api-version is configured.
const DefaultAPIVersion = "2023-05-15"

var _ provider.Completer = (*Adapter)(nil)

// Adapter implements provider.Completer for Azure OpenAI deployments.
type Adapter struct {
	provider.Provider

	// APIVersion is the api-version query parameter sent with every request.
	APIVersion string
}

// New creates an Adapter for the given Azure OpenAI endpoint and deployment.
// The endpoint should be "https://<resource>.openai.azure.com" (no trailing
// slash); deployment is the deployed model name (e.g. "gpt-35-turbo").
func New(endpoint, apiKey, deployment, apiVersion string, client *http.Client) *Adapter {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}

	a := &Adapter{APIVersion: apiVersion}
	a.BaseURL = endpoint
	a.Auth = provider.Auth{Key: apiKey, Header: "api-key"}
	a.Name = deployment
	a.Client = client

	return a
}

// Complete sends a conversation to the deployment's chat completions endpoint
// and returns the assistant's reply.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	path := fmt.Sprintf("/openai/deployments/%s/chat/completions?api-version=%s",
		url.PathEscape(a.Name), url.QueryEscape(a.APIVersion))

	req := buildRequest(a.Temperature, a.MaxTokens, c)

	var resp apiResponse
	if err := a.PostJSON(ctx, path, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("azure: %w", err)
	}

	tc := usage.TokenCount{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	a.Usage.Add(tc)

	if len(resp.Choices) == 0 {
		return message.Message{}, fmt.Errorf("azure: empty choices in response")
	}

	reply := message.New("", role.Assistant, resp.Choices[0].Message.Content)
	reply.SetMeta("usage", tc)

	return reply, nil
}

// --- wire types ---

// The deployment is addressed in the URL, so the request body carries no
// model field.
type apiRequest struct {
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

func buildRequest(temperature float64, maxTokens int, c *chat.Chat) apiRequest {
	req := apiRequest{MaxTokens: maxTokens}

	if temperature != 0 {
		t := temperature
		req.Temperature = &t
	}

	for _, m := range c.Messages() {
		req.Messages = append(req.Messages, apiMessage{
			Role:    m.Role.String(),
			Content: m.Text,
		})
	}

	return req
}
