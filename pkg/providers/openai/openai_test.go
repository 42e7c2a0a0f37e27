package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/openai"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/providers/usage"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *openai.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return openai.New(srv.URL, "test-key", "gpt-4", nil)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func completionResponse(text string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]any{"role": "assistant", "content": text},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 7},
	}
}

func TestComplete(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := readBody(t, r)
		assert.Equal(t, "gpt-4", req["model"])

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)

		first, _ := msgs[0].(map[string]any)
		assert.Equal(t, "system", first["role"])

		writeJSON(t, w, completionResponse("Namaste! Here is your draft."))
	})

	c := chat.New(
		message.New("", role.System, "You are a content writer."),
		message.New("project_manager", role.User, "Write a blog intro."),
	)

	reply, err := adapter.Complete(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, role.Assistant, reply.Role)
	assert.Equal(t, "Namaste! Here is your draft.", reply.Text)

	last, ok := adapter.Usage.Last()
	require.True(t, ok)
	assert.Equal(t, 12, last.InputTokens)
	assert.Equal(t, 7, last.OutputTokens)

	// The reply carries its own usage so downstream stats need no adapter access.
	v, ok := reply.GetMeta("usage")
	require.True(t, ok)
	assert.Equal(t, usage.TokenCount{InputTokens: 12, OutputTokens: 7}, v)

	assert.Equal(t, 19, adapter.TokenUsage().Total())
}

func TestComplete_TemperatureAndMaxTokens(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		assert.Equal(t, 0.7, req["temperature"])
		assert.Equal(t, float64(2000), req["max_tokens"])

		writeJSON(t, w, completionResponse("ok"))
	})
	adapter.Temperature = 0.7
	adapter.MaxTokens = 2000

	_, err := adapter.Complete(context.Background(), chat.New(
		message.New("project_manager", role.User, "hi"),
	))
	require.NoError(t, err)
}

func TestComplete_ZeroTemperatureOmitted(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)

		_, present := req["temperature"]
		assert.False(t, present)

		writeJSON(t, w, completionResponse("ok"))
	})

	_, err := adapter.Complete(context.Background(), chat.New(
		message.New("project_manager", role.User, "hi"),
	))
	require.NoError(t, err)
}

func TestComplete_ErrorStatus(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := adapter.Complete(context.Background(), chat.New(
		message.New("project_manager", role.User, "hi"),
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestComplete_EmptyChoices(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"choices": []any{}})
	})

	_, err := adapter.Complete(context.Background(), chat.New(
		message.New("project_manager", role.User, "hi"),
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty choices")
}
