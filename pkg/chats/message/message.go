// Package message defines the message type exchanged between content team agents.
package message

import (
	"strings"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
)

// Message is a single contribution to a team conversation. Sender is the
// agent name (e.g. "content_writer") or "user" for the initiating brief.
type Message struct {
	Sender   string
	Role     role.Role
	Text     string
	Metadata map[string]any
}

// New creates a Message with the given sender, role, and text.
func New(sender string, r role.Role, text string) Message {
	return Message{Sender: sender, Role: r, Text: text}
}

// WordCount returns the number of whitespace-separated words in the text.
func (m Message) WordCount() int {
	return len(strings.Fields(m.Text))
}

// SetMeta attaches a metadata value, allocating the map on first use.
func (m *Message) SetMeta(key string, value any) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}
	m.Metadata[key] = value
}

// GetMeta returns a metadata value and whether it was present.
func (m *Message) GetMeta(key string) (any, bool) {
	v, ok := m.Metadata[key]
	return v, ok
}
