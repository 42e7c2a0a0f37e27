package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/chat"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/message"
	"github.com/sameeullahsiddiqui/agentic-content-management-team/pkg/chats/role"
)

func TestAppendAndAccessors(t *testing.T) {
	c := chat.New()

	_, ok := c.First()
	assert.False(t, ok)
	_, ok = c.Last()
	assert.False(t, ok)

	c.Append(message.New("content_writer", role.Assistant, "draft"))
	c.Append(message.New("content_editor", role.Assistant, "revision"))

	require.Equal(t, 2, c.Len())

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, "content_writer", first.Sender)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "content_editor", last.Sender)

	assert.Equal(t, "draft", c.At(0).Text)
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := chat.New(message.New("content_writer", role.Assistant, "draft"))

	msgs := c.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, "draft", c.At(0).Text)
}

func TestBySender(t *testing.T) {
	c := chat.New(
		message.New("content_writer", role.Assistant, "one"),
		message.New("content_editor", role.Assistant, "two"),
		message.New("content_writer", role.Assistant, "three"),
	)

	writer := c.BySender("content_writer")
	require.Len(t, writer, 2)
	assert.Equal(t, "one", writer[0].Text)
	assert.Equal(t, "three", writer[1].Text)
}

func TestEachStopsEarly(t *testing.T) {
	c := chat.New(
		message.New("a", role.User, "1"),
		message.New("b", role.User, "2"),
		message.New("c", role.User, "3"),
	)

	var seen int
	c.Each(func(i int, _ message.Message) bool {
		seen++
		return i < 1
	})

	assert.Equal(t, 2, seen)
}
