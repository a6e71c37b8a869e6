package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taetu445/RescueBites/internal/chat"
)

func TestProcessChatPrependsSystemPrompt(t *testing.T) {
	app, _, completer := newTestApp(t, nil)
	completer.reply = "Today you served 42 plates."

	reply, err := app.ProcessChat(context.Background(), []chat.Message{
		{Role: "user", Content: "Summarize today's serving"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Today you served 42 plates.", reply)

	require.Len(t, completer.received, 2)
	assert.Equal(t, "system", completer.received[0].Role)
	assert.Contains(t, completer.received[0].Content, "PLATEPILOT")
	assert.Equal(t, "user", completer.received[1].Role)
}

func TestProcessChatEmptyConversation(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	_, err := app.ProcessChat(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestProcessChatProviderFailure(t *testing.T) {
	app, _, completer := newTestApp(t, nil)
	completer.err = chat.ErrEmptyReply

	_, err := app.ProcessChat(context.Background(), []chat.Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, chat.ErrEmptyReply)
}
