package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

func TestNewMessageRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n", "  "} {
		_, err := chat.NewUserMessage(text)
		assert.ErrorIs(t, err, chat.ErrEmptyText, "text %q", text)

		_, err = chat.NewBotMessage(text)
		assert.ErrorIs(t, err, chat.ErrEmptyText, "text %q", text)
	}
}

func TestNewUserMessageKeepsRawText(t *testing.T) {
	msg, err := chat.NewUserMessage("  hi  ")
	require.NoError(t, err)
	assert.Equal(t, chat.Message{Text: "  hi  ", Origin: chat.OriginUser}, msg)
	assert.True(t, msg.IsUser())
}

func TestTranscriptAppendOnly(t *testing.T) {
	tr := chat.NewTranscript()
	_, ok := tr.Last()
	assert.False(t, ok)

	require.NoError(t, tr.Append(chat.Message{Text: "hi", Origin: chat.OriginUser}))
	require.NoError(t, tr.Append(chat.Message{Text: "hello back", Origin: chat.OriginBot}))

	snapshot := tr.Messages()
	snapshot[0].Text = "mutated"

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, "hi", tr.Messages()[0].Text)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, chat.OriginBot, last.Origin)
}

func TestTranscriptRejectsBlankMessage(t *testing.T) {
	tr := chat.NewTranscript()
	err := tr.Append(chat.Message{Text: "   ", Origin: chat.OriginUser})
	assert.ErrorIs(t, err, chat.ErrEmptyText)
	assert.Equal(t, 0, tr.Len())
}
