package chat

import (
	"errors"
	"strings"
)

// ErrEmptyText is returned when a message would carry only whitespace.
var ErrEmptyText = errors.New("message text is empty")

// Origin identifies who authored a transcript entry.
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// Message is a single immutable transcript entry.
type Message struct {
	Text   string `json:"text"`
	Origin Origin `json:"origin"`
}

// NewUserMessage builds a user-authored message, keeping text as typed.
func NewUserMessage(text string) (Message, error) {
	return newMessage(text, OriginUser)
}

// NewBotMessage builds a bot-authored message.
func NewBotMessage(text string) (Message, error) {
	return newMessage(text, OriginBot)
}

// IsUser reports whether the message was typed by the user.
func (m Message) IsUser() bool {
	return m.Origin == OriginUser
}

func newMessage(text string, origin Origin) (Message, error) {
	if IsBlank(text) {
		return Message{}, ErrEmptyText
	}
	return Message{Text: text, Origin: origin}, nil
}

// IsBlank reports whether text is empty after trimming whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
