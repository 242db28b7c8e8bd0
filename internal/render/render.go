// Package render projects a transcript into display lines.
package render

import (
	"strings"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

const (
	ClassUser = "user-message"
	ClassBot  = "bot-message"
)

// Line is one displayed transcript row.
type Line struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

// Project maps messages to lines, preserving order.
func Project(messages []chat.Message) []Line {
	lines := make([]Line, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, ProjectMessage(msg))
	}
	return lines
}

// ProjectMessage maps a single message to its line.
func ProjectMessage(msg chat.Message) Line {
	class := ClassBot
	if msg.IsUser() {
		class = ClassUser
	}
	return Line{Class: class, Text: msg.Text}
}

// Plain renders lines for a terminal, one per row.
func Plain(lines []Line) string {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(PlainLine(line))
		builder.WriteString("\n")
	}
	return builder.String()
}

// PlainLine renders a single line with a speaker prefix.
func PlainLine(line Line) string {
	if line.Class == ClassUser {
		return "> " + line.Text
	}
	return "< " + line.Text
}
