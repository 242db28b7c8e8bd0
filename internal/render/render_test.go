package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

func TestProjectKeepsOrderAndClasses(t *testing.T) {
	lines := Project([]chat.Message{
		{Text: "hi", Origin: chat.OriginUser},
		{Text: "hello back", Origin: chat.OriginBot},
	})

	assert.Equal(t, []Line{
		{Class: ClassUser, Text: "hi"},
		{Class: ClassBot, Text: "hello back"},
	}, lines)
}

func TestProjectEmpty(t *testing.T) {
	assert.Empty(t, Project(nil))
	assert.Equal(t, "", Plain(nil))
}

func TestPlain(t *testing.T) {
	out := Plain([]Line{{Class: ClassUser, Text: "hi"}, {Class: ClassBot, Text: "yo"}})
	assert.Equal(t, "> hi\n< yo\n", out)
}
