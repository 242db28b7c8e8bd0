package openai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// NewCreateParams builds a request from a widget transcript. User entries
// become user messages and bot entries assistant messages; system, when
// non-empty, is prepended.
func NewCreateParams(model, system string, messages []chat.Message) ChatCompletionCreateParams {
	params := ChatCompletionCreateParams{
		Model:    model,
		Messages: make([]MessageParam, 0, len(messages)+1),
	}
	if system != "" {
		params.Messages = append(params.Messages, MessageParam{Role: RoleSystem, Content: TextContent(system)})
	}
	for _, msg := range messages {
		role := RoleAssistant
		if msg.IsUser() {
			role = RoleUser
		}
		params.Messages = append(params.Messages, MessageParam{Role: role, Content: TextContent(msg.Text)})
	}
	return params
}

// SchemaMessages converts the request messages to eino schema messages.
func (p ChatCompletionCreateParams) SchemaMessages() []*schema.Message {
	out := make([]*schema.Message, 0, len(p.Messages))
	for _, msg := range p.Messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, schema.SystemMessage(msg.Content.String()))
		case RoleAssistant:
			out = append(out, schema.AssistantMessage(msg.Content.String(), nil))
		case RoleUser:
			converted := schema.UserMessage(msg.Content.String())
			if msg.Content.Parts != nil {
				converted.Content = ""
				converted.MultiContent = schemaParts(msg.Content.Parts)
			}
			out = append(out, converted)
		}
	}
	return out
}

func schemaParts(parts []ContentPart) []schema.ChatMessagePart {
	out := make([]schema.ChatMessagePart, 0, len(parts))
	for _, part := range parts {
		switch part.Type {
		case ContentPartText:
			out = append(out, schema.ChatMessagePart{Type: schema.ChatMessagePartTypeText, Text: part.Text})
		case ContentPartImageURL:
			if part.ImageURL == nil {
				continue
			}
			out = append(out, schema.ChatMessagePart{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:    part.ImageURL.URL,
					Detail: schema.ImageURLDetail(part.ImageURL.Detail),
				},
			})
		}
	}
	return out
}
