// Package openai mirrors the request and response shapes of the
// chat-completions API.
package openai

import (
	"encoding/json"
	"fmt"
)

// Role of a message author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPartType discriminates ContentPart.
type ContentPartType string

const (
	ContentPartText     ContentPartType = "text"
	ContentPartImageURL ContentPartType = "image_url"
)

// ImageDetail is the requested detail level of an image part.
type ImageDetail string

const (
	ImageDetailAuto ImageDetail = "auto"
	ImageDetailLow  ImageDetail = "low"
	ImageDetailHigh ImageDetail = "high"
)

// ImageURL is either a URL or base64 encoded image data.
type ImageURL struct {
	URL    string      `json:"url"`
	Detail ImageDetail `json:"detail,omitempty"`
}

// ContentPart is a text or image_url part of user content.
type ContentPart struct {
	Type     ContentPartType `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *ImageURL       `json:"image_url,omitempty"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentPartText, Text: text}
}

// ImagePart builds an image_url content part.
func ImagePart(url string, detail ImageDetail) ContentPart {
	return ContentPart{Type: ContentPartImageURL, ImageURL: &ImageURL{URL: url, Detail: detail}}
}

// Content is string | []ContentPart | null on the wire.
// Parts wins over Text when both are set.
type Content struct {
	Text  *string
	Parts []ContentPart
}

// TextContent wraps a plain string.
func TextContent(text string) Content {
	return Content{Text: &text}
}

// PartsContent wraps content parts.
func PartsContent(parts ...ContentPart) Content {
	return Content{Parts: parts}
}

// String flattens the content to its text parts.
func (c Content) String() string {
	if c.Parts == nil {
		if c.Text == nil {
			return ""
		}
		return *c.Text
	}
	var out string
	for _, part := range c.Parts {
		if part.Type == ContentPartText {
			out += part.Text
		}
	}
	return out
}

func (c Content) MarshalJSON() ([]byte, error) {
	switch {
	case c.Parts != nil:
		return json.Marshal(c.Parts)
	case c.Text != nil:
		return json.Marshal(*c.Text)
	default:
		return []byte("null"), nil
	}
}

func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		c.Text = &text
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &c.Parts)
	}
	return fmt.Errorf("content must be a string, an array of parts or null, got %s", data)
}

// MessageParam is one entry of ChatCompletionCreateParams.Messages.
type MessageParam struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// ResponseFormat requests a JSON object output.
type ResponseFormat struct {
	Type string `json:"type"`
}

// Stop is string | []string | null on the wire.
type Stop []string

func (s Stop) MarshalJSON() ([]byte, error) {
	switch len(s) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(s[0])
	default:
		return json.Marshal([]string(s))
	}
}

func (s *Stop) UnmarshalJSON(data []byte) error {
	*s = nil
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = Stop{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Well-known model identifiers. Any other string is accepted too.
const (
	ModelGPT4Turbo        = "gpt-4-1106-preview"
	ModelGPT4Vision       = "gpt-4-vision-preview"
	ModelGPT4             = "gpt-4"
	ModelGPT432K          = "gpt-4-32k"
	ModelGPT35Turbo       = "gpt-3.5-turbo"
	ModelGPT35Turbo16K    = "gpt-3.5-turbo-16k"
	ModelGPT35Turbo1106   = "gpt-3.5-turbo-1106"
	ModelGPT35Turbo16K613 = "gpt-3.5-turbo-16k-0613"
)

// ChatCompletionCreateParams is the request body of a chat completion.
type ChatCompletionCreateParams struct {
	Messages         []MessageParam     `json:"messages"`
	Model            string             `json:"model"`
	ResponseFormat   *ResponseFormat    `json:"response_format,omitempty"`
	FrequencyPenalty *float64           `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]float64 `json:"logit_bias,omitempty"`
	MaxTokens        *int               `json:"max_tokens,omitempty"`
	N                *int               `json:"n,omitempty"`
	PresencePenalty  *float64           `json:"presence_penalty,omitempty"`
	Seed             *int64             `json:"seed,omitempty"`
	Stop             Stop               `json:"stop,omitempty"`
	Stream           *bool              `json:"stream,omitempty"`
	Temperature      *float64           `json:"temperature,omitempty"`
	TopP             *float64           `json:"top_p,omitempty"`
	User             string             `json:"user,omitempty"`
}
