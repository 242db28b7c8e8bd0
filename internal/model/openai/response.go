package openai

// FinishReason explains why generation stopped.
type FinishReason string

const (
	FinishStop          FinishReason = "stop"
	FinishLength        FinishReason = "length"
	FinishToolCalls     FinishReason = "tool_calls"
	FinishContentFilter FinishReason = "content_filter"
	FinishFunctionCall  FinishReason = "function_call"
)

// ChatCompletion is the response body of a chat completion.
type ChatCompletion struct {
	ID                string           `json:"id"`
	Choices           []Choice         `json:"choices"`
	Created           int64            `json:"created"`
	Model             string           `json:"model"`
	Object            string           `json:"object"`
	SystemFingerprint string           `json:"system_fingerprint,omitempty"`
	Usage             *CompletionUsage `json:"usage,omitempty"`
}

// Choice is one generated alternative.
type Choice struct {
	FinishReason FinishReason          `json:"finish_reason"`
	Index        int                   `json:"index"`
	Message      ChatCompletionMessage `json:"message"`
}

// ChatCompletionMessage is the assistant message of a choice.
type ChatCompletionMessage struct {
	Content *string `json:"content"`
	Role    Role    `json:"role"`
}

// CompletionUsage reports token accounting.
type CompletionUsage struct {
	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError is the error envelope returned by the API.
type APIError struct {
	Status int               `json:"status,omitempty"`
	Error  *APIErrorMessage  `json:"error,omitempty"`
	Code   *string           `json:"code,omitempty"`
	Param  *string           `json:"param,omitempty"`
	Type   string            `json:"type,omitempty"`
	Header map[string]string `json:"-"`
}

// APIErrorMessage carries the human readable error.
type APIErrorMessage struct {
	Message string `json:"message"`
}

// FirstText returns the content of the first choice, if any.
func (c ChatCompletion) FirstText() (string, bool) {
	if len(c.Choices) == 0 || c.Choices[0].Message.Content == nil {
		return "", false
	}
	return *c.Choices[0].Message.Content, true
}
