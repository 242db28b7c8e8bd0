package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	"github.com/pkg/errors"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client talks to the chat backend endpoint. It satisfies widget.Sender.
type Client struct {
	*client.Client
	path string
}

// ChatRequest is the POST body sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the JSON body returned by the chat endpoint.
type ChatResponse struct {
	Message string `json:"message"`
}

// Unmarshal decodes the body as JSON whatever Content-Type the backend sent.
func (r *ChatResponse) Unmarshal(_ http.Header, body io.Reader) error {
	if err := json.NewDecoder(body).Decode(r); err != nil {
		return errors.Wrap(err, "decode chat response")
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a backend client. endpoint is the API root, e.g.
// "http://localhost:8080/api", and path the chat route below it.
func New(endpoint, path string, opts ...client.ClientOpt) (*Client, error) {
	c, err := client.New(append(opts, client.OptEndpoint(endpoint))...)
	if err != nil {
		return nil, errors.Wrap(err, "create chat backend client")
	}
	return &Client{Client: c, path: path}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Send posts message to the chat endpoint and returns the reply text.
// Non-2xx statuses, undecodable bodies, a missing message field and
// transport failures are all returned as errors.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	req, err := client.NewJSONRequest(ChatRequest{Message: message})
	if err != nil {
		return "", errors.Wrap(err, "encode chat request")
	}

	var response ChatResponse
	if err := c.DoWithContext(ctx, req, &response, client.OptPath(c.path)); err != nil {
		return "", errors.Wrap(err, "chat backend request failed")
	}

	if chat.IsBlank(response.Message) {
		return "", errors.New("chat backend reply has no message")
	}
	return response.Message, nil
}
