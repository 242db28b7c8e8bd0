package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/openai"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

func newEchoBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if payload.Message == "fail" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"secret stack trace"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "echo: " + payload.Message})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	srv := newEchoBackend(t)
	t.Setenv("WIDGET_BACKEND_URL", srv.URL+"/api")
	t.Setenv("WIDGET_CHAT_PATH", "chat")
	t.Setenv("LOG_LEVEL", "disabled")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestChatOneShot(t *testing.T) {
	out := runCLI(t, "", "chat", "-m", "hi")
	assert.Equal(t, "< echo: hi\n", out)
}

func TestChatREPL(t *testing.T) {
	out := runCLI(t, "hi\n   \nfail\nquit\nignored\n", "chat")

	assert.Contains(t, out, "< echo: hi\n")
	assert.Contains(t, out, "< "+widget.FallbackText+"\n")
	assert.NotContains(t, out, "secret stack trace")
	assert.NotContains(t, out, "ignored")
	assert.Equal(t, 2, strings.Count(out, "< "))
}

func TestChatDumpRequest(t *testing.T) {
	out := runCLI(t, "", "chat", "-m", "hi", "--dump-request", "--model", "gpt-4", "--system", "be brief")

	reply, dump, ok := strings.Cut(out, "\n")
	require.True(t, ok)
	assert.Equal(t, "< echo: hi", reply)

	var params openai.ChatCompletionCreateParams
	require.NoError(t, json.Unmarshal([]byte(dump), &params))
	assert.Equal(t, "gpt-4", params.Model)
	require.Len(t, params.Messages, 3)
	assert.Equal(t, openai.RoleSystem, params.Messages[0].Role)
	assert.Equal(t, "be brief", params.Messages[0].Content.String())
	assert.Equal(t, openai.RoleUser, params.Messages[1].Role)
	assert.Equal(t, "hi", params.Messages[1].Content.String())
	assert.Equal(t, openai.RoleAssistant, params.Messages[2].Role)
	assert.Equal(t, "echo: hi", params.Messages[2].Content.String())
}
