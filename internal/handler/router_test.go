package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

func TestRouterMountsWidgetRoutes(t *testing.T) {
	sessions := chat.NewService(widget.SenderFunc(func(context.Context, string) (string, error) {
		return "ok", nil
	}))
	r := NewRouter(sessions)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/widget/sessions", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sessions.Len() != 1 {
		t.Fatalf("expected one session, got %d", sessions.Len())
	}
}

func TestRouterAnswersPreflight(t *testing.T) {
	r := NewRouter(chat.NewService(widget.SenderFunc(func(context.Context, string) (string, error) {
		return "ok", nil
	})))

	req := httptest.NewRequest(http.MethodOptions, "/api/widget/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("missing allow-origin header")
	}
}
