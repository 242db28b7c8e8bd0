package chat_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	chat "github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

func echoSender() widget.Sender {
	return widget.SenderFunc(func(_ context.Context, message string) (string, error) {
		return "echo: " + message, nil
	})
}

func TestServiceGetWidget(t *testing.T) {
	svc := chat.NewService(echoSender(), widget.WithLogger(zerolog.Nop()))
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := svc.GetWidget(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetWidget err: %v", err)
	}

	if got.Session().ID != session.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.Session().ID, session.ID)
	}
}

func TestServiceGetWidgetNotFound(t *testing.T) {
	svc := chat.NewService(echoSender())
	ctx := context.Background()

	if _, err := svc.GetWidget(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestServiceCloseSession(t *testing.T) {
	svc := chat.NewService(echoSender(), widget.WithLogger(zerolog.Nop()))
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	w, _ := svc.GetWidget(ctx, session.ID)

	if err := svc.CloseSession(ctx, session.ID); err != nil {
		t.Fatalf("CloseSession err: %v", err)
	}
	if w.State() != widget.StateClosed {
		t.Fatalf("expected widget closed, got %s", w.State())
	}
	if _, err := svc.GetWidget(ctx, session.ID); err == nil {
		t.Fatal("expected closed session to be gone")
	}
	if err := svc.CloseSession(ctx, session.ID); err == nil {
		t.Fatal("expected error closing twice")
	}
}

func TestServiceCloseAll(t *testing.T) {
	svc := chat.NewService(echoSender(), widget.WithLogger(zerolog.Nop()))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx); err != nil {
			t.Fatalf("CreateSession err: %v", err)
		}
	}
	svc.Close()

	if svc.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", svc.Len())
	}
}
