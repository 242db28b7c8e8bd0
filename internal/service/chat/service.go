package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/service/widget"
)

var ErrSessionNotFound = errors.New("session not found")

// Service keeps the live widget sessions served over HTTP.
type Service struct {
	sender widget.Sender
	opts   []widget.Option

	mu      sync.RWMutex
	widgets map[string]*widget.Widget
}

// NewService creates an empty registry whose widgets all talk to sender.
func NewService(sender widget.Sender, opts ...widget.Option) *Service {
	return &Service{
		sender:  sender,
		opts:    opts,
		widgets: make(map[string]*widget.Widget),
	}
}

// CreateSession starts a new widget instance.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	w := widget.New(s.sender, s.opts...)
	session := w.Session()

	s.mu.Lock()
	s.widgets[session.ID] = w
	s.mu.Unlock()

	return session, nil
}

// GetWidget retrieves the widget behind a session.
func (s *Service) GetWidget(_ context.Context, sessionID string) (*widget.Widget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.widgets[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// CloseSession tears a widget down and forgets it.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	w, ok := s.widgets[sessionID]
	delete(s.widgets, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	w.Close()
	return nil
}

// Close tears down every session.
func (s *Service) Close() {
	s.mu.Lock()
	widgets := s.widgets
	s.widgets = make(map[string]*widget.Widget)
	s.mu.Unlock()

	for _, w := range widgets {
		w.Close()
	}
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.widgets)
}
