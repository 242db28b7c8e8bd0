package widget

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

const subscriberBuffer = 32

// Sender delivers one user message to the chat backend and returns its reply.
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, message string) (string, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// Hook is notified with the raw input of every accepted submission, before
// the backend is called. It must not block.
type Hook func(message string)

// Option configures a Widget.
type Option func(*Widget)

// WithHook installs the on-submit notification.
func WithHook(hook Hook) Option {
	return func(w *Widget) {
		w.hook = hook
	}
}

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithSession pins the widget identity instead of generating one.
func WithSession(session chat.Session) Option {
	return func(w *Widget) {
		w.session = session
	}
}

// Widget owns the conversation state of one chat widget instance and runs
// its submission cycles.
type Widget struct {
	session    chat.Session
	sender     Sender
	hook       Hook
	logger     zerolog.Logger
	transcript *chat.Transcript

	mu      sync.Mutex
	input   string
	state   State
	subs    map[int]chan chat.Message
	nextSub int
}

// New creates an idle widget with an empty transcript.
func New(sender Sender, opts ...Option) *Widget {
	w := &Widget{
		session: chat.Session{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		},
		sender:     sender,
		logger:     log.Logger,
		transcript: chat.NewTranscript(),
		subs:       make(map[int]chan chat.Message),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().Str("session", w.session.ID).Logger()
	return w
}

// Session returns the widget identity.
func (w *Widget) Session() chat.Session {
	return w.session
}

// Messages returns a snapshot of the transcript.
func (w *Widget) Messages() []chat.Message {
	return w.transcript.Messages()
}

// Input returns the pending input buffer.
func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// SetInput replaces the pending input buffer.
func (w *Widget) SetInput(input string) {
	w.mu.Lock()
	w.input = input
	w.mu.Unlock()
}

// State returns the current phase.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SubmitInput submits the current pending input buffer.
func (w *Widget) SubmitInput(ctx context.Context) (*Cycle, error) {
	return w.Submit(ctx, w.Input())
}

// Submit starts one submission cycle for raw.
//
// Blank input resolves immediately as Skipped and touches nothing. Otherwise
// the user message is appended before Submit returns, the hook is notified,
// and a single backend request runs in the background; the returned Cycle
// resolves once the reply (or FallbackText) has been appended and the input
// buffer cleared. raw is appended and sent exactly as typed.
func (w *Widget) Submit(ctx context.Context, raw string) (*Cycle, error) {
	if chat.IsBlank(raw) {
		return resolvedCycle(Result{Outcome: OutcomeSkipped}), nil
	}

	message, err := chat.NewUserMessage(raw)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	switch w.state {
	case StateClosed:
		w.mu.Unlock()
		return nil, ErrClosed
	case StateAwaiting:
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if err := w.appendLocked(message); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.state = StateAwaiting
	w.mu.Unlock()

	if w.hook != nil {
		w.notify(raw)
	}

	cycle := newCycle()
	go w.await(ctx, raw, cycle)
	return cycle, nil
}

// notify runs the hook. A panicking hook still propagates, but the widget is
// returned to idle first so it keeps accepting input.
func (w *Widget) notify(raw string) {
	defer func() {
		if r := recover(); r != nil {
			w.mu.Lock()
			if w.state == StateAwaiting {
				w.state = StateIdle
			}
			w.mu.Unlock()
			panic(r)
		}
	}()
	w.hook(raw)
}

func (w *Widget) await(ctx context.Context, raw string, cycle *Cycle) {
	started := time.Now()
	reply, err := w.sender.Send(ctx, raw)

	outcome := OutcomeReplied
	var message chat.Message
	if err == nil {
		if message, err = chat.NewBotMessage(reply); err != nil {
			err = ErrEmptyReply
		}
	}
	if err != nil {
		// The cause stays in the logs; the transcript only ever sees FallbackText.
		w.logger.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("chat backend failed, showing fallback")
		message = chat.Message{Text: FallbackText, Origin: chat.OriginBot}
		outcome = OutcomeFallback
	}

	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		w.logger.Debug().Str("outcome", outcome.String()).Msg("widget closed before reply, discarding")
		cycle.resolve(Result{Outcome: OutcomeDiscarded})
		return
	}
	if err := w.appendLocked(message); err != nil {
		w.logger.Error().Err(err).Msg("failed to append bot message")
	}
	w.input = ""
	w.state = StateIdle
	w.mu.Unlock()

	w.logger.Debug().Str("outcome", outcome.String()).Dur("elapsed", time.Since(started)).Msg("submission cycle finished")
	cycle.resolve(Result{Outcome: outcome, Reply: message})
}

// appendLocked must be called with w.mu held.
func (w *Widget) appendLocked(message chat.Message) error {
	if err := w.transcript.Append(message); err != nil {
		return err
	}
	for id, ch := range w.subs {
		select {
		case ch <- message:
		default:
			w.logger.Warn().Int("subscriber", id).Msg("subscriber lagging, dropping transcript update")
		}
	}
	return nil
}

// Subscribe returns a channel receiving every message appended from now on.
// The channel is closed when cancel is called or the widget is closed.
func (w *Widget) Subscribe() (<-chan chat.Message, func()) {
	ch := make(chan chat.Message, subscriberBuffer)

	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	w.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if sub, ok := w.subs[id]; ok {
				delete(w.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close tears the widget down. A reply still in flight is discarded when it
// arrives. Close is idempotent.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateClosed {
		return
	}
	w.state = StateClosed
	for id, ch := range w.subs {
		delete(w.subs, id)
		close(ch)
	}
	w.logger.Debug().Int("messages", w.transcript.Len()).Msg("widget closed")
}
