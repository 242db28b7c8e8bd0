package widget

import (
	"context"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
)

// Result is the resolution of one submission cycle.
type Result struct {
	Outcome Outcome
	// Reply is the bot message that was appended, zero for Skipped and Discarded.
	Reply chat.Message
}

// Cycle is a handle on one submission. It resolves when the widget is back to
// idle (or the result was discarded).
type Cycle struct {
	done   chan struct{}
	result Result
}

func newCycle() *Cycle {
	return &Cycle{done: make(chan struct{})}
}

func resolvedCycle(result Result) *Cycle {
	c := newCycle()
	c.resolve(result)
	return c
}

func (c *Cycle) resolve(result Result) {
	c.result = result
	close(c.done)
}

// Done is closed once the cycle has resolved.
func (c *Cycle) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the cycle resolves or ctx is done.
func (c *Cycle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-c.done:
		return c.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
