package widget

import "github.com/pkg/errors"

var (
	// ErrBusy is returned when a submission arrives while a previous one is
	// still awaiting the backend. Input is disabled during that phase.
	ErrBusy = errors.New("a submission is already awaiting a reply")
	// ErrClosed is returned once the widget has been torn down.
	ErrClosed = errors.New("widget is closed")
	// ErrEmptyReply marks a backend answer that carried no usable text.
	ErrEmptyReply = errors.New("backend reply has no message text")
)

// FallbackText is shown in place of a reply whenever the backend call fails,
// whatever the cause.
const FallbackText = "Sorry, I couldn't get a reply right now. Please try again."
