package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable is returned when no keystroke strategy exists for this platform
	ErrUnavailable = errors.New("unavailable on this platform")

	// ErrNoText is returned when the clipboard holds no usable text
	ErrNoText = errors.New("no text data in clipboard")

	// ErrClipboardUnsupported is returned when no clipboard backend could be found
	ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

	// ErrNULInText is returned when text cannot be stored as a NUL-terminated string
	ErrNULInText = errors.New("text contains a NUL character")
)

// rejectNUL guards clipboards that store NUL-terminated text (CF_UNICODETEXT)
func rejectNUL(text string) error {
	if strings.IndexByte(text, 0) >= 0 {
		return ErrNULInText
	}
	return nil
}

// Clipboard provides clipboard access
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Broadcast reports how far an escape broadcast got
type Broadcast int

const (
	BroadcastComplete Broadcast = iota
	BroadcastPartial
	BroadcastUnavailable
)

func (b Broadcast) String() string {
	switch b {
	case BroadcastComplete:
		return "complete"
	case BroadcastPartial:
		return "partial"
	case BroadcastUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("broadcast(%d)", int(b))
	}
}

// Injector simulates keystrokes in other applications
type Injector interface {
	Name() string
	// CopySelection sends the platform copy chord to the focused application
	CopySelection(ctx context.Context) error
	// ClearSelections sends escape to other applications
	ClearSelections(ctx context.Context) (Broadcast, error)
}

// HelperError is returned when a helper interpreter exits with a non-zero status
type HelperError struct {
	Interpreter string
	ExitCode    int
	Stderr      string
}

func (e *HelperError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Interpreter, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
