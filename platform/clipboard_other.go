//go:build !windows

package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard uses pbcopy/pbpaste on macOS and xclip, xsel or wl-clipboard elsewhere
type SystemClipboard struct{}

// NewClipboard creates the clipboard for this system
func NewClipboard() Clipboard {
	return &SystemClipboard{}
}

// Get retrieves text from the clipboard. Non-text content reads as "".
func (c *SystemClipboard) Get() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read failed: %w", err)
	}
	return text, nil
}

// Set replaces the clipboard content with text
func (c *SystemClipboard) Set(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
