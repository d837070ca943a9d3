package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"markestedt/clipbridge/platform"
)

// Service implements the four commands the GUI shell calls.
// It holds no state between calls.
type Service struct {
	clipboard platform.Clipboard
	injector  platform.Injector
}

// NewService creates a command service over the given capabilities
func NewService(clipboard platform.Clipboard, injector platform.Injector) *Service {
	return &Service{
		clipboard: clipboard,
		injector:  injector,
	}
}

// CopyToClipboard overwrites the clipboard text
func (s *Service) CopyToClipboard(ctx context.Context, text string) (string, error) {
	log := platform.Logger(ctx)
	chars := utf8.RuneCountInString(text)

	if err := s.clipboard.Set(text); err != nil {
		log.Error("Failed to copy to clipboard", "error", err)
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	log.Info("Text copied to clipboard", "characters", chars)
	return fmt.Sprintf("Text copied: %d characters", chars), nil
}

// ReadClipboard returns the clipboard text unless it is empty or whitespace
func (s *Service) ReadClipboard(ctx context.Context) (string, error) {
	log := platform.Logger(ctx)

	text, err := s.clipboard.Get()
	if err != nil {
		log.Error("Failed to read clipboard", "error", err)
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		log.Info("No text data in clipboard")
		return "", platform.ErrNoText
	}

	log.Info("Text read from clipboard", "characters", utf8.RuneCountInString(text))
	return text, nil
}

// AutoCopySelection asks the focused application to copy its selection.
// It does not check that the clipboard changed.
func (s *Service) AutoCopySelection(ctx context.Context) (string, error) {
	log := platform.Logger(ctx).With("injector", s.injector.Name())
	log.Info("Sending copy chord")

	err := s.injector.CopySelection(ctx)
	switch {
	case errors.Is(err, platform.ErrUnavailable):
		log.Info("Auto-copy not implemented for this platform")
		return "", fmt.Errorf("auto-copy %w", platform.ErrUnavailable)
	case err != nil:
		log.Error("Failed to auto-copy selection", "error", err)
		return "", fmt.Errorf("failed to auto-copy selection: %w", err)
	}

	log.Info("Copy chord sent")
	return "Selected text copied automatically", nil
}

// ClearOtherSelections sends escape to other applications. Partial delivery
// and missing platform support are both reported as success.
func (s *Service) ClearOtherSelections(ctx context.Context) (string, error) {
	log := platform.Logger(ctx).With("injector", s.injector.Name())
	log.Info("Clearing other selections")

	outcome, err := s.injector.ClearSelections(ctx)
	if err != nil {
		log.Error("Failed to clear selections", "error", err)
		return "", fmt.Errorf("failed to clear selections: %w", err)
	}

	switch outcome {
	case platform.BroadcastPartial:
		log.Warn("Selections partially cleared")
		return "Selections partially cleared", nil
	case platform.BroadcastUnavailable:
		log.Info("Selection clearing not implemented for this platform")
		return "Selection clearing unavailable on this platform", nil
	default:
		log.Info("Selections cleared")
		return "Selections in other apps cleared", nil
	}
}
