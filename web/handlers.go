package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"markestedt/clipbridge/commands"
)

const maxArgsBytes = 16 << 20

// handleInvoke runs the command named in the path (e.g. /api/invoke/read_clipboard).
// Command failures are reported in the body with status 200.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.allowOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	command := strings.TrimPrefix(r.URL.Path, "/api/invoke/")
	if command == "" || strings.Contains(command, "/") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 && !json.Valid(body) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := s.dispatcher.Invoke(invokeContext(r), commands.Request{
		ID:      r.Header.Get("X-Request-ID"),
		Command: command,
		Args:    body,
	})

	writeJSON(w, resp)
}

// handleCommands lists the available command names
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string][]string{"commands": s.dispatcher.Commands()})
}

// handleStatus reports liveness and the active keystroke strategy
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]string{
		"status":   "ok",
		"platform": runtime.GOOS,
		"injector": s.injector,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
