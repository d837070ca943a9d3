package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"markestedt/clipbridge/commands"
)

// handleWebSocket serves one request/response pair per text frame.
// Requests on a connection are handled one at a time, in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxArgsBytes)
	ctx := invokeContext(r)
	slog.Debug("WebSocket client connected", "remote", r.RemoteAddr)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("WebSocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req commands.Request
		var resp commands.Response
		if err := json.Unmarshal(data, &req); err != nil {
			resp = commands.Response{Error: "invalid request: " + err.Error()}
		} else {
			resp = s.dispatcher.Invoke(ctx, req)
		}

		if err := conn.WriteJSON(resp); err != nil {
			slog.Warn("WebSocket write failed", "error", err)
			return
		}
	}
}
