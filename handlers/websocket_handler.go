package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/grindzone/grindzone-api/realtime"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler. allowOrigin == nil разрешает любой Origin.
func NewWebSocketHandler(hub *realtime.Hub, allowOrigin func(origin string) bool) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin == nil || allowOrigin(origin)
			},
		},
	}
}

// ServeWs обрабатывает WebSocket запросы для конкретного турнира.
// Клиент должен подключаться к /ws/tournaments/{tournamentID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		slog.WarnContext(r.Context(), "failed to upgrade websocket connection",
			slog.String("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.RoomForTournament(tournamentID))
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	slog.DebugContext(r.Context(), "websocket client connected", slog.String("room", client.Room()))
}
