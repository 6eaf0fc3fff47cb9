// Package realtime рассылает обновления турниров подписчикам по WebSocket.
// Каждый турнир - отдельная комната.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Типы сообщений.
const (
	MessageTournamentUpdated = "TOURNAMENT_UPDATED"
	MessageStatusChanged     = "STATUS_CHANGED"
	MessageTournamentDeleted = "TOURNAMENT_DELETED"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Broadcaster - то, что нужно сервисам от хаба.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message Message)
}

// RoomForTournament returns the room name of a tournament.
func RoomForTournament(tournamentID string) string {
	return "tournament_" + tournamentID
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

// Conn is the part of *websocket.Conn the pumps use.
type Conn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Client struct {
	hub    *Hub
	conn   Conn
	send   chan []byte
	room   string
	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn Conn, room string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		room: room,
	}
}

func (c *Client) Room() string { return c.room }

// enqueue не блокирует: медленный клиент пропускает сообщение.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	// done закрывается, когда Run завершился
	done       chan struct{}
	doneOnce   sync.Once
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

var _ Broadcaster = (*Hub)(nil)

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run обслуживает регистрацию клиентов до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer h.doneOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			size := len(h.rooms[client.room])
			h.mu.Unlock()
			h.logger.Debug("client registered", slog.String("room", client.room), slog.Int("clients", size))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					client.close()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered", slog.String("room", client.room))
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.rooms {
		for client := range clients {
			client.close()
		}
		delete(h.rooms, room)
	}
}

// Register добавляет клиента в его комнату. После остановки хаба клиент сразу закрывается.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// RoomSize returns the number of clients currently in room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// BroadcastToRoom отправляет сообщение всем клиентам комнаты.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	message.RoomID = roomID
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal websocket message", slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range clients {
		if !client.enqueue(payload) {
			h.logger.Warn("client send buffer full, message dropped", slog.String("room", roomID))
		}
	}
}

// ReadPump читает (и игнорирует) входящие сообщения, обрабатывает pong и отключение.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket closed unexpectedly", slog.String("room", c.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write failed", slog.String("room", c.room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
