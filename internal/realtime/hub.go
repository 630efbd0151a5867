// Package realtime broadcasts live events (show started or stopped,
// questions updated, viewer count) to every connected websocket listener.
// Delivery is best effort: there is no per-client state, acknowledgement or
// backpressure beyond dropping slow clients.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Event names pushed to listeners.
const (
	EventShowLive         = "showLive"
	EventShowStopped      = "showStopped"
	EventQuestionsUpdated = "questionsUpdated"
	EventViewersUpdated   = "viewersUpdated"
)

// Event is the wire format of a broadcast.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub fans events out to connected clients. The run loop is the single
// owner of the client set and the viewer counter.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, 16),
	}
}

// Run owns the client set. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.send(Event{Event: EventViewersUpdated, Data: len(h.clients)})
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.send(Event{Event: EventViewersUpdated, Data: len(h.clients)})
			}
		case ev := <-h.broadcast:
			h.send(ev)
		}
	}
}

// Broadcast queues an event for every connected listener.
func (h *Hub) Broadcast(event string, data any) {
	h.broadcast <- Event{Event: event, Data: data}
}

func (h *Hub) send(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error marshaling event %s: %v", ev.Event, err)
		return
	}
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop it rather than blocking the hub.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The site is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; its job is noticing the disconnect.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
