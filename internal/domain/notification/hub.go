package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// eventsChannel is the Redis pub/sub channel shared by all API
	// instances.
	eventsChannel = "events:admin"
)

// Hub fans events out to connected admin websockets. Slow clients are
// dropped instead of blocking the broadcast loop. With a Redis client the
// hub publishes through pub/sub so admins connected to other instances see
// the same events; with a nil client it stays in-process.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	redis   *redis.Client

	broadcast  chan Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an event hub. Call Run in a goroutine to start it.
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		clients:    map[*client]struct{}{},
		redis:      redisClient,
		broadcast:  make(chan Event, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run processes register, unregister and broadcast events until Close
func (h *Hub) Run() {
	if h.redis != nil {
		go h.subscribe()
	}

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			log.Debug().Int("clients", h.ClientCount()).Msg("Admin connected to event stream")

		case c := <-h.unregister:
			h.removeClient(c)

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event")
				continue
			}
			h.mu.RLock()
			clients := make([]*client, 0, len(h.clients))
			for c := range h.clients {
				clients = append(clients, c)
			}
			h.mu.RUnlock()
			for _, c := range clients {
				select {
				case c.send <- data:
				default:
					h.removeClient(c)
				}
			}

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast sends an event to every connected admin. With Redis configured
// it goes through pub/sub, so all instances deliver it; the local fan-out
// then happens in the subscriber. Publish failures fall back to in-process
// delivery.
func (h *Hub) Broadcast(event Event) {
	if h.redis != nil {
		data, err := json.Marshal(event)
		if err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event")
			return
		}
		err = h.redis.Publish(context.Background(), eventsChannel, data).Err()
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("type", event.Type).Msg("Publish failed, delivering locally")
	}

	h.enqueue(event)
}

// enqueue queues an event for the local clients. Drops the event if the
// queue is full rather than blocking the caller.
func (h *Hub) enqueue(event Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		log.Warn().Str("type", event.Type).Msg("Event queue full, dropping event")
	}
}

// subscribe feeds events published by any instance into the local fan-out
func (h *Hub) subscribe() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.redis.Subscribe(ctx, eventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Msg("Failed to decode published event")
				continue
			}
			h.enqueue(event)

		case <-h.done:
			return
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close shuts the hub down and disconnects all clients
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

func (c *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients only listen; any read error ends the connection.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
