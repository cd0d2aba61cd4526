package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is one open stream. EventChannel is closed when the client is
// unregistered or the hub stops.
type Client struct {
	ID           string
	UserID       string
	EventChannel chan Event

	// types is nil when the client wants every event type
	types map[string]bool
}

func (c *Client) accepts(eventType string) bool {
	return c.types == nil || c.types[eventType]
}

// Hub fans events out to open streams, indexed by user
type Hub struct {
	mu      sync.RWMutex
	byUser  map[string]map[string]*Client
	byID    map[string]*Client
	stopped bool

	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewHub() *Hub {
	return &Hub{
		byUser: make(map[string]map[string]*Client),
		byID:   make(map[string]*Client),
		queue:  make(chan Event, BroadcastBufferSize),
		done:   make(chan struct{}),
	}
}

// Start runs the dispatch loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.dispatch()
}

// Stop ends the dispatch loop and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.stopped = true
		for id, c := range h.byID {
			close(c.EventChannel)
			delete(h.byID, id)
		}
		h.byUser = make(map[string]map[string]*Client)
	})
}

func (h *Hub) dispatch() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case evt := <-h.queue:
			h.deliver(evt)
		}
	}
}

// deliver never blocks: a client whose buffer is full misses the event
func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(c *Client) {
		if !c.accepts(evt.Type) {
			return
		}
		select {
		case c.EventChannel <- evt:
		default:
		}
	}

	if len(evt.recipients) == 0 {
		for _, c := range h.byID {
			send(c)
		}
		return
	}
	for userID := range evt.recipients {
		for _, c := range h.byUser[userID] {
			send(c)
		}
	}
}

// Register opens a client for userID. An empty eventTypes means all types.
func (h *Hub) Register(userID string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		UserID:       userID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.types[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		close(c.EventChannel)
		return c
	}
	h.byID[c.ID] = c
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[string]*Client)
	}
	h.byUser[userID][c.ID] = c
	return c
}

// Unregister closes and forgets a client. Unknown IDs are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.byID[clientID]
	if !ok {
		return
	}
	delete(h.byID, clientID)
	if streams := h.byUser[c.UserID]; streams != nil {
		delete(streams, clientID)
		if len(streams) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
	close(c.EventChannel)
}

// Broadcast queues an event for the given users, or for everyone when
// recipients is empty. A full queue drops the event.
func (h *Hub) Broadcast(eventType string, payload interface{}, recipients ...string) {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	if len(recipients) > 0 {
		evt.recipients = make(map[string]bool, len(recipients))
		for _, r := range recipients {
			evt.recipients[r] = true
		}
	}

	select {
	case h.queue <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byID)
}

// FormatSSEMessage renders evt as an id/event/data frame
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("id: ")
	buf.WriteString(evt.ID)
	buf.WriteString("\nevent: ")
	buf.WriteString(evt.Type)
	buf.WriteString("\ndata: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}
