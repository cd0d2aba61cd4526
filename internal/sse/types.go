package sse

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	// recipients limits delivery to these user IDs; empty means every client
	recipients map[string]bool
}

// ConnectedPayload is sent once when a stream opens
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	UserID   string   `json:"user_id"`
	Filters  []string `json:"filters,omitempty"`
}
