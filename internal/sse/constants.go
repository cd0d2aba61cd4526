package sse

import "time"

const (
	BroadcastBufferSize = 100
	ClientEventBuffer   = 50

	KeepaliveInterval = 30 * time.Second

	// TypesQueryParam narrows a stream to a comma separated list of event types
	TypesQueryParam = "types"
)

// Control frames the hub emits itself
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// streamHeaders are set before the first frame
var streamHeaders = map[string]string{
	"Content-Type":      "text/event-stream",
	"Cache-Control":     "no-cache",
	"Connection":        "keep-alive",
	"X-Accel-Buffering": "no",
}

const (
	ErrMsgStreamingUnsupported = "streaming unsupported"

	LogMsgClientConnected    = "Event stream opened"
	LogMsgClientDisconnected = "Event stream closed"
	LogMsgEventBroadcast     = "Forwarded duel event to streams"
	LogMsgEventDropped       = "Stream queue full, event dropped"
	LogMsgWriteError         = "Event stream write failed"
	LogMsgSubscribed         = "Event streams subscribed to bus"
)
