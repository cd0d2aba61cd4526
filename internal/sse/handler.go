package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/identity"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// Handler streams the caller's duel events. It runs behind the identity middleware.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		userID, err := identity.UserFromContext(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		for name, value := range streamHeaders {
			w.Header().Set(name, value)
		}

		var types []string
		for _, t := range strings.Split(r.URL.Query().Get(TypesQueryParam), ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}

		client := hub.Register(userID.String(), types)
		defer hub.Unregister(client.ID)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", types, "streams", hub.ClientCount())
		defer log.Info(LogMsgClientDisconnected, "client_id", client.ID)

		write := func(evt Event) bool {
			frame, err := FormatSSEMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "event_type", evt.Type, "error", err)
				return true
			}
			if _, err := w.Write(frame); err != nil {
				log.Warn(LogMsgWriteError, "event_type", evt.Type, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, UserID: userID.String(), Filters: types},
		}
		if !write(hello) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, open := <-client.EventChannel:
				if !open || !write(evt) {
					return
				}
			case now := <-keepalive.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}) {
					return
				}
			}
		}
	}
}
