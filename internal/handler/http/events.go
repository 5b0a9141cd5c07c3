package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/leave"
	"github.com/lazyhr/lazyhr-backend-go/internal/handler/http/response"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/sse"
)

// LeaveNotifier publishes leave decisions to the SSE hub. It satisfies the
// leave service's Notifier interface.
type LeaveNotifier struct {
	hub *sse.Hub
}

func NewLeaveNotifier(hub *sse.Hub) *LeaveNotifier {
	return &LeaveNotifier{hub: hub}
}

func (n *LeaveNotifier) LeaveDecided(userID string, request leave.LeaveRequest) {
	n.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  "leave.decided",
		Data:   leave.ToResponse(request),
	})
}

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventsHandlerImpl struct {
	hub *sse.Hub
}

func NewEventsHandler(hub *sse.Hub) EventsHandler {
	return &EventsHandlerImpl{hub: hub}
}

// Stream implements EventsHandler. It holds the connection open and writes
// one SSE frame per published event until the client disconnects.
func (h *EventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			payload, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		}
	}
}
