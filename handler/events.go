package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prnvtripathi/tract-us/relay"
)

// EventsHandler streams relay broadcasts to clients over server-sent events.
type EventsHandler struct {
	hub *relay.Hub
}

func NewEventsHandler(hub *relay.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream subscribes the client to the relay and forwards every broadcast
// until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe()
	defer sub.Close()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
