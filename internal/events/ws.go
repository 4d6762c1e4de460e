package events

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are ignored.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "websocket upgrade failed", "err", err)
			return
		}

		// welcome goes out before registration; after Add only the hub writes
		_ = ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"welcome","transport":"websocket"}`))

		hub.Add(ws)
		slog.DebugContext(c.Request.Context(), "websocket client connected", "remote", c.ClientIP(), "clients", hub.Count())

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		slog.DebugContext(c.Request.Context(), "websocket client disconnected", "remote", c.ClientIP())
	}
}
