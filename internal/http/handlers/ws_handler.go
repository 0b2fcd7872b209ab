// WebSocket display feed.
//
// This file exposes GET /ws, the live event stream consumed by waiting-room
// displays and operator consoles. Each connection gets its own hub
// subscription with a bounded queue; events are serialized as JSON frames in
// publish order. There is no replay: a display that reconnects must re-fetch
// current queue state from the REST endpoints before relying on the stream.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tbourn/go-turnero-backend/internal/broadcast"
	"github.com/tbourn/go-turnero-backend/internal/http/middleware"
)

const (
	// wsWriteWait bounds a single frame write.
	wsWriteWait = 10 * time.Second
	// wsPongWait is how long we wait for a pong before dropping the peer.
	wsPongWait = 60 * time.Second
	// wsPingPeriod must be shorter than wsPongWait.
	wsPingPeriod = 54 * time.Second
)

// EventStream upgrades the request to a WebSocket and streams queue events
// until the client disconnects or the hub shuts down.
//
// Origin checking is delegated to the allowedOrigins list configured at
// construction; an empty list allows all origins (same posture as the CORS
// default).
func (h *Handlers) EventStream(allowedOrigins []string, hub *broadcast.Hub) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			_, ok := allowed[r.Header.Get("Origin")]
			return ok
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			return
		}

		sub := hub.Subscribe()
		if sub == nil {
			_ = conn.Close()
			return
		}

		lg := middleware.LoggerFrom(c)
		lg.Info().Str("remote", conn.RemoteAddr().String()).Msg("display connected")

		// Reader: we never expect client frames, but the read loop is what
		// surfaces close/pong events.
		go func() {
			defer hub.Unsubscribe(sub)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(wsPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// Writer: pump hub events and keepalive pings until the
		// subscription closes.
		go func() {
			ticker := time.NewTicker(wsPingPeriod)
			defer func() {
				ticker.Stop()
				_ = conn.Close()
			}()
			for {
				select {
				case ev, okCh := <-sub.C:
					if !okCh {
						_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
						_ = conn.WriteMessage(websocket.CloseMessage, nil)
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteJSON(ev); err != nil {
						lg.Warn().Err(err).Msg("display write failed, dropping connection")
						hub.Unsubscribe(sub)
						return
					}
				case <-ticker.C:
					_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						hub.Unsubscribe(sub)
						return
					}
				}
			}
		}()
	}
}
