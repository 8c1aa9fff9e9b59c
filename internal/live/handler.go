package live

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// sendBuf is the per-spectator queue length.
const sendBuf = 32

// Handler upgrades requests to websocket spectator connections.
// originPatterns are passed to websocket.AcceptOptions; nil allows same-origin only.
func (h *Hub) Handler(originPatterns []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			h.logger.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.CloseNow()

		c := &Client{ID: uuid.NewString(), Conn: conn, Send: make(chan []byte, sendBuf)}
		h.Register(c)
		defer h.Unregister(c.ID)
		h.logger.Debug("spectator connected", "id", c.ID, "remote", r.RemoteAddr)

		// Spectators only listen; CloseRead handles control frames and
		// cancels ctx when the peer goes away.
		ctx := conn.CloseRead(r.Context())
		c.WritePump(ctx)

		h.logger.Debug("spectator disconnected", "id", c.ID)
		conn.Close(websocket.StatusNormalClosure, "")
	})
}
