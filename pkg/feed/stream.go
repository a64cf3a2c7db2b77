package feed

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// NewUpgrader accepts WebSocket handshakes from the given origins; "*"
// accepts any origin.
func NewUpgrader(origins []string) *websocket.Upgrader {
	allowed := map[string]bool{}
	for _, o := range origins {
		allowed[strings.ToLower(o)] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[strings.ToLower(origin)]
		},
	}
}

// Stream upgrades the request, binds v to userID and writes each snapshot
// as one JSON text frame until the client goes away. v is closed on return.
func Stream[T any](c echo.Context, up *websocket.Upgrader, v *View[T], userID string, log *zap.Logger) error {
	conn, err := up.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered the handshake
		v.Close()
		log.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()
	defer v.Close()

	// clients never send data; reading only surfaces close frames and pongs
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	v.Bind(userID)
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return nil
		case s, ok := <-v.Updates():
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(s); err != nil {
				log.Debug("websocket write failed", zap.Error(err))
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}
