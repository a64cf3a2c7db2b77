package controllerImp

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"kisan/pkg/feed"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	return conn
}

// waitState reads frames until one has the wanted state and item count.
func waitState(t *testing.T, conn *websocket.Conn, state feed.State, items int) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var s struct {
			State feed.State `json:"state"`
			Items []any      `json:"items"`
		}
		require.NoError(t, conn.ReadJSON(&s))
		if s.State == state && len(s.Items) == items {
			return
		}
	}
}
