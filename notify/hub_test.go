package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// dialHub starts a server that registers its connection on hub with the
// given sound flag. It returns the client side and the registered server side.
func dialHub(t *testing.T, hub *notify.Hub, userID uint, sound bool) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	registered := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn, "staff", userID, sound)
		registered <- conn
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	select {
	case server := <-registered:
		return conn, server
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
		return nil, nil
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) notify.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg notify.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHubPublishSound(t *testing.T) {
	utils.InitLogger("error")
	hub := notify.NewHub()

	loud, _ := dialHub(t, hub, 1, true)
	quiet, _ := dialHub(t, hub, 2, false)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Publish(notify.EventWaiterCallCreated, map[string]string{"table_code": "M1"})
	assert.True(t, readMessage(t, loud).Sound)
	assert.False(t, readMessage(t, quiet).Sound)

	// only new orders and waiter calls ring
	hub.Publish(notify.EventTableUpdated, map[string]string{"code": "M1"})
	msg := readMessage(t, loud)
	assert.Equal(t, notify.EventTableUpdated, msg.Event)
	assert.False(t, msg.Sound)
}

func TestHubSetSound(t *testing.T) {
	utils.InitLogger("error")
	hub := notify.NewHub()

	first, _ := dialHub(t, hub, 1, true)
	second, _ := dialHub(t, hub, 1, true)
	other, _ := dialHub(t, hub, 2, true)

	hub.SetSound(1, false)
	hub.Publish(notify.EventOrderCreated, map[string]int{"id": 1})
	assert.False(t, readMessage(t, first).Sound)
	assert.False(t, readMessage(t, second).Sound)
	assert.True(t, readMessage(t, other).Sound)

	hub.SetSound(1, true)
	hub.Publish(notify.EventOrderCreated, map[string]int{"id": 2})
	assert.True(t, readMessage(t, first).Sound)
}

func TestHubUnregister(t *testing.T) {
	utils.InitLogger("error")
	hub := notify.NewHub()

	client, server := dialHub(t, hub, 1, true)
	require.Equal(t, 1, hub.ClientCount())

	hub.Unregister(server)
	assert.Zero(t, hub.ClientCount())

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := client.ReadMessage()
	assert.Error(t, err)

	// unregistering twice is harmless
	hub.Unregister(server)
	hub.Publish(notify.EventOrderPaid, nil)
	assert.Zero(t, hub.ClientCount())
}

func TestRecorderNames(t *testing.T) {
	rec := &notify.Recorder{}
	rec.Publish(notify.EventOrderCreated, 1)
	rec.Publish(notify.EventOrderPaid, 2)

	assert.Equal(t, []string{notify.EventOrderCreated, notify.EventOrderPaid}, rec.Names())
}
