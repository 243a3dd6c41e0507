package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialPair returns both ends of a live WebSocket connection.
func dialPair(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- c
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-connCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server side of connection")
	}
	return server, client
}

func readMessage(t *testing.T, client *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	return msg
}

func TestHubSendUnknownLearner(t *testing.T) {
	h := NewHub(zerolog.Nop())
	err := h.Send(uuid.New(), Message{Type: TypePong})
	assert.Equal(t, ErrConnectionNotFound, err)
}

func TestHubSendDeliversToRegisteredConnection(t *testing.T) {
	h := NewHub(zerolog.Nop())
	serverConn, clientConn := dialPair(t)

	conn := NewConnection(serverConn, zerolog.Nop())
	go conn.WritePump()

	learnerID := uuid.New()
	h.Register(learnerID, conn)

	require.NoError(t, h.Send(learnerID, Message{Type: TypeChatState}))
	got := readMessage(t, clientConn)
	assert.Equal(t, TypeChatState, got.Type)
}

func TestHubNewestConnectionWins(t *testing.T) {
	h := NewHub(zerolog.Nop())
	learnerID := uuid.New()

	serverConn1, _ := dialPair(t)
	conn1 := NewConnection(serverConn1, zerolog.Nop())
	go conn1.WritePump()
	h.Register(learnerID, conn1)

	serverConn2, clientConn2 := dialPair(t)
	conn2 := NewConnection(serverConn2, zerolog.Nop())
	go conn2.WritePump()
	h.Register(learnerID, conn2)

	// The replaced connection is closed and cannot accept sends.
	assert.Equal(t, ErrConnectionClosed, conn1.Send(Message{Type: TypePong}))

	// The replaced connection's teardown must not evict its replacement.
	h.Unregister(learnerID, conn1)
	require.NoError(t, h.Send(learnerID, Message{Type: TypeChatState}))
	got := readMessage(t, clientConn2)
	assert.Equal(t, TypeChatState, got.Type)

	h.Unregister(learnerID, conn2)
	assert.Equal(t, ErrConnectionNotFound, h.Send(learnerID, Message{Type: TypeChatState}))
}
