package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"flyhuntgo/internal/game"
)

type testFrame struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body"`
}

func dialTestServer(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) testFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f testFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func sendFrame(t *testing.T, conn *websocket.Conn, event string, body any) {
	t.Helper()
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		raw = b
	}
	require.NoError(t, conn.WriteJSON(Envelope{Event: event, Body: raw}))
}

func TestCreateAndJoinOverWebsocket(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mgr := game.NewManager(game.NewStore(), 32)
	srv := NewWsServer(mgr)

	engine := gin.New()
	engine.GET("/ws", srv.Handle)
	ts := httptest.NewServer(engine)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	host := dialTestServer(t, wsURL)
	sendFrame(t, host, "create-room", CreateRoomRequest{PlayerName: "Ann"})

	created := readFrame(t, host)
	require.Equal(t, game.EventRoomCreated, created.Event)
	var createdBody game.RoomCreatedPayload
	require.NoError(t, json.Unmarshal(created.Body, &createdBody))
	require.Len(t, createdBody.RoomID, 4)
	require.Len(t, createdBody.Players, 1)
	require.True(t, createdBody.Players[0].IsHost)

	guest := dialTestServer(t, wsURL)
	sendFrame(t, guest, "join-room", JoinRoomRequest{RoomID: createdBody.RoomID, PlayerName: "Bo"})

	joined := readFrame(t, guest)
	require.Equal(t, game.EventRoomJoined, joined.Event)
	var joinedBody game.RoomJoinedPayload
	require.NoError(t, json.Unmarshal(joined.Body, &joinedBody))
	require.Len(t, joinedBody.Players, 2)

	notified := readFrame(t, host)
	require.Equal(t, game.EventPlayerJoined, notified.Event)

	require.Equal(t, 1, mgr.RoomCount())
}

func TestJoinErrorGoesToRequesterOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mgr := game.NewManager(game.NewStore(), 32)
	srv := NewWsServer(mgr)

	engine := gin.New()
	engine.GET("/ws", srv.Handle)
	ts := httptest.NewServer(engine)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn := dialTestServer(t, wsURL)
	sendFrame(t, conn, "join-room", JoinRoomRequest{RoomID: "ZZZZ", PlayerName: "Bo"})

	frame := readFrame(t, conn)
	require.Equal(t, game.EventJoinError, frame.Event)
	var msg string
	require.NoError(t, json.Unmarshal(frame.Body, &msg))
	require.Equal(t, "Room not found", msg)
}

func TestDisconnectActsAsLeave(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mgr := game.NewManager(game.NewStore(), 32)
	srv := NewWsServer(mgr)

	engine := gin.New()
	engine.GET("/ws", srv.Handle)
	ts := httptest.NewServer(engine)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn := dialTestServer(t, wsURL)
	sendFrame(t, conn, "create-room", CreateRoomRequest{PlayerName: "Ann"})
	readFrame(t, conn) // room-created

	require.Equal(t, 1, mgr.RoomCount())
	conn.Close()

	require.Eventually(t, func() bool {
		return mgr.RoomCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}
