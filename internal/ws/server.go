package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"flyhuntgo/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second // must be < pongWait

	maxMessageSize = 512
)

// ConnContext identifies the connection a frame arrived on.
type ConnContext struct {
	ConnID game.ConnID
}

type WsServer struct {
	mgr      *game.Manager
	registry *registry
	router   *Router
	upgrader websocket.Upgrader
}

func NewWsServer(mgr *game.Manager) *WsServer {
	srv := &WsServer{
		mgr:      mgr,
		registry: newRegistry(),
		router:   NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry‑point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}

	// ─────────────────── Client connected ─────────────────────
	id := game.ConnID(uuid.NewString())
	conn := &clientConn{rawConn: rawConn}
	s.registry.add(id, conn)
	zap.L().Info("client connected", zap.String("conn", string(id)))

	go s.reader(id, conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, "create-room",
		func(c *ConnContext, req CreateRoomRequest) []game.Outgoing {
			return s.mgr.CreateRoom(c.ConnID, req.PlayerName)
		})

	Register(s.router, "join-room",
		func(c *ConnContext, req JoinRoomRequest) []game.Outgoing {
			out, err := s.mgr.JoinRoom(c.ConnID, req.RoomID, req.PlayerName)
			if err != nil {
				// Join failures go back to the requester alone, never the room.
				return []game.Outgoing{{
					To:      []game.ConnID{c.ConnID},
					Event:   game.EventJoinError,
					Payload: err.Error(),
				}}
			}
			return out
		})

	Register(s.router, "toggle-ready",
		func(c *ConnContext, _ EmptyRequest) []game.Outgoing {
			return s.mgr.ToggleReady(c.ConnID)
		})

	Register(s.router, "fly-found",
		func(c *ConnContext, req FlyFoundRequest) []game.Outgoing {
			return s.mgr.FlyFound(c.ConnID, req.Score, req.FoundCount)
		})

	Register(s.router, "player-miss",
		func(c *ConnContext, req PlayerMissRequest) []game.Outgoing {
			return s.mgr.PlayerMiss(c.ConnID, req.Misclicks)
		})

	Register(s.router, "player-finished",
		func(c *ConnContext, req PlayerFinishedRequest) []game.Outgoing {
			return s.mgr.PlayerFinished(c.ConnID, req.Won, req.Score, req.FoundCount, req.Misclicks)
		})

	Register(s.router, "request-rematch",
		func(c *ConnContext, _ EmptyRequest) []game.Outgoing {
			return s.mgr.RequestRematch(c.ConnID)
		})

	Register(s.router, "leave-room",
		func(c *ConnContext, _ EmptyRequest) []game.Outgoing {
			return s.mgr.Leave(c.ConnID)
		})
}

func (s *WsServer) reader(id game.ConnID, conn *clientConn) {
	defer func() {
		// Disconnect is handled exactly like an explicit leave.
		s.deliver(s.mgr.Leave(id))
		s.registry.remove(id)
		conn.close()
		zap.L().Info("client disconnected", zap.String("conn", string(id)))
	}()

	conn.rawConn.SetReadLimit(maxMessageSize)
	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: id}

	for {
		_, data, err := conn.rawConn.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue // not a protocol frame; drop it
		}

		s.deliver(s.router.dispatch(cc, env))
	}
}

// deliver fans outgoing instructions out to their target connections.
// Sends are fire-and-forget: a dead socket gets cleaned up by its own
// reader loop, not here.
func (s *WsServer) deliver(outs []game.Outgoing) {
	for _, out := range outs {
		frame := outEnvelope{Event: out.Event, Body: out.Payload}
		for _, target := range out.To {
			conn, ok := s.registry.get(target)
			if !ok {
				continue
			}
			if err := conn.writeJSON(frame); err != nil {
				zap.L().Warn("ws.write", zap.String("conn", string(target)), zap.Error(err))
			}
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.close()
			return
		}
	}
}
