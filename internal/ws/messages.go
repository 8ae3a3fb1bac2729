package ws

import "encoding/json"

// Envelope wraps every inbound WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join-room"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// outEnvelope is the server → client frame shape.
type outEnvelope struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// ──────────────────────────── Request DTOs ───────────────────────────────

// CreateRoomRequest is the body for "create-room".
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// JoinRoomRequest is the body for "join-room".
type JoinRoomRequest struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// FlyFoundRequest is the body for "fly-found".
type FlyFoundRequest struct {
	Score      int `json:"score"`
	FoundCount int `json:"foundCount"`
}

// PlayerMissRequest is the body for "player-miss".
type PlayerMissRequest struct {
	Misclicks int `json:"misclicks"`
}

// PlayerFinishedRequest is the body for "player-finished".
type PlayerFinishedRequest struct {
	Won        bool `json:"won"`
	Score      int  `json:"score"`
	FoundCount int  `json:"foundCount"`
	Misclicks  int  `json:"misclicks"`
}

// Empty body for events that carry no payload.
type EmptyRequest struct{}
