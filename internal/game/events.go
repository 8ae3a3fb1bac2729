package game

// Outbound event names.
const (
	EventRoomCreated      = "room-created"
	EventRoomJoined       = "room-joined"
	EventJoinError        = "join-error"
	EventPlayerJoined     = "player-joined"
	EventPlayersUpdated   = "players-updated"
	EventGameStart        = "game-start"
	EventOpponentUpdate   = "opponent-update"
	EventOpponentFinished = "opponent-finished"
	EventGameOver         = "game-over"
	EventRematch          = "rematch"
	EventPlayerLeft       = "player-left"
)

// Outgoing is one delivery instruction: send Event with Payload to every
// connection in To. The Manager resolves audiences (sender, whole room,
// room minus sender) into explicit targets so the transport layer can stay
// a dumb fan-out.
type Outgoing struct {
	To      []ConnID
	Event   string
	Payload any
}

func unicast(to ConnID, event string, payload any) Outgoing {
	return Outgoing{To: []ConnID{to}, Event: event, Payload: payload}
}

// PlayerView is the wire shape of one player-list entry.
type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Ready      bool   `json:"ready"`
	FoundCount int    `json:"foundCount"`
	Score      int    `json:"score"`
	Misclicks  int    `json:"misclicks"`
	Finished   bool   `json:"finished"`
	IsHost     bool   `json:"isHost"`
}

type RoomCreatedPayload struct {
	RoomID  string       `json:"roomId"`
	Players []PlayerView `json:"players"`
}

type RoomJoinedPayload struct {
	RoomID  string       `json:"roomId"`
	Players []PlayerView `json:"players"`
}

type PlayerJoinedPayload struct {
	Players []PlayerView `json:"players"`
}

type PlayersUpdatedPayload struct {
	Players []PlayerView `json:"players"`
}

type GameStartPayload struct {
	LevelNumber int `json:"levelNumber"`
}

type OpponentUpdatePayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	FoundCount int    `json:"foundCount"`
}

type OpponentFinishedPayload struct {
	PlayerName string `json:"playerName"`
	Won        bool   `json:"won"`
	Score      int    `json:"score"`
	FoundCount int    `json:"foundCount"`
}

type ResultEntry struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	FoundCount int    `json:"foundCount"`
	Misclicks  int    `json:"misclicks"`
	IsHost     bool   `json:"isHost"`
}

type GameOverPayload struct {
	Results []ResultEntry `json:"results"`
}

type RematchPayload struct {
	Players []PlayerView `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerName string       `json:"playerName"`
	Players    []PlayerView `json:"players"`
}
