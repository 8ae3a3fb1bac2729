package game

import "errors"

// Join failures are the only errors the protocol ever reports to a client;
// the messages below go over the wire verbatim in a join-error event.
var (
	ErrRoomNotFound   = errors.New("Room not found")
	ErrGameInProgress = errors.New("Game already in progress")
	ErrRoomFull       = errors.New("Room is full")
)
