/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import "github.com/Seednode/impostor/game"

// EventType names a server to client push message.
type EventType string

const (
	EventRoomUpdated      EventType = "room_updated"
	EventPlayerJoined     EventType = "player_joined"
	EventPlayerLeft       EventType = "player_left"
	EventGameStateChanged EventType = "game_state_changed"
	EventClueAdded        EventType = "pista_added"
	EventVoteAdded        EventType = "vote_added"
	EventPhaseChanged     EventType = "phase_changed"
	EventRoomReset        EventType = "room_reset"
	EventError            EventType = "error"
)

// Event is pushed to subscribers on a best-effort basis. Every event carries
// the room version it was produced at and the receiver's own snapshot, so a
// client never needs an ordered follow-up fetch to make sense of it.
type Event struct {
	Type     EventType      `json:"type"`
	Room     string         `json:"room"`
	Version  uint64         `json:"version"`
	HostID   string         `json:"hostId,omitempty"`
	Payload  any            `json:"payload,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

type RoomUpdatedPayload struct {
	Players []game.Player `json:"players"`
	HostID  string        `json:"hostId"`
	Phase   game.Phase    `json:"phase"`
}

type PlayerJoinedPayload struct {
	Player  game.Player   `json:"player"`
	Players []game.Player `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID string        `json:"playerId"`
	Kicked   bool          `json:"kicked,omitempty"`
	Players  []game.Player `json:"players"`
}

type GameStatePayload struct {
	State game.SessionState `json:"state"`
	Seen  game.SeenStatus   `json:"seen"`
}

type ClueAddedPayload struct {
	Clue  game.Clue         `json:"clue"`
	State game.SessionState `json:"state"`
}

type VoteAddedPayload struct {
	Vote       game.Vote         `json:"vote"`
	VotedCount int               `json:"votedCount"`
	Total      int               `json:"total"`
	State      game.SessionState `json:"state"`
}

type PhaseChangedPayload struct {
	From  game.Phase        `json:"from"`
	To    game.Phase        `json:"to"`
	State game.SessionState `json:"state"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEvent builds the event sent only to the client whose action failed.
func ErrorEvent(roomCode string, err error) Event {
	return Event{
		Type: EventError,
		Room: roomCode,
		Payload: ErrorPayload{
			Code:    game.Code(err),
			Message: err.Error(),
		},
	}
}
