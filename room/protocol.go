/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import "github.com/Seednode/impostor/game"

// ActionType names a client to server request.
type ActionType string

const (
	ActJoin           ActionType = "join"
	ActLeave          ActionType = "leave"
	ActKick           ActionType = "kick"
	ActStartGame      ActionType = "start_game"
	ActMarkRoleSeen   ActionType = "mark_role_seen"
	ActAdvanceToRound ActionType = "advance_to_round"
	ActSubmitClue     ActionType = "submit_clue"
	ActSkipTurn       ActionType = "skip_turn"
	ActRequestPhase   ActionType = "request_phase"
	ActSubmitVote     ActionType = "submit_vote"
	ActResetToLobby   ActionType = "reset_to_lobby"
)

// Request is one player action, as sent over HTTP or the websocket.
type Request struct {
	Type     ActionType   `json:"type"`
	PlayerID string       `json:"playerId"`
	Name     string       `json:"name,omitempty"`     // join
	Text     string       `json:"text,omitempty"`     // submit_clue
	TargetID string       `json:"targetId,omitempty"` // submit_vote, kick
	Phase    game.Phase   `json:"phase,omitempty"`    // request_phase
	Config   *game.Config `json:"config,omitempty"`   // start_game

	// ExpectVersion, when set, rejects the request with ErrStaleVersion
	// unless the room is still at that version. Clients use it to retry
	// safely after a request with an unknown outcome.
	ExpectVersion uint64 `json:"expectVersion,omitempty"`
}
