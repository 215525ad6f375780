/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "errors"

var (
	ErrInsufficientPlayers    = errors.New("at least 3 players are required")
	ErrInvalidPhaseTransition = errors.New("action not allowed in the current phase")
	ErrNotYourTurn            = errors.New("it is not your turn")
	ErrSelfVote               = errors.New("players cannot vote for themselves")
	ErrUnknownPlayer          = errors.New("player not found")
	ErrEmptyClue              = errors.New("clue must not be empty")
	ErrDuplicateName          = errors.New("that name is already taken")
	ErrRoomNotFound           = errors.New("room not found")
	ErrUnauthorized           = errors.New("only the host may do that")

	ErrEmptyName     = errors.New("name must not be empty")
	ErrRoomFull      = errors.New("room is full")
	ErrInvalidConfig = errors.New("invalid game configuration")
	ErrStaleVersion  = errors.New("state changed since it was last fetched")
	ErrUnknownAction = errors.New("unknown action")
)

var codes = []struct {
	code string
	err  error
}{
	{"insufficient_players", ErrInsufficientPlayers},
	{"invalid_phase_transition", ErrInvalidPhaseTransition},
	{"not_your_turn", ErrNotYourTurn},
	{"self_vote", ErrSelfVote},
	{"unknown_player", ErrUnknownPlayer},
	{"empty_clue", ErrEmptyClue},
	{"duplicate_name", ErrDuplicateName},
	{"room_not_found", ErrRoomNotFound},
	{"unauthorized", ErrUnauthorized},
	{"empty_name", ErrEmptyName},
	{"room_full", ErrRoomFull},
	{"invalid_config", ErrInvalidConfig},
	{"stale_version", ErrStaleVersion},
	{"unknown_action", ErrUnknownAction},
}

// Code returns the stable wire code for err, or "internal" when err is not
// one of the game errors.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// FromCode maps a wire code back to its sentinel error. Unknown codes
// yield nil.
func FromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
