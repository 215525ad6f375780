/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

// Host is the action surface shared by the single-device and the networked
// session hosts. Callers should depend on Host and not on which one backs it.
//
// requesterID names the player asking for host-only actions. Hosts without a
// notion of a privileged player ignore it.
type Host interface {
	StartGame(requesterID string, cfg Config) (Snapshot, error)
	MarkRoleSeen(playerID string) (SeenStatus, error)
	AdvanceToRound(requesterID string) (Snapshot, error)
	SubmitClue(playerID, text string) (Snapshot, error)
	SkipTurn(requesterID string) (Snapshot, error)
	RequestPhase(requesterID string, target Phase) (Snapshot, error)
	SubmitVote(voterID, targetID string) (Snapshot, error)
	Results() (Results, error)
	ResetToLobby(requesterID string) (Snapshot, error)
	FullState(viewerID string) (Snapshot, error)
}
