/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "github.com/google/uuid"

// LocalHost runs a whole session inside one process, for a single shared
// device passed from player to player. Calls are synchronous and there is no
// privileged player, so requester ids are ignored.
type LocalHost struct {
	m      *Machine
	reveal int
}

var _ Host = (*LocalHost)(nil)

func NewLocalHost(m *Machine) *LocalHost {
	return &LocalHost{m: m}
}

// Join adds a named player to the lobby, generating an id for them.
func (h *LocalHost) Join(name string) (Player, error) {
	p := Player{ID: uuid.NewString(), Name: name}
	if _, err := h.m.Join(p); err != nil {
		return Player{}, err
	}

	p.Name = h.m.roster[len(h.m.roster)-1].Name
	return p, nil
}

func (h *LocalHost) Leave(playerID string) (Snapshot, error) {
	if err := h.m.Leave(playerID); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) StartGame(_ string, cfg Config) (Snapshot, error) {
	if err := h.m.StartGame(h.m.Roster(), cfg); err != nil {
		return Snapshot{}, err
	}
	h.reveal = 0
	return h.m.View(""), nil
}

// RevealNext shows the next player in turn order their role and marks it
// seen. done is true once every player has been shown.
func (h *LocalHost) RevealNext() (info PlayerInfo, done bool, err error) {
	if h.m.Phase() != PhaseRoleAssignment {
		return PlayerInfo{}, false, h.m.wrongPhase("reveal roles")
	}

	players := h.m.players()
	if h.reveal >= len(players) {
		return PlayerInfo{}, true, nil
	}

	p := players[h.reveal]
	info, err = h.m.Info(p.ID)
	if err != nil {
		return PlayerInfo{}, false, err
	}

	status, err := h.m.MarkSeen(p.ID)
	if err != nil {
		return PlayerInfo{}, false, err
	}
	h.reveal++

	return info, status.AllSeen, nil
}

func (h *LocalHost) MarkRoleSeen(playerID string) (SeenStatus, error) {
	return h.m.MarkSeen(playerID)
}

func (h *LocalHost) AdvanceToRound(_ string) (Snapshot, error) {
	if err := h.m.AdvanceToRound(); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) SubmitClue(playerID, text string) (Snapshot, error) {
	if err := h.m.SubmitClue(playerID, text); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) SkipTurn(_ string) (Snapshot, error) {
	if err := h.m.SkipTurn(); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) RequestPhase(_ string, target Phase) (Snapshot, error) {
	if err := h.m.RequestPhase(target); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) SubmitVote(voterID, targetID string) (Snapshot, error) {
	if err := h.m.SubmitVote(voterID, targetID); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

func (h *LocalHost) Results() (Results, error) {
	return h.m.Results()
}

func (h *LocalHost) ResetToLobby(_ string) (Snapshot, error) {
	if err := h.m.Reset(); err != nil {
		return Snapshot{}, err
	}
	return h.m.View(""), nil
}

// FullState returns the shared view. On a single device nobody's role is
// included unless viewerID is given.
func (h *LocalHost) FullState(viewerID string) (Snapshot, error) {
	return h.m.View(viewerID), nil
}
