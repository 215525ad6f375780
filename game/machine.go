/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"fmt"
	"maps"
	"math/rand"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Machine is the authoritative state of one session and the only thing
// allowed to change it. Every method validates completely before mutating,
// so a rejected call leaves the session untouched.
//
// Machine is not safe for concurrent use; hosts serialise access.
type Machine struct {
	assigner   *Assigner
	maxPlayers int
	newID      func() string

	version    uint64
	roster     []Player
	cfg        Config
	state      SessionState
	assignment *RoleAssignment
	clues      []Clue
	votes      []Vote
	seen       map[string]bool
	scores     map[string]Score
}

// NewMachine returns a machine sitting in an empty lobby. A maxPlayers of
// zero selects DefaultMaxPlayers.
func NewMachine(deck *Deck, rng *rand.Rand, maxPlayers int) *Machine {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	return &Machine{
		assigner:   NewAssigner(deck, rng),
		maxPlayers: maxPlayers,
		newID:      uuid.NewString,
		state:      SessionState{Phase: PhaseLobby},
		seen:       make(map[string]bool),
		scores:     make(map[string]Score),
	}
}

func (m *Machine) Phase() Phase        { return m.state.Phase }
func (m *Machine) Version() uint64     { return m.version }
func (m *Machine) State() SessionState { return m.state }

// Roster returns a copy of the current roster, in join order.
func (m *Machine) Roster() []Player {
	return slices.Clone(m.roster)
}

func (m *Machine) bump() {
	m.version++
}

// players returns the turn order: the assignment once a game is running,
// otherwise the roster.
func (m *Machine) players() []Player {
	if m.assignment == nil {
		return slices.Clone(m.roster)
	}

	players := make([]Player, len(m.assignment.Players))
	for i, p := range m.assignment.Players {
		players[i] = p.Player
	}
	return players
}

func (m *Machine) wrongPhase(action string) error {
	return fmt.Errorf("%w: cannot %s during %s", ErrInvalidPhaseTransition, action, m.state.Phase)
}

// Join adds p to the lobby roster. Joining again with a known id is a no-op
// and reports added as false.
func (m *Machine) Join(p Player) (added bool, err error) {
	if m.state.Phase != PhaseLobby {
		return false, m.wrongPhase("join")
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		return false, ErrUnknownPlayer
	}

	for _, existing := range m.roster {
		if existing.ID == p.ID {
			return false, nil
		}
	}

	if p.Name == "" {
		return false, ErrEmptyName
	}

	for _, existing := range m.roster {
		if strings.EqualFold(existing.Name, p.Name) {
			return false, ErrDuplicateName
		}
	}

	if len(m.roster) >= m.maxPlayers {
		return false, ErrRoomFull
	}

	m.roster = append(m.roster, p)
	if _, ok := m.scores[p.ID]; !ok {
		m.scores[p.ID] = Score{}
	}
	m.bump()

	return true, nil
}

// Leave removes a player from the lobby roster.
func (m *Machine) Leave(playerID string) error {
	if m.state.Phase != PhaseLobby {
		return m.wrongPhase("leave")
	}

	i := slices.IndexFunc(m.roster, func(p Player) bool { return p.ID == playerID })
	if i < 0 {
		return ErrUnknownPlayer
	}

	m.roster = slices.Delete(m.roster, i, i+1)
	delete(m.scores, playerID)
	m.bump()

	return nil
}

// StartGame deals roles to roster and moves the lobby to role assignment.
func (m *Machine) StartGame(roster []Player, cfg Config) error {
	if m.state.Phase != PhaseLobby {
		return m.wrongPhase("start a game")
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}

	if len(roster) < MinPlayers {
		return ErrInsufficientPlayers
	}

	ids := make(map[string]bool, len(roster))
	names := make(map[string]bool, len(roster))
	for _, p := range roster {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		switch {
		case p.ID == "" || ids[p.ID]:
			return fmt.Errorf("%w: missing or repeated player id %q", ErrUnknownPlayer, p.ID)
		case name == "":
			return ErrEmptyName
		case names[name]:
			return ErrDuplicateName
		}
		ids[p.ID], names[name] = true, true
	}

	assignment, err := m.assigner.Assign(roster)
	if err != nil {
		return err
	}

	m.roster = slices.Clone(roster)
	m.cfg = cfg
	m.assignment = assignment
	m.state = SessionState{
		Phase:             PhaseRoleAssignment,
		CurrentRound:      1,
		MaxRounds:         cfg.MaxRounds,
		CurrentTurnNumber: 1,
	}
	m.clues = nil
	m.votes = nil
	m.seen = make(map[string]bool, len(roster))
	for _, p := range roster {
		if _, ok := m.scores[p.ID]; !ok {
			m.scores[p.ID] = Score{}
		}
	}
	m.bump()

	return nil
}

// Info returns what playerID may know about their own role.
func (m *Machine) Info(playerID string) (PlayerInfo, error) {
	if m.assignment == nil {
		return PlayerInfo{}, m.wrongPhase("reveal roles")
	}

	info, ok := m.assignment.InfoFor(playerID)
	if !ok {
		return PlayerInfo{}, ErrUnknownPlayer
	}
	return info, nil
}

// MarkSeen records that playerID has looked at their role.
func (m *Machine) MarkSeen(playerID string) (SeenStatus, error) {
	if m.state.Phase != PhaseRoleAssignment {
		return m.SeenStatus(), m.wrongPhase("acknowledge roles")
	}

	if m.assignment.index(playerID) < 0 {
		return m.SeenStatus(), ErrUnknownPlayer
	}

	if !m.seen[playerID] {
		m.seen[playerID] = true
		m.bump()
	}

	return m.SeenStatus(), nil
}

func (m *Machine) SeenStatus() SeenStatus {
	players := m.players()

	count := 0
	for _, p := range players {
		if m.seen[p.ID] {
			count++
		}
	}

	return SeenStatus{
		Count:   count,
		Total:   len(players),
		AllSeen: m.assignment != nil && count == len(players),
	}
}

// AdvanceToRound starts the first round once every role has been seen.
func (m *Machine) AdvanceToRound() error {
	if m.state.Phase != PhaseRoleAssignment {
		return m.wrongPhase("start the rounds")
	}

	if s := m.SeenStatus(); !s.AllSeen {
		return fmt.Errorf("%w: %d of %d players have seen their role", ErrInvalidPhaseTransition, s.Count, s.Total)
	}

	m.state.Phase = PhaseRound
	m.bump()

	return nil
}

// SubmitClue records the current player's clue and rotates the turn.
func (m *Machine) SubmitClue(playerID, text string) error {
	if m.state.Phase != PhaseRound {
		return m.wrongPhase("give a clue")
	}

	i := m.assignment.index(playerID)
	if i < 0 {
		return ErrUnknownPlayer
	}

	if i != m.state.CurrentPlayerIndex {
		return ErrNotYourTurn
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyClue
	}

	m.recordClue(text, false)

	return nil
}

// SkipTurn forces the current player past their turn, as when a turn timer
// runs out. The skip counts as that player's clue for the round.
func (m *Machine) SkipTurn() error {
	if m.state.Phase != PhaseRound {
		return m.wrongPhase("skip a turn")
	}

	m.recordClue("", true)

	return nil
}

func (m *Machine) recordClue(text string, skipped bool) {
	p := m.assignment.Players[m.state.CurrentPlayerIndex]

	m.clues = append(m.clues, Clue{
		ID:         m.newID(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Text:       text,
		Round:      m.state.CurrentRound,
		TurnNumber: m.state.CurrentTurnNumber,
		Skipped:    skipped,
	})

	m.state.CurrentPlayerIndex = (m.state.CurrentPlayerIndex + 1) % len(m.assignment.Players)
	if m.state.CurrentPlayerIndex == 0 {
		m.state.CurrentTurnNumber++
	}

	if RoundComplete(m.clues, m.players(), m.state.CurrentRound) {
		m.state.CompletedRounds = m.state.CurrentRound

		if m.state.MaxRounds > 0 && m.state.CurrentRound >= m.state.MaxRounds {
			m.enterVoting()
		} else {
			m.state.CurrentRound++
			m.state.CurrentPlayerIndex = 0
			m.state.CurrentTurnNumber = 1
		}
	}

	m.bump()
}

// RoundComplete reports whether every player has a clue for round. The
// order the clues arrived in does not matter.
func RoundComplete(clues []Clue, players []Player, round int) bool {
	given := make(map[string]bool, len(players))
	for _, c := range clues {
		if c.Round == round {
			given[c.PlayerID] = true
		}
	}

	for _, p := range players {
		if !given[p.ID] {
			return false
		}
	}
	return len(players) > 0
}

func (m *Machine) enterVoting() {
	m.state.Phase = PhaseVoting
	m.state.CurrentVoterIndex = 0
	m.votes = nil
}

// RequestPhase performs an explicit, host driven transition.
func (m *Machine) RequestPhase(target Phase) error {
	switch target {
	case PhaseRound:
		return m.AdvanceToRound()

	case PhaseVoting:
		if m.state.Phase != PhaseRound {
			return m.wrongPhase("start voting")
		}
		if m.state.MaxRounds > 0 {
			return fmt.Errorf("%w: voting starts after round %d", ErrInvalidPhaseTransition, m.state.MaxRounds)
		}
		if m.state.CompletedRounds < MinRoundsBeforeVote {
			return fmt.Errorf("%w: %d of %d rounds completed", ErrInvalidPhaseTransition, m.state.CompletedRounds, MinRoundsBeforeVote)
		}

		m.enterVoting()
		m.bump()

		return nil

	case PhaseLobby:
		return m.Reset()
	}

	return fmt.Errorf("%w: cannot move from %s to %q", ErrInvalidPhaseTransition, m.state.Phase, target)
}

// SubmitVote records voterID's choice, replacing any earlier vote of theirs.
func (m *Machine) SubmitVote(voterID, targetID string) error {
	if m.state.Phase != PhaseVoting {
		return m.wrongPhase("vote")
	}

	if voterID == targetID {
		return ErrSelfVote
	}

	vi, ti := m.assignment.index(voterID), m.assignment.index(targetID)
	if vi < 0 || ti < 0 {
		return ErrUnknownPlayer
	}

	turnOrdered := m.cfg.Voting == VotingTurnOrdered
	if turnOrdered && vi != m.state.CurrentVoterIndex {
		return ErrNotYourTurn
	}

	vote := Vote{
		VoterID:    voterID,
		VoterName:  m.assignment.Players[vi].Name,
		TargetID:   targetID,
		TargetName: m.assignment.Players[ti].Name,
	}

	if j := slices.IndexFunc(m.votes, func(v Vote) bool { return v.VoterID == voterID }); j >= 0 {
		m.votes[j] = vote
	} else {
		m.votes = append(m.votes, vote)
	}

	if turnOrdered {
		m.state.CurrentVoterIndex = (m.state.CurrentVoterIndex + 1) % len(m.assignment.Players)
	}

	if len(m.votes) == len(m.assignment.Players) {
		m.enterResults()
	}

	m.bump()

	return nil
}

func (m *Machine) enterResults() {
	m.state.Phase = PhaseResults

	res := computeResults(m.assignment, m.votes)
	for _, p := range m.assignment.Players {
		s := m.scores[p.ID]
		won := (p.Role == RoleImpostor) == (res.Winner == TeamImpostor)
		if won {
			s.GamesWon++
		} else {
			s.GamesLost++
		}
		m.scores[p.ID] = s
	}
}

// Results tallies the votes cast so far.
func (m *Machine) Results() (Results, error) {
	if m.state.Phase != PhaseVoting && m.state.Phase != PhaseResults {
		return Results{}, m.wrongPhase("compute results")
	}

	return computeResults(m.assignment, m.votes), nil
}

// Reset abandons the current game and returns to the lobby. The roster and
// scores survive.
func (m *Machine) Reset() error {
	if m.state.Phase == PhaseLobby {
		return m.wrongPhase("reset")
	}

	m.cfg = Config{}
	m.assignment = nil
	m.state = SessionState{Phase: PhaseLobby}
	m.clues = nil
	m.votes = nil
	m.seen = make(map[string]bool)
	m.bump()

	return nil
}

// View returns a snapshot of the session for viewerID. Roles stay secret
// until results; the viewer only learns their own.
func (m *Machine) View(viewerID string) Snapshot {
	s := Snapshot{
		Version: m.version,
		State:   m.state,
		Config:  m.cfg,
		Players: m.players(),
		Clues:   slices.Clone(m.clues),
		Votes:   slices.Clone(m.votes),
		Seen:    m.SeenStatus(),
		Scores:  maps.Clone(m.scores),
	}

	if s.Clues == nil {
		s.Clues = []Clue{}
	}
	if s.Votes == nil {
		s.Votes = []Vote{}
	}

	if m.assignment == nil {
		return s
	}

	if info, ok := m.assignment.InfoFor(viewerID); ok {
		s.Me = &info
	}

	if m.state.Phase == PhaseResults {
		i := m.assignment.index(m.assignment.ImpostorID)
		s.Reveal = &Reveal{
			ImpostorID:   m.assignment.ImpostorID,
			ImpostorName: m.assignment.Players[i].Name,
			SecretWord:   m.assignment.SecretWord,
		}

		res := computeResults(m.assignment, m.votes)
		s.Results = &res
	}

	return s
}
