/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import "fmt"

const (
	// MinPlayers is the smallest roster a game can start with.
	MinPlayers = 3

	// MinRoundsBeforeVote is how many rounds must complete before the host
	// may end an unlimited game early and move to voting.
	MinRoundsBeforeVote = 3

	// DefaultMaxPlayers bounds the roster when no explicit limit is given.
	DefaultMaxPlayers = 12
)

// Phase is the lifecycle stage of a session.
type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseRoleAssignment Phase = "role_assignment"
	PhaseRound          Phase = "round"
	PhaseVoting         Phase = "voting"
	PhaseResults        Phase = "results"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseLobby, PhaseRoleAssignment, PhaseRound, PhaseVoting, PhaseResults:
		return true
	}
	return false
}

// Role is what a player was dealt at game start.
type Role string

const (
	RoleImpostor Role = "impostor"
	RoleNormal   Role = "normal"
)

// VotingMode decides whether voters must go in turn order.
type VotingMode string

const (
	VotingTurnOrdered VotingMode = "turn_ordered"
	VotingFree        VotingMode = "free"
)

// Player is a roster member. It never changes once created.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignedPlayer pairs a roster member with the role dealt to them.
type AssignedPlayer struct {
	Player
	Role Role `json:"role"`
}

// RoleAssignment is created once per game. The order of Players is the
// turn order for both clues and votes.
type RoleAssignment struct {
	SecretWord SecretWord       `json:"secretWord"`
	ImpostorID string           `json:"impostorId"`
	Players    []AssignedPlayer `json:"players"`
}

func (a *RoleAssignment) index(playerID string) int {
	for i, p := range a.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Config is chosen by the host when starting a game.
type Config struct {
	// MaxRounds of zero means unlimited: the host ends the game early.
	MaxRounds int        `json:"maxRounds"`
	Voting    VotingMode `json:"voting"`
}

func (c Config) withDefaults() Config {
	if c.Voting == "" {
		c.Voting = VotingTurnOrdered
	}
	return c
}

func (c Config) validate() error {
	if c.MaxRounds < 0 {
		return fmt.Errorf("%w: max rounds must not be negative", ErrInvalidConfig)
	}
	switch c.Voting {
	case VotingTurnOrdered, VotingFree:
	default:
		return fmt.Errorf("%w: unknown voting mode %q", ErrInvalidConfig, c.Voting)
	}
	return nil
}

// SessionState holds the cursors of a running game.
type SessionState struct {
	Phase              Phase `json:"phase"`
	CurrentRound       int   `json:"currentRound"`
	MaxRounds          int   `json:"maxRounds"`
	CompletedRounds    int   `json:"completedRounds"`
	CurrentPlayerIndex int   `json:"currentPlayerIndex"`
	CurrentTurnNumber  int   `json:"currentTurnNumber"`
	CurrentVoterIndex  int   `json:"currentVoterIndex"`
}

// Clue is one player's contribution for one round.
type Clue struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Round      int    `json:"round"`
	TurnNumber int    `json:"turnNumber"`
	Skipped    bool   `json:"skipped,omitempty"`
}

// Vote is the latest choice of a voter.
type Vote struct {
	VoterID    string `json:"voterId"`
	VoterName  string `json:"voterName"`
	TargetID   string `json:"targetId"`
	TargetName string `json:"targetName"`
}

// SeenStatus reports how many players acknowledged their role.
type SeenStatus struct {
	Count   int  `json:"count"`
	Total   int  `json:"total"`
	AllSeen bool `json:"allSeen"`
}

// Score tracks games won and lost across resets.
type Score struct {
	GamesWon  int `json:"gamesWon"`
	GamesLost int `json:"gamesLost"`
}

// PlayerInfo is what a single player is allowed to know about themselves.
// The impostor never receives the secret word.
type PlayerInfo struct {
	Player
	Role       Role   `json:"role"`
	SecretWord string `json:"secretWord,omitempty"`
	Category   string `json:"category,omitempty"`
}

// Reveal is published once the game reaches results.
type Reveal struct {
	ImpostorID   string     `json:"impostorId"`
	ImpostorName string     `json:"impostorName"`
	SecretWord   SecretWord `json:"secretWord"`
}

// Snapshot is the full state of a session as seen by one viewer. It is a
// copy and may be read freely.
type Snapshot struct {
	Version uint64           `json:"version"`
	State   SessionState     `json:"state"`
	Config  Config           `json:"config"`
	Players []Player         `json:"players"`
	Clues   []Clue           `json:"clues"`
	Votes   []Vote           `json:"votes"`
	Seen    SeenStatus       `json:"seen"`
	Scores  map[string]Score `json:"scores,omitempty"`
	Me      *PlayerInfo      `json:"me,omitempty"`
	Reveal  *Reveal          `json:"reveal,omitempty"`
	Results *Results         `json:"results,omitempty"`
}

// CurrentPlayer returns whose clue is expected, if any.
func (s Snapshot) CurrentPlayer() (Player, bool) {
	if s.State.Phase != PhaseRound || s.State.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.State.CurrentPlayerIndex], true
}

// CurrentVoter returns whose vote is expected in turn-ordered voting.
func (s Snapshot) CurrentVoter() (Player, bool) {
	if s.State.Phase != PhaseVoting || s.Config.Voting != VotingTurnOrdered || s.State.CurrentVoterIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.State.CurrentVoterIndex], true
}

// Player looks up a roster member by id.
func (s Snapshot) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
