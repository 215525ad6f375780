package game

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestMachine(t *testing.T, seed int64) *Machine {
	t.Helper()

	deck, err := NewDeck([]SecretWord{{Word: "Maracanã", Category: "stadium"}}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new deck: %v", err)
	}
	return NewMachine(deck, rand.New(rand.NewSource(seed)), 0)
}

func testRoster(names ...string) []Player {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{ID: "id-" + name, Name: name}
	}
	return players
}

// playingMachine returns a machine already in the first round.
func playingMachine(t *testing.T, cfg Config, names ...string) (*Machine, []Player) {
	t.Helper()

	m := newTestMachine(t, 7)
	players := testRoster(names...)
	for _, p := range players {
		if _, err := m.Join(p); err != nil {
			t.Fatalf("join %s: %v", p.Name, err)
		}
	}
	if err := m.StartGame(m.Roster(), cfg); err != nil {
		t.Fatalf("start game: %v", err)
	}
	for _, p := range players {
		if _, err := m.MarkSeen(p.ID); err != nil {
			t.Fatalf("mark seen %s: %v", p.Name, err)
		}
	}
	if err := m.AdvanceToRound(); err != nil {
		t.Fatalf("advance to round: %v", err)
	}
	return m, players
}

// playRound submits one clue per player in turn order.
func playRound(t *testing.T, m *Machine, players []Player) {
	t.Helper()

	for _, p := range players {
		if err := m.SubmitClue(p.ID, "clue from "+p.Name); err != nil {
			t.Fatalf("clue from %s in round %d: %v", p.Name, m.State().CurrentRound, err)
		}
	}
}

func TestAssignPicksOneImpostor(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		deck := DefaultDeck()
		a := NewAssigner(deck, rand.New(rand.NewSource(seed)))
		roster := testRoster("ana", "beto", "carla", "dani")

		got, err := a.Assign(roster)
		if err != nil {
			t.Fatalf("seed %d: assign: %v", seed, err)
		}
		if got.SecretWord.Word == "" {
			t.Fatalf("seed %d: empty secret word", seed)
		}

		impostors := 0
		for i, p := range got.Players {
			if p.ID != roster[i].ID {
				t.Fatalf("seed %d: player %d = %s, want %s", seed, i, p.ID, roster[i].ID)
			}
			if p.Role == RoleImpostor {
				impostors++
				if p.ID != got.ImpostorID {
					t.Fatalf("seed %d: impostor role on %s but impostor id %s", seed, p.ID, got.ImpostorID)
				}
			}
		}
		if impostors != 1 {
			t.Fatalf("seed %d: %d impostors, want 1", seed, impostors)
		}

		info, ok := got.InfoFor(got.ImpostorID)
		if !ok || info.SecretWord != "" || info.Role != RoleImpostor {
			t.Fatalf("seed %d: impostor info = %+v", seed, info)
		}
		for _, p := range got.Players {
			if p.ID == got.ImpostorID {
				continue
			}
			info, _ := got.InfoFor(p.ID)
			if info.SecretWord != got.SecretWord.Word {
				t.Fatalf("seed %d: %s got word %q, want %q", seed, p.ID, info.SecretWord, got.SecretWord.Word)
			}
		}
	}
}

func TestAssignRequiresThreePlayers(t *testing.T) {
	a := NewAssigner(DefaultDeck(), nil)
	if _, err := a.Assign(testRoster("ana", "beto")); !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("err = %v, want ErrInsufficientPlayers", err)
	}
}

func TestStartGameValidation(t *testing.T) {
	tests := []struct {
		name   string
		roster []Player
		cfg    Config
		want   error
	}{
		{"too few players", testRoster("ana", "beto"), Config{}, ErrInsufficientPlayers},
		{"negative rounds", testRoster("ana", "beto", "carla"), Config{MaxRounds: -1}, ErrInvalidConfig},
		{"unknown voting mode", testRoster("ana", "beto", "carla"), Config{Voting: "shouting"}, ErrInvalidConfig},
		{"duplicate names", []Player{{"1", "Ana"}, {"2", "ana "}, {"3", "Beto"}}, Config{}, ErrDuplicateName},
		{"empty name", []Player{{"1", "Ana"}, {"2", " "}, {"3", "Beto"}}, Config{}, ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, 1)
			err := m.StartGame(tt.roster, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if m.Phase() != PhaseLobby || m.Version() != 0 {
				t.Fatalf("rejected start changed state: phase=%s version=%d", m.Phase(), m.Version())
			}
		})
	}
}

func TestStartGameInitialState(t *testing.T) {
	m := newTestMachine(t, 3)
	if err := m.StartGame(testRoster("ana", "beto", "carla"), Config{MaxRounds: 2}); err != nil {
		t.Fatalf("start: %v", err)
	}

	want := SessionState{Phase: PhaseRoleAssignment, CurrentRound: 1, MaxRounds: 2, CurrentTurnNumber: 1}
	if got := m.State(); got != want {
		t.Fatalf("state = %+v, want %+v", got, want)
	}

	if err := m.StartGame(testRoster("ana", "beto", "carla"), Config{}); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("second start err = %v, want ErrInvalidPhaseTransition", err)
	}
}

func TestJoinRules(t *testing.T) {
	m := newTestMachine(t, 1)

	if added, err := m.Join(Player{ID: "1", Name: "Ana"}); err != nil || !added {
		t.Fatalf("join = %v, %v", added, err)
	}
	if added, err := m.Join(Player{ID: "1", Name: "Someone Else"}); err != nil || added {
		t.Fatalf("rejoin = %v, %v; want no-op", added, err)
	}
	if _, err := m.Join(Player{ID: "2", Name: " ANA "}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate name err = %v", err)
	}
	if _, err := m.Join(Player{ID: "3", Name: "  "}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("empty name err = %v", err)
	}
	if err := m.Leave("missing"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("leave unknown err = %v", err)
	}
	if err := m.Leave("1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(m.Roster()) != 0 {
		t.Fatalf("roster = %v, want empty", m.Roster())
	}

	small := NewMachine(DefaultDeck(), nil, 1)
	if _, err := small.Join(Player{ID: "1", Name: "Ana"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := small.Join(Player{ID: "2", Name: "Beto"}); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("full room err = %v", err)
	}
}

func TestLeaveOnlyInLobby(t *testing.T) {
	m, players := playingMachine(t, Config{}, "ana", "beto", "carla")

	if err := m.Leave(players[0].ID); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("err = %v, want ErrInvalidPhaseTransition", err)
	}
	if _, err := m.Join(Player{ID: "x", Name: "Late"}); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("join err = %v, want ErrInvalidPhaseTransition", err)
	}
}

func TestAdvanceRequiresAllSeen(t *testing.T) {
	m := newTestMachine(t, 1)
	players := testRoster("ana", "beto", "carla")
	if err := m.StartGame(players, Config{}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := m.MarkSeen("stranger"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("mark unknown err = %v", err)
	}

	for i, p := range players[:2] {
		status, err := m.MarkSeen(p.ID)
		if err != nil {
			t.Fatalf("mark seen: %v", err)
		}
		if status.Count != i+1 || status.Total != 3 || status.AllSeen {
			t.Fatalf("status = %+v", status)
		}
	}

	before := m.Version()
	if _, err := m.MarkSeen(players[0].ID); err != nil {
		t.Fatalf("repeat mark seen: %v", err)
	}
	if m.Version() != before {
		t.Fatalf("repeat mark seen bumped version")
	}

	if err := m.AdvanceToRound(); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("advance err = %v, want ErrInvalidPhaseTransition", err)
	}
	if m.Phase() != PhaseRoleAssignment {
		t.Fatalf("phase = %s", m.Phase())
	}

	status, err := m.MarkSeen(players[2].ID)
	if err != nil || !status.AllSeen {
		t.Fatalf("last mark seen = %+v, %v", status, err)
	}
	if err := m.RequestPhase(PhaseRound); err != nil {
		t.Fatalf("request round: %v", err)
	}
	if m.Phase() != PhaseRound {
		t.Fatalf("phase = %s, want round", m.Phase())
	}
}

func TestTurnRotationIsCyclic(t *testing.T) {
	m, players := playingMachine(t, Config{MaxRounds: 1}, "ana", "beto", "carla", "dani")

	for i, p := range players {
		if got := m.State().CurrentPlayerIndex; got != i {
			t.Fatalf("before clue %d index = %d", i, got)
		}
		if err := m.SubmitClue(p.ID, "hint"); err != nil {
			t.Fatalf("clue %d: %v", i, err)
		}
	}

	st := m.State()
	if st.CurrentPlayerIndex != 0 || st.CurrentTurnNumber != 2 {
		t.Fatalf("after a full cycle state = %+v, want index 0 turn 2", st)
	}
	if st.Phase != PhaseVoting {
		t.Fatalf("phase = %s, want voting", st.Phase)
	}
}

func TestSubmitClueRejections(t *testing.T) {
	m, players := playingMachine(t, Config{}, "ana", "beto", "carla")

	tests := []struct {
		name   string
		player string
		text   string
		want   error
	}{
		{"out of turn", players[1].ID, "hint", ErrNotYourTurn},
		{"last player out of turn", players[2].ID, "hint", ErrNotYourTurn},
		{"stranger", "stranger", "hint", ErrUnknownPlayer},
		{"blank clue", players[0].ID, "   ", ErrEmptyClue},
		{"empty clue", players[0].ID, "", ErrEmptyClue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.View("")
			err := m.SubmitClue(tt.player, tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			after := m.View("")
			if after.State != before.State || len(after.Clues) != len(before.Clues) || after.Version != before.Version {
				t.Fatalf("rejected clue changed state: %+v -> %+v", before.State, after.State)
			}
		})
	}
}

func TestRoundProgression(t *testing.T) {
	m, players := playingMachine(t, Config{MaxRounds: 3}, "ana", "beto", "carla")

	playRound(t, m, players)
	if st := m.State(); st.Phase != PhaseRound || st.CurrentRound != 2 || st.CurrentPlayerIndex != 0 || st.CurrentTurnNumber != 1 || st.CompletedRounds != 1 {
		t.Fatalf("after round 1 state = %+v", st)
	}

	playRound(t, m, players)
	playRound(t, m, players)

	st := m.State()
	if st.Phase != PhaseVoting || st.CompletedRounds != 3 || st.CurrentVoterIndex != 0 {
		t.Fatalf("after round 3 state = %+v", st)
	}

	snap := m.View("")
	if len(snap.Clues) != 9 {
		t.Fatalf("clues = %d, want 9", len(snap.Clues))
	}
	for i, c := range snap.Clues {
		if wantRound := i/3 + 1; c.Round != wantRound || c.TurnNumber != 1 {
			t.Fatalf("clue %d = %+v, want round %d turn 1", i, c, wantRound)
		}
	}
}

func TestRoundCompleteIgnoresOrder(t *testing.T) {
	players := testRoster("ana", "beto", "carla")
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, order := range orders {
		var clues []Clue
		for n, i := range order {
			if RoundComplete(clues, players, 1) {
				t.Fatalf("order %v: complete after %d clues", order, n)
			}
			clues = append(clues, Clue{PlayerID: players[i].ID, Round: 1})
		}
		if !RoundComplete(clues, players, 1) {
			t.Fatalf("order %v: not complete", order)
		}
		if RoundComplete(clues, players, 2) {
			t.Fatalf("order %v: round 2 complete with round 1 clues", order)
		}
	}
}

func TestSkipTurnCountsAsClue(t *testing.T) {
	m, players := playingMachine(t, Config{MaxRounds: 1}, "ana", "beto", "carla")

	if err := m.SubmitClue(players[0].ID, "hint"); err != nil {
		t.Fatalf("clue: %v", err)
	}
	if err := m.SkipTurn(); err != nil {
		t.Fatalf("skip: %v", err)
	}

	snap := m.View("")
	if c := snap.Clues[1]; !c.Skipped || c.PlayerID != players[1].ID {
		t.Fatalf("skipped clue = %+v", c)
	}
	if err := m.SubmitClue(players[2].ID, "hint"); err != nil {
		t.Fatalf("clue: %v", err)
	}
	if m.Phase() != PhaseVoting {
		t.Fatalf("phase = %s, want voting", m.Phase())
	}
}

func TestEarlyVotingGuard(t *testing.T) {
	m, players := playingMachine(t, Config{}, "ana", "beto", "carla")

	for round := 1; round <= MinRoundsBeforeVote; round++ {
		if err := m.RequestPhase(PhaseVoting); !errors.Is(err, ErrInvalidPhaseTransition) {
			t.Fatalf("round %d: err = %v, want ErrInvalidPhaseTransition", round, err)
		}
		playRound(t, m, players)
	}

	if m.Phase() != PhaseRound || m.State().CurrentRound != 4 {
		t.Fatalf("unlimited game state = %+v", m.State())
	}
	if err := m.RequestPhase(PhaseVoting); err != nil {
		t.Fatalf("request voting: %v", err)
	}
	if m.Phase() != PhaseVoting {
		t.Fatalf("phase = %s", m.Phase())
	}

	limited, _ := playingMachine(t, Config{MaxRounds: 5}, "ana", "beto", "carla")
	if err := limited.RequestPhase(PhaseVoting); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("limited err = %v", err)
	}
}

func TestRequestPhaseRejectsUnknownTargets(t *testing.T) {
	m, _ := playingMachine(t, Config{}, "ana", "beto", "carla")

	for _, target := range []Phase{PhaseRoleAssignment, PhaseResults, "halftime"} {
		if err := m.RequestPhase(target); !errors.Is(err, ErrInvalidPhaseTransition) {
			t.Fatalf("target %q: err = %v", target, err)
		}
	}
}

func votingMachine(t *testing.T, voting VotingMode) (*Machine, []Player) {
	t.Helper()

	m, players := playingMachine(t, Config{MaxRounds: 1, Voting: voting}, "ana", "beto", "carla", "dani")
	playRound(t, m, players)
	if m.Phase() != PhaseVoting {
		t.Fatalf("phase = %s, want voting", m.Phase())
	}
	return m, players
}

func TestSubmitVoteRejections(t *testing.T) {
	m, players := votingMachine(t, VotingTurnOrdered)

	tests := []struct {
		name          string
		voter, target string
		want          error
	}{
		{"self vote", players[0].ID, players[0].ID, ErrSelfVote},
		{"unknown voter", "stranger", players[1].ID, ErrUnknownPlayer},
		{"unknown target", players[0].ID, "stranger", ErrUnknownPlayer},
		{"out of turn", players[2].ID, players[0].ID, ErrNotYourTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.Version()
			if err := m.SubmitVote(tt.voter, tt.target); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if m.Version() != before || m.State().CurrentVoterIndex != 0 {
				t.Fatalf("rejected vote changed state")
			}
		})
	}
}

func TestVoteReplacement(t *testing.T) {
	m, players := votingMachine(t, VotingFree)

	if err := m.SubmitVote(players[0].ID, players[1].ID); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := m.SubmitVote(players[0].ID, players[2].ID); err != nil {
		t.Fatalf("second vote: %v", err)
	}

	votes := m.View("").Votes
	if len(votes) != 1 {
		t.Fatalf("votes = %+v, want exactly one", votes)
	}
	if votes[0].VoterID != players[0].ID || votes[0].TargetID != players[2].ID || votes[0].TargetName != "carla" {
		t.Fatalf("vote = %+v", votes[0])
	}
	if m.Phase() != PhaseVoting {
		t.Fatalf("phase = %s, want voting", m.Phase())
	}
}

func TestTurnOrderedVotingCompletes(t *testing.T) {
	m, players := votingMachine(t, VotingTurnOrdered)

	for i, p := range players {
		if got := m.State().CurrentVoterIndex; got != i {
			t.Fatalf("voter index = %d, want %d", got, i)
		}
		target := players[(i+1)%len(players)]
		if err := m.SubmitVote(p.ID, target.ID); err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
	}

	if m.Phase() != PhaseResults {
		t.Fatalf("phase = %s, want results", m.Phase())
	}
	if err := m.SubmitVote(players[0].ID, players[1].ID); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("late vote err = %v", err)
	}
}

func TestTally(t *testing.T) {
	players := testRoster("a", "b", "c", "d")
	vote := func(voter, target string) Vote { return Vote{VoterID: "id-" + voter, TargetID: "id-" + target} }

	tests := []struct {
		name      string
		votes     []Vote
		mostVoted string
		isTie     bool
	}{
		{"no votes", nil, "", false},
		{"two way tie", []Vote{vote("a", "b"), vote("c", "b"), vote("b", "a"), vote("d", "a")}, "", true},
		{"clear leader", []Vote{vote("a", "c"), vote("b", "c"), vote("d", "c"), vote("c", "a")}, "id-c", false},
		{"single vote", []Vote{vote("a", "d")}, "id-d", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts, mostVoted, isTie := Tally(players, tt.votes)
			if len(counts) != len(players) {
				t.Fatalf("counts = %v, want an entry per player", counts)
			}
			if mostVoted != tt.mostVoted || isTie != tt.isTie {
				t.Fatalf("mostVoted=%q isTie=%v, want %q %v", mostVoted, isTie, tt.mostVoted, tt.isTie)
			}
		})
	}
}

func TestTieAlwaysFavoursImpostor(t *testing.T) {
	players := testRoster("a", "b", "c")
	votes := []Vote{
		{VoterID: "id-a", TargetID: "id-b"},
		{VoterID: "id-c", TargetID: "id-b"},
		{VoterID: "id-b", TargetID: "id-a"},
		{VoterID: "id-x", TargetID: "id-a"},
	}

	counts, mostVoted, isTie := Tally(players, votes)
	if counts["id-a"] != 2 || counts["id-b"] != 2 || counts["id-c"] != 0 {
		t.Fatalf("counts = %v", counts)
	}
	if !isTie || mostVoted != "" {
		t.Fatalf("isTie=%v mostVoted=%q", isTie, mostVoted)
	}
	for _, p := range players {
		if got := Winner(mostVoted, p.ID); got != TeamImpostor {
			t.Fatalf("impostor %s: winner = %s", p.ID, got)
		}
	}
}

func TestWinner(t *testing.T) {
	if got := Winner("imp", "imp"); got != TeamGroup {
		t.Fatalf("correct guess winner = %s", got)
	}
	if got := Winner("other", "imp"); got != TeamImpostor {
		t.Fatalf("wrong guess winner = %s", got)
	}
	if got := Winner("", "imp"); got != TeamImpostor {
		t.Fatalf("no guess winner = %s", got)
	}
}

func TestFullGameAndReset(t *testing.T) {
	m := newTestMachine(t, 11)
	players := testRoster("A", "B", "C")
	for _, p := range players {
		if _, err := m.Join(p); err != nil {
			t.Fatalf("join: %v", err)
		}
	}

	if err := m.StartGame(m.Roster(), Config{MaxRounds: 3}); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, p := range players {
		if _, err := m.MarkSeen(p.ID); err != nil {
			t.Fatalf("seen: %v", err)
		}
	}
	if err := m.AdvanceToRound(); err != nil {
		t.Fatalf("advance: %v", err)
	}

	for round := 0; round < 3; round++ {
		if m.Phase() != PhaseRound {
			t.Fatalf("round %d: phase = %s", round+1, m.Phase())
		}
		playRound(t, m, players)
	}
	if m.Phase() != PhaseVoting {
		t.Fatalf("phase = %s, want voting", m.Phase())
	}

	impostor := m.assignment.ImpostorID
	for _, p := range players {
		target := impostor
		if p.ID == impostor {
			target = players[0].ID
			if target == impostor {
				target = players[1].ID
			}
		}
		if err := m.SubmitVote(p.ID, target); err != nil {
			t.Fatalf("vote by %s: %v", p.Name, err)
		}
	}
	if m.Phase() != PhaseResults {
		t.Fatalf("phase = %s, want results", m.Phase())
	}

	res, err := m.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res.MostVoted != impostor || res.IsTie || res.Winner != TeamGroup || res.VoteCounts[impostor] != 2 {
		t.Fatalf("results = %+v", res)
	}

	snap := m.View(players[0].ID)
	if snap.Reveal == nil || snap.Reveal.ImpostorID != impostor || snap.Results == nil {
		t.Fatalf("results snapshot missing reveal: %+v", snap)
	}
	if s := snap.Scores[impostor]; s.GamesLost != 1 || s.GamesWon != 0 {
		t.Fatalf("impostor score = %+v", s)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snap = m.View(players[0].ID)
	if snap.State.Phase != PhaseLobby || len(snap.Clues) != 0 || len(snap.Votes) != 0 || snap.Me != nil || snap.Reveal != nil {
		t.Fatalf("after reset snapshot = %+v", snap)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("roster after reset = %v", snap.Players)
	}
	if snap.Scores[impostor].GamesLost != 1 {
		t.Fatalf("scores lost on reset: %v", snap.Scores)
	}
	if _, err := m.Results(); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("results after reset err = %v", err)
	}
	if err := m.Reset(); !errors.Is(err, ErrInvalidPhaseTransition) {
		t.Fatalf("reset in lobby err = %v", err)
	}

	if err := m.StartGame(m.Roster(), Config{MaxRounds: 1}); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestViewKeepsRolesSecret(t *testing.T) {
	m, players := playingMachine(t, Config{}, "ana", "beto", "carla")
	impostor := m.assignment.ImpostorID

	for _, p := range players {
		snap := m.View(p.ID)
		if snap.Me == nil || snap.Me.ID != p.ID {
			t.Fatalf("view for %s: me = %+v", p.Name, snap.Me)
		}
		if p.ID == impostor && snap.Me.SecretWord != "" {
			t.Fatalf("impostor sees the word %q", snap.Me.SecretWord)
		}
		if p.ID != impostor && snap.Me.SecretWord != "Maracanã" {
			t.Fatalf("%s sees %q", p.Name, snap.Me.SecretWord)
		}
		if snap.Reveal != nil {
			t.Fatalf("reveal published before results")
		}
	}

	if snap := m.View(""); snap.Me != nil {
		t.Fatalf("anonymous view has me = %+v", snap.Me)
	}
}
