/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

// Team is the side that won a game.
type Team string

const (
	TeamGroup    Team = "group"
	TeamImpostor Team = "impostor"
)

// Results is the outcome of the voting phase.
type Results struct {
	VoteCounts map[string]int `json:"voteCounts"`
	MostVoted  string         `json:"mostVoted,omitempty"`
	IsTie      bool           `json:"isTie"`
	Winner     Team           `json:"winner"`
	ImpostorID string         `json:"impostorId"`
	// VotedCorrectly maps voter id to whether they picked the impostor.
	VotedCorrectly map[string]bool `json:"votedCorrectly"`
}

// Tally counts votes per target. Every player starts at zero. MostVoted is
// set only when a single player holds the strictly highest non-zero count.
func Tally(players []Player, votes []Vote) (counts map[string]int, mostVoted string, isTie bool) {
	counts = make(map[string]int, len(players))
	for _, p := range players {
		counts[p.ID] = 0
	}
	for _, v := range votes {
		if _, ok := counts[v.TargetID]; ok {
			counts[v.TargetID]++
		}
	}

	top, leaders := 0, 0
	for _, p := range players {
		switch n := counts[p.ID]; {
		case n > top:
			top, leaders, mostVoted = n, 1, p.ID
		case n == top && n > 0:
			leaders++
		}
	}

	if top == 0 {
		return counts, "", false
	}
	if leaders > 1 {
		return counts, "", true
	}
	return counts, mostVoted, false
}

// Winner decides the game. The group wins only when the impostor was the
// single most voted player; a tie or a wrong guess is an impostor win.
func Winner(mostVoted, impostorID string) Team {
	if mostVoted != "" && mostVoted == impostorID {
		return TeamGroup
	}
	return TeamImpostor
}

func computeResults(a *RoleAssignment, votes []Vote) Results {
	players := make([]Player, len(a.Players))
	for i, p := range a.Players {
		players[i] = p.Player
	}

	counts, mostVoted, isTie := Tally(players, votes)

	correct := make(map[string]bool, len(votes))
	for _, v := range votes {
		correct[v.VoterID] = v.TargetID == a.ImpostorID
	}

	return Results{
		VoteCounts:     counts,
		MostVoted:      mostVoted,
		IsTie:          isTie,
		Winner:         Winner(mostVoted, a.ImpostorID),
		ImpostorID:     a.ImpostorID,
		VotedCorrectly: correct,
	}
}
