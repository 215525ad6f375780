/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"math/rand"
	"time"
)

// Assigner deals roles for a new game.
type Assigner struct {
	deck *Deck
	rng  *rand.Rand
}

func NewAssigner(deck *Deck, rng *rand.Rand) *Assigner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Assigner{deck: deck, rng: rng}
}

// Assign draws a secret word and picks one impostor uniformly at random.
// Players keep the order of roster, which becomes the turn order.
func (a *Assigner) Assign(roster []Player) (*RoleAssignment, error) {
	if len(roster) < MinPlayers {
		return nil, ErrInsufficientPlayers
	}

	word := a.deck.Draw()
	impostor := a.rng.Intn(len(roster))

	players := make([]AssignedPlayer, len(roster))
	for i, p := range roster {
		role := RoleNormal
		if i == impostor {
			role = RoleImpostor
		}
		players[i] = AssignedPlayer{Player: p, Role: role}
	}

	return &RoleAssignment{
		SecretWord: word,
		ImpostorID: roster[impostor].ID,
		Players:    players,
	}, nil
}

// InfoFor returns what playerID may know about their own role.
func (a *RoleAssignment) InfoFor(playerID string) (PlayerInfo, bool) {
	i := a.index(playerID)
	if i < 0 {
		return PlayerInfo{}, false
	}

	p := a.Players[i]
	info := PlayerInfo{Player: p.Player, Role: p.Role}
	if p.Role != RoleImpostor {
		info.SecretWord = a.SecretWord.Word
		info.Category = a.SecretWord.Category
	}
	return info, true
}
