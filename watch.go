/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Seednode/impostor/game"
	"github.com/Seednode/impostor/mirror"
)

// describe renders one snapshot as a few lines of text.
func describe(snap game.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[v%d] %s", snap.Version, snap.State.Phase)

	switch snap.State.Phase {
	case game.PhaseRound:
		fmt.Fprintf(&b, ", round %d", snap.State.CurrentRound)
		if p, ok := snap.CurrentPlayer(); ok {
			fmt.Fprintf(&b, ", %s to give a clue", p.Name)
		}
	case game.PhaseRoleAssignment:
		fmt.Fprintf(&b, ", %d of %d have seen their role", snap.Seen.Count, snap.Seen.Total)
	case game.PhaseVoting:
		fmt.Fprintf(&b, ", %d of %d voted", len(snap.Votes), len(snap.Players))
		if p, ok := snap.CurrentVoter(); ok {
			fmt.Fprintf(&b, ", %s to vote", p.Name)
		}
	}
	b.WriteString("\n")

	names := make([]string, len(snap.Players))
	for i, p := range snap.Players {
		names[i] = p.Name
	}
	fmt.Fprintf(&b, "  players: %s\n", strings.Join(names, ", "))

	if me := snap.Me; me != nil {
		if me.Role == game.RoleImpostor {
			b.WriteString("  you are the impostor\n")
		} else {
			fmt.Fprintf(&b, "  your word: %s\n", me.SecretWord)
		}
	}

	if n := len(snap.Clues); n > 0 {
		c := snap.Clues[n-1]
		fmt.Fprintf(&b, "  last clue: %s said %q\n", c.PlayerName, c.Text)
	}

	if r := snap.Reveal; r != nil && snap.Results != nil {
		fmt.Fprintf(&b, "  the impostor was %s, the word was %s, %s wins\n",
			r.ImpostorName, r.SecretWord.Word, snap.Results.Winner)
	}

	return b.String()
}

func watchRoom(ctx context.Context, cfg *Config, out io.Writer, baseURL, code, playerID string) error {
	m := mirror.New(mirror.NewHTTPClient(baseURL), strings.ToUpper(code), playerID)
	m.PollInterval = cfg.pollInterval
	m.MaxPolls = cfg.maxPolls
	m.Logf = roomLogger(cfg)
	m.OnChange = func(snap game.Snapshot) {
		fmt.Fprint(out, describe(snap))
	}

	err := m.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
