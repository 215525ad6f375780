/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/Seednode/impostor/game"
)

// hideRole is printed after each reveal so the next player cannot scroll up.
var hideRole = strings.Repeat("\n", 40)

// table is a single device passed around the players.
type table struct {
	ctx  context.Context
	host *game.LocalHost
	in   *bufio.Scanner
	out  io.Writer
}

func (t *table) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// prompt prints question and returns the next trimmed input line.
func (t *table) prompt(question string) (string, error) {
	if err := t.ctx.Err(); err != nil {
		return "", err
	}

	t.printf("%s", question)

	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func playLocal(ctx context.Context, cfg *Config, in io.Reader, out io.Writer, names []string) error {
	deck, err := loadDeck(cfg)
	if err != nil {
		return err
	}

	host := game.NewLocalHost(game.NewMachine(deck, nil, max(len(names), game.DefaultMaxPlayers)))
	for _, name := range names {
		if _, err := host.Join(name); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
	}

	t := &table{ctx: ctx, host: host, in: bufio.NewScanner(in), out: out}

	gameCfg := game.Config{MaxRounds: cfg.rounds, Voting: game.VotingMode(cfg.voting)}

	for {
		if err := t.play(gameCfg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		again, err := t.prompt("Play again? [y/N] ")
		if err != nil || !strings.HasPrefix(strings.ToLower(again), "y") {
			return nil
		}

		if _, err := host.ResetToLobby(""); err != nil {
			return err
		}
	}
}

func (t *table) play(cfg game.Config) error {
	if _, err := t.host.StartGame("", cfg); err != nil {
		return err
	}

	if err := t.reveal(); err != nil {
		return err
	}

	snap, err := t.host.AdvanceToRound("")
	if err != nil {
		return err
	}

	for snap.State.Phase == game.PhaseRound {
		if snap, err = t.clue(snap); err != nil {
			return err
		}
	}

	for snap.State.Phase == game.PhaseVoting {
		if snap, err = t.vote(snap); err != nil {
			return err
		}
	}

	t.results(snap)

	return nil
}

func (t *table) reveal() error {
	for {
		snap, _ := t.host.FullState("")
		next := snap.Players[min(snap.Seen.Count, len(snap.Players)-1)]

		if _, err := t.prompt(fmt.Sprintf("Pass the device to %s and press Enter.", next.Name)); err != nil {
			return err
		}

		info, done, err := t.host.RevealNext()
		if err != nil {
			return err
		}

		if info.Role == game.RoleImpostor {
			t.printf("%s, you are the IMPOSTOR. Blend in.\n", info.Name)
		} else {
			t.printf("%s, the secret word is %q (%s).\n", info.Name, info.SecretWord, info.Category)
		}

		if _, err := t.prompt("Press Enter to hide it."); err != nil {
			return err
		}
		t.printf("%s", hideRole)

		if done {
			return nil
		}
	}
}

func (t *table) clue(snap game.Snapshot) (game.Snapshot, error) {
	p, _ := snap.CurrentPlayer()

	round := fmt.Sprintf("Round %d", snap.State.CurrentRound)
	if snap.State.MaxRounds > 0 {
		round += fmt.Sprintf(" of %d", snap.State.MaxRounds)
	}

	hint := ""
	if snap.State.MaxRounds == 0 && snap.State.CompletedRounds >= game.MinRoundsBeforeVote {
		hint = ", /vote to start voting"
	}

	line, err := t.prompt(fmt.Sprintf("%s. %s, your clue (/skip to pass%s): ", round, p.Name, hint))
	if err != nil {
		return snap, err
	}

	var next game.Snapshot
	switch line {
	case "/skip":
		next, err = t.host.SkipTurn("")
	case "/vote":
		next, err = t.host.RequestPhase("", game.PhaseVoting)
	default:
		next, err = t.host.SubmitClue(p.ID, line)
	}

	if err != nil {
		t.printf("  %v\n", err)
		return snap, nil
	}
	return next, nil
}

func (t *table) vote(snap game.Snapshot) (game.Snapshot, error) {
	voter, ok := snap.CurrentVoter()
	if !ok {
		// Free voting: the first player without a vote goes next.
		for _, p := range snap.Players {
			if !slices.ContainsFunc(snap.Votes, func(v game.Vote) bool { return v.VoterID == p.ID }) {
				voter = p
				break
			}
		}
	}

	t.printf("\nClues so far:\n")
	for _, c := range snap.Clues {
		text := c.Text
		if c.Skipped {
			text = "(skipped)"
		}
		t.printf("  round %d  %-12s %s\n", c.Round, c.PlayerName, text)
	}

	t.printf("\n%s, who is the impostor?\n", voter.Name)
	for i, p := range snap.Players {
		t.printf("  %d) %s\n", i+1, p.Name)
	}

	line, err := t.prompt("> ")
	if err != nil {
		return snap, err
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(snap.Players) {
		t.printf("  pick a number from 1 to %d\n", len(snap.Players))
		return snap, nil
	}

	next, err := t.host.SubmitVote(voter.ID, snap.Players[n-1].ID)
	if err != nil {
		t.printf("  %v\n", err)
		return snap, nil
	}
	return next, nil
}

func (t *table) results(snap game.Snapshot) {
	res, reveal := snap.Results, snap.Reveal
	if res == nil || reveal == nil {
		return
	}

	t.printf("\nVotes:\n")
	for _, p := range snap.Players {
		t.printf("  %-12s %d\n", p.Name, res.VoteCounts[p.ID])
	}

	switch {
	case res.IsTie:
		t.printf("\nThe vote was tied.\n")
	case res.MostVoted == "":
		t.printf("\nNobody was voted out.\n")
	}

	t.printf("The impostor was %s. The word was %q.\n", reveal.ImpostorName, reveal.SecretWord.Word)

	if res.Winner == game.TeamGroup {
		t.printf("The group wins!\n\n")
	} else {
		t.printf("The impostor wins!\n\n")
	}

	t.printf("Scores:\n")
	for _, p := range snap.Players {
		s := snap.Scores[p.ID]
		t.printf("  %-12s won %d, lost %d\n", p.Name, s.GamesWon, s.GamesLost)
	}
}
