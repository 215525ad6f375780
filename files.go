/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"os"

	"github.com/Seednode/impostor/game"
)

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}

// loadDeck returns the deck named by --words, or the built-in one.
func loadDeck(cfg *Config) (*game.Deck, error) {
	if cfg.words == "" {
		deck := game.DefaultDeck()
		logf(cfg, "START: Using built-in deck of %d words", deck.Len())

		return deck, nil
	}

	info, err := os.Stat(cfg.words)
	if err != nil {
		return nil, err
	}

	deck, err := game.LoadDeck(cfg.words)
	if err != nil {
		return nil, err
	}

	logf(cfg, "START: Loaded %d words from %s (%s)", deck.Len(), cfg.words, humanReadableSize(info.Size()))

	return deck, nil
}
