/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

// SecretWord is a subject the non-impostor players are told about.
type SecretWord struct {
	Word     string `json:"word"`
	Category string `json:"category,omitempty"`
}

// Deck is the catalog secret words are drawn from. It is safe for
// concurrent use, so one Deck can be shared between every room.
type Deck struct {
	words []SecretWord

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDeck builds a deck from words. Duplicate entries are kept and simply
// weight the draw towards that entry.
func NewDeck(words []SecretWord, rng *rand.Rand) (*Deck, error) {
	cleaned := make([]SecretWord, 0, len(words))
	for _, w := range words {
		w.Word = strings.TrimSpace(w.Word)
		if w.Word == "" {
			continue
		}
		cleaned = append(cleaned, w)
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: deck has no words", ErrInvalidConfig)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Deck{words: cleaned, rng: rng}, nil
}

// DefaultDeck returns a deck over the built-in catalog.
func DefaultDeck() *Deck {
	d, _ := NewDeck(defaultWords, nil)
	return d
}

// LoadDeck reads a JSON array of {"word": ..., "category": ...} objects.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var words []SecretWord
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return NewDeck(words, nil)
}

// Len returns the number of entries in the catalog, duplicates included.
func (d *Deck) Len() int {
	return len(d.words)
}

// Draw picks one entry uniformly at random.
func (d *Deck) Draw() SecretWord {
	d.mu.Lock()
	i := d.rng.Intn(len(d.words))
	d.mu.Unlock()

	return d.words[i]
}
