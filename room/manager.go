/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"context"
	"crypto/rand"
	"fmt"
	mrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/impostor/game"
)

const (
	codeLength  = 6
	codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Manager holds every live room keyed by its join code.
type Manager struct {
	deck        *game.Deck
	maxPlayers  int
	idleTimeout time.Duration
	logf        func(format string, args ...any)

	// TurnTimeout, when positive, is handed to every room created after it
	// is set.
	TurnTimeout time.Duration

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewManager returns an empty manager. Rooms deal from deck; an idleTimeout
// of zero disables reaping.
func NewManager(deck *game.Deck, maxPlayers int, idleTimeout time.Duration, logf func(format string, args ...any)) *Manager {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Manager{
		deck:        deck,
		maxPlayers:  maxPlayers,
		idleTimeout: idleTimeout,
		logf:        logf,
		rooms:       make(map[string]*Room),
	}
}

// Create opens a new room under a fresh code.
func (m *Manager) Create() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for {
		c, err := newCode()
		if err != nil {
			return nil, err
		}
		if _, exists := m.rooms[c]; !exists {
			code = c
			break
		}
	}

	rng := mrand.New(mrand.NewSource(time.Now().UnixNano()))
	r := New(code, game.NewMachine(m.deck, rng, m.maxPlayers), m.logf)
	r.SetTurnTimeout(m.TurnTimeout)
	m.rooms[code] = r

	m.logf("GAMES: Created room %s", code)

	return r, nil
}

// Get looks a room up by code, case-insensitively.
func (m *Manager) Get(code string) (*Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", game.ErrRoomNotFound, code)
	}
	return r, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rooms)
}

// Run reaps idle rooms until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if m.idleTimeout <= 0 {
		return
	}

	ticker := time.NewTicker(m.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.reap(time.Now().Add(-m.idleTimeout))
		}
	}
}

// reap closes and forgets every room idle since before cutoff.
func (m *Manager) reap(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for code, r := range m.rooms {
		if r.idleSince(cutoff) {
			delete(m.rooms, code)
			r.Close()
			reaped++

			m.logf("GAMES: Reaped idle room %s", code)
		}
	}
	return reaped
}

func newCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, codeLength)
	for i := range out {
		out[i] = codeLetters[int(buf[i])%len(codeLetters)]
	}
	return string(out), nil
}
