/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package mirror keeps a read-only copy of a remote room for one player.
//
// Pushed events are hints. The mirror only trusts a snapshot after a full
// fetch on connect, discards anything older than what it holds, and falls
// back to a bounded number of polls whenever it may have missed a change.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Seednode/impostor/game"
	"github.com/Seednode/impostor/room"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultMaxPolls     = 20
	reconnectDelay      = 2 * time.Second
)

// ErrOutcomeUnknown is returned by Do when the request may or may not have
// been applied. The mirror has already tried to refresh; check the snapshot
// before retrying.
var ErrOutcomeUnknown = errors.New("action outcome unknown")

type Mirror struct {
	Code     string
	PlayerID string

	PollInterval time.Duration
	MaxPolls     int

	// OnChange, if set, is called with every snapshot the mirror accepts.
	OnChange func(game.Snapshot)
	Logf     func(format string, args ...any)

	client Client

	mu        sync.RWMutex
	snap      game.Snapshot
	synced    bool
	pollsLeft int
}

func New(client Client, code, playerID string) *Mirror {
	return &Mirror{
		Code:         code,
		PlayerID:     playerID,
		PollInterval: DefaultPollInterval,
		MaxPolls:     DefaultMaxPolls,
		client:       client,
	}
}

func (m *Mirror) logf(format string, args ...any) {
	if m.Logf != nil {
		m.Logf(format, args...)
	}
}

// Snapshot returns the cached state and whether it has been confirmed by a
// full fetch since the last (re)connect.
func (m *Mirror) Snapshot() (game.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snap, m.synced
}

// PollsRemaining reports how many reconciliation polls are still armed.
func (m *Mirror) PollsRemaining() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.pollsLeft
}

// Arm resets the polling budget.
func (m *Mirror) Arm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.armLocked()
}

func (m *Mirror) armLocked() {
	m.pollsLeft = m.MaxPolls
}

// Refresh replaces the cache with the authoritative snapshot.
func (m *Mirror) Refresh(ctx context.Context) error {
	snap, err := m.client.FetchState(ctx, m.Code, m.PlayerID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.synced = true
	m.mu.Unlock()

	m.accept(snap, fromFetch)

	return nil
}

// source says where a snapshot came from.
type source int

const (
	fromPush  source = iota // websocket event
	fromReply               // response to one of our own actions
	fromFetch               // full state fetch
)

// accept installs snap unless it is not newer than the cache. A full fetch
// is authoritative and also replaces a newer cache, as happens when the
// room was discarded and its code reused. A phase change, including
// arriving in the lobby, a skipped version or a step back arms polling.
func (m *Mirror) accept(snap game.Snapshot, src source) bool {
	m.mu.Lock()

	cur := m.snap
	fresh := cur.Version == 0 && cur.State.Phase == ""

	if !fresh && snap.Version <= cur.Version {
		if src != fromFetch || (snap.Version == cur.Version && sameRoster(snap, cur)) {
			m.mu.Unlock()
			return false
		}
	}

	switch {
	case src == fromPush && !fresh && snap.Version > cur.Version+1:
		m.armLocked()
	case snap.State.Phase != cur.State.Phase:
		m.armLocked()
	case !fresh && snap.Version < cur.Version:
		m.armLocked()
	}

	m.snap = snap
	onChange := m.OnChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(snap)
	}
	return true
}

func sameRoster(a, b game.Snapshot) bool {
	return slices.EqualFunc(a.Players, b.Players, func(x, y game.Player) bool {
		return x.ID == y.ID
	})
}

// HandleEvent folds one pushed event into the cache.
func (m *Mirror) HandleEvent(ev room.Event) {
	switch {
	case ev.Type == room.EventError:
		m.logf("MIRROR: Server reported an error: %v", ev.Payload)
	case ev.Snapshot == nil:
		m.Arm()
	default:
		m.accept(*ev.Snapshot, fromPush)
	}
}

// Poll performs one reconciliation fetch if the budget allows it. It
// reports whether a poll was made.
func (m *Mirror) Poll(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if m.pollsLeft <= 0 {
		m.mu.Unlock()
		return false, nil
	}
	m.pollsLeft--
	m.mu.Unlock()

	return true, m.Refresh(ctx)
}

// pinned reports whether an action moves the turn order on. Applying one
// of these twice would skip a player, so they carry the cached version.
// Everything else is safe to repeat: acknowledging a role again is a no-op,
// a second vote replaces the first and the remaining actions fail once
// their phase has passed.
func pinned(t room.ActionType) bool {
	return t == room.ActSubmitClue || t == room.ActSkipTurn
}

// Do submits req on behalf of the mirrored player. Actions that advance the
// turn are pinned to the cached version so that a retry cannot apply twice;
// callers retrying anything else after ErrOutcomeUnknown may set
// ExpectVersion themselves.
func (m *Mirror) Do(ctx context.Context, req room.Request) (game.Snapshot, error) {
	snap, _ := m.Snapshot()

	req.PlayerID = m.PlayerID
	if req.ExpectVersion == 0 && pinned(req.Type) {
		req.ExpectVersion = snap.Version
	}

	if req.Type == room.ActSubmitClue {
		if p, ok := snap.CurrentPlayer(); ok && p.ID != m.PlayerID {
			return snap, game.ErrNotYourTurn
		}
	}

	next, err := m.client.Send(ctx, m.Code, req)

	var remote *RemoteError
	switch {
	case err == nil:
		m.accept(next, fromReply)
		return next, nil
	case errors.As(err, &remote):
		if errors.Is(err, game.ErrStaleVersion) {
			_ = m.Refresh(ctx)
		}
		return game.Snapshot{}, err
	}

	if rerr := m.Refresh(ctx); rerr != nil {
		m.Arm()
	}

	return game.Snapshot{}, fmt.Errorf("%w: %v", ErrOutcomeUnknown, err)
}

// Run keeps the mirror connected until ctx is cancelled, reconnecting and
// refreshing after every stream failure.
func (m *Mirror) Run(ctx context.Context) error {
	go m.pollLoop(ctx)

	for {
		err := m.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, game.ErrRoomNotFound) {
			return err
		}

		m.logf("MIRROR: Stream for %s lost: %v", m.Code, err)

		m.mu.Lock()
		m.synced = false
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (m *Mirror) session(ctx context.Context) error {
	stream, err := m.client.Subscribe(ctx, m.Code, m.PlayerID)
	if err != nil {
		return err
	}
	defer stream.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = stream.Close()
		case <-done:
		}
	}()

	if err := m.Refresh(ctx); err != nil {
		return err
	}

	for {
		ev, err := stream.Recv()
		if err != nil {
			return err
		}
		m.HandleEvent(ev)
	}
}

func (m *Mirror) pollLoop(ctx context.Context) {
	interval := m.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Poll(ctx); err != nil {
				m.logf("MIRROR: Poll of %s failed: %v", m.Code, err)
			}
		}
	}
}
