/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"fmt"
	"sync"
	"time"

	"github.com/Seednode/impostor/game"
)

// SubscriberBuffer is how many events may queue for one client before it
// is considered too slow and dropped.
const SubscriberBuffer = 16

// Subscriber receives the event stream of one room for one player.
type Subscriber struct {
	PlayerID string
	send     chan Event
}

// Events is closed when the subscriber is dropped or the room is closed.
func (s *Subscriber) Events() <-chan Event {
	return s.send
}

// Room is the authoritative host of one networked session. All mutations
// happen under mu, so a turn check and the change it guards are atomic.
type Room struct {
	code string
	logf func(format string, args ...any)

	mu         sync.RWMutex
	machine    *game.Machine
	hostID     string
	subs       map[*Subscriber]struct{}
	createdAt  time.Time
	lastActive time.Time

	turnTimeout time.Duration
	turnTimer   *time.Timer
	closed      bool
}

var _ game.Host = (*Room)(nil)

func New(code string, m *game.Machine, logf func(format string, args ...any)) *Room {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	now := time.Now()
	return &Room{
		code:       code,
		logf:       logf,
		machine:    m,
		subs:       make(map[*Subscriber]struct{}),
		createdAt:  now,
		lastActive: now,
	}
}

func (r *Room) Code() string { return r.code }

// SetTurnTimeout makes the room skip a player who has not given a clue
// within d. Zero disables the timer.
func (r *Room) SetTurnTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.turnTimeout = d
	r.armTurnTimerLocked()
}

func (r *Room) HostID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hostID
}

// op is one validated mutation. run is called with the lock held and
// returns the events to publish; after, if set, runs once they are out.
type op struct {
	hostOnly bool
	run      func() ([]Event, error)
	after    func()
}

// Apply is the single entry point for every mutating action.
func (r *Room) Apply(req Request) (game.Snapshot, error) {
	return r.apply(req, false)
}

// apply runs req. Requests raised by the room itself, such as an expired
// turn, skip the host check but nothing else.
func (r *Room) apply(req Request, internal bool) (game.Snapshot, error) {
	o, err := r.opFor(req)
	if err != nil {
		return game.Snapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return game.Snapshot{}, fmt.Errorf("%w: %s was closed", game.ErrRoomNotFound, r.code)
	}

	if !internal {
		r.lastActive = time.Now()
	}

	if req.ExpectVersion != 0 && req.ExpectVersion != r.machine.Version() {
		return game.Snapshot{}, fmt.Errorf("%w: at version %d, expected %d", game.ErrStaleVersion, r.machine.Version(), req.ExpectVersion)
	}

	if o.hostOnly && !internal && (req.PlayerID == "" || req.PlayerID != r.hostID) {
		return game.Snapshot{}, game.ErrUnauthorized
	}

	before := r.machine.State()

	events, err := o.run()
	if err != nil {
		return game.Snapshot{}, err
	}

	if after := r.machine.State(); after.Phase != before.Phase {
		events = append(events, Event{
			Type:    EventPhaseChanged,
			Payload: PhaseChangedPayload{From: before.Phase, To: after.Phase, State: after},
		})
		r.logf("GAMES: Room %s moved from %s to %s", r.code, before.Phase, after.Phase)
	}

	r.publishLocked(events)

	if o.after != nil {
		o.after()
	}

	if len(events) > 0 {
		r.armTurnTimerLocked()
	}

	return r.machine.View(req.PlayerID), nil
}

func (r *Room) opFor(req Request) (op, error) {
	m := r.machine

	switch req.Type {
	case ActJoin:
		return op{run: func() ([]Event, error) {
			p := game.Player{ID: req.PlayerID, Name: req.Name}
			added, err := m.Join(p)
			if err != nil || !added {
				return nil, err
			}

			if r.hostID == "" {
				r.hostID = p.ID
			}

			roster := m.Roster()
			r.logf("GAMES: Player %q joined %s", roster[len(roster)-1].Name, r.code)

			return []Event{{
				Type:    EventPlayerJoined,
				Payload: PlayerJoinedPayload{Player: roster[len(roster)-1], Players: roster},
			}}, nil
		}}, nil

	case ActLeave:
		return op{run: func() ([]Event, error) {
			return r.removeLocked(req.PlayerID, false)
		}}, nil

	case ActKick:
		return op{
			hostOnly: true,
			run: func() ([]Event, error) {
				return r.removeLocked(req.TargetID, true)
			},
			after: func() {
				r.dropPlayerLocked(req.TargetID)
			},
		}, nil

	case ActStartGame:
		return op{hostOnly: true, run: func() ([]Event, error) {
			var cfg game.Config
			if req.Config != nil {
				cfg = *req.Config
			}
			if err := m.StartGame(m.Roster(), cfg); err != nil {
				return nil, err
			}
			r.logf("GAMES: Started game in %s with %d players", r.code, len(m.Roster()))
			return []Event{r.stateEventLocked()}, nil
		}}, nil

	case ActMarkRoleSeen:
		return op{run: func() ([]Event, error) {
			before := m.Version()
			if _, err := m.MarkSeen(req.PlayerID); err != nil {
				return nil, err
			}
			if m.Version() == before {
				return nil, nil
			}
			return []Event{r.stateEventLocked()}, nil
		}}, nil

	case ActAdvanceToRound:
		return op{hostOnly: true, run: func() ([]Event, error) {
			if err := m.AdvanceToRound(); err != nil {
				return nil, err
			}
			return []Event{r.stateEventLocked()}, nil
		}}, nil

	case ActSubmitClue:
		return op{run: func() ([]Event, error) {
			if err := m.SubmitClue(req.PlayerID, req.Text); err != nil {
				return nil, err
			}
			return r.clueEventsLocked(), nil
		}}, nil

	case ActSkipTurn:
		return op{hostOnly: true, run: func() ([]Event, error) {
			if err := m.SkipTurn(); err != nil {
				return nil, err
			}
			return r.clueEventsLocked(), nil
		}}, nil

	case ActRequestPhase:
		return op{hostOnly: true, run: func() ([]Event, error) {
			if err := m.RequestPhase(req.Phase); err != nil {
				return nil, err
			}
			if req.Phase == game.PhaseLobby {
				return []Event{r.resetEventLocked()}, nil
			}
			return []Event{r.stateEventLocked()}, nil
		}}, nil

	case ActSubmitVote:
		return op{run: func() ([]Event, error) {
			if err := m.SubmitVote(req.PlayerID, req.TargetID); err != nil {
				return nil, err
			}

			snap := m.View("")
			var vote game.Vote
			for _, v := range snap.Votes {
				if v.VoterID == req.PlayerID {
					vote = v
				}
			}

			return []Event{{
				Type: EventVoteAdded,
				Payload: VoteAddedPayload{
					Vote:       vote,
					VotedCount: len(snap.Votes),
					Total:      len(snap.Players),
					State:      snap.State,
				},
			}}, nil
		}}, nil

	case ActResetToLobby:
		return op{hostOnly: true, run: func() ([]Event, error) {
			if err := m.Reset(); err != nil {
				return nil, err
			}
			r.logf("GAMES: Room %s reset to lobby", r.code)
			return []Event{r.resetEventLocked()}, nil
		}}, nil
	}

	return op{}, fmt.Errorf("%w: %q", game.ErrUnknownAction, req.Type)
}

// armTurnTimerLocked restarts the turn timer for the current version. The
// skip it schedules is pinned to that version, so any accepted action in
// between cancels it.
func (r *Room) armTurnTimerLocked() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}

	if r.turnTimeout <= 0 || r.machine.Phase() != game.PhaseRound {
		return
	}

	version := r.machine.Version()
	r.turnTimer = time.AfterFunc(r.turnTimeout, func() {
		_, err := r.apply(Request{Type: ActSkipTurn, ExpectVersion: version}, true)
		if err == nil {
			r.logf("GAMES: Turn timed out in %s", r.code)
		}
	})
}

func (r *Room) removeLocked(playerID string, kicked bool) ([]Event, error) {
	if err := r.machine.Leave(playerID); err != nil {
		return nil, err
	}

	roster := r.machine.Roster()
	if r.hostID == playerID {
		r.hostID = ""
		if len(roster) > 0 {
			r.hostID = roster[0].ID
		}
	}

	r.logf("GAMES: Player %s left %s (kicked: %t)", playerID, r.code, kicked)

	return []Event{{
		Type:    EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerID: playerID, Kicked: kicked, Players: roster},
	}}, nil
}

func (r *Room) stateEventLocked() Event {
	return Event{
		Type: EventGameStateChanged,
		Payload: GameStatePayload{
			State: r.machine.State(),
			Seen:  r.machine.SeenStatus(),
		},
	}
}

func (r *Room) clueEventsLocked() []Event {
	snap := r.machine.View("")
	clue := snap.Clues[len(snap.Clues)-1]

	return []Event{
		{Type: EventClueAdded, Payload: ClueAddedPayload{Clue: clue, State: snap.State}},
		r.stateEventLocked(),
	}
}

func (r *Room) resetEventLocked() Event {
	return Event{
		Type: EventRoomReset,
		Payload: RoomUpdatedPayload{
			Players: r.machine.Roster(),
			HostID:  r.hostID,
			Phase:   r.machine.Phase(),
		},
	}
}

// publishLocked delivers events to every subscriber without blocking.
// Subscribers that cannot keep up are dropped; they reconnect and fetch.
func (r *Room) publishLocked(events []Event) {
	for _, ev := range events {
		ev.Room = r.code
		ev.Version = r.machine.Version()
		ev.HostID = r.hostID

		for s := range r.subs {
			personal := ev
			snap := r.machine.View(s.PlayerID)
			personal.Snapshot = &snap

			select {
			case s.send <- personal:
			default:
				delete(r.subs, s)
				close(s.send)
			}
		}
	}
}

func (r *Room) dropPlayerLocked(playerID string) {
	for s := range r.subs {
		if s.PlayerID == playerID {
			delete(r.subs, s)
			close(s.send)
		}
	}
}

// Subscribe registers a listener for playerID. The first event on the
// channel is always a room_updated carrying the current snapshot. On a
// closed room the channel is already closed.
func (r *Room) Subscribe(playerID string) *Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Subscriber{
		PlayerID: playerID,
		send:     make(chan Event, SubscriberBuffer),
	}

	if r.closed {
		close(s.send)
		return s
	}

	r.lastActive = time.Now()
	r.subs[s] = struct{}{}

	snap := r.machine.View(playerID)
	s.send <- Event{
		Type:    EventRoomUpdated,
		Room:    r.code,
		Version: snap.Version,
		HostID:  r.hostID,
		Payload: RoomUpdatedPayload{
			Players: snap.Players,
			HostID:  r.hostID,
			Phase:   snap.State.Phase,
		},
		Snapshot: &snap,
	}

	return s
}

func (r *Room) Unsubscribe(s *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastActive = time.Now()

	if _, ok := r.subs[s]; ok {
		delete(r.subs, s)
		close(s.send)
	}
}

// Subscribers returns the number of connected listeners.
func (r *Room) Subscribers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs)
}

// idleSince reports whether nobody is connected and nothing happened
// after cutoff.
func (r *Room) idleSince(cutoff time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs) == 0 && r.lastActive.Before(cutoff)
}

// Close stops the turn timer and disconnects every subscriber.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}

	for s := range r.subs {
		delete(r.subs, s)
		close(s.send)
	}
}

func (r *Room) Join(playerID, name string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActJoin, PlayerID: playerID, Name: name})
}

func (r *Room) Leave(playerID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActLeave, PlayerID: playerID})
}

func (r *Room) Kick(requesterID, targetID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActKick, PlayerID: requesterID, TargetID: targetID})
}

func (r *Room) StartGame(requesterID string, cfg game.Config) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActStartGame, PlayerID: requesterID, Config: &cfg})
}

func (r *Room) MarkRoleSeen(playerID string) (game.SeenStatus, error) {
	snap, err := r.Apply(Request{Type: ActMarkRoleSeen, PlayerID: playerID})
	if err != nil {
		return game.SeenStatus{}, err
	}
	return snap.Seen, nil
}

func (r *Room) AdvanceToRound(requesterID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActAdvanceToRound, PlayerID: requesterID})
}

func (r *Room) SubmitClue(playerID, text string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActSubmitClue, PlayerID: playerID, Text: text})
}

func (r *Room) SkipTurn(requesterID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActSkipTurn, PlayerID: requesterID})
}

func (r *Room) RequestPhase(requesterID string, target game.Phase) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActRequestPhase, PlayerID: requesterID, Phase: target})
}

func (r *Room) SubmitVote(voterID, targetID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActSubmitVote, PlayerID: voterID, TargetID: targetID})
}

func (r *Room) ResetToLobby(requesterID string) (game.Snapshot, error) {
	return r.Apply(Request{Type: ActResetToLobby, PlayerID: requesterID})
}

// Results returns the running tally. Until the room reaches results, the
// parts that would identify the impostor are withheld.
func (r *Room) Results() (game.Results, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, err := r.machine.Results()
	if err != nil {
		return game.Results{}, err
	}

	if r.machine.Phase() != game.PhaseResults {
		res.Winner = ""
		res.ImpostorID = ""
		res.VotedCorrectly = nil
	}
	return res, nil
}

// FullState returns the authoritative snapshot as seen by viewerID.
func (r *Room) FullState(viewerID string) (game.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.machine.View(viewerID), nil
}
