// Package session owns the per-(user, day) reading state machine:
// sphere selection → card draw → single irreversible pick.
package session

import (
	"hash/fnv"
	"log/slog"
	"strconv"
	"sync"

	"github.com/victorward/dailytarot/internal/domain"
)

// shardCount spreads session keys over independent locks so transitions
// for different users never contend. Power of two.
const shardCount = 16

// Drawer deals the three face-down choices for a fresh session.
// *catalog.Catalog satisfies it; tests inject fixed draws.
type Drawer interface {
	DrawThree() ([3]domain.DrawChoice, error)
}

type shard struct {
	mu       sync.Mutex
	sessions map[domain.SessionKey]*domain.Session
}

// Engine is the session state machine. All transitions for one
// (user, day) key are serialized by that key's shard lock; no I/O ever
// happens under the lock. Callers receive value snapshots and perform
// fetch/render/resolve against those after the lock is released, so a
// slow reveal never blocks other transitions.
type Engine struct {
	shards [shardCount]shard
	drawer Drawer
	clock  Clock
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(drawer Drawer, clock Clock, logger *slog.Logger) *Engine {
	if drawer == nil {
		panic("drawer cannot be nil for Engine")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		drawer: drawer,
		clock:  clock,
		logger: logger.With(slog.String("component", "session_engine")),
	}
	for i := range e.shards {
		e.shards[i].sessions = make(map[domain.SessionKey]*domain.Session)
	}
	return e
}

func (e *Engine) key(userID domain.UserID) domain.SessionKey {
	return domain.SessionKey{UserID: userID, Day: e.clock.Today()}
}

func (e *Engine) shardFor(key domain.SessionKey) *shard {
	h := fnv.New32a()
	h.Write([]byte(strconv.FormatInt(int64(key.UserID), 10)))
	return &e.shards[h.Sum32()&(shardCount-1)]
}

// SelectDomain starts (or restarts) today's session for the user with the
// given sphere. Valid from any state: re-selecting always deals a fresh
// draw and discards an unconsumed one, modeling the "try again"
// affordance. Returns a snapshot of the new session.
func (e *Engine) SelectDomain(userID domain.UserID, sphere domain.Sphere) (domain.Session, error) {
	if _, err := domain.ParseSphere(string(sphere)); err != nil {
		return domain.Session{}, err
	}

	// The draw touches the shared random source, not session state, so it
	// happens before the shard lock is taken.
	choices, err := e.drawer.DrawThree()
	if err != nil {
		return domain.Session{}, err
	}

	key := e.key(userID)
	sess := &domain.Session{
		Key:     key,
		Sphere:  sphere,
		Choices: choices,
		Picked:  domain.NoPick,
	}

	sh := e.shardFor(key)
	sh.mu.Lock()
	if old, exists := sh.sessions[key]; exists && old.HasPicked() {
		// Permissive by design review: restarting mid-Picked silently
		// abandons the picked card.
		e.logger.Info("restarting session with a card already picked",
			slog.Int64("user_id", int64(userID)),
			slog.String("day", key.Day))
	}
	sh.sessions[key] = sess
	sh.mu.Unlock()

	e.logger.Debug("session started",
		slog.Int64("user_id", int64(userID)),
		slog.String("day", key.Day),
		slog.String("sphere", string(sphere)))
	return *sess, nil
}

// Pick records the user's single irreversible choice and returns the
// resulting snapshot. Fails with ErrNoActiveSession when no session exists
// for today, ErrAlreadyPicked when the pick already happened (the original
// outcome stands), and ErrInvalidChoice for an index outside {0,1,2}.
// State is unchanged on every failure.
func (e *Engine) Pick(userID domain.UserID, index int) (domain.Session, error) {
	key := e.key(userID)
	sh := e.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.sessions[key]
	if !ok {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	if sess.HasPicked() {
		return domain.Session{}, domain.ErrAlreadyPicked
	}
	if index < 0 || index >= len(sess.Choices) {
		return domain.Session{}, domain.ErrInvalidChoice
	}

	sess.Picked = index
	e.logger.Debug("card picked",
		slog.Int64("user_id", int64(userID)),
		slog.String("day", key.Day),
		slog.Int("index", index))
	return *sess, nil
}

// Current returns a snapshot of today's session without mutating it.
// Used for re-delivery after a failed reveal: the pick stays recorded even
// when rendering failed, so a retry never re-picks.
func (e *Engine) Current(userID domain.UserID) (domain.Session, error) {
	key := e.key(userID)
	sh := e.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.sessions[key]
	if !ok {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	return *sess, nil
}

// Restart removes today's session entirely, equivalent to a fresh user.
func (e *Engine) Restart(userID domain.UserID) {
	key := e.key(userID)
	sh := e.shardFor(key)

	sh.mu.Lock()
	delete(sh.sessions, key)
	sh.mu.Unlock()

	e.logger.Debug("session restarted",
		slog.Int64("user_id", int64(userID)),
		slog.String("day", key.Day))
}

// PruneBefore drops sessions from days earlier than the given ISO date and
// reports how many were removed. Day rollover is already handled by key
// mismatch; this sweep exists only so stale entries do not accumulate in a
// long-lived process.
func (e *Engine) PruneBefore(day string) int {
	removed := 0
	for i := range e.shards {
		sh := &e.shards[i]
		sh.mu.Lock()
		for key := range sh.sessions {
			if key.Day < day {
				delete(sh.sessions, key)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	if removed > 0 {
		e.logger.Info("pruned stale sessions", slog.Int("removed", removed))
	}
	return removed
}
