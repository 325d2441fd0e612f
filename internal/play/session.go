// Package play composes the round engine and leaderboard store behind the
// interface the front ends drive.
package play

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/hilo/internal/game"
	"github.com/verte-zerg/hilo/internal/leaderboard"
)

// IsQuit reports whether text is the quit sentinel (case-insensitive
// "q"/"quit"). Detecting it is a front-end duty; the engine only ever sees
// text meant to parse as a number.
func IsQuit(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return text == "q" || text == "quit"
}

// Session runs one round at a time against a shared leaderboard store.
type Session struct {
	engine *game.Engine
	store  *leaderboard.Store
	round  *game.Round
}

// NewSession constructs a session over the given engine and store.
func NewSession(engine *game.Engine, store *leaderboard.Store) *Session {
	return &Session{engine: engine, store: store}
}

// StartRound begins a fresh round at the given tier, discarding any
// previous round.
func (s *Session) StartRound(tier game.Tier) {
	s.round = s.engine.Start(tier)
}

// Round returns the current round, or nil before the first StartRound.
func (s *Session) Round() *game.Round {
	return s.round
}

// SubmitGuess evaluates one guess against the current round.
func (s *Session) SubmitGuess(text string) game.Outcome {
	return s.engine.SubmitGuess(s.round, text)
}

// CurrentLeaderboard loads the persisted leaderboard.
func (s *Session) CurrentLeaderboard() (leaderboard.Leaderboard, error) {
	return s.store.Load()
}

// RecordWin persists the current round's score and returns the updated
// board. On persist failure the computed board is still returned with an
// error matching leaderboard.ErrPersistFailed.
func (s *Session) RecordWin() (leaderboard.Leaderboard, error) {
	if s.round == nil || !s.round.Won() {
		return nil, fmt.Errorf("no won round to record")
	}
	return s.store.Record(leaderboard.Score{
		Attempts:   s.round.Attempts,
		Seconds:    s.round.WinSeconds(),
		Difficulty: s.round.Tier.Bound(),
		Date:       time.Now(),
	})
}
