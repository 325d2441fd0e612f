// Package game implements the guessing round state machine.
package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Tier is one of the three fixed difficulty presets.
type Tier int

// The three difficulty tiers and their range upper bounds.
const (
	TierEasy   Tier = iota // 1-50
	TierMedium             // 1-100
	TierHard               // 1-200
)

// Bound returns the inclusive upper bound of the guessable range.
func (t Tier) Bound() int {
	switch t {
	case TierEasy:
		return 50
	case TierHard:
		return 200
	default:
		return 100
	}
}

// String returns the user-facing tier name.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierHard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseTier parses a tier name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return TierEasy, nil
	case "medium":
		return TierMedium, nil
	case "hard":
		return TierHard, nil
	}
	return TierMedium, fmt.Errorf("unknown difficulty %q (expected easy, medium or hard)", s)
}

// OutcomeKind classifies the result of one guess submission.
type OutcomeKind int

// Guess outcomes.
const (
	OutcomeInvalidFormat OutcomeKind = iota
	OutcomeOutOfRange
	OutcomeTooLow
	OutcomeTooHigh
	OutcomeCorrect
)

// Outcome is the result of submitting one guess. Attempts reflects the
// round's counter after the submission; Seconds is set only for
// OutcomeCorrect.
type Outcome struct {
	Kind     OutcomeKind
	Attempts int
	Seconds  float64
}

// Round tracks one play session from secret generation to a winning guess.
type Round struct {
	Tier     Tier
	Attempts int

	secret     int
	startedAt  time.Time
	won        bool
	winSeconds float64
}

// Won reports whether the winning guess has been submitted.
func (r *Round) Won() bool {
	return r.won
}

// WinSeconds returns the elapsed time of a won round in seconds.
func (r *Round) WinSeconds() float64 {
	return r.winSeconds
}

// Engine owns secret generation and guess evaluation.
type Engine struct {
	randInt func(n int) int // uniform in [0, n)
	now     func() time.Time
}

// New returns an Engine seeded with the current time.
func New() *Engine {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewWithRand(rnd.Intn)
}

// NewWithRand returns an Engine using the given uniform source, which must
// return a value in [0, n). Fixed sources make rounds deterministic in tests.
func NewWithRand(randInt func(n int) int) *Engine {
	return &Engine{randInt: randInt, now: time.Now}
}

// Start begins a round with a fresh secret in [1, tier bound].
func (e *Engine) Start(tier Tier) *Round {
	return &Round{
		Tier:      tier,
		secret:    1 + e.randInt(tier.Bound()),
		startedAt: e.now(),
	}
}

// SubmitGuess parses and evaluates one guess. Malformed input does not charge
// an attempt; a well-formed guess outside the tier's range does. Submissions
// after the winning guess return the original Correct outcome unchanged.
func (e *Engine) SubmitGuess(r *Round, raw string) Outcome {
	if r.won {
		return Outcome{Kind: OutcomeCorrect, Attempts: r.Attempts, Seconds: r.winSeconds}
	}
	guess, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Outcome{Kind: OutcomeInvalidFormat, Attempts: r.Attempts}
	}
	r.Attempts++
	if guess < 1 || guess > r.Tier.Bound() {
		return Outcome{Kind: OutcomeOutOfRange, Attempts: r.Attempts}
	}
	switch {
	case guess < r.secret:
		return Outcome{Kind: OutcomeTooLow, Attempts: r.Attempts}
	case guess > r.secret:
		return Outcome{Kind: OutcomeTooHigh, Attempts: r.Attempts}
	}
	r.won = true
	r.winSeconds = e.now().Sub(r.startedAt).Seconds()
	return Outcome{Kind: OutcomeCorrect, Attempts: r.Attempts, Seconds: r.winSeconds}
}
