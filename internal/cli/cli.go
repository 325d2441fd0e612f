// Package cli implements the interactive console front end.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/hilo/internal/game"
	"github.com/verte-zerg/hilo/internal/leaderboard"
	"github.com/verte-zerg/hilo/internal/play"
)

// Runner drives the console game loop over injected streams.
type Runner struct {
	session    *play.Session
	in         *bufio.Scanner
	out        io.Writer
	errOut     io.Writer
	tableWidth int
}

// New constructs a console runner. tableWidth bounds leaderboard rendering;
// zero disables the bound.
func New(session *play.Session, in io.Reader, out, errOut io.Writer, tableWidth int) *Runner {
	return &Runner{
		session:    session,
		in:         bufio.NewScanner(in),
		out:        out,
		errOut:     errOut,
		tableWidth: tableWidth,
	}
}

// Run plays rounds until the player quits or the input is exhausted. When
// preset is non-nil it selects the tier for every round and the difficulty
// menu is skipped.
func (r *Runner) Run(preset *game.Tier) error {
	for {
		tier, ok := r.chooseTier(preset)
		if !ok {
			return r.goodbye()
		}
		if !r.playRound(tier) {
			return r.goodbye()
		}
		again, ok := r.askPlayAgain()
		if !ok || !again {
			return r.goodbye()
		}
	}
}

// readLine returns false when the input is exhausted.
func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

func (r *Runner) goodbye() error {
	fmt.Fprintln(r.out, "Goodbye!")
	return nil
}

func (r *Runner) chooseTier(preset *game.Tier) (game.Tier, bool) {
	if preset != nil {
		return *preset, true
	}
	for {
		fmt.Fprintln(r.out, "Choose a difficulty level:")
		fmt.Fprintln(r.out, "1. Easy (1 - 50)")
		fmt.Fprintln(r.out, "2. Medium (1 - 100)")
		fmt.Fprintln(r.out, "3. Hard (1 - 200)")
		line, ok := r.readLine()
		if !ok || play.IsQuit(line) {
			return game.TierMedium, false
		}
		switch strings.TrimSpace(line) {
		case "1":
			return game.TierEasy, true
		case "2":
			return game.TierMedium, true
		case "3":
			return game.TierHard, true
		}
		fmt.Fprintln(r.out, "Invalid input. Please enter a valid difficulty level (1, 2, 3).")
	}
}

// playRound returns false when the player quits mid-round.
func (r *Runner) playRound(tier game.Tier) bool {
	r.session.StartRound(tier)
	bound := tier.Bound()
	fmt.Fprintf(r.out, "Guess a number between 1 and %d! (q to quit)\n", bound)
	for {
		fmt.Fprint(r.out, "Your guess: ")
		line, ok := r.readLine()
		if !ok || play.IsQuit(line) {
			return false
		}
		out := r.session.SubmitGuess(line)
		switch out.Kind {
		case game.OutcomeInvalidFormat:
			fmt.Fprintln(r.out, "Please enter a valid number!")
		case game.OutcomeOutOfRange:
			fmt.Fprintf(r.out, "Please enter a number between 1 and %d!\n", bound)
		case game.OutcomeTooLow:
			fmt.Fprintln(r.out, "Higher!")
		case game.OutcomeTooHigh:
			fmt.Fprintln(r.out, "Lower!")
		case game.OutcomeCorrect:
			fmt.Fprintf(r.out, "Correct! You won in %d attempts and %.2f seconds!\n", out.Attempts, out.Seconds)
			r.recordAndShowScores()
			return true
		}
	}
}

func (r *Runner) recordAndShowScores() {
	board, err := r.session.RecordWin()
	switch {
	case errors.Is(err, leaderboard.ErrPersistFailed):
		fmt.Fprintf(r.errOut, "warning: high score not saved: %v\n", err)
	case err != nil:
		fmt.Fprintf(r.errOut, "warning: leaderboard unavailable: %v\n", err)
		return
	}
	r.printLeaderboard(board)
}

func (r *Runner) printLeaderboard(board leaderboard.Leaderboard) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "High Scores")
	if len(board) == 0 {
		fmt.Fprintln(r.out, "No high scores yet!")
		return
	}
	for _, line := range leaderboard.Render(board, r.tableWidth) {
		fmt.Fprintln(r.out, line)
	}
}

func (r *Runner) askPlayAgain() (again, ok bool) {
	for {
		fmt.Fprintln(r.out, "\nWould you like to play again? (y/n):")
		line, lineOK := r.readLine()
		if !lineOK {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		}
		fmt.Fprintln(r.out, "Please enter 'y' or 'n'")
	}
}
