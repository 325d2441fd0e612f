package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/hilo/internal/game"
	"github.com/verte-zerg/hilo/internal/leaderboard"
	"github.com/verte-zerg/hilo/internal/play"
)

func fixedRunner(t *testing.T, secret int, input string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	engine := game.NewWithRand(func(_ int) int { return secret - 1 })
	store := leaderboard.NewStore(filepath.Join(t.TempDir(), "highscores.json"))
	session := play.NewSession(engine, store)
	var out, errOut bytes.Buffer
	return New(session, strings.NewReader(input), &out, &errOut, 0), &out, &errOut
}

func TestRunWinningRound(t *testing.T) {
	// Menu choice 1 (easy), low guess, high guess, winning guess, no replay.
	r, out, errOut := fixedRunner(t, 7, "1\n3\n10\n7\nn\n")
	if err := r.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"Choose a difficulty level:",
		"Guess a number between 1 and 50!",
		"Higher!",
		"Lower!",
		"Correct! You won in 3 attempts",
		"High Scores",
		"Goodbye!",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected warnings: %s", errOut.String())
	}
}

func TestRunQuitSentinelEndsLoop(t *testing.T) {
	r, out, _ := fixedRunner(t, 7, "1\nq\n")
	if err := r.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("expected goodbye on quit:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Correct!") {
		t.Fatalf("round should not have finished:\n%s", out.String())
	}
}

func TestRunPresetTierSkipsMenu(t *testing.T) {
	tier := game.TierHard
	r, out, _ := fixedRunner(t, 42, "42\nn\n")
	if err := r.Run(&tier); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	if strings.Contains(text, "Choose a difficulty level:") {
		t.Fatalf("menu shown despite preset tier:\n%s", text)
	}
	if !strings.Contains(text, "Guess a number between 1 and 200!") {
		t.Fatalf("expected hard-tier prompt:\n%s", text)
	}
}

func TestRunInvalidInputsReprompt(t *testing.T) {
	r, out, _ := fixedRunner(t, 7, "9\n1\nabc\n150\n7\nmaybe\nn\n")
	if err := r.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"Invalid input. Please enter a valid difficulty level (1, 2, 3).",
		"Please enter a valid number!",
		"Please enter a number between 1 and 50!",
		"Please enter 'y' or 'n'",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	// "abc" must not have charged an attempt; 150 and 7 are two attempts.
	if !strings.Contains(text, "You won in 2 attempts") {
		t.Fatalf("unexpected attempt count:\n%s", text)
	}
}

func TestRunExhaustedInputEndsCleanly(t *testing.T) {
	r, out, _ := fixedRunner(t, 7, "1\n3\n")
	if err := r.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Fatalf("expected clean exit on EOF:\n%s", out.String())
	}
}
