package leaderboard

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "highscores.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := tempStore(t)
	board, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(board) != 0 {
		t.Fatalf("expected empty board, got %d entries", len(board))
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Record(Score{Attempts: 3, Seconds: 12.5, Difficulty: 100, Date: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	first, err := s.Load()
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := s.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consecutive loads differ: %+v vs %+v", first, second)
	}
}

func TestRecordIntoEmptyStore(t *testing.T) {
	s := tempStore(t)
	board, err := s.Record(Score{Attempts: 3, Seconds: 12.5, Difficulty: 100, Date: time.Now()})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(board))
	}
	got := board[0]
	if got.Attempts != 3 || got.Seconds != 12.5 || got.Difficulty != 100 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestRecordDropsSixthEntry(t *testing.T) {
	s := tempStore(t)
	for _, attempts := range []int{2, 3, 4, 5, 6} {
		if _, err := s.Record(Score{Attempts: attempts, Seconds: 10, Difficulty: 100, Date: time.Now()}); err != nil {
			t.Fatalf("Record(%d): %v", attempts, err)
		}
	}
	board, err := s.Record(Score{Attempts: 1, Seconds: 9, Difficulty: 50, Date: time.Now()})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(board) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(board))
	}
	for i, want := range []int{1, 2, 3, 4, 5} {
		if board[i].Attempts != want {
			t.Fatalf("rank %d: expected attempts %d, got %d", i+1, want, board[i].Attempts)
		}
	}
}

func TestRecordKeepsBoardSorted(t *testing.T) {
	s := tempStore(t)
	for _, sc := range []Score{
		{Attempts: 5, Seconds: 20},
		{Attempts: 2, Seconds: 8},
		{Attempts: 2, Seconds: 3},
		{Attempts: 9, Seconds: 1},
	} {
		board, err := s.Record(sc)
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if len(board) > maxEntries {
			t.Fatalf("board exceeds %d entries: %d", maxEntries, len(board))
		}
		for i := 1; i < len(board); i++ {
			prev, cur := board[i-1], board[i]
			if prev.Attempts > cur.Attempts ||
				(prev.Attempts == cur.Attempts && prev.Seconds > cur.Seconds) {
				t.Fatalf("board not sorted at %d: %+v", i, board)
			}
		}
	}
}

func TestRecordTieKeepsInsertionOrder(t *testing.T) {
	s := tempStore(t)
	a := Score{Attempts: 3, Seconds: 10, Difficulty: 50, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := Score{Attempts: 3, Seconds: 10, Difficulty: 200, Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	if _, err := s.Record(a); err != nil {
		t.Fatalf("Record(a): %v", err)
	}
	board, err := s.Record(b)
	if err != nil {
		t.Fatalf("Record(b): %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].Difficulty != 50 || board[1].Difficulty != 200 {
		t.Fatalf("tie broke insertion order: %+v", board)
	}
}

func TestLoadCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	_, err := NewStore(path).Load()
	if !errors.Is(err, ErrCorruptStore) {
		t.Fatalf("expected ErrCorruptStore, got %v", err)
	}
}

func TestRecordReturnsBoardOnPersistFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not bind root")
	}
	roDir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(roDir, 0o555); err != nil {
		t.Fatalf("mkdir read-only dir: %v", err)
	}
	s := NewStore(filepath.Join(roDir, "highscores.json"))
	board, err := s.Record(Score{Attempts: 4, Seconds: 7, Difficulty: 100, Date: time.Now()})
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	if len(board) != 1 || board[0].Attempts != 4 {
		t.Fatalf("expected computed board despite failure, got %+v", board)
	}
}
