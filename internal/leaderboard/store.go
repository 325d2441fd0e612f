// Package leaderboard handles durable top-5 score storage.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// maxEntries is the number of scores retained; everything past it is dropped.
const maxEntries = 5

var (
	// ErrCorruptStore marks persisted bytes that no longer decode.
	ErrCorruptStore = errors.New("leaderboard store is corrupt")
	// ErrPersistFailed marks a failed write of an otherwise computed board.
	ErrPersistFailed = errors.New("failed to persist leaderboard")
)

// Score is the durable outcome of one won round.
type Score struct {
	Attempts   int       `json:"attempts"`
	Seconds    float64   `json:"seconds"`
	Difficulty int       `json:"difficulty"`
	Date       time.Time `json:"date"`
}

// Leaderboard is an ordered sequence of at most five scores, ascending by
// (attempts, seconds).
type Leaderboard []Score

// Store persists the leaderboard as a single JSON file at an injected path.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path. The file is
// created on the first Record call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted leaderboard. A missing file is the expected
// first-run condition and yields an empty board. Bytes that fail to decode
// yield an error matching ErrCorruptStore.
func (s *Store) Load() (Leaderboard, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Leaderboard{}, nil
		}
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	var board Leaderboard
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	return board, nil
}

// Record merges one score into the persisted board: load, append,
// stable-sort ascending by (attempts, seconds), truncate to the top five,
// persist. This is the only mutation path. If persisting fails, the computed
// board is still returned alongside an error matching ErrPersistFailed so
// the caller can display the result with a warning.
func (s *Store) Record(score Score) (Leaderboard, error) {
	board, err := s.Load()
	if err != nil {
		return nil, err
	}
	board = append(board, score)
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Attempts != board[j].Attempts {
			return board[i].Attempts < board[j].Attempts
		}
		return board[i].Seconds < board[j].Seconds
	})
	if len(board) > maxEntries {
		board = board[:maxEntries]
	}
	if err := s.persist(board); err != nil {
		return board, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return board, nil
}

// persist writes the board atomically via a temp file and rename.
func (s *Store) persist(board Leaderboard) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create leaderboard dir: %w", err)
	}
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "highscores-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp leaderboard: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close leaderboard: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	return nil
}
