// Package tui provides the Bubble Tea game interface.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/hilo/internal/game"
	"github.com/verte-zerg/hilo/internal/leaderboard"
	"github.com/verte-zerg/hilo/internal/play"
)

const scoreDateLayout = "2006-01-02 15:04"

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea game UI.
type Model struct {
	session *play.Session
	tier    game.Tier

	input  textinput.Model
	scores table.Model

	message string
	won     bool
	warning string

	width  int
	height int
}

// NewModel constructs a game UI model and starts the first round.
func NewModel(session *play.Session, tier game.Tier) *Model {
	input := textinput.New()
	input.Placeholder = "your guess"
	input.CharLimit = 8
	input.Width = 14

	scores := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 4},
			{Title: "Attempts", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Difficulty", Width: 10},
			{Title: "Date", Width: 16},
		}),
		table.WithHeight(6),
	)

	m := &Model{
		session: session,
		tier:    tier,
		input:   input,
		scores:  scores,
	}
	m.newRound(tier)
	m.refreshBoard()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.won {
				return m, nil
			}
			return m.submit()
		}
		if m.won {
			return m.handlePostWinKey(msg)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render("Number Guessing Game"),
		"",
	}
	if m.won {
		lines = append(lines, winStyle.Render(m.message))
	} else {
		lines = append(lines, messageStyle.Render(m.message))
	}
	lines = append(lines, "")
	if m.won {
		lines = append(lines, footerStyle.Render("[n] new game  [1] easy  [2] medium  [3] hard  [esc] quit"))
	} else {
		lines = append(lines, m.input.View())
	}
	if m.warning != "" {
		lines = append(lines, "", warningStyle.Render(m.warning))
	}
	lines = append(lines,
		"",
		headingStyle.Render("High Scores"),
		m.scores.View(),
		"",
		footerStyle.Render(fmt.Sprintf("difficulty: %s (1-%d)  ·  enter to guess  ·  q to quit", m.tier, m.tier.Bound())),
	)
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.input.SetValue("")
	if play.IsQuit(text) {
		return m, tea.Quit
	}
	out := m.session.SubmitGuess(text)
	switch out.Kind {
	case game.OutcomeInvalidFormat:
		m.message = "Please enter a valid number!"
	case game.OutcomeOutOfRange:
		m.message = fmt.Sprintf("Please enter a number between 1 and %d!", m.tier.Bound())
	case game.OutcomeTooLow:
		m.message = "Higher!"
	case game.OutcomeTooHigh:
		m.message = "Lower!"
	case game.OutcomeCorrect:
		m.message = fmt.Sprintf("Correct! You won in %d attempts and %.2f seconds!", out.Attempts, out.Seconds)
		m.won = true
		m.input.Blur()
		m.recordWin()
	}
	return m, nil
}

func (m *Model) handlePostWinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.newRound(m.tier)
	case "1":
		m.newRound(game.TierEasy)
	case "2":
		m.newRound(game.TierMedium)
	case "3":
		m.newRound(game.TierHard)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) newRound(tier game.Tier) {
	m.tier = tier
	m.session.StartRound(tier)
	m.message = fmt.Sprintf("Guess a number between 1 and %d!", tier.Bound())
	m.won = false
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) recordWin() {
	board, err := m.session.RecordWin()
	switch {
	case errors.Is(err, leaderboard.ErrPersistFailed):
		m.warning = fmt.Sprintf("high score not saved: %v", err)
	case err != nil:
		m.warning = fmt.Sprintf("leaderboard unavailable: %v", err)
		return
	default:
		m.warning = ""
	}
	m.scores.SetRows(scoreRows(board))
}

func (m *Model) refreshBoard() {
	board, err := m.session.CurrentLeaderboard()
	if err != nil {
		m.warning = fmt.Sprintf("leaderboard unavailable: %v", err)
		return
	}
	m.scores.SetRows(scoreRows(board))
}

func scoreRows(board leaderboard.Leaderboard) []table.Row {
	rows := make([]table.Row, 0, len(board))
	for i, score := range board {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", score.Attempts),
			fmt.Sprintf("%.2fs", score.Seconds),
			fmt.Sprintf("%d", score.Difficulty),
			score.Date.Format(scoreDateLayout),
		})
	}
	return rows
}
