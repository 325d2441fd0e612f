// Package main provides the CLI entrypoint for hilo.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/hilo/internal/cli"
	"github.com/verte-zerg/hilo/internal/config"
	"github.com/verte-zerg/hilo/internal/game"
	"github.com/verte-zerg/hilo/internal/leaderboard"
	"github.com/verte-zerg/hilo/internal/play"
	"github.com/verte-zerg/hilo/internal/tui"
)

const (
	defaultDifficulty   = "medium"
	terminalWidthBackup = 80
)

var (
	gameDifficulty string
	gameScoresFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hilo",
		Short:         "TUI number-guessing game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}
	addGameFlags(rootCmd)

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gameDifficulty, "difficulty", defaultDifficulty, "difficulty tier (easy, medium, hard)")
	cmd.Flags().StringVar(&gameScoresFile, "scores-file", "", "path to the high score file")
}

// gameSettings carries the merged flag/config values for one invocation.
type gameSettings struct {
	tier          game.Tier
	tierSpecified bool
	scoresPath    string
}

func resolveSettings(cmd *cobra.Command) (gameSettings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return gameSettings{}, fmt.Errorf("failed to load config: %w", err)
	}
	tierSpecified := cmd.Flags().Changed("difficulty") || fileCfg.Game.Difficulty != nil
	applyStringConfig(cmd, "difficulty", &gameDifficulty, fileCfg.Game.Difficulty)
	applyStringConfig(cmd, "scores-file", &gameScoresFile, fileCfg.Game.ScoresFile)

	tier, err := game.ParseTier(gameDifficulty)
	if err != nil {
		return gameSettings{}, err
	}
	path := gameScoresFile
	if path == "" {
		path = config.DefaultScoresPath()
	}
	return gameSettings{tier: tier, tierSpecified: tierSpecified, scoresPath: path}, nil
}

func newSession(settings gameSettings) *play.Session {
	return play.NewSession(game.New(), leaderboard.NewStore(settings.scoresPath))
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	model := tui.NewModel(newSession(settings), settings.tier)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the console",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addGameFlags(cmd)
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	runner := cli.New(newSession(settings), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), terminalWidth())
	var preset *game.Tier
	if settings.tierSpecified {
		preset = &settings.tier
	}
	return runner.Run(preset)
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the high score table",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	addGameFlags(cmd)
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	board, err := leaderboard.NewStore(settings.scoresPath).Load()
	if err != nil {
		if errors.Is(err, leaderboard.ErrCorruptStore) {
			return fmt.Errorf("leaderboard unavailable: %w", err)
		}
		return err
	}
	out := cmd.OutOrStdout()
	if len(board) == 0 {
		fmt.Fprintln(out, "No high scores yet!")
		return nil
	}
	for _, line := range leaderboard.Render(board, terminalWidth()) {
		fmt.Fprintln(out, line)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# hilo configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# difficulty = %q      # Difficulty tier: easy, medium, hard
# scores-file = ""          # Path to the high score file (default: XDG data home)
`, defaultDifficulty)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
