// laserhop is a terminal game about hopping across a grid of coloured tiles
// while a laser sweeps the board.
//
// Usage:
//
//	laserhop play            - Play straight away
//	laserhop menu            - Pick a mode interactively
//	laserhop serve           - Start SSH server for remote play
//	laserhop web             - Start HTTP/WebSocket server for browsers
//	laserhop scores [mode]   - Show high scores
//	laserhop list            - List game modes
//	laserhop levels          - Show or export the campaign
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible endless boards
//	--db <path>          - Set database path (default: ~/.laserhop/scores.db)
//	--config <path>      - Custom config YAML
//	--levels <dir>       - Directory of YAML levels replacing the campaign
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/laserhop/internal/config"
	"github.com/vovakirdan/laserhop/internal/core"
	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// envFlags maps persistent flags to the variables that can set them.
var envFlags = map[string]string{
	"db":         "LASERHOP_DB",
	"config":     "LASERHOP_CONFIG",
	"levels":     "LASERHOP_LEVELS",
	"difficulty": "LASERHOP_DIFFICULTY",
	"log-level":  "LASERHOP_LOG_LEVEL",
	"log-file":   "LASERHOP_LOG_FILE",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "laserhop",
	Short: "Laser Hop - hop the grid, clear the green, dodge the laser",
	Long: `Laser Hop is a terminal game on a 6x9 grid. Every hop must land on a
tile next to the last one. Green tiles score, red tiles end the run,
stamina drains while you wait and a laser sweeps up and down the board.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  web      - Start HTTP/WebSocket server
  scores   - View high scores
  list     - Show game modes
  levels   - Show or export the campaign

Examples:
  laserhop play
  laserhop play --mode endless --seed 42
  laserhop menu --difficulty hard
  laserhop serve --ssh :2222
  laserhop web --addr :8080
  laserhop scores endless`,
	SilenceErrors:      true,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.laserhop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of YAML levels replacing the campaign")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
}

// setup loads .env, fills unset flags from the environment, builds the
// logger and hands the game settings to the laserhop package.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := applyEnv(cmd); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := io.Writer(os.Stderr)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "laserhop",
		Level:           level,
	})

	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	laserhop.SetConfigPath(flagConfig)
	laserhop.SetDifficultyPreset(flagDifficulty)
	laserhop.SetLevelsDir(flagLevels)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// applyEnv sets every flag the user did not pass from its LASERHOP_ variable.
func applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, env := range envFlags {
		v, ok := os.LookupEnv(env)
		if !ok || v == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

// interactiveLogger is the logger for commands that own the terminal.
// Logs are dropped unless --log-file is set.
func interactiveLogger() *log.Logger {
	if logFile == nil {
		return log.New(io.Discard)
	}
	return logger
}

// loadSettings resolves config and campaign, falling back to the defaults.
func loadSettings() laserhop.Settings {
	settings, err := laserhop.LoadSettings()
	if err != nil {
		logger.Warn("using default settings", "error", err)
	}
	return settings
}

// openStore opens the scores database. Play goes on without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig builds the runtime config from the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg = cfg.WithSize(w, h)
	}
	return cfg
}

// playerName is stored with local runs.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
