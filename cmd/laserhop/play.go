package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/platform/tui"
	"github.com/vovakirdan/laserhop/internal/registry"
)

var (
	flagMode  string
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Laser Hop",
	Long: `Start playing straight away.

Controls:
  Arrows/hjkl  - Move the cursor
  y/u/b/n      - Move the cursor diagonally
  Space/Enter  - Hop onto the tile under the cursor
  Mouse click  - Hop onto the clicked tile
  Enter/N      - Next level or restart at a prompt
  R            - Restart
  Ctrl+S       - Screenshot
  Esc          - Leave the game
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  laserhop play
  laserhop play --level 3
  laserhop play --mode endless --seed 7
  laserhop play --difficulty hard
  laserhop play --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "campaign", "Game mode: campaign or endless")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (0 = first)")
}

// gameIDForMode maps a mode name to its registry id.
func gameIDForMode(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "", "campaign", laserhop.IDCampaign:
		return laserhop.IDCampaign, nil
	case "endless", laserhop.IDEndless:
		return laserhop.IDEndless, nil
	}
	return "", fmt.Errorf("unknown mode %q (want campaign or endless)", mode)
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		return err
	}

	settings := loadSettings()
	if flagLevel != 0 {
		if gameID != laserhop.IDCampaign {
			return errors.New("--level only applies to the campaign")
		}
		if flagLevel < 1 || flagLevel > settings.CampaignLength() {
			return fmt.Errorf("level must be between 1 and %d", settings.CampaignLength())
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	prepareGame(game, settings, flagLevel)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, terminalConfig(),
		tui.WithPlayer(playerName()),
		tui.WithMinScore(settings.Config.Scoring.SaveMinScore),
		tui.WithLogger(interactiveLogger()),
	)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// prepareGame hands the settings resolved at startup and the chosen campaign
// level to a Laser Hop game. A level of 0 starts from the beginning.
func prepareGame(game registry.Game, settings laserhop.Settings, level int) {
	g, ok := game.(*laserhop.Game)
	if !ok {
		return
	}
	g.UseSettings(settings)
	if level > 0 {
		g.SelectLevel(level)
	}
}
