package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserhop/internal/games/laserhop/levels"
)

var flagExportDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show or export the campaign levels",
	Long: `Print the campaign in play, or write it as YAML level files.

Cells: '.' blue, 'G' green, '+' gray, 'X' red.

Examples:
  laserhop levels
  laserhop levels --levels ./my-levels
  laserhop levels --export ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagExportDir, "export", "", "Write the campaign as YAML files into this directory")
}

func runLevels(_ *cobra.Command, _ []string) error {
	settings := loadSettings()

	if flagExportDir != "" {
		if err := levels.Export(flagExportDir, settings.Campaign); err != nil {
			return err
		}
		fmt.Printf("Exported %d levels to %s\n", len(settings.Campaign), flagExportDir)
		return nil
	}

	for i, lvl := range settings.Campaign {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("Level %d: %s (%d targets)\n", lvl.ID, lvl.Name, lvl.Board.Targets())
		fmt.Println(lvl.Board.String())
	}
	return nil
}
