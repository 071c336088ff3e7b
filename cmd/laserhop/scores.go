package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/registry"
	"github.com/vovakirdan/laserhop/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best runs for campaign, endless or both.

Examples:
  laserhop scores
  laserhop scores endless
  laserhop scores campaign --limit 20
  laserhop scores --recent
  laserhop scores endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs of every mode instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored runs of the selected modes")
	scoresCmd.MarkFlagsMutuallyExclusive("recent", "clear")
}

func runScores(_ *cobra.Command, args []string) error {
	ids := []string{laserhop.IDCampaign, laserhop.IDEndless}
	if len(args) == 1 {
		id, err := gameIDForMode(args[0])
		if err != nil {
			return err
		}
		ids = []string{id}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresRecent:
		if len(args) == 1 {
			return fmt.Errorf("--recent lists every mode, drop %q", args[0])
		}
		return printRecent(os.Stdout, store, flagScoresLimit)
	case flagScoresClear:
		for _, id := range ids {
			if err := store.ClearScores(id); err != nil {
				return fmt.Errorf("clearing scores: %w", err)
			}
			fmt.Printf("Cleared %s\n", modeTitle(id))
		}
		return nil
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, id); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", modeTitle(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-8s  %-12s  %s\n", "Rank", "Score", "Level", "Ended by", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "--------", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-5d  %-8s  %-12s  %s\n",
			i+1, entry.Score, entry.Level, entry.Reason, player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.1f  Furthest level: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
	return nil
}

// printRecent lists the latest runs across both modes, newest first.
func printRecent(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintln(w, "Recent Runs")
	fmt.Fprintln(w)
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-20s  %-6s  %-5s  %-8s  %-12s  %s\n", "Mode", "Score", "Level", "Ended by", "Player", "Date")
	fmt.Fprintf(w, "  %-20s  %-6s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "--------", "------", "----")
	for _, run := range runs {
		player := run.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-20s  %-6d  %-5d  %-8s  %-12s  %s\n",
			modeTitle(run.GameID), run.Score, run.Level, run.Reason, player, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func modeTitle(gameID string) string {
	if info, ok := registry.Info(gameID); ok {
		return info.Title
	}
	return gameID
}
