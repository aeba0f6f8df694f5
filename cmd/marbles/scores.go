package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a level, or a summary of every level that
has been played.

Examples:
  marbles scores
  marbles scores 01-tutorial --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store)
	}
	return printLevelScores(out, store, args[0], flagLimit)
}

func printLevelScores(out io.Writer, store *storage.Store, levelID string, limit int) error {
	if _, err := levelLoader().LoadByID(levelID); err != nil {
		return fmt.Errorf("%w (run 'marbles list' to see available levels)", err)
	}

	runs, err := store.TopRuns(levelID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", levelID)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'marbles run %s' to set the first high score!\n", levelID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-3s  %-20s  %s\n", "Rank", "Score", "Steps", "Won", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-5s  %-3s  %-20s  %s\n", "----", "-----", "-----", "---", "----", "----")
	for i, r := range runs {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Fprintf(out, "  %-4d  %-6d  %-5d  %-3s  %-20d  %s\n",
			i+1, r.Score, r.Steps, won, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(levelID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d | Runs: %d | Wins: %d | Avg: %.1f\n", stats.HighScore, stats.Runs, stats.Wins, stats.AvgScore)
	return nil
}

func printSummary(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-16s  %-5s  %-5s  %-6s  %-10s  %s\n", "Level", "Runs", "Wins", "Best", "Best steps", "Last played")
	fmt.Fprintf(out, "  %-16s  %-5s  %-5s  %-6s  %-10s  %s\n", "-----", "----", "----", "----", "----------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Fprintf(out, "  %-16s  %-5d  %-5d  %-6d  %-10d  %s\n",
			id, s.Runs, s.Wins, s.HighScore, s.BestSteps, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
