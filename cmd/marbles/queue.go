package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/marbles/core"
)

var flagCount int

var queueCmd = &cobra.Command{
	Use:   "queue [level]",
	Short: "Preview the spawn sequence",
	Long: `Print the colors the spawners would produce, in order. The initial
queue comes first; after it runs dry colors are generated with the joker
probability in effect. With a level, its own spawn list and joker
probability are used.

Examples:
  marbles queue
  marbles queue 02-portals --count 30 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQueue,
}

func init() {
	queueCmd.Flags().IntVar(&flagCount, "count", 10, "Number of colors to print")
}

func runQueue(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	runSeed := seed()
	opts, err := cfg.SessionOptions(core.NewRNG(uint64(runSeed)))
	if err != nil {
		return err
	}
	if len(args) == 1 {
		level, err := levelLoader().LoadByID(args[0])
		if err != nil {
			return err
		}
		opts = level.Apply(opts)
	}

	colors := previewQueue(core.NewNexusContext(opts.InitialQueue, opts.RNG, opts.JokerProbability), flagCount)

	names := make([]string, len(colors))
	for i, c := range colors {
		names[i] = c.String()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed: %d | Joker probability: %.2f\n", runSeed, opts.JokerProbability)
	fmt.Fprintln(out, strings.Join(names, " "))
	return nil
}

// previewQueue polls n colors from ctx.
func previewQueue(ctx *core.NexusContext, n int) []core.Color {
	colors := make([]core.Color, 0, max(n, 0))
	for i := 0; i < n; i++ {
		colors = append(colors, ctx.Poll())
	}
	return colors
}
