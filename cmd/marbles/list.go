package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/marbles/levels"
	"github.com/vovakirdan/marbles/internal/marbles/levels/formats"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the levels found in --levels, or the built-in set.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	all, err := levelLoader().LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-5s  %-9s  %s\n", maxIDLen, "ID", "Size", "Receptors", "Name")
	fmt.Fprintf(out, "  %-*s  %-5s  %-9s  %s\n", maxIDLen, "--", "----", "---------", "----")

	for _, l := range all {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Fprintf(out, "  %-*s  %-5s  %-9d  %s\n", maxIDLen, l.ID, size, countKind(l, formats.KindReceptor), l.Name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'marbles run <id>' to play a level.")
	return nil
}

func countKind(l levels.Level, kind formats.TileKind) int {
	n := 0
	for _, t := range l.Tiles {
		if t.Kind == kind {
			n++
		}
	}
	return n
}
