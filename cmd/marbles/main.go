// marbles runs Marbles puzzle boards from the terminal.
//
// Usage:
//
//	marbles list               - List available levels
//	marbles run <level>        - Autoplay a level and print the final board
//	marbles queue [level]      - Preview the spawn sequence
//	marbles scores [level]     - Show recorded runs
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.marbles/scores.db)
//	--config <path>       - Custom game config YAML
//	--levels <dir>        - Load levels from a directory instead of the built-in set
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/config"
	"github.com/vovakirdan/marbles/internal/marbles/levels"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marbles",
	Short: "Marbles - route colored marbles into receptors",
	Long: `Marbles loads puzzle boards of tracks, teleporters, spawners and
receptors and plays them with a deterministic autoplayer.

Available commands:
  list     - Show all available levels
  run      - Autoplay a level
  queue    - Preview the spawn sequence
  scores   - View recorded runs

Examples:
  marbles list
  marbles run 01-tutorial
  marbles run 02-portals --seed 42 --difficulty hard
  marbles queue 02-portals --count 20
  marbles scores 01-tutorial`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.marbles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the stderr logger at the level given by --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "marbles",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// levelLoader returns the loader selected by --levels.
func levelLoader() *levels.Loader {
	if flagLevelsDir == "" {
		return levels.Builtin()
	}
	return levels.NewLoader(flagLevelsDir)
}

// loadConfig reads the game config and applies the difficulty preset and
// MARBLES_* environment overrides.
func loadConfig() (config.Config, config.DifficultyPreset, error) {
	preset, ok := config.ParseDifficultyPreset(flagDifficulty)
	if !ok {
		return config.Config{}, preset, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, preset, err
	}
	config.ApplyPreset(&cfg, preset)
	config.ApplyLookup(&cfg, config.NewLookup(config.EnvSource{Prefix: config.EnvPrefix}))
	return cfg, preset, nil
}

// seed returns --seed, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
