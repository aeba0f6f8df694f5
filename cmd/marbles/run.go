package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/config"
	"github.com/vovakirdan/marbles/internal/marbles/core"
	"github.com/vovakirdan/marbles/internal/render"
	"github.com/vovakirdan/marbles/internal/storage"
)

var (
	flagMaxSteps int
	flagTrace    bool
	flagNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Autoplay a level",
	Long: `Load a level and drive it with the autoplayer until it is won, nothing
can move, the step budget runs out or the time limit expires.

Each step spawns from the first spawner that can, else moves a parked
marble, else releases a mismatched marble from a receptor.

Difficulty options:
  easy   - More jokers, generous time limit
  normal - Default generation
  hard   - Fewer jokers and power-ups, tighter time limit
  fixed  - No progression during the run

Examples:
  marbles run 01-tutorial
  marbles run 02-portals --seed 7 --trace
  marbles run 02-portals --difficulty hard --max-steps 200
  marbles run my-level --levels ./levels`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step budget (0 = config session.max_steps)")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the board after every step")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the scores database")
}

// runOutcome summarizes one autoplayed run.
type runOutcome struct {
	Steps    int
	Score    int
	Won      bool
	TimedOut bool
	Idle     bool
	Err      error // Error of the step that stopped the run
	Elapsed  time.Duration
}

// autoplay drives sess with AutoStep until it is won, idle, a step fails,
// it runs out of steps or ctx is done. afterStep, when set, is called after
// every step.
func autoplay(ctx context.Context, sess *core.Session, maxSteps int, dm *config.DifficultyManager, logger *log.Logger, afterStep func(core.StepResult)) runOutcome {
	start := time.Now()
	baseJoker := sess.Nexus().JokerProbability()
	var out runOutcome

	for out.Steps < maxSteps {
		if ctx.Err() != nil {
			out.TimedOut = true
			break
		}

		res := sess.AutoStep()
		out.Steps++
		logger.Debug("step", "step", res.Step, "action", res.Action, "at", res.At, "marble", res.Marble)
		if afterStep != nil {
			afterStep(res)
		}
		if res.Err != nil {
			out.Err = res.Err
			out.Won = res.Won
			break
		}

		if dm != nil && dm.IsEnabled() {
			sess.Nexus().SetJokerProbability(dm.JokerProbability(baseJoker, sess.Score(), out.Steps))
		}

		if res.Won {
			out.Won = true
			break
		}
		if res.Action == core.ActionNone {
			out.Idle = true
			break
		}
	}

	out.Score = sess.Score()
	out.Elapsed = time.Since(start)
	return out
}

// eventLogger logs every marble event at debug level.
func eventLogger(logger *log.Logger) core.Listener {
	return core.ListenerFunc(func(e core.Event) {
		logger.Debug("event", "kind", e.Kind, "at", e.At, "dir", e.Dir, "marble", e.Marble)
	})
}

func runRun(cmd *cobra.Command, args []string) error {
	levelID := args[0]
	logger := newLogger()

	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := levelLoader().LoadByID(levelID)
	if err != nil {
		return fmt.Errorf("%w (run 'marbles list' to see available levels)", err)
	}

	runSeed := seed()
	opts, err := cfg.SessionOptions(core.NewRNG(uint64(runSeed)))
	if err != nil {
		return err
	}
	sess, err := level.NewSession(opts)
	if err != nil {
		return err
	}
	sess.AddListener(eventLogger(logger))

	dm := config.NewDifficultyManager(cfg.Difficulty)
	if config.IsFixedPreset(preset) {
		dm.SetEnabled(false)
	}

	timeLimit := cfg.Session.TimeLimit
	if level.TimeLimit > 0 {
		timeLimit = level.TimeLimit
	}
	timeLimit = dm.TimeLimit(timeLimit)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	maxSteps := flagMaxSteps
	if maxSteps <= 0 {
		maxSteps = cfg.Session.MaxSteps
	}

	logger.Info("starting run",
		"level", level.ID,
		"seed", runSeed,
		"difficulty", preset,
		"time_limit", timeLimit,
		"max_steps", maxSteps,
	)

	stdout := cmd.OutOrStdout()
	renderOpts := render.DetectOptions(os.Stdout)
	if stdout != os.Stdout {
		renderOpts.Color = false
	}

	var afterStep func(core.StepResult)
	if flagTrace {
		afterStep = func(core.StepResult) {
			if err := render.Write(stdout, sess, renderOpts); err != nil {
				logger.Warn("could not render board", "error", err)
			}
			fmt.Fprintln(stdout)
		}
	}

	out := autoplay(ctx, sess, maxSteps, dm, logger, afterStep)

	if !flagTrace {
		if err := render.Write(stdout, sess, renderOpts); err != nil {
			return err
		}
	}

	switch {
	case out.Err != nil:
		logger.Error("step failed", "steps", out.Steps, "score", out.Score, "error", out.Err)
	case out.Won:
		logger.Info("level won", "steps", out.Steps, "score", out.Score, "elapsed", out.Elapsed)
	case out.TimedOut:
		logger.Warn("time limit reached", "steps", out.Steps, "score", out.Score)
	case out.Idle:
		logger.Warn("no moves left", "steps", out.Steps, "score", out.Score)
	default:
		logger.Warn("step budget exhausted", "steps", out.Steps, "score", out.Score)
	}

	if flagNoSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The run itself succeeded
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		LevelID:   level.ID,
		Score:     out.Score,
		Steps:     out.Steps,
		Completed: sess.CompletedCount(),
		Won:       out.Won,
		Seed:      runSeed,
		Duration:  out.Elapsed,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return nil
	}
	logger.Debug("run saved", "id", id)
	return nil
}
