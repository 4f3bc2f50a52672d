package solve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
	"github.com/puzzle-framework/kropki/pkg/kropki/solver"
)

func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [file...]",
		Short: "Solves Kropki Sudoku puzzles",
		Long: `Solves Kropki Sudoku puzzles. With no arguments it scans the data
directory for Input*.txt puzzles and writes each solution under
<output>/basic or <output>/forward_checking, depending on the
--forward-checking flag. With file arguments it solves the named
puzzles and prints the solutions, writing files only when --output is
given explicitly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return solveFiles(cmd.Context(), cfg, args)
			}
			return solveBatch(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Bool("forward-checking", false, "prune neighbor domains after every assignment")
	cmd.Flags().String("heuristic", "scan", "cell selection order: scan or mrv")
	cmd.Flags().Duration("timeout", 0, "per puzzle time limit, 0 means none")
	cmd.Flags().String("data", "data", "directory scanned for Input*.txt puzzles in batch mode")
	cmd.Flags().String("output", "output", "directory solutions are written under")
	return cmd
}

type config struct {
	selection       solver.Selection
	forwardChecking bool
	timeout         time.Duration
	dataDir         string
	outputDir       string
	writeFiles      bool
}

func configFromFlags(cmd *cobra.Command) (config, error) {
	var cfg config

	heuristic, err := cmd.Flags().GetString("heuristic")
	if err != nil {
		return cfg, err
	}
	cfg.selection, err = solver.SelectionFromString(heuristic)
	if err != nil {
		return cfg, err
	}
	cfg.forwardChecking, err = cmd.Flags().GetBool("forward-checking")
	if err != nil {
		return cfg, err
	}
	cfg.timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return cfg, err
	}
	cfg.dataDir, err = cmd.Flags().GetString("data")
	if err != nil {
		return cfg, err
	}
	cfg.outputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return cfg, err
	}
	cfg.writeFiles = cmd.Flags().Changed("output")
	return cfg, nil
}

// mode names the output subdirectory, matching the search configuration.
func (c config) mode() string {
	if c.forwardChecking {
		return "forward_checking"
	}
	return "basic"
}

func solveBatch(ctx context.Context, cfg config) error {
	entries, err := os.ReadDir(cfg.dataDir)
	if err != nil {
		return fmt.Errorf("error reading data directory (%s): %w", cfg.dataDir, err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !puzzle.IsInputName(entry.Name()) {
			continue
		}
		inputs = append(inputs, entry.Name())
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		return fmt.Errorf("no Input*.txt puzzles in %s", cfg.dataDir)
	}
	logrus.Infof("Found %d input files to process", len(inputs))

	outputDir := filepath.Join(cfg.outputDir, cfg.mode())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory (%s): %w", outputDir, err)
	}

	for _, name := range inputs {
		logrus.Infof("Processing %s", name)
		inputPath := filepath.Join(cfg.dataDir, name)
		outputPath := filepath.Join(outputDir, puzzle.SolutionFileName(name))
		if err := solveOne(ctx, cfg, inputPath, outputPath); err != nil {
			// one puzzle's failure never aborts the batch
			logrus.Errorf("Failed to solve %s: %v", name, err)
			continue
		}
	}
	logrus.Infof("All puzzles processed")
	return nil
}

func solveFiles(ctx context.Context, cfg config, paths []string) error {
	outputDir := filepath.Join(cfg.outputDir, cfg.mode())
	if cfg.writeFiles {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory (%s): %w", outputDir, err)
		}
	}

	failed := 0
	for _, path := range paths {
		b, stats, err := solveBoard(ctx, cfg, path)
		if err != nil {
			logrus.Errorf("Failed to solve %s: %v", path, err)
			failed++
			continue
		}
		logStats(stats).Infof("Puzzle solved successfully!")

		text, err := puzzle.Format(b)
		if err != nil {
			return err
		}
		fmt.Println(text)

		if cfg.writeFiles {
			outputPath := filepath.Join(outputDir, puzzle.SolutionFileName(path))
			logrus.Infof("Saving solution to %s", outputPath)
			if err := puzzle.Write(outputPath, b); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d puzzles failed", failed, len(paths))
	}
	return nil
}

func solveOne(ctx context.Context, cfg config, inputPath, outputPath string) error {
	b, stats, err := solveBoard(ctx, cfg, inputPath)
	if err != nil {
		return err
	}
	logStats(stats).Infof("Puzzle solved successfully!")
	logrus.Infof("Saving solution to %s", outputPath)
	return puzzle.Write(outputPath, b)
}

// solveBoard loads one puzzle and runs a fresh engine over it, so the
// reported counters belong to this puzzle alone.
func solveBoard(ctx context.Context, cfg config, path string) (*board.Board, stats, error) {
	logrus.Infof("Loading puzzle from %s", path)
	b, err := puzzle.Load(path)
	if err != nil {
		return nil, stats{}, err
	}

	options := []solver.Option{
		solver.WithSelection(cfg.selection),
		solver.WithForwardChecking(cfg.forwardChecking),
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		w := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
		defer w.Close()
		options = append(options, solver.WithTracer(&solver.LoggingTracer{Writer: w}))
	}
	engine, err := solver.New(options...)
	if err != nil {
		return nil, stats{}, err
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	logrus.Infof("Starting puzzle solution...")
	start := time.Now()
	solved, err := engine.Solve(ctx, b)
	elapsed := time.Since(start)
	st := stats{Stats: engine.Stats(), duration: elapsed}
	if err != nil {
		return nil, st, err
	}
	if !solved {
		return nil, st, fmt.Errorf("puzzle (%s) has no solution", path)
	}
	return b, st, nil
}

type stats struct {
	solver.Stats
	duration time.Duration
}

func logStats(st stats) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"assignments": st.Assignments,
		"backtracks":  st.Backtracks,
		"duration":    st.duration.Round(time.Microsecond).String(),
	})
}
