package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
	kropkiverify "github.com/puzzle-framework/kropki/pkg/kropki/verify"
)

func NewVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [puzzle solution]",
		Short: "Verifies Kropki Sudoku solutions",
		Long: `Verifies Kropki Sudoku solutions independently of the solver. With a
puzzle and a solution file it checks that one pair. With no arguments
it scans <output>/basic and <output>/forward_checking, pairing every
OutputN.txt with <data>/InputN.txt, and exits non-zero if any solution
fails.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts no arguments (batch mode) or a puzzle and a solution, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := cmd.Flags().GetString("data")
			if err != nil {
				return err
			}
			outputDir, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			if len(args) == 2 {
				return verifyPair(args[0], args[1])
			}
			return verifyBatch(dataDir, outputDir)
		},
	}
	cmd.Flags().String("data", "data", "directory holding Input*.txt puzzles")
	cmd.Flags().String("output", "output", "directory holding the basic and forward_checking solutions")
	return cmd
}

func verifyPair(puzzlePath, solutionPath string) error {
	if err := verifyFiles(puzzlePath, solutionPath); err != nil {
		return fmt.Errorf("solution (%s) failed verification: %w", solutionPath, err)
	}
	logrus.Infof("All constraints satisfied by %s", solutionPath)
	return nil
}

func verifyBatch(dataDir, outputDir string) error {
	totalVerified, totalValid := 0, 0
	for _, dir := range []string{filepath.Join(outputDir, "basic"), filepath.Join(outputDir, "forward_checking")} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				logrus.Infof("Skipping %s: directory does not exist", dir)
				continue
			}
			return fmt.Errorf("error reading output directory (%s): %w", dir, err)
		}

		logrus.Infof("Checking solutions in %s", dir)
		var solutions []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, ok := puzzle.PuzzleFileName(entry.Name()); ok {
				solutions = append(solutions, entry.Name())
			}
		}
		sort.Strings(solutions)

		dirTotal, dirValid := 0, 0
		for _, name := range solutions {
			inputName, _ := puzzle.PuzzleFileName(name)
			inputPath := filepath.Join(dataDir, inputName)
			if _, err := os.Stat(inputPath); err != nil {
				logrus.Errorf("Could not find input file for %s", name)
				continue
			}

			dirTotal++
			totalVerified++
			if err := verifyFiles(inputPath, filepath.Join(dir, name)); err != nil {
				logrus.Errorf("Verification failed for %s: %v", name, err)
				continue
			}
			dirValid++
			totalValid++
		}
		logrus.Infof("Verification complete for %s: %d/%d solutions valid", dir, dirValid, dirTotal)
	}

	logrus.Infof("Verification complete for all directories: %d/%d solutions valid", totalValid, totalVerified)
	if totalValid != totalVerified {
		return fmt.Errorf("%d of %d solutions failed verification", totalVerified-totalValid, totalVerified)
	}
	return nil
}

func verifyFiles(puzzlePath, solutionPath string) error {
	b, err := puzzle.Load(puzzlePath)
	if err != nil {
		return err
	}
	grid, err := puzzle.LoadGrid(solutionPath)
	if err != nil {
		return err
	}
	violations, err := kropkiverify.Grid(b, grid)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return violations
	}
	return nil
}
