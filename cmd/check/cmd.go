package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/puzzle-framework/kropki/internal/satcheck"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
)

func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Cross checks a puzzle with a SAT solver",
		Long: `Cross checks a puzzle with a SAT solver, independently of the
backtracking engine: reports whether the puzzle has a completion and
whether that completion is unique.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(args[0])
		},
	}
}

func check(path string) error {
	b, err := puzzle.Load(path)
	if err != nil {
		return err
	}

	report, err := satcheck.Check(b)
	if err != nil {
		return err
	}

	if !report.Satisfiable {
		fmt.Println("no solution exists")
		return nil
	}
	if report.Unique {
		fmt.Println("exactly one solution exists:")
	} else {
		fmt.Println("more than one solution exists, first found:")
	}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			fmt.Printf("%d", report.Solution[row][col])
			if col != board.Size-1 {
				fmt.Printf(" ")
			}
		}
		fmt.Printf("\n")
	}

	return nil
}
