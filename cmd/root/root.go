package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/puzzle-framework/kropki/cmd/check"
	"github.com/puzzle-framework/kropki/cmd/serve"
	"github.com/puzzle-framework/kropki/cmd/solve"
	"github.com/puzzle-framework/kropki/cmd/verify"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kropki",
		Short: "Kropki is a Kropki Sudoku solver",
		Long: `A backtracking solver for Kropki Sudoku written in Go.
A white dot joins cells holding consecutive values, a black dot joins
cells where one value doubles the other, and undotted neighbors may
satisfy neither relation.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(verify.NewVerifyCommand())
	rootCmd.AddCommand(check.NewCheckCommand())
	rootCmd.AddCommand(serve.NewServeCommand())

	return rootCmd
}
