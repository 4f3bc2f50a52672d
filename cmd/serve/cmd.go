package serve

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves the solver over HTTP",
		Long: `Serves the solver over HTTP. POST a puzzle in the plain text layout
to /api/v1/solve and the solved grid comes back with the search
counters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			logrus.Infof("Starting server on %s", addr)
			return NewRouter().Run(addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "address to serve on")
	return cmd
}
