// Command mlkit is the command-line front end of the toolkit. It exposes the
// dataset splitter (mlkit split) and the AdaBoost trainer/classifier
// (mlkit adaboost).
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/mlkit/pkg/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("command failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbosity string
	cmd := &cobra.Command{
		Use:           "mlkit",
		Short:         "Machine-learning command-line toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetupLogger(verbosity)
			log.SetupWarningLogger()
		},
	}
	cmd.PersistentFlags().StringVar(&verbosity, "verbosity", "info",
		"log level: debug, info, warn or error")
	cmd.AddCommand(newSplitCommand())
	cmd.AddCommand(newAdaBoostCommand())
	return cmd
}
