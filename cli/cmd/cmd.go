package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/yvchan/streamsx.topology/cli/cmd/blob"
	"github.com/yvchan/streamsx.topology/cli/cmd/service"
	"github.com/yvchan/streamsx.topology/cli/cmd/version"
	"github.com/yvchan/streamsx.topology/cli/internal/flags/log"
)

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := New().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamsx [sub-command]",
		Short: "Inspect serialized stream values and deployment service configuration",
		Long: `The streamsx command line client serializes values the way stream tuples carry
  them as blobs, and resolves the cloud service entries a topology is submitted to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: PreRunE,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	log.RegisterLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(blob.New())
	cmd.AddCommand(service.New())
	cmd.AddCommand(version.New())
	return cmd
}

// PreRunE configures the logger from the logging flags and stores it as default and in the command context.
func PreRunE(cmd *cobra.Command, _ []string) error {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return fmt.Errorf("could not retrieve logger: %w", err)
	}
	slog.SetDefault(logger)
	cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))
	return nil
}
