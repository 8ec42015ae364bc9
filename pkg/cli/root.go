// Package cli implements the simwire command-line interface for working
// with simulation documents: validation, format conversion, and merging.
package cli

import (
	"log/slog"

	"github.com/simwire/simwire/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "simwire",
	Short: "Work with HTTP traffic simulation documents",
	Long: `simwire validates, converts, and merges simulation documents:
the JSON/YAML files that declare request patterns and the canned
responses to serve when live traffic matches them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(logging.Config{Level: logging.ParseLevel(logLevel)})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
