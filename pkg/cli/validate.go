package cli

import (
	"fmt"

	"github.com/simwire/simwire/internal/matching"
	"github.com/simwire/simwire/pkg/portability"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir|glob>...",
	Short: "Validate simulation documents without loading them anywhere",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := portability.LoadAll(args...)
		if err != nil {
			return err
		}
		if err := matching.ValidateSimulation(sim); err != nil {
			return fmt.Errorf("matcher validation failed: %w", err)
		}
		logger.Info("simulation valid", "pairs", len(sim.Pairs()))
		fmt.Fprintf(cmd.OutOrStdout(), "valid: %d pair(s)\n", len(sim.Pairs()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
