package cli

import (
	"fmt"

	"github.com/simwire/simwire/pkg/portability"
	"github.com/spf13/cobra"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge <file|dir|glob>...",
	Short: "Merge simulation documents into one (pair-set union)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := portability.LoadAll(args...)
		if err != nil {
			return err
		}
		if mergeOutput == "" {
			data, err := portability.ExportJSON(sim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := portability.Save(sim, mergeOutput); err != nil {
			return err
		}
		logger.Info("merged", "inputs", len(args), "pairs", len(sim.Pairs()), "output", mergeOutput)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file; format chosen by extension (default: JSON to stdout)")
	rootCmd.AddCommand(mergeCmd)
}
