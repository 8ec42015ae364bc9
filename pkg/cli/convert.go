package cli

import (
	"fmt"

	"github.com/simwire/simwire/pkg/portability"
	"github.com/spf13/cobra"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a simulation document between JSON and YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := portability.Load(args[0])
		if err != nil {
			return err
		}
		if convertOutput == "" {
			data, err := portability.ExportJSON(sim)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := portability.Save(sim, convertOutput); err != nil {
			return err
		}
		logger.Info("converted", "from", args[0], "to", convertOutput)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file; format chosen by extension (default: JSON to stdout)")
	rootCmd.AddCommand(convertCmd)
}
