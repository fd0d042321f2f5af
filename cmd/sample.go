package cmd

import (
	"fmt"

	"github.com/chrisdamba/commutetracker/internal/factories"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write an addresses.csv template filled with fake addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")

		if count <= 0 {
			return fmt.Errorf("count must be positive, got %d", count)
		}

		addrs := factories.NewAddressFactory(seed).CreateAddresses(count)
		if err := factories.WriteAddressFile(outPath, addrs); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sample addresses to %s\n", count, outPath)
		return nil
	},
}

func init() {
	sampleCmd.Flags().String("output", "addresses.csv", "output CSV")
	sampleCmd.Flags().Int("count", 10, "number of addresses")
	sampleCmd.Flags().Int64("seed", 0, "random seed (0 picks a random one)")
}
