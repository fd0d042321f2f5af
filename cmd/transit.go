package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/commutetracker/internal/analyzer"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/chrisdamba/commutetracker/internal/output"
	"github.com/chrisdamba/commutetracker/internal/platform/obs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var transitCmd = &cobra.Command{
	Use:   "transit",
	Short: "Best drive-to-station plus rail commute, morning and evening, for each address",
	RunE:  runTransit,
}

func init() {
	transitCmd.Flags().String("input", "addresses.csv", "input CSV with an address column")
	transitCmd.Flags().String("output", "transit_analysis.csv", "output file")
}

func runTransit(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")

	addrs, err := models.LoadAddresses(input)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	an := analyzer.New(a.provider, cfg, analyzer.WithGeocoder(a.geocoder))
	ctx := obs.WithRunID(cmd.Context(), an.RunID())
	log.Info().Str("run_id", an.RunID()).Int("addresses", len(addrs)).Msg("transit run started")

	rows := an.RunTransit(ctx, addrs, os.Stderr)
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No valid transit routes found.")
		return nil
	}

	dest, path, err := output.DetermineOutputDestination(cfg, outPath)
	if err != nil {
		return err
	}
	output.WriteAll(dest, cfg.KafkaTopic, rows)
	if err := dest.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if a.commutes != nil {
		if err := a.commutes.SaveTransitAnalyses(ctx, rows); err != nil {
			log.Error().Err(err).Msg("could not persist transit analyses")
		}
	}
	a.upload(ctx, an.RunID(), path)

	if verbose || debug {
		console := output.NewConsoleOutput(cmd.OutOrStdout())
		output.WriteAll(console, models.TopicTransitAnalyses, rows)
		_ = console.Close()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", path)
	if cfg.LogFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Detailed log saved to %s\n", cfg.LogFile)
	}
	return nil
}
