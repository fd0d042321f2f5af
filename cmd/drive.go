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

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Driving time with live traffic from each address to its destination",
	RunE:  runDrive,
}

func init() {
	driveCmd.Flags().String("input", "addresses.csv", "input CSV with an address column and an optional destination column")
	driveCmd.Flags().String("output", "commute_times.csv", "output file")
}

func runDrive(cmd *cobra.Command, args []string) error {
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
	log.Info().Str("run_id", an.RunID()).Int("addresses", len(addrs)).Msg("drive run started")

	rows := an.RunDrive(ctx, addrs, os.Stderr)

	dest, path, err := output.DetermineOutputDestination(cfg, outPath)
	if err != nil {
		return err
	}
	output.WriteAll(dest, cfg.KafkaTopic, rows)
	if err := dest.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if a.commutes != nil {
		if err := a.commutes.SaveDriveCommutes(ctx, rows); err != nil {
			log.Error().Err(err).Msg("could not persist drive commutes")
		}
	}
	a.upload(ctx, an.RunID(), path)

	if verbose || debug {
		console := output.NewConsoleOutput(cmd.OutOrStdout())
		output.WriteAll(console, models.TopicDriveCommutes, rows)
		_ = console.Close()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", path)
	return nil
}
