package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the API key with one geocode and one distance matrix request",
	RunE:  runPing,
}

func init() {
	pingCmd.Flags().String("origin", "San Francisco, CA", "address to geocode and drive from")
	pingCmd.Flags().String("destination", "Oakland, CA", "address to drive to")
}

func maskKey(k string) string {
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}

func runPing(cmd *cobra.Command, args []string) error {
	origin, _ := cmd.Flags().GetString("origin")
	destination, _ := cmd.Flags().GetString("destination")

	if err := cfg.Validate(); err != nil {
		return err
	}
	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	fmt.Fprintf(out, "Using API key: %s\n", maskKey(cfg.GoogleMapsKey))

	fmt.Fprintln(out, "\nTesting Geocoding API...")
	loc, err := provider.Geocode(ctx, origin)
	if err != nil {
		fmt.Fprintf(out, "Error during geocoding test: %v\n", err)
	} else {
		fmt.Fprintf(out, "Geocoding test result: %s -> %s\n", origin, loc)
	}

	fmt.Fprintln(out, "\nTesting Distance Matrix API...")
	el, err := provider.DistanceMatrix(ctx, origin, destination, time.Time{})
	if err != nil {
		fmt.Fprintf(out, "Error during distance matrix test: %v\n", err)
	} else {
		fmt.Fprintf(out, "Distance Matrix test result: status=%s duration=%s distance=%dm\n",
			el.Status, el.TrafficDuration(), el.DistanceM)
	}
	return nil
}
