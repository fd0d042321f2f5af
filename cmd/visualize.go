package cmd

import (
	"errors"
	"fmt"

	"github.com/chrisdamba/commutetracker/internal/platform/obs"
	"github.com/chrisdamba/commutetracker/internal/report"
	"github.com/lucsky/cuid"
	"github.com/spf13/cobra"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render a transit analysis as an interactive map and an HTML/PDF report",
	RunE:  runVisualize,
}

func init() {
	visualizeCmd.Flags().String("input", "transit_analysis.csv", "transit analysis CSV")
	visualizeCmd.Flags().String("run-id", "", "render a stored transit run from the database instead of --input")
	visualizeCmd.Flags().String("output", "commute_analysis.html", "HTML report file; the map and PDF are written next to it")
	visualizeCmd.Flags().Bool("no-pdf", false, "skip the PDF report")
	visualizeCmd.Flags().Bool("open", false, "open the HTML report in the default browser")
}

func runVisualize(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	storedRun, _ := cmd.Flags().GetString("run-id")
	outPath, _ := cmd.Flags().GetString("output")
	noPDF, _ := cmd.Flags().GetBool("no-pdf")
	open, _ := cmd.Flags().GetBool("open")

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var opts []report.VisualizerOption
	if noPDF {
		opts = append(opts, report.WithPDFRenderer(nil))
	}
	v := report.NewVisualizer(a.provider, a.geocoder, cfg, opts...)

	runID := storedRun
	if runID == "" {
		runID = cuid.New()
	}
	ctx := obs.WithRunID(cmd.Context(), runID)

	var res report.Result
	if storedRun != "" {
		if a.commutes == nil {
			return errors.New("--run-id needs a reachable database_url")
		}
		rows, err := a.commutes.ListTransitAnalyses(ctx, storedRun)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no stored transit analyses for run %s", storedRun)
		}
		res, err = v.Render(ctx, report.TableFromAnalyses(rows), outPath, open)
		if err != nil {
			return err
		}
	} else {
		res, err = v.Run(ctx, input, outPath, open)
		if err != nil {
			return err
		}
	}
	a.upload(ctx, runID, res.Files()...)

	fmt.Fprintf(cmd.OutOrStdout(), "Map saved as %s\n", res.MapPath)
	fmt.Fprintf(cmd.OutOrStdout(), "HTML report saved as %s\n", res.ReportPath)
	if res.PDFPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "PDF report saved as %s\n", res.PDFPath)
	}
	return nil
}
