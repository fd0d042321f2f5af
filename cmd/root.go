package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/commutetracker/internal/logging"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	debug   bool

	cfg        *models.Config
	closeLog   = func() error { return nil }
	commandCtx context.Context
	stopSignal context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "commutetracker",
	Short: "Analyzes driving and rail commute times for a list of home addresses",
	Long: `commutetracker asks Google Maps for driving times with traffic and for
drive-to-station plus regional rail commutes, writes the results as CSV, JSON
or Parquet, and renders an interactive map with an HTML/PDF report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = models.LoadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		closeLog, err = logging.Setup(cfg.LogFile, logging.ConsoleLevel(verbose, debug))
		if err != nil {
			return err
		}

		commandCtx, stopSignal = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		cmd.SetContext(commandCtx)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print progress details (INFO) to the console")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug information to the console")

	rootCmd.PersistentFlags().String("log-file", "route_details.log", "detailed log file, always written at DEBUG")
	rootCmd.PersistentFlags().String("output-format", "csv", "tabular output format: csv, json or parquet")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "also publish result rows to Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres URL for result and geocode persistence")

	bindFlag("log_file", "log-file")
	bindFlag("output_format", "output-format")
	bindFlag("kafka_enabled", "kafka-enabled")
	bindFlag("kafka_broker_list", "kafka-broker-list")
	bindFlag("database_url", "database-url")

	rootCmd.AddCommand(driveCmd, transitCmd, visualizeCmd, pingCmd, sampleCmd)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// shutdown releases what PersistentPreRunE set up. Execute calls it after every
// command, failed ones included.
func shutdown() error {
	if stopSignal != nil {
		stopSignal()
		stopSignal = nil
	}
	err := closeLog()
	closeLog = func() error { return nil }
	return err
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	if cerr := shutdown(); cerr != nil {
		fmt.Fprintln(os.Stderr, "close log:", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
