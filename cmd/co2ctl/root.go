package main

import (
	"github.com/spf13/cobra"

	"co2-predictor-service/internal/config"
	"co2-predictor-service/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	var logCfg config.LoggerConfig
	var closeLog func()

	root := &cobra.Command{
		Use:   "co2ctl",
		Short: "Train, inspect and query CO2 emission models",
		Long:  "co2ctl fits the weight/volume CO2 regression on a CSV dataset\nand evaluates saved model artifacts offline.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		Version:      version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			closeLog = logging.Setup(logCfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&logCfg.Level, "log-level", "warn", "Log level")
	f.StringVar(&logCfg.Format, "log-format", "text", "Log format (text or json)")
	f.StringVar(&logCfg.File, "log-file", "", "Also write logs to this file, rotated")
	f.IntVar(&logCfg.MaxSizeMB, "log-max-size", 10, "Rotate the log file after this many MB")
	f.IntVar(&logCfg.MaxBackups, "log-max-backups", 3, "Rotated log files to keep")
	f.IntVar(&logCfg.MaxAgeDays, "log-max-age", 28, "Days to keep rotated log files")

	root.AddCommand(newTrainCmd())
	root.AddCommand(newPredictCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newInspectCmd())
	return root
}
