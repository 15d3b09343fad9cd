package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intelligrit/incident-atlas/internal/config"
)

var (
	configPath string
	csvPath    string
	modelsDir  string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "incident-atlas",
	Short: "Serve fatality predictions and aggregate analytics over a historical incident dataset",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("csv") {
			csvPath = cfg.Data.CSV
		}
		if !cmd.Flags().Changed("models-dir") {
			modelsDir = cfg.Data.ModelsDir
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "gt.csv", "Path to the historical incident CSV")
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models-dir", "models", "Directory holding the trained model artifacts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
