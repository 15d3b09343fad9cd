package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intelligrit/incident-atlas/internal/artifact"
	"github.com/intelligrit/incident-atlas/internal/dataset"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show artifact and dataset availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Deployment Status\n")
		fmt.Printf("=================\n")

		bundle, err := artifact.Load(modelsDir)
		switch {
		case err != nil:
			fmt.Printf("Model artifacts:  BROKEN (%v)\n", err)
		case bundle == nil:
			fmt.Printf("Model artifacts:  absent (%s)\n", modelsDir)
		default:
			fmt.Printf("Model artifacts:  loaded from %s\n", modelsDir)
			fmt.Printf("  encoders:       %d categorical columns\n", len(bundle.Encoders))
			fmt.Printf("  scaler:         %d features\n", len(bundle.Scaler.Mean))
		}

		idx, err := dataset.Open(csvPath)
		switch {
		case err != nil:
			fmt.Printf("Dataset:          BROKEN (%v)\n", err)
		case idx == nil:
			fmt.Printf("Dataset:          absent (%s)\n", csvPath)
		default:
			defer idx.Close()
			rows, countries := idx.Counts()
			fmt.Printf("Dataset:          %d incidents, %d countries\n", rows, countries)
			if years := idx.Years(); len(years) > 0 {
				fmt.Printf("  coverage:       %d-%d\n", years[0], years[len(years)-1])
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
