package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/intelligrit/incident-atlas/internal/advisory"
	"github.com/intelligrit/incident-atlas/internal/artifact"
	"github.com/intelligrit/incident-atlas/internal/dataset"
	"github.com/intelligrit/incident-atlas/internal/predictor"
	"github.com/intelligrit/incident-atlas/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction and analytics API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		// Artifact or dataset load failures are never fatal: the process
		// starts anyway and each endpoint degrades independently.
		bundle, err := artifact.Load(modelsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: loading model artifacts: %v\n", err)
			bundle = nil
		}
		if bundle == nil {
			fmt.Fprintln(os.Stderr, "WARNING: model artifacts not found, predictions disabled")
		} else {
			logVerbose("model artifacts loaded from %s", modelsDir)
		}

		idx, err := dataset.Open(csvPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: loading dataset: %v\n", err)
			idx = nil
		}
		if idx == nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s not found, history features disabled\n", csvPath)
		} else {
			defer idx.Close()
			rows, countries := idx.Counts()
			logVerbose("dataset loaded: %d incidents across %d countries", rows, countries)
		}

		gen, err := advisory.NewClient(cfg.Advisory.Model, cfg.Advisory.MaxTokens)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %v, advisories will use the fallback template\n", err)
		}

		srv := &web.Server{
			Data:      idx,
			Predictor: predictor.New(bundle),
			Advisor: advisory.New(textGenerator(gen), cfg.Advisory.RequestsPerMinute,
				time.Duration(cfg.Advisory.TimeoutSeconds)*time.Second),
			Addr: fmt.Sprintf("%s:%d", serveHost, servePort),
		}
		return srv.ListenAndServe()
	},
}

// textGenerator avoids storing a typed nil *advisory.Client in the
// TextGenerator interface when no API key is configured.
func textGenerator(c *advisory.Client) advisory.TextGenerator {
	if c == nil {
		return nil
	}
	return c
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
