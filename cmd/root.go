// Package cmd provides CLI commands for metaexport.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/metaexport/config"
)

var (
	configFile string
	cfg        *config.Config
)

// setupLogger installs the default slog logger on stderr.
func setupLogger(c config.Log) {
	opts := &slog.HandlerOptions{
		Level: c.SlogLevel(),
	}

	var handler slog.Handler
	if c.JSON() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "metaexport",
	Short: "Export legacy SciELO article records to bibliographic formats",
	Long: `Metaexport renders legacy ISIS-derived article records as the XML and
JSON documents expected by indexing services and registration agencies.

Supported formats include Web of Science, DOAJ, PubMed, CrossRef deposit,
SciELO Publishing Schema (JATS) and the IAHX search index.

Examples:
  metaexport export xmlcrossref -i article.json
  cat article.json | metaexport export xmlrsps
  metaexport load articles.jsonl.zst
  metaexport export xmlwos --pid S0034-89102010000400007
  metaexport formats`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		setupLogger(c.Log)
		cfg = c
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/metaexport/config.yaml)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(showCmd)
}
