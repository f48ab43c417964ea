package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/metaexport/export"
	"github.com/lehigh-university-libraries/metaexport/store"
)

var (
	inputFile  string
	outputFile string
	pid        string
	dbPath     string
	pretty     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Render one legacy record in a target format",
	Long: `Render one legacy article record in a target format.

The record is read from --input, from the local store with --pid, or from
stdin. Output defaults to stdout.

Examples:
  metaexport export xmlwos -i article.json -o article.xml
  cat article.json | metaexport export xmldoaj
  metaexport export xmlcrossref --pid S0034-89102010000400007`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&pid, "pid", "", "Read the record with this PID from the local store")
	exportCmd.Flags().StringVar(&dbPath, "db", "", "Store database path (default: from config)")
	exportCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent output (default: from config)")
}

func readRecord(ctx context.Context) ([]byte, error) {
	if pid != "" {
		s, err := store.Open(storePath())
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Get(ctx, pid)
	}

	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

func storePath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Store.Path
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	data, err := readRecord(cmd.Context())
	if err != nil {
		return err
	}

	opts := cfg.ExportOptions()
	if cmd.Flags().Changed("pretty") {
		opts.Pretty = pretty
	}
	out, err := export.New(opts).ExportJSON(data, args[0])
	if err != nil {
		return err
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	}

	if _, err := output.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if outputFile == "" {
		fmt.Fprintln(output)
	}
	return nil
}
