package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/metaexport/store"
)

var loadCmd = &cobra.Command{
	Use:   "load <dump>",
	Short: "Import a JSONL dump of legacy records into the local store",
	Long: `Import a JSONL dump of legacy article records into the local store.
Dumps ending in .gz or .zst are decompressed on the fly.

Examples:
  metaexport load articles.jsonl
  metaexport load articles.jsonl.zst --db scl.db`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&dbPath, "db", "", "Store database path (default: from config)")
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// openDump opens a file and returns a reader, decompressing by extension.
func openDump(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	switch {
	case strings.HasSuffix(filename, ".gz"):
		zr, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip dump: %w", err)
		}
		return readCloser{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case strings.HasSuffix(filename, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening zstd dump: %w", err)
		}
		return readCloser{zr, func() error {
			zr.Close()
			return f.Close()
		}}, nil
	default:
		return f, nil
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	r, err := openDump(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	s, err := store.Open(storePath())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Import(cmd.Context(), r)
	if err != nil {
		return err
	}
	total, err := s.Count(cmd.Context())
	if err != nil {
		return err
	}
	slog.Info("load complete", "imported", n, "stored", total, "db", storePath())
	return nil
}
