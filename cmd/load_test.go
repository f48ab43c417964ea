package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

const dumpLine = `{"code": "S1", "article": {}}` + "\n"

func writeDump(t *testing.T, name string, compress func(io.Writer) io.WriteCloser) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating dump: %v", err)
	}
	defer f.Close()

	var w io.Writer = f
	var wc io.WriteCloser
	if compress != nil {
		wc = compress(f)
		w = wc
	}
	if _, err := io.WriteString(w, dumpLine); err != nil {
		t.Fatalf("writing dump: %v", err)
	}
	if wc != nil {
		if err := wc.Close(); err != nil {
			t.Fatalf("closing compressor: %v", err)
		}
	}
	return path
}

func TestOpenDump(t *testing.T) {
	tests := []struct {
		name     string
		compress func(io.Writer) io.WriteCloser
	}{
		{"dump.jsonl", nil},
		{"dump.jsonl.gz", func(w io.Writer) io.WriteCloser { return pgzip.NewWriter(w) }},
		{"dump.jsonl.zst", func(w io.Writer) io.WriteCloser {
			zw, err := zstd.NewWriter(w)
			if err != nil {
				t.Fatalf("zstd.NewWriter() error = %v", err)
			}
			return zw
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := openDump(writeDump(t, tt.name, tt.compress))
			if err != nil {
				t.Fatalf("openDump() error = %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("reading dump: %v", err)
			}
			if string(got) != dumpLine {
				t.Errorf("dump = %q, want %q", got, dumpLine)
			}
		})
	}
}

func TestOpenDumpMissing(t *testing.T) {
	if _, err := openDump(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("openDump(missing) error = nil")
	}
}
