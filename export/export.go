// Package export is the single entry point for rendering a legacy record
// in any registered format.
package export

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"

	// Register all formats
	_ "github.com/lehigh-university-libraries/metaexport/format/crossref"
	_ "github.com/lehigh-university-libraries/metaexport/format/doaj"
	_ "github.com/lehigh-university-libraries/metaexport/format/iahx"
	_ "github.com/lehigh-university-libraries/metaexport/format/jsonfmt"
	_ "github.com/lehigh-university-libraries/metaexport/format/pubmed"
	_ "github.com/lehigh-university-libraries/metaexport/format/rsps"
	_ "github.com/lehigh-university-libraries/metaexport/format/sci"
)

// Exporter renders records with a fixed set of options.
type Exporter struct {
	opts     *format.Options
	registry *format.Registry
}

// New creates an Exporter. A nil opts uses format.NewOptions.
func New(opts *format.Options) *Exporter {
	if opts == nil {
		opts = format.NewOptions()
	}
	return &Exporter{opts: opts, registry: format.DefaultRegistry}
}

// Export renders a decoded legacy record in the format named by code.
// Codes are case-insensitive.
func (e *Exporter) Export(raw map[string]any, code string) ([]byte, error) {
	f, err := e.registry.Get(code)
	if err != nil {
		return nil, err
	}
	doc, err := document.New(raw)
	if err != nil {
		return nil, err
	}
	return e.render(f, doc)
}

// ExportJSON decodes a JSON legacy record and renders it.
func (e *Exporter) ExportJSON(data []byte, code string) ([]byte, error) {
	f, err := e.registry.Get(code)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	return e.render(f, doc)
}

func (e *Exporter) render(f format.Exporter, doc *document.Article) ([]byte, error) {
	slog.Debug("exporting", "format", f.Name(), "pid", doc.PublisherID())
	out, err := f.Export(doc, e.opts)
	if err != nil {
		return nil, fmt.Errorf("exporting %s as %s: %w", doc.PublisherID(), f.Name(), err)
	}
	return out, nil
}

// Formats returns the registered formats, sorted by code.
func (e *Exporter) Formats() []format.Exporter {
	var result []format.Exporter
	for _, name := range e.registry.List() {
		if f, err := e.registry.Get(name); err == nil {
			result = append(result, f)
		}
	}
	return result
}

// Export renders raw with default options.
func Export(raw map[string]any, code string) ([]byte, error) {
	return New(nil).Export(raw, code)
}
