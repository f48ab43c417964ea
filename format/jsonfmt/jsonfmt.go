// Package jsonfmt provides the plain JSON passthrough format: the legacy
// record re-encoded without any pipeline.
package jsonfmt

import (
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
)

// Format implements the JSON passthrough.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "json"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Legacy record as JSON"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/json"
}

// Export encodes the raw record. Map keys are sorted, so equal records
// encode to equal bytes.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if opts != nil && opts.Pretty {
		out, err = json.MarshalIndent(doc.Raw(), "", "  ")
	} else {
		out, err = json.Marshal(doc.Raw())
	}
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return out, nil
}

func init() {
	format.Register(&Format{})
}
