// Package crossref provides the CrossRef deposit XML export format.
package crossref

import (
	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// Version is the CrossRef deposit schema version written to doi_batch.
const Version = "5.3.1"

// Format implements the CrossRef deposit format.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmlcrossref"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "CrossRef Deposit XML (Schema v" + Version + ")"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/xml"
}

// Export renders one article as a deposit batch. The batch id and
// timestamp come from opts, so a fixed Clock and BatchID make the
// output reproducible.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	if opts == nil {
		opts = format.NewOptions()
	}
	tree, err := depositPipeline(opts).Run(doc)
	if err != nil {
		return nil, err
	}
	return pipeline.Serialize(tree, pipeline.SerializeOptions{
		Declaration: true,
		Indent:      opts.Indent(),
	})
}

func init() {
	format.Register(&Format{})
}
