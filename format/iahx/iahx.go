// Package iahx provides the flat IAHX search index document format.
package iahx

import (
	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// Format implements the IAHX index export.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmliahx"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "IAHX search index document"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/xml"
}

// Export renders one article as an index document.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	if opts == nil {
		opts = format.NewOptions()
	}
	tree, err := docPipeline.Run(doc)
	if err != nil {
		return nil, err
	}
	return pipeline.Serialize(tree, pipeline.SerializeOptions{Indent: opts.Indent()})
}

func init() {
	format.Register(&Format{})
}
