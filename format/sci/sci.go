// Package sci provides the Web of Science legacy (ThomsonReuters publishing
// 1.09) export format.
package sci

import (
	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// SchemaVersion is the ThomsonReuters publishing schema version.
const SchemaVersion = "1.09"

// Format implements the WoS export.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmlwos"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Web of Science XML (ThomsonReuters publishing " + SchemaVersion + ")"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/xml"
}

// Export renders one article inside an <articles> envelope.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	if opts == nil {
		opts = format.NewOptions()
	}
	tree, err := articlePipeline.Run(doc)
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
