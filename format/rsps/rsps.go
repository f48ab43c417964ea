// Package rsps provides the SciELO Publishing Schema (JATS 1.0) export format.
package rsps

import (
	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// Doctype is the JATS Journal Publishing 1.0 declaration.
const Doctype = `DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Publishing DTD v1.0 20120330//EN" "JATS-journalpublishing1.dtd"`

// Format implements the SciELO Publishing Schema export.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmlrsps"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "SciELO Publishing Schema XML (JATS 1.0)"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/xml"
}

// Export renders one article.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	if opts == nil {
		opts = format.NewOptions()
	}
	tree, err := articlePipeline(opts).Run(doc)
	if err != nil {
		return nil, err
	}
	return pipeline.Serialize(tree, pipeline.SerializeOptions{
		Declaration: true,
		Doctype:     Doctype,
		Indent:      opts.Indent(),
	})
}

func init() {
	format.Register(&Format{})
}
