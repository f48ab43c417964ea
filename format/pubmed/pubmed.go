// Package pubmed provides the PubMed 2.8 ArticleSet export format.
package pubmed

import (
	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// Doctype is the PubMed 2.8 declaration.
const Doctype = `DOCTYPE ArticleSet PUBLIC "-//NLM//DTD PubMed 2.8//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/in/PubMed.dtd"`

// Format implements the PubMed export.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmlpubmed"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "PubMed ArticleSet XML (DTD 2.8)"
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
	tree, err := articlePipeline.Run(doc)
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
