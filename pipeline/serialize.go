package pipeline

import (
	"github.com/beevik/etree"
)

// SerializeOptions controls the final document encoding.
type SerializeOptions struct {
	// Doctype is the DOCTYPE directive body without the "<!" and ">".
	Doctype string
	// Declaration emits the <?xml ...?> header.
	Declaration bool
	// Indent pretty-prints with this many spaces; zero writes compact output.
	Indent int
}

// Serialize wraps root in a document and encodes it as UTF-8 bytes.
// root is detached from any previous parent.
func Serialize(root *etree.Element, opts SerializeOptions) ([]byte, error) {
	doc := etree.NewDocument()
	if opts.Declaration {
		doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	}
	if opts.Doctype != "" {
		doc.CreateDirective(opts.Doctype)
	}
	doc.SetRoot(root)
	if opts.Indent > 0 {
		doc.Indent(opts.Indent)
	}
	return doc.WriteToBytes()
}
