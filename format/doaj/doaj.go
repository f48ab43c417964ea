// Package doaj provides the DOAJ article XML export format.
package doaj

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// Format implements the DOAJ export.
type Format struct{}

var _ format.Exporter = (*Format)(nil)

// Name returns the format code.
func (f *Format) Name() string {
	return "xmldoaj"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "DOAJ article XML"
}

// ContentType returns the MIME type of the artifact.
func (f *Format) ContentType() string {
	return "application/xml"
}

// Export renders one article as a single-record DOAJ batch.
func (f *Format) Export(doc *document.Article, opts *format.Options) ([]byte, error) {
	if opts == nil {
		opts = format.NewOptions()
	}
	tree, err := recordPipeline.Run(doc)
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

func text(get func(*document.Article) string) pipeline.Precondition[*document.Article] {
	return pipeline.HasText(get)
}

var recordPipeline = pipeline.New("xmldoaj",
	pipeline.NewPipe("SetupRecords", setupRecords),
	pipeline.NewPipe("Language", leaf("language", func(a *document.Article) string {
		return helpers.ISO639_2(a.OriginalLanguage())
	}), text((*document.Article).OriginalLanguage)),
	pipeline.NewPipe("Publisher", leaf("publisher", publisherName), text(publisherName)),
	pipeline.NewPipe("JournalTitle", leaf("journalTitle", journalTitle), text(journalTitle)),
	pipeline.NewPipe("ISSN", leaf("issn", printISSN), text(printISSN)),
	pipeline.NewPipe("EISSN", leaf("eissn", electronicISSN), text(electronicISSN)),
	pipeline.NewPipe("PublicationDate", leaf("publicationDate", publicationDate), text(publicationDate)),
	pipeline.NewPipe("Volume", leaf("volume", volume), text(volume)),
	pipeline.NewPipe("Issue", leaf("issue", issue), text(issue)),
	pipeline.NewPipe("StartPage", leaf("startPage", (*document.Article).StartPage), text((*document.Article).StartPage)),
	pipeline.NewPipe("EndPage", leaf("endPage", (*document.Article).EndPage), text((*document.Article).EndPage)),
	pipeline.NewPipe("DOI", leaf("doi", (*document.Article).DOI), text((*document.Article).DOI)),
	pipeline.NewPipe("PublisherId", leaf("publisherRecordId", (*document.Article).PublisherID), text((*document.Article).PublisherID)),
	pipeline.NewPipe("DocumentType", leaf("documentType", (*document.Article).DocumentType)),
	pipeline.NewPipe("Title", xmlTitles,
		pipeline.Has(func(a *document.Article) any { return a.OriginalTitle() + concat(a.TranslatedTitles()) })),
	pipeline.NewPipe("Authors", xmlAuthors,
		pipeline.Has(func(a *document.Article) any { return a.Authors() })),
	pipeline.NewPipe("Affiliations", xmlAffiliations,
		pipeline.Has(func(a *document.Article) any { return a.MixedAffiliations() })),
	pipeline.NewPipe("Abstract", xmlAbstracts,
		pipeline.Has(func(a *document.Article) any { return a.OriginalAbstract() + concat(a.TranslatedAbstracts()) })),
	pipeline.NewPipe("FullTextUrl", xmlFullTextURL, text((*document.Article).HTMLURL)),
	pipeline.NewPipe("Keywords", xmlKeywords,
		pipeline.Has(func(a *document.Article) any { return a.Keywords() })),
)

func publisherName(a *document.Article) string  { return a.Journal().PublisherName() }
func journalTitle(a *document.Article) string   { return a.Journal().Title() }
func printISSN(a *document.Article) string      { return a.Journal().PrintISSN() }
func electronicISSN(a *document.Article) string { return a.Journal().ElectronicISSN() }

func publicationDate(a *document.Article) string {
	return helpers.ParseDate(a.PublicationDate()).ISO()
}

func volume(a *document.Article) string {
	return helpers.VolumeLabel(a.Issue().Volume(), helpers.Trimmed)
}

func issue(a *document.Article) string {
	return helpers.IssueLabelOf(a.Issue(), helpers.Trimmed)
}

func concat(m map[string]string) string {
	var s string
	for _, v := range m {
		s += v
	}
	return s
}

func setupRecords(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
	root := pipeline.Root("records")
	root.CreateElement("record")
	return root, nil
}

func record(tree *etree.Element) (*etree.Element, error) {
	return pipeline.Find(tree, "record")
}

func leaf(tag string, get func(*document.Article) string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, tree *etree.Element) (*etree.Element, error) {
		rec, err := record(tree)
		if err != nil {
			return nil, err
		}
		pipeline.SubElement(rec, tag, get(a))
		return tree, nil
	}
}

// titles returns every title keyed by language, original included.
func titles(a *document.Article) map[string]string {
	result := map[string]string{}
	for lang, title := range a.TranslatedTitles() {
		result[lang] = title
	}
	if title := a.OriginalTitle(); title != "" {
		result[a.OriginalLanguage()] = title
	}
	return result
}

func xmlTitles(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	all := titles(a)
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), all) {
		title := pipeline.SubElement(rec, "title", all[lang])
		pipeline.Attr(title, "language", helpers.ISO639_2(lang))
	}
	return tree, nil
}

// affiliationID returns the position in affiliationsList of the first
// affiliation the author points to, or "" when none matches.
func affiliationID(author document.Author, affs []document.Affiliation) string {
	matched := helpers.MatchAffiliations(author.Xref, affs)
	if len(matched) == 0 {
		return ""
	}
	for i, aff := range affs {
		if aff == matched[0] {
			return strconv.Itoa(i)
		}
	}
	return ""
}

func xmlAuthors(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	affs := a.MixedAffiliations()
	authors := rec.CreateElement("authors")
	for _, author := range a.Authors() {
		el := authors.CreateElement("author")
		pipeline.SubElement(el, "name", author.FullName())
		if id := affiliationID(author, affs); id != "" {
			pipeline.SubElement(el, "affiliationId", id)
		}
	}
	return tree, nil
}

func xmlAffiliations(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	list := rec.CreateElement("affiliationsList")
	for i, aff := range a.MixedAffiliations() {
		name := pipeline.SubElement(list, "affiliationName", helpers.AffiliationText(aff))
		name.CreateAttr("affiliationId", strconv.Itoa(i))
	}
	return tree, nil
}

func xmlAbstracts(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	all := map[string]string{}
	for lang, text := range a.TranslatedAbstracts() {
		all[lang] = text
	}
	if text := a.OriginalAbstract(); text != "" {
		all[a.OriginalLanguage()] = text
	}
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), all) {
		abstract := pipeline.SubElement(rec, "abstract", helpers.StripHTML(all[lang]))
		pipeline.Attr(abstract, "language", helpers.ISO639_2(lang))
	}
	return tree, nil
}

func xmlFullTextURL(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(rec, "fullTextUrl", a.HTMLURL()).CreateAttr("format", "html")
	return tree, nil
}

func xmlKeywords(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	rec, err := record(tree)
	if err != nil {
		return nil, err
	}
	keywords := a.Keywords()
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), keywords) {
		group := rec.CreateElement("keywords")
		group.CreateAttr("language", helpers.ISO639_2(lang))
		for _, k := range keywords[lang] {
			pipeline.SubElement(group, "keyword", k)
		}
	}
	return tree, nil
}
