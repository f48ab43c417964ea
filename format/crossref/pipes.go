package crossref

import (
	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

const timestampLayout = "20060102150405"

var namespaces = []string{
	"xmlns", "http://www.crossref.org/schema/" + Version,
	"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
	"xsi:schemaLocation", "http://www.crossref.org/schema/" + Version + " http://www.crossref.org/schemas/crossref" + Version + ".xsd",
	"xmlns:jats", "http://www.ncbi.nlm.nih.gov/JATS1",
	"xmlns:ai", "http://www.crossref.org/AccessIndicators.xsd",
	"xmlns:fr", "http://www.crossref.org/fundref.xsd",
	"xmlns:rel", "http://www.crossref.org/relations.xsd",
	"version", Version,
}

func depositPipeline(opts *format.Options) *pipeline.Pipeline[*document.Article] {
	return pipeline.New("xmlcrossref",
		pipeline.NewPipe("SetupDoiBatch", setupDoiBatch),
		pipeline.NewPipe("Head", xmlHead(opts)),
		pipeline.NewPipe("Body", xmlBody),
		pipeline.NewPipe("JournalMetadata", xmlJournalMetadata),
		pipeline.NewPipe("JournalIssue", xmlJournalIssue,
			pipeline.HasText(func(a *document.Article) string {
				return helpers.ParseDate(a.PublicationDate()).Year + volume(a) + issue(a)
			})),
		pipeline.NewPipe("JournalArticles", xmlJournalArticles,
			pipeline.Has(func(a *document.Article) any { return a.DOIAndLang() })),
	)
}

// volume and issue are left out for ahead-of-print pseudo issues.
func volume(a *document.Article) string {
	if a.Issue().IsAhead() {
		return ""
	}
	return helpers.VolumeLabel(a.Issue().Volume(), helpers.Trimmed)
}

func issue(a *document.Article) string {
	if a.Issue().IsAhead() {
		return ""
	}
	return helpers.IssueLabelOf(a.Issue(), helpers.Trimmed)
}

func setupDoiBatch(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
	return pipeline.Attr(pipeline.Root("doi_batch"), namespaces...), nil
}

func xmlHead(opts *format.Options) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, tree *etree.Element) (*etree.Element, error) {
		head := tree.CreateElement("head")
		batchID := opts.NewBatchID()
		if pid := a.PublisherID(); pid != "" {
			batchID = pid + "-" + batchID
		}
		pipeline.SubElement(head, "doi_batch_id", batchID)
		pipeline.SubElement(head, "timestamp", opts.Now().Format(timestampLayout))
		depositor := head.CreateElement("depositor")
		pipeline.SubElement(depositor, "depositor_name", opts.DepositorName)
		pipeline.SubElement(depositor, "email_address", opts.DepositorEmail)
		pipeline.SubElement(head, "registrant", opts.Registrant)
		return tree, nil
	}
}

func xmlBody(_ *document.Article, tree *etree.Element) (*etree.Element, error) {
	tree.CreateElement("body").CreateElement("journal")
	return tree, nil
}

func xmlJournalMetadata(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	journal, err := pipeline.Find(tree, "body/journal")
	if err != nil {
		return nil, err
	}
	meta := journal.CreateElement("journal_metadata")
	if title := a.Journal().Title(); title != "" {
		pipeline.SubElement(meta, "full_title", title)
	}
	if abbrev := a.Journal().AbbreviatedTitle(); abbrev != "" {
		pipeline.SubElement(meta, "abbrev_title", abbrev)
	}
	if issn := a.Journal().PrintISSN(); issn != "" {
		pipeline.SubElement(meta, "issn", issn).CreateAttr("media_type", "print")
	}
	if issn := a.Journal().ElectronicISSN(); issn != "" {
		pipeline.SubElement(meta, "issn", issn).CreateAttr("media_type", "electronic")
	}
	return tree, nil
}

// appendDate writes CrossRef date parts, which run month, day, year.
func appendDate(parent *etree.Element, d helpers.Date) {
	if d.Month != "" {
		pipeline.SubElement(parent, "month", d.Month)
	}
	if d.Day != "" {
		pipeline.SubElement(parent, "day", d.Day)
	}
	if d.Year != "" {
		pipeline.SubElement(parent, "year", d.Year)
	}
}

func xmlJournalIssue(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	journal, err := pipeline.Find(tree, "body/journal")
	if err != nil {
		return nil, err
	}
	ji := journal.CreateElement("journal_issue")
	if d := helpers.ParseDate(a.PublicationDate()); d.Year != "" {
		pd := ji.CreateElement("publication_date")
		pd.CreateAttr("media_type", "print")
		appendDate(pd, d)
	}
	if v := volume(a); v != "" {
		pipeline.SubElement(ji.CreateElement("journal_volume"), "volume", v)
	}
	if n := issue(a); n != "" {
		pipeline.SubElement(ji, "issue", n)
	}
	return tree, nil
}

func xmlJournalArticles(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	journal, err := pipeline.Find(tree, "body/journal")
	if err != nil {
		return nil, err
	}
	return tree, variantPipeline.RunEach(journal, variantsOf(a))
}
