package crossref

import (
	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

// variant is one language version of an article, deposited as its own
// journal_article under its own DOI.
type variant struct {
	doc    *document.Article
	lang   string
	doi    string
	main   bool
	others []document.LangDOI
}

func (v *variant) title() string    { return v.doc.Title(v.lang) }
func (v *variant) abstract() string { return v.doc.Abstract(v.lang) }

func (v *variant) resource() string {
	if url := v.doc.HTMLURLs()[v.lang]; url != "" {
		return url
	}
	return v.doc.HTMLURL()
}

func (v *variant) pdf() string {
	return v.doc.PDFURLs()[v.lang]
}

// variantsOf returns the original language variant first, then every
// other language that carries a DOI.
func variantsOf(a *document.Article) []*variant {
	all := a.DOIAndLang()
	result := make([]*variant, 0, len(all))
	for i, ld := range all {
		v := &variant{doc: a, lang: ld.Language, doi: ld.DOI, main: i == 0}
		if v.main {
			v.others = all[1:]
		} else {
			v.others = all[:1]
		}
		result = append(result, v)
	}
	return result
}

type vcond = pipeline.Precondition[*variant]

func vhas(get func(*variant) any) vcond {
	return pipeline.Has(get)
}

var variantPipeline = pipeline.New("xmlcrossref-article",
	pipeline.NewPipe("JournalArticle", setupJournalArticle),
	pipeline.NewPipe("Titles", xmlTitles, pipeline.HasText((*variant).title)),
	pipeline.NewPipe("Contributors", xmlContributors,
		vhas(func(v *variant) any { return v.doc.Authors() })),
	pipeline.NewPipe("Abstract", xmlAbstract, pipeline.HasText((*variant).abstract)),
	pipeline.NewPipe("PublicationDate", xmlPublicationDate,
		pipeline.HasText(func(v *variant) string { return helpers.ParseDate(v.doc.PublicationDate()).Year })),
	pipeline.NewPipe("Pages", xmlPages,
		pipeline.HasText(func(v *variant) string { return v.doc.StartPage() })),
	pipeline.NewPipe("PublisherItem", xmlPublisherItem,
		pipeline.HasText(func(v *variant) string { return v.doc.Elocation() + v.doc.PublisherID() })),
	pipeline.NewPipe("AccessIndicators", xmlAccessIndicators,
		vhas(func(v *variant) any { return v.doc.Permissions() })),
	pipeline.NewPipe("FundRef", xmlFundRef,
		vhas(func(v *variant) any { return v.doc.Sponsors() })),
	pipeline.NewPipe("Relations", xmlRelations,
		vhas(func(v *variant) any { return v.others })),
	pipeline.NewPipe("DOIData", xmlDOIData),
	pipeline.NewPipe("CitationList", xmlCitationList,
		vhas(func(v *variant) any { return v.doc.Citations() })),
)

func setupJournalArticle(v *variant, _ *etree.Element) (*etree.Element, error) {
	article := pipeline.Root("journal_article")
	pipeline.Attr(article, "language", v.lang, "publication_type", "full_text")
	return article, nil
}

func xmlTitles(v *variant, article *etree.Element) (*etree.Element, error) {
	pipeline.SubElement(article.CreateElement("titles"), "title", v.title())
	return article, nil
}

func xmlContributors(v *variant, article *etree.Element) (*etree.Element, error) {
	affs := v.doc.MixedAffiliations()
	contributors := article.CreateElement("contributors")
	for i, author := range v.doc.Authors() {
		sequence := "additional"
		if i == 0 {
			sequence = "first"
		}
		person := contributors.CreateElement("person_name")
		person.CreateAttr("contributor_role", "author")
		person.CreateAttr("sequence", sequence)
		if author.GivenNames != "" {
			pipeline.SubElement(person, "given_name", author.GivenNames)
		}
		pipeline.SubElement(person, "surname", author.Surname)
		if aff := helpers.AuthorAffiliation(author, affs); aff != "" {
			pipeline.SubElement(person, "affiliation", aff)
		}
		if author.ORCID != "" {
			pipeline.SubElement(person, "ORCID", "https://orcid.org/"+author.ORCID)
		}
	}
	return article, nil
}

func xmlAbstract(v *variant, article *etree.Element) (*etree.Element, error) {
	abstract := article.CreateElement("jats:abstract")
	abstract.CreateAttr("xml:lang", v.lang)
	for _, p := range helpers.Paragraphs(v.abstract()) {
		pipeline.SubElement(abstract, "jats:p", p)
	}
	return article, nil
}

func xmlPublicationDate(v *variant, article *etree.Element) (*etree.Element, error) {
	pd := article.CreateElement("publication_date")
	pd.CreateAttr("media_type", "print")
	appendDate(pd, helpers.ParseDate(v.doc.PublicationDate()))
	return article, nil
}

func xmlPages(v *variant, article *etree.Element) (*etree.Element, error) {
	pages := article.CreateElement("pages")
	pipeline.SubElement(pages, "first_page", v.doc.StartPage())
	if last := v.doc.EndPage(); last != "" {
		pipeline.SubElement(pages, "last_page", last)
	}
	return article, nil
}

func xmlPublisherItem(v *variant, article *etree.Element) (*etree.Element, error) {
	item := article.CreateElement("publisher_item")
	if e := v.doc.Elocation(); e != "" {
		pipeline.SubElement(item, "item_number", e).CreateAttr("item_number_type", "article_number")
	}
	if pid := v.doc.PublisherID(); pid != "" {
		pipeline.SubElement(item, "identifier", pid).CreateAttr("id_type", "pii")
	}
	return article, nil
}

func xmlAccessIndicators(v *variant, article *etree.Element) (*etree.Element, error) {
	program := article.CreateElement("ai:program")
	program.CreateAttr("name", "AccessIndicators")
	program.CreateElement("ai:free_to_read")
	ref := pipeline.SubElement(program, "ai:license_ref", v.doc.Permissions().URL)
	ref.CreateAttr("applies_to", "vor")
	if d := helpers.ParseDate(v.doc.PublicationDate()); !d.IsZero() {
		ref.CreateAttr("start_date", d.ISO())
	}
	return article, nil
}

func xmlFundRef(v *variant, article *etree.Element) (*etree.Element, error) {
	program := article.CreateElement("fr:program")
	program.CreateAttr("name", "fundref")
	contracts := v.doc.ContractNumbers()
	for _, sponsor := range v.doc.Sponsors() {
		group := program.CreateElement("fr:assertion")
		group.CreateAttr("name", "fundgroup")
		pipeline.SubElement(group, "fr:assertion", sponsor).CreateAttr("name", "funder_name")
		for _, number := range contracts {
			pipeline.SubElement(group, "fr:assertion", number).CreateAttr("name", "award_number")
		}
	}
	return article, nil
}

// xmlRelations links language variants. The main variant lists every
// translation as isTranslationOf; each translation points back to the
// main DOI as hasTranslation.
func xmlRelations(v *variant, article *etree.Element) (*etree.Element, error) {
	relation := "hasTranslation"
	if v.main {
		relation = "isTranslationOf"
	}
	program := article.CreateElement("rel:program")
	program.CreateAttr("name", "relations")
	for _, other := range v.others {
		item := program.CreateElement("rel:related_item")
		if title := v.doc.Title(other.Language); title != "" {
			pipeline.SubElement(item, "rel:description", title)
		}
		rel := pipeline.SubElement(item, "rel:intra_work_relation", other.DOI)
		rel.CreateAttr("relationship-type", relation)
		rel.CreateAttr("identifier-type", "doi")
	}
	return article, nil
}

func xmlDOIData(v *variant, article *etree.Element) (*etree.Element, error) {
	data := article.CreateElement("doi_data")
	pipeline.SubElement(data, "doi", v.doi)
	if url := v.resource(); url != "" {
		pipeline.SubElement(data, "resource", url)
	}
	if pdf := v.pdf(); pdf != "" {
		collection := data.CreateElement("collection")
		collection.CreateAttr("property", "crawler-based")
		item := collection.CreateElement("item")
		item.CreateAttr("crawler", "iParadigms")
		pipeline.SubElement(item, "resource", pdf)
	}
	return article, nil
}

func xmlCitationList(v *variant, article *etree.Element) (*etree.Element, error) {
	list := article.CreateElement("citation_list")
	return article, citationPipeline.RunEach(list, v.doc.Citations())
}
