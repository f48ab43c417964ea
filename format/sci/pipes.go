package sci

import (
	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

var articlePipeline = pipeline.New("xmlwos",
	pipeline.NewPipe("SetupArticles", setupArticles),
	pipeline.NewPipe("Article", xmlArticle),
	pipeline.NewPipe("Front", xmlFront),
	pipeline.NewPipe("JournalId", xmlJournalID,
		pipeline.HasText(func(a *document.Article) string { return a.Journal().Acronym() })),
	pipeline.NewPipe("JournalTitle", xmlJournalTitle,
		pipeline.HasText(func(a *document.Article) string { return a.Journal().Title() })),
	pipeline.NewPipe("AbbrevJournalTitle", xmlAbbrevJournalTitle,
		pipeline.HasText(func(a *document.Article) string { return a.Journal().AbbreviatedTitle() })),
	pipeline.NewPipe("ISSN", xmlISSN,
		pipeline.Has(func(a *document.Article) any { return a.Journal().ISSNs() })),
	pipeline.NewPipe("Publisher", xmlPublisher,
		pipeline.HasText(func(a *document.Article) string { return a.Journal().PublisherName() })),
	pipeline.NewPipe("UniqueArticleId", xmlUniqueArticleID, pipeline.HasText((*document.Article).PublisherID)),
	pipeline.NewPipe("ArticleIdDOI", xmlArticleIDDOI, pipeline.HasText((*document.Article).DOI)),
	pipeline.NewPipe("ArticleCategories", xmlArticleCategories,
		pipeline.Has(func(a *document.Article) any { return a.Journal().WOSSubjectAreas() })),
	pipeline.NewPipe("TitleGroup", xmlTitleGroup),
	pipeline.NewPipe("ContribGroup", xmlContribGroup,
		pipeline.Has(func(a *document.Article) any { return a.Authors() })),
	pipeline.NewPipe("Affiliation", xmlAffiliation,
		pipeline.Has(func(a *document.Article) any { return a.MixedAffiliations() })),
	pipeline.NewPipe("PubDate", xmlPubDate,
		pipeline.HasText(func(a *document.Article) string { return helpers.ParseDate(a.PublicationDate()).Year })),
	pipeline.NewPipe("Volume", xmlVolume),
	pipeline.NewPipe("Issue", xmlIssue),
	pipeline.NewPipe("FPage", xmlFPage, pipeline.HasText((*document.Article).StartPage)),
	pipeline.NewPipe("LPage", xmlLPage, pipeline.HasText((*document.Article).EndPage)),
	pipeline.NewPipe("Abstract", xmlAbstract,
		pipeline.HasText((*document.Article).OriginalAbstract)),
	pipeline.NewPipe("TransAbstract", xmlTransAbstract,
		pipeline.Has(func(a *document.Article) any { return a.TranslatedAbstracts() })),
	pipeline.NewPipe("KeywordGroup", xmlKeywordGroup,
		pipeline.Has(func(a *document.Article) any { return a.Keywords() })),
	pipeline.NewPipe("Citations", xmlCitations,
		pipeline.Has(func(a *document.Article) any { return a.Citations() })),
)

func setupArticles(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
	root := pipeline.Root("articles")
	pipeline.Attr(root,
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
		"xsi:noNamespaceSchemaLocation", "ThomsonReuters_publishing_"+SchemaVersion+".xsd",
		"dtd-version", SchemaVersion,
	)
	return root, nil
}

func xmlArticle(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article := tree.CreateElement("article")
	pipeline.Attr(article,
		"lang", a.OriginalLanguage(),
		"article-type", a.DocumentType(),
	)
	return tree, nil
}

func xmlFront(_ *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "article")
	if err != nil {
		return nil, err
	}
	front := article.CreateElement("front")
	front.CreateElement("journal-meta")
	front.CreateElement("article-meta")
	article.CreateElement("back")
	return tree, nil
}

func journalMeta(tree *etree.Element) (*etree.Element, error) {
	return pipeline.Find(tree, "article/front/journal-meta")
}

func articleMeta(tree *etree.Element) (*etree.Element, error) {
	return pipeline.Find(tree, "article/front/article-meta")
}

func xmlJournalID(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := journalMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(meta, "journal-id", a.Journal().Acronym()), "journal-id-type", "publisher")
	return tree, nil
}

func xmlJournalTitle(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := journalMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "journal-title", a.Journal().Title())
	return tree, nil
}

func xmlAbbrevJournalTitle(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := journalMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "abbrev-journal-title", a.Journal().AbbreviatedTitle())
	return tree, nil
}

func xmlISSN(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := journalMeta(tree)
	if err != nil {
		return nil, err
	}
	if issn := a.Journal().PrintISSN(); issn != "" {
		pipeline.Attr(pipeline.SubElement(meta, "issn", issn), "pub-type", "ppub")
	}
	if issn := a.Journal().ElectronicISSN(); issn != "" {
		pipeline.Attr(pipeline.SubElement(meta, "issn", issn), "pub-type", "epub")
	}
	return tree, nil
}

func xmlPublisher(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := journalMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta.CreateElement("publisher"), "publisher-name", a.Journal().PublisherName())
	return tree, nil
}

func xmlUniqueArticleID(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(meta, "unique-article-id", a.PublisherID()), "pub-id-type", "publisher-id")
	return tree, nil
}

func xmlArticleIDDOI(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(meta, "article-id", a.DOI()), "pub-id-type", "doi")
	return tree, nil
}

func xmlArticleCategories(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("article-categories").CreateElement("subj-group")
	for _, area := range a.Journal().WOSSubjectAreas() {
		pipeline.SubElement(group, "subject", area)
	}
	return tree, nil
}

func xmlTitleGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("title-group")
	if title := a.OriginalTitle(); title != "" {
		pipeline.Attr(pipeline.SubElement(group, "article-title", title), "xml:lang", a.OriginalLanguage())
	}
	titles := a.TranslatedTitles()
	for _, lang := range helpers.OrderedLanguages("", titles) {
		trans := group.CreateElement("trans-title-group")
		trans.CreateAttr("xml:lang", lang)
		pipeline.SubElement(trans, "trans-title", titles[lang])
	}
	return tree, nil
}

func affID(code string) string {
	return "aff" + helpers.NumericID(code)
}

func xmlContribGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("contrib-group")
	for _, author := range a.Authors() {
		contrib := group.CreateElement("contrib")
		contrib.CreateAttr("contrib-type", "author")
		name := contrib.CreateElement("name")
		pipeline.SubElement(name, "surname", author.Surname)
		pipeline.SubElement(name, "given-names", author.GivenNames)
		if author.Role != "" {
			pipeline.SubElement(contrib, "role", author.Role)
		}
		for _, code := range author.Xref {
			xref := contrib.CreateElement("xref")
			xref.CreateAttr("ref-type", "aff")
			xref.CreateAttr("rid", affID(code))
		}
	}
	return tree, nil
}

func xmlAffiliation(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	for _, aff := range a.MixedAffiliations() {
		el := meta.CreateElement("aff")
		if aff.Index != "" {
			el.CreateAttr("id", affID(aff.Index))
		}
		if aff.Institution != "" {
			pipeline.SubElement(el, "institution", aff.Institution)
		}
		if addr := aff.AddrLine(); addr != "" {
			pipeline.SubElement(el, "addr-line", addr)
		}
		if aff.Country != "" {
			pipeline.SubElement(el, "country", aff.Country)
		}
	}
	return tree, nil
}

// appendDate writes year, month and day children, skipping unknown parts.
func appendDate(parent *etree.Element, d helpers.Date) {
	if d.Year != "" {
		pipeline.SubElement(parent, "year", d.Year)
	}
	if d.Month != "" {
		pipeline.SubElement(parent, "month", d.Month)
	}
	if d.Day != "" {
		pipeline.SubElement(parent, "day", d.Day)
	}
}

func xmlPubDate(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pubDate := meta.CreateElement("pub-date")
	pubDate.CreateAttr("pub-type", "pub")
	appendDate(pubDate, helpers.ParseDate(a.PublicationDate()))
	return tree, nil
}

// xmlVolume always writes a volume; absent and ahead-of-print become "0".
func xmlVolume(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "volume", helpers.VolumeLabel(a.Issue().Volume(), helpers.ZeroFilled))
	return tree, nil
}

func xmlIssue(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	label := helpers.IssueLabelOf(a.Issue(), helpers.ZeroFilled)
	if label == "" {
		label = "0"
	}
	pipeline.SubElement(meta, "issue", label)
	return tree, nil
}

func xmlFPage(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "fpage", a.StartPage())
	return tree, nil
}

func xmlLPage(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "lpage", a.EndPage())
	return tree, nil
}

func xmlAbstract(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	abstract := meta.CreateElement("abstract")
	abstract.CreateAttr("xml:lang", a.OriginalLanguage())
	pipeline.SubElement(abstract, "p", helpers.StripHTML(a.OriginalAbstract()))
	return tree, nil
}

func xmlTransAbstract(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	abstracts := a.TranslatedAbstracts()
	for _, lang := range helpers.OrderedLanguages("", abstracts) {
		trans := meta.CreateElement("trans-abstract")
		trans.CreateAttr("xml:lang", lang)
		pipeline.SubElement(trans, "p", helpers.StripHTML(abstracts[lang]))
	}
	return tree, nil
}

func xmlKeywordGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := articleMeta(tree)
	if err != nil {
		return nil, err
	}
	keywords := a.Keywords()
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), keywords) {
		group := meta.CreateElement("kwd-group")
		group.CreateAttr("xml:lang", lang)
		for _, k := range keywords[lang] {
			pipeline.SubElement(group, "kwd", k)
		}
	}
	return tree, nil
}

func xmlCitations(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	back, err := pipeline.Find(tree, "article/back")
	if err != nil {
		return nil, err
	}
	refList := back.CreateElement("ref-list")
	if err := citationPipeline.RunEach(refList, a.Citations()); err != nil {
		return nil, err
	}
	return tree, nil
}
