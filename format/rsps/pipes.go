package rsps

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

type cond = pipeline.Precondition[*document.Article]

func hasText(get func(*document.Article) string) cond {
	return pipeline.HasText(get)
}

func has(get func(*document.Article) any) cond {
	return pipeline.Has(get)
}

func articlePipeline(opts *format.Options) *pipeline.Pipeline[*document.Article] {
	return pipeline.New("xmlrsps",
		pipeline.NewPipe("SetupArticle", setupArticle(opts.SPSVersion)),
		pipeline.NewPipe("Article", xmlArticle),
		pipeline.NewPipe("Front", xmlFront),
		pipeline.NewPipe("JournalId", xmlJournalID,
			hasText(func(a *document.Article) string { return a.Journal().Acronym() })),
		pipeline.NewPipe("JournalTitleGroup", xmlJournalTitleGroup,
			hasText(func(a *document.Article) string { return a.Journal().Title() + a.Journal().AbbreviatedTitle() })),
		pipeline.NewPipe("ISSN", xmlISSN,
			has(func(a *document.Article) any { return a.Journal().ISSNs() })),
		pipeline.NewPipe("Publisher", xmlPublisher,
			hasText(func(a *document.Article) string { return a.Journal().PublisherName() })),
		pipeline.NewPipe("ArticleIdPublisher", xmlArticleIDPublisher, hasText((*document.Article).PublisherID)),
		pipeline.NewPipe("ArticleIdDOI", xmlArticleIDDOI, hasText((*document.Article).DOI)),
		pipeline.NewPipe("ArticleCategories", xmlArticleCategories, hasText((*document.Article).OriginalSection)),
		pipeline.NewPipe("TitleGroup", xmlTitleGroup),
		pipeline.NewPipe("TranslatedTitleGroup", xmlTranslatedTitleGroup,
			has(func(a *document.Article) any { return a.TranslatedTitles() })),
		pipeline.NewPipe("ContribGroup", xmlContribGroup,
			has(func(a *document.Article) any { return a.Authors() })),
		pipeline.NewPipe("Affiliation", xmlAffiliation,
			has(func(a *document.Article) any { return a.MixedAffiliations() })),
		pipeline.NewPipe("PubDate", xmlPubDate,
			hasText(func(a *document.Article) string { return helpers.ParseDate(a.PublicationDate()).Year })),
		pipeline.NewPipe("IssueInfo", xmlIssueInfo,
			hasText(func(a *document.Article) string { return volume(a) + issueLabel(a) })),
		pipeline.NewPipe("Elocation", xmlElocation, hasText((*document.Article).Elocation)),
		pipeline.NewPipe("Pages", xmlPages,
			hasText(func(a *document.Article) string { return a.StartPage() + a.EndPage() })),
		pipeline.NewPipe("History", xmlHistory,
			hasText(func(a *document.Article) string { return a.ReceivedDate() + a.AcceptedDate() })),
		pipeline.NewPipe("Permissions", xmlPermissions,
			has(func(a *document.Article) any { return a.Permissions() })),
		pipeline.NewPipe("SelfURI", xmlSelfURI,
			has(func(a *document.Article) any { return len(a.HTMLURLs()) + len(a.PDFURLs()) > 0 })),
		pipeline.NewPipe("Abstracts", xmlAbstracts,
			hasText(func(a *document.Article) string { return a.OriginalAbstract() + concat(a.TranslatedAbstracts()) })),
		pipeline.NewPipe("Keywords", xmlKeywords,
			has(func(a *document.Article) any { return a.Keywords() })),
		pipeline.NewPipe("Counts", xmlCounts),
		pipeline.NewPipe("Body", xmlBody, hasText((*document.Article).OriginalHTML)),
		pipeline.NewPipe("RefList", xmlRefList,
			has(func(a *document.Article) any { return a.Citations() })),
		pipeline.NewPipe("SubArticle", xmlSubArticle,
			has(func(a *document.Article) any { return a.TranslatedHTMLs() })),
	)
}

func volume(a *document.Article) string {
	return helpers.VolumeLabel(a.Issue().Volume(), helpers.Trimmed)
}

func issueLabel(a *document.Article) string {
	return helpers.IssueLabelOf(a.Issue(), helpers.Trimmed)
}

func concat(m map[string]string) string {
	var s string
	for _, v := range m {
		s += v
	}
	return s
}

// subArticleLanguage reports whether lang is rendered as a sub-article, in
// which case its titles, abstracts and keywords live there instead of in
// trans- elements of the main article.
func subArticleLanguage(a *document.Article, lang string) bool {
	_, ok := a.TranslatedHTMLs()[lang]
	return ok
}

func setupArticle(spsVersion string) pipeline.TransformFunc[*document.Article] {
	return func(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
		root := pipeline.Root("article")
		pipeline.Attr(root,
			"xmlns:xlink", "http://www.w3.org/1999/xlink",
			"xmlns:mml", "http://www.w3.org/1998/Math/MathML",
			"dtd-version", "1.0",
			"specific-use", spsVersion,
		)
		return root, nil
	}
}

func xmlArticle(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	pipeline.Attr(tree,
		"article-type", a.DocumentType(),
		"xml:lang", a.OriginalLanguage(),
	)
	return tree, nil
}

func xmlFront(_ *document.Article, tree *etree.Element) (*etree.Element, error) {
	front := tree.CreateElement("front")
	front.CreateElement("journal-meta")
	front.CreateElement("article-meta")
	return tree, nil
}

func xmlJournalID(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/journal-meta")
	if err != nil {
		return nil, err
	}
	id := pipeline.SubElement(meta, "journal-id", a.Journal().Acronym())
	id.CreateAttr("journal-id-type", "publisher-id")
	return tree, nil
}

func xmlJournalTitleGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/journal-meta")
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("journal-title-group")
	if title := a.Journal().Title(); title != "" {
		pipeline.SubElement(group, "journal-title", title)
	}
	if abbrev := a.Journal().AbbreviatedTitle(); abbrev != "" {
		pipeline.Attr(pipeline.SubElement(group, "abbrev-journal-title", abbrev), "abbrev-type", "publisher")
	}
	return tree, nil
}

func xmlISSN(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/journal-meta")
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
	meta, err := pipeline.Find(tree, "front/journal-meta")
	if err != nil {
		return nil, err
	}
	publisher := meta.CreateElement("publisher")
	pipeline.SubElement(publisher, "publisher-name", a.Journal().PublisherName())
	if loc := a.Journal().PublisherLocation(); loc != "" {
		pipeline.SubElement(publisher, "publisher-loc", loc)
	}
	return tree, nil
}

func xmlArticleIDPublisher(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(meta, "article-id", a.PublisherID()), "pub-id-type", "publisher-id")
	return tree, nil
}

func xmlArticleIDDOI(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(meta, "article-id", a.DOI()), "pub-id-type", "doi")
	return tree, nil
}

func xmlArticleCategories(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("article-categories").CreateElement("subj-group")
	group.CreateAttr("subj-group-type", "heading")
	pipeline.SubElement(group, "subject", a.OriginalSection())
	return tree, nil
}

func xmlTitleGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("title-group")
	if title := a.OriginalTitle(); title != "" {
		pipeline.SubElement(group, "article-title", title)
	}
	return tree, nil
}

func xmlTranslatedTitleGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	group, err := pipeline.Find(tree, "front/article-meta/title-group")
	if err != nil {
		return nil, err
	}
	titles := a.TranslatedTitles()
	for _, lang := range helpers.OrderedLanguages("", titles) {
		if subArticleLanguage(a, lang) {
			continue
		}
		trans := group.CreateElement("trans-title-group")
		trans.CreateAttr("xml:lang", lang)
		pipeline.SubElement(trans, "trans-title", titles[lang])
	}
	return tree, nil
}

func xmlContribGroup(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	group := meta.CreateElement("contrib-group")
	for _, author := range a.Authors() {
		contrib := group.CreateElement("contrib")
		contrib.CreateAttr("contrib-type", "author")
		if author.ORCID != "" {
			pipeline.Attr(pipeline.SubElement(contrib, "contrib-id", author.ORCID), "contrib-id-type", "orcid")
		}
		name := contrib.CreateElement("name")
		if author.Surname != "" {
			pipeline.SubElement(name, "surname", author.Surname)
		}
		if author.GivenNames != "" {
			pipeline.SubElement(name, "given-names", author.GivenNames)
		}
		for _, code := range author.Xref {
			xref := contrib.CreateElement("xref")
			xref.CreateAttr("ref-type", "aff")
			xref.CreateAttr("rid", helpers.UpperID(code))
		}
	}
	return tree, nil
}

func xmlAffiliation(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	for _, aff := range a.MixedAffiliations() {
		el := meta.CreateElement("aff")
		pipeline.Attr(el, "id", helpers.UpperID(aff.Index))
		if aff.Institution != "" {
			pipeline.Attr(pipeline.SubElement(el, "institution", aff.Institution), "content-type", "orgname")
		}
		if aff.Division != "" {
			pipeline.Attr(pipeline.SubElement(el, "institution", aff.Division), "content-type", "orgdiv1")
		}
		if addr := aff.AddrLine(); addr != "" {
			pipeline.SubElement(el, "addr-line", addr)
		}
		if aff.Country != "" || aff.CountryISO != "" {
			pipeline.Attr(pipeline.SubElement(el, "country", aff.Country), "country", aff.CountryISO)
		}
		if aff.Email != "" {
			pipeline.SubElement(el, "email", aff.Email)
		}
	}
	return tree, nil
}

// appendDate writes day, month and year children, skipping unknown parts.
func appendDate(parent *etree.Element, d helpers.Date) {
	if d.Day != "" {
		pipeline.SubElement(parent, "day", d.Day)
	}
	if d.Month != "" {
		pipeline.SubElement(parent, "month", d.Month)
	}
	if d.Year != "" {
		pipeline.SubElement(parent, "year", d.Year)
	}
}

func xmlPubDate(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	pubDate := meta.CreateElement("pub-date")
	pubDate.CreateAttr("pub-type", "epub-ppub")
	appendDate(pubDate, helpers.ParseDate(a.PublicationDate()))
	return tree, nil
}

func xmlIssueInfo(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	if v := volume(a); v != "" {
		pipeline.SubElement(meta, "volume", v)
	}
	if label := issueLabel(a); label != "" {
		pipeline.SubElement(meta, "issue", label)
	}
	return tree, nil
}

func xmlElocation(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(meta, "elocation-id", a.Elocation())
	return tree, nil
}

func xmlPages(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	if p := a.StartPage(); p != "" {
		pipeline.SubElement(meta, "fpage", p)
	}
	if p := a.EndPage(); p != "" {
		pipeline.SubElement(meta, "lpage", p)
	}
	return tree, nil
}

func xmlHistory(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	history := meta.CreateElement("history")
	for _, d := range []struct{ kind, value string }{
		{"received", a.ReceivedDate()},
		{"accepted", a.AcceptedDate()},
	} {
		parsed := helpers.ParseDate(d.value)
		if parsed.IsZero() {
			continue
		}
		el := history.CreateElement("date")
		el.CreateAttr("date-type", d.kind)
		appendDate(el, parsed)
	}
	return tree, nil
}

func xmlPermissions(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	p := a.Permissions()
	license := meta.CreateElement("permissions").CreateElement("license")
	pipeline.Attr(license,
		"license-type", "open-access",
		"xlink:href", p.URL,
		"xml:lang", "en",
	)
	pipeline.SubElement(license, "license-p", p.Text)
	return tree, nil
}

func xmlSelfURI(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	lang := a.OriginalLanguage()
	for _, kind := range []struct {
		urls        map[string]string
		contentType string
	}{
		{a.HTMLURLs(), "text/html"},
		{a.PDFURLs(), "application/pdf"},
	} {
		for _, l := range helpers.OrderedLanguages(lang, kind.urls) {
			uri := pipeline.SubElement(meta, "self-uri", "")
			pipeline.Attr(uri,
				"xlink:href", kind.urls[l],
				"content-type", kind.contentType,
				"xml:lang", l,
			)
		}
	}
	return tree, nil
}

func paragraphs(parent *etree.Element, html string) {
	for _, p := range helpers.Paragraphs(html) {
		pipeline.SubElement(parent, "p", p)
	}
}

func xmlAbstracts(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	if text := a.OriginalAbstract(); text != "" {
		abstract := meta.CreateElement("abstract")
		abstract.CreateAttr("xml:lang", a.OriginalLanguage())
		paragraphs(abstract, text)
	}
	abstracts := a.TranslatedAbstracts()
	for _, lang := range helpers.OrderedLanguages("", abstracts) {
		if subArticleLanguage(a, lang) {
			continue
		}
		trans := meta.CreateElement("trans-abstract")
		trans.CreateAttr("xml:lang", lang)
		paragraphs(trans, abstracts[lang])
	}
	return tree, nil
}

func kwdGroup(parent *etree.Element, lang string, kwds []string) {
	group := parent.CreateElement("kwd-group")
	pipeline.Attr(group, "xml:lang", lang, "kwd-group-type", "author-generated")
	for _, k := range kwds {
		pipeline.SubElement(group, "kwd", k)
	}
}

func xmlKeywords(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	keywords := a.Keywords()
	original := a.OriginalLanguage()
	for _, lang := range helpers.OrderedLanguages(original, keywords) {
		if lang != original && subArticleLanguage(a, lang) {
			continue
		}
		kwdGroup(meta, lang, keywords[lang])
	}
	return tree, nil
}

func xmlCounts(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	meta, err := pipeline.Find(tree, "front/article-meta")
	if err != nil {
		return nil, err
	}
	counts := meta.CreateElement("counts")
	counts.CreateElement("ref-count").CreateAttr("count", strconv.Itoa(len(a.Citations())))
	pages := helpers.PageCount(a.StartPage(), a.EndPage())
	counts.CreateElement("page-count").CreateAttr("count", strconv.Itoa(pages))
	return tree, nil
}

func xmlBody(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	body := tree.CreateElement("body")
	paragraphs(body, a.OriginalHTML())
	return tree, nil
}

func xmlRefList(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	refList := tree.CreateElement("back").CreateElement("ref-list")
	if err := citationPipeline().RunEach(refList, a.Citations()); err != nil {
		return nil, err
	}
	return tree, nil
}

func xmlSubArticle(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	bodies := a.TranslatedHTMLs()
	keywords := a.Keywords()
	for _, lang := range helpers.OrderedLanguages("", bodies) {
		sub := tree.CreateElement("sub-article")
		pipeline.Attr(sub,
			"article-type", "translation",
			"id", "TR"+lang,
			"xml:lang", lang,
		)
		stub := sub.CreateElement("front-stub")
		if title := a.Title(lang); title != "" {
			pipeline.SubElement(stub.CreateElement("title-group"), "article-title", title)
		}
		if abstract := a.Abstract(lang); abstract != "" {
			el := stub.CreateElement("abstract")
			el.CreateAttr("xml:lang", lang)
			paragraphs(el, abstract)
		}
		if kwds := keywords[lang]; len(kwds) > 0 {
			kwdGroup(stub, lang, kwds)
		}
		paragraphs(sub.CreateElement("body"), bodies[lang])
	}
	return tree, nil
}
