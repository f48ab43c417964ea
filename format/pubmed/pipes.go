package pubmed

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

const english = "en"

var publicationTypes = map[string]string{
	"case-report":    "Case Reports",
	"editorial":      "Editorial",
	"letter":         "Letter",
	"review-article": "Review",
}

var articlePipeline = pipeline.New("xmlpubmed",
	pipeline.NewPipe("SetupArticleSet", setupArticleSet),
	pipeline.NewPipe("Journal", xmlJournal),
	pipeline.NewPipe("PublisherName", journalLeaf("PublisherName", publisherName), pipeline.HasText(publisherName)),
	pipeline.NewPipe("JournalTitle", journalLeaf("JournalTitle", journalTitle), pipeline.HasText(journalTitle)),
	pipeline.NewPipe("Issn", journalLeaf("Issn", issn), pipeline.HasText(issn)),
	pipeline.NewPipe("Volume", journalLeaf("Volume", volume), pipeline.HasText(volume)),
	pipeline.NewPipe("Issue", journalLeaf("Issue", issue), pipeline.HasText(issue)),
	pipeline.NewPipe("PubDate", xmlPubDate,
		pipeline.HasText(func(a *document.Article) string { return helpers.ParseDate(a.PublicationDate()).Year })),
	pipeline.NewPipe("ArticleTitle", articleLeaf("ArticleTitle", articleTitle), pipeline.HasText(articleTitle)),
	pipeline.NewPipe("VernacularTitle", articleLeaf("VernacularTitle", (*document.Article).OriginalTitle),
		pipeline.HasText((*document.Article).OriginalTitle),
		pipeline.When(func(a *document.Article) bool { return a.OriginalLanguage() != english })),
	pipeline.NewPipe("FirstPage", articleLeaf("FirstPage", (*document.Article).StartPage), pipeline.HasText((*document.Article).StartPage)),
	pipeline.NewPipe("LastPage", articleLeaf("LastPage", (*document.Article).EndPage), pipeline.HasText((*document.Article).EndPage)),
	pipeline.NewPipe("ELocationID", xmlELocationID, pipeline.HasText((*document.Article).DOI)),
	pipeline.NewPipe("Language", xmlLanguage,
		pipeline.Has(func(a *document.Article) any { return languages(a) })),
	pipeline.NewPipe("AuthorList", xmlAuthorList,
		pipeline.Has(func(a *document.Article) any { return a.Authors() })),
	pipeline.NewPipe("PublicationType", articleLeaf("PublicationType", publicationType)),
	pipeline.NewPipe("ArticleIdList", xmlArticleIDList,
		pipeline.HasText(func(a *document.Article) string { return a.PublisherID() + a.DOI() })),
	pipeline.NewPipe("History", xmlHistory,
		pipeline.HasText(func(a *document.Article) string { return a.ReceivedDate() + a.AcceptedDate() })),
	pipeline.NewPipe("Abstract", xmlAbstract, pipeline.HasText(abstractLanguage)),
	pipeline.NewPipe("OtherAbstract", xmlOtherAbstract,
		pipeline.Has(func(a *document.Article) any { return otherAbstracts(a) })),
	pipeline.NewPipe("ObjectList", xmlObjectList,
		pipeline.Has(func(a *document.Article) any { return a.Keywords() })),
)

func publisherName(a *document.Article) string { return a.Journal().PublisherName() }
func journalTitle(a *document.Article) string  { return a.Journal().Title() }

func issn(a *document.Article) string {
	if issn := a.Journal().PrintISSN(); issn != "" {
		return issn
	}
	if issn := a.Journal().ElectronicISSN(); issn != "" {
		return issn
	}
	return a.Journal().ScieloISSN()
}

func volume(a *document.Article) string {
	return helpers.VolumeLabel(a.Issue().Volume(), helpers.Trimmed)
}

func issue(a *document.Article) string {
	return helpers.IssueLabelOf(a.Issue(), helpers.Trimmed)
}

// articleTitle prefers the English title.
func articleTitle(a *document.Article) string {
	if title := a.Title(english); title != "" {
		return title
	}
	return a.OriginalTitle()
}

// abstractLanguage picks English when available, else the original language.
func abstractLanguage(a *document.Article) string {
	if a.Abstract(english) != "" {
		return english
	}
	if a.OriginalAbstract() != "" {
		return a.OriginalLanguage()
	}
	return ""
}

func otherAbstracts(a *document.Article) map[string]string {
	main := abstractLanguage(a)
	result := map[string]string{}
	for lang, text := range a.TranslatedAbstracts() {
		result[lang] = text
	}
	if text := a.OriginalAbstract(); text != "" {
		result[a.OriginalLanguage()] = text
	}
	delete(result, main)
	return result
}

func languages(a *document.Article) []string {
	set := map[string]struct{}{}
	for _, lang := range a.Languages() {
		set[lang] = struct{}{}
	}
	return helpers.OrderedLanguages(a.OriginalLanguage(), set)
}

func publicationType(a *document.Article) string {
	if t, ok := publicationTypes[a.DocumentType()]; ok {
		return t
	}
	return "Journal Article"
}

func setupArticleSet(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
	root := pipeline.Root("ArticleSet")
	root.CreateElement("Article")
	return root, nil
}

func xmlJournal(_ *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	article.CreateElement("Journal")
	return tree, nil
}

func journalLeaf(tag string, get func(*document.Article) string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, tree *etree.Element) (*etree.Element, error) {
		journal, err := pipeline.Find(tree, "Article/Journal")
		if err != nil {
			return nil, err
		}
		pipeline.SubElement(journal, tag, get(a))
		return tree, nil
	}
}

func articleLeaf(tag string, get func(*document.Article) string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, tree *etree.Element) (*etree.Element, error) {
		article, err := pipeline.Find(tree, "Article")
		if err != nil {
			return nil, err
		}
		pipeline.SubElement(article, tag, get(a))
		return tree, nil
	}
}

func appendDate(parent *etree.Element, d helpers.Date) {
	if d.Year != "" {
		pipeline.SubElement(parent, "Year", d.Year)
	}
	if d.Month != "" {
		pipeline.SubElement(parent, "Month", d.Month)
	}
	if d.Day != "" {
		pipeline.SubElement(parent, "Day", d.Day)
	}
}

func xmlPubDate(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	journal, err := pipeline.Find(tree, "Article/Journal")
	if err != nil {
		return nil, err
	}
	pubDate := journal.CreateElement("PubDate")
	pubDate.CreateAttr("PubStatus", "ppublish")
	appendDate(pubDate, helpers.ParseDate(a.PublicationDate()))
	return tree, nil
}

func xmlELocationID(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(article, "ELocationID", a.DOI()).CreateAttr("EIdType", "doi")
	return tree, nil
}

func xmlLanguage(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	for _, lang := range languages(a) {
		pipeline.SubElement(article, "Language", strings.ToUpper(lang))
	}
	return tree, nil
}

func xmlAuthorList(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	affs := a.MixedAffiliations()
	list := article.CreateElement("AuthorList")
	for _, author := range a.Authors() {
		el := list.CreateElement("Author")
		pipeline.SubElement(el, "FirstName", author.GivenNames)
		pipeline.SubElement(el, "LastName", author.Surname)
		if aff := helpers.AuthorAffiliation(author, affs); aff != "" {
			pipeline.SubElement(el, "Affiliation", aff)
		}
		if author.ORCID != "" {
			pipeline.SubElement(el, "Identifier", author.ORCID).CreateAttr("Source", "ORCID")
		}
	}
	return tree, nil
}

func xmlArticleIDList(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	list := article.CreateElement("ArticleIdList")
	if pid := a.PublisherID(); pid != "" {
		pipeline.SubElement(list, "ArticleId", pid).CreateAttr("IdType", "pii")
	}
	if doi := a.DOI(); doi != "" {
		pipeline.SubElement(list, "ArticleId", doi).CreateAttr("IdType", "doi")
	}
	return tree, nil
}

func xmlHistory(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	history := article.CreateElement("History")
	for _, d := range []struct{ status, value string }{
		{"received", a.ReceivedDate()},
		{"accepted", a.AcceptedDate()},
	} {
		parsed := helpers.ParseDate(d.value)
		if parsed.IsZero() {
			continue
		}
		pubDate := history.CreateElement("PubDate")
		pubDate.CreateAttr("PubStatus", d.status)
		appendDate(pubDate, parsed)
	}
	return tree, nil
}

func xmlAbstract(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	pipeline.SubElement(article, "Abstract", helpers.StripHTML(a.Abstract(abstractLanguage(a))))
	return tree, nil
}

func xmlOtherAbstract(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	others := otherAbstracts(a)
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), others) {
		el := pipeline.SubElement(article, "OtherAbstract", helpers.StripHTML(others[lang]))
		el.CreateAttr("Language", strings.ToUpper(lang))
	}
	return tree, nil
}

func xmlObjectList(a *document.Article, tree *etree.Element) (*etree.Element, error) {
	article, err := pipeline.Find(tree, "Article")
	if err != nil {
		return nil, err
	}
	keywords := a.Keywords()
	list := article.CreateElement("ObjectList")
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), keywords) {
		for _, k := range keywords[lang] {
			obj := list.CreateElement("Object")
			obj.CreateAttr("Type", "keyword")
			pipeline.SubElement(obj, "Param", k).CreateAttr("Name", "value")
		}
	}
	return tree, nil
}
