package iahx

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
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

var docPipeline = pipeline.New("xmliahx",
	pipeline.NewPipe("SetupDocument", setupDocument),
	pipeline.NewPipe("Id", single("id", docID), hasText((*document.Article).PublisherID)),
	pipeline.NewPipe("DocumentType", single("type", (*document.Article).DocumentType)),
	pipeline.NewPipe("Collection", single("in", (*document.Article).CollectionAcronym),
		hasText((*document.Article).CollectionAcronym)),
	pipeline.NewPipe("URL", single("ur", (*document.Article).HTMLURL), hasText((*document.Article).HTMLURL)),
	pipeline.NewPipe("JournalAbbrevTitle", single("ta", abbrevTitle), hasText(abbrevTitle)),
	pipeline.NewPipe("JournalTitle", single("journal_title", journalTitle), hasText(journalTitle)),
	pipeline.NewPipe("OriginalTitle", single("ti", (*document.Article).OriginalTitle),
		hasText((*document.Article).OriginalTitle)),
	pipeline.NewPipe("Titles", perLanguage("ti_", titles), has(func(a *document.Article) any { return titles(a) })),
	pipeline.NewPipe("Authors", multi("au", authorNames), has(func(a *document.Article) any { return authorNames(a) })),
	pipeline.NewPipe("AffiliationInstitution", multi("aff_institution", institutions),
		has(func(a *document.Article) any { return institutions(a) })),
	pipeline.NewPipe("AffiliationCountry", multi("aff_country", countries),
		has(func(a *document.Article) any { return countries(a) })),
	pipeline.NewPipe("Languages", multi("la", (*document.Article).Languages),
		has(func(a *document.Article) any { return a.Languages() })),
	pipeline.NewPipe("FulltextHTML", perLanguage("fulltext_html_", (*document.Article).HTMLURLs),
		has(func(a *document.Article) any { return a.HTMLURLs() })),
	pipeline.NewPipe("FulltextPDF", perLanguage("fulltext_pdf_", (*document.Article).PDFURLs),
		has(func(a *document.Article) any { return a.PDFURLs() })),
	pipeline.NewPipe("PublicationDate", single("da", yearMonth), hasText(yearMonth)),
	pipeline.NewPipe("YearCluster", single("year_cluster", year), hasText(year)),
	pipeline.NewPipe("Abstracts", perLanguage("ab_", abstracts), has(func(a *document.Article) any { return abstracts(a) })),
	pipeline.NewPipe("Keywords", xmlKeywords, has(func(a *document.Article) any { return a.Keywords() })),
	pipeline.NewPipe("DOI", single("doi", (*document.Article).DOI), hasText((*document.Article).DOI)),
	pipeline.NewPipe("ISSN", multi("issn", issns), has(func(a *document.Article) any { return issns(a) })),
	pipeline.NewPipe("Volume", single("volume", volume), hasText(volume)),
	pipeline.NewPipe("Issue", single("issue", number), hasText(number)),
	pipeline.NewPipe("SupplementVolume", single("supplement_volume", supplVolume), hasText(supplVolume)),
	pipeline.NewPipe("SupplementIssue", single("supplement_issue", supplNumber), hasText(supplNumber)),
	pipeline.NewPipe("StartPage", single("start_page", (*document.Article).StartPage), hasText((*document.Article).StartPage)),
	pipeline.NewPipe("EndPage", single("end_page", (*document.Article).EndPage), hasText((*document.Article).EndPage)),
	pipeline.NewPipe("Pages", single("pg", pages), hasText(pages)),
	pipeline.NewPipe("WOKSubjectCategories", multi("wok_subject_categories", wosSubjects),
		has(func(a *document.Article) any { return wosSubjects(a) })),
	pipeline.NewPipe("WOKCitationIndex", multi("wok_citation_index", wosIndexes),
		has(func(a *document.Article) any { return wosIndexes(a) })),
	pipeline.NewPipe("SubjectArea", multi("subject_area", subjectAreas),
		has(func(a *document.Article) any { return subjectAreas(a) })),
	pipeline.NewPipe("License", xmlLicense, has(func(a *document.Article) any { return a.Permissions() })),
	pipeline.NewPipe("Sponsor", multi("sponsor", (*document.Article).Sponsors),
		has(func(a *document.Article) any { return a.Sponsors() })),
	pipeline.NewPipe("ProcessingDate", single("processing_date", processingDate), hasText(processingDate)),
)

func docID(a *document.Article) string {
	if c := a.CollectionAcronym(); c != "" {
		return a.PublisherID() + "-" + c
	}
	return a.PublisherID()
}

func abbrevTitle(a *document.Article) string     { return a.Journal().AbbreviatedTitle() }
func journalTitle(a *document.Article) string    { return a.Journal().Title() }
func issns(a *document.Article) []string         { return a.Journal().ISSNs() }
func wosSubjects(a *document.Article) []string   { return a.Journal().WOSSubjectAreas() }
func wosIndexes(a *document.Article) []string    { return a.Journal().WOSCitationIndexes() }
func subjectAreas(a *document.Article) []string { return a.Journal().SubjectAreas() }

func volume(a *document.Article) string      { return a.Issue().Volume() }
func number(a *document.Article) string      { return a.Issue().Number() }
func supplVolume(a *document.Article) string { return a.Issue().SupplementVolume() }
func supplNumber(a *document.Article) string { return a.Issue().SupplementNumber() }

func yearMonth(a *document.Article) string {
	return helpers.ParseDate(a.PublicationDate()).YearMonth()
}

func year(a *document.Article) string {
	return helpers.ParseDate(a.PublicationDate()).Year
}

func pages(a *document.Article) string {
	first, last := a.StartPage(), a.EndPage()
	if first == "" || last == "" {
		return first + last
	}
	return first + "-" + last
}

// processingDate normalizes the stored processing date to YYYY-MM-DD.
// Unparseable values are dropped.
func processingDate(a *document.Article) string {
	raw := strings.TrimSpace(a.ProcessingDate())
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func titles(a *document.Article) map[string]string {
	all := map[string]string{}
	for lang, title := range a.TranslatedTitles() {
		all[lang] = title
	}
	if t := a.OriginalTitle(); t != "" {
		all[a.OriginalLanguage()] = t
	}
	return all
}

func abstracts(a *document.Article) map[string]string {
	all := map[string]string{}
	for lang, text := range a.TranslatedAbstracts() {
		all[lang] = helpers.StripHTML(text)
	}
	if text := a.OriginalAbstract(); text != "" {
		all[a.OriginalLanguage()] = helpers.StripHTML(text)
	}
	return all
}

func authorNames(a *document.Article) []string {
	var names []string
	for _, author := range a.Authors() {
		if name := author.FullName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func institutions(a *document.Article) []string {
	var result []string
	for _, aff := range a.MixedAffiliations() {
		if aff.Institution != "" {
			result = append(result, aff.Institution)
		}
	}
	return result
}

// countries returns the distinct affiliation countries, first seen first.
func countries(a *document.Article) []string {
	var result []string
	seen := map[string]bool{}
	for _, aff := range a.MixedAffiliations() {
		if aff.Country == "" || seen[aff.Country] {
			continue
		}
		seen[aff.Country] = true
		result = append(result, aff.Country)
	}
	return result
}

func setupDocument(_ *document.Article, _ *etree.Element) (*etree.Element, error) {
	return pipeline.Root("doc"), nil
}

func field(doc *etree.Element, name, text string) {
	pipeline.SubElement(doc, "field", text).CreateAttr("name", name)
}

func single(name string, get func(*document.Article) string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, doc *etree.Element) (*etree.Element, error) {
		field(doc, name, get(a))
		return doc, nil
	}
}

func multi(name string, get func(*document.Article) []string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, doc *etree.Element) (*etree.Element, error) {
		for _, v := range get(a) {
			field(doc, name, v)
		}
		return doc, nil
	}
}

// perLanguage writes one field per language, named prefix+lang, original
// language first.
func perLanguage(prefix string, get func(*document.Article) map[string]string) pipeline.TransformFunc[*document.Article] {
	return func(a *document.Article, doc *etree.Element) (*etree.Element, error) {
		all := get(a)
		for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), all) {
			field(doc, prefix+lang, all[lang])
		}
		return doc, nil
	}
}

func xmlKeywords(a *document.Article, doc *etree.Element) (*etree.Element, error) {
	keywords := a.Keywords()
	for _, lang := range helpers.OrderedLanguages(a.OriginalLanguage(), keywords) {
		for _, k := range keywords[lang] {
			field(doc, "keyword_"+lang, k)
		}
	}
	return doc, nil
}

func xmlLicense(a *document.Article, doc *etree.Element) (*etree.Element, error) {
	p := a.Permissions()
	field(doc, "use_license", p.ID)
	field(doc, "use_license_uri", p.URL)
	return doc, nil
}
