// Package document provides the normalized, read-only accessor layer over a
// raw legacy (ISIS-derived) article record.
//
// Every accessor may return an empty value: sparse records are the norm, and
// callers treat absence as a valid state rather than an error.
package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/lehigh-university-libraries/metaexport/value"
)

// ErrInvalidDocument is returned when raw input is not a legacy article record.
var ErrInvalidDocument = errors.New("invalid document")

// documentTypes maps legacy v71 codes to JATS article types.
var documentTypes = map[string]string{
	"ab": "abstract",
	"an": "announcement",
	"co": "article-commentary",
	"cr": "case-report",
	"ed": "editorial",
	"in": "editorial",
	"le": "letter",
	"oa": "research-article",
	"pr": "press-release",
	"ra": "review-article",
	"rc": "book-review",
	"rn": "brief-report",
	"sc": "rapid-communication",
	"tr": "research-article",
}

// Article wraps one raw legacy document.
type Article struct {
	raw     map[string]any
	article Record
	journal *Journal
	issue   *Issue
}

// LangDOI pairs a language code with the DOI registered for that variant.
type LangDOI struct {
	Language string
	DOI      string
}

// New wraps a decoded raw document.
func New(raw map[string]any) (*Article, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	article := recordOf(raw["article"])
	if article == nil {
		return nil, fmt.Errorf("%w: missing article record", ErrInvalidDocument)
	}

	a := &Article{raw: raw, article: article}
	a.journal = &Journal{record: recordOf(raw["title"])}
	a.issue = &Issue{record: recordOf(raw["issue"]), article: article}
	return a, nil
}

// Parse decodes raw JSON and wraps it.
func Parse(data []byte) (*Article, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return New(raw)
}

// Raw returns the underlying decoded document.
func (a *Article) Raw() map[string]any {
	return a.raw
}

// Journal returns the journal accessor. It is never nil.
func (a *Article) Journal() *Journal {
	return a.journal
}

// Issue returns the issue accessor. It is never nil.
func (a *Article) Issue() *Issue {
	return a.issue
}

// PublisherID returns the PID.
func (a *Article) PublisherID() string {
	if pid := strings.TrimSpace(value.Text(a.raw["code"])); pid != "" {
		return pid
	}
	return a.article.Value("v880")
}

// CollectionAcronym returns the collection the record belongs to.
func (a *Article) CollectionAcronym() string {
	return strings.TrimSpace(value.Text(a.raw["collection"]))
}

// ProcessingDate returns the raw processing date stamp.
func (a *Article) ProcessingDate() string {
	return strings.TrimSpace(value.Text(a.raw["processing_date"]))
}

// OriginalLanguage returns the language the article was written in.
func (a *Article) OriginalLanguage() string {
	return a.article.Value("v40")
}

// Languages returns every language the article is available in, sorted.
func (a *Article) Languages() []string {
	set := map[string]struct{}{}
	if lang := a.OriginalLanguage(); lang != "" {
		set[lang] = struct{}{}
	}
	for _, kind := range []string{"html", "pdf"} {
		for lang := range a.fulltexts(kind) {
			set[lang] = struct{}{}
		}
	}
	for lang := range a.bodies() {
		set[lang] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}

// OriginalTitle returns the title in the original language.
func (a *Article) OriginalTitle() string {
	lang := a.OriginalLanguage()
	var unlabeled string
	for _, occ := range a.article.Occurrences("v12") {
		title := value.Subfield(occ, "_")
		l := value.Subfield(occ, "l")
		if title == "" {
			continue
		}
		if l == lang && lang != "" {
			return title
		}
		if l == "" && unlabeled == "" {
			unlabeled = title
		}
	}
	return unlabeled
}

// TranslatedTitles returns titles keyed by language, excluding the original.
func (a *Article) TranslatedTitles() map[string]string {
	return a.translated("v12", "_")
}

// OriginalAbstract returns the abstract in the original language.
func (a *Article) OriginalAbstract() string {
	return a.article.byLanguage("v83", "a")[a.OriginalLanguage()]
}

// TranslatedAbstracts returns abstracts keyed by language, excluding the original.
func (a *Article) TranslatedAbstracts() map[string]string {
	return a.translated("v83", "a")
}

// Title returns the title in any language, original included.
func (a *Article) Title(lang string) string {
	if lang == a.OriginalLanguage() {
		return a.OriginalTitle()
	}
	return a.article.byLanguage("v12", "_")[lang]
}

// Abstract returns the abstract in any language, original included.
func (a *Article) Abstract(lang string) string {
	return a.article.byLanguage("v83", "a")[lang]
}

func (a *Article) translated(tag, marker string) map[string]string {
	all := a.article.byLanguage(tag, marker)
	delete(all, a.OriginalLanguage())
	if len(all) == 0 {
		return nil
	}
	return all
}

// Keywords returns keyword lists keyed by language, in source order.
func (a *Article) Keywords() map[string][]string {
	result := map[string][]string{}
	for _, occ := range a.article.Occurrences("v85") {
		lang := value.Subfield(occ, "l")
		kwd := value.Subfield(occ, "k")
		if lang == "" || kwd == "" {
			continue
		}
		result[lang] = append(result[lang], kwd)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Authors returns the article authors in source order.
func (a *Article) Authors() []Author {
	return authorsOf(a.article, "v10")
}

// Affiliations returns the affiliations as submitted.
func (a *Article) Affiliations() []Affiliation {
	var result []Affiliation
	for _, occ := range a.article.Occurrences("v70") {
		aff := Affiliation{
			Index:       value.Subfield(occ, "i"),
			Institution: value.Subfield(occ, "_"),
			Division:    value.Subfield(occ, "1"),
			City:        value.Subfield(occ, "c"),
			State:       value.Subfield(occ, "s"),
			Country:     value.Subfield(occ, "p"),
			Email:       value.Subfield(occ, "e"),
		}
		if aff.IsZero() {
			continue
		}
		result = append(result, aff)
	}
	return result
}

// NormalizedAffiliations returns the curated affiliations, which carry
// ISO-3166 country codes.
func (a *Article) NormalizedAffiliations() []Affiliation {
	var result []Affiliation
	for _, occ := range a.article.Occurrences("v240") {
		aff := Affiliation{
			Index:       value.Subfield(occ, "i"),
			Institution: value.Subfield(occ, "_"),
			CountryISO:  value.Subfield(occ, "p"),
		}
		if aff.IsZero() {
			continue
		}
		result = append(result, aff)
	}
	return result
}

// MixedAffiliations returns the submitted affiliations enriched with the
// normalized country code and institution of the matching curated entry.
func (a *Article) MixedAffiliations() []Affiliation {
	normalized := map[string]Affiliation{}
	for _, aff := range a.NormalizedAffiliations() {
		normalized[strings.ToUpper(aff.Index)] = aff
	}

	affs := a.Affiliations()
	for i, aff := range affs {
		norm, ok := normalized[strings.ToUpper(aff.Index)]
		if !ok {
			continue
		}
		affs[i].CountryISO = norm.CountryISO
		if aff.Institution == "" {
			affs[i].Institution = norm.Institution
		}
	}
	return affs
}

// Citations returns the bibliographic references in source order.
func (a *Article) Citations() []*Citation {
	items, _ := a.raw["citations"].([]any)
	var result []*Citation
	for _, item := range items {
		rec := recordOf(item)
		if rec == nil {
			continue
		}
		result = append(result, &Citation{record: rec, position: len(result) + 1})
	}
	return result
}

// DOI returns the DOI of the original language variant.
func (a *Article) DOI() string {
	if doi := strings.TrimSpace(value.Text(a.raw["doi"])); doi != "" {
		return doi
	}
	return a.article.Value("v237")
}

// DOIAndLang returns every language variant DOI, original first.
func (a *Article) DOIAndLang() []LangDOI {
	var result []LangDOI
	seen := map[string]bool{}
	if doi := a.DOI(); doi != "" {
		lang := a.OriginalLanguage()
		result = append(result, LangDOI{Language: lang, DOI: doi})
		seen[lang] = true
	}
	for _, occ := range a.article.Occurrences("v337") {
		lang := value.Subfield(occ, "l")
		doi := value.Subfield(occ, "d")
		if lang == "" || doi == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		result = append(result, LangDOI{Language: lang, DOI: doi})
	}
	original := a.OriginalLanguage()
	for i, ld := range result {
		if i > 0 && ld.Language == original {
			copy(result[1:i+1], result[:i])
			result[0] = ld
			break
		}
	}
	return result
}

// PublicationDate returns the stored YYYYMMDD publication date.
func (a *Article) PublicationDate() string {
	if d := a.article.Value("v65"); d != "" {
		return d
	}
	return a.issue.PublicationDate()
}

// ReceivedDate returns the stored YYYYMMDD receipt date.
func (a *Article) ReceivedDate() string {
	return a.article.Value("v112")
}

// AcceptedDate returns the stored YYYYMMDD acceptance date.
func (a *Article) AcceptedDate() string {
	return a.article.Value("v114")
}

// StartPage returns the first page.
func (a *Article) StartPage() string {
	if p := a.article.Sub("v14", "f"); p != "" {
		return p
	}
	first, _ := splitPages(a.article.Value("v14"))
	return first
}

// EndPage returns the last page.
func (a *Article) EndPage() string {
	if p := a.article.Sub("v14", "l"); p != "" {
		return p
	}
	_, last := splitPages(a.article.Value("v14"))
	return last
}

// Elocation returns the electronic location id.
func (a *Article) Elocation() string {
	return a.article.Sub("v14", "e")
}

// DocumentType returns the JATS article type, "undefined" when unknown.
func (a *Article) DocumentType() string {
	if t, ok := documentTypes[strings.ToLower(a.article.Value("v71"))]; ok {
		return t
	}
	return "undefined"
}

// SectionCode returns the table-of-contents section code.
func (a *Article) SectionCode() string {
	return a.article.Value("v49")
}

// Section returns the section title in the given language.
func (a *Article) Section(lang string) string {
	return a.issue.Section(a.SectionCode(), lang)
}

// OriginalSection returns the section title in the original language.
func (a *Article) OriginalSection() string {
	return a.Section(a.OriginalLanguage())
}

// Permissions returns the license information, or nil when unlicensed.
func (a *Article) Permissions() *Permissions {
	return newPermissions(value.Text(a.raw["license"]))
}

// HTMLURLs returns the full text HTML URLs keyed by language.
func (a *Article) HTMLURLs() map[string]string {
	return a.fulltexts("html")
}

// PDFURLs returns the full text PDF URLs keyed by language.
func (a *Article) PDFURLs() map[string]string {
	return a.fulltexts("pdf")
}

// HTMLURL returns the full text HTML URL of the original language.
func (a *Article) HTMLURL() string {
	return a.HTMLURLs()[a.OriginalLanguage()]
}

// OriginalHTML returns the full text body in the original language.
func (a *Article) OriginalHTML() string {
	return a.bodies()[a.OriginalLanguage()]
}

// TranslatedHTMLs returns full text bodies keyed by language, excluding the original.
func (a *Article) TranslatedHTMLs() map[string]string {
	bodies := a.bodies()
	delete(bodies, a.OriginalLanguage())
	if len(bodies) == 0 {
		return nil
	}
	return bodies
}

// Sponsors returns the funding agency names.
func (a *Article) Sponsors() []string {
	return a.article.Values("v58")
}

// ContractNumbers returns the grant/award numbers.
func (a *Article) ContractNumbers() []string {
	return a.article.Values("v60")
}

func (a *Article) fulltexts(kind string) map[string]string {
	ft, _ := a.raw["fulltexts"].(map[string]any)
	return stringMap(ft[kind])
}

func (a *Article) bodies() map[string]string {
	return stringMap(a.raw["body"])
}

func stringMap(v any) map[string]string {
	m, _ := v.(map[string]any)
	result := map[string]string{}
	for k, v := range m {
		if s := strings.TrimSpace(value.Text(v)); s != "" {
			result[k] = s
		}
	}
	return result
}

// splitPages splits a "first-last" range.
func splitPages(pages string) (string, string) {
	if pages == "" {
		return "", ""
	}
	first, last, _ := strings.Cut(pages, "-")
	return strings.TrimSpace(first), strings.TrimSpace(last)
}
