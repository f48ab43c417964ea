package crossref

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/document/documenttest"
	"github.com/lehigh-university-libraries/metaexport/format"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

func fixedOptions() *format.Options {
	opts := format.NewOptions()
	opts.Clock = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	opts.BatchID = func() string { return "batch" }
	return opts
}

func export(t *testing.T, raw map[string]any) []byte {
	t.Helper()
	doc, err := document.New(raw)
	if err != nil {
		t.Fatalf("document.New() error = %v", err)
	}
	out, err := (&Format{}).Export(doc, fixedOptions())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	return out
}

func parse(t *testing.T, out []byte) *etree.Element {
	t.Helper()
	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, out)
	}
	root := parsed.Root()
	if root == nil || root.Tag != "doi_batch" {
		t.Fatalf("root is not doi_batch:\n%s", out)
	}
	return root
}

func TestHead(t *testing.T) {
	root := parse(t, export(t, documenttest.Article()))

	if got := root.SelectAttrValue("version", ""); got != Version {
		t.Errorf("version = %q, want %q", got, Version)
	}
	for _, ns := range []string{"xmlns:jats", "xmlns:ai", "xmlns:fr", "xmlns:rel"} {
		if root.SelectAttr(ns) == nil {
			t.Errorf("%s missing", ns)
		}
	}

	checks := map[string]string{
		"head/doi_batch_id":                                 "S0034-89102010000400007-batch",
		"head/timestamp":                                    "20240102030405",
		"head/depositor/depositor_name":                     "SciELO",
		"head/depositor/email_address":                      "crossref@scielo.org",
		"head/registrant":                                   "SciELO",
		"body/journal/journal_metadata/full_title":          "Revista de Saúde Pública",
		"body/journal/journal_metadata/abbrev_title":        "Rev. Saúde Pública",
		"body/journal/journal_issue/journal_volume/volume":  "44",
		"body/journal/journal_issue/issue":                  "4",
		"body/journal/journal_issue/publication_date/year":  "2010",
		"body/journal/journal_issue/publication_date/month": "08",
	}
	for path, want := range checks {
		if got := textAt(root, path); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	var issns []string
	for _, el := range root.FindElements("body/journal/journal_metadata/issn") {
		issns = append(issns, el.SelectAttrValue("media_type", "")+":"+el.Text())
	}
	if diff := cmp.Diff([]string{"print:0034-8910", "electronic:1518-8787"}, issns); diff != "" {
		t.Errorf("issn mismatch (-want +got):\n%s", diff)
	}
}

func textAt(root *etree.Element, path string) string {
	return pipeline.Text(root, path)
}

func TestLanguageVariants(t *testing.T) {
	root := parse(t, export(t, documenttest.Article()))
	articles := root.FindElements("body/journal/journal_article")
	if len(articles) != 2 {
		t.Fatalf("journal_article count = %d, want 2", len(articles))
	}

	var langs, dois, titles []string
	for _, a := range articles {
		langs = append(langs, a.SelectAttrValue("language", ""))
		dois = append(dois, textAt(a, "doi_data/doi"))
		titles = append(titles, textAt(a, "titles/title"))
	}
	if diff := cmp.Diff([]string{"pt", "en"}, langs); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	wantDOIs := []string{"10.1590/S0034-89102010000400007", "10.1590/S0034-89102010000400007.en"}
	if diff := cmp.Diff(wantDOIs, dois); diff != "" {
		t.Errorf("dois mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Perfil de saúde de idosos", "Health profile of the elderly"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}

	main := articles[0].FindElement("rel:program/rel:related_item")
	if main == nil {
		t.Fatal("main variant has no related_item")
	}
	if got := textAt(main, "rel:description"); got != "Health profile of the elderly" {
		t.Errorf("main description = %q", got)
	}
	rel := main.FindElement("rel:intra_work_relation")
	if got := rel.SelectAttrValue("relationship-type", ""); got != "isTranslationOf" {
		t.Errorf("main relationship-type = %q", got)
	}
	if got := rel.Text(); got != wantDOIs[1] {
		t.Errorf("main relation target = %q", got)
	}

	rel = articles[1].FindElement("rel:program/rel:related_item/rel:intra_work_relation")
	if rel == nil {
		t.Fatal("translation has no relation")
	}
	if got := rel.SelectAttrValue("relationship-type", ""); got != "hasTranslation" {
		t.Errorf("translation relationship-type = %q", got)
	}
	if got := rel.Text(); got != wantDOIs[0] {
		t.Errorf("translation relation target = %q", got)
	}

	if got := textAt(articles[1], "doi_data/resource"); got != "http://www.scielo.br/scielo.php?script=sci_arttext&pid=S0034-89102010000400007&tlng=en" {
		t.Errorf("en resource = %q", got)
	}
	if got := textAt(articles[1], "doi_data/collection/item/resource"); got != "http://www.scielo.br/pdf/rsp/v44n4/en_07.pdf" {
		t.Errorf("en pdf = %q", got)
	}
}

func TestJournalArticle(t *testing.T) {
	root := parse(t, export(t, documenttest.Article()))
	article := root.FindElement("body/journal/journal_article")

	people := article.FindElements("contributors/person_name")
	if len(people) != 3 {
		t.Fatalf("person_name count = %d, want 3", len(people))
	}
	if got := people[0].SelectAttrValue("sequence", ""); got != "first" {
		t.Errorf("first sequence = %q", got)
	}
	if got := people[1].SelectAttrValue("sequence", ""); got != "additional" {
		t.Errorf("second sequence = %q", got)
	}
	if got := textAt(people[0], "ORCID"); got != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("ORCID = %q", got)
	}
	want := "Universidade Federal de Pelotas, Pelotas, RS, Brasil; Universidade Federal de Minas Gerais, Belo Horizonte, Brasil"
	if got := textAt(people[1], "affiliation"); got != want {
		t.Errorf("affiliation = %q, want %q", got, want)
	}

	abstract := article.FindElement("jats:abstract")
	if abstract == nil {
		t.Fatal("jats:abstract missing")
	}
	if got := abstract.SelectAttrValue("xml:lang", ""); got != "pt" {
		t.Errorf("abstract lang = %q", got)
	}
	if got := textAt(abstract, "jats:p"); got != "OBJETIVO: Analisar o perfil de saúde." {
		t.Errorf("abstract = %q", got)
	}

	checks := map[string]string{
		"pages/first_page":          "639",
		"pages/last_page":           "649",
		"publication_date/year":     "2010",
		"publisher_item/identifier": "S0034-89102010000400007",
		"ai:program/ai:license_ref": "http://creativecommons.org/licenses/by/4.0/",
	}
	for path, want := range checks {
		if got := textAt(article, path); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	var funding []string
	for _, el := range article.FindElements("fr:program/fr:assertion/fr:assertion") {
		funding = append(funding, el.SelectAttrValue("name", "")+"="+el.Text())
	}
	wantFunding := []string{
		"funder_name=Conselho Nacional de Desenvolvimento Científico e Tecnológico",
		"award_number=402355/2005-0",
	}
	if diff := cmp.Diff(wantFunding, funding); diff != "" {
		t.Errorf("fundref mismatch (-want +got):\n%s", diff)
	}
}

func TestCitationList(t *testing.T) {
	root := parse(t, export(t, documenttest.Article()))
	citations := root.FindElement("body/journal/journal_article").FindElements("citation_list/citation")
	if len(citations) != 23 {
		t.Fatalf("citation count = %d, want 23", len(citations))
	}
	for i, c := range citations[:3] {
		want := "ref" + strconv.Itoa(i+1)
		if got := c.SelectAttrValue("key", ""); got != want {
			t.Errorf("citation[%d] key = %q, want %q", i, got, want)
		}
	}

	var tags []string
	for _, child := range citations[0].ChildElements() {
		tags = append(tags, child.Tag)
	}
	wantTags := []string{"journal_title", "author", "volume", "issue", "first_page", "cYear", "doi", "article_title", "unstructured_citation"}
	if diff := cmp.Diff(wantTags, tags); diff != "" {
		t.Errorf("article citation children mismatch (-want +got):\n%s", diff)
	}
	if got := textAt(citations[0], "unstructured_citation"); got != "Silva J, Souza M. Reference article 1. Rev Saude Publica. 2006;40(2):100-10." {
		t.Errorf("unstructured_citation = %q", got)
	}

	if got := textAt(citations[1], "volume_title"); got != "Book title 2" {
		t.Errorf("book volume_title = %q", got)
	}
	if citations[1].FindElement("journal_title") != nil {
		t.Error("book citation carries journal_title")
	}
}

func TestSparseDeposit(t *testing.T) {
	root := parse(t, export(t, documenttest.Minimal()))
	if got := textAt(root, "head/doi_batch_id"); got != "S0000-00002000000000001-batch" {
		t.Errorf("doi_batch_id = %q", got)
	}
	var tags []string
	for _, child := range root.FindElement("body/journal").ChildElements() {
		tags = append(tags, child.Tag)
	}
	if diff := cmp.Diff([]string{"journal_metadata"}, tags); diff != "" {
		t.Errorf("sparse journal children mismatch (-want +got):\n%s", diff)
	}
}

func TestDeterministic(t *testing.T) {
	first := export(t, documenttest.Article())
	second := export(t, documenttest.Article())
	if !bytes.Equal(first, second) {
		t.Error("repeated exports differ")
	}
}

func TestOriginalVariantFirstWithoutArticleDOI(t *testing.T) {
	raw := documenttest.Article()
	article := raw["article"].(map[string]any)
	delete(article, "v237")
	article["v337"] = []any{
		map[string]any{"d": "10.1590/X.en", "l": "en"},
		map[string]any{"d": "10.1590/X", "l": "pt"},
	}

	root := parse(t, export(t, raw))
	articles := root.FindElements("body/journal/journal_article")
	if len(articles) != 2 {
		t.Fatalf("journal_article count = %d, want 2", len(articles))
	}

	var got []string
	for _, a := range articles {
		rel := a.FindElement("rel:program/rel:related_item/rel:intra_work_relation")
		if rel == nil {
			t.Fatalf("%s variant has no relation", a.SelectAttrValue("language", ""))
		}
		got = append(got, a.SelectAttrValue("language", "")+" "+textAt(a, "doi_data/doi")+" "+
			rel.SelectAttrValue("relationship-type", ""))
	}
	want := []string{"pt 10.1590/X isTranslationOf", "en 10.1590/X.en hasTranslation"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestAheadOfPrintIssue(t *testing.T) {
	raw := documenttest.Article()
	issue := raw["issue"].(map[string]any)
	issue["v31"] = []any{map[string]any{"_": "ahead"}}
	delete(issue, "v32")

	root := parse(t, export(t, raw))
	ji := root.FindElement("body/journal/journal_issue")
	if ji == nil {
		t.Fatal("journal_issue missing")
	}
	var tags []string
	for _, child := range ji.ChildElements() {
		tags = append(tags, child.Tag)
	}
	if diff := cmp.Diff([]string{"publication_date"}, tags); diff != "" {
		t.Errorf("ahead journal_issue children mismatch (-want +got):\n%s", diff)
	}
}
