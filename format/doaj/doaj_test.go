package doaj

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/document/documenttest"
)

func exportRecord(t *testing.T, raw map[string]any) *etree.Element {
	t.Helper()
	doc, err := document.New(raw)
	if err != nil {
		t.Fatalf("document.New() error = %v", err)
	}
	out, err := (&Format{}).Export(doc, nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, out)
	}
	rec := parsed.FindElement("records/record")
	if rec == nil {
		t.Fatalf("records/record missing:\n%s", out)
	}
	return rec
}

func TestRecordFieldOrder(t *testing.T) {
	rec := exportRecord(t, documenttest.Article())
	var tags []string
	for _, child := range rec.ChildElements() {
		if len(tags) == 0 || tags[len(tags)-1] != child.Tag {
			tags = append(tags, child.Tag)
		}
	}
	want := []string{
		"language", "publisher", "journalTitle", "issn", "eissn", "publicationDate",
		"volume", "issue", "startPage", "endPage", "doi", "publisherRecordId",
		"documentType", "title", "authors", "affiliationsList", "abstract",
		"fullTextUrl", "keywords",
	}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordValues(t *testing.T) {
	rec := exportRecord(t, documenttest.Article())
	checks := map[string]string{
		"language":        "por",
		"issn":            "0034-8910",
		"eissn":           "1518-8787",
		"publicationDate": "2010-08-01",
		"volume":          "44",
		"issue":           "4",
		"documentType":    "research-article",
	}
	for tag, want := range checks {
		if got := rec.FindElement(tag).Text(); got != want {
			t.Errorf("%s = %q, want %q", tag, got, want)
		}
	}

	var langs []string
	for _, title := range rec.FindElements("title") {
		langs = append(langs, title.SelectAttrValue("language", ""))
	}
	if diff := cmp.Diff([]string{"por", "eng", "spa"}, langs); diff != "" {
		t.Errorf("title languages mismatch (-want +got):\n%s", diff)
	}
	if got := rec.FindElement("abstract").Text(); got != "OBJETIVO: Analisar o perfil de saúde." {
		t.Errorf("abstract = %q", got)
	}
}

func TestAffiliationIDs(t *testing.T) {
	rec := exportRecord(t, documenttest.Article())

	var ids []string
	for _, author := range rec.FindElements("authors/author") {
		id := author.FindElement("affiliationId")
		if id == nil {
			ids = append(ids, "")
			continue
		}
		ids = append(ids, id.Text())
	}
	// The second author points to a02 then A03; the first match wins.
	if diff := cmp.Diff([]string{"0", "1", "2"}, ids); diff != "" {
		t.Errorf("affiliationId mismatch (-want +got):\n%s", diff)
	}

	names := rec.FindElements("affiliationsList/affiliationName")
	if len(names) != 3 {
		t.Fatalf("affiliationName count = %d, want 3", len(names))
	}
	if got := names[0].Text(); got != "Fundação Oswaldo Cruz, Belo Horizonte, MG, Brasil" {
		t.Errorf("affiliationName[0] = %q", got)
	}
}

func TestSparseRecord(t *testing.T) {
	rec := exportRecord(t, documenttest.Minimal())
	var tags []string
	for _, child := range rec.ChildElements() {
		tags = append(tags, child.Tag)
	}
	if diff := cmp.Diff([]string{"publisherRecordId", "documentType"}, tags); diff != "" {
		t.Errorf("sparse fields mismatch (-want +got):\n%s", diff)
	}
}
