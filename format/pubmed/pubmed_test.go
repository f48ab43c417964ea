package pubmed

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/document/documenttest"
)

func exportArticle(t *testing.T, raw map[string]any) (*etree.Element, []byte) {
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
	article := parsed.FindElement("ArticleSet/Article")
	if article == nil {
		t.Fatalf("ArticleSet/Article missing:\n%s", out)
	}
	return article, out
}

func TestExport(t *testing.T) {
	article, out := exportArticle(t, documenttest.Article())
	if !bytes.Contains(out, []byte(`<!DOCTYPE ArticleSet PUBLIC "-//NLM//DTD PubMed 2.8//EN"`)) {
		t.Error("doctype missing")
	}

	checks := map[string]string{
		"Journal/JournalTitle":       "Revista de Saúde Pública",
		"Journal/Issn":               "0034-8910",
		"Journal/Volume":             "44",
		"Journal/Issue":              "4",
		"Journal/PubDate/Year":       "2010",
		"Journal/PubDate/Month":      "08",
		"ArticleTitle":               "Health profile of the elderly",
		"VernacularTitle":            "Perfil de saúde de idosos",
		"FirstPage":                  "639",
		"LastPage":                   "649",
		"ELocationID":                "10.1590/S0034-89102010000400007",
		"PublicationType":            "Journal Article",
		"Abstract":                   "OBJECTIVE: To analyze the health profile.",
		"AuthorList/Author/LastName": "Lima-Costa",
	}
	for path, want := range checks {
		el := article.FindElement(path)
		if el == nil {
			t.Errorf("%s missing", path)
			continue
		}
		if got := el.Text(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}

	var langs []string
	for _, el := range article.FindElements("Language") {
		langs = append(langs, el.Text())
	}
	if diff := cmp.Diff([]string{"PT", "EN"}, langs); diff != "" {
		t.Errorf("Language mismatch (-want +got):\n%s", diff)
	}

	var others []string
	for _, el := range article.FindElements("OtherAbstract") {
		others = append(others, el.SelectAttrValue("Language", ""))
	}
	if diff := cmp.Diff([]string{"PT", "ES"}, others); diff != "" {
		t.Errorf("OtherAbstract mismatch (-want +got):\n%s", diff)
	}

	if got := len(article.FindElements("ObjectList/Object")); got != 5 {
		t.Errorf("keyword objects = %d, want 5", got)
	}
	aff := article.FindElement("AuthorList/Author/Affiliation")
	if aff == nil || aff.Text() != "Fundação Oswaldo Cruz, Belo Horizonte, MG, Brasil" {
		t.Errorf("Affiliation = %v", aff)
	}
}

func TestEnglishOriginalHasNoVernacularTitle(t *testing.T) {
	raw := map[string]any{
		"article": map[string]any{
			"v40": []any{map[string]any{"_": "en"}},
			"v12": []any{map[string]any{"_": "Only English", "l": "en"}},
		},
	}
	article, _ := exportArticle(t, raw)
	if article.FindElement("VernacularTitle") != nil {
		t.Error("VernacularTitle present for an English original")
	}
	if got := article.FindElement("ArticleTitle").Text(); got != "Only English" {
		t.Errorf("ArticleTitle = %q", got)
	}
}

func TestSparseArticle(t *testing.T) {
	article, _ := exportArticle(t, documenttest.Minimal())
	var tags []string
	for _, child := range article.ChildElements() {
		tags = append(tags, child.Tag)
	}
	want := []string{"Journal", "PublicationType", "ArticleIdList"}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("sparse children mismatch (-want +got):\n%s", diff)
	}
}
