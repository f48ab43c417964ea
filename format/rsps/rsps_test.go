package rsps

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/document/documenttest"
	"github.com/lehigh-university-libraries/metaexport/format"
)

func export(t *testing.T, raw map[string]any) *etree.Element {
	t.Helper()
	doc, err := document.New(raw)
	if err != nil {
		t.Fatalf("document.New() error = %v", err)
	}
	out, err := (&Format{}).Export(doc, format.NewOptions())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	parsed := etree.NewDocument()
	if err := parsed.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not well-formed: %v\n%s", err, out)
	}
	return parsed.Root()
}

func TestExportFullArticle(t *testing.T) {
	root := export(t, documenttest.Article())

	if got := len(root.FindElements("back/ref-list/ref")); got != 23 {
		t.Errorf("ref count = %d, want 23", got)
	}
	pageCount := root.FindElement("front/article-meta/counts/page-count")
	if pageCount == nil || pageCount.SelectAttrValue("count", "") != "11" {
		t.Errorf("page-count = %v, want 11", pageCount)
	}
	refCount := root.FindElement("front/article-meta/counts/ref-count")
	if refCount == nil || refCount.SelectAttrValue("count", "") != "23" {
		t.Errorf("ref-count = %v, want 23", refCount)
	}
	if got := len(root.FindElements("front/article-meta/aff")); got != 3 {
		t.Errorf("aff count = %d, want 3", got)
	}

	if got := root.SelectAttrValue("article-type", ""); got != "research-article" {
		t.Errorf("article-type = %q", got)
	}
	if got := root.SelectAttrValue("specific-use", ""); got != "sps-1.1" {
		t.Errorf("specific-use = %q", got)
	}
	if got := root.FindElement("front/article-meta/article-id[@pub-id-type='doi']").Text(); got != "10.1590/S0034-89102010000400007" {
		t.Errorf("doi = %q", got)
	}
}

func TestRefIDsAreSequential(t *testing.T) {
	root := export(t, documenttest.Article())
	refs := root.FindElements("back/ref-list/ref")
	for i, ref := range refs {
		want := "B" + strconv.Itoa(i+1)
		if got := ref.SelectAttrValue("id", ""); got != want {
			t.Errorf("ref[%d] id = %q, want %q", i, got, want)
		}
		if first := ref.ChildElements()[0]; first.Tag != "label" || first.Text() != strconv.Itoa(i+1) {
			t.Errorf("ref[%d] first child = <%s>%s, want label %d", i, first.Tag, first.Text(), i+1)
		}
	}

	degree := refs[2].FindElement("element-citation/comment[@content-type='degree']")
	if degree == nil || degree.Text() != "Doutorado" {
		t.Errorf("thesis degree = %v, want Doutorado", degree)
	}
	if refs[0].FindElement("element-citation/comment") != nil {
		t.Error("journal citation carries a degree comment")
	}

	types := map[string]int{}
	for _, el := range root.FindElements("back/ref-list/ref/element-citation") {
		types[el.SelectAttrValue("publication-type", "")]++
	}
	want := map[string]int{"journal": 5, "book": 5, "thesis": 5, "confproc": 4, "webpage": 4}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("publication types mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslationsAndSubArticles(t *testing.T) {
	root := export(t, documenttest.Article())

	// en has a translated body so it lives in a sub-article; es stays inline.
	var langs []string
	for _, el := range root.FindElements("front/article-meta/title-group/trans-title-group") {
		langs = append(langs, el.SelectAttrValue("lang", ""))
	}
	if diff := cmp.Diff([]string{"es"}, langs); diff != "" {
		t.Errorf("trans-title-group langs mismatch (-want +got):\n%s", diff)
	}

	subs := root.FindElements("sub-article")
	if len(subs) != 1 {
		t.Fatalf("sub-article count = %d, want 1", len(subs))
	}
	if got := subs[0].SelectAttrValue("id", ""); got != "TRen" {
		t.Errorf("sub-article id = %q, want TRen", got)
	}
	if got := subs[0].FindElement("front-stub/title-group/article-title").Text(); got != "Health profile of the elderly" {
		t.Errorf("sub-article title = %q", got)
	}
	if got := len(root.FindElements("front/article-meta/kwd-group")); got != 2 {
		t.Errorf("kwd-group count = %d, want 2 (pt, es)", got)
	}
}

func TestContribXrefs(t *testing.T) {
	root := export(t, documenttest.Article())
	var rids []string
	for _, x := range root.FindElements("front/article-meta/contrib-group/contrib/xref") {
		rids = append(rids, x.SelectAttrValue("rid", ""))
	}
	if diff := cmp.Diff([]string{"A01", "A02", "A03", "A03"}, rids); diff != "" {
		t.Errorf("xref rids mismatch (-want +got):\n%s", diff)
	}
	if root.FindElement("front/article-meta/aff[@id='A02']") == nil {
		t.Error("aff A02 missing")
	}
}

func TestPubDateOrder(t *testing.T) {
	root := export(t, documenttest.Article())
	pubDate := root.FindElement("front/article-meta/pub-date")
	var tags []string
	for _, child := range pubDate.ChildElements() {
		tags = append(tags, child.Tag)
	}
	if diff := cmp.Diff([]string{"month", "year"}, tags); diff != "" {
		t.Errorf("pub-date children mismatch (-want +got):\n%s", diff)
	}
}

func TestSparseArticle(t *testing.T) {
	root := export(t, documenttest.Minimal())

	for _, path := range []string{
		"front/article-meta/article-id[@pub-id-type='doi']",
		"front/article-meta/abstract",
		"front/article-meta/kwd-group",
		"front/article-meta/aff",
		"front/article-meta/volume",
		"front/article-meta/issue",
		"front/article-meta/permissions",
		"back",
		"sub-article",
	} {
		if root.FindElement(path) != nil {
			t.Errorf("%s present for sparse article", path)
		}
	}
	if root.FindElement("front/article-meta/title-group") == nil {
		t.Error("title-group missing")
	}
	pageCount := root.FindElement("front/article-meta/counts/page-count")
	if pageCount == nil || pageCount.SelectAttrValue("count", "") != "0" {
		t.Errorf("page-count = %v, want 0", pageCount)
	}
}

func TestDeterministic(t *testing.T) {
	doc, err := document.New(documenttest.Article())
	if err != nil {
		t.Fatal(err)
	}
	f := &Format{}
	first, err := f.Export(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.Export(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated export differs")
	}
	if !bytes.Contains(first, []byte("<!DOCTYPE article PUBLIC")) {
		t.Error("doctype missing")
	}
}
