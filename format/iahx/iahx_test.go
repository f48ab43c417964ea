package iahx

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/document/documenttest"
)

type entry struct{ name, text string }

func exportFields(t *testing.T, raw map[string]any) []entry {
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
	if parsed.Root() == nil || parsed.Root().Tag != "doc" {
		t.Fatalf("root is not doc:\n%s", out)
	}
	var fields []entry
	for _, f := range parsed.Root().ChildElements() {
		fields = append(fields, entry{f.SelectAttrValue("name", ""), f.Text()})
	}
	return fields
}

func values(fields []entry, name string) []string {
	var result []string
	for _, f := range fields {
		if f.name == name {
			result = append(result, f.text)
		}
	}
	return result
}

func TestFieldValues(t *testing.T) {
	fields := exportFields(t, documenttest.Article())

	tests := []struct {
		name string
		want []string
	}{
		{"id", []string{"S0034-89102010000400007-scl"}},
		{"type", []string{"research-article"}},
		{"in", []string{"scl"}},
		{"ta", []string{"Rev. Saúde Pública"}},
		{"ti", []string{"Perfil de saúde de idosos"}},
		{"ti_es", []string{"Perfil de salud de ancianos"}},
		{"au", []string{"Lima-Costa, Maria Fernanda", "Facchini, Luiz Augusto", "Matos, Divane Leite"}},
		{"aff_country", []string{"Brasil"}},
		{"la", []string{"en", "pt"}},
		{"da", []string{"2010-08"}},
		{"year_cluster", []string{"2010"}},
		{"ab_en", []string{"OBJECTIVE: To analyze the health profile."}},
		{"keyword_pt", []string{"Idoso", "Saúde"}},
		{"issn", []string{"0034-8910", "1518-8787"}},
		{"volume", []string{"44"}},
		{"issue", []string{"4"}},
		{"pg", []string{"639-649"}},
		{"wok_citation_index", []string{"SCIE", "SSCI"}},
		{"use_license", []string{"by/4.0"}},
		{"use_license_uri", []string{"http://creativecommons.org/licenses/by/4.0/"}},
		{"processing_date", []string{"2012-10-11"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, values(fields, tt.name)); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestFieldOrder(t *testing.T) {
	fields := exportFields(t, documenttest.Article())
	var names []string
	for _, f := range fields {
		if len(names) == 0 || names[len(names)-1] != f.name {
			names = append(names, f.name)
		}
	}
	want := []string{
		"id", "type", "in", "ur", "ta", "journal_title", "ti", "ti_pt", "ti_en", "ti_es",
		"au", "aff_institution", "aff_country", "la",
		"fulltext_html_pt", "fulltext_html_en", "fulltext_pdf_pt", "fulltext_pdf_en",
		"da", "year_cluster", "ab_pt", "ab_en", "ab_es",
		"keyword_pt", "keyword_en", "keyword_es", "doi", "issn", "volume", "issue",
		"start_page", "end_page", "pg", "wok_subject_categories", "wok_citation_index",
		"subject_area", "use_license", "use_license_uri", "sponsor", "processing_date",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessingDateFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"2012-10-11", []string{"2012-10-11"}},
		{"20121011", []string{"2012-10-11"}},
		{"2012/10/11", []string{"2012-10-11"}},
		{"not a date", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			raw := documenttest.Minimal()
			raw["processing_date"] = tt.in
			got := values(exportFields(t, raw), "processing_date")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("processing_date mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSparseDocument(t *testing.T) {
	fields := exportFields(t, documenttest.Minimal())
	want := []entry{
		{"id", "S0000-00002000000000001"},
		{"type", "undefined"},
	}
	if diff := cmp.Diff(want, fields, cmp.AllowUnexported(entry{})); diff != "" {
		t.Errorf("sparse fields mismatch (-want +got):\n%s", diff)
	}
}
