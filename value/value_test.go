package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{float64(639), "639"},
		{float64(1.5), "1.5"},
		{12, "12"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	var nilMap map[string]string
	var nilPtr *struct{}
	empty := []any{nil, "", "   ", []string{}, map[string]any{}, nilMap, nilPtr, false, []int{}}
	for _, v := range empty {
		if !IsEmpty(v) {
			t.Errorf("IsEmpty(%#v) = false, want true", v)
		}
	}
	full := []any{"x", []string{"a"}, map[string]string{"pt": "x"}, 0, true, &struct{}{}}
	for _, v := range full {
		if IsEmpty(v) {
			t.Errorf("IsEmpty(%#v) = true, want false", v)
		}
	}
}

func TestOccurrences(t *testing.T) {
	field := []any{
		map[string]any{"_": "Título", "l": "pt"},
		"bare",
		nil,
		map[string]any{"_": "Title", "l": "en"},
	}
	occ := Occurrences(field)
	if len(occ) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occ))
	}
	if got := Subfield(occ[1], "_"); got != "bare" {
		t.Errorf("bare occurrence = %q", got)
	}

	if got := Subfields(field, "l"); !cmp.Equal(got, []string{"pt", "en"}) {
		t.Errorf("Subfields(l) diff: %s", cmp.Diff([]string{"pt", "en"}, got))
	}
	if got := FirstSubfield(map[string]any{"_": " 20 "}, "_"); got != "20" {
		t.Errorf("FirstSubfield = %q, want 20", got)
	}
	if Occurrences("  ") != nil {
		t.Error("blank string should have no occurrences")
	}
}
