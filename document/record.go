package document

import (
	"github.com/lehigh-university-libraries/metaexport/value"
)

// Record is one legacy field map: short tags ("v12", "v40") to occurrence
// lists of subfield maps.
type Record map[string]any

// recordOf converts a nested raw value into a Record, or nil.
func recordOf(v any) Record {
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// Has reports whether the tag carries at least one occurrence.
func (r Record) Has(tag string) bool {
	if r == nil {
		return false
	}
	return len(value.Occurrences(r[tag])) > 0
}

// Occurrences returns the occurrences of a tag.
func (r Record) Occurrences(tag string) []map[string]any {
	if r == nil {
		return nil
	}
	return value.Occurrences(r[tag])
}

// Value returns the main ("_") subfield of the first occurrence of tag.
func (r Record) Value(tag string) string {
	return r.Sub(tag, "_")
}

// Values returns the main subfield of every occurrence of tag.
func (r Record) Values(tag string) []string {
	return r.Subs(tag, "_")
}

// Sub returns the first non-empty value of a subfield across occurrences.
func (r Record) Sub(tag, marker string) string {
	if r == nil {
		return ""
	}
	return value.FirstSubfield(r[tag], marker)
}

// Subs returns every non-empty value of a subfield across occurrences.
func (r Record) Subs(tag, marker string) []string {
	if r == nil {
		return nil
	}
	return value.Subfields(r[tag], marker)
}

// byLanguage collects text subfield values keyed by their "l" subfield.
// The first value for a language wins.
func (r Record) byLanguage(tag, marker string) map[string]string {
	result := map[string]string{}
	for _, occ := range r.Occurrences(tag) {
		lang := value.Subfield(occ, "l")
		text := value.Subfield(occ, marker)
		if lang == "" || text == "" {
			continue
		}
		if _, seen := result[lang]; !seen {
			result[lang] = text
		}
	}
	return result
}
