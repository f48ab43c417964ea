package value

import (
	"strings"
)

// Occurrences normalizes an ISIS-style field into its list of occurrences.
// Legacy fields are typically: [{"_": "...", "l": "pt"}, ...] but a single
// object or a bare string is accepted as one occurrence.
func Occurrences(v any) []map[string]any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case []map[string]any:
		return val
	case map[string]any:
		return []map[string]any{val}
	case []any:
		result := make([]map[string]any, 0, len(val))
		for _, item := range val {
			switch it := item.(type) {
			case map[string]any:
				result = append(result, it)
			case nil:
			default:
				if s := Text(it); strings.TrimSpace(s) != "" {
					result = append(result, map[string]any{"_": s})
				}
			}
		}
		if len(result) == 0 {
			return nil
		}
		return result
	default:
		if s := Text(val); strings.TrimSpace(s) != "" {
			return []map[string]any{{"_": s}}
		}
	}

	return nil
}

// Subfield returns the trimmed text of one subfield marker of an occurrence.
func Subfield(occ map[string]any, marker string) string {
	if occ == nil {
		return ""
	}
	return strings.TrimSpace(Text(occ[marker]))
}

// FirstSubfield returns the first non-empty subfield value across occurrences.
func FirstSubfield(v any, marker string) string {
	for _, occ := range Occurrences(v) {
		if s := Subfield(occ, marker); s != "" {
			return s
		}
	}
	return ""
}

// Subfields returns every non-empty subfield value across occurrences, in
// source order.
func Subfields(v any, marker string) []string {
	var result []string
	for _, occ := range Occurrences(v) {
		if s := Subfield(occ, marker); s != "" {
			result = append(result, s)
		}
	}
	return result
}
