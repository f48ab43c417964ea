package helpers

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/metaexport/document"
)

// MatchAffiliations returns the affiliations whose index matches one of the
// author xref codes, case-insensitively, in xref order.
func MatchAffiliations(xrefs []string, affs []document.Affiliation) []document.Affiliation {
	var result []document.Affiliation
	for _, xref := range xrefs {
		for _, aff := range affs {
			if aff.Index != "" && strings.EqualFold(xref, aff.Index) {
				result = append(result, aff)
				break
			}
		}
	}
	return result
}

// UpperID renders an affiliation code as an element id ("a01" -> "A01").
func UpperID(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NumericID keeps the numeric part of a code without leading zeros
// ("A01" -> "1"). Codes without digits are returned lowercased.
func NumericID(code string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, code)
	if n, err := strconv.Atoi(digits); err == nil {
		return strconv.Itoa(n)
	}
	return strings.ToLower(strings.TrimSpace(code))
}

// AffiliationText describes one affiliation as "institution, addr, country".
func AffiliationText(aff document.Affiliation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{aff.Institution, aff.AddrLine(), aff.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// AuthorAffiliation joins the descriptions of every affiliation an author
// points to with "; ".
func AuthorAffiliation(author document.Author, affs []document.Affiliation) string {
	var texts []string
	for _, aff := range MatchAffiliations(author.Xref, affs) {
		if text := AffiliationText(aff); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "; ")
}
