package document

import (
	"strings"

	"github.com/lehigh-university-libraries/metaexport/value"
)

// Author is one person in an author list.
type Author struct {
	Surname    string
	GivenNames string
	Role       string
	ORCID      string
	// Xref holds affiliation index codes ("A01", "aff1").
	Xref []string
}

// FullName returns "Surname, Given Names".
func (a Author) FullName() string {
	switch {
	case a.Surname == "":
		return a.GivenNames
	case a.GivenNames == "":
		return a.Surname
	}
	return a.Surname + ", " + a.GivenNames
}

// Affiliation is one institutional affiliation.
type Affiliation struct {
	Index       string
	Institution string
	Division    string
	City        string
	State       string
	Country     string
	CountryISO  string
	Email       string
}

// IsZero reports whether the affiliation carries no data.
func (a Affiliation) IsZero() bool {
	return a == Affiliation{}
}

// AddrLine returns "City, State" with empty parts dropped.
func (a Affiliation) AddrLine() string {
	return joinNonEmpty(", ", a.City, a.State)
}

func authorsOf(r Record, tag string) []Author {
	var result []Author
	for _, occ := range r.Occurrences(tag) {
		author := Author{
			Surname:    value.Subfield(occ, "s"),
			GivenNames: value.Subfield(occ, "n"),
			Role:       value.Subfield(occ, "r"),
			ORCID:      value.Subfield(occ, "k"),
			Xref:       strings.Fields(value.Subfield(occ, "1")),
		}
		if author.Surname == "" && author.GivenNames == "" {
			continue
		}
		result = append(result, author)
	}
	return result
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
