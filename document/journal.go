package document

import (
	"strings"

	"github.com/lehigh-university-libraries/metaexport/value"
)

// Journal exposes the journal ("title") legacy record.
type Journal struct {
	record Record
}

// Title returns the full journal title.
func (j *Journal) Title() string {
	return j.record.Value("v100")
}

// AbbreviatedTitle returns the publisher abbreviated title.
func (j *Journal) AbbreviatedTitle() string {
	return j.record.Value("v150")
}

// Acronym returns the journal acronym used as publisher id.
func (j *Journal) Acronym() string {
	return strings.ToLower(j.record.Value("v68"))
}

// ScieloISSN returns the ISSN used to build PIDs.
func (j *Journal) ScieloISSN() string {
	return j.record.Value("v400")
}

// PrintISSN returns the print ISSN.
func (j *Journal) PrintISSN() string {
	return j.issnOfType("PRINT")
}

// ElectronicISSN returns the online ISSN.
func (j *Journal) ElectronicISSN() string {
	return j.issnOfType("ONLIN")
}

// ISSNs returns the distinct print and electronic ISSNs, print first.
func (j *Journal) ISSNs() []string {
	var result []string
	for _, issn := range []string{j.PrintISSN(), j.ElectronicISSN()} {
		if issn != "" && !contains(result, issn) {
			result = append(result, issn)
		}
	}
	return result
}

func (j *Journal) issnOfType(kind string) string {
	for _, occ := range j.record.Occurrences("v435") {
		if strings.EqualFold(value.Subfield(occ, "t"), kind) {
			return value.Subfield(occ, "_")
		}
	}
	// Older records only carry the SciELO ISSN and its type.
	if j.record.Has("v435") {
		return ""
	}
	if strings.EqualFold(j.record.Value("v35"), kind) {
		return j.ScieloISSN()
	}
	return ""
}

// PublisherName returns every publisher name joined with "; ".
func (j *Journal) PublisherName() string {
	return strings.Join(j.record.Values("v480"), "; ")
}

// PublisherLocation returns the publisher city.
func (j *Journal) PublisherLocation() string {
	return j.record.Value("v490")
}

// WOSSubjectAreas returns the Web of Science subject categories.
func (j *Journal) WOSSubjectAreas() []string {
	return j.record.Values("v854")
}

// WOSCitationIndexes returns the Web of Science citation indexes (SCIE, SSCI...).
func (j *Journal) WOSCitationIndexes() []string {
	return j.record.Values("v851")
}

// SubjectAreas returns the broad subject areas.
func (j *Journal) SubjectAreas() []string {
	return j.record.Values("v441")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
