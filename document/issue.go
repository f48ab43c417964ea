package document

import (
	"github.com/lehigh-university-libraries/metaexport/value"
)

// Issue exposes the issue legacy record. Issue fields missing from the issue
// record fall back to the copies stored on the article record.
type Issue struct {
	record  Record
	article Record
}

func (i *Issue) field(tag string) string {
	if i.record.Has(tag) {
		return i.record.Value(tag)
	}
	return i.article.Value(tag)
}

// Volume returns the raw volume.
func (i *Issue) Volume() string {
	return i.field("v31")
}

// Number returns the raw issue number.
func (i *Issue) Number() string {
	return i.field("v32")
}

// SupplementVolume returns the supplement-of-volume number.
func (i *Issue) SupplementVolume() string {
	return i.field("v131")
}

// SupplementNumber returns the supplement-of-issue number.
func (i *Issue) SupplementNumber() string {
	return i.field("v132")
}

// PublicationDate returns the issue YYYYMMDD date.
func (i *Issue) PublicationDate() string {
	return i.record.Value("v65")
}

// IsAhead reports whether this is an ahead-of-print pseudo issue.
func (i *Issue) IsAhead() bool {
	return i.Volume() == "ahead" || i.Number() == "ahead"
}

// Section returns the section title for a section code in a language.
func (i *Issue) Section(code, lang string) string {
	if code == "" {
		return ""
	}
	for _, occ := range i.record.Occurrences("v49") {
		if value.Subfield(occ, "c") == code && value.Subfield(occ, "l") == lang {
			return value.Subfield(occ, "t")
		}
	}
	return ""
}
