// Package helpers holds the business rules shared by several export formats:
// volume and issue labels, date decomposition, page counts, affiliation
// cross-referencing, language codes and HTML text extraction.
package helpers

import (
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/metaexport/document"
)

var (
	supplBegin = regexp.MustCompile(`^0 `)
	supplEnd   = regexp.MustCompile(` 0$`)
)

// LabelStyle selects how absent and ahead-of-print values are rendered.
type LabelStyle int

const (
	// Trimmed keeps values as stored and leaves absent ones empty.
	Trimmed LabelStyle = iota
	// ZeroFilled replaces "ahead" with "0" and renders absent values as "0".
	ZeroFilled
)

func (s LabelStyle) normalize(v string) string {
	v = strings.TrimSpace(v)
	if s != ZeroFilled {
		return v
	}
	if v == "" {
		return "0"
	}
	return strings.ReplaceAll(v, "ahead", "0")
}

// VolumeLabel renders a volume.
func VolumeLabel(volume string, style LabelStyle) string {
	return style.normalize(volume)
}

// IssueLabel composes the issue descriptor: the number, then " suppl N" for
// a supplement number, then " suppl N" for a supplement volume. A leading
// "0 " and a trailing " 0" token are dropped.
//
//	number=20, supplNumber=10 -> "20 suppl 10"
//	supplVolume=1             -> "suppl 1"
//	supplVolume=0             -> "suppl"
func IssueLabel(number, supplNumber, supplVolume string, style LabelStyle) string {
	label := style.normalize(number)
	if s := strings.TrimSpace(supplNumber); s != "" {
		label += " suppl " + s
	}
	if s := strings.TrimSpace(supplVolume); s != "" {
		label += " suppl " + s
	}
	label = supplBegin.ReplaceAllString(label, "")
	label = supplEnd.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}

// IssueLabelOf composes the label from an issue accessor.
func IssueLabelOf(issue *document.Issue, style LabelStyle) string {
	return IssueLabel(issue.Number(), issue.SupplementNumber(), issue.SupplementVolume(), style)
}
