package document

import (
	"fmt"
	"strings"
)

var licenseTerms = map[string]string{
	"by": "Attribution",
	"nc": "NonCommercial",
	"nd": "NoDerivatives",
	"sa": "ShareAlike",
}

// Permissions describes the article license.
type Permissions struct {
	ID   string
	URL  string
	Text string
}

// newPermissions builds the license description for a code like "by-nc/4.0".
func newPermissions(code string) *Permissions {
	code = strings.Trim(strings.ToLower(strings.TrimSpace(code)), "/")
	if code == "" {
		return nil
	}

	kind, version, _ := strings.Cut(code, "/")
	var names []string
	for _, term := range strings.Split(kind, "-") {
		name, ok := licenseTerms[term]
		if !ok {
			return nil
		}
		names = append(names, name)
	}

	text := "This work is licensed under a Creative Commons " + strings.Join(names, "-")
	if version != "" {
		text += " " + version
	}
	text += " International License."

	return &Permissions{
		ID:   code,
		URL:  fmt.Sprintf("http://creativecommons.org/licenses/%s/", code),
		Text: text,
	}
}
