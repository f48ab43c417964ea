package helpers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	multiSpaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// StripHTML removes markup from a fragment and decodes entities.
// Whitespace is collapsed to single spaces.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if !IsHTML(s) && !strings.Contains(s, "&") {
		return NormalizeWhitespace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return NormalizeWhitespace(htmlTagRegex.ReplaceAllString(s, " "))
	}
	return NormalizeWhitespace(doc.Text())
}

// Paragraphs returns the text of every <p> in an HTML body, in order. A body
// without paragraphs yields its whole text as one paragraph.
func Paragraphs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		if text := StripHTML(s); text != "" {
			return []string{text}
		}
		return nil
	}

	var result []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := NormalizeWhitespace(sel.Text()); text != "" {
			result = append(result, text)
		}
	})
	if len(result) > 0 {
		return result
	}
	if text := NormalizeWhitespace(doc.Find("body").Text()); text != "" {
		return []string{text}
	}
	return nil
}

// IsHTML checks if a string appears to contain HTML markup.
func IsHTML(s string) bool {
	return htmlTagRegex.MatchString(s)
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}
