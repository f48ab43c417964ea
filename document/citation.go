package document

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/metaexport/value"
)

// Citation publication types.
const (
	TypeArticle    = "article"
	TypeBook       = "book"
	TypeConference = "conference"
	TypeThesis     = "thesis"
	TypeLink       = "link"
	TypeUndefined  = "undefined"
)

// Citation exposes one bibliographic reference record.
type Citation struct {
	record   Record
	position int
}

// NewCitation wraps a raw citation record at a 1-based position.
func NewCitation(raw map[string]any, position int) *Citation {
	return &Citation{record: Record(raw), position: position}
}

// Position returns the 1-based position in the reference list.
func (c *Citation) Position() int {
	return c.position
}

// IndexNumber returns the stored reference number, falling back to the
// position when absent or malformed.
func (c *Citation) IndexNumber() int {
	if n, err := strconv.Atoi(c.record.Value("v701")); err == nil && n > 0 {
		return n
	}
	return c.position
}

// PublicationType infers the reference type. An explicit publication_type
// wins; otherwise the first matching rule in priority order applies:
// book, article, conference, thesis, link.
func (c *Citation) PublicationType() string {
	if t := strings.ToLower(value.Text(c.record["publication_type"])); t != "" {
		return t
	}
	switch {
	case c.record.Has("v18") && !c.record.Has("v51"):
		return TypeBook
	case c.record.Has("v12") || c.record.Has("v30"):
		return TypeArticle
	case c.record.Has("v53"):
		return TypeConference
	case c.record.Has("v51"):
		return TypeThesis
	case c.record.Has("v37"):
		return TypeLink
	}
	return TypeUndefined
}

// ArticleTitle returns the analytic (article or chapter) title.
func (c *Citation) ArticleTitle() string {
	return c.record.Value("v12")
}

// Source returns the container title for the reference type: journal
// title for articles, monographic title for books and proceedings.
func (c *Citation) Source() string {
	switch c.PublicationType() {
	case TypeArticle:
		if s := c.record.Value("v30"); s != "" {
			return s
		}
		return c.record.Value("v18")
	case TypeBook, TypeConference:
		return c.record.Value("v18")
	case TypeThesis:
		return c.ThesisTitle()
	case TypeLink:
		return c.LinkTitle()
	}
	if s := c.record.Value("v30"); s != "" {
		return s
	}
	return c.record.Value("v18")
}

// ThesisTitle returns the title of a cited thesis.
func (c *Citation) ThesisTitle() string {
	if !c.record.Has("v51") {
		return ""
	}
	return c.record.Value("v18")
}

// ThesisDegree returns the degree of a cited thesis.
func (c *Citation) ThesisDegree() string {
	return c.record.Value("v51")
}

// ConferenceName returns the conference name.
func (c *Citation) ConferenceName() string {
	return c.record.Value("v53")
}

// Link returns the cited URL.
func (c *Citation) Link() string {
	return c.record.Value("v37")
}

// LinkTitle returns the label of a cited URL, defaulting to the URL.
func (c *Citation) LinkTitle() string {
	if t := c.record.Sub("v37", "t"); t != "" {
		return t
	}
	return c.Link()
}

// Date returns the YYYYMMDD publication date.
func (c *Citation) Date() string {
	if d := c.record.Value("v65"); d != "" {
		return d
	}
	return c.record.Value("v64")
}

// StartPage returns the first page.
func (c *Citation) StartPage() string {
	if p := c.record.Sub("v14", "f"); p != "" {
		return p
	}
	first, _ := splitPages(c.record.Value("v14"))
	return first
}

// EndPage returns the last page.
func (c *Citation) EndPage() string {
	if p := c.record.Sub("v14", "l"); p != "" {
		return p
	}
	_, last := splitPages(c.record.Value("v14"))
	return last
}

// Volume returns the volume.
func (c *Citation) Volume() string {
	return c.record.Value("v31")
}

// Issue returns the issue number.
func (c *Citation) Issue() string {
	return c.record.Value("v32")
}

// Edition returns the edition statement.
func (c *Citation) Edition() string {
	return c.record.Value("v63")
}

// PublisherName returns the publisher.
func (c *Citation) PublisherName() string {
	return c.record.Value("v62")
}

// PublisherLocation returns the place of publication.
func (c *Citation) PublisherLocation() string {
	return c.record.Value("v66")
}

// ISSN returns the journal ISSN.
func (c *Citation) ISSN() string {
	return c.record.Value("v35")
}

// ISBN returns the book ISBN.
func (c *Citation) ISBN() string {
	return c.record.Value("v69")
}

// DOI returns the reference DOI.
func (c *Citation) DOI() string {
	return c.record.Value("v237")
}

// MixedCitation returns the reference as printed in the article.
func (c *Citation) MixedCitation() string {
	return c.record.Value("v704")
}

// Authors returns the analytic authors.
func (c *Citation) Authors() []Author {
	return authorsOf(c.record, "v10")
}

// MonographicAuthors returns the authors of the monographic level.
func (c *Citation) MonographicAuthors() []Author {
	return authorsOf(c.record, "v16")
}
