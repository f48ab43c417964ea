package crossref

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

type ccond = pipeline.Precondition[*document.Citation]

func chas(get func(*document.Citation) string) ccond {
	return pipeline.HasText(get)
}

func isType(kinds ...string) ccond {
	return pipeline.When(func(c *document.Citation) bool {
		for _, k := range kinds {
			if c.PublicationType() == k {
				return true
			}
		}
		return false
	})
}

// Child order follows the citation element of the deposit schema.
var citationPipeline = pipeline.New("xmlcrossref-citation",
	pipeline.NewPipe("Citation", citationSetup),
	pipeline.NewPipe("ISSN", citationLeaf("issn", (*document.Citation).ISSN), chas((*document.Citation).ISSN)),
	pipeline.NewPipe("JournalTitle", citationLeaf("journal_title", (*document.Citation).Source),
		chas((*document.Citation).Source), isType(document.TypeArticle)),
	pipeline.NewPipe("Author", citationLeaf("author", firstAuthor), chas(firstAuthor)),
	pipeline.NewPipe("Volume", citationLeaf("volume", (*document.Citation).Volume), chas((*document.Citation).Volume)),
	pipeline.NewPipe("Issue", citationLeaf("issue", (*document.Citation).Issue), chas((*document.Citation).Issue)),
	pipeline.NewPipe("FirstPage", citationLeaf("first_page", (*document.Citation).StartPage), chas((*document.Citation).StartPage)),
	pipeline.NewPipe("Year", citationLeaf("cYear", year), chas(year)),
	pipeline.NewPipe("DOI", citationLeaf("doi", (*document.Citation).DOI), chas((*document.Citation).DOI)),
	pipeline.NewPipe("ISBN", citationLeaf("isbn", (*document.Citation).ISBN), chas((*document.Citation).ISBN)),
	pipeline.NewPipe("VolumeTitle", citationLeaf("volume_title", (*document.Citation).Source),
		chas((*document.Citation).Source), isType(document.TypeBook, document.TypeThesis, document.TypeConference)),
	pipeline.NewPipe("Edition", citationLeaf("edition_number", (*document.Citation).Edition), chas((*document.Citation).Edition)),
	pipeline.NewPipe("ArticleTitle", citationLeaf("article_title", (*document.Citation).ArticleTitle),
		chas((*document.Citation).ArticleTitle)),
	pipeline.NewPipe("Unstructured", citationLeaf("unstructured_citation", unstructured), chas(unstructured)),
)

func firstAuthor(c *document.Citation) string {
	authors := c.Authors()
	if len(authors) == 0 {
		authors = c.MonographicAuthors()
	}
	if len(authors) == 0 {
		return ""
	}
	return authors[0].Surname
}

func year(c *document.Citation) string {
	return helpers.ParseDate(c.Date()).Year
}

func unstructured(c *document.Citation) string {
	return helpers.StripHTML(c.MixedCitation())
}

func citationSetup(c *document.Citation, _ *etree.Element) (*etree.Element, error) {
	citation := pipeline.Root("citation")
	citation.CreateAttr("key", "ref"+strconv.Itoa(c.Position()))
	return citation, nil
}

func citationLeaf(tag string, get func(*document.Citation) string) pipeline.TransformFunc[*document.Citation] {
	return func(c *document.Citation, citation *etree.Element) (*etree.Element, error) {
		pipeline.SubElement(citation, tag, get(c))
		return citation, nil
	}
}
