package rsps

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

type citationCond = pipeline.Precondition[*document.Citation]

var elementCitationTypes = map[string]string{
	document.TypeArticle:    "journal",
	document.TypeBook:       "book",
	document.TypeConference: "confproc",
	document.TypeThesis:     "thesis",
	document.TypeLink:       "webpage",
	document.TypeUndefined:  "other",
}

func citationText(get func(*document.Citation) string) citationCond {
	return pipeline.HasText(get)
}

func ofType(types ...string) citationCond {
	return pipeline.When(func(c *document.Citation) bool {
		t := c.PublicationType()
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	})
}

// citationPipeline renders one <ref id="B{n}">.
func citationPipeline() *pipeline.Pipeline[*document.Citation] {
	return pipeline.New("xmlrsps-ref",
		pipeline.NewPipe("Ref", refSetup),
		pipeline.NewPipe("Label", refLabel),
		pipeline.NewPipe("MixedCitation", refMixedCitation, citationText((*document.Citation).MixedCitation)),
		pipeline.NewPipe("ElementCitation", refElementCitation),
		pipeline.NewPipe("PersonGroup", refPersonGroup,
			pipeline.Has(func(c *document.Citation) any { return len(c.Authors()) + len(c.MonographicAuthors()) > 0 })),
		pipeline.NewPipe("ArticleTitle", refArticleTitle, citationText((*document.Citation).ArticleTitle),
			ofType(document.TypeArticle, document.TypeConference, document.TypeUndefined)),
		pipeline.NewPipe("ChapterTitle", refChapterTitle, citationText((*document.Citation).ArticleTitle),
			ofType(document.TypeBook)),
		pipeline.NewPipe("Source", refSource, citationText((*document.Citation).Source),
			ofType(document.TypeArticle, document.TypeBook, document.TypeConference, document.TypeUndefined)),
		pipeline.NewPipe("ThesisSource", refSource, citationText((*document.Citation).ThesisTitle),
			ofType(document.TypeThesis)),
		pipeline.NewPipe("Degree", refDegree, citationText((*document.Citation).ThesisDegree),
			ofType(document.TypeThesis)),
		pipeline.NewPipe("LinkSource", refSource, citationText((*document.Citation).LinkTitle),
			ofType(document.TypeLink)),
		pipeline.NewPipe("Edition", refLeaf("edition", (*document.Citation).Edition), citationText((*document.Citation).Edition)),
		pipeline.NewPipe("ConfName", refLeaf("conf-name", (*document.Citation).ConferenceName), citationText((*document.Citation).ConferenceName)),
		pipeline.NewPipe("PublisherLoc", refLeaf("publisher-loc", (*document.Citation).PublisherLocation), citationText((*document.Citation).PublisherLocation)),
		pipeline.NewPipe("PublisherName", refLeaf("publisher-name", (*document.Citation).PublisherName), citationText((*document.Citation).PublisherName)),
		pipeline.NewPipe("Date", refDate,
			citationText(func(c *document.Citation) string { return helpers.ParseDate(c.Date()).Year })),
		pipeline.NewPipe("Volume", refLeaf("volume", (*document.Citation).Volume), citationText((*document.Citation).Volume)),
		pipeline.NewPipe("Issue", refLeaf("issue", (*document.Citation).Issue), citationText((*document.Citation).Issue)),
		pipeline.NewPipe("FPage", refLeaf("fpage", (*document.Citation).StartPage), citationText((*document.Citation).StartPage)),
		pipeline.NewPipe("LPage", refLeaf("lpage", (*document.Citation).EndPage), citationText((*document.Citation).EndPage)),
		pipeline.NewPipe("ISSN", refLeaf("issn", (*document.Citation).ISSN), citationText((*document.Citation).ISSN)),
		pipeline.NewPipe("ISBN", refLeaf("isbn", (*document.Citation).ISBN), citationText((*document.Citation).ISBN)),
		pipeline.NewPipe("DOI", refDOI, citationText((*document.Citation).DOI)),
		pipeline.NewPipe("ExtLink", refExtLink, citationText((*document.Citation).Link)),
	)
}

func refSetup(c *document.Citation, _ *etree.Element) (*etree.Element, error) {
	ref := pipeline.Root("ref")
	ref.CreateAttr("id", "B"+strconv.Itoa(c.Position()))
	return ref, nil
}

func refLabel(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	pipeline.SubElement(ref, "label", strconv.Itoa(c.IndexNumber()))
	return ref, nil
}

func refMixedCitation(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	pipeline.SubElement(ref, "mixed-citation", helpers.StripHTML(c.MixedCitation()))
	return ref, nil
}

func refElementCitation(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	kind, ok := elementCitationTypes[c.PublicationType()]
	if !ok {
		kind = "other"
	}
	ref.CreateElement("element-citation").CreateAttr("publication-type", kind)
	return ref, nil
}

func personGroup(parent *etree.Element, kind string, authors []document.Author) {
	if len(authors) == 0 {
		return
	}
	group := parent.CreateElement("person-group")
	group.CreateAttr("person-group-type", kind)
	for _, a := range authors {
		name := group.CreateElement("name")
		if a.Surname != "" {
			pipeline.SubElement(name, "surname", a.Surname)
		}
		if a.GivenNames != "" {
			pipeline.SubElement(name, "given-names", a.GivenNames)
		}
	}
}

// refPersonGroup writes the analytic authors, then the monographic ones.
// Monographic authors are editors when an analytic level exists.
func refPersonGroup(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	el, err := pipeline.Find(ref, "element-citation")
	if err != nil {
		return nil, err
	}
	analytic := c.Authors()
	personGroup(el, "author", analytic)
	if len(analytic) > 0 {
		personGroup(el, "editor", c.MonographicAuthors())
	} else {
		personGroup(el, "author", c.MonographicAuthors())
	}
	return ref, nil
}

func refArticleTitle(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	return refLeaf("article-title", (*document.Citation).ArticleTitle)(c, ref)
}

func refChapterTitle(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	return refLeaf("chapter-title", (*document.Citation).ArticleTitle)(c, ref)
}

func refSource(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	return refLeaf("source", (*document.Citation).Source)(c, ref)
}

// refLeaf appends one text child to element-citation.
func refLeaf(tag string, get func(*document.Citation) string) pipeline.TransformFunc[*document.Citation] {
	return func(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
		el, err := pipeline.Find(ref, "element-citation")
		if err != nil {
			return nil, err
		}
		pipeline.SubElement(el, tag, get(c))
		return ref, nil
	}
}

func refDegree(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	el, err := pipeline.Find(ref, "element-citation")
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(el, "comment", c.ThesisDegree()), "content-type", "degree")
	return ref, nil
}

func refDate(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	el, err := pipeline.Find(ref, "element-citation")
	if err != nil {
		return nil, err
	}
	date := el.CreateElement("date")
	appendDate(date, helpers.ParseDate(c.Date()))
	return ref, nil
}

func refDOI(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	el, err := pipeline.Find(ref, "element-citation")
	if err != nil {
		return nil, err
	}
	pipeline.Attr(pipeline.SubElement(el, "pub-id", c.DOI()), "pub-id-type", "doi")
	return ref, nil
}

func refExtLink(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	el, err := pipeline.Find(ref, "element-citation")
	if err != nil {
		return nil, err
	}
	link := pipeline.SubElement(el, "ext-link", c.Link())
	pipeline.Attr(link, "ext-link-type", "uri", "xlink:href", c.Link())
	return ref, nil
}
