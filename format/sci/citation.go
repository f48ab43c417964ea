package sci

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/document"
	"github.com/lehigh-university-libraries/metaexport/helpers"
	"github.com/lehigh-university-libraries/metaexport/pipeline"
)

var citationTypes = map[string]string{
	document.TypeArticle:    "journal",
	document.TypeBook:       "book",
	document.TypeConference: "confproc",
	document.TypeThesis:     "thesis",
	document.TypeLink:       "webpage",
}

var citationPipeline = pipeline.New("xmlwos-ref",
	pipeline.NewPipe("Ref", refSetup),
	pipeline.NewPipe("PersonGroup", refPersonGroup,
		pipeline.Has(func(c *document.Citation) any { return c.Authors() })),
	pipeline.NewPipe("ArticleTitle", refLeaf("article-title", (*document.Citation).ArticleTitle),
		pipeline.HasText((*document.Citation).ArticleTitle)),
	pipeline.NewPipe("Source", refLeaf("source", (*document.Citation).Source),
		pipeline.HasText((*document.Citation).Source)),
	pipeline.NewPipe("Date", refDate,
		pipeline.HasText(func(c *document.Citation) string { return helpers.ParseDate(c.Date()).Year })),
	pipeline.NewPipe("Volume", refLeaf("volume", (*document.Citation).Volume),
		pipeline.HasText((*document.Citation).Volume)),
	pipeline.NewPipe("Issue", refLeaf("issue", (*document.Citation).Issue),
		pipeline.HasText((*document.Citation).Issue)),
	pipeline.NewPipe("FPage", refLeaf("fpage", (*document.Citation).StartPage),
		pipeline.HasText((*document.Citation).StartPage)),
	pipeline.NewPipe("LPage", refLeaf("lpage", (*document.Citation).EndPage),
		pipeline.HasText((*document.Citation).EndPage)),
)

func refSetup(c *document.Citation, _ *etree.Element) (*etree.Element, error) {
	ref := pipeline.Root("ref")
	ref.CreateAttr("id", "ref"+strconv.Itoa(c.Position()))
	kind, ok := citationTypes[c.PublicationType()]
	if !ok {
		kind = "nd"
	}
	ref.CreateElement("nlm-citation").CreateAttr("citation-type", kind)
	return ref, nil
}

func refPersonGroup(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	cit, err := pipeline.Find(ref, "nlm-citation")
	if err != nil {
		return nil, err
	}
	group := cit.CreateElement("person-group")
	group.CreateAttr("person-group-type", "author")
	for _, author := range c.Authors() {
		name := group.CreateElement("name")
		pipeline.SubElement(name, "surname", author.Surname)
		pipeline.SubElement(name, "given-names", author.GivenNames)
	}
	return ref, nil
}

func refLeaf(tag string, get func(*document.Citation) string) pipeline.TransformFunc[*document.Citation] {
	return func(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
		cit, err := pipeline.Find(ref, "nlm-citation")
		if err != nil {
			return nil, err
		}
		pipeline.SubElement(cit, tag, get(c))
		return ref, nil
	}
}

func refDate(c *document.Citation, ref *etree.Element) (*etree.Element, error) {
	cit, err := pipeline.Find(ref, "nlm-citation")
	if err != nil {
		return nil, err
	}
	appendDate(cit.CreateElement("date"), helpers.ParseDate(c.Date()))
	return ref, nil
}
