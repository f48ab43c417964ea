package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
)

type doc struct {
	Title    string
	Keywords []string
	Broken   map[string]string
}

func setup(_ doc, _ *etree.Element) (*etree.Element, error) {
	root := Root("article")
	root.CreateElement("front")
	return root, nil
}

func title(d doc, tree *etree.Element) (*etree.Element, error) {
	front, err := Find(tree, "front")
	if err != nil {
		return nil, err
	}
	SubElement(front, "title", d.Title)
	return tree, nil
}

func newTestPipeline() *Pipeline[doc] {
	return New("test",
		NewPipe("setup", setup),
		NewPipe("title", title, HasText(func(d doc) string { return d.Title })),
		NewPipe("keywords", func(d doc, tree *etree.Element) (*etree.Element, error) {
			group := tree.CreateElement("kwd-group")
			for _, k := range d.Keywords {
				SubElement(group, "kwd", k)
			}
			return tree, nil
		}, Has(func(d doc) any { return d.Keywords })),
	)
}

func TestRunBuildsTree(t *testing.T) {
	tree, err := newTestPipeline().Run(doc{Title: "Hello", Keywords: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := Text(tree, "front/title"); got != "Hello" {
		t.Errorf("front/title = %q, want Hello", got)
	}
	if got := len(tree.FindElements("kwd-group/kwd")); got != 2 {
		t.Errorf("kwd count = %d, want 2", got)
	}
}

func TestUnmetPreconditionIsIdentity(t *testing.T) {
	tree, err := newTestPipeline().Run(doc{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if tree.FindElement("front/title") != nil {
		t.Error("title created for empty input")
	}
	if tree.FindElement("kwd-group") != nil {
		t.Error("kwd-group created for empty input")
	}
}

func TestPanickingPreconditionIsUnmet(t *testing.T) {
	called := false
	p := NewPipe("boom", func(d doc, tree *etree.Element) (*etree.Element, error) {
		called = true
		return tree, nil
	}, HasText(func(d doc) string {
		d.Broken["x"] = "y" // nil map write panics
		return "never"
	}))

	in := Root("x")
	out, ran, err := p.Apply(doc{}, in)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if ran || called {
		t.Error("transform ran despite panicking precondition")
	}
	if out != in {
		t.Error("tree changed by skipped pipe")
	}
}

func TestOrderingErrorFailsLoudly(t *testing.T) {
	p := New("misordered",
		NewPipe("setup", func(doc, *etree.Element) (*etree.Element, error) { return Root("article"), nil }),
		NewPipe("title", title),
	)
	_, err := p.Run(doc{Title: "x"})
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Run() error = %v, want ErrNodeNotFound", err)
	}
	if !strings.Contains(err.Error(), "pipe title") {
		t.Errorf("error %q does not name the failing pipe", err)
	}
}

func TestEmptyTree(t *testing.T) {
	p := New("empty", NewPipe("skip", setup, When(func(doc) bool { return false })))
	if _, err := p.Run(doc{}); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("Run() error = %v, want ErrEmptyTree", err)
	}
}

func TestNames(t *testing.T) {
	want := []string{"setup", "title", "keywords"}
	if diff := cmp.Diff(want, newTestPipeline().Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunEach(t *testing.T) {
	ref := New("ref", NewPipe("ref", func(s string, _ *etree.Element) (*etree.Element, error) {
		el := Root("ref")
		el.CreateAttr("id", s)
		return el, nil
	}))
	parent := Root("ref-list")
	if err := ref.RunEach(parent, []string{"B1", "B2", "B3"}); err != nil {
		t.Fatalf("RunEach() error = %v", err)
	}
	var ids []string
	for _, child := range parent.ChildElements() {
		ids = append(ids, child.SelectAttrValue("id", ""))
	}
	if diff := cmp.Diff([]string{"B1", "B2", "B3"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	p := newTestPipeline()
	in := doc{Title: "Déjà <vu>", Keywords: []string{"k"}}
	opts := SerializeOptions{Declaration: true, Doctype: `DOCTYPE article SYSTEM "x.dtd"`, Indent: 2}

	var outputs []string
	for range 2 {
		tree, err := p.Run(in)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		out, err := Serialize(tree, opts)
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		outputs = append(outputs, string(out))
	}
	if outputs[0] != outputs[1] {
		t.Errorf("outputs differ:\n%s\n---\n%s", outputs[0], outputs[1])
	}

	got := outputs[0]
	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<!DOCTYPE article SYSTEM "x.dtd">`,
		`<title>Déjà &lt;vu&gt;</title>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestFindNilTree(t *testing.T) {
	if _, err := Find(nil, "front"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Find(nil) error = %v, want ErrNodeNotFound", err)
	}
}

func TestText(t *testing.T) {
	root := Root("root")
	SubElement(root, "padded", "  value\n")
	if got := Text(root, "padded"); got != "value" {
		t.Errorf("Text(padded) = %q, want value", got)
	}
	if got := Text(root, "missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
	if got := Text(nil, "padded"); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}
