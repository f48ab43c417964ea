package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrNodeNotFound is returned when a pipe navigates to a node that no
// earlier pipe created. It always indicates a misordered pipeline.
var ErrNodeNotFound = errors.New("node not found")

// Find returns the first element matching an etree path relative to root.
func Find(root *etree.Element, path string) (*etree.Element, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: %s (no tree)", ErrNodeNotFound, path)
	}
	if el := root.FindElement(path); el != nil {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %s under <%s>", ErrNodeNotFound, path, root.Tag)
}

// Root creates a detached root element.
func Root(tag string) *etree.Element {
	return etree.NewElement(tag)
}

// SubElement appends a child carrying text. Empty text leaves the child empty.
func SubElement(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	if text != "" {
		el.SetText(text)
	}
	return el
}

// Attr sets attributes from alternating key, value pairs, skipping empty values.
func Attr(el *etree.Element, kv ...string) *etree.Element {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			el.CreateAttr(kv[i], kv[i+1])
		}
	}
	return el
}

// Text returns the trimmed text of the element at path, or "".
func Text(root *etree.Element, path string) string {
	if root == nil {
		return ""
	}
	el := root.FindElement(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
