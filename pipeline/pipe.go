// Package pipeline implements the guarded, ordered transformation engine that
// builds an XML working tree from one input value.
//
// A Pipe is one step. It carries zero or more preconditions and a transform.
// When any precondition is unmet the transform is not invoked and the tree
// passes through unchanged, so a field absent from the source simply yields
// no output node.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/metaexport/value"
)

// Precondition guards a pipe. It receives the input and the tree built so far.
type Precondition[T any] func(in T, tree *etree.Element) bool

// TransformFunc mutates or replaces the working tree. The first pipe of a
// pipeline receives a nil tree and returns the root it creates.
type TransformFunc[T any] func(in T, tree *etree.Element) (*etree.Element, error)

// Pipe is one named, optionally guarded transformation step.
type Pipe[T any] struct {
	Name          string
	Preconditions []Precondition[T]
	Transform     TransformFunc[T]
}

// NewPipe creates a pipe.
func NewPipe[T any](name string, fn TransformFunc[T], preconditions ...Precondition[T]) Pipe[T] {
	return Pipe[T]{Name: name, Preconditions: preconditions, Transform: fn}
}

// Apply runs the pipe. It reports whether the transform ran.
func (p Pipe[T]) Apply(in T, tree *etree.Element) (*etree.Element, bool, error) {
	for _, cond := range p.Preconditions {
		if !evaluate(cond, in, tree) {
			slog.Debug("pipe skipped", "pipe", p.Name)
			return tree, false, nil
		}
	}
	out, err := p.Transform(in, tree)
	if err != nil {
		return tree, true, err
	}
	return out, true, nil
}

// evaluate runs a precondition, treating a panic while computing it as unmet.
func evaluate[T any](cond Precondition[T], in T, tree *etree.Element) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("precondition panicked", "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	return cond(in, tree)
}

// Has returns a precondition met when get yields a non-empty value: not nil,
// not a blank string, not an empty slice or map.
func Has[T any](get func(T) any) Precondition[T] {
	return func(in T, _ *etree.Element) bool {
		return !value.IsEmpty(get(in))
	}
}

// HasText is Has for string accessors.
func HasText[T any](get func(T) string) Precondition[T] {
	return func(in T, _ *etree.Element) bool {
		return !value.IsEmpty(get(in))
	}
}

// When wraps a plain predicate on the input.
func When[T any](pred func(T) bool) Precondition[T] {
	return func(in T, _ *etree.Element) bool {
		return pred(in)
	}
}
