package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
)

// ErrEmptyTree is returned when a pipeline completes without building a root.
var ErrEmptyTree = errors.New("pipeline produced no tree")

// Pipeline is an ordered sequence of pipes run left to right.
type Pipeline[T any] struct {
	name  string
	pipes []Pipe[T]
}

// New creates a pipeline. Pipe order is significant: later pipes navigate
// into nodes earlier pipes created.
func New[T any](name string, pipes ...Pipe[T]) *Pipeline[T] {
	return &Pipeline[T]{name: name, pipes: pipes}
}

// Names returns the pipe names in execution order.
func (p *Pipeline[T]) Names() []string {
	names := make([]string, len(p.pipes))
	for i, pipe := range p.pipes {
		names[i] = pipe.Name
	}
	return names
}

// Run threads a nil tree through every pipe and returns the finished tree.
// The first failing pipe stops the run.
func (p *Pipeline[T]) Run(in T) (*etree.Element, error) {
	var tree *etree.Element
	for _, pipe := range p.pipes {
		var err error
		tree, _, err = pipe.Apply(in, tree)
		if err != nil {
			slog.Error("pipe failed", "pipeline", p.name, "pipe", pipe.Name, "err", err)
			return nil, fmt.Errorf("%s: pipe %s: %w", p.name, pipe.Name, err)
		}
	}
	if tree == nil {
		return nil, fmt.Errorf("%s: %w", p.name, ErrEmptyTree)
	}
	return tree, nil
}

// RunEach runs the pipeline once per input and appends every resulting
// fragment to parent, in order.
func (p *Pipeline[T]) RunEach(parent *etree.Element, items []T) error {
	for _, item := range items {
		frag, err := p.Run(item)
		if err != nil {
			return err
		}
		parent.AddChild(frag)
	}
	return nil
}
