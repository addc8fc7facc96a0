// Package tree implements expansion state and traversal for flat and
// nested tree data.
package tree

import (
	"context"

	"github.com/hnimtadd/navcore/logger"
	"github.com/hnimtadd/navcore/selection"
)

// Control is the contract shared by Flat and Nested. Methods taking a
// context may have to resolve children; for Flat they return immediately.
//
// Asking for the neighbour of a node at a boundary, or of a node that is not
// part of the data, reports false and no error.
type Control[T any] interface {
	DataNodes() []T
	SetDataNodes(nodes []T)

	IsExpanded(node T) bool
	Expand(node T)
	Collapse(node T)
	Toggle(node T)
	ExpandAll(ctx context.Context) error
	CollapseAll()

	Descendants(ctx context.Context, node T) ([]T, error)
	ExpandDescendants(ctx context.Context, node T) error
	CollapseDescendants(ctx context.Context, node T) error

	First(ctx context.Context) (T, bool, error)
	Last(ctx context.Context) (T, bool, error)
	Next(ctx context.Context, node T) (T, bool, error)
	Previous(ctx context.Context, node T) (T, bool, error)

	// Expansion is the expansion state: a selection over node keys.
	Expansion() *selection.Model[any]
}

// base holds the expansion state both controls share.
type base[T any] struct {
	trackBy   func(T) any
	expansion *selection.Model[any]
	logger    logger.Logger
}

func newBase[T any](trackBy func(T) any, l logger.Logger) base[T] {
	l = logger.OrDiscard(l)
	return base[T]{
		trackBy:   trackBy,
		expansion: selection.New[any](selection.Options[any]{Multiple: true, Logger: l}),
		logger:    l,
	}
}

// key is the comparable key a node is tracked by.
func (b *base[T]) key(node T) any {
	var v any = node
	if b.trackBy != nil {
		v = b.trackBy(node)
	}
	k, err := selection.Identity(v)
	if err != nil {
		// Unhashable nodes all share the nil key; TrackBy is the fix.
		b.logger.Warn("tree node has no usable identity, set TrackBy", "error", err)
		return nil
	}
	return k
}

func (b *base[T]) items(nodes ...T) []selection.Item[any] {
	items := make([]selection.Item[any], 0, len(nodes))
	for _, n := range nodes {
		items = append(items, selection.Of(b.key(n)))
	}
	return items
}

func (b *base[T]) Expansion() *selection.Model[any] {
	return b.expansion
}

func (b *base[T]) IsExpanded(node T) bool {
	// Keys come out of selection.Identity, so lookups can't fail.
	ok, _ := b.expansion.IsSelected(selection.Of(b.key(node)))
	return ok
}

func (b *base[T]) Expand(node T) {
	b.expand(node)
}

func (b *base[T]) Collapse(node T) {
	b.collapse(node)
}

func (b *base[T]) Toggle(node T) {
	if b.IsExpanded(node) {
		b.collapse(node)
		return
	}
	b.expand(node)
}

func (b *base[T]) CollapseAll() {
	b.expansion.Clear()
}

func (b *base[T]) expand(nodes ...T) {
	if err := b.expansion.Select(b.items(nodes...)...); err != nil {
		b.logger.Warn("expand failed", "error", err)
	}
}

func (b *base[T]) collapse(nodes ...T) {
	if err := b.expansion.Deselect(b.items(nodes...)...); err != nil {
		b.logger.Warn("collapse failed", "error", err)
	}
}

func (b *base[T]) indexOf(nodes []T, node T) int {
	k := b.key(node)
	for i, n := range nodes {
		if b.key(n) == k {
			return i
		}
	}
	return -1
}

// adjacent returns nodes[i+offset] when i is a valid index and the target
// is in range.
func adjacent[T any](nodes []T, i, offset int) (T, bool) {
	var zero T
	if i < 0 {
		return zero, false
	}
	j := i + offset
	if j < 0 || j >= len(nodes) {
		return zero, false
	}
	return nodes[j], true
}
