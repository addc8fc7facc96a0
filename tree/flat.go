package tree

import (
	"context"
	"slices"

	"github.com/hnimtadd/navcore/logger"
	"github.com/hnimtadd/navcore/utils"
)

type FlatOptions[T any] struct {
	GetLevel     func(T) int
	IsExpandable func(T) bool

	// TrackBy returns the key a node is tracked by. Defaults to the node.
	TrackBy func(T) any

	Logger logger.Logger
}

var _ Control[int] = &Flat[int]{}

// Flat controls a tree that was flattened depth-first into one sequence of
// level annotated nodes. The descendants of a node are the run of nodes
// right after it with a strictly greater level.
type Flat[T any] struct {
	base[T]

	getLevel     func(T) int
	isExpandable func(T) bool

	dataNodes []T

	// Rebuilt on SetDataNodes: the position of every node key, and the
	// position of the parent of every non-root node key.
	positions map[any]int
	parents   map[any]int
}

func NewFlat[T any](opts FlatOptions[T]) *Flat[T] {
	utils.Assert(opts.GetLevel != nil, "flat tree needs GetLevel")
	f := &Flat[T]{
		base:         newBase(opts.TrackBy, opts.Logger),
		getLevel:     opts.GetLevel,
		isExpandable: opts.IsExpandable,
	}
	if f.isExpandable == nil {
		f.isExpandable = func(T) bool { return false }
	}
	f.SetDataNodes(nil)
	return f
}

func (f *Flat[T]) DataNodes() []T {
	return f.dataNodes
}

// SetDataNodes replaces the flattened sequence and rebuilds the parent
// table. The most recent node seen at each level is the parent of the next
// node one level down.
func (f *Flat[T]) SetDataNodes(nodes []T) {
	f.dataNodes = slices.Clone(nodes)
	f.positions = make(map[any]int, len(nodes))
	f.parents = make(map[any]int, len(nodes))

	// lastAt[l] is the position of the most recent node at level l, or -1
	// when a level was skipped.
	var lastAt []int
	for i, n := range f.dataNodes {
		k := f.key(n)
		if _, dup := f.positions[k]; !dup {
			f.positions[k] = i
		}

		level := max(f.getLevel(n), 0)
		if level > 0 && level-1 < len(lastAt) && lastAt[level-1] >= 0 {
			f.parents[k] = lastAt[level-1]
		}
		if level < len(lastAt) {
			lastAt = lastAt[:level]
		}
		for len(lastAt) < level {
			lastAt = append(lastAt, -1)
		}
		lastAt = append(lastAt, i)
	}
	f.logger.Debug("flat tree data replaced", "nodes", len(f.dataNodes))
}

func (f *Flat[T]) position(node T) int {
	if i, ok := f.positions[f.key(node)]; ok {
		return i
	}
	return -1
}

func (f *Flat[T]) Level(node T) int {
	return f.getLevel(node)
}

// Parent returns the immediate parent of node. Roots and unknown nodes
// have none.
func (f *Flat[T]) Parent(node T) (T, bool) {
	var zero T
	i, ok := f.parents[f.key(node)]
	if !ok {
		return zero, false
	}
	return f.dataNodes[i], true
}

// Descendants scans forward from node while the level is strictly greater
// than node's own. The first node at the same level or above ends the run.
func (f *Flat[T]) Descendants(_ context.Context, node T) ([]T, error) {
	start := f.position(node)
	if start < 0 {
		return nil, nil
	}
	level := f.getLevel(f.dataNodes[start])

	var out []T
	for i := start + 1; i < len(f.dataNodes); i++ {
		if f.getLevel(f.dataNodes[i]) <= level {
			break
		}
		out = append(out, f.dataNodes[i])
	}
	return out, nil
}

// ExpandAll expands every expandable node in one change.
func (f *Flat[T]) ExpandAll(_ context.Context) error {
	var expandable []T
	for _, n := range f.dataNodes {
		if f.isExpandable(n) {
			expandable = append(expandable, n)
		}
	}
	if len(expandable) == 0 {
		return nil
	}
	return f.expansion.Select(f.items(expandable...)...)
}

func (f *Flat[T]) ExpandDescendants(ctx context.Context, node T) error {
	descendants, err := f.Descendants(ctx, node)
	if err != nil {
		return err
	}
	return f.expansion.Select(f.items(append([]T{node}, descendants...)...)...)
}

func (f *Flat[T]) CollapseDescendants(ctx context.Context, node T) error {
	descendants, err := f.Descendants(ctx, node)
	if err != nil {
		return err
	}
	return f.expansion.Deselect(f.items(append([]T{node}, descendants...)...)...)
}

func (f *Flat[T]) First(_ context.Context) (T, bool, error) {
	n, ok := adjacent(f.dataNodes, 0, 0)
	return n, ok, nil
}

func (f *Flat[T]) Last(_ context.Context) (T, bool, error) {
	n, ok := adjacent(f.dataNodes, len(f.dataNodes)-1, 0)
	return n, ok, nil
}

// Next is the node after node in the flat sequence, collapsed or not.
func (f *Flat[T]) Next(_ context.Context, node T) (T, bool, error) {
	n, ok := adjacent(f.dataNodes, f.position(node), 1)
	return n, ok, nil
}

// Previous is the node before node in the flat sequence, collapsed or not.
func (f *Flat[T]) Previous(_ context.Context, node T) (T, bool, error) {
	n, ok := adjacent(f.dataNodes, f.position(node), -1)
	return n, ok, nil
}

// VisibleNodes filters the sequence down to nodes with no collapsed
// ancestor.
func (f *Flat[T]) VisibleNodes() []T {
	var out []T
	hiddenBelow := -1
	for _, n := range f.dataNodes {
		level := f.getLevel(n)
		if hiddenBelow >= 0 && level > hiddenBelow {
			continue
		}
		hiddenBelow = -1
		out = append(out, n)
		if !f.IsExpanded(n) {
			hiddenBelow = level
		}
	}
	return out
}
