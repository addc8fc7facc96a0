package tree

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/hnimtadd/navcore/logger"
	"golang.org/x/sync/errgroup"
)

// ErrStaleData is returned when the data nodes were replaced while a call
// was still resolving children of the old data.
var ErrStaleData = errors.New("tree: data nodes changed during resolution")

// ChildrenFunc resolves the children of a node. It may block, and is
// called at most once per node and call.
type ChildrenFunc[T any] func(ctx context.Context, node T) ([]T, error)

// FromChannel adapts a producer that delivers the children of a node as a
// single value on a channel. Only the first value is used; a channel
// closed without a value means no children.
func FromChannel[T any](produce func(node T) <-chan []T) ChildrenFunc[T] {
	return func(ctx context.Context, node T) ([]T, error) {
		ch := produce(node)
		if ch == nil {
			return nil, nil
		}
		select {
		case children, ok := <-ch:
			if !ok {
				return nil, nil
			}
			return children, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

type NestedOptions[T any] struct {
	Children ChildrenFunc[T]

	// TrackBy returns the key a node is tracked by. Defaults to the node.
	TrackBy func(T) any

	Logger logger.Logger
}

var _ Control[int] = &Nested[int]{}

// Nested controls a tree given as root nodes plus a function resolving the
// children of a node.
//
// Children of sibling subtrees are resolved concurrently. Replacing the
// data bumps a generation counter; a call that started on an older
// generation returns ErrStaleData rather than stale nodes. In-flight
// resolutions are not cancelled; cancel their context for that.
type Nested[T any] struct {
	base[T]

	children ChildrenFunc[T]

	mu         sync.Mutex
	dataNodes  []T
	generation uint64
}

func NewNested[T any](opts NestedOptions[T]) *Nested[T] {
	children := opts.Children
	if children == nil {
		children = func(context.Context, T) ([]T, error) { return nil, nil }
	}
	return &Nested[T]{
		base:     newBase(opts.TrackBy, opts.Logger),
		children: children,
	}
}

// DataNodes returns the root nodes.
func (n *Nested[T]) DataNodes() []T {
	roots, _ := n.snapshot()
	return roots
}

// SetDataNodes replaces the root nodes.
func (n *Nested[T]) SetDataNodes(nodes []T) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dataNodes = slices.Clone(nodes)
	n.generation++
}

func (n *Nested[T]) snapshot() ([]T, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.dataNodes), n.generation
}

func (n *Nested[T]) checkGeneration(gen uint64) error {
	n.mu.Lock()
	current := n.generation
	n.mu.Unlock()
	if current != gen {
		n.logger.Debug("dropping stale tree resolution", "started", gen, "current", current)
		return ErrStaleData
	}
	return nil
}

// Descendants resolves every descendant of node, in pre-order. It returns
// once all nested resolutions have completed.
func (n *Nested[T]) Descendants(ctx context.Context, node T) ([]T, error) {
	_, gen := n.snapshot()
	out, err := n.descendants(ctx, node)
	if err != nil {
		return nil, err
	}
	if err := n.checkGeneration(gen); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *Nested[T]) descendants(ctx context.Context, node T) ([]T, error) {
	children, err := n.children(ctx, node)
	if err != nil {
		return nil, err
	}
	return n.forest(ctx, children)
}

// forest returns roots and all their descendants in pre-order. Each root's
// subtree resolves in its own goroutine.
func (n *Nested[T]) forest(ctx context.Context, roots []T) ([]T, error) {
	if len(roots) == 0 {
		return nil, nil
	}
	subtrees := make([][]T, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		g.Go(func() error {
			d, err := n.descendants(gctx, root)
			subtrees[i] = d
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []T
	for i, root := range roots {
		out = append(out, root)
		out = append(out, subtrees[i]...)
	}
	return out, nil
}

// ExpandAll resolves the whole tree first and then replaces the expansion
// state in a single change, so subscribers see one update.
func (n *Nested[T]) ExpandAll(ctx context.Context) error {
	roots, gen := n.snapshot()
	all, err := n.forest(ctx, roots)
	if err != nil {
		return err
	}
	if err := n.checkGeneration(gen); err != nil {
		return err
	}
	return n.expansion.SetSelection(n.items(all...)...)
}

func (n *Nested[T]) ExpandDescendants(ctx context.Context, node T) error {
	descendants, err := n.Descendants(ctx, node)
	if err != nil {
		return err
	}
	return n.expansion.Select(n.items(append([]T{node}, descendants...)...)...)
}

func (n *Nested[T]) CollapseDescendants(ctx context.Context, node T) error {
	descendants, err := n.Descendants(ctx, node)
	if err != nil {
		return err
	}
	return n.expansion.Deselect(n.items(append([]T{node}, descendants...)...)...)
}

// VisibleNodes walks the roots and descends only into expanded nodes. It
// is recomputed on every call since expansion may have changed.
func (n *Nested[T]) VisibleNodes(ctx context.Context) ([]T, error) {
	roots, gen := n.snapshot()
	var out []T
	var walk func(nodes []T) error
	walk = func(nodes []T) error {
		for _, node := range nodes {
			out = append(out, node)
			if !n.IsExpanded(node) {
				continue
			}
			children, err := n.children(ctx, node)
			if err != nil {
				return err
			}
			if err := walk(children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(roots); err != nil {
		return nil, err
	}
	if err := n.checkGeneration(gen); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *Nested[T]) First(ctx context.Context) (T, bool, error) {
	return n.visibleAt(ctx, func([]T) (int, int) { return 0, 0 })
}

func (n *Nested[T]) Last(ctx context.Context) (T, bool, error) {
	return n.visibleAt(ctx, func(visible []T) (int, int) { return len(visible) - 1, 0 })
}

func (n *Nested[T]) Next(ctx context.Context, node T) (T, bool, error) {
	return n.visibleAt(ctx, func(visible []T) (int, int) { return n.indexOf(visible, node), 1 })
}

func (n *Nested[T]) Previous(ctx context.Context, node T) (T, bool, error) {
	return n.visibleAt(ctx, func(visible []T) (int, int) { return n.indexOf(visible, node), -1 })
}

// visibleAt recomputes the visible nodes and picks one relative to the
// index chosen by locate.
func (n *Nested[T]) visibleAt(ctx context.Context, locate func(visible []T) (i, offset int)) (T, bool, error) {
	var zero T
	visible, err := n.VisibleNodes(ctx)
	if err != nil {
		return zero, false, err
	}
	i, offset := locate(visible)
	node, ok := adjacent(visible, i, offset)
	return node, ok, nil
}
