package tree

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hnimtadd/navcore/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTree:
//
//	a
//	├── b
//	│   └── c
//	└── d
//	e
var testTree = map[string][]string{
	"a": {"b", "d"},
	"b": {"c"},
}

func TestNested_DescendantsPreOrder(t *testing.T) {
	n := newTestNested(testTree, "a", "e")

	got, err := n.Descendants(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, got)

	got, err = n.Descendants(context.Background(), "e")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNested_DescendantsWaitForSlowSiblings(t *testing.T) {
	n := NewNested(NestedOptions[string]{
		Children: func(_ context.Context, node string) ([]string, error) {
			if node == "b" {
				// b's subtree resolves after d's.
				time.Sleep(20 * time.Millisecond)
			}
			return testTree[node], nil
		},
	})
	n.SetDataNodes([]string{"a"})

	got, err := n.Descendants(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, got, "order does not depend on completion order")
}

func TestNested_ChildrenError(t *testing.T) {
	boom := errors.New("boom")
	n := NewNested(NestedOptions[string]{
		Children: func(_ context.Context, node string) ([]string, error) {
			if node == "c" {
				return nil, boom
			}
			return testTree[node], nil
		},
	})
	n.SetDataNodes([]string{"a"})

	_, err := n.Descendants(context.Background(), "a")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, n.ExpandAll(context.Background()), boom)
	assert.True(t, n.Expansion().IsEmpty(), "nothing is expanded on failure")
}

func TestNested_ExpandAllIsOneBatch(t *testing.T) {
	n := newTestNested(testTree, "a", "e")
	n.Expand("e")
	var changes []selection.Change[any]
	n.Expansion().Subscribe(func(c selection.Change[any]) { changes = append(changes, c) })

	require.NoError(t, n.ExpandAll(context.Background()))
	require.Len(t, changes, 1)
	assert.ElementsMatch(t, []any{"a", "b", "c", "d", "e"}, changes[0].After)
	assert.Equal(t, []any{"e"}, changes[0].Before)
}

func TestNested_VisibleNodesFollowExpansion(t *testing.T) {
	n := newTestNested(testTree, "a", "e")
	ctx := context.Background()

	visible, err := n.VisibleNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "e"}, visible)

	n.Expand("a")
	visible, err = n.VisibleNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d", "e"}, visible)

	n.Expand("b")
	visible, err = n.VisibleNodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visible)
}

func TestNested_AdjacencyRecomputesVisibleNodes(t *testing.T) {
	n := newTestNested(testTree, "a", "e")
	ctx := context.Background()

	next, ok, err := n.Next(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "e", next)

	n.Expand("a")
	next, ok, err = n.Next(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", next, "expansion since the last query is picked up")

	prev, ok, _ := n.Previous(ctx, "e")
	require.True(t, ok)
	assert.Equal(t, "d", prev)

	last, ok, _ := n.Last(ctx)
	require.True(t, ok)
	assert.Equal(t, "e", last)
	first, ok, _ := n.First(ctx)
	require.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok, err = n.Next(ctx, "e")
	require.NoError(t, err)
	assert.False(t, ok, "no next at the end")
	_, ok, _ = n.Previous(ctx, "a")
	assert.False(t, ok, "no previous at the start")
	_, ok, err = n.Next(ctx, "c")
	require.NoError(t, err)
	assert.False(t, ok, "hidden nodes have no neighbours")
	_, ok, _ = n.Next(ctx, "zzz")
	assert.False(t, ok)
}

func TestNested_ExpandAndCollapseDescendants(t *testing.T) {
	n := newTestNested(testTree, "a", "e")
	ctx := context.Background()

	require.NoError(t, n.ExpandDescendants(ctx, "b"))
	assert.True(t, n.IsExpanded("b"))
	assert.True(t, n.IsExpanded("c"))
	assert.False(t, n.IsExpanded("a"))

	require.NoError(t, n.CollapseDescendants(ctx, "b"))
	assert.True(t, n.Expansion().IsEmpty())
}

func TestNested_StaleResolution(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	n := NewNested(NestedOptions[string]{
		Children: func(_ context.Context, node string) ([]string, error) {
			if node == "a" {
				once.Do(func() { close(started) })
				<-release
			}
			return testTree[node], nil
		},
	})
	n.SetDataNodes([]string{"a"})

	errc := make(chan error, 1)
	go func() {
		_, err := n.Descendants(context.Background(), "a")
		errc <- err
	}()

	<-started
	n.SetDataNodes([]string{"x"})
	close(release)
	assert.ErrorIs(t, <-errc, ErrStaleData)
	assert.Equal(t, []string{"x"}, n.DataNodes())
}

func TestNested_FromChannel(t *testing.T) {
	children := FromChannel(func(node string) <-chan []string {
		ch := make(chan []string, 1)
		if kids, ok := testTree[node]; ok {
			ch <- kids
		}
		close(ch)
		return ch
	})
	n := NewNested(NestedOptions[string]{Children: children})
	n.SetDataNodes([]string{"a"})

	got, err := n.Descendants(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, got)
}

func TestNested_FromChannelHonoursContext(t *testing.T) {
	children := FromChannel(func(string) <-chan []string {
		return make(chan []string) // never delivers
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := children(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)

	none := FromChannel(func(string) <-chan []string { return nil })
	got, err := none(context.Background(), "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func newTestNested(tree map[string][]string, roots ...string) *Nested[string] {
	n := NewNested(NestedOptions[string]{
		Children: func(_ context.Context, node string) ([]string, error) {
			return tree[node], nil
		},
	})
	n.SetDataNodes(roots)
	return n
}
