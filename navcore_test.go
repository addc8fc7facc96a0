package navcore

import (
	"strings"
	"testing"

	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/grid/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridNavigator_ExtendReplacesPreviousRectangle(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b c", "d e f", "g h i")
	require.True(t, n.Home())

	require.True(t, n.Extend(focus.Right))
	assert.Equal(t, []string{"a", "b"}, selectedIDs(n))
	anchor, ok := n.Anchor()
	require.True(t, ok)
	assert.Equal(t, coordinate.New(0, 0), anchor)

	require.True(t, n.Extend(focus.Down))
	assert.Equal(t, []string{"a", "b", "d", "e"}, selectedIDs(n))

	require.True(t, n.Extend(focus.Left))
	assert.Equal(t, []string{"a", "d"}, selectedIDs(n), "shrinking drops cells outside the new rectangle")
}

func TestGridNavigator_MoveResetsAnchor(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b c", "d e f")
	require.True(t, n.Home())

	require.True(t, n.Extend(focus.Down))
	require.True(t, n.Move(focus.Right))
	anchor, _ := n.Anchor()
	assert.Equal(t, coordinate.New(1, 1), anchor)

	require.True(t, n.Extend(focus.Right))
	assert.Equal(t, []string{"a", "d", "e", "f"}, selectedIDs(n), "earlier extension survives a plain move")
}

func TestGridNavigator_ShrinkingKeepsEarlierSelection(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b c")
	require.True(t, n.Home())
	require.True(t, n.Move(focus.Right))
	require.True(t, n.ToggleActive())
	require.True(t, n.Move(focus.Left))

	require.True(t, n.Extend(focus.Right))
	require.True(t, n.Extend(focus.Right))
	assert.Equal(t, []string{"a", "b", "c"}, selectedIDs(n))

	require.True(t, n.Extend(focus.Left))
	assert.Equal(t, []string{"a", "b"}, selectedIDs(n))

	require.True(t, n.Extend(focus.Left))
	assert.Equal(t, []string{"a", "b"}, selectedIDs(n), "b was selected before the range started")
}

func TestGridNavigator_FirstKeyOnlyFocuses(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b c")

	require.True(t, n.Move(focus.Right))
	at, _ := n.Active()
	assert.Equal(t, coordinate.New(0, 0), at)

	fresh := newTestNavigator(t, focus.WrapNone, "a b c")
	require.True(t, fresh.Extend(focus.Right))
	at, _ = fresh.Active()
	assert.Equal(t, coordinate.New(0, 0), at)
	anchor, ok := fresh.Anchor()
	require.True(t, ok)
	assert.Equal(t, at, anchor)
	assert.Empty(t, selectedIDs(fresh), "nothing to extend over yet")
}

func TestGridNavigator_ExtendBlockedAtEdge(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b")
	require.True(t, n.Home())

	require.True(t, n.Extend(focus.Right))
	assert.False(t, n.Extend(focus.Right))
	assert.Equal(t, []string{"a", "b"}, selectedIDs(n))
}

func TestGridNavigator_ToggleActive(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "!a b", "c d")

	require.True(t, n.ToggleActive())
	at, c := n.Active()
	assert.Equal(t, coordinate.New(0, 1), at, "first focusable cell")
	assert.True(t, c.Selected())

	require.True(t, n.ToggleActive())
	assert.False(t, c.Selected())
}

func TestGridNavigator_EdgeJumps(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "!a b c", "d e !f")

	require.True(t, n.End())
	at, _ := n.Active()
	assert.Equal(t, coordinate.New(1, 1), at)

	require.True(t, n.RowStart())
	at, _ = n.Active()
	assert.Equal(t, coordinate.New(1, 0), at)

	require.True(t, n.Home())
	at, _ = n.Active()
	assert.Equal(t, coordinate.New(0, 1), at)

	require.True(t, n.RowEnd())
	at, _ = n.Active()
	assert.Equal(t, coordinate.New(0, 2), at)
	anchor, _ := n.Anchor()
	assert.Equal(t, at, anchor)
}

func TestGridNavigator_SelectAllAndDeselectAll(t *testing.T) {
	n := newTestNavigator(t, focus.WrapNone, "a b", "c !d")

	assert.Equal(t, 3, n.SelectAll())
	assert.Equal(t, 3, n.DeselectAll())
	assert.Empty(t, selectedIDs(n))
}

func TestGridNavigator_NothingFocusable(t *testing.T) {
	n := newTestNavigator(t, focus.WrapLoop, "!a !b")

	assert.False(t, n.Move(focus.Right))
	assert.False(t, n.Extend(focus.Right))
	assert.False(t, n.ToggleActive())
	assert.False(t, n.Home())
	_, c := n.Active()
	assert.Nil(t, c)
}

func newTestNavigator(t *testing.T, wrap focus.Wrap, rows ...string) *GridNavigator {
	t.Helper()
	var cells [][]*cell.Basic
	for _, row := range rows {
		var line []*cell.Basic
		for _, id := range strings.Fields(row) {
			line = append(line, cell.New(cell.Options{
				ID:       strings.TrimPrefix(id, "!"),
				Disabled: strings.HasPrefix(id, "!"),
			}))
		}
		cells = append(cells, line)
	}
	table, err := grid.NewTable(cells, grid.Options{})
	require.NoError(t, err)
	return NewGridNavigator(Options{Grid: table, Wrap: wrap})
}

func selectedIDs(n *GridNavigator) []string {
	var ids []string
	for _, c := range n.Selection().Selected() {
		ids = append(ids, c.ID())
	}
	return ids
}
