package selection

import (
	"testing"

	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_SpanSelectedOnce(t *testing.T) {
	big := cell.New(cell.Options{ID: "big", RowSpan: 2, ColSpan: 2})
	var toggles int
	table := newTestTable(t, [][]*cell.Basic{
		{big, newCell("b")},
		{newCell("c")},
	})
	s := New(countingGrid{Table: table, onSet: func() { toggles++ }}, Options{})

	changed := s.Select(coordinate.New(0, 0), coordinate.New(1, 1))
	assert.Equal(t, 1, changed)
	assert.Equal(t, 1, toggles, "the spanning cell is written once")
	assert.True(t, big.Selected())
	assert.Len(t, s.Selected(), 1)
}

func TestSelection_ToggleSpanFlipsOnce(t *testing.T) {
	big := cell.New(cell.Options{ID: "big", RowSpan: 2, ColSpan: 2})
	s := New(newTestTable(t, [][]*cell.Basic{{big}}), Options{})

	s.Toggle(coordinate.New(0, 0), coordinate.New(1, 1))
	assert.True(t, big.Selected(), "four coordinates, one flip")
}

func TestSelection_DirectionDoesNotMatter(t *testing.T) {
	table := newGrid(t, 3, 3)
	s := New(table, Options{})

	s.Select(coordinate.New(2, 2), coordinate.New(1, 1))
	assert.Equal(t, []string{"1.1", "1.2", "2.1", "2.2"}, ids(s.Selected()))
}

func TestSelection_SkipsDisabledAndUnselectable(t *testing.T) {
	disabled := cell.New(cell.Options{ID: "d", Disabled: true})
	fixed := cell.New(cell.Options{ID: "f", Unselectable: true})
	s := New(newTestTable(t, [][]*cell.Basic{{newCell("a"), disabled, fixed}}), Options{})

	assert.Equal(t, 1, s.SelectAll())
	assert.False(t, disabled.Selected())
	assert.False(t, fixed.Selected())
}

func TestSelection_SelectIsIdempotent(t *testing.T) {
	table := newGrid(t, 2, 2)
	s := New(table, Options{})

	assert.Equal(t, 1, s.SelectAt(coordinate.New(0, 1)))
	assert.Equal(t, 0, s.SelectAt(coordinate.New(0, 1)))
	assert.Equal(t, []string{"0.1"}, ids(s.Selected()))
}

func TestSelection_RoundTrip(t *testing.T) {
	table := newGrid(t, 4, 4)
	s := New(table, Options{})
	s.SelectAt(coordinate.New(3, 3))

	from, to := coordinate.New(2, 0), coordinate.New(0, 2)
	assert.Equal(t, 9, s.Select(from, to))
	assert.Equal(t, 9, s.Deselect(from, to))
	assert.Equal(t, []string{"3.3"}, ids(s.Selected()), "only the prior selection is left")
}

func TestSelection_SelectCellsReportsNewlySelected(t *testing.T) {
	table := newGrid(t, 2, 2)
	s := New(table, Options{})
	s.SelectAt(coordinate.New(0, 1))

	changed := s.SelectCells(coordinate.New(0, 0), coordinate.New(1, 1))
	assert.Equal(t, []string{"0.0", "1.0", "1.1"}, ids(changed))
	assert.Empty(t, s.SelectCells(coordinate.New(0, 0), coordinate.New(1, 1)))
}

func TestSelection_SelectAllAndDeselectAll(t *testing.T) {
	table := newGrid(t, 2, 3)
	s := New(table, Options{})

	assert.Equal(t, 6, s.SelectAll())
	assert.Len(t, s.Selected(), 6)
	assert.Equal(t, 6, s.DeselectAll())
	assert.Empty(t, s.Selected())
}

func TestSelection_RowAndColumn(t *testing.T) {
	table := newGrid(t, 3, 3)
	s := New(table, Options{})

	assert.Equal(t, 3, s.SelectRow(1))
	assert.Equal(t, 2, s.SelectColumn(0), "1.0 was already selected")
	assert.Equal(t, []string{"0.0", "1.0", "1.1", "1.2", "2.0"}, ids(s.Selected()))
}

func TestSelection_OutOfRangeIsSkipped(t *testing.T) {
	s := New(newGrid(t, 2, 2), Options{})
	assert.NotPanics(t, func() {
		assert.Equal(t, 1, s.Select(coordinate.New(1, 1), coordinate.New(10, 10)))
		assert.Equal(t, 0, s.Select(coordinate.New(-5, -5), coordinate.New(-1, -1)))
	})
}

// countingGrid reports every SetSelected that goes through its cells.
type countingGrid struct {
	*grid.Table
	onSet func()
}

func (g countingGrid) Cell(at coordinate.RowCol) cell.Cell {
	c := g.Table.Cell(at)
	if c == nil {
		return nil
	}
	return countingCell{Cell: c, onSet: g.onSet}
}

type countingCell struct {
	cell.Cell
	onSet func()
}

func (c countingCell) SetSelected(selected bool) {
	c.onSet()
	c.Cell.SetSelected(selected)
}

func newGrid(t *testing.T, rows, cols int) *grid.Table {
	t.Helper()
	cells := make([][]*cell.Basic, rows)
	for r := range rows {
		for c := range cols {
			id := string(rune('0'+r)) + "." + string(rune('0'+c))
			cells[r] = append(cells[r], newCell(id))
		}
	}
	return newTestTable(t, cells)
}

func newTestTable(t *testing.T, rows [][]*cell.Basic) *grid.Table {
	t.Helper()
	table, err := grid.NewTable(rows, grid.Options{})
	require.NoError(t, err)
	return table
}

func newCell(id string) *cell.Basic {
	return cell.New(cell.Options{ID: id})
}

func ids(cells []cell.Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.ID())
	}
	return out
}
