package grid

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/logger"
)

var ErrNilCell = errors.New("grid: nil cell")

// Grid resolves coordinates to logical cells. Cell must be a pure lookup:
// the same coordinates resolve to the same cell for a given data snapshot,
// and a coordinate covered by a span resolves to the spanning cell.
type Grid interface {
	// Cell returns nil for out-of-range or uncovered coordinates.
	Cell(at coordinate.RowCol) cell.Cell
	MaxRowCount() int
	MaxColCount() int
}

const uncovered int32 = -1

var _ Grid = &Table{}

type Options struct {
	Logger logger.Logger
}

// Table is an arena-backed Grid. Cells live in a single slice indexed by
// their handle, and an index matrix maps every coordinate to the arena slot
// of the cell covering it.
type Table struct {
	// The arena. cells[h] is the cell with handle h.
	cells []*cell.Basic

	// origins[h] is the top-left coordinate of cell h.
	origins []coordinate.RowCol

	// index[row][col] is the arena slot covering that coordinate, or
	// uncovered. Rows may have different lengths.
	index [][]int32

	cols int

	logger logger.Logger
}

// NewTable lays rows out the way an HTML table does: cells are placed left
// to right, skipping coordinates already covered by a span from an earlier
// row.
func NewTable(rows [][]*cell.Basic, opts Options) (*Table, error) {
	t := &Table{logger: logger.OrDiscard(opts.Logger)}
	if err := t.Reset(rows); err != nil {
		return nil, err
	}
	return t, nil
}

// Reset replaces the data snapshot and re-issues every handle. On error the
// previous snapshot is kept.
func (t *Table) Reset(rows [][]*cell.Basic) error {
	for r, row := range rows {
		for c, item := range row {
			if item == nil {
				return fmt.Errorf("%w at row %d, item %d", ErrNilCell, r, c)
			}
		}
	}

	next := &layout{}
	for r, row := range rows {
		col := 0
		for _, item := range row {
			for next.covered(r, col) {
				col++
			}
			next.place(item, coordinate.New(r, col))
			_, colSpan := item.Span()
			col += colSpan
		}
	}

	t.cells = next.cells
	t.origins = next.origins
	t.index = next.index
	t.cols = 0
	for _, row := range t.index {
		t.cols = max(t.cols, len(row))
	}
	t.logger.Debug("grid table reset",
		"cells", len(t.cells), "rows", len(t.index), "cols", t.cols)
	return nil
}

func (t *Table) Cell(at coordinate.RowCol) cell.Cell {
	if c, ok := t.Lookup(at); ok {
		return c
	}
	return nil
}

// Lookup is Cell with the concrete type, for owners that need the label or
// the setters.
func (t *Table) Lookup(at coordinate.RowCol) (*cell.Basic, bool) {
	if at.Row < 0 || at.Row >= len(t.index) {
		return nil, false
	}
	row := t.index[at.Row]
	if at.Col < 0 || at.Col >= len(row) {
		return nil, false
	}
	slot := row[at.Col]
	if slot == uncovered {
		return nil, false
	}
	return t.cells[slot], true
}

func (t *Table) MaxRowCount() int { return len(t.index) }
func (t *Table) MaxColCount() int { return t.cols }

// At returns the cell with handle h.
func (t *Table) At(h cell.Handle) (*cell.Basic, bool) {
	if int(h) >= len(t.cells) {
		return nil, false
	}
	return t.cells[h], true
}

// Origin returns the top-left coordinate of the cell with handle h.
func (t *Table) Origin(h cell.Handle) (coordinate.RowCol, bool) {
	if int(h) >= len(t.origins) {
		return coordinate.RowCol{}, false
	}
	return t.origins[h], true
}

// Len returns the number of logical cells.
func (t *Table) Len() int { return len(t.cells) }

type layout struct {
	cells   []*cell.Basic
	origins []coordinate.RowCol
	index   [][]int32
}

func (l *layout) covered(row, col int) bool {
	if row >= len(l.index) || col >= len(l.index[row]) {
		return false
	}
	return l.index[row][col] != uncovered
}

func (l *layout) place(item *cell.Basic, origin coordinate.RowCol) {
	slot := int32(len(l.cells))
	item.Bind(cell.Handle(slot))
	l.cells = append(l.cells, item)
	l.origins = append(l.origins, origin)

	rowSpan, colSpan := item.Span()
	for row := origin.Row; row < origin.Row+rowSpan; row++ {
		for col := origin.Col; col < origin.Col+colSpan; col++ {
			// Overlapping spans keep their first owner.
			if l.covered(row, col) {
				continue
			}
			l.set(row, col, slot)
		}
	}
}

func (l *layout) set(row, col int, slot int32) {
	for len(l.index) <= row {
		l.index = append(l.index, nil)
	}
	for len(l.index[row]) <= col {
		l.index[row] = append(l.index[row], uncovered)
	}
	l.index[row][col] = slot
}
