// Package selection applies select, deselect and toggle to rectangular
// ranges of grid cells.
package selection

import (
	"iter"

	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/logger"
	"github.com/hnimtadd/navcore/utils"
)

type Options struct {
	Logger logger.Logger
}

// Selection mutates the selected flag of the cells it visits. It keeps no
// selection state of its own: the flag lives on the cell, next to the
// identity that range operations de-duplicate on.
type Selection struct {
	grid grid.Grid

	// Handles visited by the running operation. A spanning cell is
	// reachable from several coordinates but must be mutated once.
	visited *utils.BitSet

	logger logger.Logger
}

func New(g grid.Grid, opts Options) *Selection {
	return &Selection{
		grid:    g,
		visited: utils.NewBitSet(g.MaxRowCount() * g.MaxColCount()),
		logger:  logger.OrDiscard(opts.Logger),
	}
}

// Select selects every valid cell in the rectangle spanned by from and to,
// in either drag direction. It returns the number of cells that changed.
func (s *Selection) Select(from, to coordinate.RowCol) int {
	return s.apply(coordinate.NewRect(from, to), func(bool) bool { return true }, nil)
}

// SelectCells is Select returning the cells it turned on. Cells that were
// already selected are not part of the result.
func (s *Selection) SelectCells(from, to coordinate.RowCol) []cell.Cell {
	var changed []cell.Cell
	s.apply(coordinate.NewRect(from, to), func(bool) bool { return true }, func(c cell.Cell) {
		changed = append(changed, c)
	})
	return changed
}

func (s *Selection) Deselect(from, to coordinate.RowCol) int {
	return s.apply(coordinate.NewRect(from, to), func(bool) bool { return false }, nil)
}

func (s *Selection) Toggle(from, to coordinate.RowCol) int {
	return s.apply(coordinate.NewRect(from, to), func(selected bool) bool { return !selected }, nil)
}

func (s *Selection) SelectAt(at coordinate.RowCol) int   { return s.Select(at, at) }
func (s *Selection) DeselectAt(at coordinate.RowCol) int { return s.Deselect(at, at) }
func (s *Selection) ToggleAt(at coordinate.RowCol) int   { return s.Toggle(at, at) }

// SelectAll selects every valid cell of the grid.
func (s *Selection) SelectAll() int {
	return s.Select(coordinate.New(0, 0), s.extent())
}

// DeselectAll deselects every valid cell of the grid.
func (s *Selection) DeselectAll() int {
	return s.Deselect(coordinate.New(0, 0), s.extent())
}

// SelectRow selects every valid cell covering the given row.
func (s *Selection) SelectRow(row int) int {
	return s.Select(coordinate.New(row, 0), coordinate.New(row, s.grid.MaxColCount()))
}

// SelectColumn selects every valid cell covering the given column.
func (s *Selection) SelectColumn(col int) int {
	return s.Select(coordinate.New(0, col), coordinate.New(s.grid.MaxRowCount(), col))
}

// extent is one past the last row and column. Those coordinates resolve to
// no cell and are skipped like any other hole.
func (s *Selection) extent() coordinate.RowCol {
	return coordinate.New(s.grid.MaxRowCount(), s.grid.MaxColCount())
}

// Selected returns the selected cells in row-major order of their first
// covered coordinate, each once.
func (s *Selection) Selected() []cell.Cell {
	var selected []cell.Cell
	s.visited.Clear()
	for c := range s.cells(coordinate.NewRect(coordinate.New(0, 0), s.extent())) {
		if c.Selected() {
			selected = append(selected, c)
		}
	}
	return selected
}

func (s *Selection) apply(r coordinate.Rect, next func(selected bool) bool, changedFn func(cell.Cell)) int {
	s.visited.Clear()
	changed := 0
	for c := range s.cells(r) {
		if !c.Selectable() || c.Disabled() {
			continue
		}
		want := next(c.Selected())
		if want == c.Selected() {
			continue
		}
		c.SetSelected(want)
		changed++
		if changedFn != nil {
			changedFn(c)
		}
	}
	s.logger.Debug("range selection applied",
		"start", r.Start, "end", r.End, "changed", changed)
	return changed
}

// cells yields each distinct cell covering the rectangle once, row-major.
// The caller clears visited before ranging.
func (s *Selection) cells(r coordinate.Rect) iter.Seq[cell.Cell] {
	return func(yield func(cell.Cell) bool) {
		for at := range r.All() {
			c := s.grid.Cell(at)
			if c == nil {
				continue
			}
			if s.visited.TestAndSet(int(c.Handle())) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
