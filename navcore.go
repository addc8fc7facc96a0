package navcore

import (
	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/grid/focus"
	gridselection "github.com/hnimtadd/navcore/grid/selection"
	"github.com/hnimtadd/navcore/logger"
)

// GridNavigator drives one grid widget. It owns the focus and the range
// selection for the grid; both only read the grid, and write nothing but
// the selected flag of its cells.
type GridNavigator struct {
	grid grid.Grid

	// Where keyboard focus is, and how it moves.
	focus *focus.Focus

	// Range selection over the same grid.
	selection *gridselection.Selection

	// The coordinate a shift-extended range starts from. It follows plain
	// moves and is kept while extending.
	anchor    coordinate.RowCol
	hasAnchor bool

	// Cells the running extension turned on. Moving the range end undoes
	// only these, so cells selected before the extension started stay
	// selected.
	extended []cell.Cell

	logger logger.Logger
}

type Options struct {
	Grid     grid.Grid
	Wrap     focus.Wrap
	Strategy focus.Strategy
	Logger   logger.Logger
}

func NewGridNavigator(opts Options) *GridNavigator {
	l := logger.OrDiscard(opts.Logger)
	return &GridNavigator{
		grid: opts.Grid,
		focus: focus.New(opts.Grid, focus.Options{
			Wrap:     opts.Wrap,
			Strategy: opts.Strategy,
			Logger:   l,
		}),
		selection: gridselection.New(opts.Grid, gridselection.Options{Logger: l}),
		logger:    l,
	}
}

func (n *GridNavigator) Focus() *focus.Focus                { return n.focus }
func (n *GridNavigator) Selection() *gridselection.Selection { return n.selection }

// Active returns the active coordinates and cell, recovering stale focus
// first. The cell is nil when the grid has nothing focusable.
func (n *GridNavigator) Active() (coordinate.RowCol, cell.Cell) {
	n.focus.Reset()
	return n.focus.Active()
}

// Anchor returns where the current range extension starts.
func (n *GridNavigator) Anchor() (coordinate.RowCol, bool) {
	return n.anchor, n.hasAnchor
}

// Move moves focus one step and makes the new cell the anchor.
func (n *GridNavigator) Move(dir focus.Direction) bool {
	at, ok := n.focus.MoveActive(dir)
	if !ok {
		return false
	}
	n.setAnchor(at)
	return true
}

// Extend moves focus one step and selects the rectangle between the anchor
// and the new active cell, replacing the rectangle of the previous Extend.
// When nothing is active yet it only establishes focus and the anchor.
func (n *GridNavigator) Extend(dir focus.Direction) bool {
	if !n.focus.Valid() {
		at, ok := n.focus.MoveActive(dir)
		if !ok {
			return false
		}
		n.setAnchor(at)
		return true
	}
	if !n.hasAnchor {
		from, _ := n.focus.Active()
		n.anchor, n.hasAnchor = from, true
	}
	to, ok := n.focus.MoveActive(dir)
	if !ok {
		return false
	}
	for _, c := range n.extended {
		c.SetSelected(false)
	}
	n.extended = n.selection.SelectCells(n.anchor, to)
	n.logger.Debug("extended range selection", "anchor", n.anchor, "to", to, "added", len(n.extended))
	return true
}

// ToggleActive toggles the selection of the active cell.
func (n *GridNavigator) ToggleActive() bool {
	if !n.focus.Reset() {
		return false
	}
	at, _ := n.focus.Active()
	n.setAnchor(at)
	return n.selection.ToggleAt(at) > 0
}

func (n *GridNavigator) SelectAll() int {
	return n.selection.SelectAll()
}

func (n *GridNavigator) DeselectAll() int {
	n.extended = nil
	return n.selection.DeselectAll()
}

// Home focuses the first focusable cell of the grid.
func (n *GridNavigator) Home() bool {
	return n.jump(n.focus.First)
}

// End focuses the last focusable cell of the grid.
func (n *GridNavigator) End() bool {
	return n.jump(n.focus.Last)
}

// RowStart focuses the first focusable cell of the active row.
func (n *GridNavigator) RowStart() bool {
	return n.jump(func() (coordinate.RowCol, bool) {
		return n.focus.FirstInRow(n.activeRow())
	})
}

// RowEnd focuses the last focusable cell of the active row.
func (n *GridNavigator) RowEnd() bool {
	return n.jump(func() (coordinate.RowCol, bool) {
		return n.focus.LastInRow(n.activeRow())
	})
}

func (n *GridNavigator) activeRow() int {
	n.focus.Reset()
	at, _ := n.focus.Active()
	return at.Row
}

func (n *GridNavigator) jump(to func() (coordinate.RowCol, bool)) bool {
	at, ok := to()
	if !ok {
		return false
	}
	n.setAnchor(at)
	return true
}

func (n *GridNavigator) setAnchor(at coordinate.RowCol) {
	n.anchor, n.hasAnchor = at, true
	n.extended = nil
}
