package focus

import (
	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/logger"
)

type Options struct {
	Wrap     Wrap
	Strategy Strategy

	// OnChange is called after the active cell changes.
	OnChange func(at coordinate.RowCol, c cell.Cell)

	Logger logger.Logger
}

// Focus tracks the active cell of a grid and computes where keyboard
// navigation goes next. It never owns cells: the active cell is remembered
// by coordinates and handle, and re-resolved through the grid on use.
type Focus struct {
	grid     grid.Grid
	wrap     Wrap
	strategy Strategy
	onChange func(at coordinate.RowCol, c cell.Cell)

	// The coordinates used to reach the active cell. For a spanning cell
	// this is not necessarily its origin, which keeps vertical moves through
	// a wide cell in the column they started from.
	active       coordinate.RowCol
	activeHandle cell.Handle
	hasActive    bool

	// The roving tab stop. Only maintained in StrategyRovingTabindex.
	tabStop    cell.Handle
	hasTabStop bool

	logger logger.Logger
}

func New(g grid.Grid, opts Options) *Focus {
	return &Focus{
		grid:     g,
		wrap:     opts.Wrap,
		strategy: opts.Strategy,
		onChange: opts.OnChange,
		logger:   logger.OrDiscard(opts.Logger),
	}
}

func (f *Focus) Wrap() Wrap         { return f.wrap }
func (f *Focus) Strategy() Strategy { return f.strategy }

// Active returns the active coordinates and the cell they resolve to now.
// The cell is nil when nothing is active.
func (f *Focus) Active() (coordinate.RowCol, cell.Cell) {
	if !f.hasActive {
		return coordinate.RowCol{}, nil
	}
	return f.active, f.grid.Cell(f.active)
}

// Peek computes the target of a move without changing any state.
//
// It steps one coordinate at a time, skipping coordinates that resolve to
// no cell, to the starting cell itself (the interior of a span) or to a cell
// that can't take focus, until a target is found or the wrap policy ends
// the walk.
func (f *Focus) Peek(from coordinate.RowCol, dir Direction) (coordinate.RowCol, bool) {
	rows, cols := f.grid.MaxRowCount(), f.grid.MaxColCount()
	if rows == 0 || cols == 0 {
		return coordinate.RowCol{}, false
	}
	dr, dc := dir.delta()
	if dr == 0 && dc == 0 {
		return coordinate.RowCol{}, false
	}
	start := f.grid.Cell(from)

	pos := from
	// Every coordinate is visited at most once per lap, so a lap over a
	// grid with no other focusable cell ends here.
	for range rows * cols {
		next, ok := f.step(pos, dr, dc, rows, cols)
		if !ok {
			return coordinate.RowCol{}, false
		}
		pos = next

		c := f.grid.Cell(pos)
		if c == nil || !c.Focusable() {
			continue
		}
		if start != nil && c.Handle() == start.Handle() {
			continue
		}
		return pos, true
	}
	return coordinate.RowCol{}, false
}

func (f *Focus) step(p coordinate.RowCol, dr, dc, rows, cols int) (coordinate.RowCol, bool) {
	next := coordinate.New(p.Row+dr, p.Col+dc)
	switch {
	case next.Col < 0 || next.Col >= cols:
		switch f.wrap {
		case WrapLoop:
			next.Col = wrapIndex(next.Col, cols)
		case WrapContinuous:
			next.Col = wrapIndex(next.Col, cols)
			next.Row += dc
			if next.Row < 0 || next.Row >= rows {
				return coordinate.RowCol{}, false
			}
		default:
			return coordinate.RowCol{}, false
		}
	case next.Row < 0 || next.Row >= rows:
		switch f.wrap {
		case WrapLoop:
			next.Row = wrapIndex(next.Row, rows)
		case WrapContinuous:
			next.Row = wrapIndex(next.Row, rows)
			next.Col += dr
			if next.Col < 0 || next.Col >= cols {
				return coordinate.RowCol{}, false
			}
		default:
			return coordinate.RowCol{}, false
		}
	}
	return next, true
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// Move focuses the cell Peek finds. Moving from coordinates that no longer
// resolve to a cell lands on the nearest focusable cell instead.
func (f *Focus) Move(from coordinate.RowCol, dir Direction) (coordinate.RowCol, bool) {
	if f.grid.Cell(from) == nil {
		at, ok := f.nearest(from)
		if !ok {
			f.logger.Debug("no focusable cell to recover to", "from", from)
			return coordinate.RowCol{}, false
		}
		f.logger.Debug("moved from a missing cell, clamped", "from", from, "to", at)
		f.Focus(at)
		return at, true
	}

	at, ok := f.Peek(from, dir)
	if !ok {
		f.logger.Debug("move blocked", "from", from, "direction", dir, "wrap", f.wrap)
		return coordinate.RowCol{}, false
	}
	f.Focus(at)
	return at, true
}

// MoveActive moves from the active cell. When nothing is active yet, or the
// active cell went stale, it only recovers focus and returns the recovered
// coordinates, the same way Move does from a missing cell.
func (f *Focus) MoveActive(dir Direction) (coordinate.RowCol, bool) {
	if !f.Valid() {
		if !f.Reset() {
			return coordinate.RowCol{}, false
		}
		return f.active, true
	}
	return f.Move(f.active, dir)
}

// Focus makes the cell at the given coordinates active. It reports false,
// leaving state untouched, when that cell can't take focus.
func (f *Focus) Focus(at coordinate.RowCol) bool {
	c := f.grid.Cell(at)
	if c == nil || !c.Focusable() {
		return false
	}
	f.active = at
	f.activeHandle = c.Handle()
	f.hasActive = true
	if f.strategy == StrategyRovingTabindex {
		f.tabStop = c.Handle()
		f.hasTabStop = true
	}
	if f.onChange != nil {
		f.onChange(at, c)
	}
	return true
}

// First focuses the first focusable cell in row-major order.
func (f *Focus) First() (coordinate.RowCol, bool) {
	r, ok := f.bounds()
	return f.focusEdge(r, ok, false)
}

// Last focuses the last focusable cell in row-major order.
func (f *Focus) Last() (coordinate.RowCol, bool) {
	r, ok := f.bounds()
	return f.focusEdge(r, ok, true)
}

// FirstInRow focuses the first focusable cell of the given row.
func (f *Focus) FirstInRow(row int) (coordinate.RowCol, bool) {
	r, ok := f.rowBounds(row)
	return f.focusEdge(r, ok, false)
}

// LastInRow focuses the last focusable cell of the given row.
func (f *Focus) LastInRow(row int) (coordinate.RowCol, bool) {
	r, ok := f.rowBounds(row)
	return f.focusEdge(r, ok, true)
}

func (f *Focus) bounds() (coordinate.Rect, bool) {
	rows, cols := f.grid.MaxRowCount(), f.grid.MaxColCount()
	if rows == 0 || cols == 0 {
		return coordinate.Rect{}, false
	}
	return coordinate.NewRect(coordinate.New(0, 0), coordinate.New(rows-1, cols-1)), true
}

func (f *Focus) rowBounds(row int) (coordinate.Rect, bool) {
	rows, cols := f.grid.MaxRowCount(), f.grid.MaxColCount()
	if row < 0 || row >= rows || cols == 0 {
		return coordinate.Rect{}, false
	}
	return coordinate.NewRect(coordinate.New(row, 0), coordinate.New(row, cols-1)), true
}

func (f *Focus) focusEdge(r coordinate.Rect, ok bool, last bool) (coordinate.RowCol, bool) {
	if !ok {
		return coordinate.RowCol{}, false
	}
	var (
		found coordinate.RowCol
		hit   bool
	)
	for at := range r.All() {
		c := f.grid.Cell(at)
		if c == nil || !c.Focusable() {
			continue
		}
		found, hit = at, true
		if !last {
			break
		}
	}
	if !hit {
		return coordinate.RowCol{}, false
	}
	return found, f.Focus(found)
}

// Reset checks that the active coordinates still resolve to the active
// cell and that it can take focus. If not (the data changed, or the cell was
// disabled) focus moves to the nearest focusable cell. It reports whether a
// cell is active afterwards.
func (f *Focus) Reset() bool {
	if f.Valid() {
		return true
	}

	at, ok := f.nearest(f.active)
	if !ok {
		f.logger.Debug("no focusable cell left, clearing focus", "active", f.active)
		f.hasActive = false
		f.hasTabStop = false
		return false
	}
	if f.hasActive {
		f.logger.Debug("active cell is stale, recovered", "from", f.active, "to", at)
	}
	return f.Focus(at)
}

// Valid reports whether a cell is active, the active coordinates still
// resolve to it and it can take focus.
func (f *Focus) Valid() bool {
	if !f.hasActive {
		return false
	}
	c := f.grid.Cell(f.active)
	return c != nil && c.Handle() == f.activeHandle && c.Focusable()
}

// nearest clamps p into the grid and returns the closest focusable cell,
// searching forward and then backward in row-major order.
func (f *Focus) nearest(p coordinate.RowCol) (coordinate.RowCol, bool) {
	rows, cols := f.grid.MaxRowCount(), f.grid.MaxColCount()
	if rows == 0 || cols == 0 {
		return coordinate.RowCol{}, false
	}
	row := min(max(p.Row, 0), rows-1)
	col := min(max(p.Col, 0), cols-1)
	origin := row*cols + col

	at := func(i int) coordinate.RowCol {
		return coordinate.New(i/cols, i%cols)
	}
	focusable := func(i int) bool {
		c := f.grid.Cell(at(i))
		return c != nil && c.Focusable()
	}
	for i := origin; i < rows*cols; i++ {
		if focusable(i) {
			return at(i), true
		}
	}
	for i := origin - 1; i >= 0; i-- {
		if focusable(i) {
			return at(i), true
		}
	}
	return coordinate.RowCol{}, false
}

// Tabindex is the tabindex the owner should render on c. In roving mode
// the tab stop gets 0 and every other cell -1; before anything was focused
// the first focusable cell holds the tab stop so the grid stays reachable.
// In active-descendant mode cells never take real focus.
func (f *Focus) Tabindex(c cell.Cell) int {
	if c == nil || f.strategy != StrategyRovingTabindex {
		return -1
	}
	if !f.hasTabStop {
		if first, ok := f.peekFirst(); ok && first.Handle() == c.Handle() {
			return 0
		}
		return -1
	}
	if c.Handle() == f.tabStop {
		return 0
	}
	return -1
}

func (f *Focus) peekFirst() (cell.Cell, bool) {
	r, ok := f.bounds()
	if !ok {
		return nil, false
	}
	for at := range r.All() {
		if c := f.grid.Cell(at); c != nil && c.Focusable() {
			return c, true
		}
	}
	return nil, false
}

// HostTabindex is the tabindex of the element hosting the grid.
func (f *Focus) HostTabindex() int {
	if f.strategy == StrategyActiveDescendant {
		return 0
	}
	return -1
}

// ActiveDescendant is the ID the host should point at, or "" in roving
// mode and when nothing is active.
func (f *Focus) ActiveDescendant() string {
	if f.strategy != StrategyActiveDescendant || !f.hasActive {
		return ""
	}
	if c := f.grid.Cell(f.active); c != nil && c.Handle() == f.activeHandle {
		return c.ID()
	}
	return ""
}
