package cell

// Handle identifies one logical cell inside the grid that owns it. A cell
// that spans several coordinates has a single handle, which is what range
// selection de-duplicates on.
type Handle uint32

// Cell is a participant of a grid. Navigation and selection only ever hold
// handles and coordinates; the grid owns the cell.
type Cell interface {
	Handle() Handle
	// ID is reported as the active descendant of the grid host.
	ID() string
	// Span returns how many coordinate rows and columns the cell covers,
	// both at least 1.
	Span() (rows, cols int)
	Disabled() bool
	Focusable() bool
	Selectable() bool
	Selected() bool
	SetSelected(selected bool)
}

type Options struct {
	ID      string
	Label   string
	RowSpan int
	ColSpan int

	Disabled     bool
	Unfocusable  bool
	Unselectable bool
	Selected     bool

	// DisabledFunc, when set, is consulted on every Disabled call and wins
	// over the static Disabled flag.
	DisabledFunc func() bool
}

// Basic is the stock Cell implementation used by grid.Table.
type Basic struct {
	handle  Handle
	id      string
	label   string
	rowSpan int
	colSpan int

	disabled     bool
	unfocusable  bool
	unselectable bool
	selected     bool
	disabledFunc func() bool
}

var _ Cell = &Basic{}

func New(opts Options) *Basic {
	return &Basic{
		id:           opts.ID,
		label:        opts.Label,
		rowSpan:      max(opts.RowSpan, 1),
		colSpan:      max(opts.ColSpan, 1),
		disabled:     opts.Disabled,
		unfocusable:  opts.Unfocusable,
		unselectable: opts.Unselectable,
		selected:     opts.Selected,
		disabledFunc: opts.DisabledFunc,
	}
}

func (c *Basic) Handle() Handle { return c.handle }

// Bind assigns the arena handle. Only the owning grid calls it.
func (c *Basic) Bind(h Handle) { c.handle = h }

func (c *Basic) ID() string    { return c.id }
func (c *Basic) Label() string { return c.label }

func (c *Basic) Span() (rows, cols int) {
	return c.rowSpan, c.colSpan
}

func (c *Basic) Disabled() bool {
	if c.disabledFunc != nil {
		return c.disabledFunc()
	}
	return c.disabled
}

func (c *Basic) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// A disabled cell is never a focus target.
func (c *Basic) Focusable() bool {
	return !c.unfocusable && !c.Disabled()
}

// A disabled cell is never a selection target.
func (c *Basic) Selectable() bool {
	return !c.unselectable && !c.Disabled()
}

func (c *Basic) Selected() bool { return c.selected }

func (c *Basic) SetSelected(selected bool) {
	c.selected = selected
}
