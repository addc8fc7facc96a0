package coordinate

import (
	"fmt"
	"iter"
)

// RowCol is a 0-based grid coordinate. It is the currency passed between
// the focus and selection components.
type RowCol struct {
	Row int
	Col int
}

func New(row, col int) RowCol {
	return RowCol{Row: row, Col: col}
}

func (p RowCol) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Rect is an inclusive rectangle of coordinates with Start at the top-left
// and End at the bottom-right.
type Rect struct {
	Start RowCol
	End   RowCol
}

// NewRect normalizes two corners into a Rect, so the order in which a range
// was dragged does not matter.
func NewRect(from, to RowCol) Rect {
	return Rect{
		Start: RowCol{Row: min(from.Row, to.Row), Col: min(from.Col, to.Col)},
		End:   RowCol{Row: max(from.Row, to.Row), Col: max(from.Col, to.Col)},
	}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p RowCol) bool {
	return p.Row >= r.Start.Row && p.Row <= r.End.Row &&
		p.Col >= r.Start.Col && p.Col <= r.End.Col
}

// All yields every coordinate of the rectangle in row-major order.
func (r Rect) All() iter.Seq[RowCol] {
	return func(yield func(RowCol) bool) {
		for row := r.Start.Row; row < r.End.Row+1; row++ {
			for col := r.Start.Col; col < r.End.Col+1; col++ {
				if !yield(RowCol{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}
