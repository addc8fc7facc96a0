package focus

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownWrap     = errors.New("focus: unknown wrap policy")
	ErrUnknownStrategy = errors.New("focus: unknown focus strategy")
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) delta() (rows, cols int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Wrap decides what a move does when it runs past the edge of the grid.
type Wrap int

const (
	// Continue into the next or previous row (or column), stopping when
	// there is none.
	WrapContinuous Wrap = iota

	// Wrap to the opposite edge of the same row (or column).
	WrapLoop

	// Stop at the edge.
	WrapNone
)

func (w Wrap) String() string {
	switch w {
	case WrapContinuous:
		return "continuous"
	case WrapLoop:
		return "loop"
	case WrapNone:
		return "nowrap"
	default:
		return "unknown"
	}
}

func ParseWrap(name string) (Wrap, error) {
	for _, w := range []Wrap{WrapContinuous, WrapLoop, WrapNone} {
		if w.String() == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWrap, name)
}

// Strategy is how focus is reported to the host widget.
type Strategy int

const (
	// Exactly one cell carries tabindex 0 and receives real focus.
	StrategyRovingTabindex Strategy = iota

	// The host keeps real focus and points at the active cell by ID.
	StrategyActiveDescendant
)

func (s Strategy) String() string {
	switch s {
	case StrategyRovingTabindex:
		return "roving"
	case StrategyActiveDescendant:
		return "activedescendant"
	default:
		return "unknown"
	}
}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{StrategyRovingTabindex, StrategyActiveDescendant} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
