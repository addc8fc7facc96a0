// Package list moves an active item through a one dimensional list of
// items, the way a listbox or menu does.
package list

import (
	"fmt"
	"time"

	"github.com/hnimtadd/navcore/logger"
	"github.com/hnimtadd/navcore/selection"
)

const DefaultTypeaheadDelay = 500 * time.Millisecond

type Options[T any] struct {
	// Wrap moves from the last item to the first and back.
	Wrap bool

	// Disabled items are skipped by every move. Defaults to none.
	Disabled func(item T) bool

	// Label is matched by typeahead. Defaults to fmt.Sprint.
	Label func(item T) string

	// TypeaheadDelay is the pause after which the typeahead buffer starts
	// over. Defaults to DefaultTypeaheadDelay.
	TypeaheadDelay time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time

	OnChange func(index int, item T)

	Logger logger.Logger
}

// Navigator tracks the active item of a list. It is not safe for
// concurrent use.
type Navigator[T any] struct {
	items  []T
	active int

	wrap     bool
	disabled func(T) bool
	label    func(T) string
	onChange func(int, T)

	typeahead *typeahead

	logger logger.Logger
}

func New[T any](items []T, opts Options[T]) *Navigator[T] {
	n := &Navigator[T]{
		items:    items,
		active:   -1,
		wrap:     opts.Wrap,
		disabled: opts.Disabled,
		label:    opts.Label,
		onChange: opts.OnChange,
		logger:   logger.OrDiscard(opts.Logger),
	}
	if n.disabled == nil {
		n.disabled = func(T) bool { return false }
	}
	if n.label == nil {
		n.label = func(item T) string { return fmt.Sprint(item) }
	}
	delay := opts.TypeaheadDelay
	if delay <= 0 {
		delay = DefaultTypeaheadDelay
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	n.typeahead = newTypeahead(delay, clock)
	return n
}

func (n *Navigator[T]) Items() []T { return n.items }

// SetItems replaces the items. The active index is kept when it still
// points at an enabled item.
func (n *Navigator[T]) SetItems(items []T) {
	n.items = items
	if n.active >= len(items) || (n.active >= 0 && n.disabled(items[n.active])) {
		n.active = -1
	}
	n.typeahead.reset()
}

// Active returns the active index and item.
func (n *Navigator[T]) Active() (int, T, bool) {
	var zero T
	if n.active < 0 {
		return -1, zero, false
	}
	return n.active, n.items[n.active], true
}

// SetActive activates the item at i if it exists and is enabled.
func (n *Navigator[T]) SetActive(i int) bool {
	if i < 0 || i >= len(n.items) || n.disabled(n.items[i]) {
		return false
	}
	if i == n.active {
		return true
	}
	n.active = i
	if n.onChange != nil {
		n.onChange(i, n.items[i])
	}
	return true
}

func (n *Navigator[T]) Next() bool     { return n.step(1) }
func (n *Navigator[T]) Previous() bool { return n.step(-1) }

// First activates the first enabled item.
func (n *Navigator[T]) First() bool {
	return n.scan(0, 1, len(n.items))
}

// Last activates the last enabled item.
func (n *Navigator[T]) Last() bool {
	return n.scan(len(n.items)-1, -1, len(n.items))
}

func (n *Navigator[T]) step(delta int) bool {
	if n.active < 0 {
		if delta > 0 {
			return n.First()
		}
		return n.Last()
	}
	return n.scan(n.active+delta, delta, len(n.items)-1)
}

// scan activates the first enabled item visiting at most count positions
// from start in steps of delta, wrapping if enabled.
func (n *Navigator[T]) scan(start, delta, count int) bool {
	size := len(n.items)
	i := start
	for range count {
		if i < 0 || i >= size {
			if !n.wrap {
				break
			}
			i = (i%size + size) % size
		}
		if !n.disabled(n.items[i]) {
			return n.SetActive(i)
		}
		i += delta
	}
	n.logger.Debug("list move blocked", "active", n.active, "delta", delta)
	return false
}

// Type feeds a key to typeahead and activates the first enabled item after
// the active one whose label starts with the keys typed so far, ignoring
// case.
func (n *Navigator[T]) Type(r rune) (int, bool) {
	prefix := n.typeahead.push(r)
	size := len(n.items)
	for k := range size {
		i := (n.active + 1 + k) % size
		if n.disabled(n.items[i]) {
			continue
		}
		if n.typeahead.matches(n.label(n.items[i]), prefix) {
			n.SetActive(i)
			return i, true
		}
	}
	n.logger.Debug("typeahead found no match", "prefix", prefix)
	return -1, false
}

// ToggleActive toggles the active item in m, passing its index so that
// track-by models work.
func (n *Navigator[T]) ToggleActive(m *selection.Model[T]) error {
	i, item, ok := n.Active()
	if !ok {
		return nil
	}
	return m.Toggle(selection.At(i, item))
}
