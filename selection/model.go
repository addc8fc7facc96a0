// Package selection keeps a set of selected values keyed by identity or by
// a caller supplied track-by function.
package selection

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/hnimtadd/navcore/logger"
	"github.com/mitchellh/hashstructure/v2"
)

var (
	// ErrMultipleValues is returned when more than one item is passed to a
	// single-selection model.
	ErrMultipleValues = errors.New("selection: cannot pass multiple values into a single-selection model")

	// ErrMissingIndex is returned when a model with a TrackBy function is
	// given an item without an index.
	ErrMissingIndex = errors.New("selection: item index is required when a track-by function is set")

	// ErrUnhashable is returned when a non-comparable value can't be hashed
	// into an identity key.
	ErrUnhashable = errors.New("selection: value can't be used as an identity key")
)

// Item is a value passed to the model, optionally with its position in the
// collection it came from.
type Item[T any] struct {
	Value T

	index   int
	indexed bool
}

// Of wraps a value without an index.
func Of[T any](value T) Item[T] {
	return Item[T]{Value: value}
}

// At wraps a value with its index.
func At[T any](index int, value T) Item[T] {
	return Item[T]{Value: value, index: index, indexed: true}
}

// Index returns the item's index and whether it was set.
func (i Item[T]) Index() (int, bool) {
	return i.index, i.indexed
}

// Change is a snapshot of the full selection before and after a mutating
// call.
type Change[T any] struct {
	Before []T
	After  []T
}

type Options[T any] struct {
	Multiple bool

	// TrackBy derives the key of an item from its index and value. When it
	// is nil, values are keyed by identity.
	TrackBy func(index int, value T) any

	Logger logger.Logger
}

// Model is a selection set. It is not safe for concurrent use.
type Model[T any] struct {
	multiple bool
	trackBy  func(index int, value T) any

	// Selected keys in selection order, and the value stored for each.
	keys   []any
	values map[any]T

	listeners []func(Change[T])

	logger logger.Logger
}

func New[T any](opts Options[T]) *Model[T] {
	return &Model[T]{
		multiple: opts.Multiple,
		trackBy:  opts.TrackBy,
		values:   make(map[any]T),
		logger:   logger.OrDiscard(opts.Logger),
	}
}

func (m *Model[T]) IsMultiple() bool { return m.multiple }
func (m *Model[T]) Len() int         { return len(m.keys) }
func (m *Model[T]) IsEmpty() bool    { return len(m.keys) == 0 }

// Selected returns the selected values in selection order.
func (m *Model[T]) Selected() []T {
	out := make([]T, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

func (m *Model[T]) IsSelected(item Item[T]) (bool, error) {
	k, err := m.key(item)
	if err != nil {
		return false, err
	}
	_, ok := m.values[k]
	return ok, nil
}

// Select adds items to the selection. In single mode the previous selection
// is cleared first.
func (m *Model[T]) Select(items ...Item[T]) error {
	keys, err := m.prepare(items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	before := m.Selected()
	if !m.multiple {
		m.reset()
	}
	for i, k := range keys {
		m.add(k, items[i].Value)
	}
	m.emit(before)
	return nil
}

// Deselect removes items from the selection.
func (m *Model[T]) Deselect(items ...Item[T]) error {
	keys, err := m.prepare(items)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	before := m.Selected()
	for _, k := range keys {
		m.remove(k)
	}
	m.emit(before)
	return nil
}

// Toggle flips the selected state of a single item.
func (m *Model[T]) Toggle(item Item[T]) error {
	selected, err := m.IsSelected(item)
	if err != nil {
		return err
	}
	if selected {
		return m.Deselect(item)
	}
	return m.Select(item)
}

// SetSelection replaces the selection with items in a single change.
func (m *Model[T]) SetSelection(items ...Item[T]) error {
	keys, err := m.prepare(items)
	if err != nil {
		return err
	}
	before := m.Selected()
	m.reset()
	for i, k := range keys {
		m.add(k, items[i].Value)
	}
	m.emit(before)
	return nil
}

// Clear deselects everything. Nothing is published when the selection was
// already empty.
func (m *Model[T]) Clear() {
	if m.IsEmpty() {
		return
	}
	before := m.Selected()
	m.reset()
	m.emit(before)
}

// Subscribe registers fn for change notifications and returns a function
// that unregisters it.
func (m *Model[T]) Subscribe(fn func(Change[T])) func() {
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		// Zero out to keep the other indexes stable.
		m.listeners[idx] = nil
	}
}

// prepare validates the whole call before anything is mutated and returns
// the key of every item.
func (m *Model[T]) prepare(items []Item[T]) ([]any, error) {
	if !m.multiple && len(items) > 1 {
		m.logger.Debug("multiple values passed to single selection", "count", len(items))
		return nil, fmt.Errorf("%w: got %d", ErrMultipleValues, len(items))
	}
	keys := make([]any, 0, len(items))
	for _, item := range items {
		k, err := m.key(item)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Model[T]) key(item Item[T]) (any, error) {
	if m.trackBy != nil {
		index, ok := item.Index()
		if !ok {
			m.logger.Debug("track-by selection called without index")
			return nil, ErrMissingIndex
		}
		return Identity(m.trackBy(index, item.Value))
	}
	return Identity(item.Value)
}

// Identity returns the map key a value or a track-by key is stored under.
// Values that are comparable at runtime are their own key, which keeps
// pointer identity for pointers. Other values are keyed by a structural
// hash.
//
// Comparability is checked on the value, not its type: a struct with an
// interface field has a comparable type, yet can't be a map key while that
// field holds a slice.
func Identity(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if reflect.ValueOf(value).Comparable() {
		return value, nil
	}
	hashed, err := hashstructure.Hash(value, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnhashable, err)
	}
	return hashKey(hashed), nil
}

// hashKey keeps structural hashes apart from plain uint64 values.
type hashKey uint64

func (m *Model[T]) add(k any, value T) {
	if _, ok := m.values[k]; ok {
		return
	}
	m.keys = append(m.keys, k)
	m.values[k] = value
}

func (m *Model[T]) remove(k any) {
	if _, ok := m.values[k]; !ok {
		return
	}
	delete(m.values, k)
	m.keys = slices.DeleteFunc(m.keys, func(other any) bool { return other == k })
}

func (m *Model[T]) reset() {
	m.keys = m.keys[:0]
	clear(m.values)
}

func (m *Model[T]) emit(before []T) {
	change := Change[T]{Before: before, After: m.Selected()}
	for _, fn := range m.listeners {
		if fn != nil {
			fn(change)
		}
	}
}
