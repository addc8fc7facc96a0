package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasic_SpanDefaultsToOne(t *testing.T) {
	c := New(Options{ID: "a"})
	rows, cols := c.Span()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, cols)

	c = New(Options{RowSpan: 2, ColSpan: 3})
	rows, cols = c.Span()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
}

func TestBasic_DisabledIsNeverATarget(t *testing.T) {
	c := New(Options{Disabled: true})
	assert.True(t, c.Disabled())
	assert.False(t, c.Focusable())
	assert.False(t, c.Selectable())

	c.SetDisabled(false)
	assert.True(t, c.Focusable())
	assert.True(t, c.Selectable())
}

func TestBasic_DisabledFuncIsComputed(t *testing.T) {
	locked := false
	c := New(Options{DisabledFunc: func() bool { return locked }})
	assert.True(t, c.Focusable())

	locked = true
	assert.True(t, c.Disabled())
	assert.False(t, c.Focusable())
}

func TestBasic_Flags(t *testing.T) {
	c := New(Options{Unfocusable: true, Unselectable: true})
	assert.False(t, c.Focusable())
	assert.False(t, c.Selectable())
	assert.False(t, c.Disabled())

	c.SetSelected(true)
	assert.True(t, c.Selected())
}

func TestBasic_Bind(t *testing.T) {
	c := New(Options{ID: "x", Label: "X"})
	c.Bind(7)
	assert.Equal(t, Handle(7), c.Handle())
	assert.Equal(t, "x", c.ID())
	assert.Equal(t, "X", c.Label())
}
