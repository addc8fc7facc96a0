package navcore

import (
	"github.com/hnimtadd/navcore/grid/focus"
)

// KeyHandler translates key names into GridNavigator calls. Key names follow
// the "modifier+key" form terminal libraries report, e.g. "shift+right",
// "ctrl+home" or " " for the space bar.
type KeyHandler struct {
	navigator *GridNavigator
	bindings  map[string]func() bool
}

func NewKeyHandler(n *GridNavigator) *KeyHandler {
	h := &KeyHandler{navigator: n}
	h.bindings = map[string]func() bool{
		"up":          h.move(focus.Up),
		"down":        h.move(focus.Down),
		"left":        h.move(focus.Left),
		"right":       h.move(focus.Right),
		"shift+up":    h.extend(focus.Up),
		"shift+down":  h.extend(focus.Down),
		"shift+left":  h.extend(focus.Left),
		"shift+right": h.extend(focus.Right),
		"home":        n.RowStart,
		"end":         n.RowEnd,
		"ctrl+home":   n.Home,
		"ctrl+end":    n.End,
		" ":           n.ToggleActive,
		"space":       n.ToggleActive,
		"ctrl+a":      func() bool { return n.SelectAll() > 0 },
		"esc":         func() bool { return n.DeselectAll() > 0 },
	}
	return h
}

// HandleKey runs the binding for key. It reports whether the key is bound,
// so the caller can pass unbound keys on; a bound key that changed nothing
// still counts as handled.
func (h *KeyHandler) HandleKey(key string) bool {
	fn, ok := h.bindings[key]
	if !ok {
		return false
	}
	fn()
	return true
}

func (h *KeyHandler) move(dir focus.Direction) func() bool {
	return func() bool { return h.navigator.Move(dir) }
}

func (h *KeyHandler) extend(dir focus.Direction) func() bool {
	return func() bool { return h.navigator.Extend(dir) }
}
