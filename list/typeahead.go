package list

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// typeahead accumulates typed keys until a pause longer than delay.
type typeahead struct {
	delay time.Duration
	clock func() time.Time

	fold   cases.Caser
	buffer strings.Builder
	last   time.Time
}

func newTypeahead(delay time.Duration, clock func() time.Time) *typeahead {
	return &typeahead{
		delay: delay,
		clock: clock,
		fold:  cases.Fold(),
	}
}

// push appends r and returns the case-folded buffer.
func (t *typeahead) push(r rune) string {
	now := t.clock()
	if !t.last.IsZero() && now.Sub(t.last) > t.delay {
		t.buffer.Reset()
	}
	t.last = now
	t.buffer.WriteRune(r)
	return t.fold.String(t.buffer.String())
}

func (t *typeahead) matches(label, prefix string) bool {
	return strings.HasPrefix(t.fold.String(label), prefix)
}

func (t *typeahead) reset() {
	t.buffer.Reset()
	t.last = time.Time{}
}
