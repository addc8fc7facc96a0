package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hnimtadd/navcore"
	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/cell"
	"github.com/hnimtadd/navcore/grid/coordinate"
	"github.com/hnimtadd/navcore/grid/focus"
)

const cellWidth = 8

var (
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	activeStyle   = cellStyle.Reverse(true)
	selectedStyle = cellStyle.Background(lipgloss.Color("#45475a")).Foreground(lipgloss.Color("#a6e3a1"))
	disabledStyle = cellStyle.Foreground(lipgloss.Color("#6c7086")).Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

type model struct {
	table *grid.Table
	nav   *navcore.GridNavigator
	keys  *navcore.KeyHandler
}

func newModel(table *grid.Table, nav *navcore.GridNavigator) *model {
	return &model{
		table: table,
		nav:   nav,
		keys:  navcore.NewKeyHandler(nav),
	}
}

// Init puts focus on the first focusable cell so the first render has an
// active cell.
func (m *model) Init() tea.Cmd {
	m.nav.Focus().Reset()
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.keys.HandleKey(key)
		}
	}
	return m, nil
}

func (m *model) View() string {
	_, active := m.nav.Focus().Active()

	var b strings.Builder
	for r := range m.table.MaxRowCount() {
		cells := make([]string, 0, m.table.MaxColCount())
		for c := range m.table.MaxColCount() {
			cells = append(cells, m.renderCell(coordinate.New(r, c), active))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteByte('\n')
	}
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteByte('\n')
	return b.String()
}

// renderCell draws one coordinate. Only the origin of a span carries the
// label, covered coordinates share its style.
func (m *model) renderCell(at coordinate.RowCol, active cell.Cell) string {
	c, ok := m.table.Lookup(at)
	if !ok {
		return cellStyle.Render(pad(""))
	}
	label := ""
	if origin, _ := m.table.Origin(c.Handle()); origin == at {
		label = c.Label()
	}

	style := cellStyle
	switch {
	case c.Disabled():
		style = disabledStyle
	case active != nil && active.Handle() == c.Handle():
		style = activeStyle
	case c.Selected():
		style = selectedStyle
	}
	return style.Render(pad(label))
}

func (m *model) status() string {
	f := m.nav.Focus()
	at, c := f.Active()
	selected := len(m.nav.Selection().Selected())
	switch f.Strategy() {
	case focus.StrategyActiveDescendant:
		return fmt.Sprintf("%s  aria-activedescendant=%q  selected=%d", at, f.ActiveDescendant(), selected)
	default:
		return fmt.Sprintf("%s  tabindex=%d  selected=%d", at, f.Tabindex(c), selected)
	}
}

func pad(label string) string {
	return runewidth.FillRight(runewidth.Truncate(label, cellWidth, "…"), cellWidth)
}
