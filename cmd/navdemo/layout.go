package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hnimtadd/navcore/grid/cell"
)

var errEmptyLayout = errors.New("layout has no rows")

type cellConfig struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	RowSpan  int    `yaml:"rowspan"`
	ColSpan  int    `yaml:"colspan"`
	Disabled bool   `yaml:"disabled"`
	Selected bool   `yaml:"selected"`
}

type layoutConfig struct {
	Rows [][]cellConfig `yaml:"rows"`
}

// 4x4 with a 2x2 span in the top left corner and one disabled cell.
const defaultLayout = `
rows:
  - [{label: Span, rowspan: 2, colspan: 2}, {label: B}, {label: C}]
  - [{label: D}, {label: E}]
  - [{label: F}, {label: G}, {label: H, disabled: true}, {label: I}]
  - [{label: J}, {label: K}, {label: L}, {label: M}]
`

// loadLayout reads the layout at path, or the built-in one when path is
// empty.
func loadLayout(path string) ([][]*cell.Basic, error) {
	if path == "" {
		return parseLayout([]byte(defaultLayout))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	rows, err := parseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func parseLayout(data []byte) ([][]*cell.Basic, error) {
	var config layoutConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if len(config.Rows) == 0 {
		return nil, errEmptyLayout
	}

	rows := make([][]*cell.Basic, len(config.Rows))
	for r, row := range config.Rows {
		for i, c := range row {
			if c.RowSpan < 0 || c.ColSpan < 0 {
				return nil, fmt.Errorf("row %d, item %d: negative span", r, i)
			}
			id := c.ID
			if id == "" {
				id = fmt.Sprintf("cell-%d-%d", r, i)
			}
			rows[r] = append(rows[r], cell.New(cell.Options{
				ID:       id,
				Label:    c.Label,
				RowSpan:  c.RowSpan,
				ColSpan:  c.ColSpan,
				Disabled: c.Disabled,
				Selected: c.Selected,
			}))
		}
	}
	return rows, nil
}
