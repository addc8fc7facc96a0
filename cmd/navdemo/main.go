// navdemo renders a grid in the terminal and drives it with the keyboard.
// Arrow keys move, shift+arrows extend a range, space toggles, ctrl+a
// selects everything, esc clears and q quits.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/hnimtadd/navcore"
	"github.com/hnimtadd/navcore/grid"
	"github.com/hnimtadd/navcore/grid/focus"
	"github.com/hnimtadd/navcore/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	layout   string
	wrap     string
	strategy string
	logLevel string
	logFile  string
}

func parseFlags(args []string) (flags, error) {
	var f flags
	flagSet := pflag.NewFlagSet("navdemo", pflag.ContinueOnError)
	flagSet.StringVar(&f.layout, "layout", "", "path to a YAML grid layout (default: built-in 4x4 grid)")
	flagSet.StringVar(&f.wrap, "wrap", focus.WrapContinuous.String(), "wrap policy: continuous, loop or nowrap")
	flagSet.StringVar(&f.strategy, "strategy", focus.StrategyRovingTabindex.String(), "focus strategy: roving or activedescendant")
	flagSet.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flagSet.StringVar(&f.logFile, "log-file", "", "write JSON log records to this file")
	if err := flagSet.Parse(args); err != nil {
		return flags{}, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return flags{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return f, nil
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	wrap, err := focus.ParseWrap(f.wrap)
	if err != nil {
		return err
	}
	strategy, err := focus.ParseStrategy(f.strategy)
	if err != nil {
		return err
	}

	// The TUI owns stdout, so logs only go to a file.
	log := logger.Discard
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer file.Close()
		log = logger.New(logger.Options{
			Buffer: file,
			Level:  logger.ParseLevel(f.logLevel),
			Type:   logger.TypeJSON,
		})
	}

	rows, err := loadLayout(f.layout)
	if err != nil {
		return err
	}
	table, err := grid.NewTable(rows, grid.Options{Logger: log})
	if err != nil {
		return fmt.Errorf("building grid: %w", err)
	}
	nav := navcore.NewGridNavigator(navcore.Options{
		Grid:     table,
		Wrap:     wrap,
		Strategy: strategy,
		Logger:   log,
	})

	program := tea.NewProgram(newModel(table, nav), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
