package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/younwookim/tilejump/internal/application/system"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
)

var errInvalidLevels = errors.New("some levels are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate [level...]",
	Short: "Check level files",
	Long: `Load and build level files the same way 'run' does.

Without arguments every file under configs/levels is checked. A level fails
when it cannot be parsed, its grid is malformed, the player spawn is blocked,
a trigger is invalid or a goto reaction (including goto calls with a literal
level in scripts) points at a missing level.`,
	RunE: runValidate,
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type levelReport struct {
	Stem  string
	Name  string
	Rows  int
	Cols  int
	Error error
}

func runValidate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	reports, err := validateLevels(e, args)
	if err != nil {
		return err
	}

	styled := cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	printReports(cmd.OutOrStdout(), reports, styled)

	for _, r := range reports {
		if r.Error != nil {
			return errInvalidLevels
		}
	}
	return nil
}

// validateLevels builds each named level, or every level when names is empty.
func validateLevels(e *env, names []string) ([]levelReport, error) {
	stems, err := e.loader.ListLevels()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = stems
	}

	reports := make([]levelReport, 0, len(names))
	for _, name := range names {
		reports = append(reports, validateLevel(e, name, stems))
	}
	return reports, nil
}

func validateLevel(e *env, stem string, stems []string) levelReport {
	report := levelReport{Stem: stem}

	cfg, err := e.loader.LoadLevel(stem)
	if err != nil {
		report.Error = err
		return report
	}
	report.Name = cfg.Name

	level, err := system.LoadLevel(cfg, e.game, e.assets, e.logger)
	if err != nil {
		report.Error = err
		return report
	}
	report.Rows, report.Cols = level.Grid.Rows(), level.Grid.Cols()

	for i, tc := range cfg.Triggers {
		trigger, err := system.BuildTrigger(tc)
		if err != nil {
			report.Error = fmt.Errorf("trigger %d: %w", i, err)
			return report
		}
		for _, id := range system.GotoTargets(trigger.Reaction) {
			if target := config.LevelName(int(id)); !slices.Contains(stems, target) {
				report.Error = fmt.Errorf("trigger %d: goto target %s: %w", i, target, config.ErrUnknownLevel)
				return report
			}
		}
	}
	return report
}

func printReports(w io.Writer, reports []levelReport, styled bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	failed := 0
	for _, r := range reports {
		if r.Error != nil {
			failed++
			fmt.Fprintf(w, "%s %s %s\n", render(failStyle, "FAIL"), r.Stem, render(dimStyle, r.Error.Error()))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", render(okStyle, "ok  "), r.Stem, render(dimStyle, fmt.Sprintf("%q %dx%d", r.Name, r.Cols, r.Rows)))
	}
	fmt.Fprintf(w, "%d levels, %d failed\n", len(reports), failed)
}
