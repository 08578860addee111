package harness

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Summary writes the end-of-run message for the operator.
func Summary(w io.Writer, r *Report, reportPath string) error {
	failures := r.Failures()
	if _, err := fmt.Fprintf(w, "Tested %d seeds: %d passed, %d failed\n", r.Total(), r.Passed(), len(failures)); err != nil {
		return err
	}
	if reportPath != "" {
		if _, err := fmt.Fprintf(w, "Results saved to %q\n", reportPath); err != nil {
			return err
		}
	}
	if len(failures) == 0 {
		_, err := fmt.Fprintln(w, passStyle.Render("All seeds passed successfully!"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SEED", "KIND", "REASON").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, e := range failures {
		t.Row(e.Seed, e.Kind(), e.Err.Error())
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", failStyle.Render("Some seeds failed:"), t.String())
	return err
}
