package commands

import (
	"fmt"
	"io"
	"os"

	"sandboxdash/internal/app"
	"sandboxdash/internal/views"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	colorDim     = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorBorder  = lipgloss.Color("#4B5563")
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	secondaryStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// output writes command results, styled only when w is a terminal
type output struct {
	w     io.Writer
	color bool
}

func newOutput(w io.Writer) *output {
	return &output{w: w, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (o *output) style(s lipgloss.Style, text string) string {
	if !o.color {
		return text
	}
	return s.Render(text)
}

// badge renders a session status the way the dashboard does: only "live"
// gets the primary treatment
func (o *output) badge(status string) string {
	if views.BadgeVariant(status) == views.BadgeDefault {
		return o.style(successStyle, status)
	}
	return o.style(secondaryStyle, status)
}

func (o *output) title(text string) {
	fmt.Fprintln(o.w, o.style(titleStyle, text))
}

func (o *output) dim(text string) string {
	return o.style(dimStyle, text)
}

func (o *output) errorText(text string) string {
	return o.style(errorStyle, text)
}

func (o *output) println(a ...interface{}) {
	fmt.Fprintln(o.w, a...)
}

func (o *output) printf(format string, a ...interface{}) {
	fmt.Fprintf(o.w, format, a...)
}

// table prints rows under headers. An empty table prints empty instead.
func (o *output) table(headers []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		o.println(o.dim(empty))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if o.color {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colorBorder))
	}

	o.println(t.Render())
}

// setup loads the configuration named by --config and connects the backend
// clients
func setup(cmd *cobra.Command, a *app.App) error {
	path, _ := cmd.Flags().GetString("config")
	if err := a.LoadConfig(path); err != nil {
		return err
	}
	return a.Connect()
}

// parseSorting maps --sort/--desc onto the dashboard's table sorting
func parseSorting(cmd *cobra.Command) views.Sorting {
	column, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	return views.Sorting{ColumnID: column, Desc: desc}
}
