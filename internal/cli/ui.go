package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/layout"
)

// out receives all user-facing output. Logs go to stderr.
var out io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+StyleError.Render(fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(out, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints layout statistics on a single line.
func printStats(fields, size int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf("%d fields", fields))+sep+
		StyleDim.Render(fmt.Sprintf("%d bytes", size))+sep+statusStyle.Render(status))
}

// =============================================================================
// Report Output
// =============================================================================

// printReport prints rep grouped by severity followed by its status line.
func printReport(rep *layout.Report) {
	for _, is := range rep.Infos {
		printInfo("%s", is.Message)
	}
	for _, is := range rep.Warnings {
		printWarning("%s", is.Message)
	}
	for _, is := range rep.Errors {
		printError("%s", is.Message)
	}

	switch {
	case !rep.Valid():
		fmt.Fprintln(out, StyleError.Bold(true).Render(rep.Status()))
	case rep.HasWarnings():
		fmt.Fprintln(out, StyleWarning.Bold(true).Render(rep.Status()))
	default:
		fmt.Fprintln(out, StyleSuccess.Bold(true).Render(rep.Status()))
	}
}

// =============================================================================
// Field Table
// =============================================================================

var fieldHeaders = []string{"Line", "Name", "In", "Type", "Size", "Start", "End", "Align", "Req", "Value"}

// fieldRow returns the table cells of r.
func fieldRow(r *field.Record) []string {
	return []string{
		strconv.Itoa(r.Line),
		r.Name,
		r.Input,
		r.Type,
		intCell(r.Size),
		intCell(r.Start),
		intCell(r.End),
		r.Alignment,
		r.Required,
		r.Value,
	}
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// fieldTable renders records as a bordered table. Rows of inactive fields are
// dimmed; the row at cursor (table row index, -1 for none) is highlighted.
func fieldTable(records []*field.Record, cursor int) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = fieldRow(r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(fieldHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row < 0 || row >= len(records) {
				return base
			}
			switch {
			case row == cursor:
				return base.Foreground(colorCyan).Bold(true)
			case !records[row].Active():
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}
