// Package ui renders command output for terminals and pipes.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Printer writes styled output on a TTY and plain text otherwise.
type Printer struct {
	out    io.Writer
	styled bool
}

// New creates a printer that styles output when f is a terminal.
func New(f *os.File) *Printer {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return &Printer{out: f, styled: tty}
}

// NewPlain creates a printer that never styles output.
func NewPlain(w io.Writer) *Printer {
	return &Printer{out: w}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Title prints a heading.
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.out, p.render(titleStyle, s))
}

// Muted prints secondary text.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(mutedStyle, fmt.Sprintf(format, args...)))
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(okStyle, "✓ ")+fmt.Sprintf(format, args...))
}

// Error prints a failure line.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(errorStyle, "✗ ")+fmt.Sprintf(format, args...))
}

// Println prints text unchanged.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out, s)
}

// Panel prints body in a bordered box under title.
func (p *Printer) Panel(title, body string) {
	p.Title(title)
	if !p.styled {
		fmt.Fprintln(p.out, body)
		return
	}
	fmt.Fprintln(p.out, panelStyle.Render(body))
}

// List prints items numbered from 1.
func (p *Printer) List(items []string) {
	for i, item := range items {
		fmt.Fprintf(p.out, "%s %s\n", p.render(mutedStyle, fmt.Sprintf("%d.", i+1)), item)
	}
}

// Table prints rows in left-aligned columns sized to the widest cell.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	fmt.Fprintln(p.out, p.render(titleStyle, formatRow(header, widths)))
	for _, row := range rows {
		fmt.Fprintln(p.out, formatRow(row, widths))
	}
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, 0, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, cell+strings.Repeat(" ", w-lipgloss.Width(cell)))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
