// Package console prints the user-facing progress lines of the CLI.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

type Printer struct {
	out     io.Writer
	success lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	heading lipgloss.Style
}

// New returns a printer for w. Colours are dropped automatically when w is
// not a terminal.
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	renderer := lipgloss.NewRenderer(w)
	return &Printer{
		out:     w,
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    renderer.NewStyle().Foreground(lipgloss.Color("3")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		info:    renderer.NewStyle().Foreground(lipgloss.Color("6")),
		heading: renderer.NewStyle().Bold(true),
	}
}

func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, "✔", format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, "⚠", format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.line(p.failure, "❌", format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.line(p.info, "ℹ", format, args...)
}

func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.out, p.heading.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) line(style lipgloss.Style, prefix, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", style.Render(prefix), fmt.Sprintf(format, args...))
}
