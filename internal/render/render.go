// Package render writes results and messages to the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
)

// Printer writes user facing messages, optionally in color.
type Printer struct {
	w     io.Writer
	color colorstring.Colorize
}

// New returns a Printer writing to w.
func New(w io.Writer, color bool) *Printer {
	return &Printer{
		w: w,
		color: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
		},
	}
}

// Writer is the writer the Printer writes to.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success prints a message in green.
func (p *Printer) Success(format string, args ...interface{}) {
	p.print("[green]", format, args...)
}

// Warning prints a message in yellow.
func (p *Printer) Warning(format string, args ...interface{}) {
	p.print("[yellow]", format, args...)
}

// Error prints a message in red.
func (p *Printer) Error(format string, args ...interface{}) {
	p.print("[red]", format, args...)
}

// Info prints a message without color.
func (p *Printer) Info(format string, args ...interface{}) {
	p.print("", format, args...)
}

// print colors the message without parsing it for color codes,
// so brackets in user text are printed as they are.
func (p *Printer) print(color, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if color == "" || p.color.Disable {
		fmt.Fprintln(p.w, msg)
		return
	}
	fmt.Fprintln(p.w, p.color.Color(color)+msg+p.color.Color("[reset]"))
}

// Table writes rows under a header as aligned columns. A nil header is skipped.
func (p *Printer) Table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 3, ' ', 0)
	if len(header) > 0 {
		fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	tw.Flush()
}

// Progress is a progress bar over a fixed number of steps.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a progress bar writing to w. A nil w
// returns a Progress that draws nothing.
func NewProgress(w io.Writer, total int, description string) *Progress {
	if w == nil {
		return &Progress{}
	}
	return &Progress{
		bar: progressbar.NewOptions(
			total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Set moves the bar to done steps, finishing it at total.
func (p *Progress) Set(done, total int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set(done)
	if done >= total {
		_ = p.bar.Finish()
	}
}
