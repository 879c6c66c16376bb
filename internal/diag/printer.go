// Package diag renders structured diagnostic reports for terminals.
// The checker core never imports this; embedders wire a Printer into
// the diagnostic sink when they want human-readable output.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mbcrawfo/vibefun/internal/errors"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

// Printer writes reports to a writer, one per line, colorized when the
// writer is a terminal.
type Printer struct {
	w     io.Writer
	plain bool
}

// NewPrinter creates a printer for w. Color is enabled only when w is
// a TTY; color.NoColor (NO_COLOR and friends) is honored on top.
func NewPrinter(w io.Writer) *Printer {
	plain := true
	if f, ok := w.(*os.File); ok {
		plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{w: w, plain: plain}
}

// NewPlainPrinter creates a printer that never emits color
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w, plain: true}
}

// Print renders one report: position, code, message, and the two
// offending types when the report carries them.
func (p *Printer) Print(r *errors.Report) {
	loc := ""
	if r.Pos != nil {
		loc = r.Pos.String() + ": "
	}

	if p.plain {
		fmt.Fprintf(p.w, "%serror[%s]: %s\n", loc, r.Code, r.Message)
	} else {
		fmt.Fprintf(p.w, "%s%s: %s\n", dim(loc), red(bold("error["+r.Code+"]")), r.Message)
	}

	left, lok := r.Data["left"].(string)
	right, rok := r.Data["right"].(string)
	if lok && rok {
		if p.plain {
			fmt.Fprintf(p.w, "  expected: %s\n  actual:   %s\n", left, right)
		} else {
			fmt.Fprintf(p.w, "  expected: %s\n  actual:   %s\n", cyan(left), cyan(right))
		}
	}
}

// PrintAll renders a slice of reports in order
func (p *Printer) PrintAll(reports []*errors.Report) {
	for _, r := range reports {
		p.Print(r)
	}
}
