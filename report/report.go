// Package report prints validation results, build errors and shader code
// for a terminal.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"github.com/richinsley/shaderpreview/renderer"
	"github.com/richinsley/shaderpreview/validate"
)

const (
	colorError   = "#ef4444"
	colorWarning = "#f59e0b"
	colorOK      = "#22c55e"
	colorMuted   = "#9ca3af"
)

// Printer writes reports to one output, colouring labels as far as the
// output's profile allows.
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

// New returns a Printer on w. Pass termenv.WithProfile to force a colour
// profile; by default it is detected from w.
func New(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{w: w, out: termenv.NewOutput(w, opts...)}
}

func (p *Printer) label(text, color string) string {
	return p.out.String(text).Foreground(p.out.Color(color)).Bold().String()
}

// Result prints a validation result: the size change made by sanitization,
// the verdict, then every error and warning on its own labelled line.
func (p *Printer) Result(raw string, res validate.Result) {
	fmt.Fprintf(p.w, "%s %d -> %d characters\n",
		p.label("Length:", colorMuted), len([]rune(raw)), len([]rune(res.CleanedCode)))
	p.findings(res)
}

func (p *Printer) findings(res validate.Result) {
	if res.Directive.Found && res.Directive.Version > 0 {
		profile := ""
		if res.Directive.Profile != "" {
			profile = " " + res.Directive.Profile
		}
		fmt.Fprintf(p.w, "%s %d%s (line %d)\n", p.label("Version:", colorMuted),
			res.Directive.Version, profile, res.Directive.Line+1)
	}

	if res.Valid {
		fmt.Fprintln(p.w, p.label("Valid", colorOK))
	} else {
		fmt.Fprintln(p.w, p.label("Invalid", colorError))
	}
	for _, e := range res.Errors {
		fmt.Fprintf(p.w, "%s %s\n", p.label("Error:", colorError), e)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(p.w, "%s %s\n", p.label("Warning:", colorWarning), w)
	}
}

// Error prints a preview error with a label naming where it came from.
// Validation errors are listed one per line.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}

	var (
		ve *renderer.ValidationError
		ce *renderer.CompileError
		le *renderer.LinkError
	)
	switch {
	case errors.As(err, &ve):
		for _, e := range ve.Errors {
			fmt.Fprintf(p.w, "%s %s\n", p.label("Error:", colorError), e)
		}
	case errors.As(err, &ce):
		fmt.Fprintf(p.w, "%s\n%s\n", p.label(fmt.Sprintf("Compile error (%s shader):", ce.Stage), colorError), ce.Log)
	case errors.As(err, &le):
		fmt.Fprintf(p.w, "%s\n%s\n", p.label("Link error:", colorError), le.Log)
	case errors.Is(err, renderer.ErrContextUnavailable):
		fmt.Fprintf(p.w, "%s %v\n", p.label("Graphics error:", colorError), err)
	default:
		fmt.Fprintf(p.w, "%s %v\n", p.label("Error:", colorError), err)
	}
}

// Status prints the outcome of the latest accepted revision. Validation
// errors are already part of the result and are not repeated.
func (p *Printer) Status(st renderer.Status) {
	fmt.Fprintf(p.w, "%s %d\n", p.label("Revision:", colorMuted), st.Revision)
	p.findings(st.Result)
	var ve *renderer.ValidationError
	if st.Err != nil && !errors.As(st.Err, &ve) {
		p.Error(st.Err)
	}
}

// Code prints shader source with GLSL syntax highlighting.
func (p *Printer) Code(code string) error {
	return quick.Highlight(p.w, code, "glsl", formatterFor(p.out.Profile), "monokai")
}

func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	}
	return "noop"
}
