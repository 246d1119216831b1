// Package validate turns untrusted fragment-shader text into compile-ready
// source. Validation is heuristic and structural; it is not a GLSL front end
// and the GPU driver remains the final judge.
package validate

import (
	"regexp"
	"strings"
)

var blankRun = regexp.MustCompile(`\n{3,}`)

// Result is the outcome of a single Validate call. Errors non-empty implies
// Valid is false; warnings never affect Valid.
type Result struct {
	CleanedCode string
	Valid       bool
	Errors      []string
	Warnings    []string
	Directive   Directive
}

// Validate sanitizes raw shader text and runs the directive and structural
// checks over it. It is pure and cheap enough to run on every edit.
func Validate(raw string) Result {
	cleaned, notes := Sanitize(raw)

	var f Findings
	f.Warnings = append(f.Warnings, notes...)

	d, df := CheckDirective(cleaned)
	f.merge(df)
	f.merge(CheckStructure(cleaned, d))

	tidied := tidy(cleaned)
	if d.Found {
		// Collapsing blank runs can move the directive up.
		td, _ := CheckDirective(tidied)
		d.Line = td.Line
	}

	res := Result{
		CleanedCode: tidied,
		Valid:       len(f.Errors) == 0,
		Errors:      f.Errors,
		Warnings:    f.Warnings,
		Directive:   d,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res
}

// tidy trims trailing whitespace on every line and limits runs of blank
// lines to one.
func tidy(code string) string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\f\v")
	}
	return blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}
