package validate

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	ProfileES   = "es"
	ProfileCore = "core"
)

// minModernVersion is the first language version with in/out stage
// variables.
const minModernVersion = 300

var versionPattern = regexp.MustCompile(`^#version\s+(\d+)(?:\s+(es|core))?\s*(?://.*)?$`)

// Directive describes the #version line of a shader, if any.
type Directive struct {
	Found   bool
	Line    int // zero-based line index
	Version int
	Profile string
}

// Modern reports whether the directive selects a language version that
// supports in/out stage variables.
func (d Directive) Modern() bool {
	return d.Found && d.Version >= minModernVersion
}

// ES reports whether the directive names the ES profile.
func (d Directive) ES() bool {
	return d.Profile == ProfileES
}

// Findings accumulates errors and warnings in detection order.
type Findings struct {
	Errors   []string
	Warnings []string
}

func (f *Findings) errorf(msg string) {
	f.Errors = append(f.Errors, msg)
}

func (f *Findings) warnf(msg string) {
	f.Warnings = append(f.Warnings, msg)
}

func (f *Findings) merge(o Findings) {
	f.Errors = append(f.Errors, o.Errors...)
	f.Warnings = append(f.Warnings, o.Warnings...)
}

// CheckDirective locates the version directive in cleaned shader text and
// checks its position and format. Scanning stops at the first #version line.
func CheckDirective(code string) (Directive, Findings) {
	var (
		d        Directive
		f        Findings
		inBlock  bool
		sawCode  bool
		rawLine  string
		foundIdx = -1
	)

	lines := strings.Split(code, "\n")
	for i, l := range lines {
		line := strings.TrimSpace(l)
		if inBlock {
			if strings.Contains(line, "*/") {
				inBlock = false
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line[2:], "*/") {
				inBlock = true
			}
			continue
		}
		if strings.HasPrefix(line, "#version") {
			if sawCode {
				f.errorf("Version directive must be the first non-comment line")
			}
			foundIdx = i
			rawLine = line
			break
		}
		sawCode = true
	}

	if foundIdx < 0 {
		f.warnf("No version directive found, the runtime will assume a default version")
		return d, f
	}

	d.Found = true
	d.Line = foundIdx
	m := versionPattern.FindStringSubmatch(rawLine)
	if m == nil {
		f.errorf("Invalid version directive format")
		return d, f
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		f.errorf("Invalid version directive format")
		return d, f
	}
	d.Version = v
	d.Profile = m[2]

	switch {
	case d.ES() && v < minModernVersion:
		f.errorf("GLSL ES version must be 300 or higher for modern features")
	case v < minModernVersion:
		f.warnf("Using legacy GLSL version, some features may not be available")
	}
	return d, f
}
