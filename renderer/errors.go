package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/richinsley/shaderpreview/graphics"
)

var (
	// ErrContextUnavailable means no capable graphics context could be
	// acquired. It is fatal for the preview instance.
	ErrContextUnavailable = errors.New("graphics context unavailable")

	// ErrStaleRevision is returned when shader text arrives after a newer
	// revision has already been accepted.
	ErrStaleRevision = errors.New("shader revision superseded")

	// ErrTornDown is returned by operations on a preview after Teardown.
	ErrTornDown = errors.New("preview torn down")
)

// ValidationError carries the validation errors that kept shader text from
// being built.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "shader parsing failed:\n" + strings.Join(e.Errors, "\n")
}

// CompileError carries the driver log of a stage that failed to compile.
type CompileError struct {
	Stage graphics.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader compilation error (%s): %s", e.Stage, e.Log)
}

// LinkError carries the driver log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program linking error: " + e.Log
}
