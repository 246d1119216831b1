package renderer

import (
	"fmt"

	"github.com/richinsley/shaderpreview/graphics"
	"github.com/richinsley/shaderpreview/shader"
	"github.com/richinsley/shaderpreview/validate"
)

// Logical uniform names in a UniformTable.
const (
	UniformResolution = "resolution"
	UniformTime       = "time"
)

// uniformCandidates lists, per logical uniform, the shader-side names tried
// in order.
var uniformCandidates = []struct {
	logical string
	names   []string
}{
	{UniformResolution, []string{"iResolution", "u_resolution", "resolution"}},
	{UniformTime, []string{"iTime", "u_time", "time"}},
}

// UniformTable maps a logical uniform name to its location in one program.
// A missing entry means the shader does not declare that uniform.
type UniformTable map[string]graphics.Location

// Location returns the location of a logical uniform, if present.
func (u UniformTable) Location(name string) (graphics.Location, bool) {
	l, ok := u[name]
	return l, ok && l.Valid()
}

// Translation is shader source rewritten for the context's native dialect.
// Names maps original identifiers to the identifiers in Code; a nil map means
// identifiers pass through unchanged.
type Translation struct {
	Code  string
	Names map[string]string
}

// Translator rewrites a stage before it is handed to the context.
type Translator interface {
	Translate(source string, stage graphics.Stage) (*Translation, error)
}

// Program is a linked GPU program. It owns its program object; the stage
// objects it was built from are already deleted.
type Program struct {
	ID       graphics.Program
	Position graphics.Location
	Uniforms UniformTable

	ctx      graphics.Context
	released bool
}

// Release deletes the program object. It is safe to call more than once.
func (p *Program) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.ctx.DeleteProgram(p.ID)
}

// Released reports whether Release has run.
func (p *Program) Released() bool {
	return p == nil || p.released
}

// Builder compiles the fixed vertex stage and a fragment stage into a
// Program.
type Builder struct {
	// Translator, if set, rewrites both stages before compilation.
	Translator Translator
}

type stageSource struct {
	code  string
	names map[string]string
}

// Build compiles and links the cleaned code of a valid result. Every GPU
// object created on a failure path is deleted before Build returns.
func (b *Builder) Build(ctx graphics.Context, res validate.Result) (*Program, error) {
	if ctx == nil {
		return nil, ErrContextUnavailable
	}
	if !res.Valid {
		return nil, &ValidationError{Errors: res.Errors}
	}
	vs, err := b.prepare(shader.VertexSource(res.Directive.Version, res.Directive.Profile), graphics.StageVertex)
	if err != nil {
		return nil, err
	}
	fs, err := b.prepare(res.CleanedCode, graphics.StageFragment)
	if err != nil {
		return nil, err
	}

	vertex, err := compileStage(ctx, graphics.StageVertex, vs.code)
	if err != nil {
		return nil, err
	}
	fragment, err := compileStage(ctx, graphics.StageFragment, fs.code)
	if err != nil {
		ctx.DeleteShader(vertex)
		return nil, err
	}

	id, err := linkProgram(ctx, vertex, fragment)
	if err != nil {
		return nil, err
	}

	p := &Program{
		ID:       id,
		Position: ctx.AttribLocation(id, mapName(vs.names, shader.PositionAttribute)),
		Uniforms: make(UniformTable),
		ctx:      ctx,
	}
	for _, u := range uniformCandidates {
		for _, name := range u.names {
			mapped, ok := lookupName(fs.names, name)
			if !ok {
				continue
			}
			if loc := ctx.UniformLocation(id, mapped); loc.Valid() {
				p.Uniforms[u.logical] = loc
				break
			}
		}
	}
	return p, nil
}

func (b *Builder) prepare(source string, stage graphics.Stage) (stageSource, error) {
	if b.Translator == nil {
		return stageSource{code: source}, nil
	}
	t, err := b.Translator.Translate(source, stage)
	if err != nil {
		return stageSource{}, &CompileError{Stage: stage, Log: err.Error()}
	}
	return stageSource{code: t.Code, names: t.Names}, nil
}

// lookupName resolves an identifier through a translation name map. Without
// a map every name passes through; with one, names the translator did not
// report are not active in the translated code.
func lookupName(names map[string]string, name string) (string, bool) {
	if names == nil {
		return name, true
	}
	mapped, ok := names[name]
	return mapped, ok
}

func mapName(names map[string]string, name string) string {
	if mapped, ok := lookupName(names, name); ok {
		return mapped
	}
	return name
}

func compileStage(ctx graphics.Context, stage graphics.Stage, source string) (graphics.Shader, error) {
	s, err := ctx.CreateShader(stage)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s shader: %w", stage, err)
	}
	if ok, log := ctx.CompileShader(s, source); !ok {
		ctx.DeleteShader(s)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return s, nil
}

// linkProgram takes ownership of both stage objects: they are detached and
// deleted whether or not linking succeeds.
func linkProgram(ctx graphics.Context, vertex, fragment graphics.Shader) (graphics.Program, error) {
	release := func(p graphics.Program) {
		if p != 0 {
			ctx.DetachShader(p, vertex)
			ctx.DetachShader(p, fragment)
		}
		ctx.DeleteShader(vertex)
		ctx.DeleteShader(fragment)
	}

	p, err := ctx.CreateProgram()
	if err != nil {
		release(0)
		return 0, fmt.Errorf("failed to create program: %w", err)
	}
	ctx.AttachShader(p, vertex)
	ctx.AttachShader(p, fragment)
	ok, log := ctx.LinkProgram(p)
	release(p)
	if !ok {
		ctx.DeleteProgram(p)
		return 0, &LinkError{Log: log}
	}
	return p, nil
}
