package renderer

import (
	"errors"
	"strings"

	"github.com/richinsley/shaderpreview/graphics"
)

// fakeContext records GPU calls and tracks which objects are still alive.
type fakeContext struct {
	next     uint32
	shaders  map[graphics.Shader]graphics.Stage
	programs map[graphics.Program]bool

	failCompile graphics.Stage
	compileLog  string
	failLink    bool
	linkLog     string
	noProgram   bool

	uniforms map[string]graphics.Location
	sources  []string

	draws     int
	uniform1f []float32
	uniform2f [][2]float32
	viewports [][2]int
	released  int
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		shaders:  make(map[graphics.Shader]graphics.Stage),
		programs: make(map[graphics.Program]bool),
		uniforms: map[string]graphics.Location{
			"iResolution": 0,
			"iTime":       1,
		},
	}
}

func (f *fakeContext) id() uint32 {
	f.next++
	return f.next
}

func (f *fakeContext) CreateShader(stage graphics.Stage) (graphics.Shader, error) {
	s := graphics.Shader(f.id())
	f.shaders[s] = stage
	return s, nil
}

func (f *fakeContext) CompileShader(s graphics.Shader, source string) (bool, string) {
	f.sources = append(f.sources, source)
	if f.shaders[s] == f.failCompile {
		return false, f.compileLog
	}
	return true, ""
}

func (f *fakeContext) DeleteShader(s graphics.Shader) {
	delete(f.shaders, s)
}

func (f *fakeContext) CreateProgram() (graphics.Program, error) {
	if f.noProgram {
		return 0, errors.New("out of program objects")
	}
	p := graphics.Program(f.id())
	f.programs[p] = true
	return p, nil
}

func (f *fakeContext) AttachShader(graphics.Program, graphics.Shader) {}
func (f *fakeContext) DetachShader(graphics.Program, graphics.Shader) {}

func (f *fakeContext) LinkProgram(graphics.Program) (bool, string) {
	if f.failLink {
		return false, f.linkLog
	}
	return true, ""
}

func (f *fakeContext) DeleteProgram(p graphics.Program) {
	delete(f.programs, p)
}

func (f *fakeContext) AttribLocation(_ graphics.Program, name string) graphics.Location {
	if strings.HasSuffix(name, "position") {
		return 0
	}
	return graphics.NoLocation
}

func (f *fakeContext) UniformLocation(_ graphics.Program, name string) graphics.Location {
	if l, ok := f.uniforms[name]; ok {
		return l
	}
	return graphics.NoLocation
}

func (f *fakeContext) BindQuad(graphics.Location) {}

func (f *fakeContext) Viewport(w, h int) {
	f.viewports = append(f.viewports, [2]int{w, h})
}

func (f *fakeContext) ClearColor(r, g, b, a float32) {}
func (f *fakeContext) Clear()                        {}
func (f *fakeContext) UseProgram(graphics.Program)   {}

func (f *fakeContext) Uniform1f(_ graphics.Location, v float32) {
	f.uniform1f = append(f.uniform1f, v)
}

func (f *fakeContext) Uniform2f(_ graphics.Location, x, y float32) {
	f.uniform2f = append(f.uniform2f, [2]float32{x, y})
}

func (f *fakeContext) DrawArrays(graphics.Primitive, int, int) {
	f.draws++
}

func (f *fakeContext) ReadPixels(w, h int) ([]byte, error) {
	return make([]byte, w*h*4), nil
}

func (f *fakeContext) Release() {
	f.released++
}

func (f *fakeContext) liveShaders() int  { return len(f.shaders) }
func (f *fakeContext) livePrograms() int { return len(f.programs) }

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64 { return c.now }

// mapTranslator renames identifiers with a prefix and reports the mapping.
type mapTranslator struct {
	prefix string
	fail   error
}

func (t *mapTranslator) Translate(source string, stage graphics.Stage) (*Translation, error) {
	if t.fail != nil {
		return nil, t.fail
	}
	names := map[string]string{}
	for _, name := range []string{"a_position", "iResolution", "iTime", "u_time", "u_resolution"} {
		if strings.Contains(source, name) {
			names[name] = t.prefix + name
		}
	}
	return &Translation{Code: "// translated " + stage.String() + "\n" + source, Names: names}, nil
}

const (
	validShader = `#version 300 es
precision highp float;
uniform vec2 iResolution;
uniform float iTime;
out vec4 fragColor;
void main() {
    fragColor = vec4(gl_FragCoord.xy / iResolution, sin(iTime), 1.0);
}`

	otherShader = `#version 300 es
precision mediump float;
uniform float iTime;
out vec4 fragColor;
void main() {
    fragColor = vec4(1.0, 0.0, 0.0, 1.0);
}`

	invalidShader = `#version 300 es
precision mediump float;
out vec4 fragColor;`
)
