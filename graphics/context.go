package graphics

// Stage identifies a programmable pipeline stage.
type Stage uint32

const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// Primitive is a draw topology.
type Primitive uint32

const (
	Triangles Primitive = iota + 1
	TriangleStrip
)

// Shader and Program are opaque GPU object names. Zero is never a live object.
type (
	Shader  uint32
	Program uint32
)

// Location is an attribute or uniform location. NoLocation marks a name the
// program does not declare or use.
type Location int32

const NoLocation Location = -1

// Valid reports whether l refers to an active attribute or uniform.
func (l Location) Valid() bool {
	return l >= 0
}

// Context is the GPU capability surface the preview needs. Every object it
// creates must be handed back through the matching Delete call; Release
// frees the context itself and the surface behind it.
type Context interface {
	CreateShader(stage Stage) (Shader, error)
	// CompileShader uploads source and compiles it, returning the driver's
	// info log when compilation fails.
	CompileShader(s Shader, source string) (ok bool, infoLog string)
	DeleteShader(s Shader)

	CreateProgram() (Program, error)
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program) (ok bool, infoLog string)
	DeleteProgram(p Program)

	AttribLocation(p Program, name string) Location
	UniformLocation(p Program, name string) Location
	// BindQuad feeds the full-screen quad vertices into the given attribute.
	BindQuad(attrib Location)

	Viewport(width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	UseProgram(p Program)
	Uniform1f(l Location, v float32)
	Uniform2f(l Location, x, y float32)
	DrawArrays(mode Primitive, first, count int)
	// ReadPixels returns the current color buffer as bottom-up RGBA rows.
	ReadPixels(width, height int) ([]byte, error)

	Release()
}

// Surface is a window or offscreen drawable that a Context renders into.
type Surface interface {
	MakeCurrent()
	SwapBuffers()
	PollEvents()
	// WaitEvents blocks until an event arrives or timeout seconds pass.
	WaitEvents(timeout float64)
	ShouldClose() bool
	GetFramebufferSize() (int, int)
	Time() float64
	Shutdown()
}
