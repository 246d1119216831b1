// Package gldevice implements graphics.Context on desktop OpenGL 4.1 core.
package gldevice

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/shaderpreview/graphics"
	"github.com/richinsley/shaderpreview/renderer"
	"github.com/richinsley/shaderpreview/shader"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Device issues GL calls against the context of one surface. All methods
// must run on the thread that owns that context.
type Device struct {
	surface graphics.Surface
	quadVAO uint32
	quadVBO uint32
	bound   graphics.Location
}

// New makes the surface current, loads the GL entry points and uploads the
// full-screen quad. It wraps renderer.ErrContextUnavailable when the driver
// cannot provide a usable context.
func New(surface graphics.Surface) (*Device, error) {
	if surface == nil {
		return nil, renderer.ErrContextUnavailable
	}
	surface.MakeCurrent()

	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("%w: failed to initialize OpenGL: %v", renderer.ErrContextUnavailable, glInitErr)
	}

	d := &Device{surface: surface, bound: graphics.NoLocation}
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(shader.QuadVertices)*4, gl.Ptr(shader.QuadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return d, nil
}

// Version returns the driver's GL_VERSION string.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateShader(stage graphics.Stage) (graphics.Shader, error) {
	var kind uint32
	switch stage {
	case graphics.StageVertex:
		kind = gl.VERTEX_SHADER
	case graphics.StageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("unsupported shader stage %d", stage)
	}
	s := gl.CreateShader(kind)
	if s == 0 {
		return 0, fmt.Errorf("glCreateShader returned 0 (error 0x%x)", gl.GetError())
	}
	return graphics.Shader(s), nil
}

func (d *Device) CompileShader(s graphics.Shader, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
	gl.CompileShader(uint32(s))

	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(logText))
		return false, strings.TrimRight(logText, "\x00\n")
	}
	return true, ""
}

func (d *Device) DeleteShader(s graphics.Shader) {
	gl.DeleteShader(uint32(s))
}

func (d *Device) CreateProgram() (graphics.Program, error) {
	p := gl.CreateProgram()
	if p == 0 {
		return 0, fmt.Errorf("glCreateProgram returned 0 (error 0x%x)", gl.GetError())
	}
	return graphics.Program(p), nil
}

func (d *Device) AttachShader(p graphics.Program, s graphics.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *Device) DetachShader(p graphics.Program, s graphics.Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (d *Device) LinkProgram(p graphics.Program) (bool, string) {
	gl.LinkProgram(uint32(p))

	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
		return false, strings.TrimRight(log, "\x00\n")
	}
	return true, ""
}

func (d *Device) DeleteProgram(p graphics.Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *Device) AttribLocation(p graphics.Program, name string) graphics.Location {
	return graphics.Location(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) UniformLocation(p graphics.Program, name string) graphics.Location {
	return graphics.Location(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

// BindQuad points attrib at the quad buffer. Translated stages may rename
// the attribute, in which case the pinned location is used.
func (d *Device) BindQuad(attrib graphics.Location) {
	if !attrib.Valid() {
		attrib = shader.PositionLocation
	}
	gl.BindVertexArray(d.quadVAO)
	if d.bound.Valid() && d.bound != attrib {
		gl.DisableVertexAttribArray(uint32(d.bound))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.EnableVertexAttribArray(uint32(attrib))
	gl.VertexAttribPointer(uint32(attrib), 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	d.bound = attrib
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) UseProgram(p graphics.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) Uniform1f(l graphics.Location, v float32) {
	gl.Uniform1f(int32(l), v)
}

func (d *Device) Uniform2f(l graphics.Location, x, y float32) {
	gl.Uniform2f(int32(l), x, y)
}

func (d *Device) DrawArrays(mode graphics.Primitive, first, count int) {
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(primitive(mode), int32(first), int32(count))
}

func (d *Device) ReadPixels(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid read size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels failed with error 0x%x", e)
	}
	return pixels, nil
}

// Release deletes the quad and shuts down the surface.
func (d *Device) Release() {
	if d.surface == nil {
		return
	}
	gl.DeleteBuffers(1, &d.quadVBO)
	gl.DeleteVertexArrays(1, &d.quadVAO)
	d.surface.Shutdown()
	d.surface = nil
}

func primitive(p graphics.Primitive) uint32 {
	if p == graphics.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

var _ graphics.Context = (*Device)(nil)
