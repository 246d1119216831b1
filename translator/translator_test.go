package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/shaderpreview/graphics"
	"github.com/richinsley/shaderpreview/shader"
	"github.com/richinsley/shaderpreview/validate"
)

func TestNeedsTranslation(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"void main() {}", true},
		{"#version 100\nvoid main() {}", true},
		{"#version 300 es\nvoid main() {}", true},
		{"#version 310 es\nvoid main() {}", true},
		{"#version 330 core\nvoid main() {}", false},
		{"#version 410\nvoid main() {}", false},
	}
	for _, c := range cases {
		d, _ := validate.CheckDirective(c.src)
		assert.Equal(t, c.want, needsTranslation(d), c.src)
	}
}

func TestDesktopSourcePassesThrough(t *testing.T) {
	src := "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }"
	var tr Translator

	out, err := tr.Translate(src, graphics.StageFragment)
	require.NoError(t, err)
	assert.Equal(t, src, out.Code)
	assert.Nil(t, out.Names)
}

func TestUninitializedTranslatorFails(t *testing.T) {
	var tr Translator
	_, err := tr.Translate("#version 300 es\nvoid main() {}", graphics.StageFragment)
	assert.EqualError(t, err, "shader translator not initialized")
}

func TestNewerESVersionIsRejected(t *testing.T) {
	var tr Translator
	_, err := tr.Translate("#version 310 es\nout highp vec4 c;\nvoid main() { c = vec4(1.0); }", graphics.StageFragment)
	assert.EqualError(t, err, "GLSL ES 310 is not supported, use #version 300 es or #version 100")
}

func TestWithDefaultPrecision(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unversioned",
			src:  "uniform float time;\nvoid main() {}",
			want: "precision mediump float; uniform float time;\nvoid main() {}",
		},
		{
			name: "after version and extension",
			src:  "#version 100\n#extension GL_OES_standard_derivatives : enable\n\nvoid main() {}",
			want: "#version 100\n#extension GL_OES_standard_derivatives : enable\n\nprecision mediump float; void main() {}",
		},
		{
			name: "before other directives",
			src:  "#version 300 es\n#define PI 3.14159\nout vec4 c;",
			want: "#version 300 es\nprecision mediump float;\n#define PI 3.14159\nout vec4 c;",
		},
		{
			name: "already declared",
			src:  "precision highp float;\nvoid main() {}",
			want: "precision highp float;\nvoid main() {}",
		},
		{
			name: "directives only",
			src:  "#version 100",
			want: "#version 100\nprecision mediump float;",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, withDefaultPrecision(c.src))
		})
	}
}

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New(context.Background())
	require.NoError(t, err)
	return tr
}

func TestDefaultPresetsTranslate(t *testing.T) {
	tr := newTranslator(t)
	lib := shader.DefaultLibrary()

	for _, name := range lib.Names() {
		t.Run(name, func(t *testing.T) {
			src, err := lib.Get(name)
			require.NoError(t, err)
			res := validate.Validate(src)
			require.True(t, res.Valid, "%v", res.Errors)

			vs := shader.VertexSource(res.Directive.Version, res.Directive.Profile)
			_, err = tr.Translate(vs, graphics.StageVertex)
			require.NoError(t, err)

			out, err := tr.Translate(res.CleanedCode, graphics.StageFragment)
			require.NoError(t, err)
			assert.NotEmpty(t, out.Code)
		})
	}
}

func TestFragmentWithoutPrecisionTranslates(t *testing.T) {
	tr := newTranslator(t)
	src := "uniform float iTime;\nvoid main() { gl_FragColor = vec4(iTime); }"

	out, err := tr.Translate(src, graphics.StageFragment)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Code)
}
