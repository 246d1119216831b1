package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexSourceMatchesFragmentVersion(t *testing.T) {
	assert.True(t, strings.HasPrefix(VertexSource(300, "es"), "#version 300 es\n"))
	assert.True(t, strings.HasPrefix(VertexSource(310, "es"), "#version 300 es\n"))
	assert.True(t, strings.HasPrefix(VertexSource(330, "core"), "#version 330 core\n"))
	assert.True(t, strings.HasPrefix(VertexSource(410, ""), "#version 330 core\n"))
	assert.True(t, strings.HasPrefix(VertexSource(0, ""), "attribute vec2 a_position;"))
	assert.True(t, strings.HasPrefix(VertexSource(100, "es"), "attribute vec2 a_position;"))

	for _, src := range []string{VertexSource(300, "es"), VertexSource(330, ""), VertexSource(0, "")} {
		assert.Contains(t, src, PositionAttribute)
		assert.Contains(t, src, "v_texCoord")
	}
}

func TestQuadIsFourVertexStrip(t *testing.T) {
	assert.Len(t, QuadVertices, 8)
}

func TestDefaultLibrary(t *testing.T) {
	lib := DefaultLibrary()
	assert.Equal(t, []string{"Rainbow Wave", "Plasma", "Mandelbrot"}, lib.Names())
	assert.Equal(t, []string{"Mandelbrot", "Plasma", "Rainbow Wave"}, lib.Sorted())

	src, err := lib.Get("Plasma")
	require.NoError(t, err)
	assert.Contains(t, src, "void main()")

	_, err = lib.Get("Nope")
	assert.EqualError(t, err, `no preset named "Nope"`)

	for _, name := range lib.Names() {
		src, err := lib.Get(name)
		require.NoError(t, err)
		assert.Contains(t, src, "precision mediump float;", name)
	}
}

func TestLibraryAddAndNext(t *testing.T) {
	lib := NewLibrary(Preset{Name: "a", Source: "1"}, Preset{Name: "b", Source: "2"})
	lib.Add(Preset{Name: "a", Source: "3"})
	lib.Add(Preset{Name: "c", Source: "4"})

	assert.Equal(t, []string{"a", "b", "c"}, lib.Names())
	src, _ := lib.Get("a")
	assert.Equal(t, "3", src)

	assert.Equal(t, "b", lib.Next("a"))
	assert.Equal(t, "a", lib.Next("c"))
	assert.Equal(t, "a", lib.Next("missing"))
	assert.Equal(t, "", NewLibrary().Next("a"))
	assert.Equal(t, 3, lib.Len())
}
