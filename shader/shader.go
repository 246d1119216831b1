package shader

// PositionAttribute is the vertex input every fixed vertex stage reads the
// full-screen quad from. Stages that can declare it pin it to PositionLocation.
const (
	PositionAttribute = "a_position"
	PositionLocation  = 0
)

// QuadVertices is the full-screen quad drawn as a four-vertex triangle strip.
var QuadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// ───────────────────────────────── ESSL 3.00 ──────────────────────────────────

const vertexShaderSourceES3 = `#version 300 es
layout(location = 0) in vec2 a_position;
out vec2 v_texCoord;
void main() {
    gl_Position = vec4(a_position, 0.0, 1.0);
    v_texCoord = a_position * 0.5 + 0.5;
}
`

// ──────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceCore = `#version 330 core
layout(location = 0) in vec2 a_position;
out vec2 v_texCoord;
void main() {
    gl_Position = vec4(a_position, 0.0, 1.0);
    v_texCoord = a_position * 0.5 + 0.5;
}
`

// ──────────────────────────────── ESSL 1.00 ───────────────────────────────────

const vertexShaderSourceLegacy = `attribute vec2 a_position;
varying vec2 v_texCoord;
void main() {
    gl_Position = vec4(a_position, 0.0, 1.0);
    v_texCoord = a_position * 0.5 + 0.5;
}
`

// VertexSource returns the fixed vertex stage matching the language version
// of a fragment stage. A zero version means the fragment declared none.
func VertexSource(version int, profile string) string {
	switch {
	case version >= 300 && profile == "es":
		return vertexShaderSourceES3
	case version >= 300:
		return vertexShaderSourceCore
	}
	return vertexShaderSourceLegacy
}
