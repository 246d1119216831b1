package shader

import (
	"fmt"
	"sort"
)

const rainbowWave = `
precision mediump float;

uniform float time;
uniform vec2 resolution;

void main() {
  vec2 uv = gl_FragCoord.xy / resolution.xy;
  vec3 color = vec3(
    sin(uv.x * 6.0 + time) * 0.5 + 0.5,
    sin(uv.y * 6.0 + time * 1.2) * 0.5 + 0.5,
    sin((uv.x + uv.y) * 6.0 + time * 0.8) * 0.5 + 0.5
  );
  gl_FragColor = vec4(color, 1.0);
}`

const plasma = `
precision mediump float;

uniform float time;
uniform vec2 resolution;

void main() {
  vec2 uv = gl_FragCoord.xy / resolution.xy;
  float v = sin(uv.x * 10.0 + time);
  v += sin(uv.y * 10.0 + time);
  v += sin((uv.x + uv.y) * 10.0 + time);
  v += sin(sqrt(uv.x * uv.x + uv.y * uv.y) * 10.0 + time);
  vec3 color = vec3(v * 0.5 + 0.5, v * 0.3 + 0.7, v * 0.8 + 0.2);
  gl_FragColor = vec4(color, 1.0);
}`

const mandelbrot = `
precision mediump float;

uniform vec2 resolution;

void main() {
  vec2 uv = (gl_FragCoord.xy - 0.5 * resolution.xy) / resolution.y;
  vec2 z = vec2(0.0);
  vec2 c = uv * 2.0;

  int iterations = 0;
  for (int i = 0; i < 100; i++) {
    if (dot(z, z) > 4.0) break;
    z = vec2(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + c;
    iterations++;
  }

  float color = float(iterations) / 100.0;
  gl_FragColor = vec4(color, color * 0.5, 1.0 - color, 1.0);
}`

// Preset is a named, ready-to-use fragment shader.
type Preset struct {
	Name   string
	Source string
}

// Library is an ordered set of presets. Entries are expected to be valid but
// are still validated like any other input before rendering.
type Library struct {
	order   []string
	sources map[string]string
}

// DefaultLibrary returns the built-in presets.
func DefaultLibrary() *Library {
	return NewLibrary(
		Preset{Name: "Rainbow Wave", Source: rainbowWave},
		Preset{Name: "Plasma", Source: plasma},
		Preset{Name: "Mandelbrot", Source: mandelbrot},
	)
}

func NewLibrary(presets ...Preset) *Library {
	l := &Library{sources: make(map[string]string)}
	for _, p := range presets {
		l.Add(p)
	}
	return l
}

// Add inserts a preset, replacing the source of an existing entry with the
// same name while keeping its position.
func (l *Library) Add(p Preset) {
	if _, ok := l.sources[p.Name]; !ok {
		l.order = append(l.order, p.Name)
	}
	l.sources[p.Name] = p.Source
}

// Get returns the source of the named preset.
func (l *Library) Get(name string) (string, error) {
	src, ok := l.sources[name]
	if !ok {
		return "", fmt.Errorf("no preset named %q", name)
	}
	return src, nil
}

// Names returns preset names in insertion order.
func (l *Library) Names() []string {
	return append([]string(nil), l.order...)
}

// Next returns the preset following name, wrapping around. An unknown name
// yields the first preset.
func (l *Library) Next(name string) string {
	if len(l.order) == 0 {
		return ""
	}
	for i, n := range l.order {
		if n == name {
			return l.order[(i+1)%len(l.order)]
		}
	}
	return l.order[0]
}

// Sorted returns preset names alphabetically, for listings.
func (l *Library) Sorted() []string {
	names := l.Names()
	sort.Strings(names)
	return names
}

func (l *Library) Len() int {
	return len(l.order)
}
