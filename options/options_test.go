package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/shaderpreview/shader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegisterDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, 400, *o.Width)
	assert.Equal(t, 400, *o.Height)
	assert.Equal(t, 60, *o.FPS)
	assert.Equal(t, "output.mp4", *o.OutputFile)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, o.ClearColor)
	assert.Empty(t, Explicit(fs))
}

func TestConfigAppliesUnlessFlagSet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preview.toml", `
width = 800
height = 600
fps = 30
ffmpeg = "/opt/ffmpeg"
clear_color = [0.1, 0.2, 0.3]
`)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Register(fs)
	require.NoError(t, fs.Parse([]string{"-width", "1024"}))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Apply(o, Explicit(fs))

	assert.Equal(t, 1024, *o.Width, "flag wins")
	assert.Equal(t, 600, *o.Height)
	assert.Equal(t, 30, *o.FPS)
	assert.Equal(t, "/opt/ffmpeg", *o.FFmpegPath)
	assert.Equal(t, "shaderpreview", *o.Title)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, o.ClearColor)
}

func TestConfigPresets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stripes.frag", "void main() { gl_FragColor = vec4(1.0); }")
	path := writeFile(t, dir, "preview.toml", `
[[presets]]
name = "Inline"
source = "void main() {}"

[[presets]]
name = "Stripes"
file = "stripes.frag"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	lib := shader.DefaultLibrary()
	require.NoError(t, cfg.AddPresets(lib))
	assert.Equal(t, []string{"Rainbow Wave", "Plasma", "Mandelbrot", "Inline", "Stripes"}, lib.Names())

	src, err := lib.Get("Stripes")
	require.NoError(t, err)
	assert.Contains(t, src, "gl_FragColor")
}

func TestConfigMissingPresetFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preview.toml", "[[presets]]\nname = \"Gone\"\nfile = \"gone.frag\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	err = cfg.AddPresets(shader.NewLibrary())
	assert.ErrorContains(t, err, `failed to read preset "Gone"`)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "failed to open config")
	assert.ErrorIs(t, err, os.ErrNotExist)

	cases := map[string]string{
		"unknown key":  "colour = 1\n",
		"bad syntax":   "width = \n",
		"bad color":    "clear_color = [1.0]\n",
		"bad preset":   "[[presets]]\nname = \"x\"\n",
		"both sources": "[[presets]]\nname = \"x\"\nsource = \"a\"\nfile = \"b\"\n",
		"negative fps": "fps = -1\n",
	}
	for name, content := range cases {
		path := writeFile(t, dir, "bad.toml", content)
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}
