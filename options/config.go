package options

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/richinsley/shaderpreview/shader"
)

// Config is the optional TOML configuration file. Zero fields leave the
// corresponding option alone.
type Config struct {
	Width      int            `toml:"width"`
	Height     int            `toml:"height"`
	Title      string         `toml:"title"`
	FPS        int            `toml:"fps"`
	FFmpegPath string         `toml:"ffmpeg"`
	ClearColor []float32      `toml:"clear_color"`
	Presets    []PresetConfig `toml:"presets"`

	dir string
}

// PresetConfig adds a preset either inline or from a file relative to the
// config file.
type PresetConfig struct {
	Name   string `toml:"name"`
	Source string `toml:"source"`
	File   string `toml:"file"`
}

// LoadConfig reads a TOML config file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %q: %w", path, err)
	}
	defer fp.Close()

	cfg := &Config{dir: filepath.Dir(path)}
	dec := toml.NewDecoder(bufio.NewReader(fp)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("negative size %dx%d", c.Width, c.Height)
	}
	if c.FPS < 0 {
		return fmt.Errorf("negative fps %d", c.FPS)
	}
	if n := len(c.ClearColor); n != 0 && n != 3 && n != 4 {
		return fmt.Errorf("clear_color needs 3 or 4 components, got %d", n)
	}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset %d has no name", i)
		}
		if (p.Source == "") == (p.File == "") {
			return fmt.Errorf("preset %q needs exactly one of source or file", p.Name)
		}
	}
	return nil
}

// Apply copies config values into o for every option not named in explicit,
// so command-line flags win over the file.
func (c *Config) Apply(o *PreviewOptions, explicit map[string]bool) {
	if c.Width > 0 && !explicit["width"] {
		*o.Width = c.Width
	}
	if c.Height > 0 && !explicit["height"] {
		*o.Height = c.Height
	}
	if c.Title != "" && !explicit["title"] {
		*o.Title = c.Title
	}
	if c.FPS > 0 && !explicit["fps"] {
		*o.FPS = c.FPS
	}
	if c.FFmpegPath != "" && !explicit["ffmpeg"] {
		*o.FFmpegPath = c.FFmpegPath
	}
	if len(c.ClearColor) >= 3 {
		o.ClearColor = [4]float32{c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], 1}
		if len(c.ClearColor) == 4 {
			o.ClearColor[3] = c.ClearColor[3]
		}
	}
}

// AddPresets loads the configured presets into lib, after the built-ins.
func (c *Config) AddPresets(lib *shader.Library) error {
	for _, p := range c.Presets {
		src := p.Source
		if p.File != "" {
			path := p.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(c.dir, path)
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read preset %q: %w", p.Name, err)
			}
			src = string(b)
		}
		lib.Add(shader.Preset{Name: p.Name, Source: src})
	}
	return nil
}
