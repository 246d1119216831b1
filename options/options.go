package options

import "flag"

type PreviewOptions struct {
	File       *string
	Watch      *bool
	Preset     *string
	Check      *bool
	Print      *bool
	List       *bool
	Help       *bool
	Record     *bool
	OutputFile *string
	Duration   *float64
	FPS        *int
	Width      *int
	Height     *int
	Title      *string
	ConfigFile *string
	FFmpegPath *string
	// Not a flag; set from the config file.
	ClearColor [4]float32
}

// Register binds every option to a flag in fs.
func Register(fs *flag.FlagSet) *PreviewOptions {
	return &PreviewOptions{
		File:       fs.String("file", "", "Fragment shader file to preview"),
		Watch:      fs.Bool("watch", false, "Reload the shader file when it changes"),
		Preset:     fs.String("preset", "", "Name of a preset shader to start with"),
		Check:      fs.Bool("check", false, "Validate the shader, print the report and exit"),
		Print:      fs.Bool("print", false, "Print the cleaned, highlighted shader code"),
		List:       fs.Bool("list", false, "List the available presets and exit"),
		Help:       fs.Bool("help", false, "Show help message"),
		Record:     fs.Bool("record", false, "Render offscreen to a video file instead of a window"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Width:      fs.Int("width", 400, "Width of the preview"),
		Height:     fs.Int("height", 400, "Height of the preview"),
		Title:      fs.String("title", "shaderpreview", "Window title"),
		ConfigFile: fs.String("config", "", "TOML configuration file"),
		FFmpegPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// Explicit returns the names of the flags that were set on the command line.
func Explicit(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
