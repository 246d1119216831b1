package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/shaderpreview/gldevice"
	"github.com/richinsley/shaderpreview/glfwcontext"
	options "github.com/richinsley/shaderpreview/options"
	"github.com/richinsley/shaderpreview/record"
	"github.com/richinsley/shaderpreview/renderer"
	"github.com/richinsley/shaderpreview/report"
	"github.com/richinsley/shaderpreview/shader"
	"github.com/richinsley/shaderpreview/source"
	"github.com/richinsley/shaderpreview/translator"
	"github.com/richinsley/shaderpreview/validate"
)

// idleWait bounds how long the host blocks for window events while nothing
// is animating.
const idleWait = 0.5

func init() {
	runtime.LockOSThread()
}

// initialSource returns the first shader text to show and, when it came
// from the library, the preset name.
func initialSource(opts *options.PreviewOptions, lib *shader.Library) (string, string, error) {
	switch {
	case *opts.File == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read shader from stdin: %w", err)
		}
		return string(b), "", nil
	case *opts.File != "":
		text, err := source.ReadFile(*opts.File)
		return text, "", err
	case *opts.Preset != "":
		text, err := lib.Get(*opts.Preset)
		return text, *opts.Preset, err
	}
	name := lib.Next("")
	text, err := lib.Get(name)
	return text, name, err
}

func runPreview(opts *options.PreviewOptions, lib *shader.Library, text, preset string, printer *report.Printer) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden.
	win, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		return fmt.Errorf("failed to initialize glfw context: %w", err)
	}
	dev, err := gldevice.New(win)
	if err != nil {
		win.Shutdown()
		return err
	}
	log.Printf("OpenGL %s", dev.Version())

	tr, err := translator.New(context.Background())
	if err != nil {
		dev.Release()
		return err
	}

	width, height := win.GetFramebufferSize()
	queue := renderer.NewFrameQueue(glfwcontext.Wake)
	preview, err := renderer.NewPreview(dev, queue, renderer.Options{
		Width:      width,
		Height:     height,
		ClearColor: &opts.ClearColor,
		Clock:      win.Time,
		Builder:    &renderer.Builder{Translator: tr},
		OnChange: func(st renderer.Status) {
			printer.Status(st)
			if *opts.Print && st.Result.Valid {
				if err := printer.Code(st.Result.CleanedCode); err != nil {
					log.Printf("Failed to highlight shader: %v", err)
				}
			}
		},
	})
	if err != nil {
		dev.Release()
		return err
	}
	defer preview.Teardown()

	if _, err := preview.SetSource(text); err != nil && *opts.Record {
		return err
	}

	if *opts.Record {
		return recordPreview(opts, preview)
	}
	return interactive(opts, lib, preset, win, queue, preview, printer)
}

func recordPreview(opts *options.PreviewOptions, preview *renderer.Preview) error {
	rec, err := record.New(record.Options{
		OutputFile: *opts.OutputFile,
		FPS:        *opts.FPS,
		Duration:   *opts.Duration,
		FFmpegPath: *opts.FFmpegPath,
	})
	if err != nil {
		return err
	}
	if err := rec.Record(preview); err != nil {
		return fmt.Errorf("offscreen rendering failed: %w", err)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func interactive(opts *options.PreviewOptions, lib *shader.Library, preset string, win *glfwcontext.Context, queue *renderer.FrameQueue, preview *renderer.Preview, printer *report.Printer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	win.RegisterKeyCallback(glfw.KeySpace, preview.ToggleAnimation)
	win.RegisterKeyCallback(glfw.KeyR, preview.ResetTime)
	win.RegisterKeyCallback(glfw.KeyN, func() {
		preset = lib.Next(preset)
		log.Printf("Loading preset %q", preset)
		win.SetTitle(fmt.Sprintf("%s - %s", *opts.Title, preset))
		if _, err := preview.LoadPreset(lib, preset); err != nil {
			log.Printf("Preset %q failed: %v", preset, err)
		}
	})
	win.RegisterKeyCallback(glfw.KeyG, func() {
		log.Println("Requesting a generated shader...")
		preview.Request(ctx, source.RandomPreset(lib, source.DefaultGeneratorDelay))
	})

	if *opts.Watch && *opts.File != "" && *opts.File != "-" {
		w, err := source.Watch(*opts.File, source.DefaultLag, func(text string, err error) {
			queue.Post(func() {
				if err != nil {
					printer.Error(err)
					return
				}
				log.Printf("Reloading %s", *opts.File)
				preview.SetSource(text)
			})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	log.Println("Starting interactive render loop...")
	for !win.ShouldClose() {
		queue.RunFrame()
		if preview.Flush() {
			win.SwapBuffers()
		}
		if queue.Busy() {
			win.PollEvents()
		} else {
			win.WaitEvents(idleWait)
		}
	}
	return nil
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Fragment shader previewer")
		fmt.Println("Keys: Space play/pause, R reset time, N next preset, G generate, Esc quit")
		flag.PrintDefaults()
		return
	}

	lib := shader.DefaultLibrary()
	if *opts.ConfigFile != "" {
		cfg, err := options.LoadConfig(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg.Apply(opts, options.Explicit(flag.CommandLine))
		if err := cfg.AddPresets(lib); err != nil {
			log.Fatalf("Error loading presets: %v", err)
		}
	}

	if *opts.List {
		for _, name := range lib.Sorted() {
			fmt.Println(name)
		}
		return
	}

	printer := report.New(os.Stdout)
	text, preset, err := initialSource(opts, lib)
	if err != nil {
		log.Fatalf("Error loading shader: %v", err)
	}

	if *opts.Check {
		res := validate.Validate(text)
		printer.Result(text, res)
		if *opts.Print {
			if err := printer.Code(res.CleanedCode); err != nil {
				log.Printf("Failed to highlight shader: %v", err)
			}
		}
		if !res.Valid {
			os.Exit(1)
		}
		return
	}

	if err := runPreview(opts, lib, text, preset, printer); err != nil {
		printer.Error(err)
		if errors.Is(err, renderer.ErrContextUnavailable) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
