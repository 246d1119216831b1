// Package record renders a preview offline at a fixed frame rate and pipes
// the frames to ffmpeg.
package record

import (
	"errors"
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const numBuffers = 4

// FrameSource renders one frame at an explicit time and returns it as
// bottom-up RGBA rows.
type FrameSource interface {
	Capture(elapsed float64) ([]byte, error)
	Size() (int, int)
}

type Options struct {
	OutputFile string
	FPS        int
	Duration   float64
	FFmpegPath string
	// Codec is an ffmpeg video encoder name; libx264 when empty.
	Codec string
}

// Frame is one rendered frame on its way to the encoder.
type Frame struct {
	Pixels []byte
	PTS    int64
}

type encodeFunc func(opts Options, width, height int, in io.Reader) error

// Recorder renders Duration seconds of a FrameSource into OutputFile.
type Recorder struct {
	opts   Options
	encode encodeFunc
}

func New(opts Options) (*Recorder, error) {
	if opts.OutputFile == "" {
		return nil, errors.New("recording needs an output file")
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("invalid duration %g", opts.Duration)
	}
	if opts.Codec == "" {
		opts.Codec = "libx264"
	}
	return &Recorder{opts: opts, encode: runFFmpeg}, nil
}

// TotalFrames is the number of frames Record produces.
func (r *Recorder) TotalFrames() int {
	return int(r.opts.Duration * float64(r.opts.FPS))
}

func inputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
}

func outputArgs(codec string) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		// GL rows are bottom-up; yuv420p needs even dimensions.
		"vf":      "vflip,scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"c:v":     codec,
		"pix_fmt": "yuv420p",
	}
}

func runFFmpeg(opts Options, width, height int, in io.Reader) error {
	cmd := ffmpeg.Input("pipe:", inputArgs(width, height, opts.FPS)).
		Output(opts.OutputFile, outputArgs(opts.Codec)).
		OverWriteOutput().WithInput(in).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(opts.FFmpegPath)
	}
	return cmd.Run()
}

// runEncoder is the consumer. It streams frames into the encoder until the
// channel closes, then reports the encoder's result on done.
func (r *Recorder) runEncoder(width, height int, frames <-chan *Frame, done chan<- error) {
	pipeReader, pipeWriter := io.Pipe()

	errc := make(chan error, 1)
	go func() {
		err := r.encode(r.opts, width, height, pipeReader)
		pipeReader.Close()
		errc <- err
	}()

	for frame := range frames {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to encoder: %v", frame.PTS, err)
			for range frames {
			}
			break
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		done <- fmt.Errorf("encoder failed: %w", err)
		return
	}
	done <- nil
}

// Record is the producer. It renders every frame at its exact timestamp and
// waits for the encoder to finish.
func (r *Recorder) Record(src FrameSource) error {
	width, height := src.Size()
	frameSize := width * height * 4
	total := r.TotalFrames()
	timeStep := 1.0 / float64(r.opts.FPS)

	log.Printf("Recording %d frames at %dx%d to %s", total, width, height, r.opts.OutputFile)
	frames := make(chan *Frame, numBuffers)
	encoderDone := make(chan error, 1)
	go r.runEncoder(width, height, frames, encoderDone)

	var captureErr error
	for i := 0; i < total; i++ {
		pixels, err := src.Capture(float64(i) * timeStep)
		if err == nil && len(pixels) != frameSize {
			err = fmt.Errorf("got %d bytes, want %d", len(pixels), frameSize)
		}
		if err != nil {
			captureErr = fmt.Errorf("failed to capture frame %d: %w", i, err)
			break
		}
		frames <- &Frame{Pixels: pixels, PTS: int64(i)}
		if (i+1)%r.opts.FPS == 0 {
			log.Printf("Recorded %d/%d frames", i+1, total)
		}
	}
	close(frames)

	encErr := <-encoderDone
	if captureErr != nil {
		return captureErr
	}
	return encErr
}
