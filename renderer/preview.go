package renderer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/shaderpreview/graphics"
	"github.com/richinsley/shaderpreview/shader"
	"github.com/richinsley/shaderpreview/validate"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

// Options configures a Preview. Zero values select defaults.
type Options struct {
	Width      int
	Height     int
	ClearColor *[4]float32
	// Clock defaults to wall time in seconds.
	Clock   Clock
	Builder *Builder
	// OnChange, if set, is called on the render thread after every accepted
	// revision and every generator failure.
	OnChange func(Status)
}

// Status is a snapshot of what the preview last accepted.
type Status struct {
	Revision   uint64
	Result     validate.Result
	Err        error
	Animating  bool
	HasProgram bool
}

// Preview owns one graphics context and the program drawn into it. All
// methods must be called on the render thread; Request is the only way other
// goroutines feed it shader text.
type Preview struct {
	ctx      graphics.Context
	sched    Scheduler
	builder  *Builder
	loop     *Loop
	program  *Program
	onChange func(Status)

	revision uint64 // last revision handed out
	accepted uint64 // newest revision applied
	result   validate.Result
	err      error

	lastDrawn uint64
	torn      bool
}

// NewPreview takes ownership of ctx. It fails with ErrContextUnavailable
// when ctx is nil.
func NewPreview(ctx graphics.Context, sched Scheduler, opts Options) (*Preview, error) {
	if ctx == nil {
		return nil, ErrContextUnavailable
	}
	if sched == nil {
		return nil, errors.New("preview requires a frame scheduler")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Clock == nil {
		epoch := time.Now()
		opts.Clock = func() float64 { return time.Since(epoch).Seconds() }
	}
	if opts.Builder == nil {
		opts.Builder = &Builder{}
	}

	p := &Preview{
		ctx:      ctx,
		sched:    sched,
		builder:  opts.Builder,
		loop:     NewLoop(ctx, sched, opts.Clock, opts.Width, opts.Height),
		onChange: opts.OnChange,
	}
	if c := opts.ClearColor; c != nil {
		p.loop.SetClearColor(c[0], c[1], c[2], c[3])
	}
	return p, nil
}

// SetSource validates text and, when it is valid, replaces the current
// program and keeps the loop animating. Invalid text or a failed build
// stops the loop and releases the current program.
func (p *Preview) SetSource(text string) (validate.Result, error) {
	if p.torn {
		return validate.Result{}, ErrTornDown
	}
	p.revision++
	return p.apply(p.revision, text)
}

// LoadPreset renders a preset through the same path as any other text.
func (p *Preview) LoadPreset(lib *shader.Library, name string) (validate.Result, error) {
	src, err := lib.Get(name)
	if err != nil {
		return validate.Result{}, err
	}
	return p.SetSource(src)
}

// Request runs fetch on its own goroutine and applies the returned text on
// the render thread, unless newer text was accepted in the meantime. It
// returns the revision reserved for the result.
func (p *Preview) Request(ctx context.Context, fetch func(context.Context) (string, error)) uint64 {
	p.revision++
	rev := p.revision
	go func() {
		text, err := fetch(ctx)
		p.sched.Post(func() {
			p.deliver(rev, text, err)
		})
	}()
	return rev
}

func (p *Preview) deliver(rev uint64, text string, err error) {
	if p.torn || rev < p.accepted {
		return
	}
	if err != nil {
		p.err = fmt.Errorf("shader generation failed: %w", err)
		log.Printf("Shader generation for revision %d failed: %v", rev, err)
		p.notify()
		return
	}
	p.apply(rev, text)
}

func (p *Preview) apply(rev uint64, text string) (validate.Result, error) {
	if rev < p.accepted {
		return validate.Result{}, ErrStaleRevision
	}
	p.accepted = rev

	res := validate.Validate(text)
	p.result = res
	defer p.notify()

	if !res.Valid {
		p.loop.Stop()
		p.replaceProgram(nil)
		p.err = &ValidationError{Errors: res.Errors}
		return res, p.err
	}

	p.replaceProgram(nil)
	prog, err := p.builder.Build(p.ctx, res)
	if err != nil {
		p.loop.Stop()
		p.err = err
		log.Printf("Failed to build shader revision %d: %v", rev, err)
		return res, err
	}

	p.replaceProgram(prog)
	p.err = nil
	p.loop.Start()
	return res, nil
}

func (p *Preview) replaceProgram(prog *Program) {
	if p.program != nil && p.program != prog {
		p.program.Release()
	}
	p.program = prog
	p.loop.SetProgram(prog)
}

func (p *Preview) notify() {
	if p.onChange != nil {
		p.onChange(p.Status())
	}
}

// ToggleAnimation flips between Animating and Idle.
func (p *Preview) ToggleAnimation() {
	if p.torn {
		return
	}
	if p.loop.Animating() {
		p.loop.Stop()
	} else {
		p.loop.Start()
	}
}

// ResetTime restarts the time uniform from zero. A paused preview renders
// once so the visible frame reflects the reset.
func (p *Preview) ResetTime() {
	if p.torn {
		return
	}
	p.loop.ResetTime()
	if !p.loop.Animating() {
		p.loop.RenderOnce()
	}
}

// Capture renders the current program at an explicit time and reads the
// frame back as bottom-up RGBA rows.
func (p *Preview) Capture(elapsed float64) ([]byte, error) {
	if p.torn {
		return nil, ErrTornDown
	}
	if !p.loop.RenderAt(elapsed) {
		return nil, errors.New("no shader program to capture")
	}
	w, h := p.loop.Size()
	return p.ctx.ReadPixels(w, h)
}

// Flush reports whether anything was drawn since the previous call. Hosts
// present the surface only then, so a paused preview keeps its last frame.
func (p *Preview) Flush() bool {
	d := p.loop.Drawn()
	changed := d != p.lastDrawn
	p.lastDrawn = d
	return changed
}

// Teardown cancels any scheduled frame and releases the program and the
// context. Later calls are no-ops.
func (p *Preview) Teardown() {
	if p.torn {
		return
	}
	p.loop.Stop()
	p.replaceProgram(nil)
	p.ctx.Release()
	p.torn = true
	log.Println("Preview torn down")
}

func (p *Preview) Status() Status {
	return Status{
		Revision:   p.accepted,
		Result:     p.result,
		Err:        p.err,
		Animating:  p.loop.Animating(),
		HasProgram: p.program != nil,
	}
}

// State returns the render loop state.
func (p *Preview) State() RenderState {
	return p.loop.State()
}

func (p *Preview) Size() (int, int) {
	return p.loop.Size()
}
