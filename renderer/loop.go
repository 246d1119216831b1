package renderer

import "github.com/richinsley/shaderpreview/graphics"

// Clock returns the current time in seconds.
type Clock func() float64

// RenderState is the animation state of a Loop. Frame is non-zero exactly
// while a frame is scheduled.
type RenderState struct {
	Animating bool
	StartTime float64
	Frame     FrameHandle
}

// Loop draws the current program on a full-screen quad. It is Idle until
// Start and Animating until Stop. While Animating with a live program exactly
// one frame is scheduled at a time; without one the loop stays Animating but
// schedules nothing until SetProgram supplies a live program.
type Loop struct {
	ctx    graphics.Context
	sched  Scheduler
	clock  Clock
	width  int
	height int
	clear  [4]float32

	program *Program
	state   RenderState
	drawn   uint64
}

func NewLoop(ctx graphics.Context, sched Scheduler, clock Clock, width, height int) *Loop {
	l := &Loop{
		ctx:    ctx,
		sched:  sched,
		clock:  clock,
		width:  width,
		height: height,
		clear:  [4]float32{0, 0, 0, 1},
	}
	l.state.StartTime = clock()
	return l
}

func (l *Loop) State() RenderState {
	return l.state
}

func (l *Loop) Animating() bool {
	return l.state.Animating
}

// Drawn returns the number of frame bodies that have drawn so far.
func (l *Loop) Drawn() uint64 {
	return l.drawn
}

func (l *Loop) SetClearColor(r, g, b, a float32) {
	l.clear = [4]float32{r, g, b, a}
}

func (l *Loop) SetSize(width, height int) {
	l.width, l.height = width, height
}

func (l *Loop) Size() (int, int) {
	return l.width, l.height
}

// SetProgram makes p the program drawn by subsequent frames. The loop does
// not own p; the caller releases it.
func (l *Loop) SetProgram(p *Program) {
	l.program = p
	if p != nil && l.ctx != nil {
		l.ctx.UseProgram(p.ID)
		l.ctx.BindQuad(p.Position)
	}
	if l.state.Animating && l.state.Frame == 0 && !p.Released() {
		l.schedule()
	}
}

func (l *Loop) Program() *Program {
	return l.program
}

// Start moves the loop from Idle to Animating. It is a no-op when already
// Animating.
func (l *Loop) Start() {
	if l.state.Animating {
		return
	}
	l.state.Animating = true
	if !l.program.Released() {
		l.schedule()
	}
}

// Stop moves the loop to Idle and cancels the scheduled frame, if any.
func (l *Loop) Stop() {
	l.state.Animating = false
	if l.state.Frame != 0 {
		l.sched.CancelFrame(l.state.Frame)
		l.state.Frame = 0
	}
}

// ResetTime makes the current time the origin of the time uniform.
func (l *Loop) ResetTime() {
	l.state.StartTime = l.clock()
}

// RenderOnce draws a single frame without scheduling another one.
func (l *Loop) RenderOnce() bool {
	return l.draw(l.clock() - l.state.StartTime)
}

// RenderAt draws a single frame with an explicit elapsed time in seconds.
func (l *Loop) RenderAt(elapsed float64) bool {
	return l.draw(elapsed)
}

func (l *Loop) schedule() {
	l.state.Frame = l.sched.RequestFrame(l.frame)
}

func (l *Loop) frame() {
	l.state.Frame = 0
	if !l.state.Animating {
		return
	}
	if l.draw(l.clock() - l.state.StartTime) {
		l.schedule()
	}
}

// draw is the per-frame body. It does nothing when there is no context or
// live program.
func (l *Loop) draw(elapsed float64) bool {
	p := l.program
	if l.ctx == nil || p.Released() {
		return false
	}

	l.ctx.Viewport(l.width, l.height)
	l.ctx.ClearColor(l.clear[0], l.clear[1], l.clear[2], l.clear[3])
	l.ctx.Clear()
	l.ctx.UseProgram(p.ID)

	if loc, ok := p.Uniforms.Location(UniformResolution); ok {
		l.ctx.Uniform2f(loc, float32(l.width), float32(l.height))
	}
	if loc, ok := p.Uniforms.Location(UniformTime); ok {
		l.ctx.Uniform1f(loc, float32(elapsed))
	}

	l.ctx.DrawArrays(graphics.TriangleStrip, 0, 4)
	l.drawn++
	return true
}
