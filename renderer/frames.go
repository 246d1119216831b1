package renderer

import "sync"

// FrameHandle identifies a scheduled frame callback. Zero means none.
type FrameHandle uint64

// Scheduler is the host's frame pacing. RequestFrame runs fn once at the
// next display refresh; CancelFrame guarantees a not-yet-run callback never
// runs. Post hands work from any goroutine to the render thread.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
	Post(fn func())
}

type frameRequest struct {
	handle FrameHandle
	fn     func()
}

// FrameQueue is a Scheduler driven by the host loop calling RunFrame once
// per display refresh on the render thread.
type FrameQueue struct {
	mu      sync.Mutex
	last    FrameHandle
	pending []frameRequest
	current []frameRequest
	posted  []func()
	wake    func()
}

// NewFrameQueue returns an empty queue. wake, if set, is called after Post
// so a host blocked waiting for window events can return early.
func NewFrameQueue(wake func()) *FrameQueue {
	return &FrameQueue{wake: wake}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last++
	q.pending = append(q.pending, frameRequest{handle: q.last, fn: fn})
	return q.last
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.current {
		if q.current[i].handle == h {
			q.current[i].fn = nil
			return
		}
	}
}

func (q *FrameQueue) Post(fn func()) {
	q.mu.Lock()
	q.posted = append(q.posted, fn)
	q.mu.Unlock()
	if q.wake != nil {
		q.wake()
	}
}

// Pending returns the number of frame callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Busy reports whether RunFrame has any work queued.
func (q *FrameQueue) Busy() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) > 0 || len(q.posted) > 0
}

// RunFrame runs posted work, then every frame callback requested before the
// call. Callbacks requested while it runs wait for the next frame. It
// returns the number of frame callbacks that ran.
func (q *FrameQueue) RunFrame() int {
	q.mu.Lock()
	posted := q.posted
	q.posted = nil
	q.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	q.mu.Lock()
	q.current, q.pending = q.pending, nil
	q.mu.Unlock()

	ran := 0
	for i := 0; ; i++ {
		q.mu.Lock()
		if i >= len(q.current) {
			q.current = nil
			q.mu.Unlock()
			return ran
		}
		fn := q.current[i].fn
		q.current[i].fn = nil
		q.mu.Unlock()

		if fn != nil {
			fn()
			ran++
		}
	}
}
