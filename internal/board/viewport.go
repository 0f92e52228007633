package board

import "sync"

// Viewport is the rectangle a board is mounted into.
type Viewport interface {
	// Size is the current size in pixels.
	Size() (width, height int)
	// OnResize registers fn for size changes. Calling cancel unregisters it;
	// cancel is safe to call more than once.
	OnResize(fn func(width, height int)) (cancel func())
}

// Resizer is a Viewport whose size is pushed by its host, typically from a
// layout callback.
type Resizer struct {
	mu     sync.Mutex
	width  int
	height int
	nextID int
	subs   map[int]func(width, height int)
}

var _ Viewport = (*Resizer)(nil)

func NewResizer(width, height int) *Resizer {
	return &Resizer{width: width, height: height, subs: make(map[int]func(int, int))}
}

func (r *Resizer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Resizer) OnResize(fn func(width, height int)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

// Resize records the new size and notifies subscribers when it changed.
func (r *Resizer) Resize(width, height int) {
	r.mu.Lock()
	if width == r.width && height == r.height {
		r.mu.Unlock()
		return
	}
	r.width, r.height = width, height
	fns := make([]func(int, int), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Subscribers is the number of live OnResize registrations.
func (r *Resizer) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
