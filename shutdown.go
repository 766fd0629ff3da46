package scanq

import "sync/atomic"

// ShutdownController carries a process-wide, monotonic shutdown flag.
// Request is safe to call from any goroutine, including signal-delivery
// goroutines: it takes no locks, allocates nothing, and never blocks. The
// flag only ever transitions false to true.
//
// The controller itself does not wake blocked queue operations; an ordinary
// goroutine watching Done performs the broadcast (see Scanner.Run). This
// keeps restricted contexts restricted.
type ShutdownController struct {
	requested atomic.Bool
	done      chan struct{}
}

// NewShutdownController returns a controller with shutdown not requested.
func NewShutdownController() *ShutdownController {
	return &ShutdownController{done: make(chan struct{})}
}

// Request sets the shutdown flag. Repeated calls are no-ops.
func (c *ShutdownController) Request() {
	if c.requested.CompareAndSwap(false, true) {
		close(c.done)
	}
}

// Requested reports whether shutdown has been requested. Non-blocking.
func (c *ShutdownController) Requested() bool { return c.requested.Load() }

// Done returns a channel closed by the first Request.
func (c *ShutdownController) Done() <-chan struct{} { return c.done }
