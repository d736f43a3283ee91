package frame

import "sync"

// Cell is a single-slot latest-value handoff between the snapshot producer
// and the render loop. New frames overwrite unread ones; there is no queue,
// so memory stays bounded and a slow consumer skips frames instead of
// building a backlog.
type Cell struct {
	mu     sync.Mutex
	latest *Frame
	fresh  bool
}

// Publish stores f as the latest frame, replacing any unread one.
func (c *Cell) Publish(f *Frame) {
	if f == nil {
		return
	}
	c.mu.Lock()
	c.latest = f
	c.fresh = true
	c.mu.Unlock()
}

// Latest returns the most recently published frame without blocking. The
// second result reports whether the frame is new since the previous call;
// a consumer that sees false may safely reuse its prior copy.
func (c *Cell) Latest() (*Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, fresh := c.latest, c.fresh
	c.fresh = false
	return f, fresh
}

// Peek returns the latest frame without consuming freshness.
func (c *Cell) Peek() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}
