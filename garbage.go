package gpuobj

import (
	"runtime"
	"sync"
)

// object is the device-side identity of a resource. It is kept apart from the
// resource value so that a runtime cleanup can hand it to the context after
// the resource itself is unreachable.
type object struct {
	kind     resourceKind
	handle   uint32
	bytes    int
	released bool
	cleanup  runtime.Cleanup
}

// garbage queues objects whose resources were garbage collected without
// Release. Cleanups run on an arbitrary goroutine and must not touch the
// device, so deletion waits for the context's thread.
type garbage struct {
	mu     sync.Mutex
	closed bool
	items  []*object
}

func (g *garbage) add(obj *object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.items = append(g.items, obj)
}

func (g *garbage) drain() []*object {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := g.items
	g.items = nil
	return items
}

// close drops pending objects; their device memory goes with the context.
func (g *garbage) close() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.items)
	g.closed = true
	g.items = nil
	return n
}

// track registers a new device object owned by resource r.
func track[T any](c *Context, r *T, kind resourceKind, handle uint32) *object {
	obj := &object{kind: kind, handle: handle}
	g := c.garbage
	obj.cleanup = runtime.AddCleanup(r, func(o *object) { g.add(o) }, obj)
	c.stats.created(kind)
	c.log.Debug("gpuobj: created", "kind", kind, "handle", handle)
	return obj
}
