package gpuobj

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpuobj/driver"
)

// generations hands out context generation numbers. A WeakContext only
// upgrades to the context carrying the generation it was made from.
var generations atomic.Uint64

// Context is a live connection to a graphics device.
//
// The Context is the only value that issues object creation and deletion
// calls; resources created against it route those calls through it. A
// Context must be current on the calling OS thread before any resource
// operation. Native backends require the goroutine to be locked to its
// thread with runtime.LockOSThread.
//
// A Context holds no collection of its resources. Destroy it explicitly:
// resources released afterwards skip their delete calls.
type Context struct {
	gl       driver.Functions
	platform driver.Platform
	info     gpucontext.AdapterInfo
	backend  string
	label    string
	debug    bool
	log      *slog.Logger

	generation uint64
	alive      atomic.Bool
	// inactive is set while the last MakeCurrent failed.
	inactive atomic.Bool
	stats      stats
	garbage    *garbage
}

// NewContext opens a device and makes it current on the calling thread.
//
// Without options the best available registered backend is used. Errors
// wrap ErrContextUnavailable.
func NewContext(opts ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := resolveLogger(o.logger)

	dev, name := o.device, o.backend
	if dev == nil {
		dopts := driver.Options{
			Width:  o.width,
			Height: o.height,
			Debug:  o.debug,
			Label:  o.label,
			Logger: log,
		}
		var err error
		if name != "" {
			dev, err = driver.OpenByName(name, dopts)
		} else {
			dev, name, err = driver.Open(dopts)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContextUnavailable, err)
		}
	}
	if name == "" {
		name = "custom"
	}

	gen := generations.Add(1)
	c := &Context{
		gl:         dev.Functions,
		platform:   dev.Platform,
		info:       dev.Info,
		backend:    name,
		label:      o.label,
		debug:      o.debug,
		log:        contextLogger(log, o.label, gen),
		generation: gen,
		garbage:    &garbage{},
	}
	c.alive.Store(true)

	if err := c.MakeCurrent(); err != nil {
		c.alive.Store(false)
		c.platform.Destroy()
		return nil, err
	}
	c.log.Info("gpuobj: context created",
		"backend", name,
		"adapter", c.info.Name,
		"generation", c.generation)
	return c, nil
}

// MakeCurrent activates the context for the calling thread and deletes any
// objects queued by the garbage collector.
func (c *Context) MakeCurrent() error {
	if !c.alive.Load() {
		return fmt.Errorf("%w: context destroyed", ErrContextUnavailable)
	}
	if err := c.platform.MakeCurrent(); err != nil {
		c.inactive.Store(true)
		c.log.Warn("gpuobj: activation failed", "err", err)
		return fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}
	c.inactive.Store(false)
	c.Collect()
	return nil
}

// Weak returns a non-owning reference to the context.
func (c *Context) Weak() WeakContext {
	return newWeakContext(c)
}

// IsAlive reports whether Destroy has not been called yet.
func (c *Context) IsAlive() bool {
	return c.alive.Load()
}

// Destroy releases the device connection. Outstanding weak references stop
// upgrading and later resource releases issue no delete calls.
// Destroy is idempotent.
func (c *Context) Destroy() {
	if !c.alive.Load() {
		return
	}
	c.Collect()
	c.alive.Store(false)
	if dropped := c.garbage.close(); dropped > 0 {
		c.log.Warn("gpuobj: dropped queued objects at destroy", "count", dropped)
	}
	c.platform.Destroy()
	c.log.Info("gpuobj: context destroyed", "stats", c.Stats().String())
}

// Collect deletes the objects of resources that were garbage collected
// without Release. It must run on the context's thread; MakeCurrent calls it.
func (c *Context) Collect() {
	if !c.alive.Load() {
		return
	}
	for _, obj := range c.garbage.drain() {
		if obj.released {
			continue
		}
		obj.released = true
		c.log.Warn("gpuobj: deleting unreleased object", "kind", obj.kind, "handle", obj.handle)
		c.deleteObject(obj)
		c.stats.collected.Add(1)
	}
}

// release deletes obj if the context is still alive. Calling it twice is a
// no-op.
func (c *Context) release(obj *object) {
	if obj == nil || obj.released {
		return
	}
	if !c.alive.Load() {
		releaseDetached(c.log, &c.stats, obj)
		return
	}
	obj.released = true
	obj.cleanup.Stop()
	c.deleteObject(obj)
}

// releaseDetached retires obj without a device call.
func releaseDetached(log *slog.Logger, s *stats, obj *object) {
	obj.released = true
	obj.cleanup.Stop()
	s.removed(obj.kind, obj.bytes)
	s.skipped.Add(1)
	log.Debug("gpuobj: delete skipped, context destroyed", "kind", obj.kind, "handle", obj.handle)
}

func (c *Context) deleteObject(obj *object) {
	switch obj.kind {
	case kindBuffer:
		c.gl.DeleteBuffer(driver.Buffer(obj.handle))
	case kindTexture:
		c.gl.DeleteTexture(driver.Texture(obj.handle))
	case kindRenderbuffer:
		c.gl.DeleteRenderbuffer(driver.Renderbuffer(obj.handle))
	case kindVertexArray:
		c.gl.DeleteVertexArray(driver.VertexArray(obj.handle))
	case kindShader:
		c.gl.DeleteShader(driver.Shader(obj.handle))
	case kindProgram:
		c.gl.DeleteProgram(driver.Program(obj.handle))
	case kindFramebuffer:
		c.gl.DeleteFramebuffer(driver.Framebuffer(obj.handle))
	}
	c.stats.removed(obj.kind, obj.bytes)
	c.stats.deleted.Add(1)
	c.log.Debug("gpuobj: deleted", "kind", obj.kind, "handle", obj.handle)
}

// resize records a new device memory footprint for obj.
func (c *Context) resize(obj *object, bytes int) {
	c.stats.resized(obj.kind, obj.bytes, bytes)
	obj.bytes = bytes
}

// device returns the entry points for an operation on a resource of kind.
// Using a resource after its context is destroyed is a programming error.
// In debug mode so is using one while the last MakeCurrent failed.
func (c *Context) device(kind resourceKind) driver.Functions {
	if !c.alive.Load() {
		panic("gpuobj: " + kind.String() + " used after its context was destroyed")
	}
	if c.debug && c.inactive.Load() {
		panic("gpuobj: " + kind.String() + " used while its context is not current")
	}
	return c.gl
}

// create returns the entry points for creating a resource of kind. No
// resource may be created until a failed MakeCurrent is followed by a
// successful one.
func (c *Context) create(kind resourceKind) driver.Functions {
	if c.alive.Load() && c.inactive.Load() {
		panic("gpuobj: cannot create " + kind.String() + ": context activation failed")
	}
	return c.device(kind)
}

// check panics on a pending device error when the context is in debug mode.
func (c *Context) check(op string) {
	if !c.debug {
		return
	}
	if err := c.CheckError(); err != nil {
		panic(fmt.Sprintf("gpuobj: %s: %v", op, err))
	}
}

// CheckError returns the first pending device error, clearing every
// pending flag, or nil if none is set.
func (c *Context) CheckError() error {
	if !c.alive.Load() {
		return fmt.Errorf("%w: context destroyed", ErrContextUnavailable)
	}
	var first driver.Enum
	// Drivers may hold several flags; bound the loop in case one never clears.
	for range 16 {
		code := c.gl.GetError()
		if code == driver.NoError {
			break
		}
		if first == driver.NoError {
			first = code
		}
	}
	if first == driver.NoError {
		return nil
	}
	return &DeviceError{Code: first}
}

// ProcAddress returns the address of a device entry point, or nil.
func (c *Context) ProcAddress(name string) unsafe.Pointer {
	return c.platform.GetProcAddress(name)
}

// SwapBuffers presents the default framebuffer.
func (c *Context) SwapBuffers() error {
	if !c.alive.Load() {
		return fmt.Errorf("%w: context destroyed", ErrContextUnavailable)
	}
	return c.platform.SwapBuffers()
}

// InnerDimensions returns the drawable size of the platform surface.
func (c *Context) InnerDimensions() (width, height int) {
	return c.platform.InnerDimensions()
}

// Backend returns the name of the backend the context runs on.
func (c *Context) Backend() string { return c.backend }

// AdapterInfo describes the adapter behind the context.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo { return c.info }

// Stats returns a snapshot of the context's resource counters.
// Stats is safe for concurrent use.
func (c *Context) Stats() Stats { return c.stats.snapshot() }

// String returns a short description for logs.
func (c *Context) String() string {
	return fmt.Sprintf("Context[%s %s gen=%d alive=%v]", c.label, c.backend, c.generation, c.IsAlive())
}
