package gpuobj

import (
	"fmt"

	"github.com/gogpu/gpuobj/driver"
)

// Renderbuffer is render-target storage that cannot be sampled, typically a
// depth buffer attached to a Framebuffer.
//
// Unlike the other resources a Renderbuffer does not keep its context
// reachable. Each operation upgrades a WeakContext first.
type Renderbuffer struct {
	ctx      WeakContext
	handle   driver.Renderbuffer
	internal driver.Enum
	width    int
	height   int
	obj      *object
}

// DefaultRenderbuffer returns a placeholder with no device object. It has
// no storage; binding or attaching it panics.
func DefaultRenderbuffer(ctx *Context) *Renderbuffer {
	return &Renderbuffer{ctx: ctx.Weak()}
}

// NewRenderbuffer creates a depth renderbuffer of width×height.
func NewRenderbuffer(ctx *Context, width, height int) *Renderbuffer {
	return NewRenderbufferWithFormat(ctx, width, height, driver.DepthComponent)
}

// NewRenderbufferWithFormat creates a renderbuffer with the given sized or
// unsized internal format, such as driver.RGBA8 or driver.Depth24Stencil8.
func NewRenderbufferWithFormat(ctx *Context, width, height int, internalFormat driver.Enum) *Renderbuffer {
	if width < 0 || height < 0 {
		panic("gpuobj: negative renderbuffer dimension")
	}
	gl := ctx.create(kindRenderbuffer)
	r := &Renderbuffer{
		ctx:      ctx.Weak(),
		handle:   gl.GenRenderbuffer(),
		internal: internalFormat,
		width:    width,
		height:   height,
	}
	r.obj = track(ctx, r, kindRenderbuffer, uint32(r.handle))

	gl.BindRenderbuffer(driver.RenderbufferTarget, r.handle)
	gl.RenderbufferStorage(driver.RenderbufferTarget, internalFormat, width, height)
	ctx.resize(r.obj, width*height*renderbufferTexelSize(internalFormat))
	ctx.check("create renderbuffer")
	return r
}

// bind makes the renderbuffer current and returns its live context.
func (r *Renderbuffer) bind() *Context {
	if !r.IsMaterialized() {
		panic("gpuobj: renderbuffer is not materialized")
	}
	if r.obj.released {
		panic("gpuobj: renderbuffer used after Release")
	}
	ctx, ok := r.ctx.Upgrade()
	if !ok {
		panic("gpuobj: renderbuffer used after its context was destroyed")
	}
	ctx.gl.BindRenderbuffer(driver.RenderbufferTarget, r.handle)
	return ctx
}

// IsMaterialized reports whether the renderbuffer owns a device object.
func (r *Renderbuffer) IsMaterialized() bool { return r.obj != nil }

// Dimensions returns the storage size; zero for the placeholder.
func (r *Renderbuffer) Dimensions() (width, height int) { return r.width, r.height }

// InternalFormat returns the storage format.
func (r *Renderbuffer) InternalFormat() driver.Enum { return r.internal }

// Context returns the renderbuffer's context reference.
func (r *Renderbuffer) Context() WeakContext { return r.ctx }

// Release deletes the device renderbuffer if the context is still alive.
// Releasing the placeholder, or releasing twice, does nothing.
func (r *Renderbuffer) Release() {
	if r.obj == nil || r.obj.released {
		return
	}
	if ctx := r.ctx.lookup(); ctx != nil {
		ctx.release(r.obj)
		return
	}
	// The context itself was collected; nothing is left to account to.
	r.obj.released = true
	r.obj.cleanup.Stop()
}

func (r *Renderbuffer) String() string {
	if !r.IsMaterialized() {
		return "Renderbuffer[default]"
	}
	return fmt.Sprintf("Renderbuffer[%d %dx%d %#x]", r.handle, r.width, r.height, uint32(r.internal))
}

// renderbufferTexelSize estimates storage bytes per texel for stats.
func renderbufferTexelSize(internal driver.Enum) int {
	if channels, typ, ok := driver.InternalFormatInfo(internal); ok {
		return channels * driver.ComponentSize(typ)
	}
	return 4
}
