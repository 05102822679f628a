package gpuobj

import (
	"fmt"

	"github.com/gogpu/gpuobj/driver"
)

// Framebuffer is a render target: a set of texture and renderbuffer
// attachments, or the platform surface for the default framebuffer.
type Framebuffer struct {
	ctx    *Context
	handle driver.Framebuffer
	obj    *object

	colors [driver.MaxColorAttachments]*Texture2D
	depth  *Renderbuffer
}

// NewFramebuffer creates a framebuffer with no attachments.
func NewFramebuffer(ctx *Context) *Framebuffer {
	gl := ctx.create(kindFramebuffer)
	fb := &Framebuffer{ctx: ctx, handle: gl.GenFramebuffer()}
	fb.obj = track(ctx, fb, kindFramebuffer, uint32(fb.handle))
	return fb
}

// DefaultFramebuffer returns the platform surface as a framebuffer. It owns
// no device object and cannot take attachments.
func DefaultFramebuffer(ctx *Context) *Framebuffer {
	return &Framebuffer{ctx: ctx}
}

// IsDefault reports whether fb is the platform surface.
func (fb *Framebuffer) IsDefault() bool { return fb.obj == nil }

func (fb *Framebuffer) bind() driver.Functions {
	if fb.obj != nil && fb.obj.released {
		panic("gpuobj: framebuffer used after Release")
	}
	gl := fb.ctx.device(kindFramebuffer)
	gl.BindFramebuffer(driver.FramebufferTarget, fb.handle)
	return gl
}

func (fb *Framebuffer) mustAttachable() driver.Functions {
	if fb.IsDefault() {
		panic("gpuobj: the default framebuffer takes no attachments")
	}
	return fb.bind()
}

// AttachColor attaches level 0 of t at color attachment index. A nil
// texture detaches the slot.
func (fb *Framebuffer) AttachColor(index int, t *Texture2D) {
	if index < 0 || index >= driver.MaxColorAttachments {
		panic(fmt.Sprintf("gpuobj: color attachment %d out of range", index))
	}
	gl := fb.mustAttachable()
	var handle driver.Texture
	if t != nil {
		if t.obj.released {
			panic("gpuobj: texture used after Release")
		}
		handle = t.handle
	}
	gl.FramebufferTexture2D(driver.FramebufferTarget, driver.ColorAttachment0+driver.Enum(index),
		driver.Texture2D, handle, 0)
	fb.colors[index] = t
	fb.ctx.check("attach color")
}

// AttachDepth attaches r as the depth buffer. A nil renderbuffer detaches
// it. The default renderbuffer placeholder cannot be attached.
func (fb *Framebuffer) AttachDepth(r *Renderbuffer) {
	gl := fb.mustAttachable()
	var handle driver.Renderbuffer
	if r != nil {
		if !r.IsMaterialized() {
			panic("gpuobj: renderbuffer is not materialized")
		}
		if r.obj.released {
			panic("gpuobj: renderbuffer used after Release")
		}
		handle = r.handle
	}
	gl.FramebufferRenderbuffer(driver.FramebufferTarget, driver.DepthAttachment,
		driver.RenderbufferTarget, handle)
	fb.depth = r
	fb.ctx.check("attach depth")
}

// Status returns nil if the framebuffer can be rendered to, or an
// *IncompleteFramebufferError.
func (fb *Framebuffer) Status() error {
	gl := fb.bind()
	status := gl.CheckFramebufferStatus(driver.FramebufferTarget)
	if status == driver.FramebufferComplete {
		return nil
	}
	return &IncompleteFramebufferError{Status: status}
}

// Clear fills every color attachment with the given color and resets the
// depth attachment to the far plane.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl := fb.bind()
	gl.ClearColor(r, g, b, a)
	gl.Clear(driver.ColorBufferBit | driver.DepthBufferBit)
	fb.ctx.check("clear framebuffer")
}

// Dimensions returns the render area: the platform surface for the default
// framebuffer, otherwise the first color attachment or else the depth
// attachment.
func (fb *Framebuffer) Dimensions() (width, height int) {
	if fb.IsDefault() {
		return fb.ctx.InnerDimensions()
	}
	for _, t := range fb.colors {
		if t != nil {
			return t.Dimensions()
		}
	}
	if fb.depth != nil {
		return fb.depth.Dimensions()
	}
	return 0, 0
}

// ColorAttachment returns the texture attached at index, or nil.
func (fb *Framebuffer) ColorAttachment(index int) *Texture2D {
	if index < 0 || index >= driver.MaxColorAttachments {
		return nil
	}
	return fb.colors[index]
}

// Context returns the context the framebuffer was created against.
func (fb *Framebuffer) Context() *Context { return fb.ctx }

// Release deletes the device framebuffer. Attached resources are not
// released. Releasing the default framebuffer does nothing.
func (fb *Framebuffer) Release() {
	fb.ctx.release(fb.obj)
	fb.colors = [driver.MaxColorAttachments]*Texture2D{}
	fb.depth = nil
}

// ReadPixels reads the whole render area of color attachment 0 (or the
// platform surface) converted to format. T must have the byte width of the
// format's component type.
func ReadPixels[T any](fb *Framebuffer, format Format) []T {
	if size := sizeOf[T](); size != format.ComponentType().Size() {
		panic(fmt.Sprintf("gpuobj: element size %d does not match %v components", size, format))
	}
	w, h := fb.Dimensions()
	out, raw := makeElements[T](w * h * format.Channels())
	if len(out) == 0 {
		return out
	}
	gl := fb.bind()
	transfer, typ := format.TransferFormat()
	gl.ReadPixels(0, 0, w, h, transfer, typ, raw)
	fb.ctx.check("read pixels")
	return out
}
