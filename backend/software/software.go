// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides an in-memory GL device.
//
// The device keeps real object storage and the full set of binding points
// gpuobj relies on, so every upload, download and attachment round-trips
// through device state exactly as it would on a driver. It does not
// rasterize: draw calls are validated and recorded, and Clear writes the
// clear color into the bound attachments.
//
// Importing the package registers it as the "software" backend:
//
//	import _ "github.com/gogpu/gpuobj/backend/software"
package software

import (
	"errors"
	"log/slog"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpuobj/driver"
)

// Name is the registry name of this backend.
const Name = "software"

// Priority ranks the software device below every hardware backend.
const Priority = 10

// Default surface size when options do not specify one.
const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

var (
	_ driver.Functions = (*Device)(nil)
	_ driver.Platform  = (*Platform)(nil)
)

// ErrDestroyed is returned by Platform.MakeCurrent after Destroy.
var ErrDestroyed = errors.New("software: platform destroyed")

func init() {
	driver.Register(Name, Priority, func(opts driver.Options) (*driver.Device, error) {
		return Open(opts), nil
	}, nil)
}

// Open creates a software device and its platform.
func Open(opts driver.Options) *driver.Device {
	dev := New(opts)
	return &driver.Device{
		Platform:  &Platform{dev: dev},
		Functions: dev,
		Info: gpucontext.AdapterInfo{
			Name: "gpuobj software",
			Type: gpucontext.AdapterTypeSoftware,
		},
	}
}

// DeleteCounts tallies delete calls per object kind.
type DeleteCounts struct {
	Buffers       int
	Textures      int
	Renderbuffers int
	Framebuffers  int
	VertexArrays  int
	Shaders       int
	Programs      int
}

// Total returns the sum of all delete calls.
func (c DeleteCounts) Total() int {
	return c.Buffers + c.Textures + c.Renderbuffers + c.Framebuffers +
		c.VertexArrays + c.Shaders + c.Programs
}

// DrawCall records one validated draw.
type DrawCall struct {
	Mode        driver.Enum
	First       int
	Count       int
	Indexed     bool
	IndexType   driver.Enum
	Offset      int
	Program     driver.Program
	VertexArray driver.VertexArray
	Framebuffer driver.Framebuffer
	Viewport    [4]int
}

// Device is an in-memory implementation of driver.Functions.
//
// Device is not safe for concurrent use, matching the single-thread rule of
// a GL context.
type Device struct {
	log *slog.Logger

	err       driver.Enum
	nextName  uint32
	destroyed bool

	buffers       map[driver.Buffer]*buffer
	textures      map[driver.Texture]*texture
	renderbuffers map[driver.Renderbuffer]*renderbuffer
	framebuffers  map[driver.Framebuffer]*framebuffer
	vertexArrays  map[driver.VertexArray]*vertexArray
	shaders       map[driver.Shader]*shader
	programs      map[driver.Program]*program

	// Binding points.
	arrayBuffer  driver.Buffer
	boundTexture map[driver.Enum]driver.Texture
	renderbuf    driver.Renderbuffer
	drawFB       driver.Framebuffer
	readFB       driver.Framebuffer
	vao          driver.VertexArray
	current      driver.Program

	viewport   [4]int
	clearColor [4]float64

	// backbuffer is the storage of framebuffer 0.
	backbuffer *texture
	// defaultVAO holds element bindings made while no vertex array is bound.
	defaultVAO *vertexArray

	deletes           DeleteCounts
	bufferAllocs      int
	draws             []DrawCall
	swaps             int
	callsAfterDestroy int
}

// New creates a device sized by opts.
func New(opts driver.Options) *Device {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Device{
		log:           log,
		buffers:       make(map[driver.Buffer]*buffer),
		textures:      make(map[driver.Texture]*texture),
		renderbuffers: make(map[driver.Renderbuffer]*renderbuffer),
		framebuffers:  make(map[driver.Framebuffer]*framebuffer),
		vertexArrays:  make(map[driver.VertexArray]*vertexArray),
		shaders:       make(map[driver.Shader]*shader),
		programs:      make(map[driver.Program]*program),
		boundTexture:  make(map[driver.Enum]driver.Texture),
		viewport:      [4]int{0, 0, w, h},
		defaultVAO:    newVertexArray(),
	}
	d.backbuffer = &texture{target: driver.Texture2D}
	d.backbuffer.alloc(driver.RGBA8, w, h, 1)
	log.Debug("software: device created", "label", opts.Label, "width", w, "height", h)
	return d
}

// live reports whether the device still accepts calls. Calls made after
// Destroy are counted and otherwise ignored.
func (d *Device) live() bool {
	if d.destroyed {
		d.callsAfterDestroy++
		return false
	}
	return true
}

// setError records the first error since the last GetError.
func (d *Device) setError(e driver.Enum) {
	if d.err == driver.NoError {
		d.err = e
	}
}

func (d *Device) genName() uint32 {
	d.nextName++
	return d.nextName
}

// Deletes returns the delete calls received so far.
func (d *Device) Deletes() DeleteCounts { return d.deletes }

// BufferAllocations returns how many BufferData calls reached a buffer.
func (d *Device) BufferAllocations() int { return d.bufferAllocs }

// Draws returns the draw calls recorded so far.
func (d *Device) Draws() []DrawCall { return append([]DrawCall(nil), d.draws...) }

// Swaps returns how many times the backbuffer was presented.
func (d *Device) Swaps() int { return d.swaps }

// CallsAfterDestroy returns how many entry points were invoked after the
// platform was destroyed. A correct client keeps this at zero.
func (d *Device) CallsAfterDestroy() int { return d.callsAfterDestroy }

// LiveObjects returns the number of objects not yet deleted.
func (d *Device) LiveObjects() int {
	return len(d.buffers) + len(d.textures) + len(d.renderbuffers) + len(d.framebuffers) +
		len(d.vertexArrays) + len(d.shaders) + len(d.programs)
}

// Destroyed reports whether the platform owning the device was destroyed.
func (d *Device) Destroyed() bool { return d.destroyed }

func (d *Device) GetError() driver.Enum {
	if !d.live() {
		return driver.NoError
	}
	e := d.err
	d.err = driver.NoError
	return e
}

func (d *Device) GetString(name driver.Enum) string {
	if !d.live() {
		return ""
	}
	switch name {
	case driver.Vendor:
		return "gogpu"
	case driver.Renderer:
		return "gpuobj software"
	case driver.Version:
		return "3.3 gpuobj-software"
	}
	d.setError(driver.InvalidEnum)
	return ""
}

func (d *Device) Viewport(x, y, width, height int) {
	if !d.live() {
		return
	}
	if width < 0 || height < 0 {
		d.setError(driver.InvalidValue)
		return
	}
	d.viewport = [4]int{x, y, width, height}
}

// Platform is the offscreen platform paired with a Device.
type Platform struct {
	dev *Device
}

// Device returns the software device behind the platform.
func (p *Platform) Device() *Device { return p.dev }

func (p *Platform) MakeCurrent() error {
	if p.dev.destroyed {
		return ErrDestroyed
	}
	return nil
}

// GetProcAddress returns nil: the software device has no native entry points.
func (p *Platform) GetProcAddress(string) unsafe.Pointer { return nil }

func (p *Platform) SwapBuffers() error {
	if p.dev.destroyed {
		return ErrDestroyed
	}
	p.dev.swaps++
	return nil
}

func (p *Platform) InnerDimensions() (width, height int) {
	return p.dev.backbuffer.width, p.dev.backbuffer.height
}

func (p *Platform) Destroy() {
	if p.dev.destroyed {
		return
	}
	p.dev.log.Debug("software: device destroyed", "live_objects", p.dev.LiveObjects())
	p.dev.destroyed = true
}
