package gpuobj

import (
	"fmt"

	"github.com/gogpu/gpuobj/driver"
)

// Filter selects texture sampling between texels.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) enum() driver.Enum {
	if f == FilterLinear {
		return driver.Linear
	}
	return driver.Nearest
}

// Wrap selects how texture coordinates outside [0, 1] are resolved.
type Wrap uint8

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
	WrapMirroredRepeat
)

func (w Wrap) enum() driver.Enum {
	switch w {
	case WrapRepeat:
		return driver.Repeat
	case WrapMirroredRepeat:
		return driver.MirroredRepeat
	default:
		return driver.ClampToEdge
	}
}

// defaultTextureFormat describes a texture before its first allocation.
var defaultTextureFormat = FormatRGBA32F

// texture is the state shared by Texture2D and Texture3D. The format is only
// ever assigned together with the dimensions of the embedding type.
type texture struct {
	ctx    *Context
	handle driver.Texture
	target driver.Enum
	format Format
	obj    *object
}

func (t *texture) init(ctx *Context, target driver.Enum) {
	gl := ctx.create(kindTexture)
	t.ctx = ctx
	t.handle = gl.GenTexture()
	t.target = target
	t.format = defaultTextureFormat

	gl.BindTexture(target, t.handle)
	gl.TexParameteri(target, driver.TextureMinFilter, int(driver.Nearest))
	gl.TexParameteri(target, driver.TextureMagFilter, int(driver.Nearest))
	ctx.check("create texture")
}

// bind makes the texture current on its target.
func (t *texture) bind() driver.Functions {
	if t.obj.released {
		panic("gpuobj: texture used after Release")
	}
	gl := t.ctx.device(kindTexture)
	gl.BindTexture(t.target, t.handle)
	return gl
}

// Format returns the storage format of the last allocation.
func (t *texture) Format() Format { return t.format }

// Context returns the context the texture was created against.
func (t *texture) Context() *Context { return t.ctx }

// SetFilter sets the minification and magnification filters.
func (t *texture) SetFilter(minFilter, magFilter Filter) {
	gl := t.bind()
	gl.TexParameteri(t.target, driver.TextureMinFilter, int(minFilter.enum()))
	gl.TexParameteri(t.target, driver.TextureMagFilter, int(magFilter.enum()))
	t.ctx.check("set texture filter")
}

// SetWrap sets the wrap mode on every axis of the texture.
func (t *texture) SetWrap(w Wrap) {
	gl := t.bind()
	axes := []driver.Enum{driver.TextureWrapS, driver.TextureWrapT}
	if t.target == driver.Texture3D {
		axes = append(axes, driver.TextureWrapR)
	}
	for _, axis := range axes {
		gl.TexParameteri(t.target, axis, int(w.enum()))
	}
	t.ctx.check("set texture wrap")
}

// Release deletes the device texture. If the context was destroyed first, no
// device call is made. Release is idempotent.
func (t *texture) Release() {
	t.ctx.release(t.obj)
}

// checkUpload validates that data covers texels elements of dataFormat.
func checkUpload(data []byte, texels int, dataFormat Format) {
	if need := texels * dataFormat.ElementSize(); len(data) < need {
		panic(fmt.Sprintf("gpuobj: texture data has %d bytes, need %d for %d %v elements",
			len(data), need, texels, dataFormat))
	}
}

// readTexture downloads every texel of t as elements of T.
func readTexture[T any](t *texture, texels int) []T {
	if size := sizeOf[T](); size != t.format.ComponentType().Size() {
		panic(fmt.Sprintf("gpuobj: element size %d does not match %v components", size, t.format))
	}
	out, raw := makeElements[T](texels * t.format.Channels())
	if len(out) == 0 {
		return out
	}
	gl := t.bind()
	format, typ := t.format.TransferFormat()
	gl.GetTexImage(t.target, 0, format, typ, raw)
	t.ctx.check("read texture")
	return out
}
