package gpuobj

import (
	"slices"

	"github.com/gogpu/gpuobj/driver"
)

// VertexAttribute is the host-side record of one configured attribute slot.
type VertexAttribute struct {
	Index      int
	Components int
	Buffer     *Buffer
}

// VertexArray records how vertex attributes are fetched from buffers.
type VertexArray struct {
	ctx         *Context
	handle      driver.VertexArray
	obj         *object
	vertexCount int
	attrs       []VertexAttribute
}

// NewVertexArray creates an empty vertex array.
func NewVertexArray(ctx *Context) *VertexArray {
	gl := ctx.create(kindVertexArray)
	va := &VertexArray{ctx: ctx, handle: gl.GenVertexArray()}
	va.obj = track(ctx, va, kindVertexArray, uint32(va.handle))
	return va
}

func (va *VertexArray) bind() driver.Functions {
	if va.obj.released {
		panic("gpuobj: vertex array used after Release")
	}
	gl := va.ctx.device(kindVertexArray)
	gl.BindVertexArray(va.handle)
	return gl
}

// SetVertexSource feeds attribute attrIndex from buf as tightly packed
// float32 vectors of the given number of components, starting at offset 0.
// Slots are independent and repeating a call changes nothing.
func (va *VertexArray) SetVertexSource(buf *Buffer, attrIndex, components int) {
	if components < 1 || components > 4 {
		panic("gpuobj: vertex attribute components must be in [1, 4]")
	}
	if attrIndex < 0 {
		panic("gpuobj: negative vertex attribute index")
	}
	gl := va.bind()
	buf.bind()
	gl.EnableVertexAttribArray(attrIndex)
	gl.VertexAttribPointer(attrIndex, components, driver.Float, false, 0, 0)
	va.ctx.check("set vertex source")

	rec := VertexAttribute{Index: attrIndex, Components: components, Buffer: buf}
	i, found := slices.BinarySearchFunc(va.attrs, attrIndex, func(a VertexAttribute, idx int) int {
		return a.Index - idx
	})
	if found {
		va.attrs[i] = rec
	} else {
		va.attrs = slices.Insert(va.attrs, i, rec)
	}
}

// SetVertexCount records how many vertices Raster draws. No device call
// is made.
func (va *VertexArray) SetVertexCount(n int) {
	if n < 0 {
		panic("gpuobj: negative vertex count")
	}
	va.vertexCount = n
}

// VertexCount returns the last value passed to SetVertexCount.
func (va *VertexArray) VertexCount() int { return va.vertexCount }

// Attributes returns the configured slots ordered by index.
func (va *VertexArray) Attributes() []VertexAttribute {
	return slices.Clone(va.attrs)
}

// Context returns the context the vertex array was created against.
func (va *VertexArray) Context() *Context { return va.ctx }

// Release deletes the device vertex array. Release is idempotent.
func (va *VertexArray) Release() {
	va.ctx.release(va.obj)
	va.attrs = nil
}
