package gpuobj

import "github.com/gogpu/gpuobj/driver"

// Buffer is linear device memory bound through ARRAY_BUFFER.
//
// Every operation binds the buffer before touching the device. A Buffer
// keeps its context reachable.
type Buffer struct {
	ctx    *Context
	handle driver.Buffer
	obj    *object
}

func newBuffer(ctx *Context) *Buffer {
	gl := ctx.create(kindBuffer)
	b := &Buffer{ctx: ctx, handle: gl.GenBuffer()}
	b.obj = track(ctx, b, kindBuffer, uint32(b.handle))
	return b
}

// AllocateBuffer creates a buffer of byteSize bytes with undefined contents.
// A size of zero creates the buffer object but defers allocation to the
// first write.
func AllocateBuffer(ctx *Context, byteSize int) *Buffer {
	if byteSize < 0 {
		panic("gpuobj: negative buffer size")
	}
	b := newBuffer(ctx)
	if byteSize > 0 {
		b.Reallocate(byteSize)
	}
	return b
}

// BufferFromData creates a buffer holding a copy of elems.
// T must be a plain value type without pointers.
func BufferFromData[T any](ctx *Context, elems []T) *Buffer {
	b := newBuffer(ctx)
	SetBufferData(b, elems)
	return b
}

// SetBufferData replaces the buffer's contents and size with elems.
func SetBufferData[T any](b *Buffer, elems []T) {
	sizeOf[T]()
	b.SetBytes(sliceBytes(elems))
}

// ReadBuffer downloads the buffer as elements of T. When the buffer size is
// not a multiple of the element size, the trailing partial element is
// dropped.
func ReadBuffer[T any](b *Buffer) []T {
	n := b.Size() / sizeOf[T]()
	out, raw := makeElements[T](n)
	if n == 0 {
		return out
	}
	gl := b.bind()
	gl.GetBufferSubData(driver.ArrayBuffer, 0, raw)
	b.ctx.check("read buffer")
	return out
}

// bind makes the buffer current on ARRAY_BUFFER.
func (b *Buffer) bind() driver.Functions {
	if b.obj.released {
		panic("gpuobj: buffer used after Release")
	}
	gl := b.ctx.device(kindBuffer)
	gl.BindBuffer(driver.ArrayBuffer, b.handle)
	return gl
}

// SetBytes replaces the buffer's contents and size with data.
func (b *Buffer) SetBytes(data []byte) {
	gl := b.bind()
	gl.BufferData(driver.ArrayBuffer, len(data), nonNil(data), driver.StaticDraw)
	b.ctx.resize(b.obj, len(data))
	b.ctx.check("set buffer data")
}

// Bytes downloads the full contents of the buffer.
func (b *Buffer) Bytes() []byte {
	return ReadBuffer[byte](b)
}

// Reallocate changes the buffer's size, discarding its contents. A size of
// zero releases the storage but keeps the buffer object.
func (b *Buffer) Reallocate(byteSize int) {
	if byteSize < 0 {
		panic("gpuobj: negative buffer size")
	}
	gl := b.bind()
	gl.BufferData(driver.ArrayBuffer, byteSize, nil, driver.StaticDraw)
	b.ctx.resize(b.obj, byteSize)
	b.ctx.check("reallocate buffer")
	b.ctx.log.Debug("gpuobj: buffer allocated", "handle", b.handle, "bytes", byteSize)
}

// Size queries the device for the buffer's allocated size in bytes.
func (b *Buffer) Size() int {
	gl := b.bind()
	size := gl.GetBufferParameteri(driver.ArrayBuffer, driver.BufferSize)
	b.ctx.check("query buffer size")
	return size
}

// Context returns the context the buffer was created against.
func (b *Buffer) Context() *Context { return b.ctx }

// Release deletes the device buffer. If the context was destroyed first, no
// device call is made. Release is idempotent.
func (b *Buffer) Release() {
	b.ctx.release(b.obj)
}

// nonNil keeps an empty upload distinguishable from an uninitialized
// allocation.
func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}
