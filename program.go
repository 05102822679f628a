package gpuobj

import "github.com/gogpu/gpuobj/driver"

// Program is a linked set of shader stages.
type Program struct {
	ctx    *Context
	handle driver.Program
	obj    *object
}

// NewProgram links a vertex and a fragment shader. A nil shader is left
// unattached, which makes the link fail. Link failures return *LinkError
// carrying the device log.
func NewProgram(ctx *Context, vs, fs *Shader) (*Program, error) {
	gl := ctx.create(kindProgram)
	p := &Program{ctx: ctx, handle: gl.CreateProgram()}
	p.obj = track(ctx, p, kindProgram, uint32(p.handle))

	for _, s := range []*Shader{vs, fs} {
		if s == nil {
			continue
		}
		if !s.live() {
			panic("gpuobj: shader used after Release")
		}
		gl.AttachShader(p.handle, s.handle)
	}
	gl.LinkProgram(p.handle)
	if gl.GetProgrami(p.handle, driver.LinkStatus) == 0 {
		reason := gl.GetProgramInfoLog(p.handle)
		p.Release()
		ctx.log.Warn("gpuobj: program link failed", "log", reason)
		return nil, &LinkError{Reason: reason}
	}
	ctx.check("link program")
	return p, nil
}

// Use makes the program current.
func (p *Program) Use() {
	p.use()
	p.ctx.check("use program")
}

func (p *Program) use() driver.Functions {
	if p.obj.released {
		panic("gpuobj: program used after Release")
	}
	gl := p.ctx.device(kindProgram)
	gl.UseProgram(p.handle)
	return gl
}

// Context returns the context the program was created against.
func (p *Program) Context() *Context { return p.ctx }

// Release deletes the device program. Release is idempotent.
func (p *Program) Release() {
	p.ctx.release(p.obj)
}

// Primitive selects how vertices are assembled.
type Primitive uint8

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
	Lines
	LineStrip
	Points
)

func (m Primitive) enum() driver.Enum {
	switch m {
	case TriangleStrip:
		return driver.TriangleStrip
	case TriangleFan:
		return driver.TriangleFan
	case Lines:
		return driver.Lines
	case LineStrip:
		return driver.LineStrip
	case Points:
		return driver.Points
	default:
		return driver.Triangles
	}
}

// RasterProgram is a Program with draw helpers that rasterize a vertex
// array into a framebuffer.
type RasterProgram struct {
	*Program
}

// NewRasterProgram links vs and fs like NewProgram.
func NewRasterProgram(ctx *Context, vs, fs *Shader) (*RasterProgram, error) {
	p, err := NewProgram(ctx, vs, fs)
	if err != nil {
		return nil, err
	}
	return &RasterProgram{Program: p}, nil
}

// Raster draws va.VertexCount() vertices of va into fb, with the viewport
// covering the whole framebuffer.
func (p *RasterProgram) Raster(fb *Framebuffer, va *VertexArray, mode Primitive) {
	gl := p.prepare(fb, va)
	gl.DrawArrays(mode.enum(), 0, va.VertexCount())
	p.ctx.check("raster")
}

// IndexedRaster draws count indices read as uint32 values from indices.
func (p *RasterProgram) IndexedRaster(fb *Framebuffer, va *VertexArray, indices *Buffer, count int, mode Primitive) {
	if count < 0 {
		panic("gpuobj: negative index count")
	}
	gl := p.prepare(fb, va)
	if indices.obj.released {
		panic("gpuobj: buffer used after Release")
	}
	// ELEMENT_ARRAY_BUFFER is vertex array state: bind after the array.
	gl.BindBuffer(driver.ElementArrayBuffer, indices.handle)
	gl.DrawElements(mode.enum(), count, driver.UnsignedInt, 0)
	p.ctx.check("indexed raster")
}

func (p *RasterProgram) prepare(fb *Framebuffer, va *VertexArray) driver.Functions {
	w, h := fb.Dimensions()
	fb.bind()
	gl := p.use()
	va.bind()
	gl.Viewport(0, 0, w, h)
	return gl
}
