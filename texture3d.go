package gpuobj

import "github.com/gogpu/gpuobj/driver"

// Texture3D is a volume image bound through TEXTURE_3D.
type Texture3D struct {
	texture
	width  int
	height int
	depth  int
}

func newTexture3D(ctx *Context) *Texture3D {
	t := &Texture3D{}
	t.init(ctx, driver.Texture3D)
	t.obj = track(ctx, t, kindTexture, uint32(t.handle))
	return t
}

// AllocateTexture3D creates a volume texture with undefined contents.
func AllocateTexture3D(ctx *Context, width, height, depth int, format Format) *Texture3D {
	t := newTexture3D(ctx)
	t.Reallocate(width, height, depth, format)
	return t
}

// Texture3DFromData creates a volume texture stored in format and uploads
// data, which is interpreted in dataFormat.
func Texture3DFromData[T any](ctx *Context, width, height, depth int, format Format, data []T, dataFormat Format) *Texture3D {
	t := newTexture3D(ctx)
	SetTexture3DData(t, width, height, depth, format, data, dataFormat)
	return t
}

// SetTexture3DData replaces the texture's storage and contents in one call.
func SetTexture3DData[T any](t *Texture3D, width, height, depth int, format Format, data []T, dataFormat Format) {
	raw := sliceBytes(data)
	checkDimensions(width, height, depth)
	checkUpload(raw, width*height*depth, dataFormat)
	t.upload(width, height, depth, format, raw, dataFormat)
}

// ReadTexture3D downloads the full volume as width*height*depth*channels
// elements, x fastest, then y, then z.
func ReadTexture3D[T any](t *Texture3D) []T {
	return readTexture[T](&t.texture, t.width*t.height*t.depth)
}

// Reallocate replaces the texture's storage, discarding its contents.
func (t *Texture3D) Reallocate(width, height, depth int, format Format) {
	checkDimensions(width, height, depth)
	t.upload(width, height, depth, format, nil, format)
}

func (t *Texture3D) upload(width, height, depth int, format Format, data []byte, dataFormat Format) {
	gl := t.bind()
	transfer, typ := dataFormat.TransferFormat()
	gl.TexImage3D(t.target, 0, format.InternalFormat(), width, height, depth, transfer, typ, data)
	t.width, t.height, t.depth, t.format = width, height, depth, format
	t.ctx.resize(t.obj, width*height*depth*format.ElementSize())
	t.ctx.check("upload texture 3D")
}

// Dimensions returns the size of the last allocation.
func (t *Texture3D) Dimensions() (width, height, depth int) {
	return t.width, t.height, t.depth
}
