package gpuobj

import "github.com/gogpu/gpuobj/driver"

// Texture2D is a two-dimensional image bound through TEXTURE_2D.
//
// Dimensions and format always describe the last allocation; they are never
// re-queried from the device.
type Texture2D struct {
	texture
	width  int
	height int
}

func newTexture2D(ctx *Context) *Texture2D {
	t := &Texture2D{}
	t.init(ctx, driver.Texture2D)
	t.obj = track(ctx, t, kindTexture, uint32(t.handle))
	return t
}

// AllocateTexture2D creates a texture with undefined contents.
func AllocateTexture2D(ctx *Context, width, height int, format Format) *Texture2D {
	t := newTexture2D(ctx)
	t.Reallocate(width, height, format)
	return t
}

// Texture2DFromData creates a texture stored in format and uploads data,
// which is interpreted in dataFormat. The two formats may differ; the device
// converts on upload.
func Texture2DFromData[T any](ctx *Context, width, height int, format Format, data []T, dataFormat Format) *Texture2D {
	t := newTexture2D(ctx)
	SetTexture2DData(t, width, height, format, data, dataFormat)
	return t
}

// SetTexture2DData replaces the texture's storage and contents in one call.
func SetTexture2DData[T any](t *Texture2D, width, height int, format Format, data []T, dataFormat Format) {
	raw := sliceBytes(data)
	checkDimensions(width, height, 1)
	checkUpload(raw, width*height, dataFormat)
	t.upload(width, height, format, raw, dataFormat)
}

// ReadTexture2D downloads the full image as width*height*channels elements.
// T must have the byte width of the format's component type.
func ReadTexture2D[T any](t *Texture2D) []T {
	return readTexture[T](&t.texture, t.width*t.height)
}

// Reallocate replaces the texture's storage, discarding its contents.
func (t *Texture2D) Reallocate(width, height int, format Format) {
	checkDimensions(width, height, 1)
	t.upload(width, height, format, nil, format)
}

func (t *Texture2D) upload(width, height int, format Format, data []byte, dataFormat Format) {
	gl := t.bind()
	transfer, typ := dataFormat.TransferFormat()
	gl.TexImage2D(t.target, 0, format.InternalFormat(), width, height, transfer, typ, data)
	t.width, t.height, t.format = width, height, format
	t.ctx.resize(t.obj, width*height*format.ElementSize())
	t.ctx.check("upload texture 2D")
}

// Dimensions returns the size of the last allocation.
func (t *Texture2D) Dimensions() (width, height int) {
	return t.width, t.height
}

func checkDimensions(width, height, depth int) {
	if width < 0 || height < 0 || depth < 0 {
		panic("gpuobj: negative texture dimension")
	}
}
