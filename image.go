package gpuobj

import (
	"image"

	"golang.org/x/image/draw"
)

// Texture2DFromImage uploads img as an RGBA U8 texture. Any image type is
// accepted; non-RGBA images are converted first. Row 0 of the texture is
// the top row of the image.
func Texture2DFromImage(ctx *Context, img image.Image) *Texture2D {
	rgba := toRGBA(img)
	b := rgba.Bounds()
	return Texture2DFromData(ctx, b.Dx(), b.Dy(), FormatRGBA8, packedPix(rgba), FormatRGBA8)
}

// Texture2DFromImageScaled resamples img to width×height with Catmull-Rom
// filtering and uploads it as an RGBA U8 texture.
func Texture2DFromImageScaled(ctx *Context, img image.Image, width, height int) *Texture2D {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return Texture2DFromData(ctx, width, height, FormatRGBA8, dst.Pix, FormatRGBA8)
}

// Image downloads an RGBA U8 texture into a new image.
func (t *Texture2D) Image() *image.RGBA {
	if t.format != FormatRGBA8 {
		panic("gpuobj: Image requires an RGBA U8 texture, have " + t.format.String())
	}
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, ReadTexture2D[uint8](t))
	return img
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// packedPix returns the pixels of img without row padding.
func packedPix(img *image.RGBA) []uint8 {
	b := img.Bounds()
	row := b.Dx() * 4
	if img.Stride == row && b.Min == (image.Point{}) {
		return img.Pix[:row*b.Dy()]
	}
	out := make([]uint8, 0, row*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[i:i+row]...)
	}
	return out
}
