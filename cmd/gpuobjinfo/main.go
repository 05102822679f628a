// Command gpuobjinfo lists the registered device backends, opens one and
// checks that buffers and textures survive an upload and download.
//
// With -output it also renders a gradient through a framebuffer and writes
// the result as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/gogpu/gpuobj"
	_ "github.com/gogpu/gpuobj/backend/gles"
	_ "github.com/gogpu/gpuobj/backend/software"
	_ "github.com/gogpu/gpuobj/backend/wgpu"
	"github.com/gogpu/gpuobj/driver"
)

func init() {
	// Device contexts are bound to the OS thread that made them current.
	runtime.LockOSThread()
}

func main() {
	var (
		backend = flag.String("backend", os.Getenv("GPUOBJ_BACKEND"), "backend name (default: best available)")
		width   = flag.Int("width", 320, "image width")
		height  = flag.Int("height", 240, "image height")
		output  = flag.String("output", "", "write a rendered PNG to this file")
		list    = flag.Bool("list", false, "list backends and exit")
		verbose = flag.Bool("v", false, "log device activity")
	)
	flag.Parse()

	if *list {
		listBackends()
		return
	}
	if *verbose {
		gpuobj.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, err := gpuobj.NewContext(
		gpuobj.WithBackend(*backend),
		gpuobj.WithSize(*width, *height),
		gpuobj.WithLabel("gpuobjinfo"),
	)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer ctx.Destroy()

	info := ctx.AdapterInfo()
	fmt.Printf("backend:  %s\nadapter:  %s (%s)\n", ctx.Backend(), info.Name, info.Type)

	if err := selfCheck(ctx); err != nil {
		log.Fatalf("Self-check failed: %v", err)
	}
	fmt.Println("self-check: ok")

	if *output == "" {
		fmt.Println(ctx.Stats())
		return
	}
	img, err := render(ctx, *width, *height)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Saved %s (%dx%d)", *output, *width, *height)
	fmt.Println(ctx.Stats())
}

func listBackends() {
	available := driver.Available()
	for _, name := range driver.List() {
		entry, _ := driver.Get(name)
		state := "unavailable"
		if slices.Contains(available, name) {
			state = "available"
		}
		fmt.Printf("%-10s priority %3d  %s\n", name, entry.Priority, state)
	}
}

// selfCheck round-trips a float buffer, an RGBA8 texture and an R32F volume.
func selfCheck(ctx *gpuobj.Context) error {
	floats := []float32{0, 0.25, -1.5, 3e8}
	buf := gpuobj.BufferFromData(ctx, floats)
	defer buf.Release()
	if got := gpuobj.ReadBuffer[float32](buf); !slices.Equal(got, floats) {
		return fmt.Errorf("buffer: read %v, wrote %v", got, floats)
	}

	pixels := []uint8{255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255, 7, 7, 7, 7}
	tex := gpuobj.Texture2DFromData(ctx, 2, 2, gpuobj.FormatRGBA8, pixels, gpuobj.FormatRGBA8)
	defer tex.Release()
	if got := gpuobj.ReadTexture2D[uint8](tex); !slices.Equal(got, pixels) {
		return fmt.Errorf("texture2d: read %v, wrote %v", got, pixels)
	}

	voxels := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	vol := gpuobj.Texture3DFromData(ctx, 2, 2, 2, gpuobj.FormatR32F, voxels, gpuobj.FormatR32F)
	defer vol.Release()
	if got := gpuobj.ReadTexture3D[float32](vol); !slices.Equal(got, voxels) {
		return fmt.Errorf("texture3d: read %v, wrote %v", got, voxels)
	}
	return ctx.CheckError()
}

// render scales a small gradient onto the device, paints a band into it
// through a framebuffer and reads the texture back.
func render(ctx *gpuobj.Context, w, h int) (*image.RGBA, error) {
	tex := gpuobj.Texture2DFromImageScaled(ctx, gradient(16, 16), w, h)
	defer tex.Release()

	band := gpuobj.AllocateTexture2D(ctx, w, h/4, gpuobj.FormatRGBA8)
	defer band.Release()

	fb := gpuobj.NewFramebuffer(ctx)
	defer fb.Release()
	fb.AttachColor(0, band)
	if err := fb.Status(); err != nil {
		return nil, err
	}
	fb.Clear(1, 1, 1, 0.5)

	out := tex.Image()
	overlay := band.Image()
	for y := range overlay.Bounds().Dy() {
		for x := range w {
			over := overlay.RGBAAt(x, y)
			under := out.RGBAAt(x, y+h/2)
			out.SetRGBA(x, y+h/2, blend(under, over))
		}
	}
	return out, ctx.CheckError()
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / (w - 1)),
				G: uint8(255 * y / (h - 1)),
				B: 160,
				A: 255,
			})
		}
	}
	return img
}

func blend(dst, src color.RGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
