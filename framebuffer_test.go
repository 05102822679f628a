package gpuobj

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gpuobj/driver"
)

func TestFramebufferStatus(t *testing.T) {
	ctx, _ := newTestContext(t)

	fb := NewFramebuffer(ctx)
	defer fb.Release()

	var incomplete *IncompleteFramebufferError
	if err := fb.Status(); !errors.As(err, &incomplete) || incomplete.Status != driver.FramebufferMissing {
		t.Errorf("empty framebuffer: Status() = %v, want missing attachment", err)
	}

	color := AllocateTexture2D(ctx, 16, 16, FormatRGBA8)
	defer color.Release()
	depth := NewRenderbuffer(ctx, 16, 16)
	defer depth.Release()
	fb.AttachColor(0, color)
	fb.AttachDepth(depth)
	if err := fb.Status(); err != nil {
		t.Errorf("Status() = %v, want nil", err)
	}
	if w, h := fb.Dimensions(); w != 16 || h != 16 {
		t.Errorf("Dimensions() = (%d, %d), want (16, 16)", w, h)
	}
	if fb.ColorAttachment(0) != color {
		t.Error("ColorAttachment(0) does not return the attached texture")
	}

	// A depth renderbuffer on a color slot cannot be rendered to.
	colorDepth := NewFramebuffer(ctx)
	defer colorDepth.Release()
	colorDepth.AttachDepth(NewRenderbufferWithFormat(ctx, 4, 4, driver.RGBA8))
	if err := colorDepth.Status(); !errors.As(err, &incomplete) || incomplete.Status != driver.FramebufferIncomplete {
		t.Errorf("color storage on depth slot: Status() = %v, want incomplete attachment", err)
	}
}

func TestFramebufferClearAndRead(t *testing.T) {
	ctx, _ := newTestContext(t)

	target := AllocateTexture2D(ctx, 4, 2, FormatRGBA8)
	defer target.Release()
	fb := NewFramebuffer(ctx)
	defer fb.Release()
	fb.AttachColor(0, target)

	fb.Clear(1, 0, 0.5, 1)

	pixels := ReadPixels[uint8](fb, FormatRGBA8)
	if len(pixels) != 4*2*4 {
		t.Fatalf("ReadPixels() len = %d, want %d", len(pixels), 4*2*4)
	}
	for i := 0; i < len(pixels); i += 4 {
		if got, want := pixels[i:i+4], []uint8{255, 0, 128, 255}; !slices.Equal(got, want) {
			t.Fatalf("pixel %d = %v, want %v", i/4, got, want)
		}
	}
	if got := ReadTexture2D[uint8](target); !slices.Equal(got, pixels) {
		t.Error("texture contents differ from ReadPixels()")
	}

	reds := ReadPixels[float32](fb, FormatR32F)
	if len(reds) != 8 || reds[0] != 1 {
		t.Errorf("ReadPixels(R32F) = %v, want 8 values of 1", reds)
	}
	mustPanic(t, "ReadPixels with mismatched element", func() { ReadPixels[uint16](fb, FormatRGBA8) })
}

func TestDefaultFramebuffer(t *testing.T) {
	ctx, dev := newTestContext(t)

	fb := DefaultFramebuffer(ctx)
	if !fb.IsDefault() {
		t.Error("IsDefault() = false, want true")
	}
	if w, h := fb.Dimensions(); w != 64 || h != 32 {
		t.Errorf("Dimensions() = (%d, %d), want (64, 32)", w, h)
	}
	if err := fb.Status(); err != nil {
		t.Errorf("Status() = %v, want nil", err)
	}

	fb.Clear(0, 1, 0, 1)
	pixels := ReadPixels[uint8](fb, FormatRGBA8)
	if got := pixels[len(pixels)-4:]; !slices.Equal(got, []uint8{0, 255, 0, 255}) {
		t.Errorf("last pixel = %v, want [0 255 0 255]", got)
	}

	tex := AllocateTexture2D(ctx, 1, 1, FormatRGBA8)
	defer tex.Release()
	mustPanic(t, "AttachColor on default framebuffer", func() { fb.AttachColor(0, tex) })

	fb.Release()
	if got := dev.Deletes().Framebuffers; got != 0 {
		t.Errorf("Deletes().Framebuffers = %d, want 0", got)
	}
	if err := ctx.SwapBuffers(); err != nil {
		t.Errorf("SwapBuffers() = %v", err)
	}
	if got := dev.Swaps(); got != 1 {
		t.Errorf("Swaps() = %d, want 1", got)
	}
}

func TestFramebufferReleaseKeepsAttachments(t *testing.T) {
	ctx, dev := newTestContext(t)

	tex := AllocateTexture2D(ctx, 2, 2, FormatRGBA8)
	defer tex.Release()
	fb := NewFramebuffer(ctx)
	fb.AttachColor(0, tex)
	fb.Release()

	deletes := dev.Deletes()
	if deletes.Framebuffers != 1 || deletes.Textures != 0 {
		t.Errorf("Deletes() = %+v, want one framebuffer and no textures", deletes)
	}
	if got := len(ReadTexture2D[uint8](tex)); got != 16 {
		t.Errorf("texture still readable: len = %d, want 16", got)
	}
	mustPanic(t, "Status after Release", func() { _ = fb.Status() })
}
