package gpuobj

import (
	"testing"

	"github.com/gogpu/gpuobj/driver"
)

func TestRenderbufferStorage(t *testing.T) {
	ctx, dev := newTestContext(t)

	rb := NewRenderbuffer(ctx, 64, 32)
	defer rb.Release()

	if !rb.IsMaterialized() {
		t.Fatal("IsMaterialized() = false, want true")
	}
	if w, h := rb.Dimensions(); w != 64 || h != 32 {
		t.Errorf("Dimensions() = (%d, %d), want (64, 32)", w, h)
	}
	w, h, internal, ok := dev.RenderbufferSize(rb.handle)
	if !ok || w != 64 || h != 32 || internal != driver.DepthComponent {
		t.Errorf("device storage = (%d, %d, %#x, %v), want (64, 32, DEPTH_COMPONENT, true)", w, h, internal, ok)
	}
	if got := ctx.Stats().RenderbufferBytes; got != 64*32*4 {
		t.Errorf("Stats().RenderbufferBytes = %d, want %d", got, 64*32*4)
	}
}

func TestRenderbufferWithFormat(t *testing.T) {
	ctx, dev := newTestContext(t)

	rb := NewRenderbufferWithFormat(ctx, 4, 4, driver.RGBA8)
	defer rb.Release()
	if _, _, internal, _ := dev.RenderbufferSize(rb.handle); internal != driver.RGBA8 {
		t.Errorf("internal format = %#x, want RGBA8", internal)
	}
	if got := rb.InternalFormat(); got != driver.RGBA8 {
		t.Errorf("InternalFormat() = %#x, want RGBA8", got)
	}
}

func TestDefaultRenderbuffer(t *testing.T) {
	ctx, dev := newTestContext(t)

	rb := DefaultRenderbuffer(ctx)
	if rb.IsMaterialized() {
		t.Error("IsMaterialized() = true, want false")
	}
	if w, h := rb.Dimensions(); w != 0 || h != 0 {
		t.Errorf("Dimensions() = (%d, %d), want (0, 0)", w, h)
	}
	mustPanic(t, "bind default renderbuffer", func() { rb.bind() })

	fb := NewFramebuffer(ctx)
	defer fb.Release()
	mustPanic(t, "attach default renderbuffer", func() { fb.AttachDepth(rb) })

	rb.Release()
	if got := dev.Deletes().Renderbuffers; got != 0 {
		t.Errorf("Deletes().Renderbuffers = %d, want 0", got)
	}
}

func TestRenderbufferDoesNotKeepContext(t *testing.T) {
	ctx, dev := newTestContext(t)

	rb := NewRenderbuffer(ctx, 8, 8)
	if rb.Context().generation != ctx.generation {
		t.Fatal("Context() does not reference the creating context")
	}

	ctx.Destroy()
	if rb.Context().IsAlive() {
		t.Error("Context().IsAlive() = true after Destroy")
	}
	rb.Release()
	if got := dev.Deletes().Renderbuffers; got != 0 {
		t.Errorf("Deletes().Renderbuffers = %d, want 0", got)
	}
	if got := dev.CallsAfterDestroy(); got != 0 {
		t.Errorf("CallsAfterDestroy() = %d, want 0", got)
	}
	if got := ctx.Stats().Skipped; got != 1 {
		t.Errorf("Stats().Skipped = %d, want 1", got)
	}
	mustPanic(t, "bind after destroy", func() { rb.bind() })
}
