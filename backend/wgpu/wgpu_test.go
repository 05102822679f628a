// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuobj"
	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/backend/wgpu"
	"github.com/gogpu/gpuobj/driver"
)

// openNoop opens the backend on the noop HAL adapter, the only one
// registered in tests.
func openNoop(t *testing.T) (*wgpu.Device, driver.Platform) {
	t.Helper()
	dev, err := wgpu.Open(driver.Options{Width: 16, Height: 8, Label: "test"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(dev.Platform.Destroy)
	return dev.Functions.(*wgpu.Device), dev.Platform
}

func TestRegistered(t *testing.T) {
	entry, ok := driver.Get(wgpu.Name)
	if !ok {
		t.Fatal("wgpu backend not registered")
	}
	if entry.Priority != wgpu.Priority {
		t.Errorf("Priority = %d, want %d", entry.Priority, wgpu.Priority)
	}
	if !slices.Contains(driver.Available(), wgpu.Name) {
		t.Errorf("Available() = %v, want it to contain %q", driver.Available(), wgpu.Name)
	}
}

func TestAdapterInfo(t *testing.T) {
	dev, err := wgpu.Open(driver.Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer dev.Platform.Destroy()

	if dev.Info.Name != "Noop Adapter" {
		t.Errorf("Info.Name = %q, want %q", dev.Info.Name, "Noop Adapter")
	}
	if dev.Info.Type != gpucontext.AdapterTypeUnknown {
		t.Errorf("Info.Type = %v, want Unknown", dev.Info.Type)
	}

	fn := dev.Functions
	if got := fn.GetString(driver.Renderer); got != "Noop Adapter" {
		t.Errorf("GetString(Renderer) = %q", got)
	}
	if got := fn.GetString(driver.Vendor); got != "GoGPU" {
		t.Errorf("GetString(Vendor) = %q", got)
	}
	if w, h := dev.Platform.InnerDimensions(); w != software.DefaultWidth || h != software.DefaultHeight {
		t.Errorf("InnerDimensions() = %d, %d", w, h)
	}
}

func TestAdapterTypes(t *testing.T) {
	tests := []struct {
		in   gputypes.DeviceType
		want gpucontext.AdapterType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucontext.AdapterTypeDiscrete},
		{gputypes.DeviceTypeIntegratedGPU, gpucontext.AdapterTypeIntegrated},
		{gputypes.DeviceTypeCPU, gpucontext.AdapterTypeSoftware},
		{gputypes.DeviceTypeVirtualGPU, gpucontext.AdapterTypeUnknown},
		{gputypes.DeviceTypeOther, gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		got := wgpu.AdapterInfo(gputypes.AdapterInfo{Name: "gpu", DeviceType: tt.in})
		if got.Type != tt.want || got.Name != "gpu" {
			t.Errorf("AdapterInfo(%v) = %+v, want type %v", tt.in, got, tt.want)
		}
	}
}

func TestBufferMirror(t *testing.T) {
	fn, _ := openNoop(t)

	b := fn.GenBuffer()
	fn.BindBuffer(driver.ArrayBuffer, b)
	if fn.Buffer(b) != nil {
		t.Fatal("buffer has HAL storage before BufferData")
	}

	fn.BufferData(driver.ArrayBuffer, 6, []byte{1, 2, 3, 4, 5, 6}, driver.StaticDraw)
	hb := fn.Buffer(b)
	if hb == nil {
		t.Fatal("BufferData did not create a HAL buffer")
	}

	// The noop buffer keeps its bytes, so the queue write is observable.
	halDev, _ := fn.HAL()
	mapping, err := halDev.MapBuffer(hb, 0, 8)
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	got := unsafe.Slice((*byte)(mapping.Ptr), 8)
	if want := []byte{1, 2, 3, 4, 5, 6, 0, 0}; !bytes.Equal(got, want) {
		t.Errorf("HAL contents = %v, want %v", got, want)
	}

	read := make([]byte, 6)
	fn.GetBufferSubData(driver.ArrayBuffer, 0, read)
	if !bytes.Equal(read, []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("GetBufferSubData() = %v", read)
	}
	if size := fn.GetBufferParameteri(driver.ArrayBuffer, driver.BufferSize); size != 6 {
		t.Errorf("BufferSize = %d, want 6", size)
	}

	fn.BufferData(driver.ArrayBuffer, 0, []byte{}, driver.StaticDraw)
	if fn.Buffer(b) != nil {
		t.Error("empty BufferData kept a HAL buffer")
	}

	fn.BufferData(driver.ArrayBuffer, 4, nil, driver.StaticDraw)
	if fn.Buffer(b) == nil {
		t.Error("uninitialized BufferData did not create a HAL buffer")
	}
	fn.DeleteBuffer(b)
	if fn.Buffer(b) != nil {
		t.Error("DeleteBuffer kept the HAL buffer")
	}
	if e := fn.GetError(); e != driver.NoError {
		t.Errorf("GetError() = %#x", e)
	}
}

func TestTextureMirror(t *testing.T) {
	fn, _ := openNoop(t)

	tex := fn.GenTexture()
	fn.BindTexture(driver.Texture2D, tex)
	fn.TexImage2D(driver.Texture2D, 0, driver.RGBA8, 2, 1, driver.RGBA, driver.UnsignedByte,
		[]byte{1, 2, 3, 4, 5, 6, 7, 8})
	if fn.Texture(tex) == nil {
		t.Fatal("RGBA8 texture has no HAL texture")
	}

	fn.TexImage2D(driver.Texture2D, 0, driver.RGB8, 2, 1, driver.RGB, driver.UnsignedByte,
		[]byte{1, 2, 3, 4, 5, 6})
	if fn.Texture(tex) != nil {
		t.Error("RGB8 texture kept a HAL texture")
	}

	vol := fn.GenTexture()
	fn.BindTexture(driver.Texture3D, vol)
	fn.TexImage3D(driver.Texture3D, 0, driver.R32F, 2, 2, 2, driver.Red, driver.Float, nil)
	if fn.Texture(vol) == nil {
		t.Error("R32F volume has no HAL texture")
	}

	fn.DeleteTexture(tex)
	fn.DeleteTexture(vol)
	if fn.Texture(tex) != nil || fn.Texture(vol) != nil {
		t.Error("DeleteTexture kept HAL textures")
	}
	if e := fn.GetError(); e != driver.NoError {
		t.Errorf("GetError() = %#x", e)
	}
}

func TestTextureFormatsMatchGpuobj(t *testing.T) {
	colors := []gpuobj.ColorFormat{gpuobj.R, gpuobj.RG, gpuobj.RGB, gpuobj.RGBA}
	components := []gpuobj.ComponentType{
		gpuobj.U8, gpuobj.I8, gpuobj.U16, gpuobj.I16, gpuobj.U32, gpuobj.I32, gpuobj.F16, gpuobj.F32,
	}
	for _, c := range colors {
		for _, ct := range components {
			f := gpuobj.NewFormat(c, ct)
			want, wantOK := f.WebGPU()
			got, ok := wgpu.TextureFormat(f.InternalFormat())
			if got != want || ok != wantOK {
				t.Errorf("%v: TextureFormat = %v, %v; Format.WebGPU = %v, %v", f, got, ok, want, wantOK)
			}
		}
	}
}

func TestDestroy(t *testing.T) {
	dev, err := wgpu.Open(driver.Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	fn := dev.Functions.(*wgpu.Device)
	b := fn.GenBuffer()
	fn.BindBuffer(driver.ArrayBuffer, b)
	fn.BufferData(driver.ArrayBuffer, 16, nil, driver.StaticDraw)

	dev.Platform.Destroy()
	dev.Platform.Destroy()

	if err := dev.Platform.MakeCurrent(); !errors.Is(err, software.ErrDestroyed) {
		t.Errorf("MakeCurrent() after Destroy = %v, want ErrDestroyed", err)
	}
	if fn.Buffer(b) != nil {
		t.Error("Destroy kept the HAL buffer")
	}
	if n := fn.CallsAfterDestroy(); n != 0 {
		t.Errorf("CallsAfterDestroy() = %d, want 0", n)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx, err := gpuobj.NewContext(gpuobj.WithBackend(wgpu.Name), gpuobj.WithSize(8, 8))
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Destroy()

	if ctx.Backend() != wgpu.Name {
		t.Errorf("Backend() = %q", ctx.Backend())
	}

	buf := gpuobj.BufferFromData(ctx, []float32{1, 2, 3})
	defer buf.Release()
	if got := gpuobj.ReadBuffer[float32](buf); !slices.Equal(got, []float32{1, 2, 3}) {
		t.Errorf("ReadBuffer() = %v", got)
	}

	pixels := []uint8{10, 20, 30, 40, 50, 60, 70, 80}
	tex := gpuobj.Texture2DFromData(ctx, 2, 1, gpuobj.FormatRGBA8, pixels, gpuobj.FormatRGBA8)
	defer tex.Release()
	if got := gpuobj.ReadTexture2D[uint8](tex); !slices.Equal(got, pixels) {
		t.Errorf("ReadTexture2D() = %v", got)
	}
	if err := ctx.CheckError(); err != nil {
		t.Errorf("CheckError() = %v", err)
	}
}
