// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux && !cgo && !nogpu

package gles

import (
	"bytes"
	"runtime"
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gpuobj"
	"github.com/gogpu/gpuobj/driver"
)

// openOrSkip opens a device on the calling thread or skips the test when no
// EGL display is reachable, as on headless CI.
func openOrSkip(t *testing.T) *driver.Device {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	dev, err := Open(driver.Options{Width: 32, Height: 16})
	if err != nil {
		t.Skipf("gles unavailable: %v", err)
	}
	t.Cleanup(dev.Platform.Destroy)
	return dev
}

func TestRegistered(t *testing.T) {
	entry, ok := driver.Get(Name)
	if !ok {
		t.Fatal("gles backend not registered")
	}
	if entry.Priority != Priority {
		t.Errorf("Priority = %d, want %d", entry.Priority, Priority)
	}
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		renderer string
		want     gpucontext.AdapterType
	}{
		{"llvmpipe (LLVM 17.0.6, 256 bits)", gpucontext.AdapterTypeSoftware},
		{"SwiftShader Device (Subzero)", gpucontext.AdapterTypeSoftware},
		{"Mesa Intel(R) UHD Graphics 620", gpucontext.AdapterTypeUnknown},
		{"", gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := adapterType(tt.renderer); got != tt.want {
			t.Errorf("adapterType(%q) = %v, want %v", tt.renderer, got, tt.want)
		}
	}
}

func TestFailedCallPanics(t *testing.T) {
	p := proc{name: "glGenBuffers"}
	defer func() {
		msg, _ := recover().(string)
		if !strings.HasPrefix(msg, "gles: call glGenBuffers") {
			t.Errorf("panic = %q, want a gles: call glGenBuffers message", msg)
		}
	}()
	var n int32 = 1
	p.call(nil, unsafe.Pointer(&n))
}

func TestBufferRoundTrip(t *testing.T) {
	dev := openOrSkip(t)
	gl := dev.Functions

	b := gl.GenBuffer()
	if b == 0 {
		t.Fatal("GenBuffer() = 0")
	}
	defer gl.DeleteBuffer(b)

	data := []byte{9, 8, 7, 6, 5, 4, 3, 2, 1}
	gl.BindBuffer(driver.ArrayBuffer, b)
	gl.BufferData(driver.ArrayBuffer, len(data), data, driver.StaticDraw)
	if size := gl.GetBufferParameteri(driver.ArrayBuffer, driver.BufferSize); size != len(data) {
		t.Errorf("BufferSize = %d, want %d", size, len(data))
	}
	got := make([]byte, len(data))
	gl.GetBufferSubData(driver.ArrayBuffer, 0, got)
	if !bytes.Equal(got, data) {
		t.Errorf("GetBufferSubData() = %v, want %v", got, data)
	}
	if e := gl.GetError(); e != driver.NoError {
		t.Errorf("GetError() = %#x", e)
	}
}

func TestTextureRoundTrip(t *testing.T) {
	dev := openOrSkip(t)
	gl := dev.Functions

	tex := gl.GenTexture()
	defer gl.DeleteTexture(tex)

	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	gl.BindTexture(driver.Texture2D, tex)
	gl.TexImage2D(driver.Texture2D, 0, driver.RGBA8, 2, 2, driver.RGBA, driver.UnsignedByte, pixels)
	got := make([]byte, len(pixels))
	gl.GetTexImage(driver.Texture2D, 0, driver.RGBA, driver.UnsignedByte, got)
	if !bytes.Equal(got, pixels) {
		t.Errorf("GetTexImage() = %v, want %v", got, pixels)
	}
	if e := gl.GetError(); e != driver.NoError {
		t.Errorf("GetError() = %#x", e)
	}
}

func TestShaderInfoLog(t *testing.T) {
	dev := openOrSkip(t)
	gl := dev.Functions

	s := gl.CreateShader(driver.FragmentShader)
	defer gl.DeleteShader(s)
	gl.ShaderSource(s, "#version 330 core\nvoid main() { syntax error }\n")
	gl.CompileShader(s)
	if gl.GetShaderi(s, driver.CompileStatus) != 0 {
		t.Fatal("broken shader compiled")
	}
	if gl.GetShaderInfoLog(s) == "" {
		t.Error("GetShaderInfoLog() is empty for a failed compile")
	}
}

func TestInnerDimensions(t *testing.T) {
	dev := openOrSkip(t)
	if w, h := dev.Platform.InnerDimensions(); w != 32 || h != 16 {
		t.Errorf("InnerDimensions() = %d, %d, want 32, 16", w, h)
	}
}

func TestContextRoundTrip(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx, err := gpuobj.NewContext(gpuobj.WithBackend(Name))
	if err != nil {
		t.Skipf("gles unavailable: %v", err)
	}
	defer ctx.Destroy()

	buf := gpuobj.BufferFromData(ctx, []float32{0.5, 1.5, 2.5})
	defer buf.Release()
	if got := gpuobj.ReadBuffer[float32](buf); !slices.Equal(got, []float32{0.5, 1.5, 2.5}) {
		t.Errorf("ReadBuffer() = %v", got)
	}
	if err := ctx.CheckError(); err != nil {
		t.Errorf("CheckError() = %v", err)
	}
}
