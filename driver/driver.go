// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver defines the contract between gpuobj and the graphics device
// it drives.
//
// A backend supplies two halves: a [Platform], which owns the native context
// and surface, and a [Functions] table, which exposes the GL-style entry
// points gpuobj calls. Both are bundled in a [Device] returned by a registered
// [Factory].
//
// The Functions interface mirrors the classic implicit-state model: objects are
// addressed through binding points (targets), and every call acts on whatever
// is currently bound. Implementations must not reorder or defer calls in a way
// that is observable to the caller.
package driver

import (
	"log/slog"
	"unsafe"

	"github.com/gogpu/gpucontext"
)

// Enum is a GL enumerant.
type Enum uint32

// Object handles. Zero is the default (or absent) object on every target.
type (
	Buffer       uint32
	Texture      uint32
	Renderbuffer uint32
	Framebuffer  uint32
	VertexArray  uint32
	Shader       uint32
	Program      uint32
)

// Platform is the windowing side of a device: it owns the native context and
// the surface it renders to.
type Platform interface {
	// MakeCurrent binds the native context to the calling thread.
	MakeCurrent() error

	// GetProcAddress returns the address of a device entry point, or nil.
	GetProcAddress(name string) unsafe.Pointer

	// SwapBuffers presents the default framebuffer.
	SwapBuffers() error

	// InnerDimensions returns the drawable size of the surface in pixels.
	InnerDimensions() (width, height int)

	// Destroy releases the native context. Objects created through it are
	// reclaimed by the driver.
	Destroy()
}

// Functions is the GL entry point table used by gpuobj.
//
// Sizes, offsets and dimensions are plain ints. Data slices are passed by
// reference for the duration of the call only. A nil data slice on an upload
// call allocates uninitialized storage.
type Functions interface {
	GetError() Enum
	GetString(name Enum) string

	GenBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, size int, data []byte, usage Enum)
	GetBufferParameteri(target, pname Enum) int
	GetBufferSubData(target Enum, offset int, dst []byte)

	GenTexture() Texture
	DeleteTexture(t Texture)
	BindTexture(target Enum, t Texture)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, data []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	GetTexImage(target Enum, level int, format, typ Enum, dst []byte)

	GenRenderbuffer() Renderbuffer
	DeleteRenderbuffer(r Renderbuffer)
	BindRenderbuffer(target Enum, r Renderbuffer)
	RenderbufferStorage(target, internalFormat Enum, width, height int)

	GenFramebuffer() Framebuffer
	DeleteFramebuffer(f Framebuffer)
	BindFramebuffer(target Enum, f Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, r Renderbuffer)
	CheckFramebufferStatus(target Enum) Enum
	ReadPixels(x, y, width, height int, format, typ Enum, dst []byte)

	GenVertexArray() VertexArray
	DeleteVertexArray(v VertexArray)
	BindVertexArray(v VertexArray)
	EnableVertexAttribArray(index int)
	VertexAttribPointer(index, size int, typ Enum, normalized bool, stride, offset int)

	CreateShader(typ Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, typ Enum, offset int)
}

// Device is a ready-to-use platform and entry point table.
type Device struct {
	Platform  Platform
	Functions Functions

	// Info describes the adapter behind the device.
	Info gpucontext.AdapterInfo
}

// Options configures device creation.
type Options struct {
	// Width and Height size the platform surface. Offscreen platforms use
	// them for InnerDimensions.
	Width, Height int

	// Debug requests a debug context where the platform supports one.
	Debug bool

	// Label names the device in logs.
	Label string

	// Logger receives backend diagnostics. Nil means silent.
	Logger *slog.Logger
}
