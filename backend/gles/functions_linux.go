// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux && !cgo && !nogpu

package gles

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"

	"github.com/gogpu/gpuobj/driver"
)

// proc is a loaded GL entry point with its prepared call interface.
type proc struct {
	name string
	fn   unsafe.Pointer
	cif  types.CallInterface
}

// call invokes the entry point. Each element of args points at an argument
// value; pointer arguments are passed as the address of a pointer variable.
// A failed call leaves ret unwritten, so it panics.
func (p *proc) call(ret unsafe.Pointer, args ...unsafe.Pointer) {
	if err := ffi.CallFunction(&p.cif, p.fn, ret, args); err != nil {
		panic(fmt.Sprintf("gles: call %s: %v", p.name, err))
	}
}

var (
	tVoid = types.VoidTypeDescriptor
	tU8   = types.UInt8TypeDescriptor
	tU32  = types.UInt32TypeDescriptor
	tI32  = types.SInt32TypeDescriptor
	tF32  = types.FloatTypeDescriptor
	tSize = types.UInt64TypeDescriptor // GLintptr, GLsizeiptr
	tPtr  = types.PointerTypeDescriptor
)

func sig(args ...*types.TypeDescriptor) []*types.TypeDescriptor {
	if args == nil {
		return []*types.TypeDescriptor{}
	}
	return args
}

// Functions implements driver.Functions over a current GL 3.3 core context.
type Functions struct {
	getError  proc
	getString proc

	genBuffers           proc
	deleteBuffers        proc
	bindBuffer           proc
	bufferData           proc
	getBufferParameteriv proc
	getBufferSubData     proc

	genTextures    proc
	deleteTextures proc
	bindTexture    proc
	texImage2D     proc
	texImage3D     proc
	texParameteri  proc
	getTexImage    proc

	genRenderbuffers    proc
	deleteRenderbuffers proc
	bindRenderbuffer    proc
	renderbufferStorage proc

	genFramebuffers         proc
	deleteFramebuffers      proc
	bindFramebuffer         proc
	framebufferTexture2D    proc
	framebufferRenderbuffer proc
	checkFramebufferStatus  proc
	readPixels              proc

	genVertexArrays         proc
	deleteVertexArrays      proc
	bindVertexArray         proc
	enableVertexAttribArray proc
	vertexAttribPointer     proc

	createShader     proc
	shaderSource     proc
	compileShader    proc
	getShaderiv      proc
	getShaderInfoLog proc
	deleteShader     proc

	createProgram     proc
	attachShader      proc
	linkProgram       proc
	getProgramiv      proc
	getProgramInfoLog proc
	useProgram        proc
	deleteProgram     proc

	viewport     proc
	clearColor   proc
	clear        proc
	drawArrays   proc
	drawElements proc
}

// load resolves every entry point. The context must be current.
func (f *Functions) load(getProcAddress func(name string) unsafe.Pointer) error {
	entries := []struct {
		p    *proc
		name string
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}{
		{&f.getError, "glGetError", tU32, sig()},
		{&f.getString, "glGetString", tPtr, sig(tU32)},

		{&f.genBuffers, "glGenBuffers", tVoid, sig(tI32, tPtr)},
		{&f.deleteBuffers, "glDeleteBuffers", tVoid, sig(tI32, tPtr)},
		{&f.bindBuffer, "glBindBuffer", tVoid, sig(tU32, tU32)},
		{&f.bufferData, "glBufferData", tVoid, sig(tU32, tSize, tPtr, tU32)},
		{&f.getBufferParameteriv, "glGetBufferParameteriv", tVoid, sig(tU32, tU32, tPtr)},
		{&f.getBufferSubData, "glGetBufferSubData", tVoid, sig(tU32, tSize, tSize, tPtr)},

		{&f.genTextures, "glGenTextures", tVoid, sig(tI32, tPtr)},
		{&f.deleteTextures, "glDeleteTextures", tVoid, sig(tI32, tPtr)},
		{&f.bindTexture, "glBindTexture", tVoid, sig(tU32, tU32)},
		{&f.texImage2D, "glTexImage2D", tVoid, sig(tU32, tI32, tI32, tI32, tI32, tI32, tU32, tU32, tPtr)},
		{&f.texImage3D, "glTexImage3D", tVoid, sig(tU32, tI32, tI32, tI32, tI32, tI32, tI32, tU32, tU32, tPtr)},
		{&f.texParameteri, "glTexParameteri", tVoid, sig(tU32, tU32, tI32)},
		{&f.getTexImage, "glGetTexImage", tVoid, sig(tU32, tI32, tU32, tU32, tPtr)},

		{&f.genRenderbuffers, "glGenRenderbuffers", tVoid, sig(tI32, tPtr)},
		{&f.deleteRenderbuffers, "glDeleteRenderbuffers", tVoid, sig(tI32, tPtr)},
		{&f.bindRenderbuffer, "glBindRenderbuffer", tVoid, sig(tU32, tU32)},
		{&f.renderbufferStorage, "glRenderbufferStorage", tVoid, sig(tU32, tU32, tI32, tI32)},

		{&f.genFramebuffers, "glGenFramebuffers", tVoid, sig(tI32, tPtr)},
		{&f.deleteFramebuffers, "glDeleteFramebuffers", tVoid, sig(tI32, tPtr)},
		{&f.bindFramebuffer, "glBindFramebuffer", tVoid, sig(tU32, tU32)},
		{&f.framebufferTexture2D, "glFramebufferTexture2D", tVoid, sig(tU32, tU32, tU32, tU32, tI32)},
		{&f.framebufferRenderbuffer, "glFramebufferRenderbuffer", tVoid, sig(tU32, tU32, tU32, tU32)},
		{&f.checkFramebufferStatus, "glCheckFramebufferStatus", tU32, sig(tU32)},
		{&f.readPixels, "glReadPixels", tVoid, sig(tI32, tI32, tI32, tI32, tU32, tU32, tPtr)},

		{&f.genVertexArrays, "glGenVertexArrays", tVoid, sig(tI32, tPtr)},
		{&f.deleteVertexArrays, "glDeleteVertexArrays", tVoid, sig(tI32, tPtr)},
		{&f.bindVertexArray, "glBindVertexArray", tVoid, sig(tU32)},
		{&f.enableVertexAttribArray, "glEnableVertexAttribArray", tVoid, sig(tU32)},
		{&f.vertexAttribPointer, "glVertexAttribPointer", tVoid, sig(tU32, tI32, tU32, tU8, tI32, tPtr)},

		{&f.createShader, "glCreateShader", tU32, sig(tU32)},
		{&f.shaderSource, "glShaderSource", tVoid, sig(tU32, tI32, tPtr, tPtr)},
		{&f.compileShader, "glCompileShader", tVoid, sig(tU32)},
		{&f.getShaderiv, "glGetShaderiv", tVoid, sig(tU32, tU32, tPtr)},
		{&f.getShaderInfoLog, "glGetShaderInfoLog", tVoid, sig(tU32, tI32, tPtr, tPtr)},
		{&f.deleteShader, "glDeleteShader", tVoid, sig(tU32)},

		{&f.createProgram, "glCreateProgram", tU32, sig()},
		{&f.attachShader, "glAttachShader", tVoid, sig(tU32, tU32)},
		{&f.linkProgram, "glLinkProgram", tVoid, sig(tU32)},
		{&f.getProgramiv, "glGetProgramiv", tVoid, sig(tU32, tU32, tPtr)},
		{&f.getProgramInfoLog, "glGetProgramInfoLog", tVoid, sig(tU32, tI32, tPtr, tPtr)},
		{&f.useProgram, "glUseProgram", tVoid, sig(tU32)},
		{&f.deleteProgram, "glDeleteProgram", tVoid, sig(tU32)},

		{&f.viewport, "glViewport", tVoid, sig(tI32, tI32, tI32, tI32)},
		{&f.clearColor, "glClearColor", tVoid, sig(tF32, tF32, tF32, tF32)},
		{&f.clear, "glClear", tVoid, sig(tU32)},
		{&f.drawArrays, "glDrawArrays", tVoid, sig(tU32, tI32, tI32)},
		{&f.drawElements, "glDrawElements", tVoid, sig(tU32, tI32, tU32, tPtr)},
	}

	for _, e := range entries {
		e.p.name = e.name
		e.p.fn = getProcAddress(e.name)
		if e.p.fn == nil {
			return fmt.Errorf("gles: missing entry point %s", e.name)
		}
		if err := ffi.PrepareCallInterface(&e.p.cif, types.DefaultCall, e.ret, e.args); err != nil {
			return fmt.Errorf("gles: prepare %s: %w", e.name, err)
		}
	}
	return nil
}

// dataPtr returns the address of the first byte of b, or nil.
func dataPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// goString copies a NUL-terminated C string.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	base := unsafe.Pointer(p) //nolint:govet // address returned by the driver
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n))
}

func (f *Functions) GetError() driver.Enum {
	var e uint32
	f.getError.call(unsafe.Pointer(&e))
	return driver.Enum(e)
}

func (f *Functions) GetString(name driver.Enum) string {
	n := uint32(name)
	var s uintptr
	f.getString.call(unsafe.Pointer(&s), unsafe.Pointer(&n))
	return goString(s)
}

// gen calls a glGen* entry point for a single name.
func gen(p *proc) uint32 {
	n := int32(1)
	var name uint32
	ptr := unsafe.Pointer(&name)
	p.call(nil, unsafe.Pointer(&n), unsafe.Pointer(&ptr))
	return name
}

// del calls a glDelete* entry point for a single name.
func del(p *proc, name uint32) {
	n := int32(1)
	ptr := unsafe.Pointer(&name)
	p.call(nil, unsafe.Pointer(&n), unsafe.Pointer(&ptr))
}

// bind2 calls an entry point taking two enums or names.
func bind2(p *proc, a, b uint32) {
	p.call(nil, unsafe.Pointer(&a), unsafe.Pointer(&b))
}

// call1 calls an entry point taking a single enum or name.
func call1(p *proc, a uint32) {
	p.call(nil, unsafe.Pointer(&a))
}

func (f *Functions) GenBuffer() driver.Buffer { return driver.Buffer(gen(&f.genBuffers)) }
func (f *Functions) DeleteBuffer(b driver.Buffer) { del(&f.deleteBuffers, uint32(b)) }
func (f *Functions) BindBuffer(target driver.Enum, b driver.Buffer) {
	bind2(&f.bindBuffer, uint32(target), uint32(b))
}

func (f *Functions) BufferData(target driver.Enum, size int, data []byte, usage driver.Enum) {
	t, u := uint32(target), uint32(usage)
	n := uint64(size)
	ptr := dataPtr(data)
	f.bufferData.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&n), unsafe.Pointer(&ptr), unsafe.Pointer(&u))
	runtime.KeepAlive(data)
}

func (f *Functions) GetBufferParameteri(target, pname driver.Enum) int {
	t, p := uint32(target), uint32(pname)
	var v int32
	ptr := unsafe.Pointer(&v)
	f.getBufferParameteriv.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&p), unsafe.Pointer(&ptr))
	return int(v)
}

func (f *Functions) GetBufferSubData(target driver.Enum, offset int, dst []byte) {
	t := uint32(target)
	off, n := uint64(offset), uint64(len(dst))
	ptr := dataPtr(dst)
	f.getBufferSubData.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&off), unsafe.Pointer(&n), unsafe.Pointer(&ptr))
	runtime.KeepAlive(dst)
}

func (f *Functions) GenTexture() driver.Texture { return driver.Texture(gen(&f.genTextures)) }
func (f *Functions) DeleteTexture(t driver.Texture) { del(&f.deleteTextures, uint32(t)) }
func (f *Functions) BindTexture(target driver.Enum, t driver.Texture) {
	bind2(&f.bindTexture, uint32(target), uint32(t))
}

func (f *Functions) TexImage2D(target driver.Enum, level int, internalFormat driver.Enum, width, height int, format, typ driver.Enum, data []byte) {
	t, fm, ty := uint32(target), uint32(format), uint32(typ)
	lv, in, w, h, border := int32(level), int32(internalFormat), int32(width), int32(height), int32(0)
	ptr := dataPtr(data)
	f.texImage2D.call(nil,
		unsafe.Pointer(&t), unsafe.Pointer(&lv), unsafe.Pointer(&in),
		unsafe.Pointer(&w), unsafe.Pointer(&h), unsafe.Pointer(&border),
		unsafe.Pointer(&fm), unsafe.Pointer(&ty), unsafe.Pointer(&ptr))
	runtime.KeepAlive(data)
}

func (f *Functions) TexImage3D(target driver.Enum, level int, internalFormat driver.Enum, width, height, depth int, format, typ driver.Enum, data []byte) {
	t, fm, ty := uint32(target), uint32(format), uint32(typ)
	lv, in, border := int32(level), int32(internalFormat), int32(0)
	w, h, d := int32(width), int32(height), int32(depth)
	ptr := dataPtr(data)
	f.texImage3D.call(nil,
		unsafe.Pointer(&t), unsafe.Pointer(&lv), unsafe.Pointer(&in),
		unsafe.Pointer(&w), unsafe.Pointer(&h), unsafe.Pointer(&d), unsafe.Pointer(&border),
		unsafe.Pointer(&fm), unsafe.Pointer(&ty), unsafe.Pointer(&ptr))
	runtime.KeepAlive(data)
}

func (f *Functions) TexParameteri(target, pname driver.Enum, param int) {
	t, p, v := uint32(target), uint32(pname), int32(param)
	f.texParameteri.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&p), unsafe.Pointer(&v))
}

func (f *Functions) GetTexImage(target driver.Enum, level int, format, typ driver.Enum, dst []byte) {
	t, fm, ty := uint32(target), uint32(format), uint32(typ)
	lv := int32(level)
	ptr := dataPtr(dst)
	f.getTexImage.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&lv), unsafe.Pointer(&fm), unsafe.Pointer(&ty), unsafe.Pointer(&ptr))
	runtime.KeepAlive(dst)
}

func (f *Functions) GenRenderbuffer() driver.Renderbuffer {
	return driver.Renderbuffer(gen(&f.genRenderbuffers))
}

func (f *Functions) DeleteRenderbuffer(r driver.Renderbuffer) {
	del(&f.deleteRenderbuffers, uint32(r))
}

func (f *Functions) BindRenderbuffer(target driver.Enum, r driver.Renderbuffer) {
	bind2(&f.bindRenderbuffer, uint32(target), uint32(r))
}

func (f *Functions) RenderbufferStorage(target, internalFormat driver.Enum, width, height int) {
	t, in := uint32(target), uint32(internalFormat)
	w, h := int32(width), int32(height)
	f.renderbufferStorage.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&in), unsafe.Pointer(&w), unsafe.Pointer(&h))
}

func (f *Functions) GenFramebuffer() driver.Framebuffer {
	return driver.Framebuffer(gen(&f.genFramebuffers))
}

func (f *Functions) DeleteFramebuffer(fb driver.Framebuffer) {
	del(&f.deleteFramebuffers, uint32(fb))
}

func (f *Functions) BindFramebuffer(target driver.Enum, fb driver.Framebuffer) {
	bind2(&f.bindFramebuffer, uint32(target), uint32(fb))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget driver.Enum, t driver.Texture, level int) {
	a, b, c, tex := uint32(target), uint32(attachment), uint32(texTarget), uint32(t)
	lv := int32(level)
	f.framebufferTexture2D.call(nil, unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c), unsafe.Pointer(&tex), unsafe.Pointer(&lv))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget driver.Enum, r driver.Renderbuffer) {
	a, b, c, rb := uint32(target), uint32(attachment), uint32(rbTarget), uint32(r)
	f.framebufferRenderbuffer.call(nil, unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c), unsafe.Pointer(&rb))
}

func (f *Functions) CheckFramebufferStatus(target driver.Enum) driver.Enum {
	t := uint32(target)
	var status uint32
	f.checkFramebufferStatus.call(unsafe.Pointer(&status), unsafe.Pointer(&t))
	return driver.Enum(status)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, typ driver.Enum, dst []byte) {
	x0, y0, w, h := int32(x), int32(y), int32(width), int32(height)
	fm, ty := uint32(format), uint32(typ)
	ptr := dataPtr(dst)
	f.readPixels.call(nil,
		unsafe.Pointer(&x0), unsafe.Pointer(&y0), unsafe.Pointer(&w), unsafe.Pointer(&h),
		unsafe.Pointer(&fm), unsafe.Pointer(&ty), unsafe.Pointer(&ptr))
	runtime.KeepAlive(dst)
}

func (f *Functions) GenVertexArray() driver.VertexArray {
	return driver.VertexArray(gen(&f.genVertexArrays))
}

func (f *Functions) DeleteVertexArray(v driver.VertexArray) {
	del(&f.deleteVertexArrays, uint32(v))
}

func (f *Functions) BindVertexArray(v driver.VertexArray) { call1(&f.bindVertexArray, uint32(v)) }

func (f *Functions) EnableVertexAttribArray(index int) {
	call1(&f.enableVertexAttribArray, uint32(index))
}

func (f *Functions) VertexAttribPointer(index, size int, typ driver.Enum, normalized bool, stride, offset int) {
	i, ty := uint32(index), uint32(typ)
	n, s := int32(size), int32(stride)
	var norm uint8
	if normalized {
		norm = 1
	}
	off := uintptr(offset)
	f.vertexAttribPointer.call(nil,
		unsafe.Pointer(&i), unsafe.Pointer(&n), unsafe.Pointer(&ty),
		unsafe.Pointer(&norm), unsafe.Pointer(&s), unsafe.Pointer(&off))
}

func (f *Functions) CreateShader(typ driver.Enum) driver.Shader {
	t := uint32(typ)
	var s uint32
	f.createShader.call(unsafe.Pointer(&s), unsafe.Pointer(&t))
	return driver.Shader(s)
}

func (f *Functions) ShaderSource(s driver.Shader, src string) {
	name, count := uint32(s), int32(1)
	text := append([]byte(src), 0)
	length := int32(len(src))
	str := unsafe.Pointer(&text[0])
	strs, lens := unsafe.Pointer(&str), unsafe.Pointer(&length)
	f.shaderSource.call(nil, unsafe.Pointer(&name), unsafe.Pointer(&count), unsafe.Pointer(&strs), unsafe.Pointer(&lens))
	runtime.KeepAlive(text)
}

func (f *Functions) CompileShader(s driver.Shader) { call1(&f.compileShader, uint32(s)) }

// getiv calls a glGet*iv entry point for an object.
func getiv(p *proc, name uint32, pname driver.Enum) int {
	pn := uint32(pname)
	var v int32
	ptr := unsafe.Pointer(&v)
	p.call(nil, unsafe.Pointer(&name), unsafe.Pointer(&pn), unsafe.Pointer(&ptr))
	return int(v)
}

// infoLog reads an info log of length bytes, including the terminator.
func infoLog(p *proc, name uint32, length int) string {
	if length <= 1 {
		return ""
	}
	buf := make([]byte, length)
	size := int32(length)
	var written int32
	wptr, bptr := unsafe.Pointer(&written), unsafe.Pointer(&buf[0])
	p.call(nil, unsafe.Pointer(&name), unsafe.Pointer(&size), unsafe.Pointer(&wptr), unsafe.Pointer(&bptr))
	return string(buf[:written])
}

func (f *Functions) GetShaderi(s driver.Shader, pname driver.Enum) int {
	return getiv(&f.getShaderiv, uint32(s), pname)
}

func (f *Functions) GetShaderInfoLog(s driver.Shader) string {
	return infoLog(&f.getShaderInfoLog, uint32(s), f.GetShaderi(s, driver.InfoLogLength))
}

func (f *Functions) DeleteShader(s driver.Shader) { call1(&f.deleteShader, uint32(s)) }

func (f *Functions) CreateProgram() driver.Program {
	var p uint32
	f.createProgram.call(unsafe.Pointer(&p))
	return driver.Program(p)
}

func (f *Functions) AttachShader(p driver.Program, s driver.Shader) {
	bind2(&f.attachShader, uint32(p), uint32(s))
}

func (f *Functions) LinkProgram(p driver.Program) { call1(&f.linkProgram, uint32(p)) }

func (f *Functions) GetProgrami(p driver.Program, pname driver.Enum) int {
	return getiv(&f.getProgramiv, uint32(p), pname)
}

func (f *Functions) GetProgramInfoLog(p driver.Program) string {
	return infoLog(&f.getProgramInfoLog, uint32(p), f.GetProgrami(p, driver.InfoLogLength))
}

func (f *Functions) UseProgram(p driver.Program) { call1(&f.useProgram, uint32(p)) }
func (f *Functions) DeleteProgram(p driver.Program) { call1(&f.deleteProgram, uint32(p)) }

func (f *Functions) Viewport(x, y, width, height int) {
	x0, y0, w, h := int32(x), int32(y), int32(width), int32(height)
	f.viewport.call(nil, unsafe.Pointer(&x0), unsafe.Pointer(&y0), unsafe.Pointer(&w), unsafe.Pointer(&h))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.clearColor.call(nil, unsafe.Pointer(&r), unsafe.Pointer(&g), unsafe.Pointer(&b), unsafe.Pointer(&a))
}

func (f *Functions) Clear(mask driver.Enum) { call1(&f.clear, uint32(mask)) }

func (f *Functions) DrawArrays(mode driver.Enum, first, count int) {
	m := uint32(mode)
	fst, n := int32(first), int32(count)
	f.drawArrays.call(nil, unsafe.Pointer(&m), unsafe.Pointer(&fst), unsafe.Pointer(&n))
}

func (f *Functions) DrawElements(mode driver.Enum, count int, typ driver.Enum, offset int) {
	m, ty := uint32(mode), uint32(typ)
	n := int32(count)
	off := uintptr(offset)
	f.drawElements.call(nil, unsafe.Pointer(&m), unsafe.Pointer(&n), unsafe.Pointer(&ty), unsafe.Pointer(&off))
}
