// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/gpuobj/driver"

// MaxVertexAttribs is the number of attribute slots per vertex array.
const MaxVertexAttribs = 16

// Attrib is the recorded state of one vertex attribute slot.
type Attrib struct {
	Enabled    bool
	Buffer     driver.Buffer
	Size       int
	Type       driver.Enum
	Normalized bool
	Stride     int
	Offset     int
}

type vertexArray struct {
	attribs  [MaxVertexAttribs]Attrib
	elements driver.Buffer
}

func newVertexArray() *vertexArray { return &vertexArray{} }

func (v *vertexArray) unbindBuffer(b driver.Buffer) {
	if v.elements == b {
		v.elements = 0
	}
	for i := range v.attribs {
		if v.attribs[i].Buffer == b {
			v.attribs[i].Buffer = 0
		}
	}
}

func (d *Device) boundVertexArray() *vertexArray {
	if v, ok := d.vertexArrays[d.vao]; ok {
		return v
	}
	return d.defaultVAO
}

func (d *Device) GenVertexArray() driver.VertexArray {
	if !d.live() {
		return 0
	}
	v := driver.VertexArray(d.genName())
	d.vertexArrays[v] = newVertexArray()
	return v
}

func (d *Device) DeleteVertexArray(v driver.VertexArray) {
	if !d.live() || v == 0 {
		return
	}
	d.deletes.VertexArrays++
	if _, ok := d.vertexArrays[v]; !ok {
		return
	}
	delete(d.vertexArrays, v)
	if d.vao == v {
		d.vao = 0
	}
}

func (d *Device) BindVertexArray(v driver.VertexArray) {
	if !d.live() {
		return
	}
	if _, ok := d.vertexArrays[v]; v != 0 && !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	d.vao = v
}

func (d *Device) EnableVertexAttribArray(index int) {
	if !d.live() {
		return
	}
	if d.vao == 0 {
		d.setError(driver.InvalidOperation)
		return
	}
	if index < 0 || index >= MaxVertexAttribs {
		d.setError(driver.InvalidValue)
		return
	}
	d.boundVertexArray().attribs[index].Enabled = true
}

func (d *Device) VertexAttribPointer(index, size int, typ driver.Enum, normalized bool, stride, offset int) {
	if !d.live() {
		return
	}
	if d.vao == 0 || d.arrayBuffer == 0 {
		d.setError(driver.InvalidOperation)
		return
	}
	if index < 0 || index >= MaxVertexAttribs || size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.setError(driver.InvalidValue)
		return
	}
	if driver.ComponentSize(typ) == 0 {
		d.setError(driver.InvalidEnum)
		return
	}
	a := &d.boundVertexArray().attribs[index]
	a.Buffer = d.arrayBuffer
	a.Size = size
	a.Type = typ
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

// VertexAttrib returns the recorded state of slot index in vertex array v.
func (d *Device) VertexAttrib(v driver.VertexArray, index int) (Attrib, bool) {
	va, ok := d.vertexArrays[v]
	if !ok || index < 0 || index >= MaxVertexAttribs {
		return Attrib{}, false
	}
	return va.attribs[index], true
}

// ElementBuffer returns the element buffer recorded in vertex array v.
func (d *Device) ElementBuffer(v driver.VertexArray) driver.Buffer {
	if v == 0 {
		return d.defaultVAO.elements
	}
	if va, ok := d.vertexArrays[v]; ok {
		return va.elements
	}
	return 0
}

func (d *Device) DrawArrays(mode driver.Enum, first, count int) {
	if !d.live() {
		return
	}
	if !d.drawable(mode, count) {
		return
	}
	if first < 0 {
		d.setError(driver.InvalidValue)
		return
	}
	d.record(DrawCall{Mode: mode, First: first, Count: count})
}

func (d *Device) DrawElements(mode driver.Enum, count int, typ driver.Enum, offset int) {
	if !d.live() {
		return
	}
	if !d.drawable(mode, count) {
		return
	}
	switch typ {
	case driver.UnsignedByte, driver.UnsignedShort, driver.UnsignedInt:
	default:
		d.setError(driver.InvalidEnum)
		return
	}
	el, ok := d.buffers[d.boundVertexArray().elements]
	if !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	if offset < 0 || offset+count*driver.ComponentSize(typ) > len(el.data) {
		d.setError(driver.InvalidOperation)
		return
	}
	d.record(DrawCall{Mode: mode, Count: count, Indexed: true, IndexType: typ, Offset: offset})
}

// drawable validates the state every draw needs.
func (d *Device) drawable(mode driver.Enum, count int) bool {
	if mode > driver.TriangleFan {
		d.setError(driver.InvalidEnum)
		return false
	}
	if count < 0 {
		d.setError(driver.InvalidValue)
		return false
	}
	p, ok := d.programs[d.current]
	if !ok || !p.linked || d.vao == 0 {
		d.setError(driver.InvalidOperation)
		return false
	}
	if d.drawFB != 0 && d.CheckFramebufferStatus(driver.DrawFramebuffer) != driver.FramebufferComplete {
		d.setError(driver.InvalidOperation)
		return false
	}
	return true
}

func (d *Device) record(call DrawCall) {
	call.Program = d.current
	call.VertexArray = d.vao
	call.Framebuffer = d.drawFB
	call.Viewport = d.viewport
	d.draws = append(d.draws, call)
}
