// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/gpuobj/driver"

type buffer struct {
	data  []byte
	usage driver.Enum
}

func (d *Device) GenBuffer() driver.Buffer {
	if !d.live() {
		return 0
	}
	b := driver.Buffer(d.genName())
	d.buffers[b] = &buffer{}
	return b
}

func (d *Device) DeleteBuffer(b driver.Buffer) {
	if !d.live() || b == 0 {
		return
	}
	d.deletes.Buffers++
	if _, ok := d.buffers[b]; !ok {
		return
	}
	delete(d.buffers, b)
	if d.arrayBuffer == b {
		d.arrayBuffer = 0
	}
	d.defaultVAO.unbindBuffer(b)
	for _, v := range d.vertexArrays {
		v.unbindBuffer(b)
	}
}

func (d *Device) BindBuffer(target driver.Enum, b driver.Buffer) {
	if !d.live() {
		return
	}
	if b != 0 {
		if _, ok := d.buffers[b]; !ok {
			d.setError(driver.InvalidOperation)
			return
		}
	}
	switch target {
	case driver.ArrayBuffer:
		d.arrayBuffer = b
	case driver.ElementArrayBuffer:
		d.boundVertexArray().elements = b
	default:
		d.setError(driver.InvalidEnum)
	}
}

// bufferAt resolves the buffer bound to target.
func (d *Device) bufferAt(target driver.Enum) *buffer {
	var name driver.Buffer
	switch target {
	case driver.ArrayBuffer:
		name = d.arrayBuffer
	case driver.ElementArrayBuffer:
		name = d.boundVertexArray().elements
	default:
		d.setError(driver.InvalidEnum)
		return nil
	}
	buf, ok := d.buffers[name]
	if !ok {
		d.setError(driver.InvalidOperation)
		return nil
	}
	return buf
}

func (d *Device) BufferData(target driver.Enum, size int, data []byte, usage driver.Enum) {
	if !d.live() {
		return
	}
	buf := d.bufferAt(target)
	if buf == nil {
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		d.setError(driver.InvalidValue)
		return
	}
	d.bufferAllocs++
	buf.data = make([]byte, size)
	copy(buf.data, data)
	buf.usage = usage
}

func (d *Device) GetBufferParameteri(target, pname driver.Enum) int {
	if !d.live() {
		return 0
	}
	buf := d.bufferAt(target)
	if buf == nil {
		return 0
	}
	if pname != driver.BufferSize {
		d.setError(driver.InvalidEnum)
		return 0
	}
	return len(buf.data)
}

func (d *Device) GetBufferSubData(target driver.Enum, offset int, dst []byte) {
	if !d.live() {
		return
	}
	buf := d.bufferAt(target)
	if buf == nil {
		return
	}
	if offset < 0 || offset+len(dst) > len(buf.data) {
		d.setError(driver.InvalidValue)
		return
	}
	copy(dst, buf.data[offset:])
}

// BoundBuffer returns the buffer bound to target, or 0.
func (d *Device) BoundBuffer(target driver.Enum) driver.Buffer {
	switch target {
	case driver.ArrayBuffer:
		return d.arrayBuffer
	case driver.ElementArrayBuffer:
		return d.boundVertexArray().elements
	}
	return 0
}
