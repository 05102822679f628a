// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuobj/driver"
)

const bufferUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageIndex |
	gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst

const textureUsage = gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst |
	gputypes.TextureUsageTextureBinding

type mirrorBuffer struct {
	buf  hal.Buffer
	size uint64
}

type mirrorTexture struct {
	tex    hal.Texture
	format gputypes.TextureFormat
	size   hal.Extent3D
}

// alignCopy rounds n up to the 4-byte granularity of queue writes.
func alignCopy(n int) int { return (n + 3) &^ 3 }

func (d *Device) DeleteBuffer(b driver.Buffer) {
	d.Device.DeleteBuffer(b)
	if !d.Destroyed() {
		d.dropBuffer(b)
	}
}

func (d *Device) dropBuffer(b driver.Buffer) {
	if m, ok := d.buffers[b]; ok {
		d.hal.DestroyBuffer(m.buf)
		delete(d.buffers, b)
	}
}

func (d *Device) BufferData(target driver.Enum, size int, data []byte, usage driver.Enum) {
	d.Device.BufferData(target, size, data, usage)
	if d.Destroyed() || size < 0 || (data != nil && len(data) < size) {
		return
	}
	name := d.BoundBuffer(target)
	if name == 0 {
		return
	}
	d.dropBuffer(name)
	if size == 0 {
		return
	}

	padded := alignCopy(size)
	buf, err := d.hal.CreateBuffer(&hal.BufferDescriptor{
		Label: "gpuobj buffer",
		Size:  uint64(padded),
		Usage: bufferUsage,
	})
	if err != nil {
		d.fail("create buffer", err)
		return
	}
	d.buffers[name] = &mirrorBuffer{buf: buf, size: uint64(padded)}
	if data == nil {
		return
	}

	src := data[:size]
	if padded != size {
		src = make([]byte, padded)
		copy(src, data)
	}
	if err := d.queue.WriteBuffer(buf, 0, src); err != nil {
		d.fail("write buffer", err)
	}
}

// Buffer returns the HAL buffer mirroring b, or nil if b holds no storage.
func (d *Device) Buffer(b driver.Buffer) hal.Buffer {
	if m, ok := d.buffers[b]; ok {
		return m.buf
	}
	return nil
}

func (d *Device) DeleteTexture(t driver.Texture) {
	d.Device.DeleteTexture(t)
	if !d.Destroyed() {
		d.dropTexture(t)
	}
}

func (d *Device) dropTexture(t driver.Texture) {
	if m, ok := d.textures[t]; ok {
		d.hal.DestroyTexture(m.tex)
		delete(d.textures, t)
	}
}

func (d *Device) TexImage2D(target driver.Enum, level int, internalFormat driver.Enum, width, height int, format, typ driver.Enum, data []byte) {
	d.Device.TexImage2D(target, level, internalFormat, width, height, format, typ, data)
	if target == driver.Texture2D {
		d.mirrorTexture(target, level, internalFormat, width, height, 1, data != nil)
	}
}

func (d *Device) TexImage3D(target driver.Enum, level int, internalFormat driver.Enum, width, height, depth int, format, typ driver.Enum, data []byte) {
	d.Device.TexImage3D(target, level, internalFormat, width, height, depth, format, typ, data)
	if target == driver.Texture3D {
		d.mirrorTexture(target, level, internalFormat, width, height, depth, data != nil)
	}
}

// mirrorTexture recreates the HAL texture bound to target after the shadow
// accepted new storage, and copies the shadow contents when write is set.
func (d *Device) mirrorTexture(target driver.Enum, level int, internal driver.Enum, w, h, depth int, write bool) {
	if d.Destroyed() || level != 0 || w < 0 || h < 0 || depth < 0 {
		return
	}
	name := d.BoundTexture(target)
	if name == 0 {
		return
	}
	d.dropTexture(name)

	format, ok := TextureFormat(internal)
	if !ok {
		d.log.Debug("wgpu: texture kept host only", "texture", name, "internal", internal)
		return
	}
	if w == 0 || h == 0 || depth == 0 {
		return
	}

	dim := gputypes.TextureDimension2D
	usage := textureUsage | gputypes.TextureUsageRenderAttachment
	if target == driver.Texture3D {
		dim = gputypes.TextureDimension3D
		usage = textureUsage
	}
	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: uint32(depth)}
	tex, err := d.hal.CreateTexture(&hal.TextureDescriptor{
		Label:         "gpuobj texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     dim,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		d.fail("create texture", err)
		return
	}
	d.textures[name] = &mirrorTexture{tex: tex, format: format, size: size}
	if !write {
		return
	}

	// Read the stored texels back in storage layout so the HAL copy matches
	// after any conversion the shadow applied.
	channels, typ, _ := driver.InternalFormatInfo(internal)
	texel := channels * driver.ComponentSize(typ)
	pixels := make([]byte, w*h*depth*texel)
	d.Device.GetTexImage(target, 0, transferFormat(channels, integerFormat(internal)), typ, pixels)

	err = d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		pixels,
		&hal.ImageDataLayout{BytesPerRow: uint32(w * texel), RowsPerImage: uint32(h)},
		&size,
	)
	if err != nil {
		d.fail("write texture", err)
	}
}

// Texture returns the HAL texture mirroring t, or nil if t is host only.
func (d *Device) Texture(t driver.Texture) hal.Texture {
	if m, ok := d.textures[t]; ok {
		return m.tex
	}
	return nil
}
