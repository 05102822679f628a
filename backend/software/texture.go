// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/gpuobj/driver"

type texture struct {
	target   driver.Enum
	internal driver.Enum
	layout   layout
	width    int
	height   int
	depth    int
	data     []byte
	params   map[driver.Enum]int
}

func (t *texture) alloc(internal driver.Enum, w, h, depth int) bool {
	l, ok := storageLayout(internal)
	if !ok {
		return false
	}
	t.internal = internal
	t.layout = l
	t.width, t.height, t.depth = w, h, depth
	t.data = make([]byte, w*h*depth*l.texelSize())
	return true
}

func (t *texture) texels() int { return t.width * t.height * t.depth }

type renderbuffer struct {
	storage texture
}

func (d *Device) GenTexture() driver.Texture {
	if !d.live() {
		return 0
	}
	t := driver.Texture(d.genName())
	d.textures[t] = &texture{params: make(map[driver.Enum]int)}
	return t
}

func (d *Device) DeleteTexture(t driver.Texture) {
	if !d.live() || t == 0 {
		return
	}
	d.deletes.Textures++
	if _, ok := d.textures[t]; !ok {
		return
	}
	delete(d.textures, t)
	for target, bound := range d.boundTexture {
		if bound == t {
			delete(d.boundTexture, target)
		}
	}
	for _, fb := range d.framebuffers {
		fb.detachTexture(t)
	}
}

func (d *Device) BindTexture(target driver.Enum, t driver.Texture) {
	if !d.live() {
		return
	}
	if target != driver.Texture2D && target != driver.Texture3D {
		d.setError(driver.InvalidEnum)
		return
	}
	if t != 0 {
		tex, ok := d.textures[t]
		if !ok {
			d.setError(driver.InvalidOperation)
			return
		}
		// A texture keeps the target it was first bound to.
		if tex.target == 0 {
			tex.target = target
		} else if tex.target != target {
			d.setError(driver.InvalidOperation)
			return
		}
	}
	d.boundTexture[target] = t
}

func (d *Device) textureAt(target driver.Enum) *texture {
	if target != driver.Texture2D && target != driver.Texture3D {
		d.setError(driver.InvalidEnum)
		return nil
	}
	tex, ok := d.textures[d.boundTexture[target]]
	if !ok {
		d.setError(driver.InvalidOperation)
		return nil
	}
	return tex
}

func (d *Device) TexImage2D(target driver.Enum, level int, internalFormat driver.Enum, width, height int, format, typ driver.Enum, data []byte) {
	if !d.live() {
		return
	}
	if target != driver.Texture2D {
		d.setError(driver.InvalidEnum)
		return
	}
	d.texImage(target, level, internalFormat, width, height, 1, format, typ, data)
}

func (d *Device) TexImage3D(target driver.Enum, level int, internalFormat driver.Enum, width, height, depth int, format, typ driver.Enum, data []byte) {
	if !d.live() {
		return
	}
	if target != driver.Texture3D {
		d.setError(driver.InvalidEnum)
		return
	}
	d.texImage(target, level, internalFormat, width, height, depth, format, typ, data)
}

func (d *Device) texImage(target driver.Enum, level int, internal driver.Enum, w, h, depth int, format, typ driver.Enum, data []byte) {
	tex := d.textureAt(target)
	if tex == nil {
		return
	}
	if level != 0 {
		// Only the base level is stored.
		return
	}
	if w < 0 || h < 0 || depth < 0 {
		d.setError(driver.InvalidValue)
		return
	}
	src, ok := transferLayout(format, typ)
	if !ok {
		d.setError(driver.InvalidEnum)
		return
	}
	if !tex.alloc(internal, w, h, depth) {
		d.setError(driver.InvalidValue)
		return
	}
	if data == nil {
		return
	}
	if len(data) < tex.texels()*src.texelSize() {
		d.setError(driver.InvalidOperation)
		return
	}
	convert(tex.data, tex.layout, data, src, tex.texels())
}

func (d *Device) TexParameteri(target, pname driver.Enum, param int) {
	if !d.live() {
		return
	}
	tex := d.textureAt(target)
	if tex == nil {
		return
	}
	tex.params[pname] = param
}

func (d *Device) GetTexImage(target driver.Enum, level int, format, typ driver.Enum, dst []byte) {
	if !d.live() {
		return
	}
	tex := d.textureAt(target)
	if tex == nil || level != 0 {
		return
	}
	out, ok := transferLayout(format, typ)
	if !ok {
		d.setError(driver.InvalidEnum)
		return
	}
	if len(dst) < tex.texels()*out.texelSize() {
		d.setError(driver.InvalidOperation)
		return
	}
	convert(dst, out, tex.data, tex.layout, tex.texels())
}

// BoundTexture returns the texture bound to target, or 0.
func (d *Device) BoundTexture(target driver.Enum) driver.Texture {
	return d.boundTexture[target]
}

// TexParameter returns a parameter previously set on texture t.
func (d *Device) TexParameter(t driver.Texture, pname driver.Enum) (int, bool) {
	tex, ok := d.textures[t]
	if !ok {
		return 0, false
	}
	v, ok := tex.params[pname]
	return v, ok
}

func (d *Device) GenRenderbuffer() driver.Renderbuffer {
	if !d.live() {
		return 0
	}
	r := driver.Renderbuffer(d.genName())
	d.renderbuffers[r] = &renderbuffer{}
	return r
}

func (d *Device) DeleteRenderbuffer(r driver.Renderbuffer) {
	if !d.live() || r == 0 {
		return
	}
	d.deletes.Renderbuffers++
	if _, ok := d.renderbuffers[r]; !ok {
		return
	}
	delete(d.renderbuffers, r)
	if d.renderbuf == r {
		d.renderbuf = 0
	}
	for _, fb := range d.framebuffers {
		fb.detachRenderbuffer(r)
	}
}

func (d *Device) BindRenderbuffer(target driver.Enum, r driver.Renderbuffer) {
	if !d.live() {
		return
	}
	if target != driver.RenderbufferTarget {
		d.setError(driver.InvalidEnum)
		return
	}
	if _, ok := d.renderbuffers[r]; r != 0 && !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	d.renderbuf = r
}

func (d *Device) RenderbufferStorage(target, internalFormat driver.Enum, width, height int) {
	if !d.live() {
		return
	}
	if target != driver.RenderbufferTarget {
		d.setError(driver.InvalidEnum)
		return
	}
	rb, ok := d.renderbuffers[d.renderbuf]
	if !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	if width < 0 || height < 0 {
		d.setError(driver.InvalidValue)
		return
	}
	if !rb.storage.alloc(internalFormat, width, height, 1) {
		d.setError(driver.InvalidEnum)
	}
}

// RenderbufferSize returns the storage size and format of renderbuffer r.
func (d *Device) RenderbufferSize(r driver.Renderbuffer) (width, height int, internal driver.Enum, ok bool) {
	rb, ok := d.renderbuffers[r]
	if !ok {
		return 0, 0, 0, false
	}
	return rb.storage.width, rb.storage.height, rb.storage.internal, true
}
