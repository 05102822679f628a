// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/gpuobj/driver"

type attachment struct {
	texture      driver.Texture
	renderbuffer driver.Renderbuffer
}

type framebuffer struct {
	attachments map[driver.Enum]attachment
}

func (f *framebuffer) detachTexture(t driver.Texture) {
	for point, a := range f.attachments {
		if a.texture == t {
			delete(f.attachments, point)
		}
	}
}

func (f *framebuffer) detachRenderbuffer(r driver.Renderbuffer) {
	for point, a := range f.attachments {
		if a.renderbuffer == r {
			delete(f.attachments, point)
		}
	}
}

func isColorAttachment(point driver.Enum) bool {
	return point >= driver.ColorAttachment0 && point < driver.ColorAttachment0+driver.MaxColorAttachments
}

func (d *Device) GenFramebuffer() driver.Framebuffer {
	if !d.live() {
		return 0
	}
	f := driver.Framebuffer(d.genName())
	d.framebuffers[f] = &framebuffer{attachments: make(map[driver.Enum]attachment)}
	return f
}

func (d *Device) DeleteFramebuffer(f driver.Framebuffer) {
	if !d.live() || f == 0 {
		return
	}
	d.deletes.Framebuffers++
	if _, ok := d.framebuffers[f]; !ok {
		return
	}
	delete(d.framebuffers, f)
	if d.drawFB == f {
		d.drawFB = 0
	}
	if d.readFB == f {
		d.readFB = 0
	}
}

func (d *Device) BindFramebuffer(target driver.Enum, f driver.Framebuffer) {
	if !d.live() {
		return
	}
	if _, ok := d.framebuffers[f]; f != 0 && !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	switch target {
	case driver.FramebufferTarget:
		d.drawFB, d.readFB = f, f
	case driver.DrawFramebuffer:
		d.drawFB = f
	case driver.ReadFramebuffer:
		d.readFB = f
	default:
		d.setError(driver.InvalidEnum)
	}
}

// framebufferAt resolves the framebuffer object bound to target. It returns
// nil without error for the default framebuffer.
func (d *Device) framebufferAt(target driver.Enum) (*framebuffer, bool) {
	var name driver.Framebuffer
	switch target {
	case driver.FramebufferTarget, driver.DrawFramebuffer:
		name = d.drawFB
	case driver.ReadFramebuffer:
		name = d.readFB
	default:
		d.setError(driver.InvalidEnum)
		return nil, false
	}
	if name == 0 {
		return nil, true
	}
	return d.framebuffers[name], true
}

func (d *Device) FramebufferTexture2D(target, point, texTarget driver.Enum, t driver.Texture, level int) {
	if !d.live() {
		return
	}
	fb, ok := d.framebufferAt(target)
	if !ok {
		return
	}
	if fb == nil || level != 0 {
		d.setError(driver.InvalidOperation)
		return
	}
	if t == 0 {
		delete(fb.attachments, point)
		return
	}
	tex, ok := d.textures[t]
	if !ok || texTarget != driver.Texture2D || tex.target != driver.Texture2D {
		d.setError(driver.InvalidOperation)
		return
	}
	fb.attachments[point] = attachment{texture: t}
}

func (d *Device) FramebufferRenderbuffer(target, point, rbTarget driver.Enum, r driver.Renderbuffer) {
	if !d.live() {
		return
	}
	fb, ok := d.framebufferAt(target)
	if !ok {
		return
	}
	if fb == nil || rbTarget != driver.RenderbufferTarget {
		d.setError(driver.InvalidOperation)
		return
	}
	if r == 0 {
		delete(fb.attachments, point)
		return
	}
	if _, ok := d.renderbuffers[r]; !ok {
		d.setError(driver.InvalidOperation)
		return
	}
	fb.attachments[point] = attachment{renderbuffer: r}
}

// storage resolves the image behind an attachment.
func (d *Device) storage(a attachment) *texture {
	if a.texture != 0 {
		return d.textures[a.texture]
	}
	if rb, ok := d.renderbuffers[a.renderbuffer]; ok {
		return &rb.storage
	}
	return nil
}

func (d *Device) CheckFramebufferStatus(target driver.Enum) driver.Enum {
	if !d.live() {
		return 0
	}
	fb, ok := d.framebufferAt(target)
	if !ok {
		return 0
	}
	if fb == nil {
		return driver.FramebufferComplete
	}
	if len(fb.attachments) == 0 {
		return driver.FramebufferMissing
	}
	for point, a := range fb.attachments {
		img := d.storage(a)
		if img == nil || img.width == 0 || img.height == 0 {
			return driver.FramebufferIncomplete
		}
		depth := driver.IsDepthFormat(img.internal)
		if isColorAttachment(point) == depth {
			return driver.FramebufferIncomplete
		}
	}
	return driver.FramebufferComplete
}

func (d *Device) ClearColor(r, g, b, a float32) {
	if !d.live() {
		return
	}
	d.clearColor = [4]float64{float64(r), float64(g), float64(b), float64(a)}
}

func (d *Device) Clear(mask driver.Enum) {
	if !d.live() {
		return
	}
	fb, ok := d.framebufferAt(driver.DrawFramebuffer)
	if !ok {
		return
	}
	if fb == nil {
		if mask&driver.ColorBufferBit != 0 {
			fill(d.backbuffer.data, d.backbuffer.layout, d.clearColor, d.backbuffer.texels())
		}
		return
	}
	for point, a := range fb.attachments {
		img := d.storage(a)
		if img == nil {
			continue
		}
		switch {
		case isColorAttachment(point) && mask&driver.ColorBufferBit != 0:
			fill(img.data, img.layout, d.clearColor, img.texels())
		case point == driver.DepthAttachment && mask&driver.DepthBufferBit != 0:
			fill(img.data, img.layout, [4]float64{1, 0, 0, 1}, img.texels())
		}
	}
}

func (d *Device) ReadPixels(x, y, width, height int, format, typ driver.Enum, dst []byte) {
	if !d.live() {
		return
	}
	fb, ok := d.framebufferAt(driver.ReadFramebuffer)
	if !ok {
		return
	}
	img := d.backbuffer
	if fb != nil {
		a, ok := fb.attachments[driver.ColorAttachment0]
		if !ok {
			d.setError(driver.InvalidOperation)
			return
		}
		img = d.storage(a)
	}
	out, ok := transferLayout(format, typ)
	if !ok {
		d.setError(driver.InvalidEnum)
		return
	}
	if x < 0 || y < 0 || width < 0 || height < 0 || x+width > img.width || y+height > img.height {
		d.setError(driver.InvalidValue)
		return
	}
	if len(dst) < width*height*out.texelSize() {
		d.setError(driver.InvalidOperation)
		return
	}
	srcRow := img.width * img.layout.texelSize()
	dstRow := width * out.texelSize()
	for row := 0; row < height; row++ {
		src := img.data[(y+row)*srcRow+x*img.layout.texelSize():]
		convert(dst[row*dstRow:], out, src, img.layout, width)
	}
}
