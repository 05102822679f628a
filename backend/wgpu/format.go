// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuobj/driver"
)

var textureFormats = map[driver.Enum]gputypes.TextureFormat{
	driver.R8:    gputypes.TextureFormatR8Unorm,
	driver.RG8:   gputypes.TextureFormatRG8Unorm,
	driver.RGBA8: gputypes.TextureFormatRGBA8Unorm,

	driver.R8I:    gputypes.TextureFormatR8Sint,
	driver.RG8I:   gputypes.TextureFormatRG8Sint,
	driver.RGBA8I: gputypes.TextureFormatRGBA8Sint,

	driver.R16UI:    gputypes.TextureFormatR16Uint,
	driver.RG16UI:   gputypes.TextureFormatRG16Uint,
	driver.RGBA16UI: gputypes.TextureFormatRGBA16Uint,
	driver.R16I:     gputypes.TextureFormatR16Sint,
	driver.RG16I:    gputypes.TextureFormatRG16Sint,
	driver.RGBA16I:  gputypes.TextureFormatRGBA16Sint,

	driver.R32UI:    gputypes.TextureFormatR32Uint,
	driver.RG32UI:   gputypes.TextureFormatRG32Uint,
	driver.RGBA32UI: gputypes.TextureFormatRGBA32Uint,
	driver.R32I:     gputypes.TextureFormatR32Sint,
	driver.RG32I:    gputypes.TextureFormatRG32Sint,
	driver.RGBA32I:  gputypes.TextureFormatRGBA32Sint,

	driver.R16F:    gputypes.TextureFormatR16Float,
	driver.RG16F:   gputypes.TextureFormatRG16Float,
	driver.RGBA16F: gputypes.TextureFormatRGBA16Float,
	driver.R32F:    gputypes.TextureFormatR32Float,
	driver.RG32F:   gputypes.TextureFormatRG32Float,
	driver.RGBA32F: gputypes.TextureFormatRGBA32Float,

	driver.DepthComponent16:  gputypes.TextureFormatDepth16Unorm,
	driver.DepthComponent24:  gputypes.TextureFormatDepth24Plus,
	driver.DepthComponent32F: gputypes.TextureFormatDepth32Float,
	driver.Depth24Stencil8:   gputypes.TextureFormatDepth24PlusStencil8,
}

// TextureFormat returns the WebGPU format storing a GL sized internal
// format. Three channel formats report false.
func TextureFormat(internal driver.Enum) (gputypes.TextureFormat, bool) {
	f, ok := textureFormats[internal]
	return f, ok
}

// integerFormat reports whether internal stores unnormalized integers.
func integerFormat(internal driver.Enum) bool {
	_, typ, ok := driver.InternalFormatInfo(internal)
	if !ok {
		return false
	}
	switch typ {
	case driver.UnsignedByte, driver.HalfFloat, driver.Float:
		return false
	}
	return !driver.IsDepthFormat(internal)
}

func transferFormat(channels int, integer bool) driver.Enum {
	formats := [...]driver.Enum{driver.Red, driver.RG, driver.RGB, driver.RGBA}
	if integer {
		formats = [...]driver.Enum{driver.RedInteger, driver.RGInteger, driver.RGBInteger, driver.RGBAInteger}
	}
	if channels < 1 || channels > len(formats) {
		return driver.RGBA
	}
	return formats[channels-1]
}
