// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gpuobj/driver"
)

// layout describes how texels are encoded in a byte slice.
type layout struct {
	channels int
	typ      driver.Enum
	// integer means components are raw integers rather than normalized
	// fixed point.
	integer bool
}

func (l layout) texelSize() int {
	return l.channels * driver.ComponentSize(l.typ)
}

// storageLayout derives the texel layout of a sized internal format.
func storageLayout(internal driver.Enum) (layout, bool) {
	channels, typ, ok := driver.InternalFormatInfo(internal)
	if !ok {
		return layout{}, false
	}
	l := layout{channels: channels, typ: typ}
	switch internal {
	case driver.R8, driver.RG8, driver.RGB8, driver.RGBA8:
	case driver.R16F, driver.RG16F, driver.RGB16F, driver.RGBA16F,
		driver.R32F, driver.RG32F, driver.RGB32F, driver.RGBA32F, driver.DepthComponent32F:
	default:
		l.integer = !driver.IsDepthFormat(internal)
	}
	return l, true
}

// transferLayout derives the texel layout of a client transfer pair.
func transferLayout(format, typ driver.Enum) (layout, bool) {
	channels := driver.FormatChannels(format)
	if channels == 0 || driver.ComponentSize(typ) == 0 {
		return layout{}, false
	}
	integer := false
	switch format {
	case driver.RedInteger, driver.RGInteger, driver.RGBInteger, driver.RGBAInteger:
		integer = true
	}
	return layout{channels: channels, typ: typ, integer: integer}, true
}

// convert re-encodes count texels from src in layout from into dst in
// layout to. Missing channels take the (0, 0, 0, 1) defaults.
func convert(dst []byte, to layout, src []byte, from layout, count int) {
	if to == from {
		copy(dst, src[:count*from.texelSize()])
		return
	}
	fromSize := driver.ComponentSize(from.typ)
	toSize := driver.ComponentSize(to.typ)
	var texel [4]float64
	for i := 0; i < count; i++ {
		texel = [4]float64{0, 0, 0, 1}
		base := i * from.texelSize()
		for c := 0; c < from.channels && c < 4; c++ {
			texel[c] = decode(src[base+c*fromSize:], from.typ, from.integer)
		}
		base = i * to.texelSize()
		for c := 0; c < to.channels; c++ {
			encode(dst[base+c*toSize:], to.typ, to.integer, texel[c])
		}
	}
}

// fill writes count copies of texel into dst.
func fill(dst []byte, to layout, texel [4]float64, count int) {
	size := driver.ComponentSize(to.typ)
	for i := 0; i < count; i++ {
		base := i * to.texelSize()
		for c := 0; c < to.channels; c++ {
			encode(dst[base+c*size:], to.typ, to.integer, texel[c])
		}
	}
}

func decode(b []byte, typ driver.Enum, integer bool) float64 {
	switch typ {
	case driver.UnsignedByte:
		if integer {
			return float64(b[0])
		}
		return float64(b[0]) / math.MaxUint8
	case driver.Byte:
		if integer {
			return float64(int8(b[0]))
		}
		return math.Max(float64(int8(b[0]))/math.MaxInt8, -1)
	case driver.UnsignedShort:
		v := binary.LittleEndian.Uint16(b)
		if integer {
			return float64(v)
		}
		return float64(v) / math.MaxUint16
	case driver.Short:
		v := int16(binary.LittleEndian.Uint16(b))
		if integer {
			return float64(v)
		}
		return math.Max(float64(v)/math.MaxInt16, -1)
	case driver.UnsignedInt:
		v := binary.LittleEndian.Uint32(b)
		if integer {
			return float64(v)
		}
		return float64(v) / math.MaxUint32
	case driver.Int:
		v := int32(binary.LittleEndian.Uint32(b))
		if integer {
			return float64(v)
		}
		return math.Max(float64(v)/math.MaxInt32, -1)
	case driver.HalfFloat:
		return float64(halfToFloat(binary.LittleEndian.Uint16(b)))
	case driver.Float:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return 0
}

func encode(b []byte, typ driver.Enum, integer bool, v float64) {
	switch typ {
	case driver.UnsignedByte:
		b[0] = uint8(quantize(v, integer, 0, math.MaxUint8))
	case driver.Byte:
		b[0] = uint8(int8(quantize(v, integer, -math.MaxInt8, math.MaxInt8)))
	case driver.UnsignedShort:
		binary.LittleEndian.PutUint16(b, uint16(quantize(v, integer, 0, math.MaxUint16)))
	case driver.Short:
		binary.LittleEndian.PutUint16(b, uint16(int16(quantize(v, integer, -math.MaxInt16, math.MaxInt16))))
	case driver.UnsignedInt:
		binary.LittleEndian.PutUint32(b, uint32(quantize(v, integer, 0, math.MaxUint32)))
	case driver.Int:
		binary.LittleEndian.PutUint32(b, uint32(int32(quantize(v, integer, -math.MaxInt32, math.MaxInt32))))
	case driver.HalfFloat:
		binary.LittleEndian.PutUint16(b, floatToHalf(float32(v)))
	case driver.Float:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	}
}

// quantize maps v onto the integer range [lo, hi]. Normalized values are
// scaled by hi first.
func quantize(v float64, integer bool, lo, hi float64) int64 {
	if !integer {
		v = math.Max(math.Min(v, 1), lo/hi) * hi
	}
	return int64(math.Round(math.Max(math.Min(v, hi), lo)))
}

func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff
	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: renormalize.
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &= 0x3ff
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
}

func floatToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23)&0xff - 127 + 15
	mant := bits & 0x7fffff
	switch {
	case int32(bits>>23)&0xff == 0xff:
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exp >= 0x1f:
		return sign | 0x7c00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		return sign | uint16(mant>>uint(14-exp))
	}
	return sign | uint16(exp)<<10 | uint16(mant>>13)
}
