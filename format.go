package gpuobj

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpuobj/driver"
)

// ColorFormat is the channel layout of an element. Its value is the channel
// count.
type ColorFormat uint8

const (
	R ColorFormat = iota + 1
	RG
	RGB
	RGBA
)

// Channels returns the number of channels.
func (c ColorFormat) Channels() int {
	c.mustValid()
	return int(c)
}

func (c ColorFormat) String() string {
	switch c {
	case R:
		return "R"
	case RG:
		return "RG"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("ColorFormat(%d)", uint8(c))
	}
}

func (c ColorFormat) mustValid() {
	if c < R || c > RGBA {
		panic(fmt.Sprintf("gpuobj: invalid %v", c))
	}
}

// ComponentType is the numeric type of one channel.
type ComponentType uint8

const (
	U8 ComponentType = iota
	I8
	U16
	I16
	U32
	I32
	F16
	F32
	componentTypeCount
)

type componentInfo struct {
	name string
	size int
	typ  driver.Enum
	// internal lists the sized internal formats for 1..4 channels.
	internal [4]driver.Enum
	// integer components transfer with the *_INTEGER formats.
	integer bool
	// webgpu lists the WebGPU formats for R, RG and RGBA layouts.
	webgpu [3]gputypes.TextureFormat
}

var components = [componentTypeCount]componentInfo{
	U8: {"U8", 1, driver.UnsignedByte,
		[4]driver.Enum{driver.R8, driver.RG8, driver.RGB8, driver.RGBA8}, false,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR8Unorm, gputypes.TextureFormatRG8Unorm, gputypes.TextureFormatRGBA8Unorm}},
	I8: {"I8", 1, driver.Byte,
		[4]driver.Enum{driver.R8I, driver.RG8I, driver.RGB8I, driver.RGBA8I}, true,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR8Sint, gputypes.TextureFormatRG8Sint, gputypes.TextureFormatRGBA8Sint}},
	U16: {"U16", 2, driver.UnsignedShort,
		[4]driver.Enum{driver.R16UI, driver.RG16UI, driver.RGB16UI, driver.RGBA16UI}, true,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR16Uint, gputypes.TextureFormatRG16Uint, gputypes.TextureFormatRGBA16Uint}},
	I16: {"I16", 2, driver.Short,
		[4]driver.Enum{driver.R16I, driver.RG16I, driver.RGB16I, driver.RGBA16I}, true,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR16Sint, gputypes.TextureFormatRG16Sint, gputypes.TextureFormatRGBA16Sint}},
	U32: {"U32", 4, driver.UnsignedInt,
		[4]driver.Enum{driver.R32UI, driver.RG32UI, driver.RGB32UI, driver.RGBA32UI}, true,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR32Uint, gputypes.TextureFormatRG32Uint, gputypes.TextureFormatRGBA32Uint}},
	I32: {"I32", 4, driver.Int,
		[4]driver.Enum{driver.R32I, driver.RG32I, driver.RGB32I, driver.RGBA32I}, true,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR32Sint, gputypes.TextureFormatRG32Sint, gputypes.TextureFormatRGBA32Sint}},
	F16: {"F16", 2, driver.HalfFloat,
		[4]driver.Enum{driver.R16F, driver.RG16F, driver.RGB16F, driver.RGBA16F}, false,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR16Float, gputypes.TextureFormatRG16Float, gputypes.TextureFormatRGBA16Float}},
	F32: {"F32", 4, driver.Float,
		[4]driver.Enum{driver.R32F, driver.RG32F, driver.RGB32F, driver.RGBA32F}, false,
		[3]gputypes.TextureFormat{gputypes.TextureFormatR32Float, gputypes.TextureFormatRG32Float, gputypes.TextureFormatRGBA32Float}},
}

func (t ComponentType) info() *componentInfo {
	if t >= componentTypeCount {
		panic(fmt.Sprintf("gpuobj: invalid %v", t))
	}
	return &components[t]
}

// Size returns the byte width of one component.
func (t ComponentType) Size() int { return t.info().size }

func (t ComponentType) String() string {
	if t >= componentTypeCount {
		return fmt.Sprintf("ComponentType(%d)", uint8(t))
	}
	return components[t].name
}

// Format describes the layout of one element of a resource: its channel
// layout and component type. Every derived value is computed from the two
// fields on demand.
type Format struct {
	color     ColorFormat
	component ComponentType
}

// Common formats.
var (
	FormatR8      = NewFormat(R, U8)
	FormatRG8     = NewFormat(RG, U8)
	FormatRGBA8   = NewFormat(RGBA, U8)
	FormatR32F    = NewFormat(R, F32)
	FormatRG32F   = NewFormat(RG, F32)
	FormatRGB32F  = NewFormat(RGB, F32)
	FormatRGBA32F = NewFormat(RGBA, F32)
)

// NewFormat returns the format with the given layout. Values outside the
// declared constants panic.
func NewFormat(color ColorFormat, component ComponentType) Format {
	color.mustValid()
	component.info()
	return Format{color: color, component: component}
}

// ColorFormat returns the channel layout.
func (f Format) ColorFormat() ColorFormat { return f.color }

// ComponentType returns the component type.
func (f Format) ComponentType() ComponentType { return f.component }

// Channels returns the number of channels per element.
func (f Format) Channels() int { return f.color.Channels() }

// ElementSize returns the byte size of one element.
func (f Format) ElementSize() int {
	return f.color.Channels() * f.component.Size()
}

// InternalFormat returns the sized device storage format.
func (f Format) InternalFormat() driver.Enum {
	return f.component.info().internal[f.color.Channels()-1]
}

// TransferFormat returns the device transfer format and type used to upload
// or download elements in this format.
func (f Format) TransferFormat() (format, typ driver.Enum) {
	info := f.component.info()
	switch f.color {
	case R:
		format = driver.Red
	case RG:
		format = driver.RG
	case RGB:
		format = driver.RGB
	default:
		f.color.mustValid()
		format = driver.RGBA
	}
	if info.integer {
		switch format {
		case driver.Red:
			format = driver.RedInteger
		case driver.RG:
			format = driver.RGInteger
		case driver.RGB:
			format = driver.RGBInteger
		default:
			format = driver.RGBAInteger
		}
	}
	return format, info.typ
}

// WebGPU returns the equivalent WebGPU texture format. Three channel
// layouts have no WebGPU equivalent and report false.
func (f Format) WebGPU() (gputypes.TextureFormat, bool) {
	info := f.component.info()
	switch f.color {
	case R:
		return info.webgpu[0], true
	case RG:
		return info.webgpu[1], true
	case RGBA:
		return info.webgpu[2], true
	}
	return gputypes.TextureFormatUndefined, false
}

// IsZero reports whether f is the zero Format, which describes no layout.
func (f Format) IsZero() bool { return f.color == 0 }

func (f Format) String() string {
	return f.color.String() + f.component.String()
}
