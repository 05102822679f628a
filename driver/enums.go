// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

// GL enumerants used by gpuobj and its backends.
const (
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502
	OutOfMemory      Enum = 0x0505

	Vendor   Enum = 0x1F00
	Renderer Enum = 0x1F01
	Version  Enum = 0x1F02

	// Buffer targets and queries.
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	BufferSize         Enum = 0x8764
	StaticDraw         Enum = 0x88E4
	DynamicDraw        Enum = 0x88E8

	// Texture targets and parameters.
	Texture2D        Enum = 0x0DE1
	Texture3D        Enum = 0x806F
	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	TextureWrapR     Enum = 0x8072
	Nearest          Enum = 0x2600
	Linear           Enum = 0x2601
	ClampToEdge      Enum = 0x812F
	Repeat           Enum = 0x2901
	MirroredRepeat   Enum = 0x8370

	// Component types.
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
	HalfFloat     Enum = 0x140B

	// Transfer formats.
	Red         Enum = 0x1903
	RG          Enum = 0x8227
	RGB         Enum = 0x1907
	RGBA        Enum = 0x1908
	RedInteger  Enum = 0x8D94
	RGInteger   Enum = 0x8228
	RGBInteger  Enum = 0x8D98
	RGBAInteger Enum = 0x8D99

	// Sized internal formats.
	R8       Enum = 0x8229
	RG8      Enum = 0x822B
	RGB8     Enum = 0x8051
	RGBA8    Enum = 0x8058
	R8I      Enum = 0x8231
	RG8I     Enum = 0x8237
	RGB8I    Enum = 0x8D8F
	RGBA8I   Enum = 0x8D8E
	R16UI    Enum = 0x8234
	RG16UI   Enum = 0x823A
	RGB16UI  Enum = 0x8D77
	RGBA16UI Enum = 0x8D76
	R16I     Enum = 0x8233
	RG16I    Enum = 0x8239
	RGB16I   Enum = 0x8D89
	RGBA16I  Enum = 0x8D88
	R32UI    Enum = 0x8236
	RG32UI   Enum = 0x823C
	RGB32UI  Enum = 0x8D71
	RGBA32UI Enum = 0x8D70
	R32I     Enum = 0x8235
	RG32I    Enum = 0x823B
	RGB32I   Enum = 0x8D83
	RGBA32I  Enum = 0x8D82
	R16F     Enum = 0x822D
	RG16F    Enum = 0x822F
	RGB16F   Enum = 0x881B
	RGBA16F  Enum = 0x881A
	R32F     Enum = 0x822E
	RG32F    Enum = 0x8230
	RGB32F   Enum = 0x8815
	RGBA32F  Enum = 0x8814

	// Depth storage.
	DepthComponent    Enum = 0x1902
	DepthComponent16  Enum = 0x81A5
	DepthComponent24  Enum = 0x81A6
	DepthComponent32F Enum = 0x8CAC
	DepthStencil      Enum = 0x84F9
	Depth24Stencil8   Enum = 0x88F0

	// Framebuffers and renderbuffers.
	FramebufferTarget     Enum = 0x8D40
	ReadFramebuffer       Enum = 0x8CA8
	DrawFramebuffer       Enum = 0x8CA9
	RenderbufferTarget    Enum = 0x8D41
	ColorAttachment0      Enum = 0x8CE0
	DepthAttachment       Enum = 0x8D00
	StencilAttachment     Enum = 0x8D20
	FramebufferComplete   Enum = 0x8CD5
	FramebufferIncomplete Enum = 0x8CD6 // incomplete attachment
	FramebufferMissing    Enum = 0x8CD7 // missing attachment
	FramebufferUndefined  Enum = 0x8219
	ColorBufferBit        Enum = 0x4000
	DepthBufferBit        Enum = 0x0100
	StencilBufferBit      Enum = 0x0400

	// Shaders and programs.
	VertexShader   Enum = 0x8B31
	FragmentShader Enum = 0x8B30
	CompileStatus  Enum = 0x8B81
	LinkStatus     Enum = 0x8B82
	InfoLogLength  Enum = 0x8B84

	// Primitive modes.
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// MaxColorAttachments is the number of color attachment points backends
// must support.
const MaxColorAttachments = 8

// ComponentSize returns the byte width of a component type, or 0 if typ is
// not a component type.
func ComponentSize(typ Enum) int {
	switch typ {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort, HalfFloat:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	default:
		return 0
	}
}

// FormatChannels returns the channel count of a transfer format, or 0 if
// format is not a transfer format.
func FormatChannels(format Enum) int {
	switch format {
	case Red, RedInteger, DepthComponent:
		return 1
	case RG, RGInteger:
		return 2
	case RGB, RGBInteger:
		return 3
	case RGBA, RGBAInteger:
		return 4
	default:
		return 0
	}
}

type internalInfo struct {
	channels int
	typ      Enum
}

var internalFormats = map[Enum]internalInfo{
	R8: {1, UnsignedByte}, RG8: {2, UnsignedByte}, RGB8: {3, UnsignedByte}, RGBA8: {4, UnsignedByte},
	R8I: {1, Byte}, RG8I: {2, Byte}, RGB8I: {3, Byte}, RGBA8I: {4, Byte},
	R16UI: {1, UnsignedShort}, RG16UI: {2, UnsignedShort}, RGB16UI: {3, UnsignedShort}, RGBA16UI: {4, UnsignedShort},
	R16I: {1, Short}, RG16I: {2, Short}, RGB16I: {3, Short}, RGBA16I: {4, Short},
	R32UI: {1, UnsignedInt}, RG32UI: {2, UnsignedInt}, RGB32UI: {3, UnsignedInt}, RGBA32UI: {4, UnsignedInt},
	R32I: {1, Int}, RG32I: {2, Int}, RGB32I: {3, Int}, RGBA32I: {4, Int},
	R16F: {1, HalfFloat}, RG16F: {2, HalfFloat}, RGB16F: {3, HalfFloat}, RGBA16F: {4, HalfFloat},
	R32F: {1, Float}, RG32F: {2, Float}, RGB32F: {3, Float}, RGBA32F: {4, Float},

	DepthComponent:    {1, UnsignedInt},
	DepthComponent16:  {1, UnsignedShort},
	DepthComponent24:  {1, UnsignedInt},
	DepthComponent32F: {1, Float},
	Depth24Stencil8:   {1, UnsignedInt},
}

// InternalFormatInfo reports the channel count and component type of a sized
// internal format. Unsized depth storage reports 32-bit components.
func InternalFormatInfo(internal Enum) (channels int, typ Enum, ok bool) {
	info, ok := internalFormats[internal]
	return info.channels, info.typ, ok
}

// IsDepthFormat reports whether internal is a depth or depth-stencil format.
func IsDepthFormat(internal Enum) bool {
	switch internal {
	case DepthComponent, DepthComponent16, DepthComponent24, DepthComponent32F, DepthStencil, Depth24Stencil8:
		return true
	}
	return false
}
