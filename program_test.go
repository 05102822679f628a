package gpuobj

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/driver"
)

const (
	testVertexGLSL = `#version 330 core
layout(location = 0) in vec2 pos;
void main() {
	gl_Position = vec4(pos, 0.0, 1.0);
}
`
	testFragmentGLSL = `#version 330 core
out vec4 color;
void main() {
	color = vec4(1.0);
}
`
	testWGSL = `
@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
)

func newTestProgram(t *testing.T, ctx *Context) *RasterProgram {
	t.Helper()
	vs, err := NewVertexShader(ctx, testVertexGLSL)
	if err != nil {
		t.Fatalf("NewVertexShader() error = %v", err)
	}
	fs, err := NewFragmentShader(ctx, testFragmentGLSL)
	if err != nil {
		t.Fatalf("NewFragmentShader() error = %v", err)
	}
	p, err := NewRasterProgram(ctx, vs, fs)
	if err != nil {
		t.Fatalf("NewRasterProgram() error = %v", err)
	}
	vs.Release()
	fs.Release()
	t.Cleanup(p.Release)
	return p
}

func TestShaderCompileError(t *testing.T) {
	ctx, dev := newTestContext(t)

	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"no entry point", "#version 330 core\nvoid helper() {}\n"},
		{"unbalanced", "#version 330 core\nvoid main() {\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFragmentShader(ctx, tt.src)
			if s != nil {
				t.Errorf("NewFragmentShader() = %v, want nil", s)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("NewFragmentShader() error = %v, want *CompileError", err)
			}
			if ce.Stage != FragmentStage || ce.Log == "" {
				t.Errorf("CompileError = %+v, want fragment stage with a log", ce)
			}
		})
	}
	if got := dev.Deletes().Shaders; got != len(tests) {
		t.Errorf("Deletes().Shaders = %d, want %d", got, len(tests))
	}
}

func TestTranslateWGSL(t *testing.T) {
	for _, stage := range []ShaderStage{VertexStage, FragmentStage} {
		t.Run(stage.String(), func(t *testing.T) {
			code, err := TranslateWGSL(stage, testWGSL)
			if err != nil {
				t.Fatalf("TranslateWGSL() error = %v", err)
			}
			if !strings.Contains(code, "#version 330") || !strings.Contains(code, "void main()") {
				t.Errorf("TranslateWGSL() output lacks version or entry point:\n%s", code)
			}
		})
	}
}

func TestTranslateWGSLCached(t *testing.T) {
	first, err := TranslateWGSL(FragmentStage, testWGSL)
	if err != nil {
		t.Fatalf("TranslateWGSL() error = %v", err)
	}
	hits := translations.Stats().Hits
	second, _ := TranslateWGSL(FragmentStage, testWGSL)
	if second != first {
		t.Error("cached translation differs from the first")
	}
	if got := translations.Stats().Hits; got != hits+1 {
		t.Errorf("Hits = %d, want %d", got, hits+1)
	}
}

func TestTranslateWGSLErrors(t *testing.T) {
	_, err := TranslateWGSL(VertexStage, "@vertex fn broken(")
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Err == nil {
		t.Errorf("TranslateWGSL(syntax error) error = %v, want *CompileError wrapping the parser error", err)
	}

	fragmentOnly := "@fragment\nfn fs_main() -> @location(0) vec4<f32> {\n    return vec4<f32>(1.0);\n}\n"
	if _, err := TranslateWGSL(VertexStage, fragmentOnly); !errors.As(err, &ce) {
		t.Errorf("TranslateWGSL(no vertex entry) error = %v, want *CompileError", err)
	}
}

func TestProgramFromWGSL(t *testing.T) {
	ctx, _ := newTestContext(t)

	vs, err := NewVertexShaderWGSL(ctx, testWGSL)
	if err != nil {
		t.Fatalf("NewVertexShaderWGSL() error = %v", err)
	}
	defer vs.Release()
	fs, err := NewFragmentShaderWGSL(ctx, testWGSL)
	if err != nil {
		t.Fatalf("NewFragmentShaderWGSL() error = %v", err)
	}
	defer fs.Release()

	if vs.Stage() != VertexStage || fs.Stage() != FragmentStage {
		t.Errorf("stages = (%v, %v), want (vertex, fragment)", vs.Stage(), fs.Stage())
	}
	p, err := NewProgram(ctx, vs, fs)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	p.Release()
}

func TestProgramLinkError(t *testing.T) {
	ctx, _ := newTestContext(t)

	vs, err := NewVertexShader(ctx, testVertexGLSL)
	if err != nil {
		t.Fatalf("NewVertexShader() error = %v", err)
	}
	defer vs.Release()

	p, err := NewProgram(ctx, vs, nil)
	if p != nil {
		t.Error("NewProgram() returned a program for a missing stage")
	}
	var le *LinkError
	if !errors.As(err, &le) {
		t.Fatalf("NewProgram() error = %v, want *LinkError", err)
	}
	if !strings.Contains(le.Reason, "fragment") {
		t.Errorf("LinkError.Reason = %q, want mention of the fragment stage", le.Reason)
	}
}

func TestRaster(t *testing.T) {
	ctx, dev := newTestContext(t)
	p := newTestProgram(t, ctx)

	target := AllocateTexture2D(ctx, 8, 4, FormatRGBA8)
	defer target.Release()
	fb := NewFramebuffer(ctx)
	defer fb.Release()
	fb.AttachColor(0, target)

	vertices := BufferFromData(ctx, []float32{0, 0, 1, 0, 0, 1})
	defer vertices.Release()
	va := NewVertexArray(ctx)
	defer va.Release()
	va.SetVertexSource(vertices, 0, 2)
	va.SetVertexCount(3)

	p.Raster(fb, va, Triangles)

	draws := dev.Draws()
	if len(draws) != 1 {
		t.Fatalf("Draws() len = %d, want 1", len(draws))
	}
	want := software.DrawCall{
		Mode:        driver.Triangles,
		Count:       3,
		Program:     p.handle,
		VertexArray: va.handle,
		Framebuffer: fb.handle,
		Viewport:    [4]int{0, 0, 8, 4},
	}
	if draws[0] != want {
		t.Errorf("draw = %+v, want %+v", draws[0], want)
	}
}

func TestIndexedRaster(t *testing.T) {
	ctx, dev := newTestContext(t)
	p := newTestProgram(t, ctx)

	vertices := BufferFromData(ctx, []float32{0, 0, 1, 0, 0, 1, 1, 1})
	defer vertices.Release()
	indices := BufferFromData(ctx, []uint32{0, 1, 2, 2, 1, 3})
	defer indices.Release()
	va := NewVertexArray(ctx)
	defer va.Release()
	va.SetVertexSource(vertices, 0, 2)

	p.IndexedRaster(DefaultFramebuffer(ctx), va, indices, 6, Triangles)

	if got := dev.ElementBuffer(va.handle); got != indices.handle {
		t.Errorf("ElementBuffer() = %d, want %d", got, indices.handle)
	}
	draws := dev.Draws()
	if len(draws) != 1 {
		t.Fatalf("Draws() len = %d, want 1", len(draws))
	}
	d := draws[0]
	if !d.Indexed || d.Count != 6 || d.IndexType != driver.UnsignedInt || d.Viewport != [4]int{0, 0, 64, 32} {
		t.Errorf("draw = %+v, want 6 uint32 indices over the 64x32 surface", d)
	}
}

func TestRasterIncompleteFramebufferDebug(t *testing.T) {
	ctx, _ := newTestContext(t, WithDebug(true))
	p := newTestProgram(t, ctx)

	fb := NewFramebuffer(ctx)
	defer fb.Release()
	va := NewVertexArray(ctx)
	defer va.Release()
	va.SetVertexCount(3)

	mustPanic(t, "Raster into an empty framebuffer", func() { p.Raster(fb, va, Triangles) })
}
