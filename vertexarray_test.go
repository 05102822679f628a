package gpuobj

import (
	"testing"

	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/driver"
)

func TestVertexArraySetVertexSource(t *testing.T) {
	ctx, dev := newTestContext(t)

	positions := BufferFromData(ctx, []float32{0, 0, 1, 0, 0, 1})
	colors := BufferFromData(ctx, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1})
	defer positions.Release()
	defer colors.Release()

	va := NewVertexArray(ctx)
	defer va.Release()
	va.SetVertexSource(positions, 0, 2)
	va.SetVertexSource(colors, 3, 3)

	tests := []struct {
		index int
		want  software.Attrib
	}{
		{0, software.Attrib{Enabled: true, Buffer: positions.handle, Size: 2, Type: driver.Float}},
		{3, software.Attrib{Enabled: true, Buffer: colors.handle, Size: 3, Type: driver.Float}},
		{1, software.Attrib{}},
	}
	for _, tt := range tests {
		got, ok := dev.VertexAttrib(va.handle, tt.index)
		if !ok || got != tt.want {
			t.Errorf("attribute %d = %+v, want %+v", tt.index, got, tt.want)
		}
	}

	attrs := va.Attributes()
	if len(attrs) != 2 || attrs[0].Index != 0 || attrs[1].Index != 3 {
		t.Errorf("Attributes() = %+v, want slots 0 and 3", attrs)
	}
}

func TestVertexArraySetVertexSourceIdempotent(t *testing.T) {
	ctx, dev := newTestContext(t)

	buf := BufferFromData(ctx, []float32{1, 2, 3, 4})
	defer buf.Release()
	va := NewVertexArray(ctx)
	defer va.Release()

	va.SetVertexSource(buf, 2, 4)
	once, _ := dev.VertexAttrib(va.handle, 2)
	onceAttrs := va.Attributes()

	va.SetVertexSource(buf, 2, 4)
	twice, _ := dev.VertexAttrib(va.handle, 2)
	if once != twice {
		t.Errorf("after second call: attribute = %+v, want %+v", twice, once)
	}
	if got := va.Attributes(); len(got) != len(onceAttrs) || got[0] != onceAttrs[0] {
		t.Errorf("after second call: Attributes() = %+v, want %+v", got, onceAttrs)
	}
	if err := ctx.CheckError(); err != nil {
		t.Errorf("CheckError() = %v, want nil", err)
	}
}

func TestVertexArrayVertexCount(t *testing.T) {
	ctx, _ := newTestContext(t)

	va := NewVertexArray(ctx)
	defer va.Release()
	if got := va.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}
	va.SetVertexCount(6)
	if got := va.VertexCount(); got != 6 {
		t.Errorf("VertexCount() = %d, want 6", got)
	}
	mustPanic(t, "SetVertexCount(-1)", func() { va.SetVertexCount(-1) })
	mustPanic(t, "SetVertexSource with 5 components", func() {
		va.SetVertexSource(AllocateBuffer(ctx, 4), 0, 5)
	})
}
