package gpuobj

import (
	"testing"

	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/driver"
)

// newTestContext opens a software context and destroys it when the test
// ends. The returned device exposes the recorded device state.
func newTestContext(t *testing.T, opts ...ContextOption) (*Context, *software.Device) {
	t.Helper()
	dev := software.Open(driver.Options{Width: 64, Height: 32})
	ctx, err := NewContext(append([]ContextOption{WithDevice(dev)}, opts...)...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx, dev.Functions.(*software.Device)
}

// mustPanic runs fn and fails the test unless it panics.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}
