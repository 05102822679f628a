package gpuobj

import (
	"log/slog"
	"testing"

	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/driver"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.backend != "" || o.device != nil || o.logger != nil || o.debug {
		t.Errorf("defaultOptions() = %+v, want empty backend, device and logger", o)
	}
	if o.label != "gpuobj" {
		t.Errorf("defaultOptions().label = %q, want %q", o.label, "gpuobj")
	}
}

func TestContextOptions(t *testing.T) {
	dev := software.Open(driver.Options{})
	log := slog.New(slog.DiscardHandler)

	o := defaultOptions()
	for _, opt := range []ContextOption{
		WithBackend("gles"),
		WithDevice(dev),
		WithLogger(log),
		WithDebug(true),
		WithSize(640, 480),
		WithLabel("main"),
	} {
		opt(&o)
	}

	if o.backend != "gles" {
		t.Errorf("backend = %q, want %q", o.backend, "gles")
	}
	if o.device != dev {
		t.Error("device was not set by WithDevice")
	}
	if o.logger != log {
		t.Error("logger was not set by WithLogger")
	}
	if !o.debug {
		t.Error("debug = false, want true")
	}
	if o.width != 640 || o.height != 480 {
		t.Errorf("size = (%d, %d), want (640, 480)", o.width, o.height)
	}
	if o.label != "main" {
		t.Errorf("label = %q, want %q", o.label, "main")
	}
}

func TestWithDeviceTakesPrecedence(t *testing.T) {
	ctx, err := NewContext(WithBackend("no-such-backend"), WithDevice(software.Open(driver.Options{})))
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Destroy()
	if got := ctx.Backend(); got != "no-such-backend" {
		t.Errorf("Backend() = %q, want the requested name", got)
	}
}
