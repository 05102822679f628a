package gpuobj

import (
	"log/slog"

	"github.com/gogpu/gpuobj/driver"
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Best available registered backend
//	ctx, err := gpuobj.NewContext()
//
//	// A specific backend with a debug context
//	ctx, err := gpuobj.NewContext(gpuobj.WithBackend("gles"), gpuobj.WithDebug(true))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	backend string
	device  *driver.Device
	logger  *slog.Logger
	debug   bool
	width   int
	height  int
	label   string
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		logger: nil, // Resolved to Logger() at creation
		label:  "gpuobj",
	}
}

// WithBackend selects a registered backend by name instead of the best
// available one. See [driver.List] for the registered names.
func WithBackend(name string) ContextOption {
	return func(o *contextOptions) {
		o.backend = name
	}
}

// WithDevice builds the context on an already opened device, bypassing the
// registry. The context takes ownership of the device's platform. A name
// given with WithBackend then only labels the device.
func WithDevice(dev *driver.Device) ContextOption {
	return func(o *contextOptions) {
		o.device = dev
	}
}

// WithLogger sets the logger for one context, overriding [SetLogger].
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithDebug enables device error checking after every operation. A device
// error then panics with the operation name and error code.
func WithDebug(debug bool) ContextOption {
	return func(o *contextOptions) {
		o.debug = debug
	}
}

// WithSize requests a surface size from the backend.
func WithSize(width, height int) ContextOption {
	return func(o *contextOptions) {
		o.width = width
		o.height = height
	}
}

// WithLabel names the context in logs.
func WithLabel(label string) ContextOption {
	return func(o *contextOptions) {
		o.label = label
	}
}
