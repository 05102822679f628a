// Package gpuobj provides typed handles for GL-style graphics device objects.
//
// # Overview
//
// gpuobj wraps the binding-point model of OpenGL-class devices in owned Go
// values: buffers, 2D and 3D textures, renderbuffers, vertex arrays, shaders,
// programs and framebuffers. Each value remembers its device handle, binds
// itself before every device call and deletes its handle on Release.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gpuobj"
//		_ "github.com/gogpu/gpuobj/backend/software"
//	)
//
//	ctx, err := gpuobj.NewContext()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	buf := gpuobj.BufferFromData(ctx, []float32{1, 2, 3})
//	defer buf.Release()
//	values := gpuobj.ReadBuffer[float32](buf)
//
// # Backends
//
// Devices are provided by backends that register themselves with the driver
// package on import:
//   - backend/gles: OpenGL 3.3 through EGL (Linux)
//   - backend/wgpu: WebGPU HAL devices, with transfer-only semantics
//   - backend/software: an in-memory reference device
//
// NewContext picks the highest priority available backend unless
// WithBackend names one.
//
// # Binding
//
// Resources never assume a binding survives between calls. Every operation
// rebinds the resource it acts on, so interleaving operations on different
// resources is always safe. The cost is redundant bind calls.
//
// # Lifetime
//
// A Context must be current on the calling OS thread for any resource
// operation. Native backends require runtime.LockOSThread.
//
// Most resources keep their Context reachable. Renderbuffers hold only a
// WeakContext. When a Context is destroyed before its resources, releasing
// them later issues no device calls. Resources dropped without Release are
// queued by a runtime cleanup and deleted by the next MakeCurrent or
// Collect on the context's thread.
//
// # Formats
//
// A Format pairs a ColorFormat (R, RG, RGB, RGBA) with a ComponentType
// (U8 through F32). Uploads may use a different format than the storage;
// the device converts.
package gpuobj

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
