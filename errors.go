package gpuobj

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpuobj/driver"
)

// ErrContextUnavailable is returned when the device connection or platform
// surface cannot be activated. Errors from NewContext and MakeCurrent wrap it.
var ErrContextUnavailable = errors.New("gpuobj: context unavailable")

// ShaderStage names a programmable pipeline stage.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", s)
	}
}

func (s ShaderStage) enum() driver.Enum {
	if s == FragmentStage {
		return driver.FragmentShader
	}
	return driver.VertexShader
}

// CompileError reports a shader that failed to compile or translate.
type CompileError struct {
	Stage ShaderStage
	Log   string
	// Err is the translator error for WGSL sources, nil for device errors.
	Err error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gpuobj: %s shader translation failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("gpuobj: %s shader compilation failed: %s", e.Stage, e.Log)
}

func (e *CompileError) Unwrap() error { return e.Err }

// LinkError reports a program that failed to link. Reason holds the device
// info log.
type LinkError struct {
	Reason string
}

func (e *LinkError) Error() string {
	return "gpuobj: program link failed: " + e.Reason
}

// IncompleteFramebufferError reports a framebuffer that cannot be rendered to.
type IncompleteFramebufferError struct {
	Status driver.Enum
}

func (e *IncompleteFramebufferError) Error() string {
	var reason string
	switch e.Status {
	case driver.FramebufferIncomplete:
		reason = "incomplete attachment"
	case driver.FramebufferMissing:
		reason = "missing attachment"
	case driver.FramebufferUndefined:
		reason = "undefined"
	default:
		reason = fmt.Sprintf("status %#x", uint32(e.Status))
	}
	return "gpuobj: framebuffer incomplete: " + reason
}

// DeviceError is a device error flag reported by CheckError.
type DeviceError struct {
	Code driver.Enum
}

func (e *DeviceError) Error() string {
	var name string
	switch e.Code {
	case driver.InvalidEnum:
		name = "INVALID_ENUM"
	case driver.InvalidValue:
		name = "INVALID_VALUE"
	case driver.InvalidOperation:
		name = "INVALID_OPERATION"
	case driver.OutOfMemory:
		name = "OUT_OF_MEMORY"
	default:
		name = "UNKNOWN"
	}
	return fmt.Sprintf("gpuobj: device error %#x (%s)", uint32(e.Code), name)
}
