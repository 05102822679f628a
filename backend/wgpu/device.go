// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/noop" // always-available fallback

	"github.com/gogpu/gpuobj/backend/software"
	"github.com/gogpu/gpuobj/driver"
)

// Name is the registry name of this backend.
const Name = "wgpu"

// Priority ranks the HAL device between native GL and the software device.
const Priority = 50

// ErrNoAdapter is returned when the HAL instance exposes no adapters.
var ErrNoAdapter = errors.New("wgpu: no adapter available")

var (
	_ driver.Functions = (*Device)(nil)
	_ driver.Platform  = (*Platform)(nil)
)

// preference orders HAL backends from most to least capable.
var preference = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

func init() {
	driver.Register(Name, Priority, Open, available)
}

func available() bool {
	_, ok := selectBackend()
	return ok
}

func selectBackend() (hal.Backend, bool) {
	for _, v := range preference {
		if b, ok := hal.GetBackend(v); ok {
			return b, true
		}
	}
	return nil, false
}

// Open creates a device on the most capable registered HAL backend.
func Open(opts driver.Options) (*driver.Device, error) {
	backend, ok := selectBackend()
	if !ok {
		return nil, ErrNoAdapter
	}
	return OpenBackend(backend, opts)
}

// OpenBackend creates a device on the first adapter of backend.
func OpenBackend(backend hal.Backend, opts driver.Options) (*driver.Device, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	desc := &hal.InstanceDescriptor{Backends: gputypes.Backends(1) << backend.Variant()}
	if opts.Debug {
		desc.Flags = gputypes.InstanceFlagsDebug | gputypes.InstanceFlagsValidation
	}
	instance, err := backend.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s instance: %w", backend.Variant(), err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	exposed := adapters[0]

	opened, err := exposed.Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open adapter %q: %w", exposed.Info.Name, err)
	}

	shadow := software.Open(opts)
	d := &Device{
		Device:   shadow.Functions.(*software.Device),
		hal:      opened.Device,
		queue:    opened.Queue,
		info:     exposed.Info,
		log:      log,
		buffers:  make(map[driver.Buffer]*mirrorBuffer),
		textures: make(map[driver.Texture]*mirrorTexture),
	}
	log.Debug("wgpu: device opened",
		"label", opts.Label,
		"adapter", exposed.Info.Name,
		"backend", exposed.Info.Backend.String())

	return &driver.Device{
		Platform:  &Platform{Platform: shadow.Platform, dev: d, instance: instance},
		Functions: d,
		Info:      AdapterInfo(exposed.Info),
	}, nil
}

// AdapterInfo converts HAL adapter metadata to the gpucontext form.
func AdapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

// Device implements driver.Functions on a HAL device. The embedded software
// device holds GL state and the host copy of every object.
type Device struct {
	*software.Device

	hal   hal.Device
	queue hal.Queue
	info  gputypes.AdapterInfo
	log   *slog.Logger

	// err holds a HAL failure until the next GetError.
	err driver.Enum

	buffers  map[driver.Buffer]*mirrorBuffer
	textures map[driver.Texture]*mirrorTexture
}

// HAL returns the device and queue behind d.
func (d *Device) HAL() (hal.Device, hal.Queue) { return d.hal, d.queue }

func (d *Device) GetError() driver.Enum {
	if e := d.err; e != driver.NoError && !d.Destroyed() {
		d.err = driver.NoError
		return e
	}
	return d.Device.GetError()
}

func (d *Device) GetString(name driver.Enum) string {
	switch name {
	case driver.Vendor:
		if d.info.Vendor != "" && !d.Destroyed() {
			return d.info.Vendor
		}
	case driver.Renderer:
		if !d.Destroyed() {
			return d.info.Name
		}
	}
	return d.Device.GetString(name)
}

// fail records a HAL error as OUT_OF_MEMORY.
func (d *Device) fail(op string, err error) {
	d.log.Warn("wgpu: "+op+" failed", "err", err)
	if d.err == driver.NoError {
		d.err = driver.OutOfMemory
	}
}

// Platform wraps the shadow platform and owns the HAL instance.
type Platform struct {
	driver.Platform
	dev      *Device
	instance hal.Instance
}

func (p *Platform) Destroy() {
	d := p.dev
	if d.Destroyed() {
		return
	}
	for name, b := range d.buffers {
		d.hal.DestroyBuffer(b.buf)
		delete(d.buffers, name)
	}
	for name, t := range d.textures {
		d.hal.DestroyTexture(t.tex)
		delete(d.textures, name)
	}
	if err := d.hal.WaitIdle(); err != nil {
		d.log.Warn("wgpu: wait idle", "err", err)
	}
	d.hal.Destroy()
	p.instance.Destroy()
	p.Platform.Destroy()
	d.log.Debug("wgpu: device destroyed")
}
