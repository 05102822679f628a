// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux && !cgo && !nogpu

package gles

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/gles/egl"

	"github.com/gogpu/gpuobj/driver"
)

// Name is the registry name of this backend.
const Name = "gles"

// Priority ranks native GL above every emulated backend.
const Priority = 100

// Default pbuffer size when options do not specify one.
const (
	DefaultWidth  = 256
	DefaultHeight = 256
)

// ErrDestroyed is returned by Platform.MakeCurrent after Destroy.
var ErrDestroyed = errors.New("gles: platform destroyed")

var (
	_ driver.Functions = (*Functions)(nil)
	_ driver.Platform  = (*Platform)(nil)
)

var initEGL = sync.OnceValue(egl.Init)

func init() {
	driver.Register(Name, Priority, Open, func() bool {
		return initEGL() == nil
	})
}

// Open creates a GL 3.3 core context on the detected EGL display.
func Open(opts driver.Options) (*driver.Device, error) {
	if err := initEGL(); err != nil {
		return nil, fmt.Errorf("gles: load EGL: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	cfg := egl.DefaultContextConfig()
	cfg.Debug = opts.Debug
	ctx, err := egl.NewContext(cfg)
	if err != nil {
		return nil, fmt.Errorf("gles: %w", err)
	}

	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	attribs := []egl.EGLInt{egl.Width, egl.EGLInt(w), egl.Height, egl.EGLInt(h), egl.None}
	surface := egl.CreatePbufferSurface(ctx.Display(), ctx.Config(), &attribs[0])
	if surface == egl.NoSurface {
		ctx.Destroy()
		return nil, fmt.Errorf("gles: eglCreatePbufferSurface failed: error %#x", egl.GetError())
	}

	p := &Platform{ctx: ctx, surface: surface, width: w, height: h, log: log}
	if err := p.MakeCurrent(); err != nil {
		p.Destroy()
		return nil, err
	}
	fns := &Functions{}
	if err := fns.load(egl.GetGLProcAddress); err != nil {
		p.Destroy()
		return nil, err
	}

	renderer := fns.GetString(driver.Renderer)
	log.Debug("gles: context created",
		"label", opts.Label,
		"window_kind", ctx.WindowKind().String(),
		"renderer", renderer,
		"version", fns.GetString(driver.Version))

	return &driver.Device{
		Platform:  p,
		Functions: fns,
		Info:      gpucontext.AdapterInfo{Name: renderer, Type: adapterType(renderer)},
	}, nil
}

// adapterType guesses the adapter type from the GL renderer string. Only
// CPU rasterizers are recognized.
func adapterType(renderer string) gpucontext.AdapterType {
	r := strings.ToLower(renderer)
	for _, sw := range []string{"llvmpipe", "softpipe", "swiftshader", "swrast"} {
		if strings.Contains(r, sw) {
			return gpucontext.AdapterTypeSoftware
		}
	}
	return gpucontext.AdapterTypeUnknown
}

// Platform owns an EGL context and its pbuffer surface.
type Platform struct {
	ctx       *egl.Context
	surface   egl.EGLSurface
	width     int
	height    int
	log       *slog.Logger
	destroyed bool
}

func (p *Platform) MakeCurrent() error {
	if p.destroyed {
		return ErrDestroyed
	}
	if egl.MakeCurrent(p.ctx.Display(), p.surface, p.surface, p.ctx.EGLContext()) == egl.False {
		return fmt.Errorf("gles: eglMakeCurrent failed: error %#x", egl.GetError())
	}
	return nil
}

func (p *Platform) GetProcAddress(name string) unsafe.Pointer {
	return egl.GetGLProcAddress(name)
}

func (p *Platform) SwapBuffers() error {
	if p.destroyed {
		return ErrDestroyed
	}
	if egl.SwapBuffers(p.ctx.Display(), p.surface) == egl.False {
		return fmt.Errorf("gles: eglSwapBuffers failed: error %#x", egl.GetError())
	}
	return nil
}

func (p *Platform) InnerDimensions() (width, height int) {
	return p.width, p.height
}

func (p *Platform) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	egl.MakeCurrent(p.ctx.Display(), egl.NoSurface, egl.NoSurface, egl.NoContext)
	egl.DestroySurface(p.ctx.Display(), p.surface)
	p.ctx.Destroy()
	p.log.Debug("gles: context destroyed")
}
