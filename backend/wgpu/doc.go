// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu runs gpuobj on a WebGPU HAL device from gogpu/wgpu.
//
// WebGPU has no binding points, so the package keeps the GL object model on
// a host shadow device and mirrors storage onto HAL resources:
//
//   - Buffers become HAL buffers; every BufferData is written through the
//     queue.
//   - Textures with a WebGPU equivalent format become HAL textures; every
//     TexImage2D and TexImage3D with data is written through the queue.
//     Three channel formats have no WebGPU counterpart and stay host only.
//   - Downloads are served from the shadow, which always holds the last
//     uploaded contents.
//
// Shaders, framebuffers and draws are validated by the shadow but are not
// encoded into HAL command buffers.
//
// The HAL backend is chosen from those registered with hal.RegisterBackend,
// preferring native APIs over the noop backend this package imports:
//
//	import (
//		_ "github.com/gogpu/gpuobj/backend/wgpu"
//		_ "github.com/gogpu/wgpu/hal/vulkan"
//	)
package wgpu
