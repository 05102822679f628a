// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gles drives a native OpenGL 3.3 core context through EGL.
//
// Entry points are resolved with eglGetProcAddress and called through goffi,
// so the package needs no C toolchain. It is built on Linux with cgo
// disabled; elsewhere it is empty and registers nothing. The nogpu build tag
// also disables it.
//
// The default framebuffer is an offscreen pbuffer sized by
// driver.Options.Width and Height.
package gles
