// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"unsafe"

	"github.com/ashforge/rendercore/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// platformSurface creates a wgpu surface for win's native X11 window. Wayland
// is not handled: glfw must be built/run with GLFW_PLATFORM=x11 (or an XWayland
// session) for this to resolve a non-zero display/window pair.
func platformSurface(in *gpu.Instance, win *glfw.Window) (*wgpu.Surface, error) {
	display := win.GetX11Display()
	xid := win.GetX11Window()
	return in.Instance.CreateSurface(&wgpu.SurfaceDescriptor{
		XlibWindow: &wgpu.SurfaceDescriptorFromXlibWindow{
			Display: unsafe.Pointer(display),
			Window:  uint32(xid),
		},
	}), nil
}
