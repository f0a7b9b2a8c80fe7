// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package main

import (
	"unsafe"

	"github.com/ashforge/rendercore/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/sys/windows"
)

// platformSurface creates a wgpu surface for win's native HWND.
func platformSurface(in *gpu.Instance, win *glfw.Window) (*wgpu.Surface, error) {
	hwnd := win.GetWin32Window()
	hinstance := windows.CurrentModule()
	return in.Instance.CreateSurface(&wgpu.SurfaceDescriptor{
		WindowsHWND: &wgpu.SurfaceDescriptorFromWindowsHWND{
			Hinstance: unsafe.Pointer(hinstance),
			Hwnd:      unsafe.Pointer(hwnd),
		},
	}), nil
}
