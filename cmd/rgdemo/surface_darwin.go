// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build darwin

package main

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// platformSurface creates a wgpu surface for win's native NSWindow.
//
// TODO: glfw hands back the NSWindow, not a CAMetalLayer; wgpu-native's
// Metal path needs the layer, which normally means swapping the window's
// content view for an NSView backed by one (cocoa_metal_layer or similar)
// before calling CreateSurface. That bridge isn't wired here yet, so this
// always returns an error on darwin until it is.
func platformSurface(in *gpu.Instance, win *glfw.Window) (*wgpu.Surface, error) {
	_ = win.GetCocoaWindow()
	return nil, errors.New("rgdemo: darwin surface creation is not wired yet, see TODO in surface_darwin.go")
}
