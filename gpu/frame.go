// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// Frame is the swapchain image acquired for one render pass. It must be
// released by exactly one call to Present, after the command buffer
// rendering into it has been submitted; render/driver.Viewport.RunFrame does
// this after running the work graph for a normal frame.
type Frame struct {
	surface *Surface
	View    *wgpu.TextureView
	Format  PixelFormat
}

// ColorTarget wraps the frame's current view as an external Image, ready to
// bind into a target.Hub with Hub.External, along with its pixel format.
func (f *Frame) ColorTarget() (*Image, PixelFormat) {
	return NewExternalImage(f.View, f.Format, Extent3D{Width: f.surface.width, Height: f.surface.height, Depth: 1}), f.Format
}

// Present submits the swapchain image to the platform for display and
// releases the frame's view.
func (f *Frame) Present() {
	f.surface.chain.Present()
	if f.View != nil {
		f.View.Release()
		f.View = nil
	}
}
