// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"sync"

	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceDesc configures a Surface.
type SurfaceDesc struct {
	Width, Height uint32
	Format        PixelFormat // FormatUndefined selects the backend's preferred format
	Label         string
}

// Surface owns the swapchain for a native window surface and hands out
// [Frame]s to render into, one per NextFrame/Present cycle. It is the sole
// point where rendercore deals with platform presentation; everything
// upstream of it (render/driver.Viewport) only ever sees a Frame's image.
type Surface struct {
	surface *wgpu.Surface
	device  *Device
	config  *wgpu.SwapChainDescriptor
	chain   *wgpu.SwapChain
	format  PixelFormat
	width   uint32
	height  uint32

	mu            sync.Mutex
	needsReconfig bool
}

// NewSurface wraps a platform window surface handle (e.g. one created from
// the window's native handle, as cmd/rgdemo's platformSurface does) and
// configures its swapchain at the given size.
func (d *Device) NewSurface(ws *wgpu.Surface, desc SurfaceDesc) (*Surface, error) {
	sf := &Surface{surface: ws, device: d, width: desc.Width, height: desc.Height}
	caps := ws.GetCapabilities(d.Instance.Selected.Adapter)
	format := desc.Format
	if format == FormatUndefined {
		format = nativeToPixelFormat(caps.Formats[0])
	}
	sf.format = format
	sf.config = &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format.Native(),
		Width:       desc.Width,
		Height:      desc.Height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	if err := sf.createSwapChain(); err != nil {
		return nil, err
	}
	return sf, nil
}

func nativeToPixelFormat(f wgpu.TextureFormat) PixelFormat {
	switch f {
	case wgpu.TextureFormatBGRA8Unorm:
		return FormatBGRA8Unorm
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return FormatBGRA8UnormSrgb
	case wgpu.TextureFormatRGBA8Unorm:
		return FormatRGBA8Unorm
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return FormatRGBA8UnormSrgb
	}
	return FormatBGRA8UnormSrgb
}

// Format reports the pixel format of frames this surface produces.
func (sf *Surface) Format() PixelFormat { return sf.format }

// Resize marks the surface for reconfiguration at the given size. The
// reconfiguration itself happens lazily on the next NextFrame call so that
// a burst of resize events during a drag only reconfigures once.
func (sf *Surface) Resize(width, height uint32) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if width == sf.width && height == sf.height {
		return
	}
	sf.width, sf.height = width, height
	sf.config.Width, sf.config.Height = width, height
	sf.needsReconfig = true
}

func (sf *Surface) createSwapChain() error {
	sc, err := sf.device.Device.CreateSwapChain(sf.surface, sf.config)
	if err != nil {
		return errors.Logf("gpu: create swapchain", err)
	}
	sf.chain = sc
	return nil
}

func (sf *Surface) releaseSwapChain() {
	if sf.chain == nil {
		return
	}
	sf.device.WaitDone()
	sf.chain.Release()
	sf.chain = nil
}

func (sf *Surface) reconfigure() error {
	sf.releaseSwapChain()
	return sf.createSwapChain()
}

// NextFrame acquires the current swapchain view as a [Frame]. It returns
// ErrZeroExtent without touching the swapchain if the surface's current
// size is zero in either dimension (e.g. a minimized window), ErrOutOfDate
// if reconfiguration failed and the caller should retry after another
// Resize, or ErrSurfaceLost if the surface handle itself is gone.
func (sf *Surface) NextFrame() (*Frame, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.width == 0 || sf.height == 0 {
		return nil, ErrZeroExtent
	}
	if sf.surface == nil {
		return nil, ErrSurfaceLost
	}
	if sf.needsReconfig {
		sf.needsReconfig = false
		if err := sf.reconfigure(); err != nil {
			return nil, ErrOutOfDate
		}
	}
	view, err := sf.chain.GetCurrentTextureView()
	if err != nil {
		return nil, ErrOutOfDate
	}
	return &Frame{surface: sf, View: view, Format: sf.format}, nil
}

// Release releases the surface and its swapchain.
func (sf *Surface) Release() {
	sf.releaseSwapChain()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
}
