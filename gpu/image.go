// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ImageDesc describes an image to be created on a Device. NewImage always
// creates a 2D texture: Extent.Depth (or ArrayLayers, whichever is larger)
// becomes its array layer count; 3D textures are not created.
type ImageDesc struct {
	Extent      Extent3D
	Format      PixelFormat
	Usage       UsageFlags
	MipLevels   uint32
	ArrayLayers uint32
	Samples     uint32
	Label       string
}

// withDefaults fills in the single mip level / single array layer / single
// sample defaults most callers want, leaving explicit values untouched.
func (d ImageDesc) withDefaults() ImageDesc {
	if d.MipLevels == 0 {
		d.MipLevels = 1
	}
	if d.ArrayLayers == 0 {
		d.ArrayLayers = 1
	}
	if d.Samples == 0 {
		d.Samples = 1
	}
	return d
}

// Image is a device-resident 2D texture, optionally multisampled or
// array-layered. An Image returned by NewExternalImage wraps a view handed
// in from outside the device (e.g. a swapchain frame); Image is nil on it,
// and View always returns the wrapped view regardless of desc.
type Image struct {
	Image        *wgpu.Texture
	Desc         ImageDesc
	device       *Device
	externalView *wgpu.TextureView
}

// NewExternalImage wraps a caller-supplied view (such as a swapchain
// frame's current texture view) as an Image, so it can be bound into a
// target.Hub with target.Hub.External alongside device-allocated images.
func NewExternalImage(view *wgpu.TextureView, format PixelFormat, extent Extent3D) *Image {
	return &Image{Desc: ImageDesc{Extent: extent, Format: format}, externalView: view}
}

// NewImage creates an image per desc.
func (d *Device) NewImage(desc ImageDesc) (*Image, error) {
	desc = desc.withDefaults()
	wt, err := d.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Usage: nativeImageUsage(desc.Usage, desc.Format),
		Size: wgpu.Extent3D{
			Width:              desc.Extent.Width,
			Height:             desc.Extent.Height,
			DepthOrArrayLayers: max(desc.Extent.Depth, desc.ArrayLayers),
		},
		MipLevelCount: desc.MipLevels,
		SampleCount:   desc.Samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        desc.Format.Native(),
	})
	if err != nil {
		return nil, errors.Logf("gpu: create image", err)
	}
	return &Image{Image: wt, Desc: desc, device: d}, nil
}

func nativeImageUsage(u UsageFlags, format PixelFormat) wgpu.TextureUsage {
	var nu wgpu.TextureUsage
	if u.Has(UsageCopySrc) {
		nu |= wgpu.TextureUsageCopySrc
	}
	if u.Has(UsageCopyDst) {
		nu |= wgpu.TextureUsageCopyDst
	}
	if u.Has(UsageSampled) {
		nu |= wgpu.TextureUsageTextureBinding
	}
	if u.Has(UsageStorage) {
		nu |= wgpu.TextureUsageStorageBinding
	}
	if u.Has(UsageColorTarget) || (format.IsColor() && u.Has(UsageColorTarget)) {
		nu |= wgpu.TextureUsageRenderAttachment
	}
	if u.Has(UsageDepthStencilTarget) {
		nu |= wgpu.TextureUsageRenderAttachment
	}
	return nu
}

// ImageViewDesc describes a sub-range view into an Image, optionally
// reinterpreting its format. Component swizzles are not supported.
type ImageViewDesc struct {
	BaseMip, MipCount     uint32
	BaseLayer, LayerCount uint32
	Format                PixelFormat // zero means "same as the image"
}

// View creates a view over a sub-range of the image. For an external image
// (see NewExternalImage) it always returns the wrapped view, ignoring desc.
func (im *Image) View(desc ImageViewDesc) (*wgpu.TextureView, error) {
	if im.externalView != nil {
		return im.externalView, nil
	}
	format := im.Desc.Format
	if desc.Format != FormatUndefined {
		format = desc.Format
	}
	mipCount := desc.MipCount
	if mipCount == 0 {
		mipCount = im.Desc.MipLevels - desc.BaseMip
	}
	layerCount := desc.LayerCount
	if layerCount == 0 {
		layerCount = im.Desc.ArrayLayers - desc.BaseLayer
	}
	view, err := im.Image.CreateView(&wgpu.TextureViewDescriptor{
		Format:          format.Native(),
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    desc.BaseMip,
		MipLevelCount:   mipCount,
		BaseArrayLayer:  desc.BaseLayer,
		ArrayLayerCount: layerCount,
	})
	if err != nil {
		return nil, errors.Logf("gpu: create image view", err)
	}
	return view, nil
}

// Release releases the image's GPU resources. An external image's wrapped
// view is owned by its original source (e.g. the Surface/Frame it came
// from) and is not released here.
func (im *Image) Release() {
	if im.externalView != nil {
		im.externalView = nil
		return
	}
	if im.Image == nil {
		return
	}
	im.Image.Release()
	im.Image = nil
}
