// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// AddressMode controls sampling behavior outside the [0,1) texture
// coordinate range.
type AddressMode int32

const (
	AddressRepeat AddressMode = iota
	AddressMirrorRepeat
	AddressClampToEdge
)

func (a AddressMode) native() wgpu.AddressMode {
	switch a {
	case AddressMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	case AddressClampToEdge:
		return wgpu.AddressModeClampToEdge
	}
	return wgpu.AddressModeRepeat
}

// FilterMode controls texel interpolation.
type FilterMode int32

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

func (f FilterMode) native() wgpu.FilterMode {
	if f == FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

// SamplerDesc describes a Sampler.
type SamplerDesc struct {
	AddressU, AddressV, AddressW AddressMode
	MagFilter, MinFilter         FilterMode
	MipFilter                    FilterMode
	MaxAnisotropy                uint16
	Label                        string
}

// Sampler configures how a shader reads a sampled image.
type Sampler struct {
	Sampler *wgpu.Sampler
}

// NewSampler creates a sampler per desc.
func (d *Device) NewSampler(desc SamplerDesc) (*Sampler, error) {
	ws, err := d.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         desc.Label,
		AddressModeU:  desc.AddressU.native(),
		AddressModeV:  desc.AddressV.native(),
		AddressModeW:  desc.AddressW.native(),
		MagFilter:     desc.MagFilter.native(),
		MinFilter:     desc.MinFilter.native(),
		MipmapFilter:  wgpu.MipmapFilterMode(desc.MipFilter.native()),
		MaxAnisotropy: desc.MaxAnisotropy,
	})
	if err != nil {
		return nil, errors.Logf("gpu: create sampler", err)
	}
	return &Sampler{Sampler: ws}, nil
}

// Release releases the sampler's GPU resources.
func (s *Sampler) Release() {
	if s.Sampler == nil {
		return
	}
	s.Sampler.Release()
	s.Sampler = nil
}
