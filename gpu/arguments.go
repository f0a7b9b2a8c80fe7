// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ArgumentKind names the kind of resource one slot of an ArgumentGroup
// binds, mirroring the classification shaderreflect recovers from source.
type ArgumentKind int32

const (
	ArgumentUniformBuffer ArgumentKind = iota
	ArgumentStorageBuffer
	ArgumentSampledImage
	ArgumentStorageImage
	ArgumentSampler
)

// ArgumentEntry is one bound resource in an ArgumentGroup, at the binding
// index a shader's @group/@binding declaration names.
type ArgumentEntry struct {
	Binding uint32
	Kind    ArgumentKind
	Stages  PipelineStages

	Buffer       *Buffer
	BufferOffset uint64
	BufferSize   uint64

	View    *wgpu.TextureView
	Sampler *Sampler
}

// ArgumentGroupDesc describes the resources bound at one @group index.
type ArgumentGroupDesc struct {
	Entries []ArgumentEntry
	Label   string
}

// ArgumentGroup is a bound set of resources a pipeline reads through one
// @group index — rendercore's analogue of a descriptor set or bind group.
// It owns a GPU bind group and (derived from it) a bind group layout.
type ArgumentGroup struct {
	BindGroup       *wgpu.BindGroup
	BindGroupLayout *wgpu.BindGroupLayout
	entries         []ArgumentEntry
	label           string
}

// NewArgumentGroup creates an argument group on the device per desc.
func (d *Device) NewArgumentGroup(desc ArgumentGroupDesc) (*ArgumentGroup, error) {
	layoutEntries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	groupEntries := make([]wgpu.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		layoutEntries[i] = nativeLayoutEntry(e)
		groupEntries[i] = nativeGroupEntry(e)
	}
	layout, err := d.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: layoutEntries,
	})
	if err != nil {
		return nil, errors.Logf("gpu: create argument group layout "+desc.Label, err)
	}
	bg, err := d.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: groupEntries,
	})
	if err != nil {
		layout.Release()
		return nil, errors.Logf("gpu: create argument group "+desc.Label, err)
	}
	return &ArgumentGroup{BindGroup: bg, BindGroupLayout: layout, entries: desc.Entries, label: desc.Label}, nil
}

func nativeStages(s PipelineStages) wgpu.ShaderStage {
	var vis wgpu.ShaderStage
	if s&(StageVertexInput|StageVertexShader) != 0 {
		vis |= wgpu.ShaderStageVertex
	}
	if s&(StageEarlyFragmentTest|StageFragmentShader|StageLateFragmentTest|StageColorOutput) != 0 {
		vis |= wgpu.ShaderStageFragment
	}
	if s&StageComputeShader != 0 {
		vis |= wgpu.ShaderStageCompute
	}
	return vis
}

func nativeLayoutEntry(e ArgumentEntry) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{Binding: e.Binding, Visibility: nativeStages(e.Stages)}
	switch e.Kind {
	case ArgumentUniformBuffer:
		entry.Buffer = wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}
	case ArgumentStorageBuffer:
		entry.Buffer = wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}
	case ArgumentSampledImage:
		entry.Texture = wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat, ViewDimension: wgpu.TextureViewDimension2D}
	case ArgumentStorageImage:
		entry.StorageTexture = wgpu.StorageTextureBindingLayout{Access: wgpu.StorageTextureAccessWriteOnly, ViewDimension: wgpu.TextureViewDimension2D}
	case ArgumentSampler:
		entry.Sampler = wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}
	}
	return entry
}

func nativeGroupEntry(e ArgumentEntry) wgpu.BindGroupEntry {
	entry := wgpu.BindGroupEntry{Binding: e.Binding}
	switch e.Kind {
	case ArgumentUniformBuffer, ArgumentStorageBuffer:
		entry.Buffer = e.Buffer.Buffer
		entry.Offset = e.BufferOffset
		entry.Size = e.BufferSize
	case ArgumentSampledImage, ArgumentStorageImage:
		entry.TextureView = e.View
	case ArgumentSampler:
		entry.Sampler = e.Sampler.Sampler
	}
	return entry
}

// Release releases the argument group's GPU resources.
func (ag *ArgumentGroup) Release() {
	if ag.BindGroup != nil {
		ag.BindGroup.Release()
		ag.BindGroup = nil
	}
	if ag.BindGroupLayout != nil {
		ag.BindGroupLayout.Release()
		ag.BindGroupLayout = nil
	}
}
