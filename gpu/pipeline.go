// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Topology is the primitive assembly mode for a RenderPipeline.
type Topology int32

const (
	TopologyTriangleList Topology = iota
	TopologyLineList
	TopologyPointList
)

func (t Topology) native() wgpu.PrimitiveTopology {
	switch t {
	case TopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case TopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

// VertexAttribute describes one field of a vertex buffer's per-vertex layout.
type VertexAttribute struct {
	Format   wgpu.VertexFormat
	Offset   uint64
	Location uint32
}

// VertexLayout describes one bound vertex buffer's stride and attributes.
type VertexLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
	PerInstance bool
}

func (v VertexLayout) native() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(v.Attributes))
	for i, a := range v.Attributes {
		attrs[i] = wgpu.VertexAttribute{Format: a.Format, Offset: a.Offset, ShaderLocation: a.Location}
	}
	step := wgpu.VertexStepModeVertex
	if v.PerInstance {
		step = wgpu.VertexStepModeInstance
	}
	return wgpu.VertexBufferLayout{ArrayStride: v.Stride, StepMode: step, Attributes: attrs}
}

// ColorTarget describes one color attachment a RenderPipeline writes, and
// its optional alpha blending state.
type ColorTarget struct {
	Format PixelFormat
	Blend  bool
}

// RenderPipelineDesc describes a render pipeline: a vertex and fragment
// entry point drawn from one or two shader libraries, the vertex buffer
// layouts they consume, the color targets they write, and an optional
// depth/stencil target.
type RenderPipelineDesc struct {
	Vertex        *ShaderLibrary
	VertexEntry   string
	Fragment      *ShaderLibrary
	FragmentEntry string
	Buffers       []VertexLayout
	Topology      Topology
	ColorTargets  []ColorTarget
	DepthFormat   PixelFormat // FormatUndefined disables depth testing
	Label         string
}

// ComputePipelineDesc describes a compute pipeline: a single entry point in
// a shader library.
type ComputePipelineDesc struct {
	Compute      *ShaderLibrary
	ComputeEntry string
	Label        string
}

// Pipeline is a compiled render or compute pipeline. Exactly one of Render
// or Compute is non-nil, depending on which constructor built it.
type Pipeline struct {
	Render  *wgpu.RenderPipeline
	Compute *wgpu.ComputePipeline
}

// NewRenderPipeline compiles desc into a render pipeline using dynamic
// rendering (no separate render-pass or framebuffer object): color and
// depth targets are named by format only, and are bound per-draw by the
// CommandEncoder's render sub-encoder.
func (d *Device) NewRenderPipeline(desc RenderPipelineDesc) (*Pipeline, error) {
	buffers := make([]wgpu.VertexBufferLayout, len(desc.Buffers))
	for i, b := range desc.Buffers {
		buffers[i] = b.native()
	}
	targets := make([]wgpu.ColorTargetState, len(desc.ColorTargets))
	for i, ct := range desc.ColorTargets {
		state := wgpu.ColorTargetState{Format: ct.Format.Native(), WriteMask: wgpu.ColorWriteMaskAll}
		if ct.Blend {
			state.Blend = &wgpu.BlendState{
				Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorSrcAlpha, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
				Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
			}
		}
		targets[i] = state
	}
	var depthStencil *wgpu.DepthStencilState
	if desc.DepthFormat != FormatUndefined {
		depthStencil = &wgpu.DepthStencilState{
			Format:            desc.DepthFormat.Native(),
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
		}
	}
	rp, err := d.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: desc.Label,
		Vertex: wgpu.VertexState{
			Module:     desc.Vertex.Module,
			EntryPoint: desc.VertexEntry,
			Buffers:    buffers,
		},
		Primitive: wgpu.PrimitiveState{Topology: desc.Topology.native()},
		Fragment: &wgpu.FragmentState{
			Module:     desc.Fragment.Module,
			EntryPoint: desc.FragmentEntry,
			Targets:    targets,
		},
		DepthStencil: depthStencil,
		Multisample:  wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return nil, errors.Logf("gpu: create render pipeline "+desc.Label, err)
	}
	return &Pipeline{Render: rp}, nil
}

// NewComputePipeline compiles desc into a compute pipeline.
func (d *Device) NewComputePipeline(desc ComputePipelineDesc) (*Pipeline, error) {
	cp, err := d.Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: desc.Label,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     desc.Compute.Module,
			EntryPoint: desc.ComputeEntry,
		},
	})
	if err != nil {
		return nil, errors.Logf("gpu: create compute pipeline "+desc.Label, err)
	}
	return &Pipeline{Compute: cp}, nil
}

// Warps returns the number of workgroups needed to cover n elements given
// threads-per-workgroup along one dimension: ceil(n / threads).
func Warps(n, threads int) int {
	if threads <= 0 {
		return 0
	}
	return (n + threads - 1) / threads
}

// Release releases the pipeline's GPU resources.
func (p *Pipeline) Release() {
	if p.Render != nil {
		p.Render.Release()
		p.Render = nil
	}
	if p.Compute != nil {
		p.Compute.Release()
		p.Compute = nil
	}
}
