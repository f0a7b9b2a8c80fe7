// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// CommandEncoder records a sequence of GPU commands to submit as one
// command buffer. It exposes sub-encoders (Copy, BeginRender, BeginCompute)
// and direct calls (Barrier, InitImage, Present) rather than one flat
// command list, matching the way the
// render-graph executor in render/graph hands each job exactly the kind of
// recording surface its pin shape calls for.
type CommandEncoder struct {
	Encoder *wgpu.CommandEncoder
	device  *Device
	label   string
}

// NewCommandEncoder begins recording a new command buffer.
func (d *Device) NewCommandEncoder(label string) (*CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, errors.Logf("gpu: create command encoder", err)
	}
	return &CommandEncoder{Encoder: enc, device: d, label: label}, nil
}

// Finish ends recording and returns the command buffer, ready for
// Queue.Submit. The CommandEncoder must not be used again afterward.
func (ce *CommandEncoder) Finish() (*wgpu.CommandBuffer, error) {
	return ce.Encoder.Finish(&wgpu.CommandBufferDescriptor{Label: ce.label}), nil
}

// Barrier records a synchronization point between srcStages and dstStages.
// wgpu tracks resource hazards automatically from the bindings and
// attachments each pass declares, so this does not emit a native barrier
// command; it exists so the render-graph executor has a single place to
// express "everything in srcStages before this point must complete before
// dstStages after it proceeds" regardless of which backend is active,
// matching the single GENERAL-style synchronization model the rest of this
// package assumes.
func (ce *CommandEncoder) Barrier(srcStages, dstStages PipelineStages) {}

// CopyEncoder records buffer/image copy commands.
type CopyEncoder struct{ ce *CommandEncoder }

// Copy begins recording copy commands on this CommandEncoder.
func (ce *CommandEncoder) Copy() *CopyEncoder { return &CopyEncoder{ce} }

// BufferToBuffer copies size bytes from src at srcOffset to dst at dstOffset.
func (c *CopyEncoder) BufferToBuffer(src *Buffer, srcOffset uint64, dst *Buffer, dstOffset uint64, size uint64) {
	c.ce.Encoder.CopyBufferToBuffer(src.Buffer, srcOffset, dst.Buffer, dstOffset, size)
}

// BufferToImage copies tightly packed buffer data into an image.
func (c *CopyEncoder) BufferToImage(src *Buffer, dst *Image, extent Extent3D) {
	c.ce.Encoder.CopyBufferToTexture(
		&wgpu.ImageCopyBuffer{Buffer: src.Buffer, Layout: wgpu.TextureDataLayout{BytesPerRow: extent.Width * 4, RowsPerImage: extent.Height}},
		&wgpu.ImageCopyTexture{Texture: dst.Image},
		&wgpu.Extent3D{Width: extent.Width, Height: extent.Height, DepthOrArrayLayers: max1(extent.Depth)},
	)
}

// ImageToBuffer copies image data into a tightly packed buffer.
func (c *CopyEncoder) ImageToBuffer(src *Image, dst *Buffer, extent Extent3D) {
	c.ce.Encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{Texture: src.Image},
		&wgpu.ImageCopyBuffer{Buffer: dst.Buffer, Layout: wgpu.TextureDataLayout{BytesPerRow: extent.Width * 4, RowsPerImage: extent.Height}},
		&wgpu.Extent3D{Width: extent.Width, Height: extent.Height, DepthOrArrayLayers: max1(extent.Depth)},
	)
}

func max1(d uint32) uint32 {
	if d == 0 {
		return 1
	}
	return d
}

// InitImage records commands that bring a freshly created image into a
// defined state before its first real use, by clearing it. rendercore's
// layout-free synchronization model has no "undefined layout" the way
// Vulkan does, but a newly allocated image's contents are still undefined
// until written, and targets created with PlanCreate are expected to come
// up cleared.
func (ce *CommandEncoder) InitImage(view *wgpu.TextureView, format PixelFormat) {
	if format.IsDepth() || format.IsStencil() {
		pass := ce.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
				View: view, DepthLoadOp: wgpu.LoadOpClear, DepthStoreOp: wgpu.StoreOpStore, DepthClearValue: 1,
			},
		})
		pass.End()
		return
	}
	pass := ce.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View: view, LoadOp: wgpu.LoadOpClear, StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.End()
}

// ColorAttachment describes one color target bound for a RenderEncoder pass.
type ColorAttachment struct {
	View       *wgpu.TextureView
	Clear      bool
	ClearColor [4]float64
}

// DepthAttachment describes the depth/stencil target bound for a
// RenderEncoder pass.
type DepthAttachment struct {
	View  *wgpu.TextureView
	Clear bool
}

// RenderEncoder records draw commands within dynamic rendering: there is no
// separate render-pass or framebuffer object to pre-create, just the set of
// attachment views named at BeginRender time.
type RenderEncoder struct {
	ce   *CommandEncoder
	pass *wgpu.RenderPassEncoder
}

// BeginRender opens a render pass writing the given color attachments and,
// optionally, a depth/stencil attachment.
func (ce *CommandEncoder) BeginRender(color []ColorAttachment, depth *DepthAttachment) *RenderEncoder {
	atts := make([]wgpu.RenderPassColorAttachment, len(color))
	for i, c := range color {
		op := wgpu.LoadOpLoad
		if c.Clear {
			op = wgpu.LoadOpClear
		}
		atts[i] = wgpu.RenderPassColorAttachment{
			View: c.View, LoadOp: op, StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: c.ClearColor[0], G: c.ClearColor[1], B: c.ClearColor[2], A: c.ClearColor[3]},
		}
	}
	desc := &wgpu.RenderPassDescriptor{ColorAttachments: atts}
	if depth != nil {
		op := wgpu.LoadOpLoad
		if depth.Clear {
			op = wgpu.LoadOpClear
		}
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View: depth.View, DepthLoadOp: op, DepthStoreOp: wgpu.StoreOpStore, DepthClearValue: 1,
		}
	}
	return &RenderEncoder{ce: ce, pass: ce.Encoder.BeginRenderPass(desc)}
}

// WithPipeline binds the render pipeline to use for subsequent draws.
func (re *RenderEncoder) WithPipeline(p *Pipeline) *RenderEncoder {
	re.pass.SetPipeline(p.Render)
	return re
}

// WithViewport sets the viewport rectangle and depth range.
func (re *RenderEncoder) WithViewport(x, y, w, h float32, minDepth, maxDepth float32) *RenderEncoder {
	re.pass.SetViewport(x, y, w, h, minDepth, maxDepth)
	return re
}

// WithScissor sets the scissor rectangle.
func (re *RenderEncoder) WithScissor(x, y, w, h uint32) *RenderEncoder {
	re.pass.SetScissorRect(x, y, w, h)
	return re
}

// WithArguments binds an ArgumentGroup at the given @group index.
func (re *RenderEncoder) WithArguments(group uint32, ag *ArgumentGroup, dynamicOffsets ...uint32) *RenderEncoder {
	re.pass.SetBindGroup(group, ag.BindGroup, dynamicOffsets)
	return re
}

// WithConstants pushes constant data visible to the given stages.
func (re *RenderEncoder) WithConstants(stages PipelineStages, offset uint32, data []byte) *RenderEncoder {
	re.pass.SetPushConstants(nativeStages(stages), offset, data)
	return re
}

// BindVertexBuffers binds one or more vertex buffers starting at slot 0.
func (re *RenderEncoder) BindVertexBuffers(buffers ...*Buffer) *RenderEncoder {
	for i, b := range buffers {
		re.pass.SetVertexBuffer(uint32(i), b.Buffer, 0, wgpu.WholeSize)
	}
	return re
}

// BindIndexBuffer binds the index buffer used by subsequent DrawIndexed calls.
func (re *RenderEncoder) BindIndexBuffer(b *Buffer, format wgpu.IndexFormat) *RenderEncoder {
	re.pass.SetIndexBuffer(b.Buffer, format, 0, wgpu.WholeSize)
	return re
}

// Draw issues a non-indexed draw call.
func (re *RenderEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	re.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexed issues an indexed draw call.
func (re *RenderEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	re.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

// End ends the render pass.
func (re *RenderEncoder) End() { re.pass.End() }

// ComputeEncoder records dispatch commands.
type ComputeEncoder struct {
	ce   *CommandEncoder
	pass *wgpu.ComputePassEncoder
}

// BeginCompute opens a compute pass.
func (ce *CommandEncoder) BeginCompute() *ComputeEncoder {
	return &ComputeEncoder{ce: ce, pass: ce.Encoder.BeginComputePass(&wgpu.ComputePassDescriptor{})}
}

// WithPipeline binds the compute pipeline to use for subsequent dispatches.
func (cp *ComputeEncoder) WithPipeline(p *Pipeline) *ComputeEncoder {
	cp.pass.SetPipeline(p.Compute)
	return cp
}

// WithArguments binds an ArgumentGroup at the given @group index.
func (cp *ComputeEncoder) WithArguments(group uint32, ag *ArgumentGroup, dynamicOffsets ...uint32) *ComputeEncoder {
	cp.pass.SetBindGroup(group, ag.BindGroup, dynamicOffsets)
	return cp
}

// Dispatch dispatches nx*ny*nz workgroups.
func (cp *ComputeEncoder) Dispatch(nx, ny, nz uint32) { cp.pass.DispatchWorkgroups(nx, ny, nz) }

// Dispatch1D dispatches enough workgroups along x to cover n elements given
// threads-per-workgroup, via [Warps].
func (cp *ComputeEncoder) Dispatch1D(n, threads int) {
	cp.pass.DispatchWorkgroups(uint32(Warps(n, threads)), 1, 1)
}

// End ends the compute pass.
func (cp *ComputeEncoder) End() { cp.pass.End() }

// Present records the steps needed before a surface's current frame can be
// handed to the platform: primarily the implicit stage-to-bottom-of-pipe
// barrier every present waits on. The actual present call happens on
// [Frame.Present] once the command buffer built from this encoder has been
// submitted.
func (ce *CommandEncoder) Present(srcStages PipelineStages) {
	ce.Barrier(srcStages, StageBottomOfPipe)
}
