// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/cogentcore/webgpu/wgpu"

// PixelFormat enumerates the pixel formats that render targets and sampled
// images are described in. It is deliberately smaller than wgpu's own
// [wgpu.TextureFormat]; Format.Native maps it onto the concrete wgpu format.
type PixelFormat int32

const (
	FormatUndefined PixelFormat = iota
	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb
	FormatRGBA16Float
	FormatRGBA32Float
	FormatR8Unorm
	FormatR32Float
	FormatDepth32Float
	FormatDepth24Stencil8
)

// Native returns the wgpu texture format backing f.
func (f PixelFormat) Native() wgpu.TextureFormat {
	switch f {
	case FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case FormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case FormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case FormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	case FormatRGBA16Float:
		return wgpu.TextureFormatRGBA16Float
	case FormatRGBA32Float:
		return wgpu.TextureFormatRGBA32Float
	case FormatR8Unorm:
		return wgpu.TextureFormatR8Unorm
	case FormatR32Float:
		return wgpu.TextureFormatR32Float
	case FormatDepth32Float:
		return wgpu.TextureFormatDepth32Float
	case FormatDepth24Stencil8:
		return wgpu.TextureFormatDepth24PlusStencil8
	}
	return wgpu.TextureFormatUndefined
}

// IsColor reports whether f is a color-renderable (non depth/stencil) format.
func (f PixelFormat) IsColor() bool {
	return f != FormatUndefined && !f.IsDepth() && !f.IsStencil()
}

// IsDepth reports whether f carries a depth component.
func (f PixelFormat) IsDepth() bool {
	return f == FormatDepth32Float || f == FormatDepth24Stencil8
}

// IsStencil reports whether f carries a stencil component.
func (f PixelFormat) IsStencil() bool {
	return f == FormatDepth24Stencil8
}

// IsSRGB reports whether samples of f are stored gamma-encoded.
func (f PixelFormat) IsSRGB() bool {
	return f == FormatRGBA8UnormSrgb || f == FormatBGRA8UnormSrgb
}

// Extent3D is the size, in texels, of an image or a render target. A
// pending target whose Extent is the zero value is a wildcard: it takes on
// whatever non-zero extent the other jobs touching the same target agree on.
type Extent3D struct {
	Width, Height, Depth uint32
}

// IsZero reports whether e is the wildcard extent (0,0,0).
func (e Extent3D) IsZero() bool { return e.Width == 0 && e.Height == 0 && e.Depth == 0 }

// Merge reconciles e with other, following the "agree or zero" rule used by
// the target hub: a zero extent on either side yields the other extent, and
// two non-zero, unequal extents are a hard conflict (ok == false).
func (e Extent3D) Merge(other Extent3D) (merged Extent3D, ok bool) {
	if e.IsZero() {
		return other, true
	}
	if other.IsZero() {
		return e, true
	}
	if e != other {
		return Extent3D{}, false
	}
	return e, true
}

// UsageFlags is a bitmask of the ways a buffer or image will be accessed
// over its lifetime. Usage flags accumulate: every job planning against a
// target ORs in the flags it needs before the resource is ever allocated.
type UsageFlags uint32

const (
	UsageCopySrc UsageFlags = 1 << iota
	UsageCopyDst
	UsageSampled
	UsageStorage
	UsageColorTarget
	UsageDepthStencilTarget
	UsageVertex
	UsageIndex
	UsageUniform
	UsageIndirect
)

// Has reports whether all bits in want are set in u.
func (u UsageFlags) Has(want UsageFlags) bool { return u&want == want }

// MemoryPlacement controls where a buffer's backing storage lives and how
// the CPU may reach it.
type MemoryPlacement int32

const (
	// MemoryDevice is fast device-local memory, not CPU-visible.
	MemoryDevice MemoryPlacement = iota
	// MemoryShared is CPU- and GPU-visible memory, typically slower to
	// access from shader code but avoiding explicit staging copies.
	MemoryShared
	// MemoryUpload is host-visible, write-combined memory meant for
	// CPU-to-GPU staging uploads.
	MemoryUpload
	// MemoryDownload is host-visible, cached memory meant for GPU-to-CPU
	// readback.
	MemoryDownload
)

// PipelineStages is a bitmask of points in the pipeline that can be
// synchronized against. rendercore uses a single GENERAL-style
// synchronization model: there are no image layout transitions, only
// stage-to-stage execution and memory barriers expressed with this mask.
type PipelineStages uint32

const (
	StageDrawIndirect PipelineStages = 1 << iota
	StageVertexInput
	StageVertexShader
	StageEarlyFragmentTest
	StageFragmentShader
	StageLateFragmentTest
	StageColorOutput
	StageComputeShader
	StageTransfer
	// StageBottomOfPipe is the sentinel stage used to express "after
	// everything", e.g. the barrier a present operation waits on.
	StageBottomOfPipe
)

// ShaderSourceKind names the shading language a ShaderLibrary was built from.
type ShaderSourceKind int32

const (
	SourceWGSL ShaderSourceKind = iota
	SourceGLSL
	SourceMSL
	SourceSPIRV
)
