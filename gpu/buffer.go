// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferDesc describes a buffer to be created on a Device.
type BufferDesc struct {
	Size      uint64
	Usage     UsageFlags
	Placement MemoryPlacement
	Label     string
}

// Buffer is a linear block of device memory, usable as vertex, index,
// uniform, storage or staging data depending on its usage flags.
type Buffer struct {
	Buffer    *wgpu.Buffer
	Desc      BufferDesc
	device    *Device
}

// NewBuffer creates a buffer of desc.Size bytes with the given usage and
// placement.
func (d *Device) NewBuffer(desc BufferDesc) (*Buffer, error) {
	wb, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             desc.Size,
		Usage:            nativeBufferUsage(desc.Usage, desc.Placement),
		MappedAtCreation: desc.Placement == MemoryUpload,
	})
	if err != nil {
		return nil, errors.Logf("gpu: create buffer", err)
	}
	return &Buffer{Buffer: wb, Desc: desc, device: d}, nil
}

func nativeBufferUsage(u UsageFlags, placement MemoryPlacement) wgpu.BufferUsage {
	var nu wgpu.BufferUsage
	if u.Has(UsageCopySrc) {
		nu |= wgpu.BufferUsageCopySrc
	}
	if u.Has(UsageCopyDst) {
		nu |= wgpu.BufferUsageCopyDst
	}
	if u.Has(UsageVertex) {
		nu |= wgpu.BufferUsageVertex
	}
	if u.Has(UsageIndex) {
		nu |= wgpu.BufferUsageIndex
	}
	if u.Has(UsageUniform) {
		nu |= wgpu.BufferUsageUniform
	}
	if u.Has(UsageStorage) {
		nu |= wgpu.BufferUsageStorage
	}
	if u.Has(UsageIndirect) {
		nu |= wgpu.BufferUsageIndirect
	}
	switch placement {
	case MemoryUpload:
		nu |= wgpu.BufferUsageCopySrc | wgpu.BufferUsageMapWrite
	case MemoryDownload:
		nu |= wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead
	}
	return nu
}

// Write copies data into the buffer at byteOffset via the device's default
// queue. It is the standard path for uploading per-frame uniform and
// storage data; large one-shot uploads should instead go through a staging
// Buffer with MemoryUpload placement and a copy command.
func (b *Buffer) Write(byteOffset uint64, data []byte) error {
	return errors.Logf("gpu: write buffer", b.device.Queue().Queue.WriteBuffer(b.Buffer, byteOffset, data))
}

// MapWrite maps an upload buffer's memory for direct CPU writes and invokes
// fn with the mapped byte slice. The mapping is unmapped when fn returns.
// MapWrite panics if b was not created with MemoryUpload placement.
func (b *Buffer) MapWrite(fn func(dst []byte)) error {
	if b.Desc.Placement != MemoryUpload {
		panic("gpu: MapWrite requires a buffer with MemoryUpload placement")
	}
	mapped := b.Buffer.GetMappedRange(0, uint(b.Desc.Size))
	fn(mapped)
	b.Buffer.Unmap()
	return nil
}

// Release releases the buffer's GPU resources.
func (b *Buffer) Release() {
	if b.Buffer == nil {
		return
	}
	b.Buffer.Release()
	b.Buffer = nil
}
