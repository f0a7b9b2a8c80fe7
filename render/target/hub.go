// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package target implements the Hub: the registry of render targets a
// work graph plans against before any GPU resource actually exists. Jobs
// describe targets by how they touch them (create, update, read) and the
// Hub reconciles those descriptions into one allocation per logical
// target, merging usage flags and checking extent/format agreement.
package target

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/gpu"
)

// Id identifies one logical target within a work graph's planning pass.
// It is assigned by the planner (render/graph), not chosen by job authors.
type Id uint32

// Kind distinguishes the resource shape a target describes.
type Kind int32

const (
	KindImage2D Kind = iota
	KindImage3D
	KindBuffer
)

// Desc is the accumulated description of one logical target, built up by
// merging every job's plan call against it.
type Desc struct {
	Kind   Kind
	Extent gpu.Extent3D // images only; wildcard (zero) until a job pins it down
	Format gpu.PixelFormat
	Usage  gpu.UsageFlags
	Size   uint64 // buffers only
	Label  string
}

// merge reconciles other into d, following the Hub's usage-merge policy:
// extents must agree or one side must be the wildcard zero value, formats
// must agree exactly once both sides have named one, and usage flags
// simply accumulate.
func (d *Desc) merge(other Desc) error {
	if other.Label != "" {
		d.Label = other.Label
	}
	d.Usage |= other.Usage
	switch d.Kind {
	case KindImage2D, KindImage3D:
		merged, ok := d.Extent.Merge(other.Extent)
		if !ok {
			return errors.New("target: conflicting extents for " + d.Label)
		}
		d.Extent = merged
		if other.Format != gpu.FormatUndefined {
			if d.Format != gpu.FormatUndefined && d.Format != other.Format {
				return errors.New("target: conflicting formats for " + d.Label)
			}
			d.Format = other.Format
		}
	case KindBuffer:
		if other.Size != 0 {
			if d.Size != 0 && d.Size != other.Size {
				return errors.New("target: conflicting sizes for " + d.Label)
			}
			d.Size = other.Size
		}
	}
	return nil
}

// entry is one slot in the hub: its planned description, and, once
// resolved, its backing GPU resource.
type entry struct {
	desc     Desc
	external bool
	image    *gpu.Image
	buffer   *gpu.Buffer
}

// Hub is the registry of logical targets for one WorkGraph plan. A WorkGraph
// creates a new Hub each time it plans and reuses it across every run of
// that plan; external targets are supplied by a caller, who retains
// ownership of them.
type Hub struct {
	device  *gpu.Device
	entries map[Id]*entry
	next    Id
}

// New returns an empty Hub bound to device for resource allocation.
func New(device *gpu.Device) *Hub {
	return &Hub{device: device, entries: map[Id]*entry{}}
}

// Alloc reserves a new, as-yet-undescribed target id. The planner calls
// this once per logical target discovered while assigning target ids to
// job pins; PlanCreate/PlanUpdate/PlanRead are then called against the
// returned id to accumulate its description.
func (h *Hub) Alloc(kind Kind) Id {
	h.next++
	id := h.next
	h.entries[id] = &entry{desc: Desc{Kind: kind}}
	return id
}

// PlanCreate records that a job creates the target at id with desc,
// merging desc into whatever has already been planned for id.
func (h *Hub) PlanCreate(id Id, desc Desc) error { return h.plan(id, desc) }

// PlanUpdate records that a job both reads and writes the target at id,
// propagating its description across the update chain unchanged.
func (h *Hub) PlanUpdate(id Id, desc Desc) error { return h.plan(id, desc) }

// PlanRead records that a job only reads the target at id, contributing
// any usage flags the read requires (e.g. Sampled) without altering its
// extent or format expectations beyond what agreement checking requires.
func (h *Hub) PlanRead(id Id, desc Desc) error { return h.plan(id, desc) }

func (h *Hub) plan(id Id, desc Desc) error {
	e, ok := h.entries[id]
	if !ok {
		return errors.New("target: unknown id in plan call")
	}
	return e.desc.merge(desc)
}

// External registers id as backed by a caller-supplied image, bypassing
// allocation entirely. It is how render/driver.Viewport binds a work
// graph's sink target to an actual swapchain frame.
func (h *Hub) External(id Id, image *gpu.Image) {
	h.entries[id] = &entry{external: true, image: image, desc: Desc{Kind: KindImage2D}}
}

// ExternalBuffer registers id as backed by a caller-supplied buffer.
func (h *Hub) ExternalBuffer(id Id, buf *gpu.Buffer) {
	h.entries[id] = &entry{external: true, buffer: buf, desc: Desc{Kind: KindBuffer}}
}

// Resolve allocates backing GPU resources for every non-external target
// that does not already have one, requiring a fully resolved (non-wildcard,
// non-zero) extent or size for each. It is idempotent: targets allocated by
// an earlier Resolve call are left untouched, so a WorkGraph can call
// Resolve again on every run without leaking or reallocating its owned
// targets. It must be called once planning is complete and before the
// executor begins recording, since jobs executing in forward order expect
// Get to return a real resource immediately.
func (h *Hub) Resolve() error {
	for id, e := range h.entries {
		if e.external || e.image != nil || e.buffer != nil {
			continue
		}
		switch e.desc.Kind {
		case KindImage2D, KindImage3D:
			if e.desc.Extent.IsZero() {
				return errors.New("target: unresolved extent for target")
			}
			img, err := h.device.NewImage(gpu.ImageDesc{
				Extent: e.desc.Extent,
				Format: e.desc.Format,
				Usage:  e.desc.Usage,
				Label:  e.desc.Label,
			})
			if err != nil {
				return err
			}
			e.image = img
		case KindBuffer:
			if e.desc.Size == 0 {
				return errors.New("target: unresolved size for target")
			}
			buf, err := h.device.NewBuffer(gpu.BufferDesc{
				Size:  e.desc.Size,
				Usage: e.desc.Usage,
				Label: e.desc.Label,
			})
			if err != nil {
				return err
			}
			e.buffer = buf
		}
		_ = id
	}
	return nil
}

// Get returns the backing image for an image-kind target. It panics if id
// is unknown, and returns nil for an owned target before Resolve has run;
// the executor only ever calls Get for ids the planner assigned, after
// Resolve, so a panic indicates a bug in the planner rather than a
// condition callers need to handle.
func (h *Hub) Get(id Id) *gpu.Image {
	e, ok := h.entries[id]
	if !ok {
		panic("target: Get of unknown id")
	}
	return e.image
}

// GetBuffer returns the backing buffer for a buffer-kind target.
func (h *Hub) GetBuffer(id Id) *gpu.Buffer {
	e, ok := h.entries[id]
	if !ok {
		panic("target: GetBuffer of unknown id")
	}
	return e.buffer
}

// Desc returns the accumulated description for id.
func (h *Hub) Desc(id Id) Desc { return h.entries[id].desc }

// Release releases every non-external resource this hub allocated and
// forgets those targets. Caller-supplied External targets are left
// registered and untouched; their owner releases them.
func (h *Hub) Release() {
	for id, e := range h.entries {
		if e.external {
			continue
		}
		if e.image != nil {
			e.image.Release()
		}
		if e.buffer != nil {
			e.buffer.Release()
		}
		delete(h.entries, id)
	}
}
