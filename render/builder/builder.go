// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package builder provides RenderBuilder, a fluent layer over
// render/graph.WorkGraph that saves callers from hand-indexing pins and
// edges for the common case of a job reading a named target produced
// earlier in the same builder session.
package builder

import (
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/graph"
	"github.com/ashforge/rendercore/render/target"
)

// handle is a named, builder-tracked output pin: the job that produced it
// and which of its output pins to wire consumers to.
type handle struct {
	job JobIdx
	pin int
}

// JobIdx re-exports graph.JobIdx so callers of this package rarely need to
// import render/graph directly for simple graphs.
type JobIdx = graph.JobIdx

// RenderBuilder accumulates jobs and named targets, translating
// CreateTarget/CreateBuffer declarations and the creates/updates/reads
// names passed to AddJob into the underlying WorkGraph's AddJob/Connect
// calls.
type RenderBuilder struct {
	wg      *graph.WorkGraph
	named   map[string]handle
	pending map[string]graph.PinDesc
}

// New returns a RenderBuilder wrapping wg.
func New(wg *graph.WorkGraph) *RenderBuilder {
	return &RenderBuilder{wg: wg, named: map[string]handle{}, pending: map[string]graph.PinDesc{}}
}

// CreateTarget declares a new named 2D image target with the given extent,
// format and usage, to be created by the next job added via AddJob that
// lists name in its creates.
func (b *RenderBuilder) CreateTarget(name string, extent gpu.Extent3D, format gpu.PixelFormat, usage gpu.UsageFlags) {
	b.pending[name] = graph.PinDesc{Name: name, Kind: target.KindImage2D, Extent: extent, Format: format, Usage: usage}
}

// CreateBuffer declares a new named buffer target.
func (b *RenderBuilder) CreateBuffer(name string, size uint64, usage gpu.UsageFlags) {
	b.pending[name] = graph.PinDesc{Name: name, Kind: target.KindBuffer, Size: size, Usage: usage}
}

// AddJob adds a job to the graph. creates/updates/reads name the pending or
// previously created targets this job produces/consumes, in order; each
// name in creates must have a matching CreateTarget/CreateBuffer call
// first, and each name in updates/reads must have been produced by an
// earlier AddJob call in this builder.
func (b *RenderBuilder) AddJob(name string, creates, updates, reads []string, params []string, exec graph.ExecFunc) JobIdx {
	desc := graph.JobDesc{Name: name, Params: params, Exec: exec}
	for _, n := range updates {
		h, ok := b.named[n]
		if !ok {
			panic("builder: update of unknown target " + n)
		}
		desc.Updates = append(desc.Updates, b.wg.JobDescAt(h.job).OutputPinDesc(h.pin))
	}
	for _, n := range creates {
		pd, ok := b.pending[n]
		if !ok {
			panic("builder: create of undeclared target " + n)
		}
		desc.Creates = append(desc.Creates, pd)
	}
	for _, n := range reads {
		h, ok := b.named[n]
		if !ok {
			panic("builder: read of unknown target " + n)
		}
		desc.Reads = append(desc.Reads, b.wg.JobDescAt(h.job).OutputPinDesc(h.pin))
	}

	job := b.wg.AddJob(desc)

	outPin := 0
	for _, n := range updates {
		b.wg.Connect(b.named[n].job, b.named[n].pin, job, outPin)
		b.named[n] = handle{job, outPin}
		outPin++
	}
	for _, n := range creates {
		b.named[n] = handle{job, outPin}
		delete(b.pending, n)
		outPin++
	}

	inPin := len(updates)
	for _, n := range reads {
		b.wg.Connect(b.named[n].job, b.named[n].pin, job, inPin)
		inPin++
	}
	return job
}

// Sink marks the named target as a required output of the graph, keeping
// its producer alive even without a consuming job.
func (b *RenderBuilder) Sink(name string) {
	h, ok := b.named[name]
	if !ok {
		panic("builder: sink of unknown target " + name)
	}
	b.wg.SetSink(h.job, h.pin)
}

// Build returns the underlying WorkGraph, ready for Plan/Run.
func (b *RenderBuilder) Build() *graph.WorkGraph { return b.wg }
