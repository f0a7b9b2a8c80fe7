// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver drives the per-frame acquire/run/present cycle against a
// window surface, translating gpu.Surface's resize and out-of-date
// conditions into a single RunFrame call a host application's main loop can
// call unconditionally once per frame.
package driver

import (
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/graph"
)

// Surface is the subset of gpu.Surface's behavior Viewport depends on. It
// exists so tests can substitute [FakeSurface] instead of opening a real
// window and GPU device.
type Surface interface {
	Format() gpu.PixelFormat
	Resize(width, height uint32)
	NextFrame() (Frame, error)
	Release()
}

// Frame is the subset of gpu.Frame's behavior Viewport depends on.
type Frame interface {
	Present()
	ColorTarget() (*gpu.Image, gpu.PixelFormat)
}

// Viewport owns a Surface and a WorkGraph whose sink is the surface's color
// target, and drives the acquire → bind-external → Run → Present cycle
// every frame.
type Viewport struct {
	surface  Surface
	graph    *graph.WorkGraph
	colorJob graph.JobIdx
	colorPin int
}

// New returns a Viewport driving wg against sf. colorJob/colorPin name the
// sink output pin that the surface's current frame image is bound to as an
// external target before each run.
func New(sf Surface, wg *graph.WorkGraph, colorJob graph.JobIdx, colorPin int) *Viewport {
	return &Viewport{surface: sf, graph: wg, colorJob: colorJob, colorPin: colorPin}
}

// Resize forwards a window resize to the underlying surface. It is safe to
// call from an event handler; the actual swapchain reconfiguration is
// deferred to the next RunFrame's NextFrame call.
func (vp *Viewport) Resize(width, height uint32) { vp.surface.Resize(width, height) }

// RunFrame acquires the surface's current frame, binds it as the work
// graph's external color target, plans (if needed) and runs the graph, and
// presents the frame. It returns nil without doing any work if the surface
// reports a zero extent (e.g. a minimized window); gpu.ErrOutOfDate and
// gpu.ErrSurfaceLost are returned to the caller to decide whether to retry
// or tear down, per gpu.Surface.NextFrame's documented conditions.
func (vp *Viewport) RunFrame() error {
	frame, err := vp.surface.NextFrame()
	if err == gpu.ErrZeroExtent {
		return nil
	}
	if err != nil {
		return err
	}
	defer frame.Present()

	if _, err := vp.graph.Plan(); err != nil {
		return err
	}
	hub := vp.graph.Hub()
	img, _ := frame.ColorTarget()
	hub.External(vp.graph.OutputTargetID(vp.colorJob, vp.colorPin), img)

	return vp.graph.Run()
}
