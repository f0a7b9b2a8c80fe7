// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jobs holds the small set of built-in work-graph jobs every
// rendercore application is expected to end its graph with: presenting the
// final color target, or sinking it into some other caller-defined action
// (an overlay compositor, a screenshot capture, a headless test).
package jobs

import (
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/graph"
	"github.com/ashforge/rendercore/render/target"
)

// PresentDesc returns the JobDesc for the Present job: it reads a single
// color target and records the stage barrier a present operation waits on.
// The actual swapchain Present call happens outside the work graph, in
// render/driver.Viewport, once every job's command buffer has been
// submitted; Present only needs to guarantee the color target's writes are
// complete by the time that call happens.
func PresentDesc(colorUsage gpu.UsageFlags) graph.JobDesc {
	return graph.JobDesc{
		Name: "present",
		Reads: []graph.PinDesc{
			{Name: "color", Kind: target.KindImage2D, Usage: colorUsage | gpu.UsageColorTarget},
		},
		Exec: func(ctx *graph.ExecContext) error {
			ctx.Encoder.Present(gpu.StageColorOutput)
			return nil
		},
	}
}

// OverlaySinkDesc returns the JobDesc for a single-read sink job whose
// actual work is supplied by the caller, e.g. compositing a debug overlay
// or UI layer onto the graph's final color target without the graph itself
// needing to know about it.
func OverlaySinkDesc(usage gpu.UsageFlags, exec graph.ExecFunc) graph.JobDesc {
	return graph.JobDesc{
		Name: "overlay-sink",
		Reads: []graph.PinDesc{
			{Name: "color", Kind: target.KindImage2D, Usage: usage},
		},
		Exec: exec,
	}
}
