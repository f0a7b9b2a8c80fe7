// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/target"
)

// ExecContext is passed to a job's Exec function and to any hooks attached
// to it. It exposes the job's resolved pins and a CommandEncoder for
// recording GPU work.
type ExecContext struct {
	Encoder *gpu.CommandEncoder
	Hub     *target.Hub

	job        JobIdx
	desc       *JobDesc
	outputIds  []target.Id
	inputIds   []target.Id
	params     map[paramKey]Value
}

// OutputImage returns the backing image for output pin i.
func (c *ExecContext) OutputImage(i int) *gpu.Image { return c.Hub.Get(c.outputIds[i]) }

// OutputBuffer returns the backing buffer for output pin i.
func (c *ExecContext) OutputBuffer(i int) *gpu.Buffer { return c.Hub.GetBuffer(c.outputIds[i]) }

// InputImage returns the backing image for input pin i.
func (c *ExecContext) InputImage(i int) *gpu.Image { return c.Hub.Get(c.inputIds[i]) }

// InputBuffer returns the backing buffer for input pin i.
func (c *ExecContext) InputBuffer(i int) *gpu.Buffer { return c.Hub.GetBuffer(c.inputIds[i]) }

// Param returns the value set for param pin i via WorkGraph.SetParam, or
// the unit value if none was set.
func (c *ExecContext) Param(i int) Value {
	v, ok := c.params[paramKey{c.job, i}]
	if !ok {
		return Unit()
	}
	return v
}

// exec runs every job in p.order (already pruned to the jobs the planner
// selected, in forward order), honoring before/after hooks, all within one
// command encoder per job.
func (g *WorkGraph) exec(p *plan) error {
	hooksFor := func(job JobIdx, point HookPoint) []hook {
		var hs []hook
		for _, h := range g.hooks {
			if h.job == job && h.point == point {
				hs = append(hs, h)
			}
		}
		return hs
	}

	dev := g.device
	for _, ji := range p.order {
		job := &g.jobs[ji]
		enc, err := dev.NewCommandEncoder(job.Name)
		if err != nil {
			return errors.Logf("graph: exec "+job.Name, err)
		}
		ctx := &ExecContext{
			Encoder:   enc,
			Hub:       p.hub,
			job:       ji,
			desc:      job,
			outputIds: p.outputIds[ji],
			inputIds:  p.inputIds[ji],
			params:    g.params,
		}
		for _, h := range hooksFor(ji, HookBeforeJob) {
			if err := h.fn(ctx); err != nil {
				return errors.Logf("graph: before-hook "+job.Name, err)
			}
		}
		if job.Exec != nil {
			if err := job.Exec(ctx); err != nil {
				return errors.Logf("graph: job "+job.Name, err)
			}
		}
		for _, h := range hooksFor(ji, HookAfterJob) {
			if err := h.fn(ctx); err != nil {
				return errors.Logf("graph: after-hook "+job.Name, err)
			}
		}
		cb, err := enc.Finish()
		if err != nil {
			return errors.Logf("graph: finish "+job.Name, err)
		}
		q := dev.Queue()
		epochID, _ := q.Begin()
		q.Submit(epochID, cb)
	}
	return nil
}
