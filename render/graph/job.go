// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the work graph: a job-level render graph that is
// planned once (toposort, target allocation) and then executed every frame
// without re-planning, as long as its shape does not change. A job's pins
// are numbered by convention rather than named: outputs are
// [updates..creates] and inputs are [updates..reads..params], so that a
// pin's role is recoverable from its index alone via updateIdx/createIdx/
// readIdx/paramIdx.
package graph

import (
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/target"
)

// PinRole is the role one pin plays in a job's signature.
type PinRole int32

const (
	RoleUpdate PinRole = iota
	RoleCreate
	RoleRead
	RoleParam
)

// PinDesc describes one target-carrying pin (an update, create, or read).
// Param pins do not carry a PinDesc; they are named in JobDesc.Params and
// take their value from WorkGraph.SetParam (Unit if never set).
type PinDesc struct {
	Name  string
	Kind  target.Kind
	Usage gpu.UsageFlags
	// Extent/Format/Size are merged into the target's description for
	// every kind of pin, under the hub's agree-or-zero rules; a zero value
	// leaves that property unconstrained.
	Extent gpu.Extent3D
	Format gpu.PixelFormat
	Size   uint64
}

// JobDesc is a job's static signature: the shape of its pins, independent
// of any particular graph it is wired into. Updates are the pins shared
// between outputs and inputs (the same logical target, read then
// rewritten); the output pins are Updates then Creates, and the input pins
// are Updates then Reads then Params.
type JobDesc struct {
	Name string

	// Updates describes the update pins, appearing as both an output
	// (index 0..len) and an input (index 0..len) of the job.
	Updates []PinDesc
	// Creates describes the create-only output pins, appended after Updates.
	Creates []PinDesc
	// Reads describes the read-only input pins, appended after Updates.
	Reads []PinDesc
	// Params names the non-target input pins, appended after Reads. Their
	// runtime values are supplied per-run via WorkGraph.SetParam.
	Params []string

	// Plan decides, during the planning pass, which of this job's input
	// pins it actually needs resolved this run (see Planner.Require). A
	// job with no Plan is assumed to need every update and read input, so
	// most jobs never need to set this; it exists for jobs whose inputs
	// depend on their own params or state, e.g. a job that only samples a
	// shadow map when shadows are enabled this frame.
	Plan PlanFunc

	// Exec runs the job's GPU work once the graph has resolved every pin
	// to a concrete resource.
	Exec ExecFunc
}

// ExecFunc is a job's recorded GPU work. ctx exposes the resolved resource
// behind every pin by index, in output-then-input order (see OutputImage/
// InputImage/Param).
type ExecFunc func(ctx *ExecContext) error

// PlanFunc is called once per planning pass for a job the planner has
// already selected to run (see Planner), in reverse topological order
// starting from the graph's sinks. It lets the job narrow down which of
// its input pins it actually needs this run; the producer behind an
// unrequested pin is left out of the plan, along with that producer's own
// upstream chain, unless some other selected job also requires it through
// a different edge.
type PlanFunc func(p *Planner) error

// Planner is passed to a selected job's PlanFunc.
type Planner struct {
	needed []bool
}

// Require marks input pin i (an update or read pin; param pins have no
// producer and Require has no effect on them) as needed by this job's
// Exec this run.
func (p *Planner) Require(pin int) {
	if pin < 0 || pin >= len(p.needed) {
		panic("graph: Require of out-of-range input pin")
	}
	p.needed[pin] = true
}

// NumOutputs returns the number of output pins: updates then creates.
func (d *JobDesc) NumOutputs() int { return len(d.Updates) + len(d.Creates) }

// NumInputs returns the number of input pins: updates then reads then params.
func (d *JobDesc) NumInputs() int { return len(d.Updates) + len(d.Reads) + len(d.Params) }

// updateIdxOut reports whether output pin index i is an update pin, and if so
// its index within Updates (equal to i, by construction).
func (d *JobDesc) updateIdxOut(i int) (int, bool) {
	if i < len(d.Updates) {
		return i, true
	}
	return 0, false
}

// createIdx reports whether output pin index i is a create pin, and its
// index within Creates.
func (d *JobDesc) createIdx(i int) (int, bool) {
	if i >= len(d.Updates) && i < d.NumOutputs() {
		return i - len(d.Updates), true
	}
	return 0, false
}

// updateIdxIn reports whether input pin index i is an update pin, and its
// index within Updates.
func (d *JobDesc) updateIdxIn(i int) (int, bool) {
	if i < len(d.Updates) {
		return i, true
	}
	return 0, false
}

// readIdx reports whether input pin index i is a read pin, and its index
// within Reads.
func (d *JobDesc) readIdx(i int) (int, bool) {
	lo, hi := len(d.Updates), len(d.Updates)+len(d.Reads)
	if i >= lo && i < hi {
		return i - lo, true
	}
	return 0, false
}

// paramIdx reports whether input pin index i is a param pin, and its index
// within Params.
func (d *JobDesc) paramIdx(i int) (int, bool) {
	lo := len(d.Updates) + len(d.Reads)
	if i >= lo && i < d.NumInputs() {
		return i - lo, true
	}
	return 0, false
}

// OutputPinDesc returns the PinDesc for output pin index i, for callers
// (such as render/builder) that need to mirror a producer's pin shape when
// wiring a consumer's update/read pin.
func (d *JobDesc) OutputPinDesc(i int) PinDesc { return d.outputPinDesc(i) }

// outputPinDesc returns the PinDesc for output pin index i.
func (d *JobDesc) outputPinDesc(i int) PinDesc {
	if u, ok := d.updateIdxOut(i); ok {
		return d.Updates[u]
	}
	c, _ := d.createIdx(i)
	return d.Creates[c]
}

// inputPinDesc returns the PinDesc for input pin index i. It panics if i
// names a param pin, which callers should check with paramIdx first.
func (d *JobDesc) inputPinDesc(i int) PinDesc {
	if u, ok := d.updateIdxIn(i); ok {
		return d.Updates[u]
	}
	r, _ := d.readIdx(i)
	return d.Reads[r]
}
