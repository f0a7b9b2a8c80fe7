// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/target"
)

// HookId identifies a registered pre/post-job callback, returned by AddHook
// so it can later be passed to RemoveHook.
type HookId uint32

// HookPoint is when, relative to a job's own Exec, a hook runs.
type HookPoint int32

const (
	HookBeforeJob HookPoint = iota
	HookAfterJob
)

type hook struct {
	id    HookId
	job   JobIdx
	point HookPoint
	fn    func(*ExecContext) error
}

// WorkGraph is the full description of one render graph: its jobs, the
// edges wiring their pins together, and which output pins must survive to
// the end of a run (sinks) even with no job consuming them, such as a
// swapchain present target. A WorkGraph is planned once (see Plan) and then
// run every frame without re-planning, as long as no job, edge, or sink is
// added or removed between runs.
type WorkGraph struct {
	device *gpu.Device

	jobs  []JobDesc
	edges []Edge
	sinks map[PinId]bool

	params map[paramKey]Value

	hooks  []hook
	nextID HookId

	plan *plan
}

type paramKey struct {
	job JobIdx
	idx int
}

// New returns an empty WorkGraph that will allocate its targets on device.
func New(device *gpu.Device) *WorkGraph {
	return &WorkGraph{
		device: device,
		sinks:  map[PinId]bool{},
		params: map[paramKey]Value{},
	}
}

// AddJob appends a job and returns the index to wire edges against. Adding
// a job invalidates any previously computed plan.
func (g *WorkGraph) AddJob(desc JobDesc) JobIdx {
	g.jobs = append(g.jobs, desc)
	g.plan = nil
	return JobIdx(len(g.jobs) - 1)
}

// Connect wires a producing job's output pin to a consuming job's input
// pin. Connecting invalidates any previously computed plan.
func (g *WorkGraph) Connect(from JobIdx, fromPin int, to JobIdx, toPin int) {
	g.edges = append(g.edges, Edge{From: PinId{Job: from, Pin: fromPin, Output: true}, To: PinId{Job: to, Pin: toPin, Output: false}})
	g.plan = nil
}

// SetSink marks a job's output pin as required to survive to the end of a
// run even if no other job consumes it — e.g. the final color target
// handed to render/jobs.Present. SetSink invalidates any previously
// computed plan.
func (g *WorkGraph) SetSink(job JobIdx, pin int) {
	g.sinks[PinId{Job: job, Pin: pin, Output: true}] = true
	g.plan = nil
}

// UnsetSink removes a previously set sink pin.
func (g *WorkGraph) UnsetSink(job JobIdx, pin int) {
	delete(g.sinks, PinId{Job: job, Pin: pin, Output: true})
	g.plan = nil
}

// SetParam sets the runtime value of a param pin, identified by the index
// of its name in the job's JobDesc.Params. It does not invalidate the plan:
// param values flow at execution time, not planning time.
func (g *WorkGraph) SetParam(job JobIdx, paramIdx int, v Value) {
	g.params[paramKey{job, paramIdx}] = v
}

// AddHook registers fn to run at the given point relative to job's own
// Exec, every time the graph runs. It returns a HookId for RemoveHook.
func (g *WorkGraph) AddHook(job JobIdx, point HookPoint, fn func(*ExecContext) error) HookId {
	g.nextID++
	id := g.nextID
	g.hooks = append(g.hooks, hook{id: id, job: job, point: point, fn: fn})
	return id
}

// RemoveHook unregisters a hook previously returned by AddHook. It is a
// no-op if id is not currently registered.
func (g *WorkGraph) RemoveHook(id HookId) {
	for i, h := range g.hooks {
		if h.id == id {
			g.hooks = append(g.hooks[:i], g.hooks[i+1:]...)
			return
		}
	}
}

// HasHook reports whether id is currently registered.
func (g *WorkGraph) HasHook(id HookId) bool {
	for _, h := range g.hooks {
		if h.id == id {
			return true
		}
	}
	return false
}

// Run (re-)plans the graph if needed, resolves any target left unresolved
// (owned targets on first run; nothing on later runs, since Resolve is
// idempotent), and executes every job in dependency order. Callers that
// need to bind an external target (e.g. a swapchain frame) via
// target.Hub.External should call Plan explicitly first, then bind, then
// Run: Plan only assigns target ids, it does not allocate anything, so a
// wildcard-extent target bound externally between Plan and Run never gets
// allocated as an owned resource.
func (g *WorkGraph) Run() error {
	p, err := g.Plan()
	if err != nil {
		return err
	}
	if err := p.hub.Resolve(); err != nil {
		return errors.Logf("graph: resolve targets", err)
	}
	return g.exec(p)
}

// Plan computes (or returns the cached) execution plan: job order and
// target id assignment. It does not allocate any GPU resource; that
// happens lazily in Run, once every external target (if any) has had the
// chance to be bound via the hub Plan returns from Hub(). Plan is
// automatically invalidated whenever a job, edge, or sink is added or
// removed.
func (g *WorkGraph) Plan() (*plan, error) {
	if g.plan != nil {
		return g.plan, nil
	}
	hub := target.New(g.device)
	p, err := buildPlan(g, hub)
	if err != nil {
		return nil, errors.Logf("graph: plan", err)
	}
	g.plan = p
	return p, nil
}

// JobDescAt returns the JobDesc a previously added job was given, for
// callers (such as render/builder) that need to inspect a producer's pin
// shape while wiring a consumer.
func (g *WorkGraph) JobDescAt(idx JobIdx) *JobDesc { return &g.jobs[idx] }

// OutputTargetID returns the target id a planned job's output pin was
// assigned. It panics if the graph has not been planned yet; callers that
// need to bind an external resource (render/driver.Viewport) always call
// Plan first. It returns the zero Id if job was pruned from the plan (not
// reachable backward from any sink or side-effecting terminal job) — a
// caller binding an external target should always mark that target's job
// a sink so it is never pruned.
func (g *WorkGraph) OutputTargetID(job JobIdx, pin int) target.Id {
	if g.plan == nil {
		panic("graph: OutputTargetID before Plan")
	}
	return g.plan.outputIds[job][pin]
}

// Hub returns the target hub backing the current plan, or nil if the graph
// has not been planned yet. Use this to bind external targets with
// target.Hub.External between Plan and Run.
func (g *WorkGraph) Hub() *target.Hub {
	if g.plan == nil {
		return nil
	}
	return g.plan.hub
}
