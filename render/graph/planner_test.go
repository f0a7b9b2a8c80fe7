// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/target"
)

func colorCreate(name string) JobDesc {
	return JobDesc{Name: name, Creates: []PinDesc{{Name: "out", Kind: target.KindImage2D, Format: gpu.FormatRGBA8Unorm}}}
}

func colorRead(name string) JobDesc {
	return JobDesc{Name: name, Reads: []PinDesc{{Name: "in", Kind: target.KindImage2D}}}
}

func colorUpdate(name string) JobDesc {
	return JobDesc{Name: name, Updates: []PinDesc{{Name: "io", Kind: target.KindImage2D}}}
}

// three jobs chained A -> B -> C (create, update, read) should toposort in
// that order.
func TestToposortThreeJobChain(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorCreate("a"))
	b := g.AddJob(colorUpdate("b"))
	c := g.AddJob(colorRead("c"))
	g.Connect(a, 0, b, 0)
	g.Connect(b, 0, c, 0)

	order, err := toposort(g)
	require.NoError(t, err)
	require.Len(t, order, 3)
	assert.Equal(t, a, order[0])
	assert.Equal(t, []JobIdx{a, b, c}, order)
}

func TestToposortDetectsCycle(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorUpdate("a"))
	b := g.AddJob(colorUpdate("b"))
	g.Connect(a, 0, b, 0)
	g.Connect(b, 0, a, 0)

	_, err := toposort(g)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestToposortHandlesDisconnectedSubgraph(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorCreate("a"))
	b := g.AddJob(colorRead("b"))
	g.Connect(a, 0, b, 0)
	_ = g.AddJob(colorCreate("isolated")) // no edges at all

	order, err := toposort(g)
	require.NoError(t, err)
	assert.Len(t, order, 3)
	posA, posB := indexOf(order, a), indexOf(order, b)
	assert.Less(t, posA, posB)
}

func indexOf(order []JobIdx, j JobIdx) int {
	for i, o := range order {
		if o == j {
			return i
		}
	}
	return -1
}

// diamond: producer feeds two readers and an updater that writes back into
// the same logical target as the producer's output. readerA/readerB are
// read-only terminal jobs (no output pins), so they are always selected;
// updater's output is marked a sink, standing in for "the caller keeps
// using the accumulated target after this run". Every pin along the chain
// must resolve to the same target.Id.
func TestBuildPlanDiamondWithUpdateSharesOneTargetID(t *testing.T) {
	g := New(nil)
	producer := g.AddJob(colorCreate("producer"))
	readerA := g.AddJob(colorRead("readerA"))
	readerB := g.AddJob(colorRead("readerB"))
	updater := g.AddJob(colorUpdate("updater"))

	g.Connect(producer, 0, readerA, 0)
	g.Connect(producer, 0, readerB, 0)
	g.Connect(producer, 0, updater, 0)
	g.SetSink(updater, 0)

	hub := target.New(nil)
	p, err := buildPlan(g, hub)
	require.NoError(t, err)

	id := p.outputIds[producer][0]
	assert.NotZero(t, id)
	assert.Equal(t, id, p.inputIds[readerA][0])
	assert.Equal(t, id, p.inputIds[readerB][0])
	assert.Equal(t, id, p.inputIds[updater][0])
	assert.Equal(t, id, p.outputIds[updater][0], "update pin's output shares the input's target id")
}

// Neither a nor b is sunk or read by anything, so neither is reachable
// backward from a sink or a terminal job: both are pruned entirely and
// never reach the hub.
func TestBuildPlanUnsunkDisconnectedJobsArePruned(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorCreate("a"))
	b := g.AddJob(colorCreate("b"))

	hub := target.New(nil)
	p, err := buildPlan(g, hub)
	require.NoError(t, err)
	assert.Zero(t, p.outputIds[a][0], "unsunk, unconsumed job a must be pruned, never allocated a target")
	assert.Zero(t, p.outputIds[b][0], "unsunk, unconsumed job b must be pruned, never allocated a target")
	assert.Empty(t, p.order, "no sinks and no terminal jobs means nothing runs")
}

// Sinking only b pulls b into the plan while a, still unreferenced, stays
// pruned and distinct (it would get a different id if it were ever sunk).
func TestBuildPlanSinkSelectsOnlyThatSubgraph(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorCreate("a"))
	b := g.AddJob(colorCreate("b"))
	g.SetSink(b, 0)

	hub := target.New(nil)
	p, err := buildPlan(g, hub)
	require.NoError(t, err)
	assert.Zero(t, p.outputIds[a][0], "a is still unreachable from any sink")
	assert.NotZero(t, p.outputIds[b][0])
	assert.Equal(t, []JobIdx{b}, p.order)
}

func TestBuildPlanPropagatesCycleError(t *testing.T) {
	g := New(nil)
	a := g.AddJob(colorUpdate("a"))
	b := g.AddJob(colorUpdate("b"))
	g.Connect(a, 0, b, 0)
	g.Connect(b, 0, a, 0)

	_, err := buildPlan(g, target.New(nil))
	assert.ErrorIs(t, err, ErrCycle)
}

func TestBuildPlanConflictingFormatsError(t *testing.T) {
	g := New(nil)
	a := g.AddJob(JobDesc{Name: "a", Creates: []PinDesc{{Name: "out", Kind: target.KindImage2D, Format: gpu.FormatRGBA8Unorm}}})
	b := g.AddJob(JobDesc{Name: "b", Reads: []PinDesc{{Name: "in", Kind: target.KindImage2D, Format: gpu.FormatBGRA8Unorm}}})
	g.Connect(a, 0, b, 0)

	_, err := buildPlan(g, target.New(nil))
	assert.Error(t, err)
}
