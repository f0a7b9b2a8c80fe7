// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashforge/rendercore/gpu"
	. "github.com/ashforge/rendercore/render/graph"
	"github.com/ashforge/rendercore/render/target"
)

func createJob(name string) JobDesc {
	return JobDesc{Name: name, Creates: []PinDesc{{Name: "out", Kind: target.KindImage2D, Format: gpu.FormatRGBA8Unorm}}}
}

func TestOutputTargetIDPanicsBeforePlan(t *testing.T) {
	g := New(nil)
	a := g.AddJob(createJob("a"))
	assert.Panics(t, func() { g.OutputTargetID(a, 0) })
}

func TestOutputTargetIDAfterPlanIsStableAcrossCalls(t *testing.T) {
	g := New(nil)
	a := g.AddJob(createJob("a"))
	g.SetSink(a, 0)
	_, err := g.Plan()
	require.NoError(t, err)

	id1 := g.OutputTargetID(a, 0)
	id2 := g.OutputTargetID(a, 0)
	assert.NotZero(t, id1)
	assert.Equal(t, id1, id2)
}

func TestAddJobEdgeAndSinkInvalidateCachedPlan(t *testing.T) {
	g := New(nil)
	a := g.AddJob(createJob("a"))
	_, err := g.Plan()
	require.NoError(t, err)

	b := g.AddJob(createJob("b"))
	assert.Panics(t, func() { g.OutputTargetID(a, 0) }, "adding a job must invalidate the cached plan")

	_, err = g.Plan()
	require.NoError(t, err)
	g.SetSink(b, 0)
	assert.Panics(t, func() { g.OutputTargetID(b, 0) }, "SetSink must invalidate the cached plan")

	c := g.AddJob(JobDesc{Name: "c", Reads: []PinDesc{{Name: "in", Kind: target.KindImage2D}}})
	_, err = g.Plan()
	require.NoError(t, err)
	g.Connect(a, 0, c, 0)
	assert.Panics(t, func() { g.OutputTargetID(a, 0) }, "Connect must invalidate the cached plan")
}

func TestHookAddRemoveHasHook(t *testing.T) {
	g := New(nil)
	a := g.AddJob(createJob("a"))

	id := g.AddHook(a, HookBeforeJob, func(*ExecContext) error { return nil })
	assert.True(t, g.HasHook(id))

	g.RemoveHook(id)
	assert.False(t, g.HasHook(id))
}

func TestRemoveUnknownHookIsNoop(t *testing.T) {
	g := New(nil)
	assert.NotPanics(t, func() { g.RemoveHook(HookId(999)) })
}

func TestSetParamDoesNotInvalidatePlan(t *testing.T) {
	g := New(nil)
	a := g.AddJob(JobDesc{
		Name:    "a",
		Creates: []PinDesc{{Name: "out", Kind: target.KindImage2D, Format: gpu.FormatRGBA8Unorm}},
		Params:  []string{"speed"},
	})
	g.SetSink(a, 0)
	_, err := g.Plan()
	require.NoError(t, err)
	before := g.OutputTargetID(a, 0)
	assert.NotZero(t, before)

	g.SetParam(a, 0, FloatValue(2.5))

	assert.NotPanics(t, func() { g.OutputTargetID(a, 0) }, "SetParam must not invalidate the cached plan")
	assert.Equal(t, before, g.OutputTargetID(a, 0))
}

func TestHubNilBeforePlan(t *testing.T) {
	g := New(nil)
	assert.Nil(t, g.Hub())
}

// A job's PlanFunc can decline an input pin, which must prune that pin's
// producer out of the plan even though an edge wires them together.
func TestPlanFuncDecliningInputPrunesItsProducer(t *testing.T) {
	g := New(nil)
	producer := g.AddJob(createJob("producer"))
	consumer := g.AddJob(JobDesc{
		Name:  "consumer",
		Reads: []PinDesc{{Name: "in", Kind: target.KindImage2D}},
		Plan:  func(p *Planner) error { return nil }, // never requires its read pin
	})
	g.Connect(producer, 0, consumer, 0)

	_, err := g.Plan()
	require.NoError(t, err)
	assert.Zero(t, g.OutputTargetID(producer, 0), "producer feeds only a declined input pin, so it must be pruned")
}

// The mirror case: requiring the pin pulls the producer back in.
func TestPlanFuncRequiringInputKeepsItsProducer(t *testing.T) {
	g := New(nil)
	producer := g.AddJob(createJob("producer"))
	consumer := g.AddJob(JobDesc{
		Name:  "consumer",
		Reads: []PinDesc{{Name: "in", Kind: target.KindImage2D}},
		Plan:  func(p *Planner) error { p.Require(0); return nil },
	})
	g.Connect(producer, 0, consumer, 0)

	_, err := g.Plan()
	require.NoError(t, err)
	assert.NotZero(t, g.OutputTargetID(producer, 0))
}
