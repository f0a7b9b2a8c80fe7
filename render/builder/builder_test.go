// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashforge/rendercore/gpu"
	. "github.com/ashforge/rendercore/render/builder"
	"github.com/ashforge/rendercore/render/graph"
)

func noopExec(*graph.ExecContext) error { return nil }

func TestAddJobWiresCreateThenRead(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)

	b.CreateTarget("color", gpu.Extent3D{Width: 64, Height: 64, Depth: 1}, gpu.FormatRGBA8Unorm, gpu.UsageColorTarget)
	producer := b.AddJob("producer", []string{"color"}, nil, nil, nil, noopExec)
	consumer := b.AddJob("consumer", nil, nil, []string{"color"}, nil, noopExec)

	_, err := wg.Plan()
	require.NoError(t, err)

	// consumer has no output pins, so it is a terminal job and is always
	// selected, which in turn pulls producer in to satisfy consumer's read.
	assert.NotZero(t, wg.OutputTargetID(producer, 0))
	assert.Equal(t, wg.JobDescAt(producer).OutputPinDesc(0), wg.JobDescAt(consumer).Reads[0])
}

func TestAddJobUpdateChainSharesTargetAcrossJobs(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)

	b.CreateTarget("accum", gpu.Extent3D{Width: 32, Height: 32, Depth: 1}, gpu.FormatRGBA8Unorm, gpu.UsageColorTarget)
	producer := b.AddJob("seed", []string{"accum"}, nil, nil, nil, noopExec)
	updater := b.AddJob("blend", nil, []string{"accum"}, nil, nil, noopExec)
	b.Sink("accum")

	_, err := wg.Plan()
	require.NoError(t, err)

	producerID := wg.OutputTargetID(producer, 0)
	updaterOutID := wg.OutputTargetID(updater, 0)
	assert.NotZero(t, producerID)
	assert.Equal(t, producerID, updaterOutID, "an update chain keeps one target id end to end")
}

func TestAddJobReadOfUnknownTargetPanics(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)
	assert.Panics(t, func() {
		b.AddJob("bad", nil, nil, []string{"missing"}, nil, noopExec)
	})
}

func TestAddJobCreateOfUndeclaredTargetPanics(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)
	assert.Panics(t, func() {
		b.AddJob("bad", []string{"missing"}, nil, nil, nil, noopExec)
	})
}

func TestSinkOfUnknownNamePanics(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)
	assert.Panics(t, func() { b.Sink("missing") })
}

func TestSinkKeepsTargetPlannedWithNoConsumer(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)

	b.CreateTarget("color", gpu.Extent3D{Width: 16, Height: 16, Depth: 1}, gpu.FormatRGBA8Unorm, gpu.UsageColorTarget)
	producer := b.AddJob("producer", []string{"color"}, nil, nil, nil, noopExec)
	b.Sink("color")

	_, err := wg.Plan()
	require.NoError(t, err)
	assert.NotZero(t, wg.OutputTargetID(producer, 0))
}

func TestBuildReturnsUnderlyingWorkGraph(t *testing.T) {
	wg := graph.New(nil)
	b := New(wg)
	assert.Same(t, wg, b.Build())
}
