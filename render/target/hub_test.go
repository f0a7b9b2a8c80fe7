// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashforge/rendercore/gpu"
	. "github.com/ashforge/rendercore/render/target"
)

func TestPlanCreateAgreesOnExtentAndFormat(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)

	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindImage2D, Extent: gpu.Extent3D{Width: 800, Height: 600, Depth: 1}, Format: gpu.FormatBGRA8Unorm}))
	require.NoError(t, h.PlanRead(id, Desc{Kind: KindImage2D, Usage: gpu.UsageSampled}))

	d := h.Desc(id)
	assert.Equal(t, gpu.Extent3D{Width: 800, Height: 600, Depth: 1}, d.Extent)
	assert.Equal(t, gpu.FormatBGRA8Unorm, d.Format)
	assert.True(t, d.Usage.Has(gpu.UsageSampled))
}

func TestPlanConflictingExtentErrors(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)
	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindImage2D, Extent: gpu.Extent3D{Width: 800, Height: 600, Depth: 1}}))

	err := h.PlanRead(id, Desc{Kind: KindImage2D, Extent: gpu.Extent3D{Width: 1024, Height: 768, Depth: 1}})
	assert.Error(t, err)
}

func TestPlanWildcardExtentAgreesWithAnything(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)
	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindImage2D}))
	require.NoError(t, h.PlanUpdate(id, Desc{Kind: KindImage2D, Extent: gpu.Extent3D{Width: 64, Height: 64, Depth: 1}}))
	assert.Equal(t, gpu.Extent3D{Width: 64, Height: 64, Depth: 1}, h.Desc(id).Extent)
}

func TestPlanConflictingFormatErrors(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)
	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindImage2D, Format: gpu.FormatBGRA8Unorm}))

	err := h.PlanRead(id, Desc{Kind: KindImage2D, Format: gpu.FormatRGBA8Unorm})
	assert.Error(t, err)
}

func TestPlanBufferSizeMustAgree(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindBuffer)
	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindBuffer, Size: 256}))
	require.NoError(t, h.PlanRead(id, Desc{Kind: KindBuffer, Size: 256}))
	assert.Error(t, h.PlanRead(id, Desc{Kind: KindBuffer, Size: 512}))
}

func TestPlanUnknownIdErrors(t *testing.T) {
	h := New(nil)
	assert.Error(t, h.PlanCreate(999, Desc{}))
}

func TestExternalBypassesResolveAndSurvivesRelease(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)
	img := gpu.NewExternalImage(nil, gpu.FormatBGRA8Unorm, gpu.Extent3D{Width: 1, Height: 1, Depth: 1})
	h.External(id, img)

	require.NoError(t, h.Resolve())
	assert.Same(t, img, h.Get(id))

	h.Release()
	assert.Same(t, img, h.Get(id), "external targets are not released or cleared by Hub.Release")
}

func TestGetUnknownIdPanics(t *testing.T) {
	h := New(nil)
	assert.Panics(t, func() { h.Get(12345) })
}

func TestResolveErrorsOnUnresolvedExtent(t *testing.T) {
	h := New(nil)
	id := h.Alloc(KindImage2D)
	require.NoError(t, h.PlanCreate(id, Desc{Kind: KindImage2D}))
	assert.Error(t, h.Resolve())
}
