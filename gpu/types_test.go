// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ashforge/rendercore/gpu"
)

func TestExtentMergeWildcardAgreesWithAnything(t *testing.T) {
	zero := Extent3D{}
	concrete := Extent3D{Width: 800, Height: 600, Depth: 1}

	merged, ok := zero.Merge(concrete)
	assert.True(t, ok)
	assert.Equal(t, concrete, merged)

	merged, ok = concrete.Merge(zero)
	assert.True(t, ok)
	assert.Equal(t, concrete, merged)
}

func TestExtentMergeConflictingExtentsFail(t *testing.T) {
	a := Extent3D{Width: 800, Height: 600, Depth: 1}
	b := Extent3D{Width: 1024, Height: 768, Depth: 1}
	_, ok := a.Merge(b)
	assert.False(t, ok)
}

func TestExtentMergeEqualExtentsAgree(t *testing.T) {
	a := Extent3D{Width: 64, Height: 64, Depth: 1}
	merged, ok := a.Merge(a)
	assert.True(t, ok)
	assert.Equal(t, a, merged)
}

func TestExtentIsZero(t *testing.T) {
	assert.True(t, Extent3D{}.IsZero())
	assert.False(t, Extent3D{Width: 1}.IsZero())
}

func TestUsageFlagsHas(t *testing.T) {
	u := UsageColorTarget | UsageSampled
	assert.True(t, u.Has(UsageColorTarget))
	assert.True(t, u.Has(UsageSampled))
	assert.True(t, u.Has(UsageColorTarget|UsageSampled))
	assert.False(t, u.Has(UsageStorage))
}

func TestPixelFormatPredicates(t *testing.T) {
	assert.True(t, FormatRGBA8Unorm.IsColor())
	assert.False(t, FormatRGBA8Unorm.IsDepth())
	assert.False(t, FormatRGBA8Unorm.IsSRGB())

	assert.True(t, FormatRGBA8UnormSrgb.IsSRGB())
	assert.True(t, FormatDepth32Float.IsDepth())
	assert.False(t, FormatDepth32Float.IsColor())

	assert.True(t, FormatDepth24Stencil8.IsStencil())
	assert.True(t, FormatDepth24Stencil8.IsDepth())
}

func TestPixelFormatUndefinedIsNotColor(t *testing.T) {
	assert.False(t, FormatUndefined.IsColor())
}
