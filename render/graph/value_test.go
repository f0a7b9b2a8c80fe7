// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ashforge/rendercore/render/graph"
)

func TestValueConstructorsSetKind(t *testing.T) {
	assert.Equal(t, ValueUnit, Unit().Kind)
	assert.Equal(t, ValueBool, BoolValue(true).Kind)
	assert.Equal(t, ValueInt, IntValue(-1).Kind)
	assert.Equal(t, ValueUint, UintValue(1).Kind)
	assert.Equal(t, ValueFloat, FloatValue(1.5).Kind)
	assert.Equal(t, ValueString, StringValue("x").Kind)
	assert.Equal(t, ValueVec2, Vec2Value(1, 2).Kind)
	assert.Equal(t, ValueVec3, Vec3Value(1, 2, 3).Kind)
	assert.Equal(t, ValueVec4, Vec4Value(1, 2, 3, 4).Kind)
	assert.Equal(t, ValueArray, ArrayValue(IntValue(1), IntValue(2)).Kind)
	assert.Equal(t, ValueMap, MapValue(map[string]Value{"a": IntValue(1)}).Kind)
}

func TestVec3Length(t *testing.T) {
	v := Vec3Value(3, 4, 0)
	assert.InDelta(t, 5.0, v.Vec3Length(), 1e-6)
}

func TestVec3LengthPanicsOnWrongKind(t *testing.T) {
	assert.Panics(t, func() { IntValue(1).Vec3Length() })
}

func TestArrayValueHoldsNestedValues(t *testing.T) {
	v := ArrayValue(IntValue(1), StringValue("two"), BoolValue(true))
	assert.Len(t, v.Array, 3)
	assert.Equal(t, int64(1), v.Array[0].Int)
	assert.Equal(t, "two", v.Array[1].String)
}
