// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "github.com/chewxy/math32"

// ValueKind discriminates the variant held by a Value.
type ValueKind int32

const (
	ValueUnit ValueKind = iota
	ValueBool
	ValueInt
	ValueUint
	ValueFloat
	ValueString
	ValueVec2
	ValueVec3
	ValueVec4
	ValueArray
	ValueMap
)

// Value is a small tagged union used for param pin values. It mirrors
// the dynamically-typed node configuration value the original render graph
// model used, adapted to Go's lack of sum types: exactly one of the typed
// fields below is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind

	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	String string
	Vec2   [2]float32
	Vec3   [3]float32
	Vec4   [4]float32
	Array  []Value
	Map    map[string]Value
}

// Unit returns the unit value, used for params that carry no data, only a
// dependency edge (e.g. "run after").
func Unit() Value { return Value{Kind: ValueUnit} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// IntValue wraps a signed integer.
func IntValue(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// UintValue wraps an unsigned integer.
func UintValue(u uint64) Value { return Value{Kind: ValueUint, Uint: u} }

// FloatValue wraps a float64.
func FloatValue(f float64) Value { return Value{Kind: ValueFloat, Float: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: ValueString, String: s} }

// Vec2Value wraps a 2-component float32 vector.
func Vec2Value(x, y float32) Value { return Value{Kind: ValueVec2, Vec2: [2]float32{x, y}} }

// Vec3Value wraps a 3-component float32 vector.
func Vec3Value(x, y, z float32) Value { return Value{Kind: ValueVec3, Vec3: [3]float32{x, y, z}} }

// Vec4Value wraps a 4-component float32 vector.
func Vec4Value(x, y, z, w float32) Value { return Value{Kind: ValueVec4, Vec4: [4]float32{x, y, z, w}} }

// ArrayValue wraps a slice of Values.
func ArrayValue(items ...Value) Value { return Value{Kind: ValueArray, Array: items} }

// MapValue wraps a string-keyed map of Values.
func MapValue(m map[string]Value) Value { return Value{Kind: ValueMap, Map: m} }

// Vec3Length returns the Euclidean length of a Vec3 value, for convenience
// in param pins carrying directions or offsets; it panics if v is not a
// Vec3.
func (v Value) Vec3Length() float32 {
	if v.Kind != ValueVec3 {
		panic("graph: Vec3Length of non-Vec3 value")
	}
	return math32.Sqrt(v.Vec3[0]*v.Vec3[0] + v.Vec3[1]*v.Vec3[1] + v.Vec3[2]*v.Vec3[2])
}
