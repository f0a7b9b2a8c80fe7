// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shaderreflect parses shader source text to recover the
// information a [gpu.Pipeline] needs but wgpu itself does not report back:
// entry point names by stage, and the @group/@binding resource bindings a
// shader module declares. It understands WGSL directly; GLSL and MSL
// sources are expected to have been cross-compiled to WGSL upstream (e.g.
// with naga) before reaching this package, matching the single
// SourceWGSL-shaped target pipeline creation goes through in gpu.ShaderLibrary.
package shaderreflect

import (
	"regexp"
)

// Stage is the shader stage an entry point executes in.
type Stage int32

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// EntryPoint is one @vertex/@fragment/@compute function found in a module.
type EntryPoint struct {
	Name  string
	Stage Stage
}

// BindingKind classifies the resource a @group/@binding declaration refers
// to, to the precision gpu.ArgumentGroup layout needs.
type BindingKind int32

const (
	BindingUniformBuffer BindingKind = iota
	BindingStorageBuffer
	BindingSampledTexture
	BindingStorageTexture
	BindingSampler
)

// Binding is one @group(G) @binding(B) declaration.
type Binding struct {
	Group uint32
	Index uint32
	Name  string
	Kind  BindingKind
}

var (
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	computeEntryRegex  = regexp.MustCompile(`(?s)@compute\b.*?\bfn\s+(\w+)`)

	// bindingRegex matches declarations of the shape
	// @group(0) @binding(0) var<uniform> camera: CameraUniform;
	// @group(0) @binding(1) var diffuseTexture: texture_2d<f32>;
	// @group(0) @binding(2) var mySampler: sampler;
	bindingRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// EntryPoints scans WGSL source and returns every @vertex, @fragment and
// @compute function it declares, grouped by stage (vertex, then fragment,
// then compute) and in source order within each stage.
func EntryPoints(source string) []EntryPoint {
	var eps []EntryPoint
	for _, m := range vertexEntryRegex.FindAllStringSubmatch(source, -1) {
		eps = append(eps, EntryPoint{Name: m[1], Stage: StageVertex})
	}
	for _, m := range fragmentEntryRegex.FindAllStringSubmatch(source, -1) {
		eps = append(eps, EntryPoint{Name: m[1], Stage: StageFragment})
	}
	for _, m := range computeEntryRegex.FindAllStringSubmatch(source, -1) {
		eps = append(eps, EntryPoint{Name: m[1], Stage: StageCompute})
	}
	return eps
}

// Bindings scans WGSL source and returns every @group/@binding resource
// declaration it finds.
func Bindings(source string) []Binding {
	var out []Binding
	for _, m := range bindingRegex.FindAllStringSubmatch(source, -1) {
		group, index := atou(m[1]), atou(m[2])
		addressSpace, name, typ := m[3], m[4], m[5]
		out = append(out, Binding{
			Group: group,
			Index: index,
			Name:  name,
			Kind:  classify(addressSpace, typ),
		})
	}
	return out
}

func classify(addressSpace, typ string) BindingKind {
	switch {
	case typ == "sampler" || typ == "sampler_comparison":
		return BindingSampler
	case len(typ) >= 16 && typ[:16] == "texture_storage_":
		return BindingStorageTexture
	case len(typ) >= 8 && typ[:8] == "texture_":
		return BindingSampledTexture
	case len(addressSpace) >= 7 && addressSpace[:7] == "storage":
		return BindingStorageBuffer
	default:
		return BindingUniformBuffer
	}
}

func atou(s string) uint32 {
	var n uint32
	for _, c := range s {
		n = n*10 + uint32(c-'0')
	}
	return n
}
