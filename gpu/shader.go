// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/gpu/shaderreflect"
	"github.com/cogentcore/webgpu/wgpu"
)

// LibraryDesc describes a shader module to be loaded and reflected.
type LibraryDesc struct {
	Source Source
	Label  string
}

// Source carries shader text plus the language it is written in. GLSL and
// MSL sources must already have been cross-compiled to WGSL (e.g. with
// naga) before being handed to a Device; ShaderLibrary only reflects WGSL
// directly, matching wgpu-native's own single accepted shading language.
type Source struct {
	Kind ShaderSourceKind
	WGSL string
}

// ShaderLibrary is a compiled shader module together with the entry points
// and resource bindings recovered from its source by shaderreflect.
type ShaderLibrary struct {
	Module      *wgpu.ShaderModule
	EntryPoints []shaderreflect.EntryPoint
	Bindings    []shaderreflect.Binding
	Label       string
}

// NewShaderLibrary compiles and reflects desc.Source.
func (d *Device) NewShaderLibrary(desc LibraryDesc) (*ShaderLibrary, error) {
	if desc.Source.Kind != SourceWGSL {
		return nil, errors.Logf("gpu: load shader library", ErrShaderCompile)
	}
	mod, err := d.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.Source.WGSL},
	})
	if err != nil {
		return nil, errors.Logf("gpu: compile shader "+desc.Label, fmt.Errorf("%w: %w", ErrShaderCompile, err))
	}
	return &ShaderLibrary{
		Module:      mod,
		EntryPoints: shaderreflect.EntryPoints(desc.Source.WGSL),
		Bindings:    shaderreflect.Bindings(desc.Source.WGSL),
		Label:       desc.Label,
	}, nil
}

// EntryPoint returns the name of the library's entry point for the given
// stage, and whether one was found.
func (sl *ShaderLibrary) EntryPoint(stage shaderreflect.Stage) (string, bool) {
	for _, ep := range sl.EntryPoints {
		if ep.Stage == stage {
			return ep.Name, true
		}
	}
	return "", false
}

// Release releases the shader module.
func (sl *ShaderLibrary) Release() {
	if sl.Module == nil {
		return
	}
	sl.Module.Release()
	sl.Module = nil
}
