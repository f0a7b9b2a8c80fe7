// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import "github.com/ashforge/rendercore/gpu"

// gpuSurface adapts *gpu.Surface's concrete *gpu.Frame return type to the
// Surface/Frame interfaces Viewport depends on, so production code can pass
// a real gpu.Surface to driver.New without the gpu package needing to know
// about this package's interfaces.
type gpuSurface struct{ sf *gpu.Surface }

// WrapSurface adapts a real gpu.Surface for use with Viewport.
func WrapSurface(sf *gpu.Surface) Surface { return gpuSurface{sf} }

func (s gpuSurface) Format() gpu.PixelFormat           { return s.sf.Format() }
func (s gpuSurface) Resize(width, height uint32)       { s.sf.Resize(width, height) }
func (s gpuSurface) Release()                          { s.sf.Release() }

func (s gpuSurface) NextFrame() (Frame, error) {
	f, err := s.sf.NextFrame()
	if err != nil {
		return nil, err
	}
	return f, nil
}
