// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import "github.com/ashforge/rendercore/gpu"

// FakeSurface is a Surface test double that never touches a real window or
// GPU swapchain: it hands out FakeFrame values backed by a caller-supplied
// Image, and records Resize/Present/Release calls for assertions.
type FakeSurface struct {
	width, height uint32
	format        gpu.PixelFormat
	image         *gpu.Image

	Resizes    []ResizeCall
	Presents   int
	Released   bool
	NextFrameN int
}

// ResizeCall records one Resize call's arguments.
type ResizeCall struct{ Width, Height uint32 }

// NewFakeSurface returns a FakeSurface of the given size and format,
// handing out frames backed by image (e.g. a device-allocated Image
// created solely for the test).
func NewFakeSurface(width, height uint32, format gpu.PixelFormat, image *gpu.Image) *FakeSurface {
	return &FakeSurface{width: width, height: height, format: format, image: image}
}

func (s *FakeSurface) Format() gpu.PixelFormat { return s.format }

func (s *FakeSurface) Resize(width, height uint32) {
	s.Resizes = append(s.Resizes, ResizeCall{width, height})
	s.width, s.height = width, height
}

func (s *FakeSurface) Release() { s.Released = true }

// NextFrame returns gpu.ErrZeroExtent if the surface's current size is
// zero in either dimension, mirroring gpu.Surface's real behavior, and
// otherwise a FakeFrame wrapping s.image.
func (s *FakeSurface) NextFrame() (Frame, error) {
	if s.width == 0 || s.height == 0 {
		return nil, gpu.ErrZeroExtent
	}
	s.NextFrameN++
	return &fakeFrame{s}, nil
}

type fakeFrame struct{ s *FakeSurface }

func (f *fakeFrame) Present() { f.s.Presents++ }

func (f *fakeFrame) ColorTarget() (*gpu.Image, gpu.PixelFormat) { return f.s.image, f.s.format }
