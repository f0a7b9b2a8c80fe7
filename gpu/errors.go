// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "github.com/ashforge/rendercore/base/errors"

var (
	// ErrNoAdapter is returned when instance enumeration finds no adapters.
	ErrNoAdapter = errors.New("gpu: no adapter available")

	// ErrSurfaceLost is returned by Surface.NextFrame when the surface has
	// been destroyed by the platform (e.g. the window closed) and must be
	// recreated entirely; it is not recoverable by reconfiguring.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrOutOfDate is returned by Surface.NextFrame when the swapchain no
	// longer matches the surface (typically after a resize) and must be
	// reconfigured before the next acquire.
	ErrOutOfDate = errors.New("gpu: surface out of date")

	// ErrZeroExtent is returned by Surface.NextFrame when the surface's
	// current extent is zero in either dimension (e.g. a minimized window);
	// callers should skip the frame rather than attempt to acquire one.
	ErrZeroExtent = errors.New("gpu: surface extent is zero")

	// ErrShaderCompile is wrapped into the error NewShaderLibrary returns
	// when its source is not WGSL or fails to compile.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")
)
