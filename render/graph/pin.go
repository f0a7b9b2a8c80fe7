// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// JobIdx indexes a job within a WorkGraph, in the order it was added.
type JobIdx int32

// PinId names one target-carrying pin on one job: an output pin if Output
// is true, otherwise an input pin.
type PinId struct {
	Job    JobIdx
	Pin    int
	Output bool
}

// Edge connects a producing job's output pin to a consuming job's input
// pin. Both pins must describe targets of the same [target.Kind]; the
// planner rejects an Edge otherwise.
type Edge struct {
	From PinId
	To   PinId
}
