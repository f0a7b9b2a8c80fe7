// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashforge/rendercore/gpu"
	"github.com/ashforge/rendercore/render/graph"
	. "github.com/ashforge/rendercore/render/jobs"
)

func TestPresentDescHasSingleReadPin(t *testing.T) {
	desc := PresentDesc(gpu.UsageSampled)
	require.Len(t, desc.Reads, 1)
	assert.True(t, desc.Reads[0].Usage.Has(gpu.UsageColorTarget))
	assert.True(t, desc.Reads[0].Usage.Has(gpu.UsageSampled))
	assert.NotNil(t, desc.Exec)
}

func TestOverlaySinkDescUsesCallerExec(t *testing.T) {
	called := false
	desc := OverlaySinkDesc(gpu.UsageSampled, func(ctx *graph.ExecContext) error {
		called = true
		return nil
	})
	require.Len(t, desc.Reads, 1)
	require.NoError(t, desc.Exec(nil))
	assert.True(t, called)
}
