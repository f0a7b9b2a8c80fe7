// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ashforge/rendercore/gpu"
)

func TestWarpsRoundsUp(t *testing.T) {
	assert.Equal(t, 1, Warps(1, 64))
	assert.Equal(t, 1, Warps(64, 64))
	assert.Equal(t, 2, Warps(65, 64))
	assert.Equal(t, 0, Warps(0, 64))
}

func TestWarpsZeroThreadsIsZero(t *testing.T) {
	assert.Equal(t, 0, Warps(100, 0))
}
