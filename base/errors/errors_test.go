// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/ashforge/rendercore/base/errors"
)

func TestLogPassesThroughNilAndError(t *testing.T) {
	assert.Nil(t, Log(nil))

	err := New("boom")
	assert.Same(t, err, Log(err))
}

func TestLogfWrapsMessage(t *testing.T) {
	err := New("underlying")
	wrapped := Logf("doing thing", err)
	assert.ErrorIs(t, wrapped, err)
	assert.Contains(t, wrapped.Error(), "doing thing")
}

func TestLogfNilIsNil(t *testing.T) {
	assert.Nil(t, Logf("doing thing", nil))
}

func TestLog1ReturnsValueRegardlessOfError(t *testing.T) {
	v := Log1(42, nil)
	assert.Equal(t, 42, v)

	v = Log1(7, New("ignored"))
	assert.Equal(t, 7, v)
}

func TestIsAndAs(t *testing.T) {
	err := New("base")
	wrapped := Logf("context", err)
	assert.True(t, Is(wrapped, err))

	var unwrapper interface{ Unwrap() error }
	assert.True(t, As(wrapped, &unwrapper))
}
