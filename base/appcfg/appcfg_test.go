// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package appcfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ashforge/rendercore/base/appcfg"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgdemo.toml")
	contents := `
[app]
name = "triangle-demo"

[device]
debug = true
width = 1920
height = 1080

[log]
level = "debug"
color = false
`
	require.NoError(t, writeFile(path, contents))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "triangle-demo", cfg.App.Name)
	assert.True(t, cfg.Device.Debug)
	assert.Equal(t, uint32(1920), cfg.Device.Width)
	assert.Equal(t, uint32(1080), cfg.Device.Height)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Color)
}

func TestLoadInvalidTOMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, writeFile(path, "not = [valid toml"))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultHasUsableSurfaceSize(t *testing.T) {
	cfg := Default()
	assert.Positive(t, cfg.Device.Width)
	assert.Positive(t, cfg.Device.Height)
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
