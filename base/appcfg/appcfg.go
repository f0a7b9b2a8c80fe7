// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package appcfg loads the TOML configuration file a rendercore host
// application uses to set GPU debug flags, default surface size, and log
// settings, without every application needing to hand-roll
// its own flag parsing for these common knobs.
package appcfg

import (
	"os"

	"github.com/ashforge/rendercore/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level shape of a rendercore application's config file.
type Config struct {
	App    App    `toml:"app"`
	Device Device `toml:"device"`
	Log    Log    `toml:"log"`
}

// App holds application identity used in diagnostics and window titles.
type App struct {
	Name string `toml:"name"`
}

// Device holds GPU device selection and debug defaults, mirroring the
// knobs gpu.Instance/gpu.Device expose at runtime.
type Device struct {
	// Debug enables gpu.Debug at startup.
	Debug bool `toml:"debug"`
	// DebugAdapter enables gpu.DebugAdapter at startup.
	DebugAdapter bool `toml:"debug_adapter"`
	// Width/Height are the default surface size before the first resize.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// Log holds logging defaults.
type Log struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
	// Color enables colored terminal output.
	Color bool `toml:"color"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Device: Device{Width: 1024, Height: 768},
		Log:    Log{Level: "info", Color: true},
	}
}

// Load reads and parses a TOML config file at path. If path does not
// exist, it returns Default() without error, so applications can ship
// without a config file at all.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Logf("appcfg: read "+path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Logf("appcfg: parse "+path, err)
	}
	return cfg, nil
}
