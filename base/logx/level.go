// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import "log/slog"

// UserLevel is the minimum level of message that will be printed by the
// Print/Println/Printf family in this package. It defaults to
// [defaultUserLevel], which is lower in debug builds than in builds tagged
// "release", and can be overridden at runtime (e.g. from a CLI flag).
var UserLevel = defaultUserLevel

// SetUserLevel parses a level name ("debug", "info", "warn", "error") and
// assigns it to [UserLevel]. Unrecognized names leave UserLevel unchanged.
func SetUserLevel(name string) {
	switch name {
	case "debug":
		UserLevel = slog.LevelDebug
	case "info":
		UserLevel = slog.LevelInfo
	case "warn", "warning":
		UserLevel = slog.LevelWarn
	case "error":
		UserLevel = slog.LevelError
	}
}
