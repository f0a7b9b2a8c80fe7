// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"image/color"
	"log/slog"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages. It is on by default.
var UseColor = true

// fixed terminal palette: light blue for debug, default for info, yellow for
// warn, red for error. Kept independent of any light/dark scheme since a
// render-core process is not expected to run inside a themed GUI shell.
var (
	debugClr = color.RGBA{R: 0x8a, G: 0x8a, B: 0xff, A: 0xff}
	warnClr  = color.RGBA{R: 0xd9, G: 0xa4, B: 0x00, A: 0xff}
	errClr   = color.RGBA{R: 0xd9, G: 0x2b, B: 0x2b, A: 0xff}
)

// colorProfile is the termenv color profile, stored globally for convenience.
var colorProfile = termenv.ColorProfile()

// InitColor sets up the terminal environment for color output. This package
// does not call it itself; call it once at startup when [UseColor] is true,
// and again after running a system command (ls, cp, etc).
func InitColor() {
	restoreFunc, err := termenv.EnableVirtualTerminalProcessing(termenv.DefaultOutput())
	if err != nil {
		slog.Warn("error enabling virtual terminal processing for colored output on Windows", "error", err)
	}
	_ = restoreFunc
	colorProfile = termenv.ColorProfile()
}

// ApplyColor applies the given color to the given string
// and returns the resulting string. If [UseColor] is set
// to false, it just returns the string it was passed.
func ApplyColor(clr color.Color, str string) string {
	if !UseColor {
		return str
	}
	return termenv.String(str).Foreground(colorProfile.FromColor(clr)).String()
}

// LevelColor applies the color associated with the given level to the
// given string and returns the resulting string.
func LevelColor(level slog.Level, str string) string {
	switch level {
	case slog.LevelDebug:
		return DebugColor(str)
	case slog.LevelInfo:
		return InfoColor(str)
	case slog.LevelWarn:
		return WarnColor(str)
	case slog.LevelError:
		return ErrorColor(str)
	}
	return str
}

// DebugColor applies the color associated with the debug level.
func DebugColor(str string) string { return ApplyColor(debugClr, str) }

// InfoColor applies the color associated with the info level. Because the
// color associated with the info level is just the terminal default, it
// just returns the given string, but it exists for API consistency.
func InfoColor(str string) string { return str }

// WarnColor applies the color associated with the warn level.
func WarnColor(str string) string { return ApplyColor(warnClr, str) }

// ErrorColor applies the color associated with the error level.
func ErrorColor(str string) string { return ApplyColor(errClr, str) }
