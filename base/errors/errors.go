// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides the error-handling conventions used throughout
// rendercore: logged pass-through wrappers for the resource-limit and
// initialization error tiers. Usage errors (tier 3) are not routed through
// this package; they are plain panics at the call site.
package errors

import (
	"errors"
	"fmt"

	"github.com/ashforge/rendercore/base/logx"
)

// New is equivalent to the standard library's [errors.New]. It exists so
// that call sites only need to import this package.
func New(text string) error {
	return errors.New(text)
}

// Is is equivalent to the standard library's [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is equivalent to the standard library's [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Log logs the given error at error level if it is non-nil, and returns it
// unchanged. It is meant to be wrapped directly around a call that returns
// an error the caller wants visible in logs regardless of whether it also
// handles it:
//
//	if err := errors.Log(sf.init(gp, ws, size, samples, depthFmt)); err != nil {
//	    return err
//	}
func Log(err error) error {
	if err == nil {
		return nil
	}
	logx.PrintlnError(err)
	return err
}

// Log1 logs the error from a (value, error) pair at error level if non-nil,
// and returns the value regardless. It is used at call sites that want to
// fall back to the zero value on error without an explicit branch:
//
//	ok := errors.Log1(fsx.FileExists(path))
func Log1[T any](v T, err error) T {
	Log(err)
	return v
}

// Logf is like [Log] but wraps err with the given message first.
func Logf(msg string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)
	logx.PrintlnError(wrapped)
	return wrapped
}
