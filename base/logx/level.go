// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default slog logger and
// verbosity levels used by glquad programs.
package logx

import "log/slog"

// UserLevel is the lowest level of the messages that are shown.
// Its initial value depends on the build: debug with the debug tag,
// warn with the release tag, and info otherwise. Programs set it
// from their verbosity flags with [LevelFromFlags].
var UserLevel = defaultUserLevel

// LevelFromFlags maps the verbosity flags of a command to a level.
// The most verbose flag that is set wins: vv gives debug, v gives info
// and q gives error. With no flag set the level is warn.
func LevelFromFlags(vv, v, q bool) slog.Level {
	if vv {
		return slog.LevelDebug
	}
	if v {
		return slog.LevelInfo
	}
	if q {
		return slog.LevelError
	}
	return slog.LevelWarn
}
