// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages.
// It is on by default, but colors are only emitted
// when the output supports them.
var UseColor = true

// userLeveler reads [UserLevel] at the time of each log call,
// so that changes to it take effect on an installed handler.
type userLeveler struct{}

func (userLeveler) Level() slog.Level {
	return UserLevel
}

// SetDefaultLogger sets the default logger to be a text handler
// writing to [os.Stderr] at [UserLevel], with the level names
// colored when [UseColor] is set and stderr is a terminal.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// NewHandler returns a new [slog.Handler] writing text records
// to the given writer, filtered by [UserLevel]. Times are omitted.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	if !UseColor {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: userLeveler{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lv, ok := a.Value.Any().(slog.Level)
				if !ok {
					return a
				}
				return slog.String(a.Key, LevelString(out, lv))
			}
			return a
		},
	})
}

// LevelString returns the name of the given level, styled
// for the given output: red for errors, yellow for warnings,
// cyan for info and faint for debug.
func LevelString(out *termenv.Output, lv slog.Level) string {
	s := out.String(lv.String())
	switch {
	case lv >= slog.LevelError:
		s = s.Foreground(out.Color("1")).Bold()
	case lv >= slog.LevelWarn:
		s = s.Foreground(out.Color("3"))
	case lv >= slog.LevelInfo:
		s = s.Foreground(out.Color("6"))
	default:
		s = s.Faint()
	}
	return s.String()
}
