// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	tests := []struct {
		vv, v, q bool
		want     slog.Level
	}{
		{want: slog.LevelWarn},
		{q: true, want: slog.LevelError},
		{v: true, want: slog.LevelInfo},
		{v: true, q: true, want: slog.LevelInfo},
		{vv: true, want: slog.LevelDebug},
		{vv: true, v: true, q: true, want: slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromFlags(tt.vv, tt.v, tt.q), "vv=%v v=%v q=%v", tt.vv, tt.v, tt.q)
	}
}
