// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}

func TestHandlerLevel(t *testing.T) {
	defer func(lv slog.Level, c bool) { UserLevel, UseColor = lv, c }(UserLevel, UseColor)
	UseColor = false

	var b bytes.Buffer
	log := slog.New(NewHandler(&b))

	UserLevel = slog.LevelWarn
	log.Info("hidden")
	assert.Empty(t, b.String())

	log.Warn("shown", "code", 1282)
	assert.Equal(t, "level=WARN msg=shown code=1282\n", b.String())

	b.Reset()
	UserLevel = slog.LevelDebug
	log.Debug("now shown")
	assert.Equal(t, "level=DEBUG msg=\"now shown\"\n", b.String())
}
