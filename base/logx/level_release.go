// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build release && !debug

package logx

import "log/slog"

const defaultUserLevel = slog.LevelWarn
