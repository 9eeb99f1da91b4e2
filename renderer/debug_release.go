// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build release

package renderer

// Debug is the default for [Context.Debug]: whether to check the
// driver's error flags around every call. It is off when building
// with the release tag.
var Debug = false
