// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"glquad.dev/glquad/driver/drivertest"
)

// quadPositions are the corners of a unit square centered at the origin.
var quadPositions = []float32{
	-0.5, -0.5, // 0
	0.5, -0.5, // 1
	0.5, 0.5, // 2
	-0.5, 0.5, // 3
}

var quadIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

func newTestContext(t *testing.T) (*Context, *drivertest.Driver) {
	t.Helper()
	d := drivertest.New()
	ctx := NewContext(d)
	ctx.Debug = true
	return ctx, d
}

// callError runs f and returns the [CallError] it panics with,
// failing the test if it does not panic with one.
func callError(t *testing.T, f func()) (ce *CallError) {
	t.Helper()
	func() {
		defer func() {
			if r := recover(); r != nil {
				ce, _ = r.(*CallError)
			}
		}()
		f()
	}()
	require.NotNil(t, ce, "expected a *CallError panic")
	return ce
}
