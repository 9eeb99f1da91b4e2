// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"glquad.dev/glquad/driver"
)

func TestCallDrainsPendingErrors(t *testing.T) {
	ctx, d := newTestContext(t)
	d.PushError(driver.INVALID_ENUM)
	d.PushError(driver.INVALID_VALUE)

	assert.NotPanics(t, func() { NewVertexBufferFrom(ctx, quadPositions) })
	assert.Equal(t, 0, d.PendingErrors())
}

func TestCallReportsAllErrors(t *testing.T) {
	ctx, d := newTestContext(t)
	var line int
	ce := callError(t, func() {
		_, _, line, _ = runtime.Caller(0)
		ctx.call("Broken", func() {
			d.PushError(driver.INVALID_VALUE)
			d.PushError(driver.INVALID_OPERATION)
		})
	})
	assert.Equal(t, "Broken", ce.Call)
	assert.Equal(t, []driver.Enum{driver.INVALID_VALUE, driver.INVALID_OPERATION}, ce.Codes)
	assert.Equal(t, "context_test.go", filepath.Base(ce.File))
	assert.Equal(t, line+1, ce.Line)
	assert.Equal(t, "[OpenGL error] (1281 GL_INVALID_VALUE, 1282 GL_INVALID_OPERATION) Broken -> context_test.go:"+strconv.Itoa(line+1), ce.Error())
	assert.Equal(t, 0, d.PendingErrors())
}

func TestCallWithoutDebug(t *testing.T) {
	ctx, d := newTestContext(t)
	ctx.Debug = false
	assert.NotPanics(t, func() {
		ctx.call("Broken", func() { d.PushError(driver.INVALID_OPERATION) })
	})
	assert.Equal(t, 1, d.PendingErrors())
}

func TestMisuseIsFatal(t *testing.T) {
	ctx, _ := newTestContext(t)
	vb := &VertexBuffer{ctx: ctx, handle: 42}
	ce := callError(t, vb.Bind)
	assert.Equal(t, "BindBuffer(ARRAY_BUFFER)", ce.Call)
	assert.Equal(t, []driver.Enum{driver.INVALID_OPERATION}, ce.Codes)
	assert.Equal(t, driver.Buffer(0), ctx.BoundVertexBuffer())

	va := NewVertexArray(ctx)
	layout := &VertexBufferLayout{}
	layout.PushFloat32(5) // more than 4 components
	vb = NewVertexBufferFrom(ctx, quadPositions)
	ce = callError(t, func() { va.AddBuffer(vb, layout) })
	assert.Equal(t, "VertexAttribPointer", ce.Call)
	assert.Equal(t, []driver.Enum{driver.INVALID_VALUE}, ce.Codes)
}

func TestVersion(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.Equal(t, "4.1 drivertest", ctx.Version())
}

func TestExpectBindings(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.NotPanics(t, func() { ctx.expectBindings("Draw", 0, 0, 0) })
	va := NewVertexArray(ctx)
	va.Bind()
	ce := callError(t, func() { ctx.expectBindings("Draw", 0, 0, 0) })
	require.NotEmpty(t, ce.Reason)
	assert.Contains(t, ce.Reason, "vertex array 1 bound, want 0")
	assert.Empty(t, ce.Codes)
}
