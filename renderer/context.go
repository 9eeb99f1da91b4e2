// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"glquad.dev/glquad/driver"
)

// maxDrainErrors bounds the number of error flags read in one drain,
// since a lost context can report an error on every query.
const maxDrainErrors = 64

// CallError is the panic value raised when the driver reports an error
// for a call made through a [Context], or when a call could not be made
// because a required name did not resolve. These are programmer errors:
// they are never retried and should not be recovered in normal operation.
type CallError struct {

	// Call is the driver call that failed, as written at the call site.
	Call string

	// File and Line locate the call site.
	File string
	Line int

	// Codes are the error flags raised by the call, in the order
	// the driver reported them.
	Codes []driver.Enum

	// Reason describes failures that are not driver error flags.
	Reason string
}

func (e *CallError) Error() string {
	var b strings.Builder
	b.WriteString("[OpenGL error] ")
	if len(e.Codes) > 0 {
		b.WriteString("(")
		for i, c := range e.Codes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Itoa(int(c)))
			if nm := driver.ErrorName(c); nm != "" {
				b.WriteString(" " + nm)
			}
		}
		b.WriteString(") ")
	}
	b.WriteString(e.Call)
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	b.WriteString(" -> " + filepath.Base(e.File) + ":" + strconv.Itoa(e.Line))
	return b.String()
}

// Context is the single-threaded view of one OpenGL context.
// All resources created from it issue their driver calls through it,
// and it tracks which vertex buffer, vertex array, index buffer and
// program are currently bound, so that operations can check or
// re-establish the bindings they depend on instead of relying on the
// order of earlier calls.
//
// A Context must only be used from the thread that owns the OpenGL context.
type Context struct {

	// Debug is whether to check the driver's error flags around
	// every call. It is initialized from [Debug].
	Debug bool

	fn driver.Functions

	vertexBuffer driver.Buffer
	vertexArray  driver.VertexArray

	// indexBuffers is the element buffer bound in each vertex array,
	// including vertex array 0. OpenGL stores this binding as part of
	// the vertex array state.
	indexBuffers map[driver.VertexArray]driver.Buffer

	program driver.Program
}

// NewContext returns a new Context issuing its calls to fn.
// Nothing is bound initially.
func NewContext(fn driver.Functions) *Context {
	return &Context{
		Debug:        Debug,
		fn:           fn,
		indexBuffers: make(map[driver.VertexArray]driver.Buffer),
	}
}

// Functions returns the driver functions of the context.
func (c *Context) Functions() driver.Functions {
	return c.fn
}

// Version returns the version string reported by the driver.
func (c *Context) Version() string {
	return call1(c, "GetString(VERSION)", func() string { return c.fn.GetString(driver.VERSION) })
}

// BoundVertexBuffer returns the vertex buffer currently bound.
func (c *Context) BoundVertexBuffer() driver.Buffer {
	return c.vertexBuffer
}

// BoundVertexArray returns the vertex array currently bound.
func (c *Context) BoundVertexArray() driver.VertexArray {
	return c.vertexArray
}

// BoundIndexBuffer returns the index buffer bound in the
// currently bound vertex array.
func (c *Context) BoundIndexBuffer() driver.Buffer {
	return c.indexBuffers[c.vertexArray]
}

// ActiveProgram returns the program currently in use.
func (c *Context) ActiveProgram() driver.Program {
	return c.program
}

////////  Debug-call layer

// call issues f, which must make the driver call named by expr.
// When debugging is on, all pending error flags are drained first,
// and any flags raised by f are reported as a [CallError] panic
// located at the caller of call.
func (c *Context) call(expr string, f func()) {
	if !c.Debug {
		f()
		return
	}
	c.clearErrors()
	f()
	c.checkErrors(expr)
}

// call1 is [Context.call] for driver calls returning a value.
func call1[T any](c *Context, expr string, f func() T) T {
	if !c.Debug {
		return f()
	}
	c.clearErrors()
	v := f()
	c.checkErrors(expr)
	return v
}

func (c *Context) clearErrors() {
	for range maxDrainErrors {
		if c.fn.GetError() == driver.NO_ERROR {
			return
		}
	}
}

// checkErrors must be called directly from call or call1,
// so that the reported location is the line that issued the call.
func (c *Context) checkErrors(expr string) {
	var codes []driver.Enum
	for range maxDrainErrors {
		e := c.fn.GetError()
		if e == driver.NO_ERROR {
			break
		}
		codes = append(codes, e)
	}
	if len(codes) == 0 {
		return
	}
	_, file, line, _ := runtime.Caller(2)
	err := &CallError{Call: expr, File: file, Line: line, Codes: codes}
	for _, code := range codes {
		slog.Error("OpenGL error", "code", int(code), "name", driver.ErrorName(code), "call", expr, "file", file, "line", line)
	}
	panic(err)
}

// fatal panics with a [CallError] for a failure that the driver
// does not flag itself, located skip frames above the caller of fatal.
func (c *Context) fatal(expr, reason string, skip int) {
	_, file, line, _ := runtime.Caller(skip + 1)
	err := &CallError{Call: expr, File: file, Line: line, Reason: reason}
	slog.Error("OpenGL error", "call", expr, "reason", reason, "file", file, "line", line)
	panic(err)
}

////////  Binding

func (c *Context) bindVertexBuffer(b driver.Buffer) {
	c.call("BindBuffer(ARRAY_BUFFER)", func() { c.fn.BindBuffer(driver.ARRAY_BUFFER, b) })
	c.vertexBuffer = b
}

func (c *Context) bindIndexBuffer(b driver.Buffer) {
	c.call("BindBuffer(ELEMENT_ARRAY_BUFFER)", func() { c.fn.BindBuffer(driver.ELEMENT_ARRAY_BUFFER, b) })
	if b == 0 {
		delete(c.indexBuffers, c.vertexArray)
		return
	}
	c.indexBuffers[c.vertexArray] = b
}

func (c *Context) bindVertexArray(a driver.VertexArray) {
	c.call("BindVertexArray", func() { c.fn.BindVertexArray(a) })
	c.vertexArray = a
}

func (c *Context) useProgram(p driver.Program) {
	c.call("UseProgram", func() { c.fn.UseProgram(p) })
	c.program = p
}

// deleteBuffer deletes b, which the driver also unbinds
// from the array buffer target and from the bound vertex array.
func (c *Context) deleteBuffer(b driver.Buffer) {
	c.call("DeleteBuffer", func() { c.fn.DeleteBuffer(b) })
	if c.vertexBuffer == b {
		c.vertexBuffer = 0
	}
	if c.indexBuffers[c.vertexArray] == b {
		delete(c.indexBuffers, c.vertexArray)
	}
}

func (c *Context) deleteVertexArray(a driver.VertexArray) {
	c.call("DeleteVertexArray", func() { c.fn.DeleteVertexArray(a) })
	delete(c.indexBuffers, a)
	if c.vertexArray == a {
		c.vertexArray = 0
	}
}

func (c *Context) deleteProgram(p driver.Program) {
	c.call("DeleteProgram", func() { c.fn.DeleteProgram(p) })
	if c.program == p {
		c.program = 0
	}
}

// expectBindings panics with a [CallError] if the tracked bindings
// differ from the given ones. It is used right before draw calls.
func (c *Context) expectBindings(expr string, a driver.VertexArray, ib driver.Buffer, p driver.Program) {
	var bad []string
	if c.vertexArray != a {
		bad = append(bad, fmt.Sprintf("vertex array %d bound, want %d", c.vertexArray, a))
	}
	if got := c.BoundIndexBuffer(); got != ib {
		bad = append(bad, fmt.Sprintf("index buffer %d bound, want %d", got, ib))
	}
	if c.program != p {
		bad = append(bad, fmt.Sprintf("program %d in use, want %d", c.program, p))
	}
	if len(bad) > 0 {
		c.fatal(expr, strings.Join(bad, "; "), 1)
	}
}
