// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer provides resource types owning OpenGL objects
// (vertex and index buffers, vertex arrays with their attribute
// layouts, and shader programs) and a [Renderer] that draws with them.
//
// Every driver call goes through a [Context], which checks the driver's
// error flags around the call when debugging is enabled and panics with
// a [CallError] that names the failing call and where it was made.
// Misuse of the API is a programming error, so it is not returned as an
// error value; failures that depend on input, such as a shader that does
// not compile, are.
//
// Each resource owns exactly one GPU handle, acquired when it is
// created and released by its Delete method.
package renderer

import "glquad.dev/glquad/driver"

// Renderer issues clear and draw calls on a [Context].
type Renderer struct {
	ctx *Context
}

// NewRenderer returns a new renderer drawing on ctx.
func NewRenderer(ctx *Context) *Renderer {
	return &Renderer{ctx: ctx}
}

// Context returns the context the renderer draws on.
func (r *Renderer) Context() *Context {
	return r.ctx
}

// SetClearColor sets the color used by [Renderer.Clear].
func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.ctx.call("ClearColor", func() { r.ctx.fn.ClearColor(red, green, blue, alpha) })
}

// SetViewport sets the drawing area to the given framebuffer size.
func (r *Renderer) SetViewport(width, height int) {
	r.ctx.call("Viewport", func() { r.ctx.fn.Viewport(0, 0, width, height) })
}

// Clear clears the color buffer.
func (r *Renderer) Clear() {
	r.ctx.call("Clear(COLOR_BUFFER_BIT)", func() { r.ctx.fn.Clear(driver.COLOR_BUFFER_BIT) })
}

// Draw draws the triangles indexed by ib, with the vertex data of va,
// using sh. It binds all three first and checks that the context
// reports them bound before issuing the draw call.
func (r *Renderer) Draw(va *VertexArray, ib *IndexBuffer, sh *Shader) {
	sh.Bind()
	va.Bind()
	ib.Bind()
	r.ctx.expectBindings("DrawElements", va.handle, ib.handle, sh.handle)
	r.ctx.call("DrawElements(TRIANGLES)", func() {
		r.ctx.fn.DrawElements(driver.TRIANGLES, ib.Count(), driver.UNSIGNED_INT, 0)
	})
}
