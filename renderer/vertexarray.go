// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import "glquad.dev/glquad/driver"

// VertexArray owns a GPU vertex array object, which holds the
// attribute layout of the vertex data and the index buffer binding
// used by draw calls.
type VertexArray struct {
	ctx    *Context
	handle driver.VertexArray
}

// NewVertexArray creates a vertex array. It is not bound.
func NewVertexArray(ctx *Context) *VertexArray {
	va := &VertexArray{ctx: ctx}
	va.handle = call1(ctx, "CreateVertexArray", ctx.fn.CreateVertexArray)
	return va
}

// Handle returns the GPU handle of the vertex array, or 0 once deleted.
func (va *VertexArray) Handle() driver.VertexArray {
	return va.handle
}

// AddBuffer binds the vertex array and vb, and then describes every
// attribute of layout: attribute i of the layout goes to slot i, at
// the total size of attributes 0..i-1 into each vertex of layout.Stride()
// bytes. Both stay bound afterwards.
func (va *VertexArray) AddBuffer(vb *VertexBuffer, layout *VertexBufferLayout) {
	va.Bind()
	vb.Bind()
	stride := layout.Stride()
	offset := 0
	for i, el := range layout.elements {
		slot := driver.Attrib(i)
		va.ctx.call("EnableVertexAttribArray", func() {
			va.ctx.fn.EnableVertexAttribArray(slot)
		})
		va.ctx.call("VertexAttribPointer", func() {
			va.ctx.fn.VertexAttribPointer(slot, el.Count, el.Type.GLType(), el.Normalized, stride, offset)
		})
		offset += el.Size()
	}
}

// Bind makes this the current vertex array.
func (va *VertexArray) Bind() {
	va.ctx.bindVertexArray(va.handle)
}

// Unbind clears the current vertex array.
func (va *VertexArray) Unbind() {
	va.ctx.bindVertexArray(0)
}

// Delete releases the vertex array. Calling it more than once has no
// effect, and the vertex array must not be used afterwards.
func (va *VertexArray) Delete() {
	if va.handle == 0 {
		return
	}
	va.ctx.deleteVertexArray(va.handle)
	va.handle = 0
}
