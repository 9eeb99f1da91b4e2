// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"unsafe"

	"glquad.dev/glquad/driver"
)

// Bytes returns the memory of s viewed as bytes, without copying.
func Bytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var v T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(v)))
}

// VertexBuffer owns a GPU buffer of vertex data. The data is uploaded
// once when the buffer is created and never changes afterwards.
type VertexBuffer struct {
	ctx    *Context
	handle driver.Buffer
	size   int
}

// NewVertexBuffer creates a GPU buffer and uploads data to it.
// The buffer is left bound as the current vertex buffer.
func NewVertexBuffer(ctx *Context, data []byte) *VertexBuffer {
	vb := &VertexBuffer{ctx: ctx, size: len(data)}
	vb.handle = call1(ctx, "CreateBuffer", ctx.fn.CreateBuffer)
	vb.Bind()
	ctx.call("BufferData(ARRAY_BUFFER, STATIC_DRAW)", func() {
		ctx.fn.BufferData(driver.ARRAY_BUFFER, data, driver.STATIC_DRAW)
	})
	return vb
}

// NewVertexBufferFrom creates a vertex buffer holding the given values.
func NewVertexBufferFrom[T Scalar](ctx *Context, data []T) *VertexBuffer {
	return NewVertexBuffer(ctx, Bytes(data))
}

// Handle returns the GPU handle of the buffer, or 0 once deleted.
func (vb *VertexBuffer) Handle() driver.Buffer {
	return vb.handle
}

// Size returns the size of the buffer data in bytes.
func (vb *VertexBuffer) Size() int {
	return vb.size
}

// Bind makes this the current vertex buffer.
func (vb *VertexBuffer) Bind() {
	vb.ctx.bindVertexBuffer(vb.handle)
}

// Unbind clears the current vertex buffer.
func (vb *VertexBuffer) Unbind() {
	vb.ctx.bindVertexBuffer(0)
}

// Delete releases the GPU buffer. Calling it more than once has no effect,
// and the buffer must not be used afterwards.
func (vb *VertexBuffer) Delete() {
	if vb.handle == 0 {
		return
	}
	vb.ctx.deleteBuffer(vb.handle)
	vb.handle = 0
}

// IndexBuffer owns a GPU buffer of uint32 vertex indexes used by
// indexed draw calls. OpenGL records the index buffer binding in the
// bound vertex array, so an index buffer created or bound while a
// vertex array is bound becomes part of that vertex array.
type IndexBuffer struct {
	ctx    *Context
	handle driver.Buffer
	count  int
}

// NewIndexBuffer creates a GPU buffer and uploads indices to it.
// The buffer is left bound as the current index buffer.
func NewIndexBuffer(ctx *Context, indices []uint32) *IndexBuffer {
	ib := &IndexBuffer{ctx: ctx, count: len(indices)}
	ib.handle = call1(ctx, "CreateBuffer", ctx.fn.CreateBuffer)
	ib.Bind()
	ctx.call("BufferData(ELEMENT_ARRAY_BUFFER, STATIC_DRAW)", func() {
		ctx.fn.BufferData(driver.ELEMENT_ARRAY_BUFFER, Bytes(indices), driver.STATIC_DRAW)
	})
	return ib
}

// Handle returns the GPU handle of the buffer, or 0 once deleted.
func (ib *IndexBuffer) Handle() driver.Buffer {
	return ib.handle
}

// Count returns the number of indexes in the buffer.
func (ib *IndexBuffer) Count() int {
	return ib.count
}

// Bind makes this the current index buffer.
func (ib *IndexBuffer) Bind() {
	ib.ctx.bindIndexBuffer(ib.handle)
}

// Unbind clears the current index buffer.
func (ib *IndexBuffer) Unbind() {
	ib.ctx.bindIndexBuffer(0)
}

// Delete releases the GPU buffer. Calling it more than once has no effect,
// and the buffer must not be used afterwards.
func (ib *IndexBuffer) Delete() {
	if ib.handle == 0 {
		return
	}
	ib.ctx.deleteBuffer(ib.handle)
	ib.handle = 0
}
