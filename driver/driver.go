// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver defines the boundary between the renderer and the
// GPU driver: the set of synchronous, handle-based OpenGL calls that the
// renderer issues, expressed as the [Functions] interface.
//
// The real implementation lives in package gldriver, and an in-memory
// implementation for tests lives in package drivertest.
package driver

type (
	// Enum is an OpenGL enumerant value.
	Enum uint32

	// Attrib is the index of a vertex attribute slot.
	Attrib uint32

	// Buffer is a buffer object handle.
	Buffer uint32

	// VertexArray is a vertex array object handle.
	VertexArray uint32

	// Shader is a shader object handle.
	Shader uint32

	// Program is a program object handle.
	Program uint32

	// Uniform is a uniform location within a linked program.
	// A value of -1 means the name did not resolve.
	Uniform int32
)

// Valid returns whether the location resolved to an active uniform.
func (u Uniform) Valid() bool {
	return u >= 0
}

// OpenGL enum values used by the renderer.
const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	UNSIGNED_BYTE Enum = 0x1401
	UNSIGNED_INT  Enum = 0x1405
	FLOAT         Enum = 0x1406

	TRIANGLES Enum = 0x0004

	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	VALIDATE_STATUS Enum = 0x8B83
	INFO_LOG_LENGTH Enum = 0x8B84

	COLOR_BUFFER_BIT Enum = 0x4000

	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02
)

// ErrorName returns the symbolic name of an OpenGL error code,
// or the empty string if it is not a known error code.
func ErrorName(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return ""
}

// Functions is the subset of the OpenGL API used by the renderer.
// All calls operate on the current context of the calling thread
// and complete synchronously from the caller's point of view.
type Functions interface {
	GetError() Enum
	GetString(name Enum) string

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, src []byte, usage Enum)

	CreateVertexArray() VertexArray
	DeleteVertexArray(a VertexArray)
	BindVertexArray(a VertexArray)
	EnableVertexAttribArray(a Attrib)
	VertexAttribPointer(a Attrib, size int, ty Enum, normalized bool, stride, offset int)

	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	// GetShaderInfoLog returns the compiler diagnostics of s,
	// retrieved using its INFO_LOG_LENGTH.
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	ValidateProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	// GetProgramInfoLog returns the link and validation diagnostics of p,
	// retrieved using its INFO_LOG_LENGTH.
	GetProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	GetUniformLocation(p Program, name string) Uniform
	Uniform1i(dst Uniform, v int32)
	Uniform1f(dst Uniform, v float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst Uniform, transpose bool, m []float32)

	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
}
