// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldriver implements [driver.Functions] on top of the
// OpenGL 4.1 core profile bindings of github.com/go-gl/gl.
package gldriver

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"glquad.dev/glquad/driver"
)

// Functions calls directly into the OpenGL 4.1 core profile.
// A context must be current on the calling thread.
type Functions struct{}

var _ driver.Functions = (*Functions)(nil)

// New loads the OpenGL function pointers for the current context.
// It must be called after a context has been made current.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldriver: failed to load OpenGL functions: %w", err)
	}
	return &Functions{}, nil
}

// cstr returns s as a null terminated string for the C API.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func (f *Functions) GetError() driver.Enum {
	return driver.Enum(gl.GetError())
}

func (f *Functions) GetString(name driver.Enum) string {
	p := gl.GetString(uint32(name))
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (f *Functions) CreateBuffer() driver.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return driver.Buffer(b)
}

func (f *Functions) DeleteBuffer(b driver.Buffer) {
	h := uint32(b)
	gl.DeleteBuffers(1, &h)
}

func (f *Functions) BindBuffer(target driver.Enum, b driver.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (f *Functions) BufferData(target driver.Enum, src []byte, usage driver.Enum) {
	if len(src) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(src), gl.Ptr(src), uint32(usage))
}

func (f *Functions) CreateVertexArray() driver.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return driver.VertexArray(a)
}

func (f *Functions) DeleteVertexArray(a driver.VertexArray) {
	h := uint32(a)
	gl.DeleteVertexArrays(1, &h)
}

func (f *Functions) BindVertexArray(a driver.VertexArray) {
	gl.BindVertexArray(uint32(a))
}

func (f *Functions) EnableVertexAttribArray(a driver.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(a driver.Attrib, size int, ty driver.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(a), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) CreateShader(ty driver.Enum) driver.Shader {
	return driver.Shader(gl.CreateShader(uint32(ty)))
}

func (f *Functions) ShaderSource(s driver.Shader, src string) {
	csources, free := gl.Strs(cstr(src))
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (f *Functions) CompileShader(s driver.Shader) {
	gl.CompileShader(uint32(s))
}

func (f *Functions) GetShaderi(s driver.Shader, pname driver.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s driver.Shader) string {
	n := f.GetShaderi(s, driver.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", n+1)
	gl.GetShaderInfoLog(uint32(s), int32(n), nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (f *Functions) DeleteShader(s driver.Shader) {
	gl.DeleteShader(uint32(s))
}

func (f *Functions) CreateProgram() driver.Program {
	return driver.Program(gl.CreateProgram())
}

func (f *Functions) AttachShader(p driver.Program, s driver.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (f *Functions) DetachShader(p driver.Program, s driver.Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (f *Functions) LinkProgram(p driver.Program) {
	gl.LinkProgram(uint32(p))
}

func (f *Functions) ValidateProgram(p driver.Program) {
	gl.ValidateProgram(uint32(p))
}

func (f *Functions) GetProgrami(p driver.Program, pname driver.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p driver.Program) string {
	n := f.GetProgrami(p, driver.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", n+1)
	gl.GetProgramInfoLog(uint32(p), int32(n), nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (f *Functions) DeleteProgram(p driver.Program) {
	gl.DeleteProgram(uint32(p))
}

func (f *Functions) UseProgram(p driver.Program) {
	gl.UseProgram(uint32(p))
}

func (f *Functions) GetUniformLocation(p driver.Program, name string) driver.Uniform {
	return driver.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(cstr(name))))
}

func (f *Functions) Uniform1i(dst driver.Uniform, v int32) {
	gl.Uniform1i(int32(dst), v)
}

func (f *Functions) Uniform1f(dst driver.Uniform, v float32) {
	gl.Uniform1f(int32(dst), v)
}

func (f *Functions) Uniform4f(dst driver.Uniform, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(dst), v0, v1, v2, v3)
}

func (f *Functions) UniformMatrix4fv(dst driver.Uniform, transpose bool, m []float32) {
	if len(m) < 16 {
		return
	}
	gl.UniformMatrix4fv(int32(dst), int32(len(m)/16), transpose, &m[0])
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) Clear(mask driver.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) DrawElements(mode driver.Enum, count int, ty driver.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}
