// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drivertest provides an in-memory implementation of
// [driver.Functions] for tests that do not have a GPU.
//
// The [Driver] keeps the same bind state that an OpenGL context does
// (array buffer, vertex array and its element buffer, current program),
// raises the error flags that a core profile context raises for the
// misuse it models, and records everything the renderer asks of it so
// that tests can inspect attribute layouts, buffer contents, uniform
// values and draw calls.
package drivertest

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"glquad.dev/glquad/driver"
)

// MaxVertexAttribs is the number of attribute slots each vertex array has.
const MaxVertexAttribs = 16

// AttribState is the recorded state of one vertex attribute slot.
type AttribState struct {
	Enabled    bool
	Size       int
	Type       driver.Enum
	Normalized bool
	Stride     int
	Offset     int

	// Buffer is the array buffer that was bound when the
	// attribute pointer was set.
	Buffer driver.Buffer
}

// DrawCall is a recorded DrawElements call.
type DrawCall struct {
	Mode   driver.Enum
	Count  int
	Type   driver.Enum
	Offset int

	VertexArray   driver.VertexArray
	ElementBuffer driver.Buffer
	Program       driver.Program
}

// Counts holds the numbers of live objects of each kind.
type Counts struct {
	Buffers      int
	VertexArrays int
	Shaders      int
	Programs     int
}

type bufferObj struct {
	data  []byte
	usage driver.Enum
}

type arrayObj struct {
	element driver.Buffer
	attribs map[driver.Attrib]*AttribState
}

type shaderObj struct {
	typ      driver.Enum
	src      string
	compiled bool
	log      string
	deleted  bool
	attached int
}

type programObj struct {
	shaders   []driver.Shader
	linked    bool
	validated bool
	log       string
	uniforms  map[string]driver.Uniform
	values    map[driver.Uniform][]float32
}

// Driver is an in-memory OpenGL context. The zero value is not ready
// for use; create one with [New].
type Driver struct {

	// Compile decides whether a shader source compiles, returning the
	// info log on failure. It defaults to [DefaultCompile].
	Compile func(typ driver.Enum, src string) (ok bool, log string)

	// Link, if set, is consulted after the built-in link checks pass,
	// with the sources of the attached shaders in attachment order.
	// It can make linking fail with the returned log.
	Link func(sources []string) (ok bool, log string)

	// Version is returned for the VERSION string.
	Version string

	// UniformLookups counts the calls to GetUniformLocation.
	UniformLookups int

	// Draws records every DrawElements call that did not raise an error.
	Draws []DrawCall

	// Clears counts Clear calls.
	Clears int

	// ClearColorValue is the last color passed to ClearColor.
	ClearColorValue [4]float32

	// ViewportValue is the last rectangle passed to Viewport.
	ViewportValue [4]int

	next uint32
	errs []driver.Enum

	buffers  map[driver.Buffer]*bufferObj
	arrays   map[driver.VertexArray]*arrayObj
	shaders  map[driver.Shader]*shaderObj
	programs map[driver.Program]*programObj

	// defaultArray holds the element buffer binding of vertex array 0.
	defaultArray *arrayObj

	arrayBuffer driver.Buffer
	vertexArray driver.VertexArray
	program     driver.Program
}

var _ driver.Functions = (*Driver)(nil)

// New returns a new in-memory context with nothing bound.
func New() *Driver {
	return &Driver{
		Compile:      DefaultCompile,
		Version:      "4.1 drivertest",
		buffers:      make(map[driver.Buffer]*bufferObj),
		arrays:       make(map[driver.VertexArray]*arrayObj),
		shaders:      make(map[driver.Shader]*shaderObj),
		programs:     make(map[driver.Program]*programObj),
		defaultArray: &arrayObj{attribs: make(map[driver.Attrib]*AttribState)},
	}
}

// DefaultCompile accepts any source that declares a main function and
// does not contain an #error directive.
func DefaultCompile(typ driver.Enum, src string) (bool, string) {
	if i := strings.Index(src, "#error"); i >= 0 {
		line := strings.Count(src[:i], "\n") + 1
		msg := strings.TrimSpace(strings.SplitN(src[i+len("#error"):], "\n", 2)[0])
		return false, "0:" + strconv.Itoa(line) + "(1): error: " + msg + "\n"
	}
	if !strings.Contains(src, "void main") {
		return false, "0:1(1): error: no function with name 'main'\n"
	}
	return true, ""
}

// PushError queues an error flag, as if the previous call had raised it.
func (d *Driver) PushError(code driver.Enum) {
	d.errs = append(d.errs, code)
}

// PendingErrors returns the number of queued error flags.
func (d *Driver) PendingErrors() int {
	return len(d.errs)
}

func (d *Driver) newName() uint32 {
	d.next++
	return d.next
}

func (d *Driver) currentArray() *arrayObj {
	if d.vertexArray == 0 {
		return d.defaultArray
	}
	return d.arrays[d.vertexArray]
}

////////  Inspection

// BoundArrayBuffer returns the buffer bound to ARRAY_BUFFER.
func (d *Driver) BoundArrayBuffer() driver.Buffer {
	return d.arrayBuffer
}

// BoundElementBuffer returns the buffer bound to ELEMENT_ARRAY_BUFFER,
// which is part of the state of the bound vertex array.
func (d *Driver) BoundElementBuffer() driver.Buffer {
	return d.currentArray().element
}

// BoundVertexArray returns the bound vertex array.
func (d *Driver) BoundVertexArray() driver.VertexArray {
	return d.vertexArray
}

// CurrentProgram returns the program in use.
func (d *Driver) CurrentProgram() driver.Program {
	return d.program
}

// Live returns the number of objects of each kind that have not been deleted.
func (d *Driver) Live() Counts {
	return Counts{
		Buffers:      len(d.buffers),
		VertexArrays: len(d.arrays),
		Shaders:      len(d.shaders),
		Programs:     len(d.programs),
	}
}

// BufferContents returns a copy of the data store of b.
func (d *Driver) BufferContents(b driver.Buffer) ([]byte, bool) {
	bo, ok := d.buffers[b]
	if !ok {
		return nil, false
	}
	return slices.Clone(bo.data), true
}

// Attrib returns the state of attribute slot a of vertex array va.
func (d *Driver) Attrib(va driver.VertexArray, a driver.Attrib) (AttribState, bool) {
	ao, ok := d.arrays[va]
	if !ok {
		return AttribState{}, false
	}
	st, ok := ao.attribs[a]
	if !ok {
		return AttribState{}, false
	}
	return *st, true
}

// ElementBufferOf returns the element buffer recorded in vertex array va.
func (d *Driver) ElementBufferOf(va driver.VertexArray) driver.Buffer {
	if ao, ok := d.arrays[va]; ok {
		return ao.element
	}
	return 0
}

// ProgramLinked returns whether p exists and linked successfully.
func (d *Driver) ProgramLinked(p driver.Program) bool {
	po, ok := d.programs[p]
	return ok && po.linked
}

// UniformValue returns the last value written to the named uniform of p.
func (d *Driver) UniformValue(p driver.Program, name string) ([]float32, bool) {
	po, ok := d.programs[p]
	if !ok {
		return nil, false
	}
	loc, ok := po.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := po.values[loc]
	return slices.Clone(v), ok
}

////////  driver.Functions

func (d *Driver) GetError() driver.Enum {
	if len(d.errs) == 0 {
		return driver.NO_ERROR
	}
	e := d.errs[0]
	d.errs = d.errs[1:]
	return e
}

func (d *Driver) GetString(name driver.Enum) string {
	switch name {
	case driver.VERSION:
		return d.Version
	case driver.VENDOR:
		return "glquad"
	case driver.RENDERER:
		return "drivertest"
	}
	d.PushError(driver.INVALID_ENUM)
	return ""
}

func (d *Driver) CreateBuffer() driver.Buffer {
	b := driver.Buffer(d.newName())
	d.buffers[b] = &bufferObj{}
	return b
}

func (d *Driver) DeleteBuffer(b driver.Buffer) {
	if _, ok := d.buffers[b]; !ok {
		return
	}
	delete(d.buffers, b)
	if d.arrayBuffer == b {
		d.arrayBuffer = 0
	}
	if ao := d.currentArray(); ao.element == b {
		ao.element = 0
	}
}

func (d *Driver) BindBuffer(target driver.Enum, b driver.Buffer) {
	if target != driver.ARRAY_BUFFER && target != driver.ELEMENT_ARRAY_BUFFER {
		d.PushError(driver.INVALID_ENUM)
		return
	}
	if _, ok := d.buffers[b]; b != 0 && !ok {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	if target == driver.ARRAY_BUFFER {
		d.arrayBuffer = b
		return
	}
	d.currentArray().element = b
}

func (d *Driver) BufferData(target driver.Enum, src []byte, usage driver.Enum) {
	var b driver.Buffer
	switch target {
	case driver.ARRAY_BUFFER:
		b = d.arrayBuffer
	case driver.ELEMENT_ARRAY_BUFFER:
		b = d.currentArray().element
	default:
		d.PushError(driver.INVALID_ENUM)
		return
	}
	if usage != driver.STATIC_DRAW && usage != driver.DYNAMIC_DRAW {
		d.PushError(driver.INVALID_ENUM)
		return
	}
	bo, ok := d.buffers[b]
	if !ok {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	bo.data = slices.Clone(src)
	bo.usage = usage
}

func (d *Driver) CreateVertexArray() driver.VertexArray {
	a := driver.VertexArray(d.newName())
	d.arrays[a] = &arrayObj{attribs: make(map[driver.Attrib]*AttribState)}
	return a
}

func (d *Driver) DeleteVertexArray(a driver.VertexArray) {
	if _, ok := d.arrays[a]; !ok {
		return
	}
	delete(d.arrays, a)
	if d.vertexArray == a {
		d.vertexArray = 0
	}
}

func (d *Driver) BindVertexArray(a driver.VertexArray) {
	if _, ok := d.arrays[a]; a != 0 && !ok {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	d.vertexArray = a
}

func (d *Driver) EnableVertexAttribArray(a driver.Attrib) {
	if d.vertexArray == 0 {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	if a >= MaxVertexAttribs {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	ao := d.currentArray()
	st, ok := ao.attribs[a]
	if !ok {
		st = &AttribState{}
		ao.attribs[a] = st
	}
	st.Enabled = true
}

func (d *Driver) VertexAttribPointer(a driver.Attrib, size int, ty driver.Enum, normalized bool, stride, offset int) {
	if d.vertexArray == 0 || d.arrayBuffer == 0 {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	if a >= MaxVertexAttribs || size < 1 || size > 4 || stride < 0 || offset < 0 {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	switch ty {
	case driver.FLOAT, driver.UNSIGNED_INT, driver.UNSIGNED_BYTE:
	default:
		d.PushError(driver.INVALID_ENUM)
		return
	}
	ao := d.currentArray()
	st, ok := ao.attribs[a]
	if !ok {
		st = &AttribState{}
		ao.attribs[a] = st
	}
	st.Size = size
	st.Type = ty
	st.Normalized = normalized
	st.Stride = stride
	st.Offset = offset
	st.Buffer = d.arrayBuffer
}

func (d *Driver) CreateShader(ty driver.Enum) driver.Shader {
	if ty != driver.VERTEX_SHADER && ty != driver.FRAGMENT_SHADER {
		d.PushError(driver.INVALID_ENUM)
		return 0
	}
	s := driver.Shader(d.newName())
	d.shaders[s] = &shaderObj{typ: ty}
	return s
}

func (d *Driver) shader(s driver.Shader) *shaderObj {
	so, ok := d.shaders[s]
	if !ok {
		d.PushError(driver.INVALID_VALUE)
		return nil
	}
	return so
}

func (d *Driver) ShaderSource(s driver.Shader, src string) {
	if so := d.shader(s); so != nil {
		so.src = src
	}
}

func (d *Driver) CompileShader(s driver.Shader) {
	so := d.shader(s)
	if so == nil {
		return
	}
	so.compiled, so.log = d.Compile(so.typ, so.src)
}

func (d *Driver) GetShaderi(s driver.Shader, pname driver.Enum) int {
	so := d.shader(s)
	if so == nil {
		return 0
	}
	switch pname {
	case driver.COMPILE_STATUS:
		if so.compiled {
			return driver.TRUE
		}
		return driver.FALSE
	case driver.INFO_LOG_LENGTH:
		if so.log == "" {
			return 0
		}
		return len(so.log) + 1
	}
	d.PushError(driver.INVALID_ENUM)
	return 0
}

func (d *Driver) GetShaderInfoLog(s driver.Shader) string {
	so := d.shader(s)
	if so == nil {
		return ""
	}
	n := d.GetShaderi(s, driver.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	return so.log[:n-1]
}

func (d *Driver) DeleteShader(s driver.Shader) {
	so, ok := d.shaders[s]
	if !ok {
		return
	}
	so.deleted = true
	if so.attached == 0 {
		delete(d.shaders, s)
	}
}

func (d *Driver) CreateProgram() driver.Program {
	p := driver.Program(d.newName())
	d.programs[p] = &programObj{}
	return p
}

func (d *Driver) prog(p driver.Program) *programObj {
	po, ok := d.programs[p]
	if !ok {
		d.PushError(driver.INVALID_VALUE)
		return nil
	}
	return po
}

func (d *Driver) AttachShader(p driver.Program, s driver.Shader) {
	po := d.prog(p)
	if po == nil {
		return
	}
	so := d.shader(s)
	if so == nil {
		return
	}
	if slices.Contains(po.shaders, s) {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	po.shaders = append(po.shaders, s)
	so.attached++
}

func (d *Driver) DetachShader(p driver.Program, s driver.Shader) {
	po := d.prog(p)
	if po == nil {
		return
	}
	i := slices.Index(po.shaders, s)
	if i < 0 {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	po.shaders = slices.Delete(po.shaders, i, i+1)
	so := d.shaders[s]
	so.attached--
	if so.deleted && so.attached == 0 {
		delete(d.shaders, s)
	}
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

var wordRe = regexp.MustCompile(`\w+`)

// activeUniforms returns the uniforms declared in src that are
// also referenced outside of their declaration.
func activeUniforms(src string) []string {
	uses := map[string]int{}
	for _, w := range wordRe.FindAllString(src, -1) {
		uses[w]++
	}
	var names []string
	for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
		if uses[m[1]] > 1 {
			names = append(names, m[1])
		}
	}
	return names
}

func (d *Driver) LinkProgram(p driver.Program) {
	po := d.prog(p)
	if po == nil {
		return
	}
	po.linked = false
	po.validated = false
	po.uniforms = nil
	po.values = nil
	var nvert, nfrag int
	var names, srcs []string
	for _, s := range po.shaders {
		so := d.shaders[s]
		if !so.compiled {
			po.log = "error: linking with uncompiled/unspecialized shader\n"
			return
		}
		switch so.typ {
		case driver.VERTEX_SHADER:
			nvert++
		case driver.FRAGMENT_SHADER:
			nfrag++
		}
		srcs = append(srcs, so.src)
		for _, n := range activeUniforms(so.src) {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	switch {
	case nvert != 1:
		po.log = "error: program must have exactly one vertex shader\n"
		return
	case nfrag != 1:
		po.log = "error: program must have exactly one fragment shader\n"
		return
	}
	if d.Link != nil {
		if ok, log := d.Link(srcs); !ok {
			po.log = log
			return
		}
	}
	slices.Sort(names)
	po.uniforms = make(map[string]driver.Uniform, len(names))
	for i, n := range names {
		po.uniforms[n] = driver.Uniform(i)
	}
	po.values = make(map[driver.Uniform][]float32)
	po.linked = true
	po.log = ""
}

func (d *Driver) ValidateProgram(p driver.Program) {
	if po := d.prog(p); po != nil {
		po.validated = po.linked
	}
}

func (d *Driver) GetProgrami(p driver.Program, pname driver.Enum) int {
	po := d.prog(p)
	if po == nil {
		return 0
	}
	switch pname {
	case driver.LINK_STATUS:
		if po.linked {
			return driver.TRUE
		}
		return driver.FALSE
	case driver.VALIDATE_STATUS:
		if po.validated {
			return driver.TRUE
		}
		return driver.FALSE
	case driver.INFO_LOG_LENGTH:
		if po.log == "" {
			return 0
		}
		return len(po.log) + 1
	}
	d.PushError(driver.INVALID_ENUM)
	return 0
}

func (d *Driver) GetProgramInfoLog(p driver.Program) string {
	po := d.prog(p)
	if po == nil {
		return ""
	}
	return po.log
}

// DeleteProgram releases p immediately; if it is in use,
// the current program reverts to 0.
func (d *Driver) DeleteProgram(p driver.Program) {
	po, ok := d.programs[p]
	if !ok {
		return
	}
	for _, s := range po.shaders {
		if so, ok := d.shaders[s]; ok {
			so.attached--
			if so.deleted && so.attached == 0 {
				delete(d.shaders, s)
			}
		}
	}
	delete(d.programs, p)
	if d.program == p {
		d.program = 0
	}
}

func (d *Driver) UseProgram(p driver.Program) {
	if p == 0 {
		d.program = 0
		return
	}
	po := d.prog(p)
	if po == nil {
		return
	}
	if !po.linked {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	d.program = p
}

func (d *Driver) GetUniformLocation(p driver.Program, name string) driver.Uniform {
	d.UniformLookups++
	po := d.prog(p)
	if po == nil {
		return -1
	}
	if !po.linked {
		d.PushError(driver.INVALID_OPERATION)
		return -1
	}
	loc, ok := po.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

// setUniform records v for dst in the current program.
// As in OpenGL, a location of -1 is silently ignored.
func (d *Driver) setUniform(dst driver.Uniform, v ...float32) {
	if d.program == 0 {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	if dst == -1 {
		return
	}
	po := d.programs[d.program]
	for _, loc := range po.uniforms {
		if loc == dst {
			po.values[dst] = v
			return
		}
	}
	d.PushError(driver.INVALID_OPERATION)
}

func (d *Driver) Uniform1i(dst driver.Uniform, v int32) {
	d.setUniform(dst, float32(v))
}

func (d *Driver) Uniform1f(dst driver.Uniform, v float32) {
	d.setUniform(dst, v)
}

func (d *Driver) Uniform4f(dst driver.Uniform, v0, v1, v2, v3 float32) {
	d.setUniform(dst, v0, v1, v2, v3)
}

func (d *Driver) UniformMatrix4fv(dst driver.Uniform, transpose bool, m []float32) {
	if len(m) != 16 {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	d.setUniform(dst, m...)
}

func (d *Driver) ClearColor(red, green, blue, alpha float32) {
	d.ClearColorValue = [4]float32{red, green, blue, alpha}
}

func (d *Driver) Clear(mask driver.Enum) {
	if mask&^driver.COLOR_BUFFER_BIT != 0 {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	d.Clears++
}

func (d *Driver) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	d.ViewportValue = [4]int{x, y, width, height}
}

func (d *Driver) DrawElements(mode driver.Enum, count int, ty driver.Enum, offset int) {
	if mode != driver.TRIANGLES || (ty != driver.UNSIGNED_INT && ty != driver.UNSIGNED_BYTE) {
		d.PushError(driver.INVALID_ENUM)
		return
	}
	if count < 0 {
		d.PushError(driver.INVALID_VALUE)
		return
	}
	ao := d.currentArray()
	if d.vertexArray == 0 || d.program == 0 || ao.element == 0 {
		d.PushError(driver.INVALID_OPERATION)
		return
	}
	d.Draws = append(d.Draws, DrawCall{
		Mode:          mode,
		Count:         count,
		Type:          ty,
		Offset:        offset,
		VertexArray:   d.vertexArray,
		ElementBuffer: ao.element,
		Program:       d.program,
	})
}
