// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"glquad.dev/glquad/base/errors"
	"glquad.dev/glquad/driver"
)

var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("failed to compile shader")

	// ErrLink is returned when a shader program fails to link.
	ErrLink = errors.New("failed to link shader program")
)

// ShaderMarker starts the lines of a shader file that select the stage
// that the following lines belong to.
const ShaderMarker = "#shader"

// ShaderTypes are the shader stages that a [Shader] is built from.
type ShaderTypes int32

const (
	VertexShader ShaderTypes = iota
	FragmentShader
)

// GLType returns the OpenGL shader type enum for the stage.
func (st ShaderTypes) GLType() driver.Enum {
	if st == FragmentShader {
		return driver.FRAGMENT_SHADER
	}
	return driver.VERTEX_SHADER
}

func (st ShaderTypes) String() string {
	if st == FragmentShader {
		return "fragment"
	}
	return "vertex"
}

// ShaderSources holds the source code of each stage of a shader program.
type ShaderSources struct {
	Vertex   string
	Fragment string
}

// ParseShader splits a combined shader source into its stages.
// A line containing [ShaderMarker] selects the stage for the following
// lines: vertex if the line contains "vertex", otherwise fragment if it
// contains "fragment"; a marker naming neither leaves the stage as it was.
// Every other line is added verbatim, with a trailing newline, to the
// selected stage. Lines before the first stage is selected are dropped,
// and marker lines themselves never appear in the output.
func ParseShader(r io.Reader) (ShaderSources, error) {
	const (
		none = iota
		vertex
		fragment
	)
	var ss [3]strings.Builder
	stage := none
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLines)
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, ShaderMarker) {
			switch {
			case strings.Contains(line, "vertex"):
				stage = vertex
			case strings.Contains(line, "fragment"):
				stage = fragment
			}
			continue
		}
		if stage == none {
			continue
		}
		ss[stage].WriteString(line)
		ss[stage].WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return ShaderSources{}, err
	}
	return ShaderSources{Vertex: ss[vertex].String(), Fragment: ss[fragment].String()}, nil
}

// scanLines is [bufio.ScanLines] without the removal of a trailing \r,
// so that lines are kept byte for byte.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ParseShaderFile reads the shader file at path and splits it
// into its stages using [ParseShader].
func ParseShaderFile(path string) (ShaderSources, error) {
	f, err := os.Open(path)
	if err != nil {
		return ShaderSources{}, err
	}
	defer f.Close()
	src, err := ParseShader(f)
	if err != nil {
		return ShaderSources{}, fmt.Errorf("reading shader %q: %w", path, err)
	}
	return src, nil
}

// Shader owns a linked GPU shader program, built from a vertex and
// a fragment stage, together with a cache of its uniform locations.
type Shader struct {
	ctx    *Context
	handle driver.Program
	path   string

	// uniforms caches the locations that have been looked up.
	uniforms map[string]driver.Uniform
}

// LoadShader reads the combined shader source file at path and builds
// a shader program from it. See [ParseShader] for the file format.
func LoadShader(ctx *Context, path string) (*Shader, error) {
	src, err := ParseShaderFile(path)
	if err != nil {
		return nil, err
	}
	sh, err := NewShader(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", path, err)
	}
	sh.path = path
	return sh, nil
}

// NewShader compiles both stages of src and links them into a program.
// If a stage fails to compile or the program fails to link, the error
// wraps [ErrCompile] or [ErrLink] with the driver's diagnostics, and no
// GPU objects are left behind.
func NewShader(ctx *Context, src ShaderSources) (*Shader, error) {
	prog, err := createProgram(ctx, src)
	if err != nil {
		return nil, err
	}
	return &Shader{ctx: ctx, handle: prog, uniforms: make(map[string]driver.Uniform)}, nil
}

// compileShader compiles one stage. On failure the shader object
// is deleted and a zero handle is returned with the compiler log.
func compileShader(ctx *Context, typ ShaderTypes, src string) (driver.Shader, error) {
	fn := ctx.fn
	id := call1(ctx, "CreateShader", func() driver.Shader { return fn.CreateShader(typ.GLType()) })
	ctx.call("ShaderSource", func() { fn.ShaderSource(id, src) })
	ctx.call("CompileShader", func() { fn.CompileShader(id) })

	status := call1(ctx, "GetShaderi(COMPILE_STATUS)", func() int { return fn.GetShaderi(id, driver.COMPILE_STATUS) })
	if status == driver.FALSE {
		msg := call1(ctx, "GetShaderInfoLog", func() string { return fn.GetShaderInfoLog(id) })
		msg = strings.TrimSpace(msg)
		slog.Error("failed to compile shader", "stage", typ.String(), "log", msg)
		ctx.call("DeleteShader", func() { fn.DeleteShader(id) })
		return 0, fmt.Errorf("%w: %s stage: %s", ErrCompile, typ, msg)
	}
	return id, nil
}

// createProgram compiles and links src. Stages are compiled before
// the program is created, so a failed stage is never attached.
func createProgram(ctx *Context, src ShaderSources) (driver.Program, error) {
	fn := ctx.fn
	vs, err := compileShader(ctx, VertexShader, src.Vertex)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(ctx, FragmentShader, src.Fragment)
	if err != nil {
		ctx.call("DeleteShader", func() { fn.DeleteShader(vs) })
		return 0, err
	}

	prog := call1(ctx, "CreateProgram", fn.CreateProgram)
	ctx.call("AttachShader(vertex)", func() { fn.AttachShader(prog, vs) })
	ctx.call("AttachShader(fragment)", func() { fn.AttachShader(prog, fs) })
	ctx.call("LinkProgram", func() { fn.LinkProgram(prog) })
	ctx.call("ValidateProgram", func() { fn.ValidateProgram(prog) })

	for _, s := range []driver.Shader{vs, fs} {
		ctx.call("DetachShader", func() { fn.DetachShader(prog, s) })
		ctx.call("DeleteShader", func() { fn.DeleteShader(s) })
	}

	status := call1(ctx, "GetProgrami(LINK_STATUS)", func() int { return fn.GetProgrami(prog, driver.LINK_STATUS) })
	if status == driver.FALSE {
		msg := call1(ctx, "GetProgramInfoLog", func() string { return fn.GetProgramInfoLog(prog) })
		msg = strings.TrimSpace(msg)
		slog.Error("failed to link shader program", "log", msg)
		ctx.call("DeleteProgram", func() { fn.DeleteProgram(prog) })
		return 0, fmt.Errorf("%w: %s", ErrLink, msg)
	}
	valid := call1(ctx, "GetProgrami(VALIDATE_STATUS)", func() int { return fn.GetProgrami(prog, driver.VALIDATE_STATUS) })
	if valid == driver.FALSE {
		slog.Debug("shader program did not validate against the current state", "program", prog)
	}
	return prog, nil
}

// Handle returns the GPU handle of the program, or 0 once deleted.
func (sh *Shader) Handle() driver.Program {
	return sh.handle
}

// Path returns the file the shader was loaded from, if any.
func (sh *Shader) Path() string {
	return sh.path
}

// Bind makes this the program used by draw calls and uniform writes.
func (sh *Shader) Bind() {
	sh.ctx.useProgram(sh.handle)
}

// Unbind clears the program in use.
func (sh *Shader) Unbind() {
	sh.ctx.useProgram(0)
}

// Delete releases the GPU program and forgets the cached uniform
// locations. Calling it more than once has no effect, and the shader
// must not be used afterwards.
func (sh *Shader) Delete() {
	if sh.handle == 0 {
		return
	}
	sh.ctx.deleteProgram(sh.handle)
	sh.handle = 0
	sh.uniforms = nil
}

// Reload rebuilds the program from the file it was loaded from.
// On success the old program is deleted and replaced, keeping it in use
// if it was; on failure the shader keeps its current program.
func (sh *Shader) Reload() error {
	if sh.path == "" {
		return errors.New("renderer.Shader.Reload: shader was not loaded from a file")
	}
	src, err := ParseShaderFile(sh.path)
	if err != nil {
		return err
	}
	prog, err := createProgram(sh.ctx, src)
	if err != nil {
		return fmt.Errorf("shader %q: %w", sh.path, err)
	}
	active := sh.handle != 0 && sh.ctx.ActiveProgram() == sh.handle
	sh.Delete()
	sh.handle = prog
	sh.uniforms = make(map[string]driver.Uniform)
	if active {
		sh.Bind()
	}
	return nil
}

// UniformLocation returns the location of the named uniform, asking the
// driver only the first time each name is used. It panics with a
// [CallError] if the name is not an active uniform of the program:
// uniforms that are declared but not used are removed by the compiler.
func (sh *Shader) UniformLocation(name string) driver.Uniform {
	if loc, ok := sh.uniforms[name]; ok {
		return loc
	}
	loc := call1(sh.ctx, "GetUniformLocation", func() driver.Uniform {
		return sh.ctx.fn.GetUniformLocation(sh.handle, name)
	})
	if !loc.Valid() {
		sh.ctx.fatal("GetUniformLocation("+name+")", "uniform is not an active uniform of the program", 1)
	}
	sh.uniforms[name] = loc
	return loc
}

// ensureBound makes sure this program is in use before a uniform write.
func (sh *Shader) ensureBound() {
	if sh.ctx.ActiveProgram() != sh.handle {
		sh.Bind()
	}
}

// SetUniform1i sets the named int (or sampler) uniform.
func (sh *Shader) SetUniform1i(name string, v int32) {
	loc := sh.UniformLocation(name)
	sh.ensureBound()
	sh.ctx.call("Uniform1i", func() { sh.ctx.fn.Uniform1i(loc, v) })
}

// SetUniform1f sets the named float uniform.
func (sh *Shader) SetUniform1f(name string, v float32) {
	loc := sh.UniformLocation(name)
	sh.ensureBound()
	sh.ctx.call("Uniform1f", func() { sh.ctx.fn.Uniform1f(loc, v) })
}

// SetUniform4f sets the named vec4 uniform.
func (sh *Shader) SetUniform4f(name string, v0, v1, v2, v3 float32) {
	loc := sh.UniformLocation(name)
	sh.ensureBound()
	sh.ctx.call("Uniform4f", func() { sh.ctx.fn.Uniform4f(loc, v0, v1, v2, v3) })
}

// SetUniformMat4f sets the named mat4 uniform. mgl32 matrices are
// column major, which is what OpenGL expects without transposing.
func (sh *Shader) SetUniformMat4f(name string, m mgl32.Mat4) {
	loc := sh.UniformLocation(name)
	sh.ensureBound()
	sh.ctx.call("UniformMatrix4fv", func() { sh.ctx.fn.UniformMatrix4fv(loc, false, m[:]) })
}
