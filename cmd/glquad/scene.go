// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"glquad.dev/glquad/anim"
	"glquad.dev/glquad/config"
	"glquad.dev/glquad/renderer"
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

// scene is the quad with everything needed to draw it.
type scene struct {
	cfg *config.Config

	renderer *renderer.Renderer
	va       *renderer.VertexArray
	vb       *renderer.VertexBuffer
	ib       *renderer.IndexBuffer
	shader   *renderer.Shader

	// red animates the red channel of the color.
	red *anim.PingPong

	// mvp is the projection that keeps the quad square.
	mvp mgl32.Mat4
}

// newScene uploads the quad and loads the shader named by cfg.
// Everything is left unbound.
func newScene(ctx *renderer.Context, cfg *config.Config) (*scene, error) {
	sc := &scene{
		cfg:      cfg,
		renderer: renderer.NewRenderer(ctx),
		red:      anim.NewPingPong(0, cfg.Color.Increment, 0, 1),
		mvp:      mgl32.Ident4(),
	}
	sc.va = renderer.NewVertexArray(ctx)
	sc.vb = renderer.NewVertexBufferFrom(ctx, quadPositions)
	layout := &renderer.VertexBufferLayout{}
	layout.PushFloat32(2)
	sc.va.AddBuffer(sc.vb, layout)
	sc.ib = renderer.NewIndexBuffer(ctx, quadIndices)

	sh, err := renderer.LoadShader(ctx, cfg.Shader)
	if err != nil {
		sc.delete()
		return nil, err
	}
	sc.shader = sh
	sc.setUniforms()

	sc.va.Unbind()
	sc.vb.Unbind()
	sc.ib.Unbind()
	sc.shader.Unbind()
	return sc, nil
}

// setUniforms sets the uniforms of the shader for the current frame.
func (sc *scene) setUniforms() {
	c := sc.cfg.Color
	sc.shader.SetUniform4f("u_Color", sc.red.Clamped(), c.Green, c.Blue, c.Alpha)
	sc.shader.SetUniformMat4f("u_MVP", sc.mvp)
}

// resize updates the viewport and projection to the framebuffer size.
func (sc *scene) resize(width, height int) {
	sc.renderer.SetViewport(width, height)
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	if aspect >= 1 {
		sc.mvp = mgl32.Ortho2D(-aspect, aspect, -1, 1)
	} else {
		sc.mvp = mgl32.Ortho2D(-1, 1, -1/aspect, 1/aspect)
	}
}

// frame draws one frame and advances the color animation.
func (sc *scene) frame() {
	sc.renderer.Clear()
	sc.setUniforms()
	sc.renderer.Draw(sc.va, sc.ib, sc.shader)
	sc.shader.Unbind()
	sc.ib.Unbind()
	sc.va.Unbind()
	sc.red.Next()
}

// reload rebuilds the shader from its file, keeping the
// current program if the new one does not build.
func (sc *scene) reload() {
	if err := sc.shader.Reload(); err != nil {
		slog.Error("failed to reload shader, keeping the current one", "err", err)
		return
	}
	slog.Info("reloaded shader", "file", sc.shader.Path())
}

// delete releases all GPU resources of the scene.
func (sc *scene) delete() {
	if sc.shader != nil {
		sc.shader.Delete()
	}
	sc.ib.Delete()
	sc.vb.Delete()
	sc.va.Delete()
}
