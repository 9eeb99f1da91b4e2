// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"glquad.dev/glquad/base/errors"
	"glquad.dev/glquad/config"
	"glquad.dev/glquad/driver/gldriver"
	"glquad.dev/glquad/reload"
	"glquad.dev/glquad/renderer"
	"glquad.dev/glquad/window"
)

// run opens the window and draws frames until it is closed.
// It returns -1 if the window, the OpenGL context or the
// shader could not be set up.
func run(cfg *config.Config) int {
	if err := window.Init(); err != nil {
		slog.Error(err.Error())
		return -1
	}
	defer window.Terminate()

	win, err := window.New(window.Options{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		VSync:     cfg.VSync,
		Resizable: cfg.Resizable,
	})
	if err != nil {
		slog.Error(err.Error())
		return -1
	}
	defer win.Destroy()
	win.CloseOnEscape()

	fn, err := gldriver.New()
	if err != nil {
		slog.Error(err.Error())
		return -1
	}
	ctx := renderer.NewContext(fn)
	fmt.Println(ctx.Version())

	sc, err := newScene(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up the scene", "err", err)
		return -1
	}
	defer sc.delete()
	sc.resize(win.Size())
	win.SetResizeCallback(sc.resize)

	var watcher *reload.Watcher
	if cfg.Watch {
		watcher = errors.Log1(reload.New(cfg.Shader, 0))
		if watcher != nil {
			defer watcher.Close()
		}
	}

	for !win.ShouldClose() {
		sc.frame()
		win.SwapBuffers()
		win.PollEvents()
		if watcher != nil && watcher.Poll() {
			sc.reload()
		}
	}
	return 0
}
