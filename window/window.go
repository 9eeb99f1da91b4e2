// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window opens a window with an OpenGL 4.1 core profile
// context using GLFW.
//
// GLFW must be used from the main thread, which this package locks to
// the main goroutine when it is initialized. All functions of this
// package must be called from the main goroutine.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// some operating systems require us to be on the main thread
	runtime.LockOSThread()
}

// Options are the options for creating a new [Window].
type Options struct {

	// Title is the title of the window.
	Title string

	// Width and Height are the size of the window in screen coordinates.
	Width, Height int

	// VSync is whether buffer swaps wait for the vertical refresh,
	// which limits the frame rate to the refresh rate of the display.
	VSync bool

	// Resizable is whether the user can resize the window.
	Resizable bool
}

// Init initializes GLFW. It must be called before [New],
// and [Terminate] must be called once all windows are destroyed.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: failed to initialize glfw: %w", err)
	}
	return nil
}

// Terminate destroys all remaining windows and releases GLFW.
func Terminate() {
	glfw.Terminate()
}

// Window is a window with its own OpenGL context.
type Window struct {
	glw *glfw.Window
}

// New creates a window with an OpenGL 4.1 core profile, forward
// compatible context, centers it on the primary monitor, shows it, and
// makes its context current on the calling thread.
func New(opts Options) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.Visible, glfw.False) // needed to position
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	glw, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: failed to create window: %w", err)
	}
	if mon := glfw.GetPrimaryMonitor(); mon != nil {
		if mode := mon.GetVideoMode(); mode != nil {
			mx, my := mon.GetPos()
			glw.SetPos(mx+(mode.Width-opts.Width)/2, my+(mode.Height-opts.Height)/2)
		}
	}
	glw.Show()
	glw.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	slog.Debug("created window", "title", opts.Title, "width", opts.Width, "height", opts.Height, "vsync", opts.VSync)
	return &Window{glw: glw}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// ShouldClose returns whether the user has asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// SwapBuffers presents the frame that has been drawn.
func (w *Window) SwapBuffers() {
	w.glw.SwapBuffers()
}

// PollEvents processes pending window events, calling any callbacks.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Size returns the size of the framebuffer in pixels, which is the
// size to use for the viewport.
func (w *Window) Size() (width, height int) {
	return w.glw.GetFramebufferSize()
}

// SetResizeCallback sets f to be called with the new framebuffer
// size in pixels whenever it changes.
func (w *Window) SetResizeCallback(f func(width, height int)) {
	w.glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

// CloseOnEscape makes pressing the escape key close the window.
func (w *Window) CloseOnEscape() {
	w.glw.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.SetShouldClose(true)
		}
	})
}

// Destroy destroys the window and its context.
func (w *Window) Destroy() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
}
