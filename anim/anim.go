// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim provides simple per-frame value animations.
package anim

import "github.com/chewxy/math32"

// PingPong is a value that moves by Step every frame and reverses
// direction once it has gone past Min or Max. The value may overshoot
// a bound by up to one step before turning back.
type PingPong struct {
	Value float32
	Step  float32
	Min   float32
	Max   float32
}

// NewPingPong returns a PingPong starting at start and moving
// towards max by step each frame.
func NewPingPong(start, step, min, max float32) *PingPong {
	if min > max {
		min, max = max, min
	}
	return &PingPong{Value: start, Step: math32.Abs(step), Min: min, Max: max}
}

// Next advances the value by one frame and returns it.
func (p *PingPong) Next() float32 {
	if p.Value > p.Max || p.Value < p.Min {
		p.Step = -p.Step
	}
	p.Value += p.Step
	return p.Value
}

// Clamped returns the value limited to [Min, Max].
func (p *PingPong) Clamped() float32 {
	return math32.Max(p.Min, math32.Min(p.Max, p.Value))
}
