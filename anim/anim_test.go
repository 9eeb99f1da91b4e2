// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingPong(t *testing.T) {
	p := NewPingPong(0, -0.05, 1, 0)
	assert.Equal(t, float32(0.05), p.Step)
	assert.Equal(t, float32(0), p.Min)
	assert.Equal(t, float32(1), p.Max)

	assert.InDelta(t, 0.05, p.Next(), 1e-6)
	assert.InDelta(t, 0.10, p.Next(), 1e-6)

	var turns int
	prev := p.Value
	rising := true
	for range 200 {
		v := p.Next()
		assert.GreaterOrEqual(t, v, p.Min-2*0.05)
		assert.LessOrEqual(t, v, p.Max+2*0.05)
		if (v > prev) != rising {
			rising = !rising
			turns++
		}
		prev = v
		assert.GreaterOrEqual(t, p.Clamped(), p.Min)
		assert.LessOrEqual(t, p.Clamped(), p.Max)
	}
	assert.GreaterOrEqual(t, turns, 8)
}

func TestPingPongTurnsPastBound(t *testing.T) {
	p := &PingPong{Value: 1.02, Step: 0.05, Min: 0, Max: 1}
	assert.InDelta(t, 0.97, p.Next(), 1e-6)
	assert.InDelta(t, 0.92, p.Next(), 1e-6)

	p = &PingPong{Value: 1, Step: 0.05, Min: 0, Max: 1}
	assert.InDelta(t, 1.05, p.Next(), 1e-6, "reaching a bound exactly does not turn")
	assert.InDelta(t, 1.0, p.Next(), 1e-6)
	assert.LessOrEqual(t, p.Clamped(), float32(1))
}
