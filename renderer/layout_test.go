// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutStrideAndOffsets(t *testing.T) {
	tests := []struct {
		name    string
		push    func(l *VertexBufferLayout)
		stride  int
		offsets []int
	}{
		{"empty", func(l *VertexBufferLayout) {}, 0, nil},
		{"position2", func(l *VertexBufferLayout) { l.PushFloat32(2) }, 8, []int{0}},
		{"position3-color4-uv2", func(l *VertexBufferLayout) {
			l.PushFloat32(3)
			l.PushUint8(4)
			l.PushFloat32(2)
		}, 24, []int{0, 12, 16}},
		{"ids", func(l *VertexBufferLayout) {
			l.PushUint32(1)
			Push[float32](l, 4)
			Push[uint8](l, 3)
		}, 23, []int{0, 4, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l VertexBufferLayout
			tt.push(&l)
			assert.Equal(t, tt.stride, l.Stride())
			assert.Equal(t, len(tt.offsets), l.Len())

			sum := 0
			for i, el := range l.Elements() {
				assert.Equal(t, tt.offsets[i], l.Offset(i))
				assert.Equal(t, sum, l.Offset(i))
				sum += el.Count * TypeSizes[el.Type]
			}
			assert.Equal(t, sum, l.Stride())
			assert.Equal(t, l.Stride(), l.Offset(l.Len()))
		})
	}
}

func TestLayoutNormalization(t *testing.T) {
	var l VertexBufferLayout
	l.PushFloat32(2)
	l.PushUint32(1)
	l.PushUint8(4)
	els := l.Elements()
	assert.Equal(t, []VertexBufferElement{
		{Type: Float32, Count: 2},
		{Type: Uint32, Count: 1},
		{Type: Uint8, Count: 4, Normalized: true},
	}, els)

	els[0].Count = 100
	assert.Equal(t, 2, l.Elements()[0].Count, "Elements must return a copy")
}

func TestLayoutPushInvalid(t *testing.T) {
	var l VertexBufferLayout
	assert.Panics(t, func() { l.PushFloat32(0) })
	assert.Panics(t, func() { l.PushElement(VertexBufferElement{Type: UndefinedType, Count: 1}) })
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Stride())
}

func TestTypes(t *testing.T) {
	assert.Equal(t, Float32, TypeOf[float32]())
	assert.Equal(t, Uint32, TypeOf[uint32]())
	assert.Equal(t, Uint8, TypeOf[uint8]())
	assert.Equal(t, 4, Float32.Bytes())
	assert.Equal(t, 1, Uint8.Bytes())
	assert.Equal(t, "Uint32", Uint32.String())
	assert.Equal(t, "Types(9)", Types(9).String())
}
