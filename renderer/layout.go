// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"
	"slices"

	"glquad.dev/glquad/driver"
)

// Types is the list of component types that vertex attributes can have.
type Types int32

const (
	UndefinedType Types = iota
	Float32
	Uint32
	Uint8
)

// TypeSizes gives the size of each component type in bytes.
var TypeSizes = map[Types]int{
	Float32: 4,
	Uint32:  4,
	Uint8:   1,
}

var typeToGL = map[Types]driver.Enum{
	Float32: driver.FLOAT,
	Uint32:  driver.UNSIGNED_INT,
	Uint8:   driver.UNSIGNED_BYTE,
}

var typeNames = map[Types]string{
	UndefinedType: "UndefinedType",
	Float32:       "Float32",
	Uint32:        "Uint32",
	Uint8:         "Uint8",
}

// Bytes returns the number of bytes for this type.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// GLType returns the OpenGL type enum for this type.
func (tp Types) GLType() driver.Enum {
	return typeToGL[tp]
}

func (tp Types) String() string {
	if nm, ok := typeNames[tp]; ok {
		return nm
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// Scalar is the set of Go types that map onto a [Types] value.
type Scalar interface {
	float32 | uint32 | uint8
}

// TypeOf returns the [Types] value for the Go type T.
func TypeOf[T Scalar]() Types {
	var v T
	switch any(v).(type) {
	case float32:
		return Float32
	case uint32:
		return Uint32
	case uint8:
		return Uint8
	}
	return UndefinedType
}

// VertexBufferElement describes one attribute of a vertex:
// Count components of the given Type.
type VertexBufferElement struct {
	Type       Types
	Count      int
	Normalized bool
}

// Size returns the number of bytes the attribute takes in one vertex.
func (el VertexBufferElement) Size() int {
	return el.Count * el.Type.Bytes()
}

// VertexBufferLayout is the ordered list of attributes making up one
// vertex in a vertex buffer. Layouts are append-only: they are built
// with the Push methods and then passed to [VertexArray.AddBuffer].
// The zero value is an empty layout ready to use.
type VertexBufferLayout struct {
	elements []VertexBufferElement
	stride   int
}

// Push appends an attribute of count components of type T to the layout.
// Float and integer components are passed through as is, while byte
// components are normalized to [0, 1], which is how colors are stored.
func Push[T Scalar](l *VertexBufferLayout, count int) {
	tp := TypeOf[T]()
	l.PushElement(VertexBufferElement{Type: tp, Count: count, Normalized: tp == Uint8})
}

// PushFloat32 appends an attribute of count float32 components.
func (l *VertexBufferLayout) PushFloat32(count int) {
	Push[float32](l, count)
}

// PushUint32 appends an attribute of count uint32 components.
func (l *VertexBufferLayout) PushUint32(count int) {
	Push[uint32](l, count)
}

// PushUint8 appends an attribute of count normalized uint8 components.
func (l *VertexBufferLayout) PushUint8(count int) {
	Push[uint8](l, count)
}

// PushElement appends the given attribute to the layout.
// It panics if the element has no components or an unknown type.
func (l *VertexBufferLayout) PushElement(el VertexBufferElement) {
	if el.Count < 1 {
		panic(fmt.Sprintf("renderer.VertexBufferLayout: attribute must have at least one component, got %d", el.Count))
	}
	if el.Type.Bytes() == 0 {
		panic(fmt.Sprintf("renderer.VertexBufferLayout: attribute has unsupported type %v", el.Type))
	}
	l.elements = append(l.elements, el)
	l.stride += el.Size()
}

// Stride returns the size in bytes of one vertex.
func (l *VertexBufferLayout) Stride() int {
	return l.stride
}

// Len returns the number of attributes in the layout.
func (l *VertexBufferLayout) Len() int {
	return len(l.elements)
}

// Elements returns a copy of the attributes, in the order they were pushed.
func (l *VertexBufferLayout) Elements() []VertexBufferElement {
	return slices.Clone(l.elements)
}

// Offset returns the byte offset of attribute i within a vertex,
// which is the total size of the attributes before it.
func (l *VertexBufferLayout) Offset(i int) int {
	off := 0
	for _, el := range l.elements[:i] {
		off += el.Size()
	}
	return off
}
