// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestBoolHint(t *testing.T) {
	assert.Equal(t, glfw.True, boolHint(true))
	assert.Equal(t, glfw.False, boolHint(false))
}

func TestDestroyNil(t *testing.T) {
	w := &Window{}
	assert.NotPanics(t, w.Destroy)
}
