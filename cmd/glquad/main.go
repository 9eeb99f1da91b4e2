// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command glquad opens a window and draws a quad with a shader
// loaded from a combined shader source file, animating its color.
//
// Usage:
//
//	glquad [flags]
//	glquad config <file>
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}
