// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBase = New("base error")

func returnsErr() (int, error) {
	return 1, fmt.Errorf("wrapped: %w", errBase)
}

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := Log(errBase)
	assert.Equal(t, errBase, err)

	v := Log1(returnsErr())
	assert.Equal(t, 1, v)

	var p *int
	assert.Nil(t, Log1(p, errBase), "the value is passed through on error")
}

func TestIs(t *testing.T) {
	_, err := returnsErr()
	assert.True(t, Is(err, errBase))
}

func callerInfoHelper() string {
	return CallerInfo()
}

func TestCallerInfo(t *testing.T) {
	ci := callerInfoHelper()
	assert.True(t, strings.Contains(ci, "TestCallerInfo"), ci)
	assert.True(t, strings.Contains(ci, "errors_test.go"), ci)
}
