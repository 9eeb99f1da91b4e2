// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatched(t *testing.T) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Basic.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0o644))
	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, path
}

func TestWriteIsReported(t *testing.T) {
	w, path := newWatched(t)
	assert.False(t, w.Poll())

	require.NoError(t, os.WriteFile(path, []byte("#shader fragment\n"), 0o644))
	require.Eventually(t, w.Poll, 5*time.Second, 10*time.Millisecond)
}

func TestChangesAreDebounced(t *testing.T) {
	w, path := newWatched(t)
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}
	require.Eventually(t, w.Poll, 5*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.False(t, w.Poll(), "a burst of writes is reported once")
}

func TestReplaceIsReported(t *testing.T) {
	w, path := newWatched(t)
	tmp := filepath.Join(filepath.Dir(path), "Basic.shader.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	require.Eventually(t, w.Poll, 5*time.Second, 10*time.Millisecond)
}

func TestOtherFilesIgnored(t *testing.T) {
	w, path := newWatched(t)
	other := filepath.Join(filepath.Dir(path), "other.shader")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.False(t, w.Poll())
}

func TestNewErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "Basic.shader"), 0)
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	w, _ := newWatched(t)
	assert.Equal(t, DefaultDebounce/5, w.Debounce)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
