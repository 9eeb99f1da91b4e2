// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false; homedir.Reset() })
	return home
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "OpenGL", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.True(t, cfg.Resizable)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "res/shaders/Basic.shader", cfg.Shader)
	assert.Equal(t, Color{Increment: 0.05, Green: 0.3, Blue: 0.8, Alpha: 1}, cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestSetFromDefaultsErrors(t *testing.T) {
	assert.Error(t, SetFromDefaults(nil))
	assert.Error(t, SetFromDefaults(Config{}))

	type bad struct {
		N int     `default:"many"`
		S []int   `default:"1"`
		F float64 `default:"1.5"`
	}
	b := &bad{}
	err := SetFromDefaults(b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field N")
	assert.Contains(t, err.Error(), "field S")
	assert.Equal(t, 1.5, b.F)
}

func TestOpenTOML(t *testing.T) {
	home := setHome(t)
	cfg := New()
	require.NoError(t, Open(cfg, "testdata/glquad.toml"))
	assert.Equal(t, "Quad", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height, "unset values keep their defaults")
	assert.False(t, cfg.VSync)
	assert.Equal(t, filepath.Join(home, "shaders", "Pulse.shader"), cfg.Shader)
	assert.Equal(t, Color{Increment: 0.01, Green: 0.3, Blue: 0.5, Alpha: 1}, cfg.Color)
}

func TestOpenYAML(t *testing.T) {
	cfg := New()
	require.NoError(t, Open(cfg, "testdata/glquad.yaml"))
	assert.Equal(t, "Quad", cfg.Title)
	assert.Equal(t, 768, cfg.Height)
	assert.True(t, cfg.Watch)
	assert.Equal(t, float32(0.9), cfg.Color.Green)
	assert.Equal(t, float32(0.05), cfg.Color.Increment)
}

func TestOpenErrors(t *testing.T) {
	cfg := New()
	assert.ErrorContains(t, Open(cfg, "testdata/glquad.json"), "unsupported config file type")
	assert.Error(t, Open(cfg, "testdata/missing.toml"))
	assert.Error(t, Open(cfg, "testdata/unknown.toml"), "unknown keys are rejected")
}

func TestSave(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "glquad"+ext)
			cfg := New()
			cfg.Title = "Saved"
			cfg.Color.Increment = 0.25
			require.NoError(t, Save(cfg, file))

			got := &Config{}
			require.NoError(t, Open(got, file))
			assert.Equal(t, cfg, got)
		})
	}
	assert.Error(t, Save(New(), filepath.Join(t.TempDir(), "glquad.ini")))
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Width = 0
	assert.Error(t, cfg.Validate())
	cfg = New()
	cfg.Shader = ""
	assert.Error(t, cfg.Validate())
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := New()
	fs := pflag.NewFlagSet("glquad", pflag.ContinueOnError)
	AddFlags(fs, cfg)
	require.NoError(t, fs.Parse([]string{"--width", "640", "--shader", "~/Flag.shader", "--increment", "0.1"}))
	home := setHome(t)

	require.NoError(t, Load(fs, cfg, "testdata/glquad.toml"))
	assert.Equal(t, 640, cfg.Width, "flags override the file")
	assert.Equal(t, "Quad", cfg.Title, "the file overrides the defaults")
	assert.False(t, cfg.VSync)
	assert.Equal(t, filepath.Join(home, "Flag.shader"), cfg.Shader)
	assert.Equal(t, float32(0.1), cfg.Color.Increment)
	assert.Equal(t, float32(0.5), cfg.Color.Blue)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg := New()
	fs := pflag.NewFlagSet("glquad", pflag.ContinueOnError)
	AddFlags(fs, cfg)
	require.NoError(t, fs.Parse([]string{"--title", "Flag"}))
	require.NoError(t, Load(fs, cfg, ""))
	assert.Equal(t, "Flag", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
}
