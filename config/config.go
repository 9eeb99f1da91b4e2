// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the glquad program,
// which can be read from TOML or YAML files and overridden by
// command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the glquad program.
type Config struct {

	// Title is the title of the window.
	Title string `default:"OpenGL" toml:"title" yaml:"title"`

	// Width is the width of the window in screen coordinates.
	Width int `default:"800" toml:"width" yaml:"width"`

	// Height is the height of the window in screen coordinates.
	Height int `default:"600" toml:"height" yaml:"height"`

	// VSync is whether to wait for the vertical refresh on every frame.
	VSync bool `default:"true" toml:"vsync" yaml:"vsync"`

	// Resizable is whether the window can be resized.
	Resizable bool `default:"true" toml:"resizable" yaml:"resizable"`

	// Shader is the combined shader source file to draw with.
	Shader string `default:"res/shaders/Basic.shader" toml:"shader" yaml:"shader"`

	// Watch is whether to rebuild the shader when its file changes.
	Watch bool `toml:"watch" yaml:"watch"`

	// Color holds the animation of the quad color.
	Color Color `toml:"color" yaml:"color"`
}

// Color is the animation of the red channel of the quad color,
// which moves between 0 and 1 by Increment every frame.
type Color struct {

	// Increment is how much the red channel changes per frame.
	Increment float32 `default:"0.05" toml:"increment" yaml:"increment"`

	// Green, Blue and Alpha are the fixed channels of the color.
	Green float32 `default:"0.3" toml:"green" yaml:"green"`
	Blue  float32 `default:"0.8" toml:"blue" yaml:"blue"`
	Alpha float32 `default:"1" toml:"alpha" yaml:"alpha"`
}

// New returns a new config with the default values.
func New() *Config {
	cfg := &Config{}
	SetFromDefaults(cfg)
	return cfg
}

// Validate returns an error if the config cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	case c.Shader == "":
		return fmt.Errorf("config: no shader file")
	}
	return nil
}

// format returns the encoding of a config file, from its extension.
func format(file string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("config: unsupported config file type %q for %q", ext, file)
	}
}

// Open reads the config file into cfg, replacing the values it sets.
// The format is chosen by the file extension: .toml or .yaml/.yml.
// A leading ~ in the file name and in the Shader path is expanded to
// the home directory.
func Open(cfg *Config, file string) error {
	file, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	fm, err := format(file)
	if err != nil {
		return err
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	switch fm {
	case "toml":
		err = toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg)
	case "yaml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: reading %q: %w", file, err)
	}
	return cfg.ExpandPaths()
}

// Save writes cfg to the given file, in the format given by its extension.
func Save(cfg *Config, file string) error {
	file, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	fm, err := format(file)
	if err != nil {
		return err
	}
	var b []byte
	switch fm {
	case "toml":
		b, err = toml.Marshal(cfg)
	case "yaml":
		b, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0o666)
}

// ExpandPaths expands a leading ~ in the file paths of the config.
func (c *Config) ExpandPaths() error {
	sh, err := homedir.Expand(c.Shader)
	if err != nil {
		return err
	}
	c.Shader = sh
	return nil
}

// AddFlags adds the command line flags for the fields of cfg to fs,
// using the current values of cfg as the defaults.
func AddFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Title, "title", cfg.Title, "the title of the window")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "the width of the window")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "the height of the window")
	fs.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "wait for the vertical refresh on every frame")
	fs.BoolVar(&cfg.Resizable, "resizable", cfg.Resizable, "allow the window to be resized")
	fs.StringVar(&cfg.Shader, "shader", cfg.Shader, "the combined shader source file")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "rebuild the shader when its file changes")
	fs.Float32Var(&cfg.Color.Increment, "increment", cfg.Color.Increment, "how much the red channel changes per frame")
}

// Load reads the config file into cfg, if file is not empty, and then
// applies the flags of fs that were set on the command line again,
// so that they override the file. fs must have been parsed, with its
// flags added by [AddFlags].
func Load(fs *pflag.FlagSet, cfg *Config, file string) error {
	if file == "" {
		return cfg.ExpandPaths()
	}
	set := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = f.Value.String()
	})
	if err := Open(cfg, file); err != nil {
		return err
	}
	for name, value := range set {
		if err := fs.Set(name, value); err != nil {
			return err
		}
	}
	return cfg.ExpandPaths()
}
