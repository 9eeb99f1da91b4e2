// Copyright (c) 2024, The Glquad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"reflect"
	"strconv"

	"glquad.dev/glquad/base/errors"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(setFromDefaultTags(cfg))
}

// setFromDefaultTags sets values of fields in the given struct pointer
// based on `default:` field tags, recursing into struct fields without one.
func setFromDefaultTags(obj any) error {
	ov := reflect.ValueOf(obj)
	if ov.Kind() != reflect.Pointer || ov.IsNil() || ov.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("SetFromDefaults: expected a non-nil pointer to a struct, not %T", obj)
	}
	val := ov.Elem()
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		fv := val.Field(i)
		if !f.IsExported() {
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if f.Type.Kind() == reflect.Struct && !ok {
			errs = append(errs, setFromDefaultTags(fv.Addr().Interface()))
			continue
		}
		if !ok {
			continue
		}
		if err := setString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("SetFromDefaults: field %s of %s: %w", f.Name, typ.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// setString sets the value of v from its string representation.
func setString(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(x)
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}
