/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package converter

import (
	"fmt"
	"reflect"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/wire"
)

// Erase adapts a statically typed converter to the reflect-based form the
// registry stores. Values of any other type are rejected with ErrTypeMismatch.
func Erase[T any](tc apis.TypedConverter[T]) apis.Converter {
	if t, ok := tc.(*typed[T]); ok {
		return t.c
	}
	return &erased[T]{tc: tc, t: reflect.TypeFor[T]()}
}

// Typed adapts an erased converter for T to the typed form. Every value
// crossing the adapter is checked against T.
func Typed[T any](c apis.Converter) apis.TypedConverter[T] {
	if e, ok := c.(*erased[T]); ok {
		return e.tc
	}
	return &typed[T]{c: c, t: reflect.TypeFor[T]()}
}

// Resolve resolves the converter for T through r and returns it typed.
func Resolve[T any](r apis.Resolver) (apis.TypedConverter[T], error) {
	c, err := r.Resolve(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return Typed[T](c), nil
}

type erased[T any] struct {
	tc apis.TypedConverter[T]
	t  reflect.Type
}

func (c *erased[T]) Write(s *wire.Sink, v reflect.Value) error {
	x, err := valueOf[T](v, c.t)
	if err != nil {
		return err
	}
	return c.tc.Write(s, x)
}

func (c *erased[T]) Read(s *wire.Source) (reflect.Value, error) {
	x, err := c.tc.Read(s)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&x).Elem(), nil
}

func (c *erased[T]) String() string {
	return fmt.Sprintf("%v", c.tc)
}

type typed[T any] struct {
	c apis.Converter
	t reflect.Type
}

func (c *typed[T]) Write(s *wire.Sink, v T) error {
	return c.c.Write(s, reflect.ValueOf(&v).Elem())
}

func (c *typed[T]) Read(s *wire.Source) (T, error) {
	var zero T
	v, err := c.c.Read(s)
	if err != nil {
		return zero, err
	}
	return valueOf[T](v, c.t)
}

func (c *typed[T]) String() string {
	return fmt.Sprintf("%v", c.c)
}

// valueOf extracts a T from v after checking that v holds exactly a T.
func valueOf[T any](v reflect.Value, t reflect.Type) (T, error) {
	var zero T
	if !v.IsValid() || v.Type() != t || !v.CanInterface() {
		return zero, mismatch(v, t)
	}
	x, ok := v.Interface().(T)
	if !ok {
		// v is a nil interface value, which is the zero T.
		return zero, nil
	}
	return x, nil
}
