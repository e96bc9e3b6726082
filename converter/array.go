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

// NewArray returns the converter for fixed-size array type t.
// The length is written even though it is part of the type; on read a
// different length is a decode error.
func NewArray(t reflect.Type, elem apis.Converter) apis.Converter {
	return &arrayConverter{t: t, elem: elem}
}

type arrayConverter struct {
	t    reflect.Type
	elem apis.Converter
}

func (c *arrayConverter) Write(s *wire.Sink, v reflect.Value) error {
	if !v.IsValid() || v.Kind() != reflect.Array || v.Len() != c.t.Len() {
		return mismatch(v, c.t)
	}
	n := v.Len()
	if err := s.WriteLen(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := c.elem.Write(s, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *arrayConverter) Read(s *wire.Source) (reflect.Value, error) {
	n, err := s.ReadLen()
	if err != nil {
		return reflect.Value{}, err
	}
	if n != c.t.Len() {
		return reflect.Value{}, wire.Malformed("snap(converter): array length %d, want %d for %v", n, c.t.Len(), c.t)
	}
	buf := make([]reflect.Value, 0, n)
	for i := 0; i < n; i++ {
		e, err := c.elem.Read(s)
		if err != nil {
			return reflect.Value{}, err
		}
		buf = append(buf, e)
	}
	out := reflect.New(c.t).Elem()
	for i, e := range buf {
		out.Index(i).Set(e)
	}
	return out, nil
}

func (c *arrayConverter) String() string {
	return fmt.Sprintf("%v.array()", c.elem)
}
