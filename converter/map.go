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

// NewMap returns the converter for map type t. Entries are written as a
// 4-byte count, then each key immediately followed by its value.
func NewMap(t reflect.Type, key, value apis.Converter) apis.Converter {
	return &mapConverter{t: t, key: key, value: value}
}

type mapConverter struct {
	t     reflect.Type
	key   apis.Converter
	value apis.Converter
}

func (c *mapConverter) Write(s *wire.Sink, v reflect.Value) error {
	if !v.IsValid() || v.Kind() != reflect.Map {
		return mismatch(v, c.t)
	}
	if err := s.WriteLen(v.Len()); err != nil {
		return err
	}
	it := v.MapRange()
	for it.Next() {
		if err := c.key.Write(s, it.Key()); err != nil {
			return err
		}
		if err := c.value.Write(s, it.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (c *mapConverter) Read(s *wire.Source) (reflect.Value, error) {
	n, err := s.ReadLen()
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeMapWithSize(c.t, min(n, preallocLimit))
	for i := 0; i < n; i++ {
		k, err := c.key.Read(s)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := c.value.Read(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(k, v)
	}
	return out, nil
}

func (c *mapConverter) String() string {
	return fmt.Sprintf("MapConverter(%v=%v)", c.key, c.value)
}
