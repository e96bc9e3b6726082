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

// NullSafe wraps inner, a converter for E, into a converter for the pointer
// type ptr (*E). A nil pointer is written as a single 0 byte; anything else
// as 1 followed by inner's bytes.
//
// Wrapping a NullSafe converter again (for **E) produces a second tag.
func NullSafe(inner apis.Converter, ptr reflect.Type) apis.Converter {
	return &nullSafe{inner: inner, t: ptr}
}

type nullSafe struct {
	inner apis.Converter
	t     reflect.Type
}

func (c *nullSafe) Write(s *wire.Sink, v reflect.Value) error {
	if !v.IsValid() {
		return s.WritePresence(false)
	}
	if v.Kind() != reflect.Ptr {
		return mismatch(v, c.t)
	}
	if v.IsNil() {
		return s.WritePresence(false)
	}
	if err := s.WritePresence(true); err != nil {
		return err
	}
	return c.inner.Write(s, v.Elem())
}

func (c *nullSafe) Read(s *wire.Source) (reflect.Value, error) {
	present, err := s.ReadPresence()
	if err != nil {
		return reflect.Value{}, err
	}
	if !present {
		return reflect.Zero(c.t), nil
	}
	v, err := c.inner.Read(s)
	if err != nil {
		return reflect.Value{}, err
	}
	p := reflect.New(c.t.Elem())
	p.Elem().Set(v)
	return p, nil
}

func (c *nullSafe) String() string {
	return fmt.Sprintf("%v.nullSafe()", c.inner)
}
