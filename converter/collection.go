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

// preallocLimit caps capacity hints taken from the wire, so a corrupt count
// cannot force a huge allocation before the stream runs dry.
const preallocLimit = 1024

// container abstracts the target collection of a collectionConverter.
type container struct {
	kind string
	// alloc returns an empty container sized for about n elements.
	alloc func(t reflect.Type, n int) reflect.Value
	// add appends e and returns the (possibly new) container.
	add func(c, e reflect.Value) reflect.Value
	// each visits the elements in iteration order.
	each func(c reflect.Value, fn func(e reflect.Value) error) error
}

var listContainer = container{
	kind: "list",
	alloc: func(t reflect.Type, n int) reflect.Value {
		return reflect.MakeSlice(t, 0, min(n, preallocLimit))
	},
	add: func(c, e reflect.Value) reflect.Value {
		return reflect.Append(c, e)
	},
	each: func(c reflect.Value, fn func(reflect.Value) error) error {
		for i := 0; i < c.Len(); i++ {
			if err := fn(c.Index(i)); err != nil {
				return err
			}
		}
		return nil
	},
}

var setContainer = container{
	kind: "set",
	alloc: func(t reflect.Type, n int) reflect.Value {
		return reflect.MakeMapWithSize(t, min(n, preallocLimit))
	},
	add: func(c, e reflect.Value) reflect.Value {
		c.SetMapIndex(e, reflect.Zero(c.Type().Elem()))
		return c
	},
	each: func(c reflect.Value, fn func(reflect.Value) error) error {
		it := c.MapRange()
		for it.Next() {
			if err := fn(it.Key()); err != nil {
				return err
			}
		}
		return nil
	},
}

// NewList returns the converter for slice type t with element converter elem.
// Reading always yields a non-nil slice.
func NewList(t reflect.Type, elem apis.Converter) apis.Converter {
	return &collectionConverter{t: t, elem: elem, c: listContainer}
}

// NewSet returns the converter for a set type t, a map whose element type is
// an empty struct (map[E]struct{}). Only the keys go on the wire.
func NewSet(t reflect.Type, elem apis.Converter) apis.Converter {
	return &collectionConverter{t: t, elem: elem, c: setContainer}
}

// IsSet reports whether t is shaped as a set: a map with an empty struct element.
func IsSet(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Map {
		return false
	}
	e := t.Elem()
	return e.Kind() == reflect.Struct && e.NumField() == 0
}

// collectionConverter writes a 4-byte count followed by each element.
type collectionConverter struct {
	t    reflect.Type
	elem apis.Converter
	c    container
}

func (c *collectionConverter) Write(s *wire.Sink, v reflect.Value) error {
	if !v.IsValid() || v.Kind() != c.t.Kind() {
		return mismatch(v, c.t)
	}
	if err := s.WriteLen(v.Len()); err != nil {
		return err
	}
	return c.c.each(v, func(e reflect.Value) error {
		return c.elem.Write(s, e)
	})
}

func (c *collectionConverter) Read(s *wire.Source) (reflect.Value, error) {
	n, err := s.ReadLen()
	if err != nil {
		return reflect.Value{}, err
	}
	out := c.c.alloc(c.t, n)
	for i := 0; i < n; i++ {
		e, err := c.elem.Read(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out = c.c.add(out, e)
	}
	return out, nil
}

func (c *collectionConverter) String() string {
	return fmt.Sprintf("CollectionConverter(%s, %v)", c.c.kind, c.elem)
}
