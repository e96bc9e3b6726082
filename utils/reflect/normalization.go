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

package reflect

import (
	"reflect"
	"strings"

	"dirpx.dev/snap/apis"
)

var (
	genericType = reflect.TypeFor[apis.Generic]()
)

// Canonicalize decomposes t into the descriptor the registry caches by.
//
// Decomposition policy:
//   - ptr -> Nullable, and the rest of the descriptor describes Elem()
//   - slice/array -> Args = [Elem]
//   - map[K]V -> Args = [K, V]
//   - named types implementing apis.Generic -> Args = SnapTypeArgs()
//   - Name is "pkgpath.Name" with type parameters stripped, "" when unnamed
//
// Go type identity is already canonical, so Canonicalize is a pure function
// of t: Canonicalize(Canonicalize(t).Go) equals Canonicalize(t).
// A nil t yields the zero descriptor.
func Canonicalize(t reflect.Type) apis.Type {
	if t == nil {
		return apis.Type{}
	}
	d := apis.Type{Go: t}
	raw := t
	if t.Kind() == reflect.Ptr {
		d.Nullable = true
		raw = t.Elem()
	}
	d.Kind = raw.Kind()
	d.Name = RawName(raw)

	switch raw.Kind() {
	case reflect.Slice, reflect.Array:
		d.Args = []reflect.Type{raw.Elem()}
	case reflect.Map:
		d.Args = []reflect.Type{raw.Key(), raw.Elem()}
	default:
		d.Args = TypeArgs(raw)
	}
	return d
}

// RawName returns "pkgpath.Name" for a named type with any generic
// instantiation suffix removed, or "" for unnamed and predeclared types.
func RawName(t reflect.Type) string {
	if t == nil || t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	return t.PkgPath() + "." + stripTypeParams(t.Name())
}

// TypeArgs returns the type arguments reported by t's apis.Generic
// implementation (value or pointer receiver), or nil.
func TypeArgs(t reflect.Type) []reflect.Type {
	if t == nil || t.Name() == "" {
		return nil
	}
	var v reflect.Value
	switch {
	case t.Implements(genericType):
		v = reflect.Zero(t)
	case reflect.PointerTo(t).Implements(genericType):
		v = reflect.New(t)
	default:
		return nil
	}
	g, ok := v.Interface().(apis.Generic)
	if !ok {
		return nil
	}
	args := g.SnapTypeArgs()
	if len(args) == 0 {
		return nil
	}
	return append([]reflect.Type(nil), args...)
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
