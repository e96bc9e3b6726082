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

package apis

import (
	"reflect"
	"strings"
)

// Type is the canonical descriptor a registry resolves and caches by.
// It is produced by utils/reflect.Canonicalize and is never built by hand.
//
// For a pointer type *E the descriptor is Nullable and Kind, Name and Args
// describe E: a pointer is the "boxed" form of its element.
type Type struct {
	// Go is the exact Go type. It is the cache key.
	Go reflect.Type
	// Kind is the raw shape, after stripping nullability.
	Kind reflect.Kind
	// Name is the raw identity "pkgpath.Name" with type parameters stripped,
	// or "" for unnamed and predeclared types.
	Name string
	// Args are the ordered type arguments: the element of a slice or array,
	// the key and value of a map, or the arguments reported by a Generic type.
	Args []reflect.Type
	// Nullable is true for pointer types.
	Nullable bool
}

// Raw returns the non-nullable type: Go.Elem() for a nullable descriptor, Go otherwise.
func (t Type) Raw() reflect.Type {
	if t.Nullable {
		return t.Go.Elem()
	}
	return t.Go
}

// String renders the descriptor for logs and errors.
func (t Type) String() string {
	if t.Go == nil {
		return "<nil>"
	}
	var sb strings.Builder
	if t.Nullable {
		sb.WriteString("nullable ")
	}
	if t.Name != "" {
		sb.WriteString(t.Name)
	} else {
		sb.WriteString(t.Raw().String())
	}
	if len(t.Args) > 0 && t.Name != "" {
		sb.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
