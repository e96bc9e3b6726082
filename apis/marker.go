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

import "reflect"

// Serializable marks a composite type whose converter is supplied by a
// generator through the generated-converter table.
//
// # Semantics
//
// Serializable is a type-level contract: the method is never called, only
// its presence is checked. It may be declared on the value or the pointer
// receiver:
//
//	type User struct {
//	    ID   int64
//	    Name string
//	}
//
//	func (User) SnapSerializable() {}
//
// When a type carries the marker, the registry MUST obtain its converter from
// the table under generated.Name(t). A missing entry is reported as
// ErrMissingGeneratedConverter and never falls through to other factories.
type Serializable interface {
	SnapSerializable()
}

// Generic is implemented by instantiated generic composite types to report
// their type arguments, which Go reflection does not expose:
//
//	type Box[T any] struct{ V T }
//
//	func (Box[T]) SnapSerializable() {}
//	func (Box[T]) SnapTypeArgs() []reflect.Type { return []reflect.Type{reflect.TypeFor[T]()} }
//
// SnapTypeArgs is called on the zero value and must not depend on instance state.
type Generic interface {
	SnapTypeArgs() []reflect.Type
}

// Enumerated is implemented by named types that behave as enums.
//
// EnumConstants is called once, on the zero value, when the enum converter is
// built. It returns every declared constant in declaration order; each
// constant's wire name is its String() result when the type implements
// fmt.Stringer, and fmt.Sprint of it otherwise.
type Enumerated interface {
	EnumConstants() []any
}
