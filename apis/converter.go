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

	"dirpx.dev/snap/wire"
)

// Converter writes and reads values of exactly one Go type.
//
// # Contract
//
//   - Write receives a value whose type is the converter's type. It writes
//     the value's bytes to the sink and nothing else.
//   - Read consumes exactly the bytes produced by Write and returns a value of
//     the converter's type. Stream failures are returned unchanged (marked
//     wire.ErrStreamFault); no partial value is returned on error.
//   - A Converter is immutable once constructed and MUST be safe for
//     concurrent use by any number of goroutines, each driving its own
//     Sink/Source.
type Converter interface {
	// Write encodes v to s.
	Write(s *wire.Sink, v reflect.Value) error
	// Read decodes one value from s.
	Read(s *wire.Source) (reflect.Value, error)
}

// TypedConverter is the statically typed form of a Converter.
// Generated converters are usually written against this interface and
// adapted with converter.Erase.
type TypedConverter[T any] interface {
	// Write encodes v to s.
	Write(s *wire.Sink, v T) error
	// Read decodes one value from s.
	Read(s *wire.Source) (T, error)
}
