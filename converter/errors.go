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
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTypeMismatch is returned when a value of the wrong type reaches a converter.
	ErrTypeMismatch = errors.New("snap(converter): value type mismatch")
	// ErrUnknownEnumName is returned when a decoded enum name is not a declared constant.
	ErrUnknownEnumName = errors.New("snap(converter): unknown enum name")
	// ErrUnknownEnumValue is returned when writing a value that is not a declared constant.
	ErrUnknownEnumValue = errors.New("snap(converter): unknown enum value")
	// ErrDuplicateEnumName is returned when two enum constants share a wire name.
	ErrDuplicateEnumName = errors.New("snap(converter): duplicate enum name")
	// ErrNotPrimitive is returned by Primitive for types without a built-in encoding.
	ErrNotPrimitive = errors.New("snap(converter): not a primitive type")
)

// mismatch reports a value whose type does not fit want.
func mismatch(got reflect.Value, want reflect.Type) error {
	if !got.IsValid() {
		return errors.Wrapf(ErrTypeMismatch, "got invalid value, want %v", want)
	}
	return errors.Wrapf(ErrTypeMismatch, "got %v, want %v", got.Type(), want)
}
