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
)

// Resolver hands out converters for Go types.
// A Registry is a Resolver; factories receive a Resolver bound to the
// resolution in progress so that nested and self-referential lookups
// terminate.
type Resolver interface {
	// Resolve returns the converter for t, or ErrUnsupportedType.
	Resolve(t reflect.Type) (Converter, error)

	// ResolveAfter walks the factory chain starting right after skip.
	// It fails with ErrUnknownFactory if skip is not part of the chain.
	ResolveAfter(skip Factory, t reflect.Type) (Converter, error)
}
