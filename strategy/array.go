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

package strategy

import (
	"reflect"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/converter"
)

// NewArray creates the built-in factory for fixed-size arrays.
func NewArray() apis.Factory {
	return &array{}
}

type array struct{}

// Ensure array implements apis.Factory.
var _ apis.Factory = (*array)(nil)

// Create implements apis.Factory.
func (*array) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	if t.Go == nil || t.Nullable || t.Kind != reflect.Array {
		return nil, nil
	}
	elem, err := r.Resolve(t.Go.Elem())
	if err != nil {
		return nil, err
	}
	return converter.NewArray(t.Go, elem), nil
}
