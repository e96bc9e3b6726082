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

// NewCollection creates the built-in factory for lists (slices) and sets
// (maps with an empty struct element). The element converter is resolved
// through r, so elements may be nullable or refer back to the collection.
func NewCollection() apis.Factory {
	return &collection{}
}

type collection struct{}

// Ensure collection implements apis.Factory.
var _ apis.Factory = (*collection)(nil)

// Create implements apis.Factory.
func (*collection) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	if t.Go == nil || t.Nullable {
		return nil, nil
	}
	switch {
	case t.Kind == reflect.Slice:
		elem, err := r.Resolve(t.Go.Elem())
		if err != nil {
			return nil, err
		}
		return converter.NewList(t.Go, elem), nil
	case converter.IsSet(t.Go):
		elem, err := r.Resolve(t.Go.Key())
		if err != nil {
			return nil, err
		}
		return converter.NewSet(t.Go, elem), nil
	}
	return nil, nil
}
