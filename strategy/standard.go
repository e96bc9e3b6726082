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

	"github.com/cockroachdb/errors"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
)

var (
	serializableType = reflect.TypeFor[apis.Serializable]()
	enumeratedType   = reflect.TypeFor[apis.Enumerated]()
)

// NewStandard creates the first built-in factory. It handles, in order:
//
//   - nullable (pointer) types, by null-wrapping the converter of the element;
//   - Serializable types, through the generated-converter table;
//   - Enumerated types;
//   - primitives, by kind.
//
// A Serializable type whose generated converter cannot be obtained fails with
// apis.ErrMissingGeneratedConverter; it is never handed to later factories.
// A nil table means generated.Default.
func NewStandard(tab *generated.Table) apis.Factory {
	if tab == nil {
		tab = generated.Default
	}
	return &standard{tab: tab}
}

type standard struct {
	tab *generated.Table
}

// Ensure standard implements apis.Factory.
var _ apis.Factory = (*standard)(nil)

// Create implements apis.Factory.
func (s *standard) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	if t.Go == nil {
		return nil, nil
	}
	if t.Nullable {
		inner, err := r.Resolve(t.Raw())
		if err != nil {
			return nil, err
		}
		return converter.NullSafe(inner, t.Go), nil
	}
	if t.Kind == reflect.Interface {
		return nil, nil
	}
	if implements(t.Go, serializableType) {
		return s.tab.Create(t, r)
	}
	if implements(t.Go, enumeratedType) {
		return enum(t.Go)
	}
	c, err := converter.Primitive(t.Go)
	if errors.Is(err, converter.ErrNotPrimitive) {
		return nil, nil
	}
	return c, err
}

// implements reports whether t or *t implements iface.
func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// enum builds the converter of an Enumerated type from the constants its zero
// value reports.
func enum(t reflect.Type) (apis.Converter, error) {
	v := reflect.Zero(t)
	if !t.Implements(enumeratedType) {
		v = reflect.New(t)
	}
	e, ok := v.Interface().(apis.Enumerated)
	if !ok {
		return nil, errors.Newf("snap(strategy): %v does not implement Enumerated", t)
	}
	return converter.NewEnum(t, e.EnumConstants())
}
