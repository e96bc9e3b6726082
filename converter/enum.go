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

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/wire"
)

// NewEnum builds the converter for enum type t from its declared constants,
// in declaration order. Values travel as their names; see apis.Enumerated.
func NewEnum(t reflect.Type, constants []any) (apis.Converter, error) {
	if t == nil || !t.Comparable() {
		return nil, errors.Wrapf(ErrTypeMismatch, "enum type %v is not comparable", t)
	}
	c := &enumConverter{
		t:         t,
		constants: make([]reflect.Value, 0, len(constants)),
		ordinals:  make(map[any]int, len(constants)),
		byName:    make(map[string]int, len(constants)),
	}
	for i, k := range constants {
		v := reflect.ValueOf(k)
		if !v.IsValid() || v.Type() != t {
			return nil, errors.Wrapf(mismatch(v, t), "enum constant %d", i)
		}
		c.constants = append(c.constants, v)
		if _, dup := c.ordinals[k]; !dup {
			c.ordinals[k] = i
		}
	}
	c.names = lo.Map(constants, func(k any, _ int) string {
		if s, ok := k.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(k)
	})
	for i, name := range c.names {
		if _, dup := c.byName[name]; dup {
			return nil, errors.Wrapf(ErrDuplicateEnumName, "%v: %q", t, name)
		}
		c.byName[name] = i
	}
	return c, nil
}

// enumConverter captures the constant list and the parallel name list once.
type enumConverter struct {
	t         reflect.Type
	constants []reflect.Value
	names     []string
	ordinals  map[any]int
	byName    map[string]int
}

func (c *enumConverter) Write(s *wire.Sink, v reflect.Value) error {
	if !v.IsValid() || v.Type() != c.t || !v.CanInterface() {
		return mismatch(v, c.t)
	}
	ord, ok := c.ordinals[v.Interface()]
	if !ok {
		return errors.Wrapf(ErrUnknownEnumValue, "%v(%v)", c.t, v)
	}
	return s.WriteString(c.names[ord])
}

func (c *enumConverter) Read(s *wire.Source) (reflect.Value, error) {
	name, err := s.ReadString()
	if err != nil {
		return reflect.Value{}, err
	}
	ord, ok := c.byName[name]
	if !ok {
		err := errors.Wrapf(ErrUnknownEnumName, "%v: %q", c.t, name)
		return reflect.Value{}, errors.Mark(errors.Mark(err, wire.ErrMalformed), wire.ErrStreamFault)
	}
	return c.constants[ord], nil
}

func (c *enumConverter) String() string {
	return fmt.Sprintf("Converter(%v)", c.t)
}
