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

package generated

import (
	"reflect"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/converter"
	uref "dirpx.dev/snap/utils/reflect"
)

// Suffix is appended to a type's raw name to form its generated converter name.
const Suffix = "Converter"

// ErrConflictingRegistration is returned when a name is registered twice.
var ErrConflictingRegistration = errors.New("snap(generated): conflicting registration")

// Constructor builds the converter of a non-generic Serializable type.
// Nested converters are obtained through r, which may hand out a placeholder
// for a type still under construction; constructors must not use it to
// encode or decode before returning.
type Constructor func(r apis.Resolver) (apis.Converter, error)

// GenericConstructor builds the converter of one instantiation of a generic
// Serializable type. args are the type arguments reported by apis.Generic.
type GenericConstructor func(r apis.Resolver, args []reflect.Type) (apis.Converter, error)

// Table maps generated converter names to constructors.
// It is the explicit stand-in for looking converters up by name at runtime.
// Safe for concurrent use; registration normally happens from init functions.
type Table struct {
	mu      sync.RWMutex
	plain   map[string]Constructor
	generic map[string]GenericConstructor
}

// Default is the process-wide table consulted by registries that are not
// given one explicitly.
var Default = NewTable()

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		plain:   make(map[string]Constructor),
		generic: make(map[string]GenericConstructor),
	}
}

// Name derives the generated converter name for t: the package path, the
// type name with any instantiation suffix removed, then Suffix. Pointer types
// name their element. Unnamed types have no generated name and yield "".
func Name(t reflect.Type) string {
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	raw := uref.RawName(t)
	if raw == "" {
		return ""
	}
	return raw + Suffix
}

// Add registers a constructor under name.
func (tab *Table) Add(name string, c Constructor) error {
	if name == "" || c == nil {
		return errors.Newf("snap(generated): invalid registration %q", name)
	}
	tab.mu.Lock()
	defer tab.mu.Unlock()
	if tab.taken(name) {
		return errors.Wrapf(ErrConflictingRegistration, "%q", name)
	}
	tab.plain[name] = c
	return nil
}

// AddGeneric registers a generic constructor under name.
func (tab *Table) AddGeneric(name string, c GenericConstructor) error {
	if name == "" || c == nil {
		return errors.Newf("snap(generated): invalid registration %q", name)
	}
	tab.mu.Lock()
	defer tab.mu.Unlock()
	if tab.taken(name) {
		return errors.Wrapf(ErrConflictingRegistration, "%q", name)
	}
	tab.generic[name] = c
	return nil
}

func (tab *Table) taken(name string) bool {
	_, p := tab.plain[name]
	_, g := tab.generic[name]
	return p || g
}

// Names returns the registered names, sorted.
func (tab *Table) Names() []string {
	tab.mu.RLock()
	names := append(lo.Keys(tab.plain), lo.Keys(tab.generic)...)
	tab.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Create builds the generated converter for t, which must carry the
// apis.Serializable marker. Every failure is marked
// apis.ErrMissingGeneratedConverter and keeps its cause.
func (tab *Table) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	raw := t.Raw()
	name := Name(raw)

	tab.mu.RLock()
	plain, isPlain := tab.plain[name]
	gen, isGeneric := tab.generic[name]
	tab.mu.RUnlock()

	var (
		c   apis.Converter
		err error
	)
	switch {
	case isPlain:
		c, err = plain(r)
	case isGeneric:
		if len(t.Args) == 0 {
			return nil, missing(errors.Newf("%v reports no type arguments", raw), name)
		}
		c, err = gen(r, t.Args)
	default:
		return nil, missing(errors.Newf("no entry for %v", raw), name)
	}
	if err != nil {
		return nil, missing(err, name)
	}
	if c == nil {
		return nil, missing(errors.New("constructor returned nil"), name)
	}
	return c, nil
}

func missing(cause error, name string) error {
	return errors.Mark(errors.Wrapf(cause, "%v %q", apis.ErrMissingGeneratedConverter, name), apis.ErrMissingGeneratedConverter)
}

// Register adds a typed constructor for the non-generic type T to tab.
func Register[T any](tab *Table, fn func(r apis.Resolver) (apis.TypedConverter[T], error)) error {
	t := reflect.TypeFor[T]()
	if fn == nil {
		return errors.Newf("snap(generated): nil constructor for %v", t)
	}
	return tab.Add(Name(t), func(r apis.Resolver) (apis.Converter, error) {
		tc, err := fn(r)
		if err != nil || tc == nil {
			return nil, err
		}
		return converter.Erase(tc), nil
	})
}

// RegisterGeneric adds a constructor for every instantiation of the generic
// type family T belongs to. T can be any instantiation (Box[int] registers
// Box); the constructor receives the actual type arguments.
func RegisterGeneric[T any](tab *Table, fn GenericConstructor) error {
	return tab.AddGeneric(Name(reflect.TypeFor[T]()), fn)
}
