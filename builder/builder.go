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

package builder

import (
	"reflect"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/config"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
	"dirpx.dev/snap/registry"
	"dirpx.dev/snap/strategy"
)

// New creates a builder with the default configuration, no custom factories
// and the generated.Default table.
func New() *Builder {
	return &Builder{cfg: config.DefaultConfig()}
}

// From creates a builder seeded from reg: its custom factories (pins
// included), its configuration and, for a *registry.Registry, its generated
// table. The built-in factories are never copied; Build appends fresh ones.
// The cache is not carried over.
func From(reg apis.Registry) *Builder {
	b := New()
	if reg == nil {
		return b
	}
	b.cfg = reg.Config()
	b.custom = reg.Custom()
	if r, ok := reg.(interface{ Generated() *generated.Table }); ok {
		b.tab = r.Generated()
	}
	return b
}

// Builder accumulates the custom part of a registry's chain.
// Methods return the receiver for chaining. A Builder is not safe for
// concurrent use, but may be built any number of times.
type Builder struct {
	cfg    apis.Config
	custom []apis.Factory
	tab    *generated.Table
}

// Add appends a custom factory. Custom factories are consulted in the order
// they were added, before every built-in. Nil is ignored.
func (b *Builder) Add(f apis.Factory) *Builder {
	if f != nil {
		b.custom = append(b.custom, f)
	}
	return b
}

// AddFunc appends a plain function as a custom factory.
func (b *Builder) AddFunc(fn func(t apis.Type, r apis.Resolver) (apis.Converter, error)) *Builder {
	if fn == nil {
		return b
	}
	return b.Add(apis.FactoryFunc(fn))
}

// Pin installs c as the converter for exactly t.
func (b *Builder) Pin(t reflect.Type, c apis.Converter) *Builder {
	if t == nil || c == nil {
		return b
	}
	return b.Add(strategy.NewPinned(t, c))
}

// PinTyped installs c as the converter for exactly T.
func PinTyped[T any](b *Builder, c apis.TypedConverter[T]) *Builder {
	if c == nil {
		return b
	}
	return b.Pin(reflect.TypeFor[T](), converter.Erase(c))
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg apis.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithGenerated sets the generated-converter table. Nil restores the default.
func (b *Builder) WithGenerated(tab *generated.Table) *Builder {
	b.tab = tab
	return b
}

// Build returns a new registry with an empty cache.
func (b *Builder) Build() *registry.Registry {
	custom := append([]apis.Factory(nil), b.custom...)
	return registry.New(b.cfg, custom, registry.WithGenerated(b.tab))
}
