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

package snap

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/builder"
	"dirpx.dev/snap/config"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
	"dirpx.dev/snap/registry"
	"dirpx.dev/snap/wire"
)

// init initializes the global state.
func init() {
	cfg := config.DefaultConfig()
	st.Store(&state{
		cfg: cfg,
		reg: builder.New().WithConfig(cfg).Build(),
	})
}

// Marshal encodes v with the global registry and returns the bytes.
func Marshal[T any](v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a T from b with the global registry.
// Bytes left over after the value are reported as malformed input.
func Unmarshal[T any](b []byte) (T, error) {
	var zero T
	r := bytes.NewReader(b)
	v, err := Decode[T](r)
	if err != nil {
		return zero, err
	}
	if n := r.Len(); n > 0 {
		return zero, wire.Malformed("snap: %d trailing bytes", n)
	}
	return v, nil
}

// Encode writes v to w with the global registry.
func Encode[T any](w io.Writer, v T) error {
	c, err := ConverterFor[T]()
	if err != nil {
		return err
	}
	return c.Write(wire.NewSink(w), v)
}

// Decode reads one T from r with the global registry. Length prefixes are
// bounded by the global Config().MaxLength.
//
// When r does not implement io.RuneReader it is buffered and Decode may
// consume bytes past the value; wrap r in a bufio.Reader and keep using that
// reader to decode a sequence of values.
func Decode[T any](r io.Reader) (T, error) {
	var zero T
	s := st.Load()
	c, err := converter.Resolve[T](s.reg)
	if err != nil {
		return zero, err
	}
	return c.Read(wire.NewSource(r, wire.WithMaxLength(s.cfg.MaxLength)))
}

// ConverterFor resolves the converter for T from the global registry.
func ConverterFor[T any]() (apis.TypedConverter[T], error) {
	return converter.Resolve[T](st.Load().reg)
}

// RegisterGenerated adds a generated converter constructor for T to
// generated.Default. It is meant to be called from init functions.
func RegisterGenerated[T any](fn func(r apis.Resolver) (apis.TypedConverter[T], error)) error {
	return generated.Register(generated.Default, fn)
}

// RegisterGeneric adds a constructor for the generic type family of T to
// generated.Default.
func RegisterGeneric[T any](fn generated.GenericConstructor) error {
	return generated.RegisterGeneric[T](generated.Default, fn)
}

// SetLogger replaces the logger used by the registry package.
func SetLogger(l *zap.Logger) {
	registry.SetLogger(l)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration. Unless the registry is pinned it
// is rebuilt from the current one with the new configuration, keeping its
// custom factories and starting with an empty cache.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	cfg = config.NewConfig(config.WithMaxDepth(cfg.MaxDepth), config.WithMaxLength(cfg.MaxLength))

	nreg := old.reg
	if !old.preg {
		nreg = builder.From(old.reg).WithConfig(cfg).Build()
	}

	// Store the new state atomically.
	st.Store(&state{cfg: cfg, reg: nreg, preg: old.preg})
}

// Customize rebuilds the global registry from a builder seeded with the
// current one (see builder.From). It does nothing while the registry is pinned.
func Customize(fn func(b *builder.Builder)) {
	if fn == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	if old.preg {
		return
	}
	b := builder.From(old.reg).WithConfig(old.cfg)
	fn(b)

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: b.Build()})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global registry with reg and pins it, so later
// SetConfig calls do not rebuild it. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: reg, preg: true})
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops SetConfig and Customize from replacing the global registry.
func PinRegistry() {
	setPinned(true)
}

// UnpinRegistry lets SetConfig and Customize replace the global registry again.
func UnpinRegistry() {
	setPinned(false)
}

func setPinned(pinned bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(&state{cfg: old.cfg, reg: old.reg, preg: pinned})
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg is the global registry.
	reg apis.Registry
	// preg indicates whether the registry is pinned.
	preg bool
}
