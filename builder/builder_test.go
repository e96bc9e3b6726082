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

package builder_test

import (
	"bytes"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/builder"
	"dirpx.dev/snap/config"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
	"dirpx.dev/snap/wire"
)

// celsius is pinned to a converter that writes whole degrees as one byte.
type celsius float64

type degrees struct{}

func (degrees) Write(s *wire.Sink, c celsius) error { return s.WriteInt8(int8(c)) }

func (degrees) Read(s *wire.Source) (celsius, error) {
	b, err := s.ReadInt8()
	return celsius(b), err
}

func encode(t *testing.T, r apis.Resolver, v any) []byte {
	t.Helper()
	c, err := r.Resolve(reflect.TypeOf(v))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, c.Write(wire.NewSink(&buf), reflect.ValueOf(v)))
	return buf.Bytes()
}

func TestBuild_Defaults(t *testing.T) {
	reg := builder.New().Build()
	require.Equal(t, config.DefaultConfig(), reg.Config())
	require.Empty(t, reg.Custom())
	require.Len(t, reg.Factories(), 4)
	require.Same(t, generated.Default, reg.Generated())
	require.Equal(t, []byte{0, 0, 0, 5}, encode(t, reg, int32(5)))
}

func TestPin(t *testing.T) {
	reg := builder.PinTyped[celsius](builder.New(), degrees{}).Build()

	require.Equal(t, []byte{21}, encode(t, reg, celsius(21.7)))
	// Pins are exact: the pointer form is derived from the pinned element.
	c := celsius(3)
	require.Equal(t, []byte{1, 3}, encode(t, reg, &c))
	require.Len(t, reg.Custom(), 1)
}

func TestAddFunc_Order(t *testing.T) {
	var calls []string
	track := func(name string) func(apis.Type, apis.Resolver) (apis.Converter, error) {
		return func(t apis.Type, _ apis.Resolver) (apis.Converter, error) {
			if t.Go == reflect.TypeFor[bool]() {
				calls = append(calls, name)
			}
			return nil, nil
		}
	}
	reg := builder.New().AddFunc(track("a")).AddFunc(track("b")).AddFunc(nil).Add(nil).Build()
	require.Len(t, reg.Custom(), 2)

	_, err := reg.Resolve(reflect.TypeFor[bool]())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestFrom_KeepsCustomOnly(t *testing.T) {
	tab := generated.NewTable()
	cfg := config.NewConfig(config.WithMaxDepth(16), config.WithMaxLength(1024))
	orig := builder.PinTyped[celsius](builder.New(), degrees{}).
		WithConfig(cfg).
		WithGenerated(tab).
		Build()
	_, err := orig.Resolve(reflect.TypeFor[[]celsius]())
	require.NoError(t, err)
	require.NotZero(t, orig.Count())

	derived := builder.From(orig).Build()
	require.Equal(t, cfg, derived.Config())
	require.Same(t, tab, derived.Generated())
	require.Equal(t, orig.Custom(), derived.Custom())
	require.Len(t, derived.Factories(), len(orig.Factories()), "built-ins are not duplicated")
	require.Zero(t, derived.Count(), "the cache starts empty")
	require.Equal(t, []byte{0, 0, 0, 1, 7}, encode(t, derived, []celsius{7}))

	require.Len(t, builder.From(nil).Build().Custom(), 0)
}

func TestBuild_Independent(t *testing.T) {
	b := builder.New()
	first := b.Build()
	second := b.Pin(reflect.TypeFor[int](), must(converter.Primitive(reflect.TypeFor[int8]()))).Build()

	require.Empty(t, first.Custom(), "later changes do not leak into earlier builds")
	require.Len(t, second.Custom(), 1)
}

// TestConcurrentBuild ensures registries built from one source are usable
// concurrently and do not share caches.
func TestConcurrentBuild(t *testing.T) {
	base := builder.PinTyped[celsius](builder.New(), degrees{}).Build()

	workers := runtime.GOMAXPROCS(0) * 4
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			reg := builder.From(base).Build()
			for i := 0; i < 200; i++ {
				if _, err := reg.Resolve(reflect.TypeFor[map[string]celsius]()); err != nil {
					t.Errorf("Resolve: %v", err)
					return
				}
			}
			if reg.Count() != 3 {
				t.Errorf("Count() = %d, want 3", reg.Count())
			}
		}()
	}
	wg.Wait()
	require.Zero(t, base.Count())
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
