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

package registry_test

import (
	"bytes"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/config"
	"dirpx.dev/snap/registry"
	"dirpx.dev/snap/wire"
)

// TestConcurrentResolve verifies that concurrent first resolutions of the same
// types agree on one converter per type and that Count/Entries stay consistent.
func TestConcurrentResolve(t *testing.T) {
	reg := newRegistry()

	types := []reflect.Type{
		reflect.TypeFor[[]int32](),
		reflect.TypeFor[map[string]*int64](),
		reflect.TypeFor[Node](),
		reflect.TypeFor[*Ping](),
		reflect.TypeFor[[3]Level](),
		reflect.TypeFor[map[uint16]struct{}](),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([][]apis.Converter, workers)

	start := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			<-start
			out := make([]apis.Converter, len(types))
			for i := range types {
				// Vary the order so workers race on different types.
				j := (i + id) % len(types)
				c, err := reg.Resolve(types[j])
				if err != nil {
					t.Errorf("Resolve(%v): %v", types[j], err)
					return
				}
				out[j] = c
				_ = reg.Count()
				_ = reg.Entries()
			}
			results[id] = out
		}(w)
	}
	close(start)
	wg.Wait()

	if t.Failed() {
		return
	}
	for id := 1; id < workers; id++ {
		for j := range types {
			if results[id][j] != results[0][j] {
				t.Fatalf("worker %d got a different converter for %v", id, types[j])
			}
		}
	}
	if got, want := reg.Count(), len(reg.Entries()); got != want {
		t.Fatalf("Count() = %d, Entries() has %d", got, want)
	}
}

// TestConcurrentUse drives one shared converter from many goroutines, each
// with its own sink and source.
func TestConcurrentUse(t *testing.T) {
	reg := newRegistry()
	c, err := reg.Resolve(reflect.TypeFor[Node]())
	if err != nil {
		t.Fatalf("Resolve(Node): %v", err)
	}

	workers := runtime.GOMAXPROCS(0) * 4
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				n := Node{Value: int32(id), Next: &Node{Value: int32(i)}}
				var buf bytes.Buffer
				if err := c.Write(wire.NewSink(&buf), reflect.ValueOf(n)); err != nil {
					t.Errorf("Write: %v", err)
					return
				}
				v, err := c.Read(wire.NewSource(&buf))
				if err != nil {
					t.Errorf("Read: %v", err)
					return
				}
				got := v.Interface().(Node)
				if got.Value != n.Value || got.Next == nil || got.Next.Value != n.Next.Value {
					t.Errorf("round trip: got %+v, want %+v", got, n)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig(), nil)
