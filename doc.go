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

// Package snap provides a compact, type-driven binary codec.
//
// snap turns Go values into bytes and back. There is no schema and no type
// tag on the wire: the Go type of the value decides which converter writes
// it, and the reader must ask for the same type to get it back. This keeps
// the encoding small and fast for values exchanged between processes that
// share their types (caches, snapshots, internal RPC payloads).
//
// # Design
//
// The core of snap is a registry that hands out one converter per Go type:
//
//   - Converter: an immutable object that writes and reads values of exactly
//     one type (apis.Converter, or its statically typed form
//     apis.TypedConverter[T]). Converters are shared freely between
//     goroutines; each encode or decode drives its own wire.Sink or
//     wire.Source.
//
//   - Factory: a pluggable construction step (apis.Factory). Given a type
//     it either builds a converter, declines, or fails. Factories build
//     converters for composite types by asking the registry for the
//     converters of their parts.
//
//   - Registry: an ordered chain of factories (custom ones first, then the
//     built-ins) plus a cache keyed by exact Go type. The first factory
//     that accepts a type wins, and the converter is cached, so asking
//     twice returns the identical converter.
//
// The built-in factories cover:
//
//  1. Pointers, the nullable form of their element: a presence byte, then
//     the element.
//  2. Types marked apis.Serializable, whose converter comes from a code
//     generator through the generated-converter table.
//  3. Enums (apis.Enumerated), written by constant name.
//  4. Primitives by kind: bool, integers, floats, uint16 as a UTF-16 code
//     unit, string, and struct{} as the unit value.
//  5. Slices (lists) and map[E]struct{} (sets): a count, then the elements.
//  6. Maps: a count, then key and value pairs.
//  7. Arrays: the length, then the elements.
//
// All multi-byte numbers are big-endian. Strings are the number of UTF-16
// code units followed by the UTF-8 bytes.
//
// # Recursive types
//
// A type may refer to itself, directly or through other types:
//
//	type Node struct {
//	    Value    int32
//	    Children []Node
//	}
//
// Every top-level resolution carries an explicit resolution context that
// records which types are being built. When building Node asks for []Node,
// which asks for Node again, the context hands out a placeholder that
// forwards to Node's converter once it exists. Converters produced during a
// resolution are published to the shared cache only when it succeeds, so a
// failure never leaves half-built converters behind.
//
// # Generated converters
//
// Composite types opt in with a marker method and register a constructor,
// typically from generated code:
//
//	func (User) SnapSerializable() {}
//
//	func init() {
//	    snap.RegisterGenerated(func(r apis.Resolver) (apis.TypedConverter[User], error) {
//	        name, err := converter.Resolve[string](r)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return &userConverter{name: name}, nil
//	    })
//	}
//
// Constructors are looked up by generated.Name(t), derived from the package
// path and type name. A marked type without a usable constructor fails with
// apis.ErrMissingGeneratedConverter.
//
// # Global API
//
// The package holds a read-mostly global snapshot with the configuration
// and the registry:
//
//  1. Codec helpers:
//
//     Marshal[T](v T) ([]byte, error)
//     Unmarshal[T](b []byte) (T, error)
//     Encode[T](w io.Writer, v T) error
//     Decode[T](r io.Reader) (T, error)
//     ConverterFor[T]() (apis.TypedConverter[T], error)
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     Customize(fn func(*builder.Builder))
//     SetRegistry(reg apis.Registry)
//     PinRegistry() / UnpinRegistry()
//     SetLogger(l *zap.Logger)
//
//     SetConfig and Customize rebuild the registry from the current one,
//     keeping its custom factories, unless the registry is pinned.
//     SetRegistry installs and pins a registry built elsewhere (see the
//     builder package).
//
// Reads load the current snapshot atomically and never take locks. Writes
// take a short build mutex, assemble a new snapshot and publish it with an
// atomic pointer swap.
//
// # Scope
//
// snap does not carry type information, versions or schemas on the wire,
// and it does not evolve formats. Both sides must agree on the types.
package snap
