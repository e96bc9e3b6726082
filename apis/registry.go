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

package apis

import "reflect"

// Registry owns a factory chain and the cache of converters it produced.
// The chain is fixed at construction; only the cache grows.
type Registry interface {
	Resolver
	// Config returns the configuration the registry was built with.
	Config() Config
	// Custom returns the custom factories, in chain order, without the built-ins.
	Custom() []Factory
	// Entries returns a snapshot of cached converters for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of cached converters.
	Count() int
}

// Entry is a single (type, converter) association in a Registry snapshot.
type Entry struct {
	// Type is the cached reflect.Type.
	Type reflect.Type
	// Converter is the associated converter.
	Converter Converter
}
