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

// Factory is a pluggable converter-construction step. A registry chains
// factories in order (custom factories first, then the built-ins) and the
// first factory that returns a converter wins.
//
// Create returns (nil, nil) to decline. A returned error aborts the whole
// resolution. Factories must be stateless apart from the nested resolutions
// they perform through r, and must not retain r beyond the call.
//
// Factories used as ResolveAfter anchors must be comparable (pointer types
// are the usual choice).
type Factory interface {
	Create(t Type, r Resolver) (Converter, error)
}

// FactoryFunc adapts a plain function to a Factory.
// FactoryFunc values are not comparable and cannot be ResolveAfter anchors;
// wrap them in a pointer type when that is needed.
type FactoryFunc func(t Type, r Resolver) (Converter, error)

// Create calls f(t, r).
func (f FactoryFunc) Create(t Type, r Resolver) (Converter, error) {
	return f(t, r)
}
