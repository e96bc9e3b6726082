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
	"fmt"
	"reflect"

	"dirpx.dev/snap/apis"
)

// NewPinned creates a factory that answers exactly t with c and declines
// everything else. It is how a fixed converter is installed ahead of the
// built-ins; pinning *T does not affect T and vice versa.
func NewPinned(t reflect.Type, c apis.Converter) apis.Factory {
	return &pinned{t: t, c: c}
}

// pinned is a reflection-free lookup of a single type.
type pinned struct {
	t reflect.Type
	c apis.Converter
}

// Ensure pinned implements apis.Factory.
var _ apis.Factory = (*pinned)(nil)

// Create implements apis.Factory.
func (p *pinned) Create(t apis.Type, _ apis.Resolver) (apis.Converter, error) {
	if p.t == nil || p.c == nil || t.Go != p.t {
		return nil, nil
	}
	return p.c, nil
}

func (p *pinned) String() string {
	return fmt.Sprintf("pinned(%v)", p.t)
}
