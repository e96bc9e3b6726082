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

package registry

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"dirpx.dev/snap/apis"
	uref "dirpx.dev/snap/utils/reflect"
	"dirpx.dev/snap/wire"
)

// resolution is the state of one top-level Resolve call. It is the resolver
// factories receive, and it is never shared between goroutines.
//
// Types under construction sit on the pending stack. Resolving a pending type
// again yields its placeholder, which is how self- and mutually referential
// types terminate. Finished converters collect in built and reach the shared
// cache only if the top-level call succeeds.
type resolution struct {
	reg     *Registry
	pending []*placeholder
	built   map[reflect.Type]apis.Converter
	// order records built keys so a failed subtree can be rolled back.
	order []reflect.Type
}

// Ensure resolution implements apis.Resolver.
var _ apis.Resolver = (*resolution)(nil)

func (r *Registry) newResolution() *resolution {
	return &resolution{reg: r, built: make(map[reflect.Type]apis.Converter)}
}

// Resolve implements apis.Resolver.
func (c *resolution) Resolve(t reflect.Type) (apis.Converter, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if conv, ok := c.reg.lookup(t); ok {
		return conv, nil
	}
	if conv, ok := c.built[t]; ok {
		return conv, nil
	}
	for _, p := range c.pending {
		if p.t == t {
			return p, nil
		}
	}
	if len(c.pending) >= c.reg.cfg.MaxDepth {
		return nil, errors.Wrapf(ErrDepthExceeded, "%d pending at %v", len(c.pending), t)
	}

	p := &placeholder{t: t}
	c.pending = append(c.pending, p)
	mark := len(c.order)
	conv, err := c.reg.chain.Create(uref.Canonicalize(t), c)
	c.pending = c.pending[:len(c.pending)-1]
	if err != nil {
		// Converters built under t may hold its placeholder, which will never
		// become ready.
		for _, bt := range c.order[mark:] {
			delete(c.built, bt)
		}
		c.order = c.order[:mark]
		return nil, err
	}

	p.target = conv
	c.built[t] = conv
	c.order = append(c.order, t)
	return conv, nil
}

// ResolveAfter implements apis.Resolver.
func (c *resolution) ResolveAfter(skip apis.Factory, t reflect.Type) (apis.Converter, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return c.reg.chain.CreateAfter(skip, uref.Canonicalize(t), c)
}

// placeholder stands in for a converter that is still being built.
// It forwards to the real converter once that exists; any use before then
// fails with ErrPlaceholderNotReady.
type placeholder struct {
	t      reflect.Type
	target apis.Converter
}

func (p *placeholder) Write(s *wire.Sink, v reflect.Value) error {
	if p.target == nil {
		return errors.Wrapf(ErrPlaceholderNotReady, "%v", p.t)
	}
	return p.target.Write(s, v)
}

func (p *placeholder) Read(s *wire.Source) (reflect.Value, error) {
	if p.target == nil {
		return reflect.Value{}, errors.Wrapf(ErrPlaceholderNotReady, "%v", p.t)
	}
	return p.target.Read(s)
}

// String names the type only; the target may print this placeholder.
func (p *placeholder) String() string {
	return fmt.Sprintf("ref(%v)", p.t)
}
