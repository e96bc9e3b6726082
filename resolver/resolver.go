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

package resolver

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"dirpx.dev/snap/apis"
)

// New constructs a Chain that tries the custom factories, then the built-ins,
// in order. Nil factories are ignored. The returned chain is immutable and
// safe for concurrent use provided the factories themselves are.
func New(custom []apis.Factory, builtins []apis.Factory) *Chain {
	// Filter out nils to avoid nil-interface panics on call sites.
	notNil := func(f apis.Factory, _ int) bool { return f != nil }
	c := lo.Filter(custom, notNil)
	b := lo.Filter(builtins, notNil)
	return &Chain{
		factories: append(append(make([]apis.Factory, 0, len(c)+len(b)), c...), b...),
		custom:    len(c),
	}
}

// Chain is an immutable, order-preserving sequence of factories.
type Chain struct {
	factories []apis.Factory
	// custom is the number of leading custom factories.
	custom int
}

// Create runs the factories in order until one returns a converter.
// A factory error stops the walk and is returned unchanged. When every
// factory declines the result is apis.ErrUnsupportedType.
func (c *Chain) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	return c.from(0, t, r)
}

// CreateAfter runs the factories that follow skip. It fails with
// apis.ErrUnknownFactory when skip is not part of the chain.
func (c *Chain) CreateAfter(skip apis.Factory, t apis.Type, r apis.Resolver) (apis.Converter, error) {
	i := c.IndexOf(skip)
	if i < 0 {
		return nil, errors.Wrapf(apis.ErrUnknownFactory, "%T", skip)
	}
	return c.from(i+1, t, r)
}

func (c *Chain) from(start int, t apis.Type, r apis.Resolver) (apis.Converter, error) {
	for _, f := range c.factories[start:] {
		conv, err := f.Create(t, r)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			return conv, nil
		}
	}
	return nil, errors.Wrapf(apis.ErrUnsupportedType, "%v", t)
}

// IndexOf returns the position of f in the chain, or -1. Factories of a
// non-comparable dynamic type (such as apis.FactoryFunc) are never found.
func (c *Chain) IndexOf(f apis.Factory) int {
	if f == nil || !reflect.TypeOf(f).Comparable() {
		return -1
	}
	for i, g := range c.factories {
		// Interface equality only compares dynamic values of f's own,
		// comparable, type; other types compare unequal without panicking.
		if g == f {
			return i
		}
	}
	return -1
}

// Custom returns a copy of the custom factories in chain order.
func (c *Chain) Custom() []apis.Factory {
	return append([]apis.Factory(nil), c.factories[:c.custom]...)
}

// Factories returns a copy of the whole chain.
func (c *Chain) Factories() []apis.Factory {
	return append([]apis.Factory(nil), c.factories...)
}

// Len returns the number of factories in the chain.
func (c *Chain) Len() int { return len(c.factories) }
