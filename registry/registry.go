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
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/config"
	"dirpx.dev/snap/generated"
	"dirpx.dev/snap/resolver"
	"dirpx.dev/snap/strategy"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("snap(registry): nil reflect.Type provided")
	// ErrPlaceholderNotReady is returned when a converter that is still being
	// built is used to encode or decode, typically by a constructor that
	// exercises a nested converter before returning.
	ErrPlaceholderNotReady = errors.New("snap(registry): converter used before it was built")
	// ErrDepthExceeded is returned when one resolution keeps expanding into new
	// types beyond Config.MaxDepth.
	ErrDepthExceeded = errors.New("snap(registry): resolution depth exceeded")
)

// Option configures a Registry.
type Option func(*Registry)

// WithGenerated sets the generated-converter table consulted for
// Serializable types. The default is generated.Default.
func WithGenerated(tab *generated.Table) Option {
	return func(r *Registry) {
		if tab != nil {
			r.tab = tab
		}
	}
}

// New constructs a Registry whose chain is the given custom factories followed
// by the built-ins. Nil factories are ignored. Out-of-range limits in cfg
// fall back to their defaults.
func New(cfg apis.Config, custom []apis.Factory, opts ...Option) *Registry {
	r := &Registry{
		cfg: config.NewConfig(config.WithMaxDepth(cfg.MaxDepth), config.WithMaxLength(cfg.MaxLength)),
		tab: generated.Default,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.chain = resolver.New(custom, strategy.Builtins(r.tab))
	return r
}

// Registry resolves converters through a fixed factory chain and caches them
// by exact Go type. It is safe for concurrent use.
type Registry struct {
	cfg   apis.Config
	tab   *generated.Table
	chain *resolver.Chain
	// mu guards publication and count.
	mu sync.Mutex
	// cache maps reflect.Type to apis.Converter.
	cache sync.Map
	count int
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// Resolve returns the converter for t, building and caching it on first use.
// Repeated calls return the identical converter.
func (r *Registry) Resolve(t reflect.Type) (apis.Converter, error) {
	if t == nil {
		return nil, ErrNilType
	}
	// Fast read path.
	if c, ok := r.lookup(t); ok {
		return c, nil
	}
	res := r.newResolution()
	c, err := res.Resolve(t)
	if err != nil {
		Logger().Debug("snap: resolution failed", zap.Stringer("type", t), zap.Error(err))
		return nil, errors.Wrapf(err, "snap(registry): resolve %v", t)
	}
	if pub := r.publish(res); pub[t] != nil {
		c = pub[t]
	}
	return c, nil
}

// ResolveAfter resolves t using only the factories that follow skip.
// The result is not cached; converters built for nested types are.
func (r *Registry) ResolveAfter(skip apis.Factory, t reflect.Type) (apis.Converter, error) {
	res := r.newResolution()
	c, err := res.ResolveAfter(skip, t)
	if err != nil {
		Logger().Debug("snap: resolution failed", zap.Stringer("type", t), zap.Error(err))
		return nil, errors.Wrapf(err, "snap(registry): resolve %v after %T", t, skip)
	}
	r.publish(res)
	return c, nil
}

// lookup reads the shared cache.
func (r *Registry) lookup(t reflect.Type) (apis.Converter, bool) {
	if v, ok := r.cache.Load(t); ok {
		return v.(apis.Converter), true
	}
	return nil, false
}

// publish moves the converters of a successful resolution into the cache.
// The first converter stored for a type wins, so concurrent resolutions of
// the same type agree on one instance. It returns the cached converter of
// every type res built.
func (r *Registry) publish(res *resolution) map[reflect.Type]apis.Converter {
	if len(res.order) == 0 {
		return nil
	}
	out := make(map[reflect.Type]apis.Converter, len(res.order))

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range res.order {
		v, loaded := r.cache.LoadOrStore(t, res.built[t])
		if !loaded {
			r.count++
			Logger().Debug("snap: converter cached", zap.Stringer("type", t))
		}
		out[t] = v.(apis.Converter)
	}
	return out
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() apis.Config { return r.cfg }

// Generated returns the generated-converter table the registry consults.
func (r *Registry) Generated() *generated.Table { return r.tab }

// Custom returns the custom factories in chain order.
func (r *Registry) Custom() []apis.Factory { return r.chain.Custom() }

// Factories returns the whole chain, custom factories first.
func (r *Registry) Factories() []apis.Factory { return r.chain.Factories() }

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *Registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.cache.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:      key.(reflect.Type),
			Converter: value.(apis.Converter),
		})
		return true
	})
	return entries
}

// Count returns the number of cached converters.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
