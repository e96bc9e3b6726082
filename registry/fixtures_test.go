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
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
	"dirpx.dev/snap/wire"
)

// Node refers to itself both through a pointer and through a list.
type Node struct {
	Value    int32
	Next     *Node
	Children []Node
}

func (Node) SnapSerializable() {}

type nodeConverter struct {
	next     apis.TypedConverter[*Node]
	children apis.TypedConverter[[]Node]
}

func (c *nodeConverter) Write(s *wire.Sink, n Node) error {
	if err := s.WriteInt32(n.Value); err != nil {
		return err
	}
	if err := c.next.Write(s, n.Next); err != nil {
		return err
	}
	return c.children.Write(s, n.Children)
}

func (c *nodeConverter) Read(s *wire.Source) (Node, error) {
	var (
		n   Node
		err error
	)
	if n.Value, err = s.ReadInt32(); err != nil {
		return Node{}, err
	}
	if n.Next, err = c.next.Read(s); err != nil {
		return Node{}, err
	}
	if n.Children, err = c.children.Read(s); err != nil {
		return Node{}, err
	}
	return n, nil
}

// Ping and Pong refer to each other.
type Ping struct {
	Pong *Pong
}

func (*Ping) SnapSerializable() {}

type Pong struct {
	Label string
	Ping  *Ping
}

func (*Pong) SnapSerializable() {}

type pingConverter struct{ pong apis.TypedConverter[*Pong] }

func (c *pingConverter) Write(s *wire.Sink, p Ping) error { return c.pong.Write(s, p.Pong) }

func (c *pingConverter) Read(s *wire.Source) (Ping, error) {
	pong, err := c.pong.Read(s)
	return Ping{Pong: pong}, err
}

type pongConverter struct {
	label apis.TypedConverter[string]
	ping  apis.TypedConverter[*Ping]
}

func (c *pongConverter) Write(s *wire.Sink, p Pong) error {
	if err := c.label.Write(s, p.Label); err != nil {
		return err
	}
	return c.ping.Write(s, p.Ping)
}

func (c *pongConverter) Read(s *wire.Source) (Pong, error) {
	label, err := c.label.Read(s)
	if err != nil {
		return Pong{}, err
	}
	ping, err := c.ping.Read(s)
	return Pong{Label: label, Ping: ping}, err
}

// Orphan is Serializable but nothing is registered for it.
type Orphan struct{}

func (Orphan) SnapSerializable() {}

// Eager uses its own converter while it is still being constructed.
type Eager struct{ Self *Eager }

func (Eager) SnapSerializable() {}

// Level is an enum.
type Level uint8

const (
	Debug Level = iota
	Info
	Warn
)

func (l Level) String() string { return [...]string{"DEBUG", "INFO", "WARN"}[l] }

func (Level) EnumConstants() []any { return []any{Debug, Info, Warn} }

// fixtures returns a table with converters for the types above.
func fixtures() *generated.Table {
	tab := generated.NewTable()
	must(generated.Register(tab, func(r apis.Resolver) (apis.TypedConverter[Node], error) {
		next, err := converter.Resolve[*Node](r)
		if err != nil {
			return nil, err
		}
		children, err := converter.Resolve[[]Node](r)
		if err != nil {
			return nil, err
		}
		return &nodeConverter{next: next, children: children}, nil
	}))
	must(generated.Register(tab, func(r apis.Resolver) (apis.TypedConverter[Ping], error) {
		pong, err := converter.Resolve[*Pong](r)
		if err != nil {
			return nil, err
		}
		return &pingConverter{pong: pong}, nil
	}))
	must(generated.Register(tab, func(r apis.Resolver) (apis.TypedConverter[Pong], error) {
		label, err := converter.Resolve[string](r)
		if err != nil {
			return nil, err
		}
		ping, err := converter.Resolve[*Ping](r)
		if err != nil {
			return nil, err
		}
		return &pongConverter{label: label, ping: ping}, nil
	}))
	must(tab.Add(generated.Name(reflect.TypeFor[Eager]()), func(r apis.Resolver) (apis.Converter, error) {
		self, err := r.Resolve(reflect.TypeFor[*Eager]())
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		if err := self.Write(wire.NewSink(&sb), reflect.ValueOf(&Eager{})); err != nil {
			return nil, err
		}
		return nil, errors.New("unreachable")
	}))
	return tab
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// upper wraps the converter that follows it in the chain and upper-cases
// strings on write. It is not zero-sized, so distinct instances are distinct
// chain anchors.
type upper struct{ name string }

func (u *upper) Create(t apis.Type, r apis.Resolver) (apis.Converter, error) {
	if t.Go != reflect.TypeFor[string]() {
		return nil, nil
	}
	next, err := r.ResolveAfter(u, t.Go)
	if err != nil {
		return nil, err
	}
	return &upperConverter{next: next}, nil
}

type upperConverter struct{ next apis.Converter }

func (c *upperConverter) Write(s *wire.Sink, v reflect.Value) error {
	return c.next.Write(s, reflect.ValueOf(strings.ToUpper(v.String())))
}

func (c *upperConverter) Read(s *wire.Source) (reflect.Value, error) { return c.next.Read(s) }
