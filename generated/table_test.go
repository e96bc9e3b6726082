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

package generated_test

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"dirpx.dev/snap/apis"
	"dirpx.dev/snap/converter"
	"dirpx.dev/snap/generated"
	uref "dirpx.dev/snap/utils/reflect"
	"dirpx.dev/snap/wire"
)

const pkg = "dirpx.dev/snap/generated_test"

type Account struct{ ID int64 }

func (Account) SnapSerializable() {}

type Box[T any] struct{ V T }

func (Box[T]) SnapSerializable() {}
func (Box[T]) SnapTypeArgs() []reflect.Type { return []reflect.Type{reflect.TypeFor[T]()} }

type accountConverter struct{}

func (accountConverter) Write(s *wire.Sink, a Account) error { return s.WriteInt64(a.ID) }

func (accountConverter) Read(s *wire.Source) (Account, error) {
	id, err := s.ReadInt64()
	return Account{ID: id}, err
}

// noResolver fails every lookup; constructors under test never need one.
type noResolver struct{}

func (noResolver) Resolve(t reflect.Type) (apis.Converter, error) {
	return nil, errors.Wrapf(apis.ErrUnsupportedType, "%v", t)
}

func (noResolver) ResolveAfter(_ apis.Factory, t reflect.Type) (apis.Converter, error) {
	return nil, errors.Wrapf(apis.ErrUnsupportedType, "%v", t)
}

func TestName(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[Account](), pkg + ".AccountConverter"},
		{reflect.TypeFor[*Account](), pkg + ".AccountConverter"},
		{reflect.TypeFor[Box[int]](), pkg + ".BoxConverter"},
		{reflect.TypeFor[Box[string]](), pkg + ".BoxConverter"},
		{reflect.TypeFor[int](), ""},
		{reflect.TypeFor[[]Account](), ""},
		{nil, ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, generated.Name(tc.typ), "Name(%v)", tc.typ)
	}
}

func TestRegister_Create(t *testing.T) {
	tab := generated.NewTable()
	require.NoError(t, generated.Register(tab, func(apis.Resolver) (apis.TypedConverter[Account], error) {
		return accountConverter{}, nil
	}))

	c, err := tab.Create(uref.Canonicalize(reflect.TypeFor[Account]()), noResolver{})
	require.NoError(t, err)
	require.Equal(t, accountConverter{}, converter.Typed[Account](c))

	err = generated.Register(tab, func(apis.Resolver) (apis.TypedConverter[Account], error) {
		return accountConverter{}, nil
	})
	require.ErrorIs(t, err, generated.ErrConflictingRegistration)
	require.Equal(t, []string{pkg + ".AccountConverter"}, tab.Names())
}

func TestRegisterGeneric_ReceivesArgs(t *testing.T) {
	tab := generated.NewTable()
	var got []reflect.Type
	require.NoError(t, generated.RegisterGeneric[Box[any]](tab, func(r apis.Resolver, args []reflect.Type) (apis.Converter, error) {
		got = args
		return converter.Primitive(args[0])
	}))

	_, err := tab.Create(uref.Canonicalize(reflect.TypeFor[Box[int32]]()), noResolver{})
	require.NoError(t, err)
	require.Equal(t, []reflect.Type{reflect.TypeFor[int32]()}, got)

	err = tab.Add(generated.Name(reflect.TypeFor[Box[int]]()), func(apis.Resolver) (apis.Converter, error) { return nil, nil })
	require.ErrorIs(t, err, generated.ErrConflictingRegistration)
}

func TestCreate_Missing(t *testing.T) {
	tab := generated.NewTable()
	boom := errors.New("boom")
	require.NoError(t, tab.Add(generated.Name(reflect.TypeFor[Account]()), func(apis.Resolver) (apis.Converter, error) {
		return nil, boom
	}))

	_, err := tab.Create(uref.Canonicalize(reflect.TypeFor[Account]()), noResolver{})
	require.ErrorIs(t, err, apis.ErrMissingGeneratedConverter)
	require.ErrorIs(t, err, boom, "cause is preserved")

	_, err = tab.Create(uref.Canonicalize(reflect.TypeFor[Box[int]]()), noResolver{})
	require.ErrorIs(t, err, apis.ErrMissingGeneratedConverter)

	nilTab := generated.NewTable()
	require.NoError(t, generated.Register(nilTab, func(apis.Resolver) (apis.TypedConverter[Account], error) {
		return nil, nil
	}))
	_, err = nilTab.Create(uref.Canonicalize(reflect.TypeFor[Account]()), noResolver{})
	require.ErrorIs(t, err, apis.ErrMissingGeneratedConverter)
}

func TestAdd_Invalid(t *testing.T) {
	tab := generated.NewTable()
	require.Error(t, tab.Add("", func(apis.Resolver) (apis.Converter, error) { return nil, nil }))
	require.Error(t, tab.Add("x", nil))
	require.Error(t, tab.AddGeneric("x", nil))
	require.Empty(t, tab.Names())
}
