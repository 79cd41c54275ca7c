// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"

	"github.com/z5labs/netcfg/config/key"
)

// UnknownKeyerError
type UnknownKeyerError struct {
	key key.Keyer
}

// Error implements the error interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("config source tried setting config value with unknown key.Keyer: %s", e.key.Key())
}

// tree is the in memory Store backing a Manager. Objects are
// stored as a Value whose Raw field is itself a tree, so they
// keep an origin just like any other value.
type tree map[string]Value

// Set implements the Store interface. A Value whose Raw field is a
// map[string]any declares an object at k. An existing object at k is
// kept as is, so sources can declare objects before setting their fields.
//
// Names containing dots are split into their elements, so the source key
// "server.port" and the nested object server: {port: ...} set the same value.
func (t tree) Set(k key.Keyer, v Value) error {
	chain, err := expand(k)
	if err != nil {
		return err
	}
	return t.setChain(chain, v)
}

// expand flattens k into a chain of single element names. A name which
// is not a valid path expression, e.g. "a..b", is kept whole.
func expand(k key.Keyer) (key.Chain, error) {
	switch x := k.(type) {
	case key.Name:
		chain, err := key.Parse(string(x))
		if err != nil {
			return key.Chain{x}, nil
		}
		return chain, nil
	case key.Chain:
		var chain key.Chain
		for _, sub := range x {
			c, err := expand(sub)
			if err != nil {
				return nil, err
			}
			chain = append(chain, c...)
		}
		return chain, nil
	default:
		return nil, UnknownKeyerError{key: k}
	}
}

func (t tree) setName(name string, v Value) {
	if _, ok := v.Raw.(map[string]any); !ok {
		t[name] = v
		return
	}

	old, ok := t[name]
	if ok {
		if _, isTree := old.Raw.(tree); isTree {
			return
		}
	}
	t[name] = Value{Raw: make(tree), Origin: v.Origin}
}

// EmptyKeyChainError
type EmptyKeyChainError struct {
	Value any
}

// Error implements the error interface.
func (e EmptyKeyChainError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key chain: %v", e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when
// a user tries setting a key to a different type than it
// had previously been set to.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

func (t tree) setChain(chain key.Chain, v Value) error {
	if len(chain) == 0 {
		return EmptyKeyChainError{Value: v.Raw}
	}

	root := chain[0]
	if len(chain) == 1 {
		t.setName(root.Key(), v)
		return nil
	}

	old, ok := t[root.Key()]
	if !ok {
		old = Value{Raw: make(tree), Origin: v.Origin}
		t[root.Key()] = old
	}

	sub, ok := old.Raw.(tree)
	if !ok {
		return UnexpectedKeyValueTypeError{
			Key:          root.Key(),
			ExpectedType: "object",
		}
	}
	return sub.setChain(chain[1:], v)
}

// apply re-sets every value of t on store, objects first.
func (t tree) apply(store Store, chain key.Chain) error {
	for name, v := range t {
		next := append(chain[:len(chain):len(chain)], key.Name(name))

		sub, ok := v.Raw.(tree)
		if !ok {
			err := store.Set(next, v)
			if err != nil {
				return err
			}
			continue
		}

		err := store.Set(next, Value{Raw: map[string]any{}, Origin: v.Origin})
		if err != nil {
			return err
		}
		err = sub.apply(store, next)
		if err != nil {
			return err
		}
	}
	return nil
}

// plain strips origins, leaving nested map[string]any values.
func (t tree) plain() map[string]any {
	m := make(map[string]any, len(t))
	for name, v := range t {
		if sub, ok := v.Raw.(tree); ok {
			m[name] = sub.plain()
			continue
		}
		m[name] = v.Raw
	}
	return m
}
