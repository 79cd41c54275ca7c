// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"

	"github.com/z5labs/netcfg/config/key"

	"github.com/stretchr/testify/assert"
)

type myKeyer string

func (myKeyer) Key() string {
	return "my key"
}

func TestTree_Set(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if an unknown key.Keyer is used", func(t *testing.T) {
			store := make(tree)
			err := store.Set(myKeyer("hello"), Value{Raw: "world"})

			var ierr UnknownKeyerError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if an empty key.Chain is used", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Chain{}, Value{Raw: "world"})

			var ierr EmptyKeyChainError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if a field is set below a value which is not an object", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Name("hello"), Value{Raw: "world"})
			if !assert.Nil(t, err) {
				return
			}

			err = store.Set(key.Chain{key.Name("hello"), key.Name("bob")}, Value{Raw: "world"})

			var ierr UnexpectedKeyValueTypeError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})
	})

	t.Run("will keep an existing object", func(t *testing.T) {
		t.Run("if the same object is declared again", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Chain{key.Name("server"), key.Name("port")}, Value{Raw: 4000})
			if !assert.Nil(t, err) {
				return
			}

			err = store.Set(key.Name("server"), Value{Raw: map[string]any{}})
			if !assert.Nil(t, err) {
				return
			}

			server, ok := store["server"].Raw.(tree)
			if !assert.True(t, ok) {
				return
			}
			if !assert.Equal(t, 4000, server["port"].Raw) {
				return
			}
		})
	})

	t.Run("will replace a value with an object", func(t *testing.T) {
		t.Run("if an object is declared over a scalar", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Name("server"), Value{Raw: "localhost"})
			if !assert.Nil(t, err) {
				return
			}

			origin := Origin{Description: "override.yaml", Line: 1}
			err = store.Set(key.Name("server"), Value{Raw: map[string]any{}, Origin: origin})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.IsType(t, tree{}, store["server"].Raw) {
				return
			}
			if !assert.Equal(t, origin, store["server"].Origin) {
				return
			}
		})
	})
}

func TestTree_Set_dottedNames(t *testing.T) {
	t.Run("will split the name into nested objects", func(t *testing.T) {
		testCases := []struct {
			Name string
			Key  key.Keyer
		}{
			{Name: "if a key.Name contains dots", Key: key.Name("server.port")},
			{Name: "if an element of a key.Chain contains dots", Key: key.Chain{key.Name("server.port")}},
			{Name: "if a key.Chain is nested inside a key.Chain", Key: key.Chain{key.Chain{key.Name("server")}, key.Name("port")}},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				store := make(tree)
				err := store.Set(testCase.Key, Value{Raw: 4000})
				if !assert.Nil(t, err) {
					return
				}

				expected := map[string]any{
					"server": map[string]any{
						"port": 4000,
					},
				}
				if !assert.Equal(t, expected, store.plain()) {
					return
				}
			})
		}
	})

	t.Run("will keep the name whole", func(t *testing.T) {
		t.Run("if the name has an empty element", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Name("server..port"), Value{Raw: 4000})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Contains(t, store, "server..port") {
				return
			}
		})
	})

	t.Run("will return an UnexpectedKeyValueTypeError", func(t *testing.T) {
		t.Run("if a dotted name sets a field below a value which is not an object", func(t *testing.T) {
			store := make(tree)
			err := store.Set(key.Name("server"), Value{Raw: "localhost"})
			if !assert.Nil(t, err) {
				return
			}

			err = store.Set(key.Name("server.port"), Value{Raw: 4000})

			var ierr UnexpectedKeyValueTypeError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.Equal(t, "server", ierr.Key) {
				return
			}
		})
	})
}

func TestTree_plain(t *testing.T) {
	t.Run("will strip origins from nested values", func(t *testing.T) {
		store := make(tree)
		err := store.Set(key.Chain{key.Name("server"), key.Name("port")}, Value{Raw: 4000, Origin: Origin{Description: "map"}})
		if !assert.Nil(t, err) {
			return
		}

		expected := map[string]any{
			"server": map[string]any{
				"port": 4000,
			},
		}
		if !assert.Equal(t, expected, store.plain()) {
			return
		}
	})
}
