// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "github.com/z5labs/netcfg/config/key"

// Map is an ordinary map[string]any but implements the Source interface.
// Every value applied from a Map has the origin "map".
type Map map[string]any

// Apply implements the Source interface. It recursively walks the underlying
// map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil, Origin{Description: "map"})
}

func walkMap(m map[string]any, store Store, chain key.Chain, origin Origin) error {
	for k, v := range m {
		next := append(chain[:len(chain):len(chain)], key.Name(k))

		x, ok := v.(map[string]any)
		if !ok {
			err := store.Set(next, Value{Raw: normalize(v), Origin: origin})
			if err != nil {
				return err
			}
			continue
		}

		err := store.Set(next, Value{Raw: map[string]any{}, Origin: origin})
		if err != nil {
			return err
		}
		err = walkMap(x, store, next, origin)
		if err != nil {
			return err
		}
	}
	return nil
}

// normalize converts typed slices, e.g. []string, into []any so
// lists look the same regardless of which source they came from.
func normalize(v any) any {
	switch x := v.(type) {
	case []string:
		l := make([]any, len(x))
		for i := range x {
			l[i] = x[i]
		}
		return l
	case []int:
		l := make([]any, len(x))
		for i := range x {
			l[i] = x[i]
		}
		return l
	default:
		return v
	}
}
