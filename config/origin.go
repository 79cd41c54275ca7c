// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "fmt"

// Origin describes where a config value was defined.
type Origin struct {
	// Description names the source of the value, e.g. a file name.
	Description string

	// Line is the 1-based line number within the source or 0, if unknown.
	Line int
}

// String renders the origin as "description: line".
func (o Origin) String() string {
	if o.Line <= 0 {
		return o.Description
	}
	return fmt.Sprintf("%s: %d", o.Description, o.Line)
}

// Value is a single config value along with its origin.
type Value struct {
	Raw    any
	Origin Origin
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any:
		return "list"
	case tree, map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
