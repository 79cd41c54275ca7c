// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/z5labs/netcfg/config/key"

	"github.com/go-viper/mapstructure/v2"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, Value) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Manager is a read-only view over the values applied by its sources.
type Manager struct {
	store tree
}

// Read applies the given sources, in order, to a new Manager.
// Subsequent sources override previous sources.
func Read(srcs ...Source) (*Manager, error) {
	store := make(tree)
	for _, src := range srcs {
		err := src.Apply(store)
		if err != nil {
			return nil, err
		}
	}
	return &Manager{store: store}, nil
}

// Apply implements the Source interface.
func (m *Manager) Apply(store Store) error {
	return m.store.apply(store, nil)
}

// Get returns the value found at the given path expression.
//
// A [MissingError] is returned if the path has no value or an explicit
// null value. A [WrongTypeError] is returned if the path goes through
// a value which is not an object.
func (m *Manager) Get(path string) (Value, error) {
	chain, err := key.Parse(path)
	if err != nil {
		return Value{}, err
	}

	cur := m.store
	for i, k := range chain {
		v, ok := cur[k.Key()]
		if !ok {
			return Value{}, MissingError{Path: path}
		}
		if v.Raw == nil {
			return Value{}, MissingError{Path: path, Null: true, Origin: v.Origin}
		}
		if i == len(chain)-1 {
			return v, nil
		}

		sub, ok := v.Raw.(tree)
		if !ok {
			return Value{}, WrongTypeError{
				Path:     chain[:i+1].Key(),
				Origin:   v.Origin,
				Expected: "object",
				Actual:   typeName(v.Raw),
			}
		}
		cur = sub
	}
	return Value{}, MissingError{Path: path}
}

// Has reports whether a non-null value exists at path.
func (m *Manager) Has(path string) bool {
	_, err := m.Get(path)
	return err == nil
}

// Origin returns the origin of the value found at path.
func (m *Manager) Origin(path string) (Origin, error) {
	v, err := m.Get(path)
	if err != nil {
		return Origin{}, err
	}
	return v.Origin, nil
}

// String returns the value at path as a string. Numbers and
// booleans are converted to their string form.
func (m *Manager) String(path string) (string, error) {
	v, err := m.Get(path)
	if err != nil {
		return "", err
	}

	switch x := v.Raw.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", WrongTypeError{
			Path:     path,
			Origin:   v.Origin,
			Expected: "string",
			Actual:   typeName(v.Raw),
		}
	}
}

// Int returns the value at path as an int. Floats, and strings holding
// a number, are converted with any fractional part truncated toward zero,
// e.g. 4000.5 becomes 4000. A [BadValueError] is returned for numbers
// which do not fit into an int.
func (m *Manager) Int(path string) (int, error) {
	v, err := m.Get(path)
	if err != nil {
		return 0, err
	}

	wrongType := WrongTypeError{
		Path:     path,
		Origin:   v.Origin,
		Expected: "number",
		Actual:   typeName(v.Raw),
	}

	rv := reflect.ValueOf(v.Raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, BadValue(v.Origin, path, &strconv.NumError{Func: "Int", Num: strconv.FormatInt(n, 10), Err: strconv.ErrRange})
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, BadValue(v.Origin, path, &strconv.NumError{Func: "Int", Num: strconv.FormatUint(n, 10), Err: strconv.ErrRange})
		}
		return int(n), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt(v.Origin, path, rv.Float())
	case reflect.String:
		text := strings.TrimSpace(rv.String())
		n, err := strconv.ParseInt(text, 10, 0)
		if errors.Is(err, strconv.ErrRange) {
			return 0, BadValue(v.Origin, path, err)
		}
		if err == nil {
			return int(n), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, wrongType
		}
		return floatToInt(v.Origin, path, f)
	default:
		return 0, wrongType
	}
}

func floatToInt(origin Origin, path string, f float64) (int, error) {
	f = math.Trunc(f)
	if math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, BadValue(origin, path, &strconv.NumError{Func: "Int", Num: strconv.FormatFloat(f, 'f', -1, 64), Err: strconv.ErrRange})
	}
	return int(f), nil
}

// Unmarshal decodes every value into v using the "config" struct tag.
func (m *Manager) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(m.store.plain())
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when attempting to unmarshal a config
// value to a struct field whose type does not match the config
// value type, up to, coercion.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from.Type(), e.to.Type(), e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Int:
			return time.Duration(int64(data.(int))), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
