// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/z5labs/netcfg/config/key"
	"github.com/z5labs/netcfg/internal/try"

	"github.com/tidwall/gjson"
)

// Json represents a Source where its underlying format is JSON.
type Json struct {
	r io.Reader
}

// FromJson returns a source which will apply its config
// from JSON values parsed from the given io.Reader.
//
// Origins are named the same way as for [FromYaml], defaulting to "json".
func FromJson(r io.Reader) Json {
	return Json{r: r}
}

// InvalidJsonError occurs if the underlying io.Reader contains invalid JSON.
type InvalidJsonError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.cause
}

var (
	errMalformedJson       = errors.New("malformed json document")
	errJsonRootNotAnObject = errors.New("document root must be an object")
)

// Apply implements the Source interface.
func (src Json) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(b) {
		return InvalidJsonError{cause: errMalformedJson}
	}

	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return InvalidJsonError{cause: errJsonRootNotAnObject}
	}

	w := jsonWalker{
		store: store,
		name:  nameOf(src.r, "json"),
		doc:   b,
	}
	return w.walk(root, nil)
}

type jsonWalker struct {
	store Store
	name  string
	doc   []byte
}

func (w jsonWalker) walk(obj gjson.Result, chain key.Chain) error {
	var err error
	obj.ForEach(func(k, v gjson.Result) bool {
		next := append(chain[:len(chain):len(chain)], key.Name(k.String()))
		origin := Origin{Description: w.name, Line: w.line(v.Index)}

		if v.IsObject() {
			err = w.store.Set(next, Value{Raw: map[string]any{}, Origin: origin})
			if err != nil {
				return false
			}
			err = w.walk(v, next)
			return err == nil
		}

		err = w.store.Set(next, Value{Raw: jsonValue(v), Origin: origin})
		return err == nil
	})
	return err
}

// line maps a byte offset within the document to a 1-based line number.
func (w jsonWalker) line(offset int) int {
	if offset <= 0 || offset > len(w.doc) {
		return 1
	}
	return bytes.Count(w.doc[:offset], []byte{'\n'}) + 1
}

func jsonValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False, gjson.True:
		return v.Bool()
	case gjson.String:
		return v.Str
	case gjson.Number:
		if !strings.ContainsAny(v.Raw, ".eE") {
			n, err := strconv.ParseInt(v.Raw, 10, 64)
			if err == nil {
				return n
			}
		}
		return v.Num
	default:
		if v.IsArray() {
			l := make([]any, 0)
			v.ForEach(func(_, elem gjson.Result) bool {
				if elem.IsObject() {
					l = append(l, elem.Value())
					return true
				}
				l = append(l, jsonValue(elem))
				return true
			})
			return l
		}
		return v.Value()
	}
}
