// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for strongly typed keys in key value pairs.
package key

import (
	"fmt"
	"strings"
)

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys.
type Chain []Keyer

// Key implements the [Keyer] interface. The returned key is
// the dotted path expression for the chain.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range k {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, ".")
}

// Name represents a single key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// BadPathError occurs when a path expression can not be
// split into a non-empty [Chain] of non-empty names.
type BadPathError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e BadPathError) Error() string {
	return fmt.Sprintf("invalid path '%s': %s", e.Path, e.Reason)
}

// Parse splits a dotted path expression, e.g. "server.port", into a [Chain].
func Parse(path string) (Chain, error) {
	if len(path) == 0 {
		return nil, BadPathError{Path: path, Reason: "path is empty"}
	}

	parts := strings.Split(path, ".")
	chain := make(Chain, len(parts))
	for i, part := range parts {
		if len(part) == 0 {
			return nil, BadPathError{Path: path, Reason: "path has an empty element"}
		}
		chain[i] = Name(part)
	}
	return chain, nil
}
