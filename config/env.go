// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/netcfg/config/key"
)

// EnvOption configures the Env source.
type EnvOption func(*Env)

// EnvPrefix limits the Env source to environment variables
// whose name starts with prefix.
func EnvPrefix(prefix string) EnvOption {
	return func(e *Env) {
		e.prefix = prefix
	}
}

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	environ func() []string
	prefix  string
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process. Each variable is set under its name, split on dots
// like any other source key,
// with the origin "env variable <NAME>".
func FromEnv(opts ...EnvOption) Env {
	e := Env{
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || len(k) == 0 {
			continue
		}
		if !strings.HasPrefix(k, src.prefix) {
			continue
		}

		err := store.Set(key.Name(k), Value{
			Raw:    v,
			Origin: Origin{Description: "env variable " + k},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
