// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Apply(t *testing.T) {
	environ := func() []string {
		return []string{
			"SERVER_PORT=4000",
			"SERVER_ADDRESS=127.0.0.1",
			"HOME=/root",
			"MALFORMED",
			"EMPTY=",
		}
	}

	t.Run("will set every environment variable", func(t *testing.T) {
		t.Run("if no prefix is configured", func(t *testing.T) {
			src := FromEnv()
			src.environ = environ

			m, err := Read(src)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Len(t, m.store, 4) {
				return
			}

			home, err := m.String("HOME")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "/root", home) {
				return
			}
		})
	})

	t.Run("will only set environment variables with the prefix", func(t *testing.T) {
		t.Run("if a prefix is configured", func(t *testing.T) {
			src := FromEnv(EnvPrefix("SERVER_"))
			src.environ = environ

			m, err := Read(src)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Len(t, m.store, 2) {
				return
			}

			port, err := m.Int("SERVER_PORT")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 4000, port) {
				return
			}

			origin, err := m.Origin("SERVER_PORT")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "env variable SERVER_PORT", origin.String()) {
				return
			}
		})
	})
}
