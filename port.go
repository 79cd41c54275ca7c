// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package netcfg

import (
	"fmt"
	"math"
)

// PortRangeError occurs when a port number is outside of [0, 65535].
type PortRangeError struct {
	Port int
}

// Error implements the error interface.
func (e PortRangeError) Error() string {
	return fmt.Sprintf("port out of range: %d", e.Port)
}

// Port returns the TCP/UDP port number configured at path. The value
// is returned unchanged if it is within [0, 65535]. Otherwise, a
// [config.BadValueError] is returned with a [PortRangeError] as its cause.
func Port(cfg Config, path string) (int, error) {
	n, err := cfg.Int(path)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint16 {
		return 0, badValue(cfg, path, PortRangeError{Port: n})
	}
	return n, nil
}
