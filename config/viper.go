// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "github.com/spf13/viper"

// Viper represents a Source backed by an already configured viper instance.
type Viper struct {
	v *viper.Viper
}

// FromViper returns a Source which will apply the settings
// of v, including its defaults, overrides and bound env variables.
//
// Viper does not track where individual settings came from so every
// value has the origin "viper", or "viper: <config file>" if v read
// a config file.
func FromViper(v *viper.Viper) Viper {
	return Viper{v: v}
}

// Apply implements the Source interface.
func (src Viper) Apply(store Store) error {
	origin := Origin{Description: "viper"}
	if f := src.v.ConfigFileUsed(); len(f) > 0 {
		origin.Description = "viper: " + f
	}
	return walkMap(src.v.AllSettings(), store, nil, origin)
}
