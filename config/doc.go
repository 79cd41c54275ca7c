// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides a hierarchical configuration store which remembers
// where each of its values came from.
//
// A [Manager] is built by applying one or more [Source]s, where later sources
// override earlier ones:
//
//	m, err := config.Read(
//	    config.FromYaml(config.NewFileReader(os.DirFS("."), "server.yaml")),
//	    config.FromEnv(config.EnvPrefix("SERVER_")),
//	)
//
// Values are then looked up by dotted path expressions, e.g. "server.port".
// Every lookup fails with one of three error kinds:
//
//   - [MissingError] if nothing, or an explicit null, is found at the path.
//   - [WrongTypeError] if the value can not be coerced into the requested type.
//   - [BadValueError] if the value has the right type but an invalid value.
//
// WrongTypeError and BadValueError carry the [Origin] of the offending value,
// e.g. "server.yaml: 3", so error messages can point back at the file and
// line which needs fixing.
package config
