// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package netcfg provides typed accessors which translate configuration
// values into validated network primitives.
//
// Given the config
//
//	server:
//	  address: 127.0.0.1
//	  network-interface: lo
//	  port: 4000
//
// the values can be read with
//
//	addr, err := netcfg.InetAddress(ctx, m, "server.address")
//	iface, err := netcfg.NetworkInterface(ctx, m, "server.network-interface")
//	port, err := netcfg.Port(m, "server.port")
//
// Every accessor fails with one of the error kinds of the config package:
// [config.MissingError] if the path has no value, [config.WrongTypeError] if
// the value is not a string, or an integer for ports, and
// [config.BadValueError] if the value can not be translated. A BadValueError
// carries the origin of the value and, where there is one, the lower level
// error as its cause.
package netcfg
