// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package netcfg

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/netip"

	"github.com/z5labs/netcfg/config"
	"github.com/z5labs/netcfg/internal/otelslog"
)

// Config is the read-only view of a hierarchical configuration the
// accessors need. It is implemented by [*config.Manager].
//
// String and Int must return [config.MissingError] and [config.WrongTypeError]
// for absent and uncoercible values. The accessors return those errors unmodified.
type Config interface {
	String(path string) (string, error)
	Int(path string) (int, error)
	Origin(path string) (config.Origin, error)
}

// Resolver resolves host names into IP addresses.
// It is implemented by [*net.Resolver].
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// InterfaceTable lists the network interfaces of the local system.
type InterfaceTable interface {
	Interfaces() ([]net.Interface, error)
	Addrs(net.Interface) ([]net.Addr, error)
}

type systemInterfaces struct{}

func (systemInterfaces) Interfaces() ([]net.Interface, error) {
	return net.Interfaces()
}

func (systemInterfaces) Addrs(iface net.Interface) ([]net.Addr, error) {
	return iface.Addrs()
}

type accessorOptions struct {
	logHandler slog.Handler
	resolver   Resolver
	ifaces     InterfaceTable
}

// Option configures an [Accessor].
type Option func(*accessorOptions)

// LogHandler configures the slog.Handler used by the Accessor.
// By default, nothing is logged.
func LogHandler(h slog.Handler) Option {
	return func(ao *accessorOptions) {
		ao.logHandler = h
	}
}

// WithResolver overrides the host name resolver, which
// defaults to [net.DefaultResolver].
func WithResolver(r Resolver) Option {
	return func(ao *accessorOptions) {
		ao.resolver = r
	}
}

// WithInterfaceTable overrides how network interfaces are listed,
// which defaults to [net.Interfaces].
func WithInterfaceTable(t InterfaceTable) Option {
	return func(ao *accessorOptions) {
		ao.ifaces = t
	}
}

// Accessor translates config values into network primitives.
// An Accessor holds no mutable state and is safe for concurrent use.
type Accessor struct {
	log      *slog.Logger
	resolver Resolver
	ifaces   InterfaceTable
}

// New returns an Accessor configured by the given options.
func New(opts ...Option) *Accessor {
	ao := &accessorOptions{
		logHandler: slog.NewTextHandler(io.Discard, nil),
		resolver:   net.DefaultResolver,
		ifaces:     systemInterfaces{},
	}
	for _, opt := range opts {
		opt(ao)
	}
	return &Accessor{
		log:      otelslog.New(ao.logHandler),
		resolver: ao.resolver,
		ifaces:   ao.ifaces,
	}
}

var defaultAccessor = New()

// InetAddress returns the IP address configured at path using the
// system resolver. See [Accessor.InetAddress].
func InetAddress(ctx context.Context, cfg Config, path string) (netip.Addr, error) {
	return defaultAccessor.InetAddress(ctx, cfg, path)
}

// NetworkInterface returns the local network interface configured at
// path. See [Accessor.NetworkInterface].
func NetworkInterface(ctx context.Context, cfg Config, path string) (*net.Interface, error) {
	return defaultAccessor.NetworkInterface(ctx, cfg, path)
}

func badValue(cfg Config, path string, cause error) config.BadValueError {
	// The value was just read successfully so its origin is known.
	origin, _ := cfg.Origin(path)
	return config.BadValue(origin, path, cause)
}
