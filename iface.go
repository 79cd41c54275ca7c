// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package netcfg

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NoInterfaceError occurs when a config value neither names a network
// interface nor resolves to an address bound to one.
type NoInterfaceError struct {
	Value string
}

// Error implements the error interface.
func (e NoInterfaceError) Error() string {
	return fmt.Sprintf("No network interface for value '%s'", e.Value)
}

// NetworkInterface returns the network interface configured at path.
// The value is first matched against the interface names. If no name
// matches, the value is resolved like [Accessor.InetAddress] and the
// interface the address is bound to is returned.
//
// A [config.BadValueError] is returned if listing the interfaces fails,
// if the value is not a name and can not be resolved, in which case the
// error returned by resolving the address is returned as is, or if no
// interface is found, in which case its cause is a [NoInterfaceError].
func (a *Accessor) NetworkInterface(ctx context.Context, cfg Config, path string) (*net.Interface, error) {
	spanCtx, span := otel.Tracer("netcfg").Start(ctx, "Accessor.NetworkInterface", trace.WithAttributes(
		attribute.String("config.path", path),
	))
	defer span.End()

	s, err := cfg.String(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	iface, err := a.networkInterface(spanCtx, cfg, path, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("net.interface.name", iface.Name))
	return iface, nil
}

func (a *Accessor) networkInterface(ctx context.Context, cfg Config, path, value string) (*net.Interface, error) {
	ifaces, err := a.ifaces.Interfaces()
	if err != nil {
		a.log.ErrorContext(ctx, "failed to list network interfaces", slog.Any("error", err))
		return nil, badValue(cfg, path, err)
	}

	for i := range ifaces {
		if ifaces[i].Name == value {
			return &ifaces[i], nil
		}
	}

	a.log.DebugContext(
		ctx,
		"no network interface with name, looking up by address",
		slog.String("config.path", path),
		slog.String("value", value),
	)

	addr, err := a.resolve(ctx, cfg, path, value)
	if err != nil {
		return nil, err
	}
	addr = addr.WithZone("")

	for i := range ifaces {
		addrs, err := a.ifaces.Addrs(ifaces[i])
		if err != nil {
			a.log.ErrorContext(
				ctx,
				"failed to list network interface addresses",
				slog.String("net.interface.name", ifaces[i].Name),
				slog.Any("error", err),
			)
			return nil, badValue(cfg, path, err)
		}
		for _, ifaddr := range addrs {
			ip, ok := addrOf(ifaddr)
			if ok && ip == addr {
				return &ifaces[i], nil
			}
		}
	}
	return nil, badValue(cfg, path, NoInterfaceError{Value: value})
}

func addrOf(a net.Addr) (netip.Addr, bool) {
	var ip net.IP
	switch x := a.(type) {
	case *net.IPNet:
		ip = x.IP
	case *net.IPAddr:
		ip = x.IP
	default:
		return netip.Addr{}, false
	}

	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
