// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package netcfg

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UnknownHostError occurs when a host name resolves to no addresses.
type UnknownHostError struct {
	Host string
}

// Error implements the error interface.
func (e UnknownHostError) Error() string {
	return fmt.Sprintf("unknown host: '%s'", e.Host)
}

var loopback = netip.MustParseAddr("127.0.0.1")

// InetAddress returns the IP address configured at path. The value can
// either be a literal IP address, optionally enclosed in brackets, or a
// host name. Host names are resolved and the first address returned by
// the resolver is used. IPv4-mapped IPv6 addresses are returned as IPv4.
// An empty value is the IPv4 loopback address.
//
// A [config.BadValueError] is returned if the value can not be resolved,
// with the resolver error as its cause.
func (a *Accessor) InetAddress(ctx context.Context, cfg Config, path string) (netip.Addr, error) {
	spanCtx, span := otel.Tracer("netcfg").Start(ctx, "Accessor.InetAddress", trace.WithAttributes(
		attribute.String("config.path", path),
	))
	defer span.End()

	s, err := cfg.String(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return netip.Addr{}, err
	}

	addr, err := a.resolve(spanCtx, cfg, path, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return netip.Addr{}, err
	}
	span.SetAttributes(attribute.String("net.address", addr.String()))
	return addr, nil
}

func (a *Accessor) resolve(ctx context.Context, cfg Config, path, host string) (netip.Addr, error) {
	if len(host) == 0 {
		return loopback, nil
	}

	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		addr, err := netip.ParseAddr(host[1 : len(host)-1])
		if err != nil || !addr.Is6() {
			return netip.Addr{}, badValue(cfg, path, UnknownHostError{Host: host})
		}
		return addr.Unmap(), nil
	}

	addr, err := netip.ParseAddr(host)
	if err == nil {
		return addr.Unmap(), nil
	}

	a.log.DebugContext(ctx, "resolving host name", slog.String("config.path", path), slog.String("host", host))

	addrs, err := a.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		a.log.DebugContext(
			ctx,
			"failed to resolve host name",
			slog.String("config.path", path),
			slog.String("host", host),
			slog.Any("error", err),
		)
		return netip.Addr{}, badValue(cfg, path, err)
	}
	if len(addrs) == 0 {
		return netip.Addr{}, badValue(cfg, path, UnknownHostError{Host: host})
	}
	return addrs[0].Unmap(), nil
}
