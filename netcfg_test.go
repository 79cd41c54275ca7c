// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package netcfg

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"testing"

	"github.com/z5labs/netcfg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(context.Context, string, string) ([]netip.Addr, error)

func (f resolverFunc) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	return f(ctx, network, host)
}

func staticResolver(hosts map[string][]netip.Addr) resolverFunc {
	return func(_ context.Context, _ string, host string) ([]netip.Addr, error) {
		addrs, ok := hosts[host]
		if !ok {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		}
		return addrs, nil
	}
}

type staticInterfaces struct {
	ifaces   []net.Interface
	addrs    map[string][]net.Addr
	err      error
	addrsErr error
}

func (s staticInterfaces) Interfaces() ([]net.Interface, error) {
	return s.ifaces, s.err
}

func (s staticInterfaces) Addrs(iface net.Interface) ([]net.Addr, error) {
	if s.addrsErr != nil {
		return nil, s.addrsErr
	}
	return s.addrs[iface.Name], nil
}

func ipNet(s string) *net.IPNet {
	ip, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func readYaml(t *testing.T, doc string) *config.Manager {
	t.Helper()

	m, err := config.Read(config.FromYaml(strings.NewReader(doc)))
	require.Nil(t, err)
	return m
}

func TestAccessor_dottedKeys(t *testing.T) {
	t.Run("will read the values", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Source config.Source
		}{
			{
				Name: "if the source is a Map with dotted keys",
				Source: config.Map{
					"server.address":           "127.0.0.1",
					"server.network-interface": "lo",
					"server.port":              4000,
				},
			},
			{
				Name:   "if the source is YAML with dotted keys",
				Source: config.FromYaml(strings.NewReader("server.address: 127.0.0.1\nserver.network-interface: lo\nserver.port: 4000\n")),
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				m, err := config.Read(testCase.Source)
				if !assert.Nil(t, err) {
					return
				}

				a := New(WithInterfaceTable(staticInterfaces{
					ifaces: []net.Interface{{Index: 1, Name: "lo", Flags: net.FlagUp | net.FlagLoopback}},
				}))

				addr, err := a.InetAddress(context.Background(), m, "server.address")
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Equal(t, netip.MustParseAddr("127.0.0.1"), addr) {
					return
				}

				iface, err := a.NetworkInterface(context.Background(), m, "server.network-interface")
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Equal(t, "lo", iface.Name) {
					return
				}

				port, err := Port(m, "server.port")
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Equal(t, 4000, port) {
					return
				}
			})
		}
	})
}
