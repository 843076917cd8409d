package net_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindstorm38/netcrab/common/net"
)

func TestZeroPrefixMatchesEverything(t *testing.T) {
	p := net.NewIPPrefix(net.IPv4Zero, 0)

	for _, s := range []string{"1.2.3.4", "255.255.255.255", "0.0.0.0"} {
		ip, err := net.ParseIPv4(s)
		require.NoError(t, err)
		require.Truef(t, p.Matches(ip), "/0 prefix did not match %s", s)
	}
}

func TestPrefixMatchesOnlyWithinRange(t *testing.T) {
	base, err := net.ParseIPv4("192.168.1.0")
	require.NoError(t, err)
	p := net.NewIPPrefix(base, 24)

	inside, err := net.ParseIPv4("192.168.1.200")
	require.NoError(t, err)
	outside, err := net.ParseIPv4("192.168.2.1")
	require.NoError(t, err)

	require.True(t, p.Matches(inside), "expected 192.168.1.200 to match 192.168.1.0/24")
	require.False(t, p.Matches(outside), "expected 192.168.2.1 to not match 192.168.1.0/24")
}

func TestNewIPPrefixMasksAddress(t *testing.T) {
	addr, err := net.ParseIPv4("192.168.1.200")
	require.NoError(t, err)
	p := net.NewIPPrefix(addr, 24)
	want, err := net.ParseIPv4("192.168.1.0")
	require.NoError(t, err)
	require.Equal(t, want, p.Address())
}
