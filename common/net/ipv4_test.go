package net_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindstorm38/netcrab/common/net"
)

func TestParseIPv4RoundTrip(t *testing.T) {
	ip, err := net.ParseIPv4("192.168.1.200")
	require.NoError(t, err)
	require.Equal(t, "192.168.1.200", ip.String())
}

func TestParseIPv4RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "1.2.3", "1.2.3.4.5", "1.2.3.256", "a.b.c.d"} {
		_, err := net.ParseIPv4(s)
		require.Errorf(t, err, "ParseIPv4(%q) unexpectedly succeeded", s)
	}
}

func TestMaskClearsHostBits(t *testing.T) {
	ip, err := net.ParseIPv4("192.168.1.200")
	require.NoError(t, err)

	masked := ip.Mask(24)
	want, err := net.ParseIPv4("192.168.1.0")
	require.NoError(t, err)
	require.Equal(t, want, masked)
}

func TestMaskBoundaries(t *testing.T) {
	ip, err := net.ParseIPv4("192.168.1.200")
	require.NoError(t, err)

	require.Equal(t, net.IPv4Zero, ip.Mask(0))
	require.Equal(t, ip, ip.Mask(32))
}

func TestIsMulticast(t *testing.T) {
	multi, err := net.ParseIPv4("224.0.0.1")
	require.NoError(t, err)
	require.True(t, multi.IsMulticast())

	unicast, err := net.ParseIPv4("10.0.0.1")
	require.NoError(t, err)
	require.False(t, unicast.IsMulticast())
}

func TestIsBroadcast(t *testing.T) {
	require.True(t, net.IPv4Broadcast.IsBroadcast())
	require.False(t, net.IPv4Zero.IsBroadcast())
}
