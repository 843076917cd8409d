package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	nerrors "github.com/mindstorm38/netcrab/common/errors"
	"github.com/mindstorm38/netcrab/common/log"
)

func TestBaseChainsInnerError(t *testing.T) {
	inner := errors.New("socket closed")
	err := nerrors.New("failed to send frame").Base(inner)

	require.Equal(t, inner, nerrors.Cause(err))
}

func TestSeverityPropagatesFromInner(t *testing.T) {
	inner := nerrors.New("arp cache miss").AtWarning()
	outer := nerrors.New("send_ipv4 failed").Base(inner).AtDebug()

	require.Equal(t, log.SeverityWarning, outer.Severity())
}

func TestErrorStringIncludesInner(t *testing.T) {
	err := nerrors.New("outer").Base(nerrors.New("inner"))
	got := err.Error()
	require.NotEmpty(t, got)
	require.Contains(t, got, "outer")
	require.Contains(t, got, "inner")
}
