package ipaddr

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/ipshow/pkg/util"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParse_Blank(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", " \t\r\n  \n"} {
		got, err := Parse(input)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestParse_LoopbackFragment(t *testing.T) {
	input := "1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000\n" +
		"    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00\n"

	got, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, got, 1)

	lo := got[0]
	assert.Equal(t, 1, lo.Base.Index)
	assert.Equal(t, "lo", lo.Name())
	assert.Equal(t, []Flag{FlagLoopback, FlagUp, FlagLowerUp}, lo.Base.Flags)
	assert.Equal(t, 65536, lo.Base.MTU)
	assert.Equal(t, "loopback", lo.Physical.LinkType)
	assert.Equal(t, "00:00:00:00:00:00", lo.Physical.MAC)
	assert.Equal(t, "00:00:00:00:00:00", lo.Physical.BroadcastMAC)
	assert.Empty(t, lo.IPv4)
	assert.Empty(t, lo.IPv6)
	assert.Empty(t, lo.UnknownLines)
}

func TestParse_InetWithLifetime(t *testing.T) {
	input := `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
`
	got, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].IPv4, 1)

	v4 := got[0].IPv4[0]
	assert.Equal(t, "127.0.0.1", v4.Address)
	assert.Equal(t, 8, v4.Prefix)
	assert.Equal(t, IPv4ScopeHost, v4.Scope)
	require.NotNil(t, v4.Lifetime)
	assert.Equal(t, "forever", v4.Lifetime.Valid)
	assert.Equal(t, "forever", v4.Lifetime.Preferred)
}

func TestParse_UnknownQdiscDoesNotAbort(t *testing.T) {
	input := "2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc weirddisc state UP group default qlen 1000\n" +
		"    link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff\n"

	got, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, got, 1)

	base := got[0].Base
	assert.Empty(t, base.Qdisc)
	require.Len(t, base.UnknownParams, 1)
	assert.Equal(t, "weirddisc", base.UnknownParams[0].Token)
	assert.Equal(t, StateUp, base.State)
	assert.Equal(t, "52:54:00:12:34:56", got[0].Physical.MAC)
}

func TestParse_SequenceErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		reason   string
	}{
		{
			name:     "lifetime before any address",
			input:    "2: eth0: <UP> mtu 1500\n    valid_lft forever preferred_lft forever\n",
			wantLine: 1,
			reason:   "lifetime line without an address",
		},
		{
			name:     "lifetime after header reset",
			input:    "1: lo: <UP>\n inet 127.0.0.1/8 scope host lo\n2: eth0: <UP>\n valid_lft forever\n",
			wantLine: 3,
			reason:   "lifetime line without an address",
		},
		{
			name:     "inet before header",
			input:    "\n    inet 10.0.0.1/24 scope global eth0\n1: lo: <UP>\n",
			wantLine: 0,
			reason:   "line before first interface header",
		},
		{
			name:     "unknown line before header",
			input:    "garbage\n1: lo: <UP>\n",
			wantLine: 0,
			reason:   "line before first interface header",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, util.ErrStructure))

			var seqErr *util.SequenceError
			require.True(t, errors.As(err, &seqErr))
			assert.Equal(t, tt.wantLine, seqErr.Line)
			assert.Equal(t, tt.reason, seqErr.Reason)
		})
	}
}

func TestParse_LinkBeforeHeaderFixture(t *testing.T) {
	_, err := Parse(readFixture(t, "before_header.txt"))
	assert.ErrorIs(t, err, util.ErrStructure)
}

func TestParse_LifetimeFollowsMostRecentFamily(t *testing.T) {
	input := `2: eth0: <UP>
    inet 10.0.0.5/24 scope global eth0
    inet6 fe80::1/64 scope link
       valid_lft forever preferred_lft forever
    inet 10.0.0.6/24 scope global secondary eth0
       valid_lft 100sec preferred_lft 50sec
`
	got, err := Parse(input)
	require.NoError(t, err)
	eth0 := got[0]
	require.Len(t, eth0.IPv4, 2)
	require.Len(t, eth0.IPv6, 1)

	assert.Nil(t, eth0.IPv4[0].Lifetime)
	require.NotNil(t, eth0.IPv6[0].Lifetime)
	assert.Equal(t, "forever", eth0.IPv6[0].Lifetime.Valid)
	require.NotNil(t, eth0.IPv4[1].Lifetime)
	assert.Equal(t, "100sec", eth0.IPv4[1].Lifetime.Valid)
	assert.Equal(t, "50sec", eth0.IPv4[1].Lifetime.Preferred)
}

func TestParse_DuplicateLinesBecomeUnknown(t *testing.T) {
	input := `2: eth0: <UP>
    link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff
    link/ether 52:54:00:aa:bb:cc brd ff:ff:ff:ff:ff:ff
    inet 10.0.0.5/24 scope global eth0
       valid_lft forever preferred_lft forever
       valid_lft 1sec preferred_lft 1sec
`
	got, err := Parse(input)
	require.NoError(t, err)
	eth0 := got[0]

	assert.Equal(t, "52:54:00:12:34:56", eth0.Physical.MAC)
	assert.Equal(t, "forever", eth0.IPv4[0].Lifetime.Valid)
	assert.Equal(t, []UnknownLine{
		{Index: 2, Text: "link/ether 52:54:00:aa:bb:cc brd ff:ff:ff:ff:ff:ff"},
		{Index: 5, Text: "valid_lft 1sec preferred_lft 1sec"},
	}, eth0.UnknownLines)
}

func TestParse_Workstation(t *testing.T) {
	got, err := Parse(readFixture(t, "workstation.txt"))
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, iface := range got {
		names[i] = iface.Name()
		assert.Equal(t, i+1, iface.Base.Index)
	}
	assert.Equal(t, []string{"lo", "enp3s0", "wlp2s0", "docker0", "veth1a2b3c@if4", "wg0"}, names)

	t.Run("lo", func(t *testing.T) {
		lo := got[0]
		require.Len(t, lo.IPv6, 1)
		v6 := lo.IPv6[0]
		assert.Equal(t, "::1", v6.Address)
		assert.Equal(t, 128, v6.Prefix)
		assert.True(t, v6.HasScope(IPv6ScopeHost))
		assert.True(t, v6.NoPrefixRoute)
		require.NotNil(t, v6.Lifetime)
		assert.Equal(t, "forever", v6.Lifetime.Preferred)
		assert.Empty(t, lo.Diagnostics())
	})

	t.Run("enp3s0", func(t *testing.T) {
		eth := got[1]
		assert.Equal(t, QdiscFQCodel, eth.Base.Qdisc)
		assert.Equal(t, StateUp, eth.Base.State)
		require.NotNil(t, eth.Base.Qlen)
		assert.Equal(t, 1000, *eth.Base.Qlen)
		assert.Equal(t, []UnknownLine{{Index: 8, Text: "altname enx525400123456"}}, eth.UnknownLines)

		require.Len(t, eth.IPv4, 2)
		assert.Equal(t, "192.168.1.23/24", eth.IPv4[0].CIDR())
		assert.Equal(t, "192.168.1.255", eth.IPv4[0].Broadcast)
		assert.Equal(t, "enp3s0", eth.IPv4[0].Device)
		assert.Equal(t, "86118sec", eth.IPv4[0].Lifetime.Valid)
		assert.Equal(t, "10.10.0.5/16", eth.IPv4[1].CIDR())
		assert.Equal(t, []UnknownParam{{Token: "secondary", Reason: "unrecognized inet token"}}, eth.IPv4[1].UnknownParams)

		require.Len(t, eth.IPv6, 2)
		assert.Equal(t, []IPv6Scope{IPv6ScopeGlobal, IPv6ScopeDynamic, IPv6ScopeMngTmpAddr}, eth.IPv6[0].Scopes)
		assert.Equal(t, "86386sec", eth.IPv6[0].Lifetime.Preferred)
		assert.Equal(t, []IPv6Scope{IPv6ScopeLink}, eth.IPv6[1].Scopes)
		assert.Empty(t, eth.IPv6[1].GenerationFlags)
	})

	t.Run("wlp2s0", func(t *testing.T) {
		wl := got[2]
		assert.True(t, wl.Base.HasFlag(FlagNoCarrier))
		assert.Equal(t, StateDown, wl.Base.State)
		assert.Equal(t, "3c:a9:f4:10:20:30", wl.Physical.MAC)
		assert.Len(t, wl.Physical.UnknownParams, 2)
		assert.Empty(t, wl.IPv4)
	})

	t.Run("docker0", func(t *testing.T) {
		d := got[3]
		assert.Nil(t, d.Base.Qlen)
		require.Len(t, d.IPv4, 1)
		assert.Equal(t, "172.17.0.1/16", d.IPv4[0].CIDR())
		assert.Equal(t, "docker0", d.IPv4[0].Device)
	})

	t.Run("veth", func(t *testing.T) {
		v := got[4]
		assert.Equal(t, []UnknownParam{
			{Token: "master", Reason: "unrecognized header token"},
			{Token: "docker0", Reason: "unrecognized header token"},
		}, v.Base.UnknownParams)
		assert.Equal(t, "ether", v.Physical.LinkType)
		require.Len(t, v.IPv6, 1)
		assert.Equal(t, "fe80::9c1f:2aff:fe3b:4c5d/64", v.IPv6[0].CIDR())
	})

	t.Run("wg0", func(t *testing.T) {
		wg := got[5]
		assert.Equal(t, "none", wg.Physical.LinkType)
		assert.Empty(t, wg.Physical.MAC)
		require.Len(t, wg.IPv4, 1)
		assert.Equal(t, "10.8.0.2", wg.IPv4[0].Address)
		assert.Equal(t, "10.8.0.1", wg.IPv4[0].Peer)
		assert.Equal(t, 32, wg.IPv4[0].Prefix)
		assert.Equal(t, IPv4ScopeGlobal, wg.IPv4[0].Scope)
	})
}

func TestParse_Reparse(t *testing.T) {
	input := readFixture(t, "workstation.txt")

	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	assert.NotSame(t, first[0], second[0])
	assert.NotSame(t, first[1].IPv4[0], second[1].IPv4[0])
	assert.NotSame(t, first[1].IPv4[0].Lifetime, second[1].IPv4[0].Lifetime)

	first[1].IPv4[0].Address = "0.0.0.0"
	first[0].Base.Flags[0] = FlagDebug
	assert.Equal(t, "192.168.1.23", second[1].IPv4[0].Address)
	assert.Equal(t, FlagLoopback, second[0].Base.Flags[0])
}

func TestParse_Concurrent(t *testing.T) {
	input := readFixture(t, "workstation.txt")
	want, err := Parse(input)
	require.NoError(t, err)

	const workers = 16
	results := make([][]*Interface, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Parse(input)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestParse_CRLF(t *testing.T) {
	input := "1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536\r\n    inet 127.0.0.1/8 scope host lo\r\n"
	got, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].IPv4, 1)
	assert.Equal(t, "lo", got[0].IPv4[0].Device)
}
