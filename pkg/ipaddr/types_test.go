package ipaddr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCIDR(t *testing.T) {
	assert.Equal(t, "10.0.0.1/24", (&IPv4Config{Address: "10.0.0.1", Prefix: 24}).CIDR())
	assert.Equal(t, "", (&IPv4Config{Prefix: 24}).CIDR())
	assert.Equal(t, "fe80::1/64", (&IPv6Config{Address: "fe80::1", Prefix: 64}).CIDR())
	assert.Equal(t, "", (&IPv6Config{}).CIDR())
}

func TestUnknownParam_String(t *testing.T) {
	assert.Equal(t, "master", UnknownParam{Token: "master"}.String())
	assert.Equal(t, "weirddisc (unknown qdisc)", UnknownParam{Token: "weirddisc", Reason: "unknown qdisc"}.String())
}

func TestInterface_Diagnostics(t *testing.T) {
	iface := &Interface{
		Base: BaseParams{Name: "eth0", UnknownParams: []UnknownParam{{Token: "weirddisc", Reason: "unknown qdisc"}}},
		IPv4: []*IPv4Config{{
			Address:       "10.0.0.5",
			UnknownParams: []UnknownParam{{Token: "secondary", Reason: "unrecognized inet token"}},
			Lifetime:      &Lifetime{UnknownParams: []UnknownParam{{Token: "deprecated"}}},
		}},
		UnknownLines: []UnknownLine{{Index: 3, Text: "altname enp0s3"}},
	}
	assert.Equal(t, []string{
		"header: weirddisc (unknown qdisc)",
		"inet 10.0.0.5: secondary (unrecognized inet token)",
		"inet 10.0.0.5 lifetime: deprecated",
		"line 3: altname enp0s3",
	}, iface.Diagnostics())
}

func TestInterface_Encoding(t *testing.T) {
	input := "1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000\n" +
		"    inet 127.0.0.1/8 scope host lo\n" +
		"       valid_lft forever preferred_lft forever\n"
	got, err := Parse(input)
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	base := decoded[0]["base"].(map[string]interface{})
	assert.Equal(t, "lo", base["name"])
	assert.Equal(t, "NOQUEUE", base["qdisc"])
	assert.Equal(t, float64(1000), base["qlen"])

	out, err := yaml.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(out), "address: 127.0.0.1")
	assert.Contains(t, string(out), "valid_lft: forever")
}
