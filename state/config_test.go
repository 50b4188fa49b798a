package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTopology(t *testing.T) {
	input := `4
B 1 1 2001

D 3 5 2003
`
	topo, err := ParseTopology(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, sampleTopology(), topo)
}

func TestParseTopology_CountOnly(t *testing.T) {
	topo, err := ParseTopology(strings.NewReader("1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, topo.RouterCount)
	assert.Empty(t, topo.Neighbours)
}

func TestParseTopology_Invalid(t *testing.T) {
	cases := map[string]string{
		"":                   "missing router count",
		"abc\n":              "router count \"abc\" is not a number",
		"3\nB 1 1\n":         "line 2: expected \"label id cost port\"",
		"3\nB x 1 2001\n":    "id \"x\" is not a number",
		"3\nB 1 y 2001\n":    "cost \"y\" is not a number",
		"3\nB 1 1 70000\n":   "port \"70000\" is not a valid port",
		"3\nB 5 1 2001\n":    "router id 5 is outside [0, 3)",
		"3\n\n\nB 1 -2 20\n": "cost to neighbour 1 must be in",
	}
	for input, msg := range cases {
		_, err := ParseTopology(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidTopology, input)
		assert.ErrorContains(t, err, msg, input)
	}
}

func TestReadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router0.txt")
	require.NoError(t, os.WriteFile(path, []byte("2\nB 1 3 2001\n"), 0600))
	topo, err := ReadTopology(path)
	require.NoError(t, err)
	assert.Equal(t, &Topology{
		RouterCount: 2,
		Neighbours:  []NeighbourEntry{{Label: "B", Id: 1, Cost: 3, Port: 2001}},
	}, topo)

	_, err = ReadTopology(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLocalConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`peer_addr: 127.0.0.2
route_update: 2s
log_path: /tmp/router.log
`), 0600))
	cfg, err := ReadLocalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.2", cfg.PeerAddr)
	assert.Equal(t, 2*time.Second, cfg.RouteUpdate)
	assert.Equal(t, NeighbourUpdateDelay, cfg.NeighbourUpdate)
	assert.Equal(t, "/tmp/router.log", cfg.LogPath)
}

func TestReadLocalConfig_Defaults(t *testing.T) {
	cfg, err := ReadLocalConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPeerAddr, cfg.PeerAddr)
	assert.Equal(t, NeighbourUpdateDelay, cfg.NeighbourUpdate)
	assert.Equal(t, RouteUpdateDelay, cfg.RouteUpdate)
}

func TestReadLocalConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("route_update: [1, 2]\n"), 0600))
	_, err := ReadLocalConfig(path)
	assert.Error(t, err)
}
