package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		settingsPath = ""
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInspect(t *testing.T) {
	topo := writeFile(t, "config.txt", "4\nB 1 1 2001\nD 3 5 2003\n")
	out, err := execute(t, "inspect", "0", topo)
	require.NoError(t, err)
	assert.Contains(t, out, "routers: 4")
	assert.Contains(t, out, "neighbour D: id 3, cost 5, port 2003")
	assert.Contains(t, out, "cost vector: [0 1 999 5]")
}

func TestVerify(t *testing.T) {
	topo := writeFile(t, "config.txt", "3\nB 1 4 2001\n")
	settings := writeFile(t, "lsr.yaml", "neighbour_update: 2s\n")

	out, err := execute(t, "verify", "0", "2000", topo, "--settings", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "neighbour_update: 2s")

	_, err = execute(t, "verify", "5", "2000", topo)
	assert.Error(t, err)
	_, err = execute(t, "verify", "0", "notaport", topo)
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lsr.yaml")
	_, err := execute(t, "init", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "peer_addr: 127.0.0.1")

	_, err = execute(t, "init", "-o", path)
	assert.Error(t, err)
}
