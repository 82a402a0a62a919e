package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"service"}, parseList("service"))
	assert.Equal(t, []string{"service", "team"}, parseList("service,team"))
	assert.Equal(t, []string{"service", "team"}, parseList(" service , team "))
	assert.Equal(t, []string{"service"}, parseList("service,,"))
}

func TestReadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blueprint.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"identifier": "service", "title": "Service"}`), 0644))

	record, err := readRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "service", record.String("identifier"))

	_, err = readRecord(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "read input")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	_, err = readRecord(bad)
	assert.ErrorContains(t, err, "parse input JSON")
}

func TestCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"export", "import", "migrate", "api", "config", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestExportCmd_RejectsUnknownFormat(t *testing.T) {
	cmd := newExportCmd()
	cmd.SetArgs([]string{"-o", filepath.Join(t.TempDir(), "out.xml"), "-f", "xml"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}
