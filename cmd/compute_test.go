package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithReport(t *testing.T) {
	data, err := withReport([]byte(`{"shipment":{"reference":"SIM-01"},"report":false}`))
	require.NoError(t, err)

	req := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Equal(t, "true", string(req["report"]))
	assert.JSONEq(t, `{"reference":"SIM-01"}`, string(req["shipment"]))

	_, err = withReport([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	data, err := readInput(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	data, err = readInput(strings.NewReader("ignored"), path)
	require.NoError(t, err)
	assert.Equal(t, "from file", string(data))

	_, err = readInput(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
