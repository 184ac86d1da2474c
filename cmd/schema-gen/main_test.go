package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupSchema(t *testing.T) {
	schema := generateGroupSchema(groups[0])

	assert.Equal(t, "Import API Types", schema["title"])
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"RawPriceRow", "RowErrorEntry", "BatchReport", "ListRunsResponse"} {
		assert.Contains(t, defs, name)
	}
}

func TestWriteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, writeSchema(generateGroupSchema(groups[1]), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "pricing/export.json", decoded["$id"])
	assert.Contains(t, decoded["$defs"], "ExportPricesRequest")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Export", capitalize("export"))
}
