package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRosterCSV(t *testing.T) {
	path := writeCSV(t, "first_name,last_name,position\nChristopher,Cupps,DF\nDylan,Borso,FW\n")

	players, err := readRosterCSV(path, "Chicago Fire", "2025")
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, "Chicago Fire", players[0].Club)
	assert.Equal(t, "2025", players[0].Season)
	assert.Equal(t, "Christopher", players[0].FirstName)
	assert.Equal(t, "Cupps", players[0].LastName)
}

func TestReadRosterCSVColumnOrder(t *testing.T) {
	path := writeCSV(t, "position,last,first\nMF,Casas,Javier\n")

	players, err := readRosterCSV(path, "Chicago Fire", "2025")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Javier", players[0].FirstName)
	assert.Equal(t, "Casas", players[0].LastName)
}

func TestReadRosterCSVSkipsBlankNames(t *testing.T) {
	path := writeCSV(t, "first_name,last_name\nChristopher,Cupps\n,\n ,Borso\n")

	players, err := readRosterCSV(path, "Chicago Fire", "2025")
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestReadRosterCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, "name,position\nChristopher Cupps,DF\n")

	_, err := readRosterCSV(path, "Chicago Fire", "2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first_name and last_name")
}

func TestReadRosterCSVEmpty(t *testing.T) {
	path := writeCSV(t, "first_name,last_name\n")

	_, err := readRosterCSV(path, "Chicago Fire", "2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no player rows")
}

func TestSplitPlayerName(t *testing.T) {
	first, last, ok := splitPlayerName("Christopher Cupps")
	require.True(t, ok)
	assert.Equal(t, "Christopher", first)
	assert.Equal(t, "Cupps", last)

	first, last, ok = splitPlayerName("Juan De La Torre")
	require.True(t, ok)
	assert.Equal(t, "Juan", first)
	assert.Equal(t, "De La Torre", last)

	_, _, ok = splitPlayerName("Pele")
	assert.False(t, ok)
}
