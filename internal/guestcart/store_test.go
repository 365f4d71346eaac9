package guestcart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AddIncrementsExistingLine(t *testing.T) {
	s := NewMemoryStore()

	s.Add("prod-1", 2)
	s.Add("prod-1", 3)
	s.Add("prod-2", 1)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "prod-1", lines[0].ProductID)
	assert.Equal(t, int32(5), lines[0].Quantity)
	assert.Equal(t, int32(6), s.Count())
}

func TestMemoryStore_AddIgnoresNonPositiveQuantity(t *testing.T) {
	s := NewMemoryStore()

	s.Add("prod-1", 0)
	s.Add("prod-1", -4)

	assert.Empty(t, s.Lines())
}

func TestMemoryStore_SetQuantity(t *testing.T) {
	s := NewMemoryStore()
	s.Add("prod-1", 2)

	s.SetQuantity("prod-1", 7)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int32(7), lines[0].Quantity)

	// Zero or negative removes the line entirely
	s.SetQuantity("prod-1", 0)
	assert.Empty(t, s.Lines())

	s.SetQuantity("prod-2", -1)
	assert.Empty(t, s.Lines())

	// Setting an absent product creates it
	s.SetQuantity("prod-3", 4)
	assert.Equal(t, int32(4), s.Count())
}

func TestMemoryStore_RemoveAndClear(t *testing.T) {
	s := NewMemoryStore()
	s.Add("prod-1", 1)
	s.Add("prod-2", 2)

	s.Remove("prod-1")
	assert.Equal(t, int32(2), s.Count())

	// Removing a missing product is a no-op
	s.Remove("prod-9")
	assert.Equal(t, int32(2), s.Count())

	s.Clear()
	assert.Empty(t, s.Lines())
	assert.Equal(t, int32(0), s.Count())
}

func TestMemoryStore_LinesReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Add("prod-1", 2)

	lines := s.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, int32(2), s.Lines()[0].Quantity)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest-cart.json")
	logger := zerolog.Nop()

	s := NewFileStore(path, logger)
	s.Add("prod-1", 2)
	s.Add("prod-2", 3)
	s.SetQuantity("prod-2", 1)

	reopened := NewFileStore(path, logger)
	lines := reopened.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int32(2), lines[0].Quantity)
	assert.Equal(t, int32(1), lines[1].Quantity)
	assert.Equal(t, int32(3), reopened.Count())
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	s := NewFileStore(path, zerolog.Nop())

	assert.Empty(t, s.Lines())
}

func TestFileStore_MalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest-cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path, zerolog.Nop())

	assert.Empty(t, s.Lines())
}

func TestFileStore_WriteFailurePreservesLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guest-cart.json")
	logger := zerolog.Nop()

	s := NewFileStore(path, logger)
	s.Add("prod-1", 2)

	// Occupy the temp-file path with a directory so every write fails.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	s.Add("prod-1", 3)
	s.SetQuantity("prod-1", 9)
	s.Clear()

	// Every mutation degraded to a no-op; the original line survives.
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int32(2), lines[0].Quantity)
}
