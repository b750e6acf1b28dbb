package providers

import (
	"bytes"
	"scopewatch/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompression_Roundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	original := []byte(`{"monitors":[{"name":"frontdoor"}],"pageSize":15}`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_EmptyData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	compressed, err := c.Compress([]byte{})
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestZstdCompression_LargeData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	original := bytes.Repeat([]byte(`{"value":"2024-01-15","status":"COMPLETE"},`), 20_000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original)/2)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)

	_, err = c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}

func TestNewCompressorProvider_Disabled(t *testing.T) {
	c, err := NewCompressorProvider(&structures.Config{})
	require.NoError(t, err)
	assert.IsType(t, &identityCompressor{}, c)

	val := []byte("plain")
	out, err := c.Compress(val)
	require.NoError(t, err)
	assert.Equal(t, val, out)
	out, err = c.Decompress(val)
	require.NoError(t, err)
	assert.Equal(t, val, out)
}

func TestNewCompressorProvider_Enabled(t *testing.T) {
	c, err := NewCompressorProvider(&structures.Config{Cache: structures.CacheConfig{Compress: true}})
	require.NoError(t, err)
	assert.IsType(t, &ZstdCompression{}, c)
}
