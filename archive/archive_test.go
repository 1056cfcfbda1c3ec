package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "reports/missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "reports/b.json", []byte("b")))
	require.NoError(t, store.Put(ctx, "reports/a.json", []byte("a")))
	require.NoError(t, store.Put(ctx, "other/c.json", []byte("c")))

	data, err := store.Get(ctx, "reports/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	require.NoError(t, store.Put(ctx, "reports/a.json", []byte("a2")))
	data, err = store.Get(ctx, "reports/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("a2"), data)

	names, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/a.json", "reports/b.json"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Delete(ctx, "reports/a.json"))
	require.NoError(t, store.Delete(ctx, "reports/a.json"))
	_, err = store.Get(ctx, "reports/a.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())

	t.Run("CopiesData", func(t *testing.T) {
		ctx := context.Background()
		s := NewMemoryStore()
		data := []byte("abc")
		require.NoError(t, s.Put(ctx, "x", data))
		data[0] = 'z'

		got, err := s.Get(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, NewMemoryStore().Put(ctx, "x", nil), context.Canceled)
	})
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	testStore(t, NewLocalStore(dir))

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(dir, "reports"))
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp-")
		}
	})

	t.Run("RejectsEscapingNames", func(t *testing.T) {
		s := NewLocalStore(t.TempDir())
		assert.Error(t, s.Put(context.Background(), "../escape", []byte("x")))
		assert.Error(t, s.Put(context.Background(), "/abs", []byte("x")))
	})

	t.Run("ListMissingRoot", func(t *testing.T) {
		s := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
		names, err := s.List(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestCompression(t *testing.T) {
	compressible := bytes.Repeat([]byte(`{"vector":[12,92,50],"distance":0.25}`), 200)
	random := []byte{0x9c, 0x01, 0xfe, 0x42, 0x17}

	for _, c := range []Compression{None, LZ4, Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			for _, data := range [][]byte{compressible, random, {}} {
				encoded, err := Encode(data, c)
				require.NoError(t, err)

				decoded, err := Decode(encoded)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(decoded))
				assert.True(t, bytes.Equal(data, decoded))
			}
		})
	}

	t.Run("Shrinks", func(t *testing.T) {
		encoded, err := Encode(compressible, Zstd)
		require.NoError(t, err)
		assert.Less(t, len(encoded), len(compressible)/2)
		assert.Equal(t, byte(Zstd), encoded[0])
	})

	t.Run("IncompressibleStoredPlain", func(t *testing.T) {
		encoded, err := Encode(random, LZ4)
		require.NoError(t, err)
		assert.Equal(t, byte(None), encoded[0])
	})

	t.Run("InvalidBlob", func(t *testing.T) {
		_, err := Decode([]byte{1, 2})
		assert.ErrorIs(t, err, ErrInvalidBlob)

		_, err = Decode([]byte{9, 0, 0, 0, 0})
		assert.ErrorIs(t, err, ErrInvalidBlob)

		_, err = Decode([]byte{0, 5, 0, 0, 0, 'a'})
		assert.ErrorIs(t, err, ErrInvalidBlob)
	})
}

func TestParseCompression(t *testing.T) {
	tests := map[string]Compression{"": None, "none": None, "LZ4": LZ4, "zstd": Zstd, "zst": Zstd}
	for in, want := range tests {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)

	var c Compression
	require.NoError(t, c.UnmarshalText([]byte("lz4")))
	assert.Equal(t, LZ4, c)
	assert.Equal(t, ".lz4", c.Extension())
	assert.Equal(t, ".zst", Zstd.Extension())
	assert.Equal(t, "", None.Extension())
}
